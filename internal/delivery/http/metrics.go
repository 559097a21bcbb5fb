package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storykeep_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storykeep_logins_total",
			Help: "Total number of login attempts by result.",
		},
		[]string{"result"},
	)

	entriesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storykeep_entries_created_total",
			Help: "Total number of created journal entries by kind.",
		},
		[]string{"kind"},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storykeep_searches_total",
			Help: "Total number of search requests by target.",
		},
		[]string{"target"},
	)
)
