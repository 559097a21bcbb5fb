// Package search implements the case-insensitive card filter and the
// debounce used by search-as-you-type.
package search

import (
	"regexp"
	"strings"
)

var markup = regexp.MustCompile(`<[^>]*>`)

// CleanLabel removes markup tags from s and lower-cases it.
func CleanLabel(s string) string {
	return strings.ToLower(markup.ReplaceAllString(s, ""))
}

// Filter returns the items whose cleaned label contains query, in their
// original order. The query is lower-cased but not trimmed, so surrounding
// spaces take part in the match. An empty query matches everything.
func Filter[T any](items []T, query string, label func(T) string) []T {
	q := strings.ToLower(query)
	if q == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(CleanLabel(label(item)), q) {
			out = append(out, item)
		}
	}
	return out
}
