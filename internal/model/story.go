package model

import (
	"fmt"
	"time"
)

// StoryStatus is the progress state of a story.
type StoryStatus string

const (
	StatusDraft      StoryStatus = "Draft"
	StatusInProgress StoryStatus = "In Progress"
	StatusCompleted  StoryStatus = "Completed"
)

// StoryStatuses lists the allowed statuses in display order.
var StoryStatuses = []StoryStatus{StatusDraft, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s StoryStatus) Valid() bool {
	for _, known := range StoryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStoryStatus converts a raw value into a StoryStatus.
func ParseStoryStatus(raw string) (StoryStatus, error) {
	s := StoryStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Story is a piece of writing owned by a user.
type Story struct {
	ID        int64       `json:"id" db:"story_id"`
	UserID    int64       `json:"user_id" db:"user_id"`
	Title     string      `json:"title" db:"title"`
	Genre     string      `json:"genre" db:"genre"`
	Status    StoryStatus `json:"status" db:"status"`
	Synopsis  string      `json:"synopsis" db:"synopsis"`
	CreatedAt time.Time   `json:"created_at" db:"creation_date"`
}

// StoryRequest is the editable part of a story.
type StoryRequest struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Status   string `json:"status"`
	Synopsis string `json:"synopsis"`
}
