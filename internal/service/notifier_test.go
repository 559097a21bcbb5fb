package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"storykeep/internal/model"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"connectivity", fmt.Errorf("x: %w", model.ErrConnectionUnavailable), "Could not connect to the database. Please try again later."},
		{"query", &model.QueryError{Op: "list", Err: errors.New(`relation "story" does not exist`)}, `Database error while trying to load stories: relation "story" does not exist`},
		{"no session", model.ErrNoActiveSession, "You need to be logged in to load stories."},
		{"duplicate", model.ErrUserAlreadyExists, "Username already exists."},
		{"other", errors.New("boom"), "Unexpected error while trying to load stories."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage("load stories", tt.err))
		})
	}
}

func TestNotifierFromContext(t *testing.T) {
	// no notifier attached: reporting must not panic
	report(context.Background(), nopLogger, "x", errors.New("boom"))

	ctx, c := collecting()
	report(ctx, nopLogger, "x", model.ErrConnectionUnavailable)
	assert.Len(t, c.Messages(), 1)
}
