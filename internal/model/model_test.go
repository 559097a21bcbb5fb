package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStoryStatus(t *testing.T) {
	for _, raw := range []string{"Draft", "In Progress", "Completed"} {
		st, err := ParseStoryStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, StoryStatus(raw), st)
	}

	_, err := ParseStoryStatus("draft")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStoryStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEntryVariants(t *testing.T) {
	story := &Story{ID: 7, Title: "Draft One", Genre: "Noir", Status: StatusDraft, Synopsis: "rain"}
	character := &Character{ID: 9, Name: "Mara", Description: "detective", Backstory: "ex-cop"}

	entries := []Entry{story, character}

	assert.Equal(t, KindStory, entries[0].EntryKind())
	assert.Equal(t, int64(7), entries[0].EntryID())
	assert.Equal(t, "Draft One", entries[0].Label())

	fields := story.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, "status", fields[2].Name)
	assert.Equal(t, []string{"Draft", "In Progress", "Completed"}, fields[2].Options)

	assert.Equal(t, KindCharacter, entries[1].EntryKind())
	view := ViewOf(entries[1])
	assert.Equal(t, "Mara", view.Label)
	require.Len(t, view.Fields, 3)
	assert.Empty(t, view.Fields[0].Options)
}

func TestParseEntryKind(t *testing.T) {
	k, err := ParseEntryKind("character")
	require.NoError(t, err)
	assert.Equal(t, KindCharacter, k)

	_, err = ParseEntryKind("trait")
	assert.ErrorIs(t, err, ErrUnknownEntryKind)
}

func TestQueryErrorUnwrap(t *testing.T) {
	cause := errors.New("syntax error at or near \"FROM\"")
	err := fmt.Errorf("list stories: %w", &QueryError{Op: "select story", Err: cause})

	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.ErrorIs(t, err, cause)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, cause.Error(), qe.Reason())
	assert.Contains(t, qe.Error(), "select story")
}
