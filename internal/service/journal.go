package service

import (
	"context"
	"fmt"

	"storykeep/internal/model"
	"storykeep/internal/search"
	"storykeep/internal/session"
)

// Journal works on stories and characters as entries of one notebook.
type Journal struct {
	stories    StoryService
	characters CharacterService
}

func NewJournal(stories StoryService, characters CharacterService) *Journal {
	return &Journal{stories: stories, characters: characters}
}

// Open loads the entry of the given kind and id.
func (j *Journal) Open(ctx context.Context, sess *session.Session, kind model.EntryKind, id int64) (model.Entry, bool) {
	switch kind {
	case model.KindStory:
		s, ok := j.stories.Get(ctx, sess, id)
		if !ok {
			return nil, false
		}
		return s, true
	case model.KindCharacter:
		c, ok := j.characters.Get(ctx, sess, id)
		if !ok {
			return nil, false
		}
		return c, true
	default:
		return nil, false
	}
}

// Save creates the entry when it has no id yet and updates it otherwise.
func (j *Journal) Save(ctx context.Context, sess *session.Session, e model.Entry) (model.Entry, error) {
	switch v := e.(type) {
	case *model.Story:
		if v.ID == 0 {
			created, err := j.stories.Create(ctx, sess, v)
			if err != nil {
				return nil, err
			}
			return created, nil
		}
		j.stories.Update(ctx, sess, v)
		return v, nil
	case *model.Character:
		if v.ID == 0 {
			created, err := j.characters.Create(ctx, sess, v)
			if err != nil {
				return nil, err
			}
			return created, nil
		}
		j.characters.Update(ctx, sess, v)
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", model.ErrUnknownEntryKind, e)
	}
}

func (j *Journal) Delete(ctx context.Context, sess *session.Session, e model.Entry) {
	switch v := e.(type) {
	case *model.Story:
		j.stories.Delete(ctx, sess, v.ID)
	case *model.Character:
		j.characters.Delete(ctx, sess, v.ID)
	}
}

// List returns stories followed by characters.
func (j *Journal) List(ctx context.Context, sess *session.Session) []model.Entry {
	stories := j.stories.List(ctx, sess)
	characters := j.characters.List(ctx, sess)

	entries := make([]model.Entry, 0, len(stories)+len(characters))
	for i := range stories {
		entries = append(entries, &stories[i])
	}
	for i := range characters {
		entries = append(entries, &characters[i])
	}
	return entries
}

// Search filters the notebook by entry label.
func (j *Journal) Search(ctx context.Context, sess *session.Session, query string) []model.Entry {
	return search.Filter(j.List(ctx, sess), query, model.Entry.Label)
}
