package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
	"storykeep/internal/session"
)

// Mock StoryService
type StoryService struct {
	mock.Mock
}

func (m *StoryService) Create(ctx context.Context, sess *session.Session, story *model.Story) (*model.Story, error) {
	args := m.Called(ctx, sess, story)
	var s *model.Story
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Story)
	}
	return s, args.Error(1)
}
func (m *StoryService) Get(ctx context.Context, sess *session.Session, id int64) (*model.Story, bool) {
	args := m.Called(ctx, sess, id)
	var s *model.Story
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Story)
	}
	return s, args.Bool(1)
}
func (m *StoryService) Update(ctx context.Context, sess *session.Session, story *model.Story) {
	m.Called(ctx, sess, story)
}
func (m *StoryService) List(ctx context.Context, sess *session.Session) []model.Story {
	args := m.Called(ctx, sess)
	return args.Get(0).([]model.Story)
}
func (m *StoryService) Delete(ctx context.Context, sess *session.Session, id int64) {
	m.Called(ctx, sess, id)
}
func (m *StoryService) Search(ctx context.Context, sess *session.Session, query string) []model.Story {
	args := m.Called(ctx, sess, query)
	return args.Get(0).([]model.Story)
}
