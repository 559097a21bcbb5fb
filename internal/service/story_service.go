package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storykeep/internal/model"
	"storykeep/internal/repository"
	"storykeep/internal/search"
	"storykeep/internal/session"
)

// StoryService manages the stories of the session's user.
type StoryService interface {
	// Create stores story for the session user and returns it with its id.
	// An empty status becomes Draft.
	Create(ctx context.Context, sess *session.Session, story *model.Story) (*model.Story, error)
	// Get returns false when no such story belongs to the session user.
	Get(ctx context.Context, sess *session.Session, id int64) (*model.Story, bool)
	Update(ctx context.Context, sess *session.Session, story *model.Story)
	List(ctx context.Context, sess *session.Session) []model.Story
	Delete(ctx context.Context, sess *session.Session, id int64)
	Search(ctx context.Context, sess *session.Session, query string) []model.Story
}

var _ StoryService = (*storyServiceImpl)(nil)

type storyServiceImpl struct {
	stories repository.StoryRepository
	logger  *zap.Logger
}

func NewStoryService(stories repository.StoryRepository, logger *zap.Logger) StoryService {
	return &storyServiceImpl{
		stories: stories,
		logger:  logger.Named("StoryService"),
	}
}

func (s *storyServiceImpl) Create(ctx context.Context, sess *session.Session, story *model.Story) (*model.Story, error) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "create the story", err)
		return nil, err
	}
	record := *story
	if record.Status == "" {
		record.Status = model.StatusDraft
	}
	if _, err := model.ParseStoryStatus(string(record.Status)); err != nil {
		report(ctx, s.logger, "create the story", err)
		return nil, err
	}

	if err := s.stories.Create(ctx, ownerID, &record); err != nil {
		report(ctx, s.logger, "create the story", err)
		return nil, err
	}
	return &record, nil
}

func (s *storyServiceImpl) Get(ctx context.Context, sess *session.Session, id int64) (*model.Story, bool) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "open the story", err)
		return nil, false
	}
	story, err := s.stories.GetByID(ctx, ownerID, id)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			report(ctx, s.logger, "open the story", err)
		}
		return nil, false
	}
	return story, true
}

func (s *storyServiceImpl) Update(ctx context.Context, sess *session.Session, story *model.Story) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "update the story", err)
		return
	}
	if _, err := model.ParseStoryStatus(string(story.Status)); err != nil {
		report(ctx, s.logger, "update the story", err)
		return
	}
	if err := s.stories.Update(ctx, ownerID, story); err != nil {
		report(ctx, s.logger, "update the story", err)
	}
}

func (s *storyServiceImpl) List(ctx context.Context, sess *session.Session) []model.Story {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "load your stories", err)
		return []model.Story{}
	}
	stories, err := s.stories.ListByUser(ctx, ownerID)
	if err != nil {
		report(ctx, s.logger, "load your stories", err)
		return []model.Story{}
	}
	return stories
}

func (s *storyServiceImpl) Delete(ctx context.Context, sess *session.Session, id int64) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "delete the story", err)
		return
	}
	if err := s.stories.Delete(ctx, ownerID, id); err != nil {
		report(ctx, s.logger, "delete the story", err)
	}
}

func (s *storyServiceImpl) Search(ctx context.Context, sess *session.Session, query string) []model.Story {
	return search.Filter(s.List(ctx, sess), query, func(st model.Story) string { return st.Title })
}
