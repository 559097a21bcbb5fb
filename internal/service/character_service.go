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

// CharacterService manages the characters of the session's user.
type CharacterService interface {
	Create(ctx context.Context, sess *session.Session, character *model.Character) (*model.Character, error)
	Get(ctx context.Context, sess *session.Session, id int64) (*model.Character, bool)
	Update(ctx context.Context, sess *session.Session, character *model.Character)
	List(ctx context.Context, sess *session.Session) []model.Character
	Delete(ctx context.Context, sess *session.Session, id int64)
	Search(ctx context.Context, sess *session.Session, query string) []model.Character
}

var _ CharacterService = (*characterServiceImpl)(nil)

type characterServiceImpl struct {
	characters repository.CharacterRepository
	logger     *zap.Logger
}

func NewCharacterService(characters repository.CharacterRepository, logger *zap.Logger) CharacterService {
	return &characterServiceImpl{
		characters: characters,
		logger:     logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) Create(ctx context.Context, sess *session.Session, c *model.Character) (*model.Character, error) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "create the character", err)
		return nil, err
	}
	if err := s.characters.Create(ctx, ownerID, c); err != nil {
		report(ctx, s.logger, "create the character", err)
		return nil, err
	}
	return c, nil
}

func (s *characterServiceImpl) Get(ctx context.Context, sess *session.Session, id int64) (*model.Character, bool) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "open the character", err)
		return nil, false
	}
	c, err := s.characters.GetByID(ctx, ownerID, id)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			report(ctx, s.logger, "open the character", err)
		}
		return nil, false
	}
	return c, true
}

func (s *characterServiceImpl) Update(ctx context.Context, sess *session.Session, c *model.Character) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "update the character", err)
		return
	}
	if err := s.characters.Update(ctx, ownerID, c); err != nil {
		report(ctx, s.logger, "update the character", err)
	}
}

func (s *characterServiceImpl) List(ctx context.Context, sess *session.Session) []model.Character {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "load your characters", err)
		return []model.Character{}
	}
	characters, err := s.characters.ListByUser(ctx, ownerID)
	if err != nil {
		report(ctx, s.logger, "load your characters", err)
		return []model.Character{}
	}
	return characters
}

func (s *characterServiceImpl) Delete(ctx context.Context, sess *session.Session, id int64) {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "delete the character", err)
		return
	}
	if err := s.characters.Delete(ctx, ownerID, id); err != nil {
		report(ctx, s.logger, "delete the character", err)
	}
}

func (s *characterServiceImpl) Search(ctx context.Context, sess *session.Session, query string) []model.Character {
	return search.Filter(s.List(ctx, sess), query, func(c model.Character) string { return c.Name })
}
