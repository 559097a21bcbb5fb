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

// TraitService manages the personality traits of the session's user.
type TraitService interface {
	Add(ctx context.Context, sess *session.Session, name string) bool
	// Rename returns false when oldName is not one of the user's traits.
	Rename(ctx context.Context, sess *session.Session, oldName, newName string) bool
	Exists(ctx context.Context, sess *session.Session, name string) bool
	Delete(ctx context.Context, sess *session.Session, name string) bool
	List(ctx context.Context, sess *session.Session) []model.Trait
	Search(ctx context.Context, sess *session.Session, query string) []model.Trait
}

var _ TraitService = (*traitServiceImpl)(nil)

type traitServiceImpl struct {
	traits repository.TraitRepository
	logger *zap.Logger
}

func NewTraitService(traits repository.TraitRepository, logger *zap.Logger) TraitService {
	return &traitServiceImpl{
		traits: traits,
		logger: logger.Named("TraitService"),
	}
}

func (s *traitServiceImpl) Add(ctx context.Context, sess *session.Session, name string) bool {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "add the trait", err)
		return false
	}
	ok, err := s.traits.Add(ctx, ownerID, name)
	if err != nil {
		report(ctx, s.logger, "add the trait", err)
		return false
	}
	return ok
}

func (s *traitServiceImpl) Rename(ctx context.Context, sess *session.Session, oldName, newName string) bool {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "rename the trait", err)
		return false
	}
	trait, err := s.traits.FindByName(ctx, ownerID, oldName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug("Trait to rename not found", zap.String("name", oldName))
		} else {
			report(ctx, s.logger, "rename the trait", err)
		}
		return false
	}
	ok, err := s.traits.RenameByID(ctx, ownerID, trait.ID, newName)
	if err != nil {
		report(ctx, s.logger, "rename the trait", err)
		return false
	}
	return ok
}

func (s *traitServiceImpl) Exists(ctx context.Context, sess *session.Session, name string) bool {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "look up the trait", err)
		return false
	}
	exists, err := s.traits.Exists(ctx, ownerID, name)
	if err != nil {
		report(ctx, s.logger, "look up the trait", err)
		return false
	}
	return exists
}

func (s *traitServiceImpl) Delete(ctx context.Context, sess *session.Session, name string) bool {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "delete the trait", err)
		return false
	}
	ok, err := s.traits.Delete(ctx, ownerID, name)
	if err != nil {
		report(ctx, s.logger, "delete the trait", err)
		return false
	}
	return ok
}

func (s *traitServiceImpl) List(ctx context.Context, sess *session.Session) []model.Trait {
	ownerID, err := sess.UserID()
	if err != nil {
		report(ctx, s.logger, "load your traits", err)
		return []model.Trait{}
	}
	traits, err := s.traits.ListByUser(ctx, ownerID)
	if err != nil {
		report(ctx, s.logger, "load your traits", err)
		return []model.Trait{}
	}
	return traits
}

func (s *traitServiceImpl) Search(ctx context.Context, sess *session.Session, query string) []model.Trait {
	return search.Filter(s.List(ctx, sess), query, func(t model.Trait) string { return t.Name })
}
