package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
	"storykeep/internal/session"
)

// Mock TraitService
type TraitService struct {
	mock.Mock
}

func (m *TraitService) Add(ctx context.Context, sess *session.Session, name string) bool {
	args := m.Called(ctx, sess, name)
	return args.Bool(0)
}
func (m *TraitService) Rename(ctx context.Context, sess *session.Session, oldName, newName string) bool {
	args := m.Called(ctx, sess, oldName, newName)
	return args.Bool(0)
}
func (m *TraitService) Exists(ctx context.Context, sess *session.Session, name string) bool {
	args := m.Called(ctx, sess, name)
	return args.Bool(0)
}
func (m *TraitService) Delete(ctx context.Context, sess *session.Session, name string) bool {
	args := m.Called(ctx, sess, name)
	return args.Bool(0)
}
func (m *TraitService) List(ctx context.Context, sess *session.Session) []model.Trait {
	args := m.Called(ctx, sess)
	return args.Get(0).([]model.Trait)
}
func (m *TraitService) Search(ctx context.Context, sess *session.Session, query string) []model.Trait {
	args := m.Called(ctx, sess, query)
	return args.Get(0).([]model.Trait)
}
