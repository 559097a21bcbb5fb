package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
	"storykeep/internal/session"
)

// Mock CharacterService
type CharacterService struct {
	mock.Mock
}

func (m *CharacterService) Create(ctx context.Context, sess *session.Session, character *model.Character) (*model.Character, error) {
	args := m.Called(ctx, sess, character)
	var c *model.Character
	if args.Get(0) != nil {
		c = args.Get(0).(*model.Character)
	}
	return c, args.Error(1)
}
func (m *CharacterService) Get(ctx context.Context, sess *session.Session, id int64) (*model.Character, bool) {
	args := m.Called(ctx, sess, id)
	var c *model.Character
	if args.Get(0) != nil {
		c = args.Get(0).(*model.Character)
	}
	return c, args.Bool(1)
}
func (m *CharacterService) Update(ctx context.Context, sess *session.Session, character *model.Character) {
	m.Called(ctx, sess, character)
}
func (m *CharacterService) List(ctx context.Context, sess *session.Session) []model.Character {
	args := m.Called(ctx, sess)
	return args.Get(0).([]model.Character)
}
func (m *CharacterService) Delete(ctx context.Context, sess *session.Session, id int64) {
	m.Called(ctx, sess, id)
}
func (m *CharacterService) Search(ctx context.Context, sess *session.Session, query string) []model.Character {
	args := m.Called(ctx, sess, query)
	return args.Get(0).([]model.Character)
}
