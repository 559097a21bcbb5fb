package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
)

// Mock CharacterRepository
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, ownerID int64, c *model.Character) error {
	args := m.Called(ctx, ownerID, c)
	return args.Error(0)
}
func (m *CharacterRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Character, error) {
	args := m.Called(ctx, ownerID, id)
	c, _ := args.Get(0).(*model.Character)
	return c, args.Error(1)
}
func (m *CharacterRepository) Update(ctx context.Context, ownerID int64, c *model.Character) error {
	args := m.Called(ctx, ownerID, c)
	return args.Error(0)
}
func (m *CharacterRepository) ListByUser(ctx context.Context, ownerID int64) ([]model.Character, error) {
	args := m.Called(ctx, ownerID)
	c, _ := args.Get(0).([]model.Character)
	return c, args.Error(1)
}
func (m *CharacterRepository) Delete(ctx context.Context, ownerID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
