package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
)

// Mock StoryRepository
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, ownerID int64, story *model.Story) error {
	args := m.Called(ctx, ownerID, story)
	return args.Error(0)
}
func (m *StoryRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Story, error) {
	args := m.Called(ctx, ownerID, id)
	s, _ := args.Get(0).(*model.Story)
	return s, args.Error(1)
}
func (m *StoryRepository) Update(ctx context.Context, ownerID int64, story *model.Story) error {
	args := m.Called(ctx, ownerID, story)
	return args.Error(0)
}
func (m *StoryRepository) ListByUser(ctx context.Context, ownerID int64) ([]model.Story, error) {
	args := m.Called(ctx, ownerID)
	s, _ := args.Get(0).([]model.Story)
	return s, args.Error(1)
}
func (m *StoryRepository) Delete(ctx context.Context, ownerID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
