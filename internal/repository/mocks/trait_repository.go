package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
)

// Mock TraitRepository
type TraitRepository struct {
	mock.Mock
}

func (m *TraitRepository) Add(ctx context.Context, ownerID int64, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}
func (m *TraitRepository) FindByName(ctx context.Context, ownerID int64, name string) (*model.Trait, error) {
	args := m.Called(ctx, ownerID, name)
	t, _ := args.Get(0).(*model.Trait)
	return t, args.Error(1)
}
func (m *TraitRepository) RenameByID(ctx context.Context, ownerID, id int64, newName string) (bool, error) {
	args := m.Called(ctx, ownerID, id, newName)
	return args.Bool(0), args.Error(1)
}
func (m *TraitRepository) Exists(ctx context.Context, ownerID int64, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}
func (m *TraitRepository) Delete(ctx context.Context, ownerID int64, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}
func (m *TraitRepository) ListByUser(ctx context.Context, ownerID int64) ([]model.Trait, error) {
	args := m.Called(ctx, ownerID)
	t, _ := args.Get(0).([]model.Trait)
	return t, args.Error(1)
}
func (m *TraitRepository) Close() {
	m.Called()
}
