package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storykeep/internal/model"
	"storykeep/internal/repository/mocks"
	"storykeep/internal/session"
)

func TestTraitService_RenameMissing(t *testing.T) {
	repo := new(mocks.TraitRepository)
	svc := NewTraitService(repo, nopLogger)
	ctx, c := collecting()

	repo.On("FindByName", mock.Anything, int64(1), "ghost").Return(nil, model.ErrNotFound)

	assert.False(t, svc.Rename(ctx, session.FromClaims(1, "alice"), "ghost", "spirit"))
	assert.Empty(t, c.Messages())
	repo.AssertNotCalled(t, "RenameByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTraitService_RenameUsesFoundID(t *testing.T) {
	repo := new(mocks.TraitRepository)
	svc := NewTraitService(repo, nopLogger)

	repo.On("FindByName", mock.Anything, int64(1), "brave").Return(&model.Trait{ID: 7, UserID: 1, Name: "brave"}, nil)
	repo.On("RenameByID", mock.Anything, int64(1), int64(7), "bold").Return(true, nil).Once()

	assert.True(t, svc.Rename(context.Background(), session.FromClaims(1, "alice"), "brave", "bold"))
	repo.AssertExpectations(t)
}

func TestTraitService_Basics(t *testing.T) {
	repo := new(mocks.TraitRepository)
	svc := NewTraitService(repo, nopLogger)
	ctx, c := collecting()
	sess := session.FromClaims(1, "alice")

	repo.On("Add", mock.Anything, int64(1), "kind").Return(true, nil)
	repo.On("Exists", mock.Anything, int64(1), "kind").Return(true, nil)
	repo.On("Delete", mock.Anything, int64(1), "kind").Return(true, nil)
	repo.On("Delete", mock.Anything, int64(1), "cruel").Return(false, model.ErrConnectionUnavailable)
	repo.On("ListByUser", mock.Anything, int64(1)).Return([]model.Trait{{ID: 1, Name: "Kind"}, {ID: 2, Name: "Sly"}}, nil)

	assert.True(t, svc.Add(ctx, sess, "kind"))
	assert.True(t, svc.Exists(ctx, sess, "kind"))
	assert.True(t, svc.Delete(ctx, sess, "kind"))
	assert.False(t, svc.Delete(ctx, sess, "cruel"))
	assert.Len(t, c.Messages(), 1)

	assert.Equal(t, []model.Trait{{ID: 1, Name: "Kind"}}, svc.Search(ctx, sess, "kin"))
	assert.False(t, svc.Add(ctx, session.New(), "x"))
}
