// Package repository holds the storage adapters for users, stories,
// characters, traits and issued tokens.
package repository

import (
	"context"
	"time"

	"storykeep/internal/model"
)

// UserRepository persists accounts.
type UserRepository interface {
	// GetCredentials returns id, username and stored password record.
	// model.ErrNotFound if the username is unknown.
	GetCredentials(ctx context.Context, username string) (*model.User, error)
	// Create inserts user and sets its ID and CreatedAt.
	// model.ErrUserAlreadyExists on a duplicate username.
	Create(ctx context.Context, user *model.User) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Close()
}

// StoryRepository persists stories. Every call is scoped to ownerID.
type StoryRepository interface {
	// Create sets story.ID, story.UserID and story.CreatedAt.
	Create(ctx context.Context, ownerID int64, story *model.Story) error
	GetByID(ctx context.Context, ownerID, id int64) (*model.Story, error)
	// Update succeeds silently when no row matches.
	Update(ctx context.Context, ownerID int64, story *model.Story) error
	ListByUser(ctx context.Context, ownerID int64) ([]model.Story, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// CharacterRepository persists characters. Every call is scoped to ownerID.
type CharacterRepository interface {
	Create(ctx context.Context, ownerID int64, character *model.Character) error
	GetByID(ctx context.Context, ownerID, id int64) (*model.Character, error)
	Update(ctx context.Context, ownerID int64, character *model.Character) error
	ListByUser(ctx context.Context, ownerID int64) ([]model.Character, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// TraitRepository persists personality traits. Every call is scoped to ownerID.
type TraitRepository interface {
	Add(ctx context.Context, ownerID int64, name string) (bool, error)
	FindByName(ctx context.Context, ownerID int64, name string) (*model.Trait, error)
	RenameByID(ctx context.Context, ownerID, id int64, newName string) (bool, error)
	Exists(ctx context.Context, ownerID int64, name string) (bool, error)
	Delete(ctx context.Context, ownerID int64, name string) (bool, error)
	ListByUser(ctx context.Context, ownerID int64) ([]model.Trait, error)
	Close()
}

// TokenRepository tracks the ids of access tokens that are still valid.
type TokenRepository interface {
	Store(ctx context.Context, userID int64, tokenID string, ttl time.Duration) error
	// Lookup returns the owner of tokenID or model.ErrTokenRevoked.
	Lookup(ctx context.Context, tokenID string) (int64, error)
	Revoke(ctx context.Context, userID int64, tokenID string) error
	RevokeAll(ctx context.Context, userID int64) (int64, error)
}
