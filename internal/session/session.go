// Package session holds the identity of the authenticated user for a caller.
package session

import (
	"sync"

	"storykeep/internal/model"
)

// Session records at most one active user. The zero value is an empty session.
type Session struct {
	mu   sync.RWMutex
	user *model.User
}

func New() *Session {
	return &Session{}
}

// FromClaims returns a session already populated with the given identity.
func FromClaims(userID int64, username string) *Session {
	s := New()
	s.Set(model.User{ID: userID, Username: username})
	return s
}

// Set replaces the active user. Only id and username are kept.
func (s *Session) Set(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &model.User{ID: user.ID, Username: user.Username}
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Current returns a copy of the active user.
func (s *Session) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// UserID returns the active user's id or model.ErrNoActiveSession.
func (s *Session) UserID() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0, model.ErrNoActiveSession
	}
	return s.user.ID, nil
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}
