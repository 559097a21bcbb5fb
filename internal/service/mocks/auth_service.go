package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/auth"
	"storykeep/internal/model"
	"storykeep/internal/session"
)

// Mock AuthService
type AuthService struct {
	mock.Mock
}

func (m *AuthService) IssueToken(ctx context.Context, user model.User) (*model.TokenResponse, error) {
	args := m.Called(ctx, user)
	var resp *model.TokenResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*model.TokenResponse)
	}
	return resp, args.Error(1)
}
func (m *AuthService) Authenticate(ctx context.Context, token string) (*session.Session, *auth.Claims, error) {
	args := m.Called(ctx, token)
	var sess *session.Session
	if args.Get(0) != nil {
		sess = args.Get(0).(*session.Session)
	}
	var claims *auth.Claims
	if args.Get(1) != nil {
		claims = args.Get(1).(*auth.Claims)
	}
	return sess, claims, args.Error(2)
}
func (m *AuthService) Revoke(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}
func (m *AuthService) RevokeAll(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
