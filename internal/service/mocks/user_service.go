package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storykeep/internal/session"
)

// Mock UserService
type UserService struct {
	mock.Mock
}

func (m *UserService) Login(ctx context.Context, sess *session.Session, username, password string) bool {
	args := m.Called(ctx, sess, username, password)
	return args.Bool(0)
}
func (m *UserService) Register(ctx context.Context, username, email, password string) bool {
	args := m.Called(ctx, username, email, password)
	return args.Bool(0)
}
func (m *UserService) UsernameExists(ctx context.Context, username string) bool {
	args := m.Called(ctx, username)
	return args.Bool(0)
}
func (m *UserService) DeleteUser(ctx context.Context, sess *session.Session, id int64) bool {
	args := m.Called(ctx, sess, id)
	return args.Bool(0)
}
func (m *UserService) Logout(sess *session.Session) {
	m.Called(sess)
}
