package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storykeep/internal/auth"
	"storykeep/internal/model"
	"storykeep/internal/repository"
	"storykeep/internal/session"
)

// UserService authenticates and manages accounts. Storage failures are
// reported through the context's Notifier and never returned.
type UserService interface {
	// Login populates sess and returns true when the credentials match.
	Login(ctx context.Context, sess *session.Session, username, password string) bool
	// Register returns true iff exactly one account was created.
	Register(ctx context.Context, username, email, password string) bool
	UsernameExists(ctx context.Context, username string) bool
	// DeleteUser clears sess when it belongs to the deleted user.
	DeleteUser(ctx context.Context, sess *session.Session, id int64) bool
	Logout(sess *session.Session)
}

var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, hasher *auth.Hasher, logger *zap.Logger) UserService {
	return &userServiceImpl{
		users:  users,
		hasher: hasher,
		logger: logger.Named("UserService"),
	}
}

func (s *userServiceImpl) Login(ctx context.Context, sess *session.Session, username, password string) bool {
	log := s.logger.With(zap.String("username", username))

	user, err := s.users.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			log.Info("Login attempt for unknown user")
			return false
		}
		report(ctx, log, "log in", err)
		return false
	}

	if !s.hasher.Verify(password, user.Password) {
		log.Info("Login attempt with wrong password")
		return false
	}

	if s.hasher.NeedsRehash(user.Password) {
		s.upgradeRecord(ctx, user.ID, password)
	}

	sess.Set(*user)
	log.Info("User logged in", zap.Int64("userID", user.ID))
	return true
}

// upgradeRecord replaces a legacy or weak password record. Failure leaves the
// old record in place and does not affect the login.
func (s *userServiceImpl) upgradeRecord(ctx context.Context, userID int64, password string) {
	record, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash password for upgrade", zap.Int64("userID", userID), zap.Error(err))
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, record); err != nil {
		s.logger.Warn("Failed to upgrade password record", zap.Int64("userID", userID), zap.Error(err))
		return
	}
	s.logger.Info("Password record upgraded", zap.Int64("userID", userID))
}

func (s *userServiceImpl) Register(ctx context.Context, username, email, password string) bool {
	log := s.logger.With(zap.String("username", username))

	record, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("Failed to hash password during registration", zap.Error(err))
		notifierFrom(ctx).Notify("Could not register: password could not be processed.")
		return false
	}

	user := &model.User{Username: username, Email: email, Password: record}
	if err := s.users.Create(ctx, user); err != nil {
		report(ctx, log, "register", err)
		return false
	}
	log.Info("User registered", zap.Int64("userID", user.ID))
	return true
}

func (s *userServiceImpl) UsernameExists(ctx context.Context, username string) bool {
	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		report(ctx, s.logger, "check the username", err)
		return false
	}
	return exists
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, sess *session.Session, id int64) bool {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		report(ctx, s.logger, "delete the account", err)
		return false
	}
	if !deleted {
		s.logger.Info("No account deleted", zap.Int64("userID", id))
		return false
	}
	if current, err := sess.UserID(); err == nil && current == id {
		sess.Clear()
		s.logger.Info("Deleted account was the session owner, session cleared", zap.Int64("userID", id))
	}
	return true
}

func (s *userServiceImpl) Logout(sess *session.Session) {
	if u, ok := sess.Current(); ok {
		s.logger.Info("User logged out", zap.Int64("userID", u.ID))
	}
	sess.Clear()
}
