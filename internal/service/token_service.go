package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storykeep/internal/auth"
	"storykeep/internal/model"
	"storykeep/internal/repository"
	"storykeep/internal/session"
)

// AuthService issues access tokens and turns presented tokens back into
// sessions. Revoked tokens stop authenticating immediately.
type AuthService interface {
	IssueToken(ctx context.Context, user model.User) (*model.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*session.Session, *auth.Claims, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
	RevokeAll(ctx context.Context, userID int64) error
}

var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	tokens    *auth.TokenService
	tokenRepo repository.TokenRepository
	logger    *zap.Logger
}

func NewAuthService(tokens *auth.TokenService, tokenRepo repository.TokenRepository, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		tokens:    tokens,
		tokenRepo: tokenRepo,
		logger:    logger.Named("AuthService"),
	}
}

func (s *authServiceImpl) IssueToken(ctx context.Context, user model.User) (*model.TokenResponse, error) {
	issued, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Int64("userID", user.ID), zap.Error(err))
		return nil, err
	}
	if err := s.tokenRepo.Store(ctx, user.ID, issued.ID, s.tokens.TTL()); err != nil {
		s.logger.Error("Failed to store token id", zap.Int64("userID", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}
	return &model.TokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      model.User{ID: user.ID, Username: user.Username},
	}, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*session.Session, *auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug("Token rejected", zap.Error(err))
		return nil, nil, err
	}

	owner, err := s.tokenRepo.Lookup(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			s.logger.Debug("Token has been revoked", zap.String("tokenID", claims.ID))
			return nil, nil, err
		}
		s.logger.Error("Failed to look up token id", zap.String("tokenID", claims.ID), zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}
	if owner != claims.UserID {
		s.logger.Warn("Token owner mismatch", zap.Int64("claimed", claims.UserID), zap.Int64("stored", owner))
		return nil, nil, model.ErrTokenInvalid
	}

	return session.FromClaims(claims.UserID, claims.Username), claims, nil
}

func (s *authServiceImpl) Revoke(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokenRepo.Revoke(ctx, claims.UserID, claims.ID); err != nil {
		return fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}
	return nil
}

func (s *authServiceImpl) RevokeAll(ctx context.Context, userID int64) error {
	n, err := s.tokenRepo.RevokeAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}
	s.logger.Info("Revoked tokens of user", zap.Int64("userID", userID), zap.Int64("count", n))
	return nil
}
