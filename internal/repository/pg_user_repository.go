package repository

import (
	"context"
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storykeep/internal/database"
	"storykeep/internal/model"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	statementRunner
	logger *zap.Logger
}

// NewPgUserRepository runs each statement on its own pooled connection.
func NewPgUserRepository(db database.DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		statementRunner: pooled(db),
		logger:          logger.Named("PgUserRepo"),
	}
}

// OpenPgUserRepository holds one connection for the lifetime of the
// repository. Close releases it.
func OpenPgUserRepository(ctx context.Context, provider *database.Provider, logger *zap.Logger) (UserRepository, error) {
	h, err := provider.Hold(ctx)
	if err != nil {
		return nil, err
	}
	return &pgUserRepository{
		statementRunner: held(h),
		logger:          logger.Named("PgUserRepo"),
	}, nil
}

func (r *pgUserRepository) Close() {
	r.release()
}

func (r *pgUserRepository) GetCredentials(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT user_id, username, password FROM users WHERE username = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("username", username))

	user := &model.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by username", zap.String("username", username))
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get user credentials", zap.Error(err), zap.String("username", username))
		return nil, database.Classify("get user credentials", err)
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING user_id, creation_date`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("username", user.Username), zap.String("email", user.Email))

	err := r.db.QueryRow(ctx, query, user.Username, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Warn("Attempted to create duplicate user by username", zap.String("username", user.Username))
			return model.ErrUserAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCreationFailed
		}
		r.logger.Error("Failed to create user", zap.Error(err), zap.String("username", user.Username))
		return database.Classify("create user", err)
	}
	r.logger.Info("User created successfully", zap.Int64("userID", user.ID), zap.String("username", user.Username))
	return nil
}

func (r *pgUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("username", username))

	var exists bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("Failed to check username", zap.Error(err), zap.String("username", username))
		return false, database.Classify("check username", err)
	}
	return exists, nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM users WHERE user_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", id))

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.Error(err), zap.Int64("userID", id))
		return false, database.Classify("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("No user deleted", zap.Int64("userID", id))
		return false, nil
	}
	r.logger.Info("User deleted", zap.Int64("userID", id))
	return true, nil
}

func (r *pgUserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `UPDATE users SET password = $2 WHERE user_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", id))

	tag, err := r.db.Exec(ctx, query, id, hash)
	if err != nil {
		r.logger.Error("Failed to update password record", zap.Error(err), zap.Int64("userID", id))
		return database.Classify("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT user_id, username, email, creation_date FROM users WHERE user_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", id))

	var user model.User
	if err := pgxscan.Get(ctx, r.db, &user, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get user by id", zap.Error(err), zap.Int64("userID", id))
		return nil, database.Classify("get user", err)
	}
	return &user, nil
}
