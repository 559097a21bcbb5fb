package repository

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"storykeep/internal/database"
	"storykeep/internal/model"
)

var _ TraitRepository = (*pgTraitRepository)(nil)

type pgTraitRepository struct {
	statementRunner
	logger *zap.Logger
}

func NewPgTraitRepository(db database.DBTX, logger *zap.Logger) TraitRepository {
	return &pgTraitRepository{
		statementRunner: pooled(db),
		logger:          logger.Named("PgTraitRepo"),
	}
}

// OpenPgTraitRepository holds one connection until Close.
func OpenPgTraitRepository(ctx context.Context, provider *database.Provider, logger *zap.Logger) (TraitRepository, error) {
	h, err := provider.Hold(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTraitRepository{
		statementRunner: held(h),
		logger:          logger.Named("PgTraitRepo"),
	}, nil
}

func (r *pgTraitRepository) Close() {
	r.release()
}

func (r *pgTraitRepository) Add(ctx context.Context, ownerID int64, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `INSERT INTO traits (user_id, name) VALUES ($1, $2)`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID), zap.String("name", name))

	tag, err := r.db.Exec(ctx, query, ownerID, name)
	if err != nil {
		r.logger.Error("Failed to add trait", zap.Error(err), zap.String("name", name))
		return false, database.Classify("add trait", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindByName returns the oldest trait with the given name.
func (r *pgTraitRepository) FindByName(ctx context.Context, ownerID int64, name string) (*model.Trait, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT trait_id, user_id, name FROM traits WHERE user_id = $1 AND name = $2 ORDER BY trait_id LIMIT 1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID), zap.String("name", name))

	var trait model.Trait
	if err := pgxscan.Get(ctx, r.db, &trait, query, ownerID, name); err != nil {
		if pgxscan.NotFound(err) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to find trait", zap.Error(err), zap.String("name", name))
		return nil, database.Classify("find trait", err)
	}
	return &trait, nil
}

func (r *pgTraitRepository) RenameByID(ctx context.Context, ownerID, id int64, newName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `UPDATE traits SET name = $1 WHERE trait_id = $2 AND user_id = $3`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("traitID", id), zap.String("newName", newName))

	tag, err := r.db.Exec(ctx, query, newName, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to rename trait", zap.Error(err), zap.Int64("traitID", id))
		return false, database.Classify("rename trait", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgTraitRepository) Exists(ctx context.Context, ownerID int64, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT EXISTS (SELECT 1 FROM traits WHERE user_id = $1 AND name = $2)`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID), zap.String("name", name))

	var exists bool
	if err := r.db.QueryRow(ctx, query, ownerID, name).Scan(&exists); err != nil {
		r.logger.Error("Failed to check trait", zap.Error(err), zap.String("name", name))
		return false, database.Classify("check trait", err)
	}
	return exists, nil
}

// Delete removes every trait of the owner with the given name.
func (r *pgTraitRepository) Delete(ctx context.Context, ownerID int64, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM traits WHERE user_id = $1 AND name = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID), zap.String("name", name))

	tag, err := r.db.Exec(ctx, query, ownerID, name)
	if err != nil {
		r.logger.Error("Failed to delete trait", zap.Error(err), zap.String("name", name))
		return false, database.Classify("delete trait", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgTraitRepository) ListByUser(ctx context.Context, ownerID int64) ([]model.Trait, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT trait_id, user_id, name FROM traits WHERE user_id = $1 ORDER BY trait_id`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID))

	traits := make([]model.Trait, 0)
	if err := pgxscan.Select(ctx, r.db, &traits, query, ownerID); err != nil {
		r.logger.Error("Failed to list traits", zap.Error(err), zap.Int64("userID", ownerID))
		return nil, database.Classify("list traits", err)
	}
	return traits, nil
}
