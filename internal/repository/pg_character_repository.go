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

var _ CharacterRepository = (*pgCharacterRepository)(nil)

const characterColumns = `character_id, user_id, name, description, backstory`

type pgCharacterRepository struct {
	db     database.DBTX
	logger *zap.Logger
}

func NewPgCharacterRepository(db database.DBTX, logger *zap.Logger) CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

func (r *pgCharacterRepository) Create(ctx context.Context, ownerID int64, c *model.Character) error {
	query := `INSERT INTO characters (user_id, name, description, backstory) VALUES ($1, $2, $3, $4) RETURNING character_id`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID), zap.String("name", c.Name))

	if err := r.db.QueryRow(ctx, query, ownerID, c.Name, c.Description, c.Backstory).Scan(&c.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Character insert returned no id", zap.Int64("userID", ownerID))
			return model.ErrCreationFailed
		}
		r.logger.Error("Failed to create character", zap.Error(err), zap.Int64("userID", ownerID))
		return database.Classify("create character", err)
	}
	c.UserID = ownerID
	r.logger.Info("Character created", zap.Int64("characterID", c.ID), zap.Int64("userID", ownerID))
	return nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1 AND user_id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("characterID", id), zap.Int64("userID", ownerID))

	var c model.Character
	if err := pgxscan.Get(ctx, r.db, &c, query, id, ownerID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get character", zap.Error(err), zap.Int64("characterID", id))
		return nil, database.Classify("get character", err)
	}
	return &c, nil
}

func (r *pgCharacterRepository) Update(ctx context.Context, ownerID int64, c *model.Character) error {
	query := `UPDATE characters SET name = $1, description = $2, backstory = $3 WHERE character_id = $4 AND user_id = $5`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("characterID", c.ID), zap.Int64("userID", ownerID))

	if _, err := r.db.Exec(ctx, query, c.Name, c.Description, c.Backstory, c.ID, ownerID); err != nil {
		r.logger.Error("Failed to update character", zap.Error(err), zap.Int64("characterID", c.ID))
		return database.Classify("update character", err)
	}
	return nil
}

func (r *pgCharacterRepository) ListByUser(ctx context.Context, ownerID int64) ([]model.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1 ORDER BY character_id`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID))

	characters := make([]model.Character, 0)
	if err := pgxscan.Select(ctx, r.db, &characters, query, ownerID); err != nil {
		r.logger.Error("Failed to list characters", zap.Error(err), zap.Int64("userID", ownerID))
		return nil, database.Classify("list characters", err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM characters WHERE character_id = $1 AND user_id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("characterID", id), zap.Int64("userID", ownerID))

	if _, err := r.db.Exec(ctx, query, id, ownerID); err != nil {
		r.logger.Error("Failed to delete character", zap.Error(err), zap.Int64("characterID", id))
		return database.Classify("delete character", err)
	}
	return nil
}
