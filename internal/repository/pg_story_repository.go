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

var _ StoryRepository = (*pgStoryRepository)(nil)

const storyColumns = `story_id, user_id, title, genre, status, synopsis, creation_date`

type pgStoryRepository struct {
	db     database.DBTX
	logger *zap.Logger
}

func NewPgStoryRepository(db database.DBTX, logger *zap.Logger) StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("PgStoryRepo"),
	}
}

func (r *pgStoryRepository) Create(ctx context.Context, ownerID int64, story *model.Story) error {
	query := `INSERT INTO story (user_id, title, genre, status, synopsis) VALUES ($1, $2, $3, $4, $5)
		RETURNING story_id, creation_date`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID), zap.String("title", story.Title))

	err := r.db.QueryRow(ctx, query, ownerID, story.Title, story.Genre, string(story.Status), story.Synopsis).
		Scan(&story.ID, &story.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Story insert returned no id", zap.Int64("userID", ownerID))
			return model.ErrCreationFailed
		}
		r.logger.Error("Failed to create story", zap.Error(err), zap.Int64("userID", ownerID))
		return database.Classify("create story", err)
	}
	story.UserID = ownerID
	r.logger.Info("Story created", zap.Int64("storyID", story.ID), zap.Int64("userID", ownerID))
	return nil
}

func (r *pgStoryRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM story WHERE story_id = $1 AND user_id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("storyID", id), zap.Int64("userID", ownerID))

	var story model.Story
	if err := pgxscan.Get(ctx, r.db, &story, query, id, ownerID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get story", zap.Error(err), zap.Int64("storyID", id))
		return nil, database.Classify("get story", err)
	}
	return &story, nil
}

func (r *pgStoryRepository) Update(ctx context.Context, ownerID int64, story *model.Story) error {
	query := `UPDATE story SET title = $1, genre = $2, status = $3, synopsis = $4 WHERE story_id = $5 AND user_id = $6`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("storyID", story.ID), zap.Int64("userID", ownerID))

	tag, err := r.db.Exec(ctx, query, story.Title, story.Genre, string(story.Status), story.Synopsis, story.ID, ownerID)
	if err != nil {
		r.logger.Error("Failed to update story", zap.Error(err), zap.Int64("storyID", story.ID))
		return database.Classify("update story", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("Story update matched no rows", zap.Int64("storyID", story.ID))
	}
	return nil
}

func (r *pgStoryRepository) ListByUser(ctx context.Context, ownerID int64) ([]model.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM story WHERE user_id = $1 ORDER BY story_id`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("userID", ownerID))

	stories := make([]model.Story, 0)
	if err := pgxscan.Select(ctx, r.db, &stories, query, ownerID); err != nil {
		r.logger.Error("Failed to list stories", zap.Error(err), zap.Int64("userID", ownerID))
		return nil, database.Classify("list stories", err)
	}
	return stories, nil
}

func (r *pgStoryRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM story WHERE story_id = $1 AND user_id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int64("storyID", id), zap.Int64("userID", ownerID))

	if _, err := r.db.Exec(ctx, query, id, ownerID); err != nil {
		r.logger.Error("Failed to delete story", zap.Error(err), zap.Int64("storyID", id))
		return database.Classify("delete story", err)
	}
	return nil
}
