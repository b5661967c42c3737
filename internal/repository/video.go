package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vidora/internal/model"
)

// videoRepository implements VideoRepository using sqlx
type videoRepository struct {
	db *sqlx.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

const videoSelectColumns = `
	v.id, v.title, v.description, v.video_url, v.thumbnail_url, v.user_id,
	v.channel_id, v.views, v.categories, v.duration, v.created_at, v.updated_at,
	u.username AS username, u.avatar_url AS user_avatar,
	c.name AS channel_name, c.avatar_url AS channel_avatar
`

const videoSelectJoins = `
	FROM videos v
	JOIN users u ON u.id = v.user_id
	JOIN channels c ON c.id = v.channel_id
`

// Create inserts the video and fills in generated fields.
func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (title, description, video_url, thumbnail_url, user_id, channel_id, categories, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, views, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.UserID, v.ChannelID, v.Categories, v.Duration).
		Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// GetByID loads the video with uploader and channel identity, without
// touching the view counter.
func (r *videoRepository) GetByID(ctx context.Context, videoID int64) (*model.Video, error) {
	query := `SELECT ` + videoSelectColumns + videoSelectJoins + ` WHERE v.id = $1`

	var v model.Video
	err := r.db.GetContext(ctx, &v, query, videoID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}

	return &v, nil
}

// IncrementViews bumps the counter atomically and returns the fresh row.
// Concurrent reads each land their own increment.
func (r *videoRepository) IncrementViews(ctx context.Context, videoID int64) (*model.Video, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = $1`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, model.ErrVideoNotFound
	}

	return r.GetByID(ctx, videoID)
}

// List returns all videos newest first.
func (r *videoRepository) List(ctx context.Context) ([]model.Video, error) {
	query := `SELECT ` + videoSelectColumns + videoSelectJoins + ` ORDER BY v.created_at DESC`

	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	return videos, nil
}

// Search returns videos whose title or description matches the query,
// case-insensitively, newest first.
func (r *videoRepository) Search(ctx context.Context, q string) ([]model.Video, error) {
	query := `SELECT ` + videoSelectColumns + videoSelectJoins + `
		WHERE v.title ILIKE '%' || $1 || '%' OR v.description ILIKE '%' || $1 || '%'
		ORDER BY v.created_at DESC`

	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	return videos, nil
}

// ListByUser returns all videos uploaded by the given user, newest first.
func (r *videoRepository) ListByUser(ctx context.Context, userID int64) ([]model.Video, error) {
	query := `SELECT ` + videoSelectColumns + videoSelectJoins + `
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC`

	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos by user: %w", err)
	}

	return videos, nil
}

// UpdateFields applies an owner-only partial update of title and description.
// A row owned by someone else yields ErrNotVideoOwner.
func (r *videoRepository) UpdateFields(ctx context.Context, videoID, userID int64, title, description *string) (*model.Video, error) {
	query := `
		UPDATE videos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, title, description, videoID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		exists, existsErr := r.Exists(ctx, videoID)
		if existsErr != nil {
			return nil, existsErr
		}
		if exists {
			return nil, model.ErrNotVideoOwner
		}
		return nil, model.ErrVideoNotFound
	}

	return r.GetByID(ctx, videoID)
}

// Delete removes the video if the caller owns it. Comments and reactions go
// with it via ON DELETE CASCADE.
func (r *videoRepository) Delete(ctx context.Context, videoID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM videos WHERE id = $1 AND user_id = $2`, videoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		exists, existsErr := r.Exists(ctx, videoID)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return model.ErrNotVideoOwner
		}
		return model.ErrVideoNotFound
	}

	return nil
}

// Exists reports whether a video with the given ID exists.
func (r *videoRepository) Exists(ctx context.Context, videoID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}
	return exists, nil
}

// SetReaction upserts the caller's reaction. The primary key on
// (video_id, user_id) means setting a like replaces a standing dislike and
// vice versa, so the two sets cannot overlap.
func (r *videoRepository) SetReaction(ctx context.Context, videoID, userID int64, reaction string) error {
	query := `
		INSERT INTO video_reactions (video_id, user_id, reaction, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (video_id, user_id) DO UPDATE SET reaction = EXCLUDED.reaction, created_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, videoID, userID, reaction)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return model.ErrVideoNotFound
		}
		return fmt.Errorf("failed to set reaction: %w", err)
	}
	return nil
}

// ClearReaction removes the caller's reaction only when it matches the
// given kind; an unlike does not cancel a dislike. Clearing a reaction
// that is not there is a no-op.
func (r *videoRepository) ClearReaction(ctx context.Context, videoID, userID int64, reaction string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM video_reactions WHERE video_id = $1 AND user_id = $2 AND reaction = $3`,
		videoID, userID, reaction)
	if err != nil {
		return fmt.Errorf("failed to clear reaction: %w", err)
	}
	return nil
}

// GetReactions batch-loads the like and dislike sets for the given videos.
// Videos with no reactions are absent from the result map.
func (r *videoRepository) GetReactions(ctx context.Context, videoIDs []int64) (map[int64]model.ReactionSets, error) {
	reactions := map[int64]model.ReactionSets{}
	if len(videoIDs) == 0 {
		return reactions, nil
	}

	query := `
		SELECT video_id, user_id, reaction
		FROM video_reactions
		WHERE video_id = ANY($1)
		ORDER BY created_at ASC
	`

	var rows []struct {
		VideoID  int64  `db:"video_id"`
		UserID   int64  `db:"user_id"`
		Reaction string `db:"reaction"`
	}
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(videoIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions: %w", err)
	}

	for _, row := range rows {
		sets := reactions[row.VideoID]
		switch row.Reaction {
		case model.ReactionLike:
			sets.Likes = append(sets.Likes, row.UserID)
		case model.ReactionDislike:
			sets.Dislikes = append(sets.Dislikes, row.UserID)
		}
		reactions[row.VideoID] = sets
	}

	return reactions, nil
}
