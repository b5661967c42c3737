package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vidora/internal/model"
)

// commentRepository implements CommentRepository using sqlx
type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment with the author's identity already denormalized
// onto it by the service.
func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (video_id, user_id, username, avatar_url, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, c.VideoID, c.UserID, c.Username, c.AvatarURL, c.Text).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return model.ErrVideoNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Update edits the text of the caller's own comment on the given video and
// refreshes updated_at. A comment that exists but belongs to someone else
// yields ErrNotCommentAuthor.
func (r *commentRepository) Update(ctx context.Context, commentID, videoID, userID int64, text string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET text = $1, updated_at = NOW()
		WHERE id = $2 AND video_id = $3 AND user_id = $4
		RETURNING id, video_id, user_id, username, avatar_url, text, created_at, updated_at
	`

	var c model.Comment
	err := r.db.QueryRowxContext(ctx, query, text, commentID, videoID, userID).StructScan(&c)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.classifyMiss(ctx, commentID, videoID)
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &c, nil
}

// Delete removes the caller's own comment from the given video.
func (r *commentRepository) Delete(ctx context.Context, commentID, videoID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND video_id = $2 AND user_id = $3`,
		commentID, videoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return r.classifyMiss(ctx, commentID, videoID)
	}

	return nil
}

// ListByVideo returns the video's comments oldest first.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	query := `
		SELECT id, video_id, user_id, username, avatar_url, text, created_at, updated_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at ASC
	`

	comments := []model.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// classifyMiss distinguishes a missing comment from one owned by another
// user after a zero-row write.
func (r *commentRepository) classifyMiss(ctx context.Context, commentID, videoID int64) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1 AND video_id = $2)`, commentID, videoID)
	if err != nil {
		return fmt.Errorf("failed to check comment existence: %w", err)
	}
	if exists {
		return model.ErrNotCommentAuthor
	}
	return model.ErrCommentNotFound
}
