package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vidora/internal/model"
)

// channelRepository implements ChannelRepository using sqlx
type channelRepository struct {
	db *sqlx.DB
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *sqlx.DB) ChannelRepository {
	return &channelRepository{db: db}
}

// CreateForUser inserts the channel and points users.channel_id at it in one
// transaction. The UNIQUE constraint on channels.user_id rejects a second
// channel for the same user.
func (r *channelRepository) CreateForUser(ctx context.Context, ch *model.Channel) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO channels (user_id, name, description, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, subscriber_count, total_views, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, query, ch.UserID, ch.Name, ch.Description, ch.AvatarURL).
		Scan(&ch.ID, &ch.SubscriberCount, &ch.TotalViews, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert channel: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET channel_id = $1, updated_at = NOW() WHERE id = $2`, ch.ID, ch.UserID)
	if err != nil {
		return fmt.Errorf("link user to channel: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a channel by its ID with the owner's username joined on.
func (r *channelRepository) GetByID(ctx context.Context, id int64) (*model.Channel, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.description, c.avatar_url, c.banner_url,
		       c.subscriber_count, c.total_views, c.created_at, c.updated_at,
		       u.username AS owner_username
		FROM channels c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	var ch model.Channel
	err := r.db.GetContext(ctx, &ch, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel by id: %w", err)
	}

	return &ch, nil
}

// GetByUserID retrieves the channel owned by the given user.
func (r *channelRepository) GetByUserID(ctx context.Context, userID int64) (*model.Channel, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.description, c.avatar_url, c.banner_url,
		       c.subscriber_count, c.total_views, c.created_at, c.updated_at,
		       u.username AS owner_username
		FROM channels c
		JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1
	`

	var ch model.Channel
	err := r.db.GetContext(ctx, &ch, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel by user id: %w", err)
	}

	return &ch, nil
}

// Update applies the non-nil fields of req to the channel owned by userID.
// A row that exists but belongs to someone else yields ErrNotChannelOwner.
func (r *channelRepository) Update(ctx context.Context, channelID, userID int64, req model.UpdateChannelRequest) (*model.Channel, error) {
	query := `
		UPDATE channels
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, name, description, avatar_url, banner_url,
		          subscriber_count, total_views, created_at, updated_at
	`

	var ch model.Channel
	err := r.db.QueryRowxContext(ctx, query, req.Name, req.Description, req.Avatar, channelID, userID).
		StructScan(&ch)
	if err != nil {
		if err == sql.ErrNoRows {
			exists, existsErr := r.Exists(ctx, channelID)
			if existsErr != nil {
				return nil, existsErr
			}
			if exists {
				return nil, model.ErrNotChannelOwner
			}
			return nil, model.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}

	return &ch, nil
}

// Exists reports whether a channel with the given ID exists.
func (r *channelRepository) Exists(ctx context.Context, channelID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM channels WHERE id = $1)`, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to check channel existence: %w", err)
	}
	return exists, nil
}

// Subscribe records the subscription and bumps the counter in one transaction.
func (r *channelRepository) Subscribe(ctx context.Context, channelID, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO subscriptions (channel_id, user_id, created_at) VALUES ($1, $2, NOW())`,
		channelID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return model.ErrAlreadySubscribed
			case "23503":
				return model.ErrChannelNotFound
			}
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE channels SET subscriber_count = subscriber_count + 1, updated_at = NOW() WHERE id = $1`,
		channelID)
	if err != nil {
		return fmt.Errorf("increment subscriber count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Unsubscribe removes the subscription and decrements the counter.
func (r *channelRepository) Unsubscribe(ctx context.Context, channelID, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE channel_id = $1 AND user_id = $2`, channelID, userID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotSubscribed
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE channels SET subscriber_count = GREATEST(subscriber_count - 1, 0), updated_at = NOW() WHERE id = $1`,
		channelID)
	if err != nil {
		return fmt.Errorf("decrement subscriber count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// IncrementTotalViews folds a batch of view events into the channel counter.
func (r *channelRepository) IncrementTotalViews(ctx context.Context, channelID int64, delta int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE channels SET total_views = total_views + $1, updated_at = NOW() WHERE id = $2`,
		delta, channelID)
	if err != nil {
		return fmt.Errorf("failed to increment total views: %w", err)
	}
	return nil
}
