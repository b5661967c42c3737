package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidora/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithChannel inserts the user and their default channel in a single
// transaction and links them bidirectionally. A failure partway through
// leaves neither record behind.
func (r *userRepository) CreateWithChannel(ctx context.Context, u *model.User, ch *model.Channel) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (username, email, password_hashed, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, userQuery, u.Username, u.Email, u.PasswordHashed, u.AvatarURL).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapUniqueViolation(err))
	}

	channelQuery := `
		INSERT INTO channels (user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, subscriber_count, total_views, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, channelQuery, u.ID, ch.Name, ch.Description).
		Scan(&ch.ID, &ch.SubscriberCount, &ch.TotalViews, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert channel: %w", mapUniqueViolation(err))
	}
	ch.UserID = u.ID

	_, err = tx.ExecContext(ctx, `UPDATE users SET channel_id = $1, updated_at = NOW() WHERE id = $2`, ch.ID, u.ID)
	if err != nil {
		return fmt.Errorf("link user to channel: %w", err)
	}
	u.ChannelID = &ch.ID

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hashed, avatar_url, channel_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hashed, avatar_url, channel_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// FindByUsernameOrEmail returns a user matching either field, used to name
// the colliding field before an insert is attempted.
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hashed, avatar_url, channel_id, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by username or email: %w", err)
	}

	return &u, nil
}

// UpdateAvatar sets the user's avatar URL.
func (r *userRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2`, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
