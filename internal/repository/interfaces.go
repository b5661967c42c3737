package repository

import (
	"context"

	"vidora/internal/model"
)

type UserRepository interface {
	// CreateWithChannel inserts the user and their default channel in one
	// transaction and links them both ways. Either both rows exist after the
	// call or neither does.
	CreateWithChannel(ctx context.Context, user *model.User, channel *model.Channel) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByUsernameOrEmail returns an existing user matching either field,
	// or model.ErrUserNotFound. Used for pre-insert conflict detection.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
}

type ChannelRepository interface {
	// CreateForUser inserts a channel and sets users.channel_id in one
	// transaction. The UNIQUE constraint on channels.user_id guarantees at
	// most one channel per user even under concurrent create attempts.
	CreateForUser(ctx context.Context, channel *model.Channel) error
	GetByID(ctx context.Context, id int64) (*model.Channel, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Channel, error)
	// Update applies a partial update; only non-nil fields change.
	// Ownership is enforced by the WHERE clause.
	Update(ctx context.Context, channelID, userID int64, req model.UpdateChannelRequest) (*model.Channel, error)
	Exists(ctx context.Context, channelID int64) (bool, error)
	Subscribe(ctx context.Context, channelID, userID int64) error
	Unsubscribe(ctx context.Context, channelID, userID int64) error
	IncrementTotalViews(ctx context.Context, channelID int64, delta int64) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	// GetByID loads the video without side effects.
	GetByID(ctx context.Context, videoID int64) (*model.Video, error)
	// IncrementViews atomically bumps the view counter and returns the
	// updated row. Every call counts: repeats and the owner's own reads.
	IncrementViews(ctx context.Context, videoID int64) (*model.Video, error)
	// List returns all videos newest first with uploader and channel
	// identity joined on for display.
	List(ctx context.Context) ([]model.Video, error)
	Search(ctx context.Context, query string) ([]model.Video, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Video, error)
	// UpdateFields applies an owner-only partial update of title/description.
	UpdateFields(ctx context.Context, videoID, userID int64, title, description *string) (*model.Video, error)
	Delete(ctx context.Context, videoID, userID int64) error
	Exists(ctx context.Context, videoID int64) (bool, error)
	// SetReaction upserts the caller's reaction; a user holds at most one
	// reaction per video, so likes and dislikes stay disjoint.
	SetReaction(ctx context.Context, videoID, userID int64, reaction string) error
	// ClearReaction removes the caller's reaction of the given kind only.
	ClearReaction(ctx context.Context, videoID, userID int64, reaction string) error
	// GetReactions batch-loads the like/dislike sets for the given videos.
	GetReactions(ctx context.Context, videoIDs []int64) (map[int64]model.ReactionSets, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// Update edits the text and refreshes updated_at; author-only.
	Update(ctx context.Context, commentID, videoID, userID int64, text string) (*model.Comment, error)
	Delete(ctx context.Context, commentID, videoID, userID int64) error
	ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error)
}
