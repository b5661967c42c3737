package model

import (
	"errors"
	"time"
)

// Channel represents a user's channel. Every user owns at most one channel;
// the channels.user_id column carries a UNIQUE constraint so concurrent
// create attempts cannot produce duplicates.
type Channel struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"userId"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	AvatarURL       *string   `db:"avatar_url" json:"avatar"`
	BannerURL       *string   `db:"banner_url" json:"banner"`
	SubscriberCount int       `db:"subscriber_count" json:"subscriberCount"`
	TotalViews      int64     `db:"total_views" json:"totalViews"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Joined field (not in channels table)
	OwnerUsername *string `db:"owner_username" json:"ownerUsername,omitempty"`
}

// CreateChannelRequest is the request body for creating a channel.
type CreateChannelRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Avatar      *string `json:"avatar"`
}

// UpdateChannelRequest is the partial-update body; nil fields are untouched.
type UpdateChannelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
}

// ChannelPage is the GET /channels/:id response: the channel plus all videos
// owned by the channel's user, newest first.
type ChannelPage struct {
	Channel *Channel `json:"channel"`
	Videos  []Video  `json:"videos"`
}

// Channel field limits, matching the persisted schema.
const (
	MaxChannelNameLength        = 50
	MaxChannelDescriptionLength = 500
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrNotChannelOwner = errors.New("not the owner of this channel")
	ErrChannelInvalid  = errors.New("invalid channel data")

	// ErrAlreadySubscribed / ErrNotSubscribed guard the subscription toggle
	ErrAlreadySubscribed = errors.New("already subscribed to this channel")
	ErrNotSubscribed     = errors.New("not subscribed to this channel")
	ErrOwnChannel        = errors.New("cannot subscribe to your own channel")
)
