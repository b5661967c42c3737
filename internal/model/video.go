package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Video represents an uploaded video reference with its reaction sets.
type Video struct {
	ID           int64          `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	VideoURL     string         `db:"video_url" json:"videoUrl"`
	ThumbnailURL *string        `db:"thumbnail_url" json:"thumbnail"`
	UserID       int64          `db:"user_id" json:"userId"`
	ChannelID    int64          `db:"channel_id" json:"channelId"`
	Views        int64          `db:"views" json:"views"`
	Categories   pq.StringArray `db:"categories" json:"categories"`
	Duration     *string        `db:"duration" json:"duration,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`

	// Reaction sets: user ids, mutually exclusive per user.
	Likes    []int64 `json:"likes"`
	Dislikes []int64 `json:"dislikes"`

	// Joined display fields (not in videos table)
	Username      *string   `db:"username" json:"username,omitempty"`
	UserAvatar    *string   `db:"user_avatar" json:"userAvatar,omitempty"`
	ChannelName   *string   `db:"channel_name" json:"channelName,omitempty"`
	ChannelAvatar *string   `db:"channel_avatar" json:"channelAvatar,omitempty"`
	Comments      []Comment `json:"comments,omitempty"`
}

// MarshalJSON emits the source URL under both its internal name "videoUrl"
// and its external alias "url", matching what API consumers expect.
func (v Video) MarshalJSON() ([]byte, error) {
	type videoAlias Video
	return json.Marshal(struct {
		videoAlias
		URL string `json:"url"`
	}{
		videoAlias: videoAlias(v),
		URL:        v.VideoURL,
	})
}

// CreateVideoRequest is the request body for uploading a video reference.
// The source URL is accepted under either its external alias "url" or its
// internal name "videoUrl".
type CreateVideoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	VideoURL    string   `json:"videoUrl"`
	Thumbnail   *string  `json:"thumbnail"`
	ChannelID   int64    `json:"channelId"`
	Categories  []string `json:"categories"`
	Duration    *string  `json:"duration"`
}

// SourceURL resolves the two accepted spellings of the source URL field.
func (r CreateVideoRequest) SourceURL() string {
	if r.URL != "" {
		return r.URL
	}
	return r.VideoURL
}

// UpdateVideoRequest is the PATCH /videos/:id body. When Action is set the
// request is a reaction toggle; otherwise it is an owner-only partial update
// of title and description.
type UpdateVideoRequest struct {
	Action      string  `json:"action"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Reaction toggle actions
const (
	ActionLike      = "like"
	ActionUnlike    = "unlike"
	ActionDislike   = "dislike"
	ActionUndislike = "undislike"
)

// Reaction values persisted in video_reactions.reaction
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// ReactionSets holds the like/dislike membership for one video.
type ReactionSets struct {
	Likes    []int64
	Dislikes []int64
}

// Video field limits, matching the persisted schema.
const (
	MaxVideoTitleLength       = 100
	MaxVideoDescriptionLength = 5000
)

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrNotVideoOwner     = errors.New("not the owner of this video")
	ErrTitleRequired     = errors.New("title is required")
	ErrURLRequired       = errors.New("video URL is required")
	ErrChannelIDRequired = errors.New("channelId is required")
	ErrInvalidAction     = errors.New("invalid action")
)
