package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a video. The author's username and avatar
// are copied onto the row at creation time and are not refreshed when the
// profile later changes; clients render from these stored values.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	VideoID   int64     `db:"video_id" json:"videoId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Username  string    `db:"username" json:"username"`
	AvatarURL *string   `db:"avatar_url" json:"avatar"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateCommentRequest is the request body for adding a comment.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// UpdateCommentRequest is the request body for editing a comment.
type UpdateCommentRequest struct {
	Text string `json:"text"`
}

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("not the author of this comment")
	ErrTextRequired     = errors.New("comment text is required")
)
