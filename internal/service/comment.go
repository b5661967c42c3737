package service

import (
	"context"
	"strings"

	"vidora/internal/model"
	"vidora/internal/repository"
)

// CommentService handles business logic for comment operations
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
	}
}

// Create adds a comment to the video, stamping the author's current
// username and avatar onto it. Those stored values are what clients render;
// later profile changes do not rewrite old comments.
func (s *CommentService) Create(ctx context.Context, videoID, userID int64, req *model.CreateCommentRequest) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, model.ErrTextRequired
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		VideoID:   videoID,
		UserID:    userID,
		Username:  author.Username,
		AvatarURL: author.AvatarURL,
		Text:      text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Update edits the caller's own comment.
func (s *CommentService) Update(ctx context.Context, commentID, videoID, userID int64, req *model.UpdateCommentRequest) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, model.ErrTextRequired
	}

	if err := s.ensureVideoExists(ctx, videoID); err != nil {
		return nil, err
	}

	return s.commentRepo.Update(ctx, commentID, videoID, userID, text)
}

// Delete removes the caller's own comment.
func (s *CommentService) Delete(ctx context.Context, commentID, videoID, userID int64) error {
	if err := s.ensureVideoExists(ctx, videoID); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, commentID, videoID, userID)
}

// ListByVideo returns the video's comments oldest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	if err := s.ensureVideoExists(ctx, videoID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByVideo(ctx, videoID)
}

func (s *CommentService) ensureVideoExists(ctx context.Context, videoID int64) error {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrVideoNotFound
	}
	return nil
}
