package service

import (
	"context"
	"errors"
	"testing"

	"vidora/internal/model"
)

func TestCommentService_Create_DenormalizesAuthor(t *testing.T) {
	avatar := "https://cdn.example.com/avatars/alice.jpg"
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "alice", AvatarURL: &avatar}, nil
		},
	}
	var stored *model.Comment
	commentRepo := &mockCommentRepository{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			comment.ID = 1
			stored = comment
			return nil
		},
	}
	svc := NewCommentService(commentRepo, &mockVideoRepository{}, userRepo)

	comment, err := svc.Create(context.Background(), 10, 42, &model.CreateCommentRequest{Text: "First!"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if stored.Username != "alice" {
		t.Errorf("stored username = %q, want %q", stored.Username, "alice")
	}
	if stored.AvatarURL == nil || *stored.AvatarURL != avatar {
		t.Errorf("stored avatar = %v, want %q", stored.AvatarURL, avatar)
	}
	if comment.VideoID != 10 || comment.UserID != 42 {
		t.Errorf("comment video/user = %d/%d, want 10/42", comment.VideoID, comment.UserID)
	}
}

func TestCommentService_Create_TextRequired(t *testing.T) {
	svc := NewCommentService(&mockCommentRepository{}, &mockVideoRepository{}, &mockUserRepository{})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Create(context.Background(), 10, 42, &model.CreateCommentRequest{Text: text})
		if !errors.Is(err, model.ErrTextRequired) {
			t.Errorf("text %q: error = %v, want %v", text, err, model.ErrTextRequired)
		}
	}
}

func TestCommentService_Create_VideoMissing(t *testing.T) {
	videoRepo := &mockVideoRepository{
		existsFn: func(ctx context.Context, videoID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewCommentService(&mockCommentRepository{}, videoRepo, &mockUserRepository{})

	_, err := svc.Create(context.Background(), 999, 42, &model.CreateCommentRequest{Text: "hello"})
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrVideoNotFound)
	}
}

func TestCommentService_Update_TrimsText(t *testing.T) {
	var gotText string
	commentRepo := &mockCommentRepository{
		updateFn: func(ctx context.Context, commentID, videoID, userID int64, text string) (*model.Comment, error) {
			gotText = text
			return &model.Comment{ID: commentID, Text: text}, nil
		},
	}
	svc := NewCommentService(commentRepo, &mockVideoRepository{}, &mockUserRepository{})

	_, err := svc.Update(context.Background(), 1, 10, 42, &model.UpdateCommentRequest{Text: "  edited  "})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if gotText != "edited" {
		t.Errorf("text passed to repo = %q, want %q", gotText, "edited")
	}
}

func TestCommentService_Update_AuthorOnly(t *testing.T) {
	commentRepo := &mockCommentRepository{
		updateFn: func(ctx context.Context, commentID, videoID, userID int64, text string) (*model.Comment, error) {
			return nil, model.ErrNotCommentAuthor
		},
	}
	svc := NewCommentService(commentRepo, &mockVideoRepository{}, &mockUserRepository{})

	_, err := svc.Update(context.Background(), 1, 10, 42, &model.UpdateCommentRequest{Text: "edited"})
	if !errors.Is(err, model.ErrNotCommentAuthor) {
		t.Errorf("error = %v, want %v", err, model.ErrNotCommentAuthor)
	}
}

func TestCommentService_Delete_VideoMissing(t *testing.T) {
	videoRepo := &mockVideoRepository{
		existsFn: func(ctx context.Context, videoID int64) (bool, error) {
			return false, nil
		},
	}
	deleted := false
	commentRepo := &mockCommentRepository{
		deleteFn: func(ctx context.Context, commentID, videoID, userID int64) error {
			deleted = true
			return nil
		},
	}
	svc := NewCommentService(commentRepo, videoRepo, &mockUserRepository{})

	err := svc.Delete(context.Background(), 1, 999, 42)
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrVideoNotFound)
	}
	if deleted {
		t.Error("comment delete should not run when the video is missing")
	}
}
