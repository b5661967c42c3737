package service

import (
	"context"
	"errors"
	"testing"

	"vidora/internal/model"
)

func TestChannelService_Create_ReturnsExisting(t *testing.T) {
	existing := &model.Channel{ID: 5, UserID: 42, Name: "alice"}
	channelRepo := &mockChannelRepository{
		getByUserIDFn: func(ctx context.Context, userID int64) (*model.Channel, error) {
			return existing, nil
		},
		createForUserFn: func(ctx context.Context, channel *model.Channel) error {
			t.Fatal("CreateForUser should not run when a channel already exists")
			return nil
		},
	}
	svc := NewChannelService(channelRepo, &mockVideoRepository{})

	channel, created, err := svc.Create(context.Background(), 42, &model.CreateChannelRequest{Name: "another"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if created {
		t.Error("created = true, want false for an existing channel")
	}
	if channel.ID != existing.ID {
		t.Errorf("channel ID = %d, want %d", channel.ID, existing.ID)
	}
}

func TestChannelService_Create_NewChannel(t *testing.T) {
	channelRepo := &mockChannelRepository{
		createForUserFn: func(ctx context.Context, channel *model.Channel) error {
			channel.ID = 7
			return nil
		},
	}
	svc := NewChannelService(channelRepo, &mockVideoRepository{})

	channel, created, err := svc.Create(context.Background(), 42, &model.CreateChannelRequest{Name: "  mychannel  "})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if channel.Name != "mychannel" {
		t.Errorf("channel name = %q, want trimmed %q", channel.Name, "mychannel")
	}
	if channel.UserID != 42 {
		t.Errorf("channel user = %d, want 42", channel.UserID)
	}
}

func TestChannelService_Create_NameRequired(t *testing.T) {
	svc := NewChannelService(&mockChannelRepository{}, &mockVideoRepository{})

	_, _, err := svc.Create(context.Background(), 42, &model.CreateChannelRequest{Name: "   "})
	if !errors.Is(err, model.ErrChannelInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrChannelInvalid)
	}
}

func TestChannelService_GetPage(t *testing.T) {
	channelRepo := &mockChannelRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Channel, error) {
			return &model.Channel{ID: id, UserID: 42}, nil
		},
	}
	videoRepo := &mockVideoRepository{
		listByUserFn: func(ctx context.Context, userID int64) ([]model.Video, error) {
			if userID != 42 {
				t.Errorf("listing videos for user %d, want 42", userID)
			}
			return []model.Video{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := NewChannelService(channelRepo, videoRepo)

	page, err := svc.GetPage(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if page.Channel.ID != 5 {
		t.Errorf("channel ID = %d, want 5", page.Channel.ID)
	}
	if len(page.Videos) != 2 {
		t.Errorf("got %d videos, want 2", len(page.Videos))
	}
}

func TestChannelService_Subscribe_OwnChannel(t *testing.T) {
	channelRepo := &mockChannelRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Channel, error) {
			return &model.Channel{ID: id, UserID: 42}, nil
		},
		subscribeFn: func(ctx context.Context, channelID, userID int64) error {
			t.Fatal("Subscribe should not run for the channel owner")
			return nil
		},
	}
	svc := NewChannelService(channelRepo, &mockVideoRepository{})

	err := svc.Subscribe(context.Background(), 5, 42)
	if !errors.Is(err, model.ErrOwnChannel) {
		t.Errorf("error = %v, want %v", err, model.ErrOwnChannel)
	}
}

func TestChannelService_Subscribe_MissingChannel(t *testing.T) {
	svc := NewChannelService(&mockChannelRepository{}, &mockVideoRepository{})

	err := svc.Subscribe(context.Background(), 999, 42)
	if !errors.Is(err, model.ErrChannelNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrChannelNotFound)
	}
}
