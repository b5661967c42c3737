package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidora/internal/model"
	"vidora/internal/repository"
)

// ChannelService handles business logic for channel operations
type ChannelService struct {
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
}

func NewChannelService(channelRepo repository.ChannelRepository, videoRepo repository.VideoRepository) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
	}
}

// Create makes a channel for the user, or returns the one they already own.
// Signup creates a channel for everyone, so the normal outcome here is the
// existing channel coming back unchanged.
func (s *ChannelService) Create(ctx context.Context, userID int64, req *model.CreateChannelRequest) (*model.Channel, bool, error) {
	existing, err := s.channelRepo.GetByUserID(ctx, userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrChannelNotFound) {
		return nil, false, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: channel name is required", model.ErrChannelInvalid)
	}
	if len(name) > model.MaxChannelNameLength {
		return nil, false, fmt.Errorf("%w: channel name must be at most %d characters", model.ErrChannelInvalid, model.MaxChannelNameLength)
	}
	if len(req.Description) > model.MaxChannelDescriptionLength {
		return nil, false, fmt.Errorf("%w: channel description must be at most %d characters", model.ErrChannelInvalid, model.MaxChannelDescriptionLength)
	}

	channel := &model.Channel{
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		AvatarURL:   req.Avatar,
	}

	if err := s.channelRepo.CreateForUser(ctx, channel); err != nil {
		return nil, false, err
	}

	return channel, true, nil
}

// GetPage loads the channel together with all videos its owner uploaded,
// newest first.
func (s *ChannelService) GetPage(ctx context.Context, channelID int64) (*model.ChannelPage, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.ListByUser(ctx, channel.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel videos: %w", err)
	}

	return &model.ChannelPage{Channel: channel, Videos: videos}, nil
}

// Update applies an owner-only partial update of name, description and
// avatar.
func (s *ChannelService) Update(ctx context.Context, channelID, userID int64, req *model.UpdateChannelRequest) (*model.Channel, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: channel name cannot be empty", model.ErrChannelInvalid)
		}
		if len(name) > model.MaxChannelNameLength {
			return nil, fmt.Errorf("%w: channel name must be at most %d characters", model.ErrChannelInvalid, model.MaxChannelNameLength)
		}
		req.Name = &name
	}
	if req.Description != nil && len(*req.Description) > model.MaxChannelDescriptionLength {
		return nil, fmt.Errorf("%w: channel description must be at most %d characters", model.ErrChannelInvalid, model.MaxChannelDescriptionLength)
	}

	return s.channelRepo.Update(ctx, channelID, userID, *req)
}

// Subscribe adds the user to the channel's subscribers. Subscribing to your
// own channel is rejected.
func (s *ChannelService) Subscribe(ctx context.Context, channelID, userID int64) error {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}
	if channel.UserID == userID {
		return model.ErrOwnChannel
	}

	return s.channelRepo.Subscribe(ctx, channelID, userID)
}

// Unsubscribe removes the user from the channel's subscribers.
func (s *ChannelService) Unsubscribe(ctx context.Context, channelID, userID int64) error {
	return s.channelRepo.Unsubscribe(ctx, channelID, userID)
}

// GetByUserID returns the channel owned by the user.
func (s *ChannelService) GetByUserID(ctx context.Context, userID int64) (*model.Channel, error) {
	return s.channelRepo.GetByUserID(ctx, userID)
}
