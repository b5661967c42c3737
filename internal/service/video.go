package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"vidora/internal/cache"
	"vidora/internal/model"
	"vidora/internal/queue"
	"vidora/internal/repository"
)

// VideoService handles business logic for video operations.
// Cache and publisher are optional; a nil value disables that concern.
type VideoService struct {
	videoRepo   repository.VideoRepository
	channelRepo repository.ChannelRepository
	commentRepo repository.CommentRepository
	listCache   cache.VideoListCache
	publisher   queue.Publisher
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	channelRepo repository.ChannelRepository,
	commentRepo repository.CommentRepository,
	listCache cache.VideoListCache,
	publisher queue.Publisher,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		channelRepo: channelRepo,
		commentRepo: commentRepo,
		listCache:   listCache,
		publisher:   publisher,
	}
}

// Create validates and stores a new video reference under the caller's
// channel.
func (s *VideoService) Create(ctx context.Context, userID int64, req *model.CreateVideoRequest) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.ErrTitleRequired
	}
	if len(title) > model.MaxVideoTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", model.ErrTitleRequired, model.MaxVideoTitleLength)
	}
	if strings.TrimSpace(req.SourceURL()) == "" {
		return nil, model.ErrURLRequired
	}
	if len(req.Description) > model.MaxVideoDescriptionLength {
		return nil, fmt.Errorf("description must be at most %d characters", model.MaxVideoDescriptionLength)
	}
	if req.ChannelID == 0 {
		return nil, model.ErrChannelIDRequired
	}

	channel, err := s.channelRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.ChannelID != channel.ID {
		return nil, model.ErrNotChannelOwner
	}

	video := &model.Video{
		Title:        title,
		Description:  req.Description,
		VideoURL:     strings.TrimSpace(req.SourceURL()),
		ThumbnailURL: req.Thumbnail,
		UserID:       userID,
		ChannelID:    channel.ID,
		Categories:   req.Categories,
		Duration:     req.Duration,
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	video.Likes = []int64{}
	video.Dislikes = []int64{}

	s.invalidateListCache(ctx)

	return video, nil
}

// List returns all videos newest first with reaction sets attached,
// deduplicated by source URL: when several rows share a URL only the first
// in listing order survives.
func (s *VideoService) List(ctx context.Context) ([]model.Video, error) {
	if s.listCache != nil {
		cached, err := s.listCache.Get(ctx)
		if err != nil {
			log.Printf("[VideoService] List cache error: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	videos = dedupeByURL(videos)

	if err := s.attachReactions(ctx, videos); err != nil {
		return nil, err
	}

	if s.listCache != nil {
		if err := s.listCache.Set(ctx, videos); err != nil {
			log.Printf("[VideoService] List cache set error: %v", err)
		}
	}

	return videos, nil
}

// Search returns videos matching the query in title or description.
func (s *VideoService) Search(ctx context.Context, query string) ([]model.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Video{}, nil
	}

	videos, err := s.videoRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := s.attachReactions(ctx, videos); err != nil {
		return nil, err
	}

	return videos, nil
}

// GetWithView loads the video, counts the read as a view, and returns it
// with reactions and comments attached. Every read counts, including
// repeats and the uploader's own.
func (s *VideoService) GetWithView(ctx context.Context, videoID int64) (*model.Video, error) {
	video, err := s.videoRepo.IncrementViews(ctx, videoID)
	if err != nil {
		return nil, err
	}

	reactions, err := s.videoRepo.GetReactions(ctx, []int64{videoID})
	if err != nil {
		return nil, err
	}
	applyReactions(video, reactions[videoID])

	comments, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	video.Comments = comments

	if s.publisher != nil {
		if _, err := s.publisher.PublishVideoViewed(ctx, video.ID, video.ChannelID); err != nil {
			log.Printf("[VideoService] Failed to publish VideoViewed event: video=%d err=%v", video.ID, err)
		}
	}

	return video, nil
}

// Update handles PATCH requests. A request carrying an action toggles the
// caller's reaction; otherwise it is an owner-only edit of title and
// description.
func (s *VideoService) Update(ctx context.Context, videoID, userID int64, req *model.UpdateVideoRequest) (*model.Video, error) {
	if req.Action != "" {
		if err := s.applyAction(ctx, videoID, userID, req.Action); err != nil {
			return nil, err
		}
	} else {
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return nil, model.ErrTitleRequired
			}
			if len(title) > model.MaxVideoTitleLength {
				return nil, fmt.Errorf("%w: title must be at most %d characters", model.ErrTitleRequired, model.MaxVideoTitleLength)
			}
			req.Title = &title
		}
		if req.Description != nil && len(*req.Description) > model.MaxVideoDescriptionLength {
			return nil, fmt.Errorf("description must be at most %d characters", model.MaxVideoDescriptionLength)
		}

		if _, err := s.videoRepo.UpdateFields(ctx, videoID, userID, req.Title, req.Description); err != nil {
			return nil, err
		}
	}

	s.invalidateListCache(ctx)

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	reactions, err := s.videoRepo.GetReactions(ctx, []int64{videoID})
	if err != nil {
		return nil, err
	}
	applyReactions(video, reactions[videoID])

	return video, nil
}

// Delete removes the caller's own video together with its comments and
// reactions.
func (s *VideoService) Delete(ctx context.Context, videoID, userID int64) error {
	if err := s.videoRepo.Delete(ctx, videoID, userID); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

// applyAction maps a reaction action onto the reaction store. Setting a
// like or dislike replaces whatever reaction the caller held; clearing one
// that is not held is a no-op.
func (s *VideoService) applyAction(ctx context.Context, videoID, userID int64, action string) error {
	switch action {
	case model.ActionLike:
		return s.videoRepo.SetReaction(ctx, videoID, userID, model.ReactionLike)
	case model.ActionDislike:
		return s.videoRepo.SetReaction(ctx, videoID, userID, model.ReactionDislike)
	case model.ActionUnlike:
		return s.clearIfExists(ctx, videoID, userID, model.ReactionLike)
	case model.ActionUndislike:
		return s.clearIfExists(ctx, videoID, userID, model.ReactionDislike)
	default:
		return model.ErrInvalidAction
	}
}

// clearIfExists clears a reaction after confirming the video exists, so a
// no-op unlike on a missing video still comes back as not found.
func (s *VideoService) clearIfExists(ctx context.Context, videoID, userID int64, reaction string) error {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrVideoNotFound
	}
	return s.videoRepo.ClearReaction(ctx, videoID, userID, reaction)
}

// attachReactions batch-loads like/dislike sets for a listing.
func (s *VideoService) attachReactions(ctx context.Context, videos []model.Video) error {
	if len(videos) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}

	reactions, err := s.videoRepo.GetReactions(ctx, ids)
	if err != nil {
		return err
	}

	for i := range videos {
		applyReactions(&videos[i], reactions[videos[i].ID])
	}
	return nil
}

func (s *VideoService) invalidateListCache(ctx context.Context) {
	if s.listCache == nil {
		return
	}
	if err := s.listCache.Invalidate(ctx); err != nil {
		log.Printf("[VideoService] Cache invalidation error: %v", err)
	}
}

// dedupeByURL keeps only the first video in listing order for each source
// URL.
func dedupeByURL(videos []model.Video) []model.Video {
	seen := make(map[string]bool, len(videos))
	out := videos[:0]
	for _, v := range videos {
		if seen[v.VideoURL] {
			continue
		}
		seen[v.VideoURL] = true
		out = append(out, v)
	}
	return out
}

func applyReactions(v *model.Video, sets model.ReactionSets) {
	v.Likes = sets.Likes
	v.Dislikes = sets.Dislikes
	if v.Likes == nil {
		v.Likes = []int64{}
	}
	if v.Dislikes == nil {
		v.Dislikes = []int64{}
	}
}
