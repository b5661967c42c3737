package service

// Mock repositories for service tests. Each mock implements the repository
// interface with function fields, so every test defines exactly the behavior
// it needs and everything else falls back to a sane default.

import (
	"context"

	"vidora/internal/model"
	"vidora/internal/queue"
)

type mockUserRepository struct {
	createWithChannelFn     func(ctx context.Context, user *model.User, channel *model.Channel) error
	getByIDFn               func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn            func(ctx context.Context, email string) (*model.User, error)
	findByUsernameOrEmailFn func(ctx context.Context, username, email string) (*model.User, error)
	updateAvatarFn          func(ctx context.Context, userID int64, avatarURL string) error

	createCalls int
}

func (m *mockUserRepository) CreateWithChannel(ctx context.Context, user *model.User, channel *model.Channel) error {
	m.createCalls++
	if m.createWithChannelFn != nil {
		return m.createWithChannelFn(ctx, user, channel)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if m.findByUsernameOrEmailFn != nil {
		return m.findByUsernameOrEmailFn(ctx, username, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	if m.updateAvatarFn != nil {
		return m.updateAvatarFn(ctx, userID, avatarURL)
	}
	return nil
}

type mockChannelRepository struct {
	createForUserFn       func(ctx context.Context, channel *model.Channel) error
	getByIDFn             func(ctx context.Context, id int64) (*model.Channel, error)
	getByUserIDFn         func(ctx context.Context, userID int64) (*model.Channel, error)
	updateFn              func(ctx context.Context, channelID, userID int64, req model.UpdateChannelRequest) (*model.Channel, error)
	existsFn              func(ctx context.Context, channelID int64) (bool, error)
	subscribeFn           func(ctx context.Context, channelID, userID int64) error
	unsubscribeFn         func(ctx context.Context, channelID, userID int64) error
	incrementTotalViewsFn func(ctx context.Context, channelID int64, delta int64) error
}

func (m *mockChannelRepository) CreateForUser(ctx context.Context, channel *model.Channel) error {
	if m.createForUserFn != nil {
		return m.createForUserFn(ctx, channel)
	}
	return nil
}

func (m *mockChannelRepository) GetByID(ctx context.Context, id int64) (*model.Channel, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrChannelNotFound
}

func (m *mockChannelRepository) GetByUserID(ctx context.Context, userID int64) (*model.Channel, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, model.ErrChannelNotFound
}

func (m *mockChannelRepository) Update(ctx context.Context, channelID, userID int64, req model.UpdateChannelRequest) (*model.Channel, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, channelID, userID, req)
	}
	return nil, model.ErrChannelNotFound
}

func (m *mockChannelRepository) Exists(ctx context.Context, channelID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, channelID)
	}
	return false, nil
}

func (m *mockChannelRepository) Subscribe(ctx context.Context, channelID, userID int64) error {
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, channelID, userID)
	}
	return nil
}

func (m *mockChannelRepository) Unsubscribe(ctx context.Context, channelID, userID int64) error {
	if m.unsubscribeFn != nil {
		return m.unsubscribeFn(ctx, channelID, userID)
	}
	return nil
}

func (m *mockChannelRepository) IncrementTotalViews(ctx context.Context, channelID int64, delta int64) error {
	if m.incrementTotalViewsFn != nil {
		return m.incrementTotalViewsFn(ctx, channelID, delta)
	}
	return nil
}

type mockVideoRepository struct {
	createFn         func(ctx context.Context, video *model.Video) error
	getByIDFn        func(ctx context.Context, videoID int64) (*model.Video, error)
	incrementViewsFn func(ctx context.Context, videoID int64) (*model.Video, error)
	listFn           func(ctx context.Context) ([]model.Video, error)
	searchFn         func(ctx context.Context, query string) ([]model.Video, error)
	listByUserFn     func(ctx context.Context, userID int64) ([]model.Video, error)
	updateFieldsFn   func(ctx context.Context, videoID, userID int64, title, description *string) (*model.Video, error)
	deleteFn         func(ctx context.Context, videoID, userID int64) error
	existsFn         func(ctx context.Context, videoID int64) (bool, error)
	setReactionFn    func(ctx context.Context, videoID, userID int64, reaction string) error
	clearReactionFn  func(ctx context.Context, videoID, userID int64, reaction string) error
	getReactionsFn   func(ctx context.Context, videoIDs []int64) (map[int64]model.ReactionSets, error)

	setReactionCalls   []reactionCall
	clearReactionCalls []reactionCall
}

type reactionCall struct {
	VideoID  int64
	UserID   int64
	Reaction string
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	video.ID = 1
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, videoID int64) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, videoID)
	}
	return nil, model.ErrVideoNotFound
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, videoID int64) (*model.Video, error) {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, videoID)
	}
	return nil, model.ErrVideoNotFound
}

func (m *mockVideoRepository) List(ctx context.Context) ([]model.Video, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Video{}, nil
}

func (m *mockVideoRepository) Search(ctx context.Context, query string) ([]model.Video, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return []model.Video{}, nil
}

func (m *mockVideoRepository) ListByUser(ctx context.Context, userID int64) ([]model.Video, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []model.Video{}, nil
}

func (m *mockVideoRepository) UpdateFields(ctx context.Context, videoID, userID int64, title, description *string) (*model.Video, error) {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, videoID, userID, title, description)
	}
	return nil, model.ErrVideoNotFound
}

func (m *mockVideoRepository) Delete(ctx context.Context, videoID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID, userID)
	}
	return nil
}

func (m *mockVideoRepository) Exists(ctx context.Context, videoID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, videoID)
	}
	return true, nil
}

func (m *mockVideoRepository) SetReaction(ctx context.Context, videoID, userID int64, reaction string) error {
	m.setReactionCalls = append(m.setReactionCalls, reactionCall{videoID, userID, reaction})
	if m.setReactionFn != nil {
		return m.setReactionFn(ctx, videoID, userID, reaction)
	}
	return nil
}

func (m *mockVideoRepository) ClearReaction(ctx context.Context, videoID, userID int64, reaction string) error {
	m.clearReactionCalls = append(m.clearReactionCalls, reactionCall{videoID, userID, reaction})
	if m.clearReactionFn != nil {
		return m.clearReactionFn(ctx, videoID, userID, reaction)
	}
	return nil
}

func (m *mockVideoRepository) GetReactions(ctx context.Context, videoIDs []int64) (map[int64]model.ReactionSets, error) {
	if m.getReactionsFn != nil {
		return m.getReactionsFn(ctx, videoIDs)
	}
	return map[int64]model.ReactionSets{}, nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	updateFn      func(ctx context.Context, commentID, videoID, userID int64, text string) (*model.Comment, error)
	deleteFn      func(ctx context.Context, commentID, videoID, userID int64) error
	listByVideoFn func(ctx context.Context, videoID int64) ([]model.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepository) Update(ctx context.Context, commentID, videoID, userID int64, text string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, videoID, userID, text)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID, videoID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, videoID, userID)
	}
	return nil
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID)
	}
	return []model.Comment{}, nil
}

type viewEventCall struct {
	VideoID   int64
	ChannelID int64
}

type mockPublisher struct {
	publishFn func(ctx context.Context, stream string, event queue.ViewEvent) (string, error)

	videoViewedCalls []viewEventCall
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.ViewEvent) (string, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, stream, event)
	}
	return "1-0", nil
}

func (m *mockPublisher) PublishVideoViewed(ctx context.Context, videoID, channelID int64) (string, error) {
	m.videoViewedCalls = append(m.videoViewedCalls, viewEventCall{VideoID: videoID, ChannelID: channelID})
	return "1-0", nil
}
