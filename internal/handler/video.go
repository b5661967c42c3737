package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidora/internal/httputil"
	"vidora/internal/model"
	"vidora/internal/service"
	"vidora/internal/transport/http/middleware"
)

type VideoHandler struct {
	videoService *service.VideoService
	debug        bool
}

func NewVideoHandler(videoService *service.VideoService, debug bool) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		debug:        debug,
	}
}

// List handles GET /videos
// Returns all videos newest first, deduplicated by source URL.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videoService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List videos handler: err=%v", err)
		httputil.WriteInternal(w, h.debug, err, "Failed to list videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}

// Search handles GET /videos/search?q=term
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	videos, err := h.videoService.Search(r.Context(), query)
	if err != nil {
		log.Printf("[ERROR] Search videos handler: q=%q err=%v", query, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to search videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}

// GetByID handles GET /videos/:id
// Reading a video counts as a view, every time, for everyone.
func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}

	video, err := h.videoService.GetWithView(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		log.Printf("[ERROR] Get video handler: video=%d err=%v", videoID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to get video")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, video)
}

// Create handles POST /videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	video, err := h.videoService.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired),
			errors.Is(err, model.ErrURLRequired),
			errors.Is(err, model.ErrChannelIDRequired):
			httputil.WriteValidation(w, err.Error())
		case errors.Is(err, model.ErrChannelNotFound):
			httputil.WriteValidation(w, "You do not have a channel yet")
		case errors.Is(err, model.ErrNotChannelOwner):
			httputil.WriteForbidden(w, "You can only upload to your own channel")
		default:
			log.Printf("[ERROR] Create video handler: user=%d err=%v", userID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to create video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, video)
}

// Update handles PATCH /videos/:id
// With an action in the body it toggles the caller's reaction; otherwise it
// is an owner-only edit of title and description.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}

	var req model.UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	video, err := h.videoService.Update(r.Context(), videoID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You can only edit your own videos")
		case errors.Is(err, model.ErrInvalidAction):
			httputil.WriteValidation(w, "Unknown action")
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteValidation(w, err.Error())
		default:
			log.Printf("[ERROR] Update video handler: user=%d video=%d err=%v", userID, videoID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to update video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, video)
}

// Delete handles DELETE /videos/:id
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}

	err := h.videoService.Delete(r.Context(), videoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You can only delete your own videos")
		default:
			log.Printf("[ERROR] Delete video handler: user=%d video=%d err=%v", userID, videoID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to delete video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Video deleted"})
}

// parseID reads a numeric URL parameter. A malformed id cannot name any
// resource, so it reports not found rather than a validation error.
func parseID(w http.ResponseWriter, r *http.Request, param, notFoundMessage string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteNotFound(w, notFoundMessage)
		return 0, false
	}
	return id, true
}
