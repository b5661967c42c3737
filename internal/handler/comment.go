package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vidora/internal/httputil"
	"vidora/internal/model"
	"vidora/internal/service"
	"vidora/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
	debug          bool
}

func NewCommentHandler(commentService *service.CommentService, debug bool) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		debug:          debug,
	}
}

// List handles GET /videos/:id/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByVideo(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		log.Printf("[ERROR] List comments handler: video=%d err=%v", videoID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to list comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// Create handles POST /videos/:id/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), videoID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTextRequired):
			httputil.WriteValidation(w, "Comment text is required")
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		default:
			log.Printf("[ERROR] Create comment handler: user=%d video=%d err=%v", userID, videoID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// Update handles PUT /videos/:id/comments/:commentId
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}
	commentID, ok := parseID(w, r, "commentId", "Comment not found")
	if !ok {
		return
	}

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, videoID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTextRequired):
			httputil.WriteValidation(w, "Comment text is required")
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentAuthor):
			httputil.WriteForbidden(w, "You can only edit your own comments")
		default:
			log.Printf("[ERROR] Update comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to update comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /videos/:id/comments/:commentId
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, ok := parseID(w, r, "id", "Video not found")
	if !ok {
		return
	}
	commentID, ok := parseID(w, r, "commentId", "Comment not found")
	if !ok {
		return
	}

	err := h.commentService.Delete(r.Context(), commentID, videoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentAuthor):
			httputil.WriteForbidden(w, "You can only delete your own comments")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}
