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

type ChannelHandler struct {
	channelService *service.ChannelService
	debug          bool
}

func NewChannelHandler(channelService *service.ChannelService, debug bool) *ChannelHandler {
	return &ChannelHandler{
		channelService: channelService,
		debug:          debug,
	}
}

// Create handles POST /channels
// Signup already gives every account a channel, so this mostly returns the
// existing one: 200 for an existing channel, 201 when one was created.
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	channel, created, err := h.channelService.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrChannelInvalid) {
			httputil.WriteValidation(w, err.Error())
			return
		}
		log.Printf("[ERROR] Create channel handler: user=%d err=%v", userID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to create channel")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, channel)
}

// GetByID handles GET /channels/:id
// Returns the channel together with all of its videos, newest first.
func (h *ChannelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	channelID, ok := parseID(w, r, "id", "Channel not found")
	if !ok {
		return
	}

	page, err := h.channelService.GetPage(r.Context(), channelID)
	if err != nil {
		if errors.Is(err, model.ErrChannelNotFound) {
			httputil.WriteNotFound(w, "Channel not found")
			return
		}
		log.Printf("[ERROR] Get channel handler: channel=%d err=%v", channelID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to get channel")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// Update handles PATCH /channels/:id
func (h *ChannelHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	channelID, ok := parseID(w, r, "id", "Channel not found")
	if !ok {
		return
	}

	var req model.UpdateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	channel, err := h.channelService.Update(r.Context(), channelID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrChannelInvalid):
			httputil.WriteValidation(w, err.Error())
		case errors.Is(err, model.ErrChannelNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		case errors.Is(err, model.ErrNotChannelOwner):
			httputil.WriteForbidden(w, "You can only edit your own channel")
		default:
			log.Printf("[ERROR] Update channel handler: user=%d channel=%d err=%v", userID, channelID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to update channel")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, channel)
}

// Subscribe handles POST /channels/:id/subscribe
func (h *ChannelHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	channelID, ok := parseID(w, r, "id", "Channel not found")
	if !ok {
		return
	}

	err := h.channelService.Subscribe(r.Context(), channelID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrChannelNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		case errors.Is(err, model.ErrOwnChannel):
			httputil.WriteValidation(w, "You cannot subscribe to your own channel")
		case errors.Is(err, model.ErrAlreadySubscribed):
			httputil.WriteConflict(w, "Already subscribed to this channel")
		default:
			log.Printf("[ERROR] Subscribe handler: user=%d channel=%d err=%v", userID, channelID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to subscribe")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Subscribed"})
}

// Unsubscribe handles DELETE /channels/:id/subscribe
func (h *ChannelHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	channelID, ok := parseID(w, r, "id", "Channel not found")
	if !ok {
		return
	}

	err := h.channelService.Unsubscribe(r.Context(), channelID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrChannelNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		case errors.Is(err, model.ErrNotSubscribed):
			httputil.WriteConflict(w, "Not subscribed to this channel")
		default:
			log.Printf("[ERROR] Unsubscribe handler: user=%d channel=%d err=%v", userID, channelID, err)
			httputil.WriteInternal(w, h.debug, err, "Failed to unsubscribe")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed"})
}

// Mine handles GET /channels/me
// Returns the authenticated user's own channel.
func (h *ChannelHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	channel, err := h.channelService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrChannelNotFound) {
			httputil.WriteNotFound(w, "Channel not found")
			return
		}
		log.Printf("[ERROR] My channel handler: user=%d err=%v", userID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to get channel")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, channel)
}
