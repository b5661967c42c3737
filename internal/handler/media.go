package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"vidora/internal/httputil"
	"vidora/internal/model"
	"vidora/internal/service"
	"vidora/internal/transport/http/middleware"
)

// MediaHandler serves image uploads. mediaService may be nil when object
// storage is not configured; the endpoints then answer 503.
type MediaHandler struct {
	mediaService *service.MediaService
	authService  *service.AuthService
	debug        bool
}

func NewMediaHandler(mediaService *service.MediaService, authService *service.AuthService, debug bool) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		authService:  authService,
		debug:        debug,
	}
}

// UploadAvatar handles POST /media/avatar
// Uploads the image, normalizes it to 200x200, and points the caller's
// profile at it.
func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if h.mediaService == nil {
		httputil.WriteServiceUnavailable(w, "Media uploads are not configured")
		return
	}

	file, header, ok := h.formFile(w, r, model.MaxAvatarSizeBytes)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		h.writeUploadError(w, err, "Failed to upload avatar")
		return
	}

	if err := h.authService.UpdateAvatar(r.Context(), userID, result.URL); err != nil {
		log.Printf("[ERROR] Upload avatar handler: user=%d err=%v", userID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to save avatar")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// UploadThumbnail handles POST /media/thumbnail
// Uploads the image and normalizes it to 640x360. The returned URL goes
// into a subsequent video create or update.
func (h *MediaHandler) UploadThumbnail(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if h.mediaService == nil {
		httputil.WriteServiceUnavailable(w, "Media uploads are not configured")
		return
	}

	file, header, ok := h.formFile(w, r, model.MaxThumbnailSizeBytes)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.mediaService.UploadThumbnail(r.Context(), file, header)
	if err != nil {
		h.writeUploadError(w, err, "Failed to upload thumbnail")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *MediaHandler) formFile(w http.ResponseWriter, r *http.Request, maxSize int64) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		httputil.WriteValidation(w, "Invalid multipart form")
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteValidation(w, "Missing file field")
		return nil, nil, false
	}

	return file, header, true
}

func (h *MediaHandler) writeUploadError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WriteValidationWithCode(w, model.CodeFileTooLarge, "File exceeds the size limit")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteValidationWithCode(w, model.CodeInvalidImageType, "Unsupported image type. Allowed: jpeg, png, gif, webp")
	default:
		log.Printf("[ERROR] Media upload: err=%v", err)
		httputil.WriteInternal(w, h.debug, err, fallback)
	}
}
