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

type AuthHandler struct {
	authService *service.AuthService
	debug       bool
}

func NewAuthHandler(authService *service.AuthService, debug bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		debug:       debug,
	}
}

// Signup handles POST /auth/signup
// Creates the account together with its default channel and returns a token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	resp, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameInvalid),
			errors.Is(err, model.ErrEmailInvalid),
			errors.Is(err, model.ErrPasswordTooShort):
			httputil.WriteValidation(w, err.Error())
		case errors.Is(err, model.ErrUsernameTaken):
			httputil.WriteConflict(w, "Username is already taken")
		case errors.Is(err, model.ErrEmailTaken):
			httputil.WriteConflict(w, "Email is already in use")
		default:
			log.Printf("[ERROR] Signup handler: err=%v", err)
			httputil.WriteInternal(w, h.debug, err, "Failed to create account")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// Unknown email and wrong password both come back as the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternal(w, h.debug, err, "Failed to log in")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Me handles GET /me
// Returns the authenticated user's full account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: user=%d err=%v", userID, err)
		httputil.WriteInternal(w, h.debug, err, "Failed to load account")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
