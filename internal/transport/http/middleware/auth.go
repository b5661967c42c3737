package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"vidora/internal/httputil"
	"vidora/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserKey is the context key for the authenticated user
	UserKey contextKey = "user"
)

// UserLoader loads the authenticated account after the token checks out.
// Keeping this a one-method interface lets tests swap in a stub.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthMiddleware validates the token and attaches the account to the
// request context. The Authorization header carries either a bare token or
// the "Bearer <token>" form; a cookie works as fallback for browsers.
// A token whose user no longer exists is rejected the same as an invalid
// one.
func AuthMiddleware(jwtSecret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				} else {
					// Bare token without the Bearer prefix
					tokenString = authHeader
				}
			}

			if tokenString == "" {
				cookie, err := r.Cookie("access_token")
				if err == nil && cookie.Value != "" {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				if err != nil && strings.Contains(err.Error(), "expired") {
					httputil.WriteUnauthorized(w, "Authentication token has expired")
					return
				}
				httputil.WriteUnauthorized(w, "Invalid authentication token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				httputil.WriteUnauthorized(w, "Invalid authentication token")
				return
			}

			userIDFloat, ok := claims["user_id"].(float64)
			if !ok {
				httputil.WriteUnauthorized(w, "Invalid token claims")
				return
			}
			userID := int64(userIDFloat)

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				httputil.WriteUnauthorized(w, "Invalid authentication token")
				return
			}

			authUser := &model.AuthUser{
				ID:        user.ID,
				Username:  user.Username,
				Email:     user.Email,
				AvatarURL: user.AvatarURL,
			}

			ctx := context.WithValue(r.Context(), UserKey, authUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated user from the request
// context. Returns nil and false outside the auth middleware.
func GetUserFromContext(ctx context.Context) (*model.AuthUser, bool) {
	user, ok := ctx.Value(UserKey).(*model.AuthUser)
	return user, ok
}

// GetUserIDFromContext extracts just the authenticated user's ID.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
