package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vidora/internal/model"
)

const testSecret = "test-secret"

type stubUserLoader struct {
	users map[int64]*model.User
}

func (s *stubUserLoader) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, model.ErrUserNotFound
}

func signToken(t *testing.T, secret string, userID int64, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newProtectedHandler(t *testing.T, loader *stubUserLoader) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			t.Error("expected user in context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Username", user.Username)
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(testSecret, loader)(next)
}

func TestAuthMiddleware(t *testing.T) {
	loader := &stubUserLoader{users: map[int64]*model.User{
		42: {ID: 42, Username: "alice", Email: "alice@example.com"},
	}}
	handler := newProtectedHandler(t, loader)

	valid := signToken(t, testSecret, 42, time.Hour)

	tests := []struct {
		name       string
		authHeader string
		cookie     string
		wantStatus int
	}{
		{name: "bearer token", authHeader: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "raw token without prefix", authHeader: valid, wantStatus: http.StatusOK},
		{name: "cookie token", cookie: valid, wantStatus: http.StatusOK},
		{name: "missing token", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, testSecret, 42, -time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signing key",
			authHeader: "Bearer " + signToken(t, "other-secret", 42, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token for deleted user",
			authHeader: "Bearer " + signToken(t, testSecret, 999, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Header().Get("X-Username") != "alice" {
				t.Errorf("username = %q, want %q", rec.Header().Get("X-Username"), "alice")
			}
		})
	}
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Error("expected no user in a bare context")
	}
}
