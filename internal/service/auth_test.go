package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vidora/internal/config"
	"vidora/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createWithChannelFn: func(ctx context.Context, user *model.User, channel *model.Channel) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
			channel.ID = 10
			channel.UserID = user.ID
			channelID := channel.ID
			user.ChannelID = &channelID
			return nil
		},
	}
	svc := NewAuthService(mockRepo, testConfig())

	resp, err := svc.Signup(context.Background(), &model.SignupRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "securepassword",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if resp.Token == "" {
		t.Error("expected a signed token")
	}
	if resp.User.ID != 1 {
		t.Errorf("user ID = %d, want 1", resp.User.ID)
	}
	if resp.User.ChannelID == nil || *resp.User.ChannelID != 10 {
		t.Errorf("channel ID = %v, want 10", resp.User.ChannelID)
	}

	// Password must be stored as a valid bcrypt hash, never plain text.
	if resp.User.PasswordHashed == "securepassword" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHashed), []byte("securepassword")); err != nil {
		t.Error("password hash should be a valid bcrypt hash")
	}

	if mockRepo.createCalls != 1 {
		t.Errorf("CreateWithChannel called %d times, want 1", mockRepo.createCalls)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.SignupRequest
		wantErr error
	}{
		{
			name:    "username too short",
			req:     model.SignupRequest{Username: "ab", Email: "a@b.com", Password: "password"},
			wantErr: model.ErrUsernameInvalid,
		},
		{
			name:    "username with illegal characters",
			req:     model.SignupRequest{Username: "bad name!", Email: "a@b.com", Password: "password"},
			wantErr: model.ErrUsernameInvalid,
		},
		{
			name:    "invalid email",
			req:     model.SignupRequest{Username: "gooduser", Email: "not-an-email", Password: "password"},
			wantErr: model.ErrEmailInvalid,
		},
		{
			name:    "password too short",
			req:     model.SignupRequest{Username: "gooduser", Email: "a@b.com", Password: "short"},
			wantErr: model.ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{}
			svc := NewAuthService(mockRepo, testConfig())

			_, err := svc.Signup(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if mockRepo.createCalls != 0 {
				t.Error("CreateWithChannel should not be called on validation failure")
			}
		})
	}
}

func TestAuthService_Signup_Conflicts(t *testing.T) {
	existing := &model.User{ID: 7, Username: "taken", Email: "taken@example.com"}

	tests := []struct {
		name    string
		req     model.SignupRequest
		wantErr error
	}{
		{
			name:    "email already registered",
			req:     model.SignupRequest{Username: "newuser", Email: "taken@example.com", Password: "password"},
			wantErr: model.ErrEmailTaken,
		},
		{
			name:    "username already registered",
			req:     model.SignupRequest{Username: "taken", Email: "new@example.com", Password: "password"},
			wantErr: model.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{
				findByUsernameOrEmailFn: func(ctx context.Context, username, email string) (*model.User, error) {
					return existing, nil
				},
			}
			svc := NewAuthService(mockRepo, testConfig())

			_, err := svc.Signup(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_Signup_DefaultChannelName(t *testing.T) {
	var gotChannel *model.Channel
	mockRepo := &mockUserRepository{
		createWithChannelFn: func(ctx context.Context, user *model.User, channel *model.Channel) error {
			user.ID = 1
			channel.ID = 2
			gotChannel = channel
			return nil
		},
	}
	svc := NewAuthService(mockRepo, testConfig())

	_, err := svc.Signup(context.Background(), &model.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if gotChannel == nil {
		t.Fatal("expected channel to be created")
	}
	if gotChannel.Name != "alice" {
		t.Errorf("channel name = %q, want %q", gotChannel.Name, "alice")
	}
	if gotChannel.Description != "alice's channel" {
		t.Errorf("channel description = %q, want %q", gotChannel.Description, "alice's channel")
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &model.User{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHashed: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "alice@example.com", password: "rightpassword"},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "rightpassword",
			wantErr:  model.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrongpassword",
			wantErr:  model.ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "alice@example.com",
			password: "",
			wantErr:  model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					if email == user.Email {
						return user, nil
					}
					return nil, model.ErrUserNotFound
				},
			}
			svc := NewAuthService(mockRepo, testConfig())

			resp, err := svc.Login(context.Background(), &model.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				// Unknown email and wrong password must be indistinguishable.
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a signed token")
			}
			if resp.User.ID != user.ID {
				t.Errorf("user ID = %d, want %d", resp.User.ID, user.ID)
			}
		})
	}
}
