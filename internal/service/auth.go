package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"vidora/internal/config"
	"vidora/internal/model"
	"vidora/internal/repository"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// AuthService handles signup, login and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// Signup validates the request, creates the account together with its
// default channel, and returns a signed token. The user and channel are
// written in one transaction so a failure leaves nothing behind.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if len(username) < model.MinUsernameLength || !usernameRegex.MatchString(username) {
		return nil, model.ErrUsernameInvalid
	}
	if !emailRegex.MatchString(email) {
		return nil, model.ErrEmailInvalid
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	// Pre-check so the response can name the colliding field. The unique
	// constraints still catch races; CreateWithChannel maps those too.
	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		if existing.Email == email {
			return nil, model.ErrEmailTaken
		}
		return nil, model.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordHashed: string(hashedPassword),
	}
	channel := &model.Channel{
		Name:        username,
		Description: fmt.Sprintf("%s's channel", username),
	}

	if err := s.userRepo.CreateWithChannel(ctx, user, channel); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials so the response does not
// reveal which one failed.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// GetUserByID returns the account for the given id.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAvatar points the user's profile at a freshly uploaded avatar.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	return s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
}

// GenerateToken signs a token carrying the user id, valid for the
// configured TTL.
func (s *AuthService) GenerateToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(time.Duration(s.config.TokenTTLHours) * time.Hour).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
