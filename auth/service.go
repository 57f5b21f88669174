package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/store"
	"github.com/raushankrgupta/closetly/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = utils.AuthError("Invalid email or password")
	ErrInvalidSession     = utils.AuthError("Invalid or expired session")
	ErrMissingToken       = utils.ValidationError("No session token provided")
	ErrEmailTaken         = utils.ConflictError("Email already registered")
	ErrInvalidEmail       = utils.ValidationError("Invalid email format")
)

// SignupRequest is the payload for creating an account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Result is returned by Signup and Login
type Result struct {
	User         *models.User
	SessionToken string
	ExpiresAt    time.Time
}

// Service implements signup, login, logout and session verification
type Service struct {
	Store             store.Store
	Secret            []byte
	TTL               time.Duration
	MinPasswordLength int
	// Welcome, when set, is called after a successful signup. Failures are logged only.
	Welcome func(fullName, email string) error

	now func() time.Time
}

// NewService builds an auth service
func NewService(s store.Store, secret []byte, ttl time.Duration, minPasswordLength int) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if minPasswordLength <= 0 {
		minPasswordLength = 8
	}
	return &Service{Store: s, Secret: secret, TTL: ttl, MinPasswordLength: minPasswordLength, now: time.Now}
}

// NormalizeEmail trims and lowercases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Result, error) {
	email := NormalizeEmail(req.Email)
	fullName := strings.TrimSpace(req.FullName)

	for _, f := range []struct{ name, value string }{
		{"email", email}, {"password", req.Password}, {"full_name", fullName},
	} {
		if f.value == "" {
			return nil, utils.ValidationError("Missing required field: %s", f.name)
		}
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < s.MinPasswordLength {
		return nil, utils.ValidationError("Password must be at least %d characters", s.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	res, err := s.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.Welcome != nil {
		if err := s.Welcome(user.FullName, user.Email); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}
	}
	return res, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, utils.ValidationError("Email and password required")
	}

	user, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.Store.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return s.newSession(ctx, user)
}

// Logout deletes the session row. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return s.Store.DeleteSession(ctx, token)
}

// Verify resolves a bearer token to its user
func (s *Service) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	userID, err := utils.ValidateToken(s.Secret, token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	sess, err := s.Store.FindActiveSession(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrInvalidSession
	}

	user, err := s.Store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) newSession(ctx context.Context, user *models.User) (*Result, error) {
	now := s.now().UTC()
	expires := now.Add(s.TTL)
	sessID := uuid.NewString()

	token, err := utils.GenerateToken(s.Secret, user.ID, sessID, expires)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		ID:        sessID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expires,
		CreatedAt: now,
	}
	if err := s.Store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &Result{User: user, SessionToken: token, ExpiresAt: expires}, nil
}
