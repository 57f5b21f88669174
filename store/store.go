package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/closetly/models"
)

var (
	// ErrNotFound is returned when a user, session or profile does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store persists users, sessions and style profiles
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error

	CreateSession(ctx context.Context, s *models.Session) error
	// FindActiveSession returns the session for token if it has not expired at now
	FindActiveSession(ctx context.Context, token string, now time.Time) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error

	UpsertProfile(ctx context.Context, p *models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)

	Close() error
}

// Options select and configure a backend
type Options struct {
	Driver   string // sqlite, postgres or mongo
	DSN      string
	MongoURI string
	DBName   string

	// SQLMigrations applies the embedded SQL migrations on postgres
	SQLMigrations bool
}

// Open connects to the configured backend and prepares its schema
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "sqlite":
		return OpenSQLite(opts.DSN)
	case "postgres", "postgresql":
		return OpenPostgres(opts.DSN, opts.SQLMigrations)
	case "mongo", "mongodb":
		return OpenMongo(ctx, opts.MongoURI, opts.DBName)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
