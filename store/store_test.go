package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/closetly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *GormStore {
	t.Helper()
	s, err := OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(email string) *models.User {
	return &models.User{ID: uuid.NewString(), Email: email, PasswordHash: "hash", FullName: "Asha Rao"}
}

func runContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		u := newUser("asha@example.com")
		require.NoError(t, s.CreateUser(ctx, u))

		got, err := s.GetUserByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Nil(t, got.LastLogin)

		dup := newUser("asha@example.com")
		dup.FullName = "Someone Else"
		err = s.CreateUser(ctx, dup)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		got, err = s.GetUserByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "Asha Rao", got.FullName)
		_, err = s.GetUserByID(ctx, dup.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetUserByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)

		at := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, s.TouchLastLogin(ctx, u.ID, at))
		got, err = s.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
		assert.True(t, at.Equal(*got.LastLogin))

		assert.ErrorIs(t, s.TouchLastLogin(ctx, uuid.NewString(), at), ErrNotFound)
	})

	t.Run("sessions", func(t *testing.T) {
		now := time.Now().UTC()
		userID := uuid.NewString()
		live := &models.Session{ID: uuid.NewString(), UserID: userID, Token: "live-" + userID, ExpiresAt: now.Add(time.Hour)}
		old := &models.Session{ID: uuid.NewString(), UserID: userID, Token: "old-" + userID, ExpiresAt: now.Add(-time.Hour)}
		require.NoError(t, s.CreateSession(ctx, live))
		require.NoError(t, s.CreateSession(ctx, old))

		got, err := s.FindActiveSession(ctx, live.Token, now)
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)

		_, err = s.FindActiveSession(ctx, old.Token, now)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.DeleteSession(ctx, live.Token))
		_, err = s.FindActiveSession(ctx, live.Token, now)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, s.DeleteSession(ctx, "never-issued"))
	})

	t.Run("profiles", func(t *testing.T) {
		userID := uuid.NewString()
		_, err := s.GetProfile(ctx, userID)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.UpsertProfile(ctx, &models.UserProfile{
			UserID: userID, Gender: "female", BodyType: "pear", Measurements: `{"bust":86}`,
		}))
		require.NoError(t, s.UpsertProfile(ctx, &models.UserProfile{
			UserID: userID, Gender: "female", BodyType: "hourglass", Undertone: "warm", Season: "Spring",
			ColorPalette: `["#FF7F50"]`, UpdatedAt: time.Now().UTC(),
		}))

		p, err := s.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "hourglass", p.BodyType)
		assert.Equal(t, "warm", p.Undertone)
		assert.Equal(t, `["#FF7F50"]`, p.ColorPalette)
		assert.Empty(t, p.Measurements)
	})
}

func TestGormStore(t *testing.T) {
	runContract(t, newSQLite(t))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	s, err := OpenMongo(ctx, uri, "closetly_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.users.Database().Drop(context.Background())
		_ = s.Close()
	})
	runContract(t, s)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle"})
	assert.Error(t, err)
}

func TestPostgresURL(t *testing.T) {
	url := "postgres://app:secret@db:5432/closetly?sslmode=disable"
	assert.Equal(t, url, postgresURL(url))

	got := postgresURL("host=db port=5432 user=app password=secret dbname=closetly sslmode=disable")
	assert.Equal(t, url, got)

	assert.Equal(t, "postgres://localhost/closetly", postgresURL("dbname=closetly"))
}

func TestMigrationsEmbedded(t *testing.T) {
	up, err := migrationFiles.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "user_sessions", "user_profiles"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	_, err = migrationFiles.ReadFile("migrations/0001_init.down.sql")
	assert.NoError(t, err)
}

// POSTGRES_TEST_DSN must point at an empty database
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	s, err := OpenPostgres(dsn, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	runContract(t, s)
}
