package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/closetly/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{ValidationError("Missing required field: %s", "brand"), http.StatusBadRequest, "Missing required field: brand"},
		{fmt.Errorf("wrapped: %w", ConflictError("Email already registered")), http.StatusConflict, "Email already registered"},
		{RateLimitError(), http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
		{UnavailableError("price model not loaded"), http.StatusServiceUnavailable, "price model not loaded"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire"},
	}
	for _, c := range cases {
		var logger strings.Builder
		rec := httptest.NewRecorder()
		RespondError(rec, &logger, c.err)

		assert.Equal(t, c.status, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, c.msg, body["error"])
		assert.Contains(t, logger.String(), fmt.Sprintf("Error %d", c.status))
	}
}

func TestRespondErrorRedacts(t *testing.T) {
	config.RedactErrors = true
	t.Cleanup(func() { config.RedactErrors = false })

	rec := httptest.NewRecorder()
	RespondError(rec, nil, errors.New("sql: connection refused"))
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])

	rec = httptest.NewRecorder()
	RespondError(rec, nil, AuthError("Invalid or expired session"))
	assert.Equal(t, "Invalid or expired session", decodeBody(t, rec)["error"])
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(r))

	r.Header.Set("Authorization", "Bearer abc.def")
	assert.Equal(t, "abc.def", BearerToken(r))

	r.Header.Set("Authorization", "bearer  xyz ")
	assert.Equal(t, "xyz", BearerToken(r))

	r.Header.Set("Authorization", "Basic Zm9v")
	assert.Empty(t, BearerToken(r))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	assert.Equal(t, "10.0.0.5", ClientIP(r, false))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "10.0.0.5", ClientIP(r, false))
	assert.Equal(t, "203.0.113.9", ClientIP(r, true))

	r.Header.Set("X-Forwarded-For", " , 10.0.0.1")
	assert.Equal(t, "10.0.0.5", ClientIP(r, true))
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/predict", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.True(t, called)
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := GenerateToken(secret, "user-1", "jti-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	userID, err := ValidateToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = ValidateToken([]byte("other-secret"), tok)
	assert.Error(t, err)

	expired, err := GenerateToken(secret, "user-1", "jti-2", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateToken(secret, expired)
	assert.Error(t, err)

	_, err = GenerateToken(nil, "user-1", "jti-3", time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestMemoryLimiter(t *testing.T) {
	lim := NewMemoryLimiter(3)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := lim.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, _ := lim.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	ok, _ = lim.Allow(ctx, "5.6.7.8")
	assert.True(t, ok)
}

func TestMemoryLimiterEvictsIdleKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	lim := NewMemoryLimiter(2)
	lim.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := lim.Allow(ctx, fmt.Sprintf("10.0.0.%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 50, lim.Len())

	now = now.Add(30 * time.Second)
	_, _ = lim.Allow(ctx, "10.0.0.1")
	assert.Equal(t, 50, lim.Len())

	now = now.Add(time.Minute)
	_, _ = lim.Allow(ctx, "192.0.2.7")
	assert.Equal(t, 1, lim.Len())
}

func TestMemoryLimiterKeepsActiveKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	lim := NewMemoryLimiter(2)
	lim.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := lim.Allow(ctx, "1.2.3.4")
		assert.True(t, ok)
	}

	// one token back every 30s
	now = now.Add(31 * time.Second)
	ok, _ := lim.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)

	// sweep runs, but the key was seen 31s ago so its empty bucket is kept
	now = now.Add(31 * time.Second)
	ok, _ = lim.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
	ok, _ = lim.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 1, lim.Len())
}

func TestNewS3ArchiverRequiresBucket(t *testing.T) {
	_, err := NewS3Archiver(context.Background(), "ap-south-1", "")
	assert.Error(t, err)
}

func TestRedisLimiter(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	lim, err := NewRedisLimiter(ctx, url, 2)
	require.NoError(t, err)
	defer lim.Close()

	key := fmt.Sprintf("test-%d", time.Now().UnixNano())
	fixed := time.Date(2025, 1, 1, 12, 0, 30, 0, time.UTC)
	lim.now = func() time.Time { return fixed }

	for i := 0; i < 2; i++ {
		ok, err := lim.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := lim.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	lim.now = func() time.Time { return fixed.Add(time.Minute) }
	ok, err = lim.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseFaceBox(t *testing.T) {
	box, ok, err := ParseFaceBox(`{"found": true, "box": [100, 250, 600, 750]}`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [4]float64{0.25, 0.1, 0.75, 0.6}, box)

	_, ok, err = ParseFaceBox("```json\n{\"found\": false, \"box\": []}\n```")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseFaceBox(`{"found": true, "box": [600, 0, 100, 500]}`)
	assert.Error(t, err)

	_, _, err = ParseFaceBox("no face here")
	assert.Error(t, err)
}

func TestAddToLogMessage(t *testing.T) {
	var b strings.Builder
	AddToLogMessage(&b, "[Predict API]")
	AddToLogMessage(&b, "done")
	assert.Equal(t, "[Predict API];\ndone;\n", b.String())
}
