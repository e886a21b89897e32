package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readingtracker/readingtracker-server/internal/auth"
	"github.com/readingtracker/readingtracker-server/internal/ratelimit"
	"github.com/readingtracker/readingtracker-server/internal/store/sqlite"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

// testEnv bundles services sharing one temporary database.
type testEnv struct {
	store   *sqlite.Store
	auth    *AuthService
	items   *ItemService
	tags    *TagService
	metrics *MetricsService
	clock   *testClock
}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	clock := &testClock{t: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	issuer, err := auth.NewSessionIssuer(key, 7*24*time.Hour, auth.WithClock(clock.Now))
	require.NoError(t, err)

	limiter := ratelimit.NewSlidingWindow(10, 15*time.Minute)
	limiter.SetClock(clock.Now)

	v := validation.New()

	env := &testEnv{
		store:   s,
		auth:    NewAuthService(s, issuer, limiter, v, logger),
		items:   NewItemService(s, v, logger),
		tags:    NewTagService(s, v, logger),
		metrics: NewMetricsService(s, logger),
		clock:   clock,
	}
	env.items.now = clock.Now
	env.tags.now = clock.Now
	env.metrics.now = clock.Now
	return env
}
