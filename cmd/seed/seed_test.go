package main

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/service"
	"github.com/readingtracker/readingtracker-server/internal/store"
	"github.com/readingtracker/readingtracker-server/internal/store/sqlite"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

func setupSeed(t *testing.T) (*sqlite.Store, *service.TagService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, service.NewTagService(st, validation.New(), logger)
}

func TestEnsureTags_Idempotent(t *testing.T) {
	st, tags := setupSeed(t)
	ctx := context.Background()

	first, err := ensureTags(ctx, tags)
	require.NoError(t, err)
	assert.Len(t, first, len(defaultTags))

	second, err := ensureTags(ctx, tags)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	all, err := st.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(defaultTags))
}

func TestSampleItems_UseKnownTags(t *testing.T) {
	known := make(map[string]bool, len(defaultTags))
	for _, name := range defaultTags {
		known[name] = true
	}
	assert.Len(t, sampleItems, sampleThreshold)
	for _, s := range sampleItems {
		for _, tag := range s.tags {
			assert.True(t, known[tag], "%s uses unknown tag %s", s.title, tag)
		}
	}
}

func TestSeedSampleItems(t *testing.T) {
	st, tags := setupSeed(t)
	ctx := context.Background()

	tagIDs, err := ensureTags(ctx, tags)
	require.NoError(t, err)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n, err := seedSampleItems(ctx, st, tagIDs, now, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, len(sampleItems), n)

	count, err := st.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(sampleItems), count)

	for page := 1; page <= 2; page++ {
		res, err := st.ListItems(ctx, store.ItemFilter{Page: page})
		require.NoError(t, err)
		for _, item := range res.Items {
			assert.NotEmpty(t, item.Tags, item.Title)
			assert.False(t, item.SavedAt.After(now), item.Title)
			assert.False(t, item.SavedAt.Before(now.AddDate(0, 0, -60)), item.Title)
			if item.Status == domain.StatusRead {
				require.NotNil(t, item.ReadAt, item.Title)
				assert.False(t, item.ReadAt.Before(item.SavedAt), item.Title)
				assert.False(t, item.ReadAt.After(now), item.Title)
			} else {
				assert.Nil(t, item.ReadAt, item.Title)
			}
		}
	}

	// A full list is left alone.
	n, err = seedSampleItems(ctx, st, tagIDs, now, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	assert.Zero(t, n)
}
