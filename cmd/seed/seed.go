package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/id"
	"github.com/readingtracker/readingtracker-server/internal/service"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// defaultTags is the starting tag vocabulary.
var defaultTags = []string{
	"javascript", "typescript", "react", "nodejs", "python",
	"devops", "database", "security", "testing", "architecture",
	"css", "performance",
}

// sampleThreshold skips sample items once the list holds this many.
const sampleThreshold = 40

// ensureTags creates any missing default tags and returns name → ID.
func ensureTags(ctx context.Context, tags *service.TagService) (map[string]string, error) {
	ids := make(map[string]string, len(defaultTags))
	for _, name := range defaultTags {
		tag, _, err := tags.EnsureTag(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", name, err)
		}
		ids[tag.Name] = tag.ID
	}
	return ids, nil
}

// seedSampleItems inserts the sample items with saved dates spread over the
// last 60 days. About 60% are read, 1 to 14 days after saving but never in
// the future, and about 30% carry notes. Returns how many were created.
func seedSampleItems(ctx context.Context, st store.Store, tagIDs map[string]string, now time.Time, rng *rand.Rand) (int, error) {
	existing, err := st.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if existing >= sampleThreshold {
		return 0, nil
	}

	for _, sample := range sampleItems {
		savedAt := now.AddDate(0, 0, -rng.IntN(60))

		var notes *string
		if rng.Float64() < 0.3 {
			n := fmt.Sprintf("Notes for \"%s\" - This looks like a great resource to review.", sample.title)
			notes = &n
		}

		item := domain.NewItem(id.New(), sample.title, sample.url, domain.StatusUnread, notes, savedAt)
		item.UpdatedAt = now
		if rng.Float64() < 0.6 {
			readAt := savedAt.AddDate(0, 0, rng.IntN(14)+1)
			if readAt.After(now) {
				readAt = now
			}
			item.SetStatus(domain.StatusRead, readAt)
		}

		var ids []string
		for _, name := range sample.tags {
			if tagID, ok := tagIDs[name]; ok {
				ids = append(ids, tagID)
			}
		}

		if err := st.CreateItem(ctx, item, ids); err != nil {
			return 0, fmt.Errorf("create %q: %w", sample.title, err)
		}
	}
	return len(sampleItems), nil
}
