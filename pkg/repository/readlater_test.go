package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raihara3/feedspace/pkg/domain"
)

func TestReadLaterRepository_Add(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("add and list", func(t *testing.T) {
		entry := &domain.ReadLaterEntry{
			UserID:      "user-1",
			FeedItemID:  42,
			Title:       "Saved Article",
			Link:        "https://example.com/saved",
			Description: "worth reading",
			PublishedAt: &published,
			FeedTitle:   "Some Feed",
			FeedID:      7,
		}
		require.NoError(t, repos.ReadLater.Add(context.Background(), entry))
		assert.NotZero(t, entry.ID)

		entries, err := repos.ReadLater.List(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Saved Article", entries[0].Title)
		assert.Equal(t, "Some Feed", entries[0].FeedTitle, "snapshot keeps the feed name")
	})

	t.Run("duplicate link rejected", func(t *testing.T) {
		entry := &domain.ReadLaterEntry{
			UserID: "user-1",
			Title:  "Same Link Again",
			Link:   "https://example.com/saved",
		}
		err := repos.ReadLater.Add(context.Background(), entry)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("limit of five enforced", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			entry := &domain.ReadLaterEntry{
				UserID: "user-1",
				Title:  fmt.Sprintf("entry %d", i),
				Link:   fmt.Sprintf("https://example.com/entry%d", i),
			}
			require.NoError(t, repos.ReadLater.Add(context.Background(), entry))
		}

		over := &domain.ReadLaterEntry{
			UserID: "user-1",
			Title:  "one too many",
			Link:   "https://example.com/overflow",
		}
		err := repos.ReadLater.Add(context.Background(), over)
		assert.ErrorIs(t, err, ErrReadLaterLimit)
	})

	t.Run("limit is per owner", func(t *testing.T) {
		entry := &domain.ReadLaterEntry{
			UserID: "user-2",
			Title:  "other owner",
			Link:   "https://example.com/other",
		}
		assert.NoError(t, repos.ReadLater.Add(context.Background(), entry))
	})
}

func TestReadLaterRepository_Delete(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	entry := &domain.ReadLaterEntry{
		UserID: "user-1",
		Title:  "to delete",
		Link:   "https://example.com/delete-me",
	}
	require.NoError(t, repos.ReadLater.Add(context.Background(), entry))

	t.Run("foreign owner rejected", func(t *testing.T) {
		err := repos.ReadLater.Delete(context.Background(), "user-2", entry.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, repos.ReadLater.Delete(context.Background(), "user-1", entry.ID))

		entries, err := repos.ReadLater.List(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
