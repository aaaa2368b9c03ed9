package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raihara3/feedspace/pkg/domain"
)

// setupTestDB creates an in-memory database with production limits
func setupTestDB(t *testing.T) (*Repositories, func()) {
	t.Helper()

	cfg := Config{
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		Limits: Limits{
			MaxFeeds:         10,
			MaxKeywords:      10,
			KeywordMaxLength: 20,
			MaxReadLater:     5,
		},
	}

	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)

	return repos, func() {
		assert.NoError(t, repos.Close())
	}
}

func TestRepositories_Integration(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repos.Ping(context.Background()))

	t.Run("feed lifecycle with item cascade", func(t *testing.T) {
		testFeed := &domain.Feed{
			UserID:      "user-1",
			URL:         "https://example.com/feed.xml",
			Title:       "Test Feed",
			Description: "A test feed",
		}

		err := repos.Feed.CreateFeed(context.Background(), testFeed)
		require.NoError(t, err)
		assert.NotZero(t, testFeed.ID)

		inserted, err := repos.Item.UpsertItems(context.Background(), testFeed.ID, []domain.Item{
			{GUID: "g1", Title: "one", Link: "https://example.com/1"},
			{GUID: "g2", Title: "two", Link: "https://example.com/2"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)

		count, err := repos.Item.CountItems(context.Background(), testFeed.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		// deleting the feed cascades to its items
		require.NoError(t, repos.Feed.DeleteFeed(context.Background(), "user-1", testFeed.ID))

		count, err = repos.Item.CountItems(context.Background(), testFeed.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

// mustCreateFeed is a shorthand for tests that need a feed to hang items on
func mustCreateFeed(t *testing.T, repos *Repositories, userID, url string) *domain.Feed {
	t.Helper()
	feed := &domain.Feed{UserID: userID, URL: url, Title: "Feed " + url}
	require.NoError(t, repos.Feed.CreateFeed(context.Background(), feed))
	return feed
}

// setItemCreatedAt overrides an item's creation time for retention tests
func setItemCreatedAt(t *testing.T, repos *Repositories, itemID int64, ts time.Time) {
	t.Helper()
	// store in SQLite's CURRENT_TIMESTAMP format; binding a raw time.Time
	// writes a string datetime() cannot parse
	_, err := repos.DB.Exec("UPDATE items SET created_at = ? WHERE id = ?", ts.UTC().Format("2006-01-02 15:04:05"), itemID)
	require.NoError(t, err)
}
