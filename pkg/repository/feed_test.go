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

func TestFeedRepository_CreateFeed(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("create and get", func(t *testing.T) {
		feed := &domain.Feed{
			UserID:      "user-1",
			URL:         "https://example.com/feed.xml",
			Title:       "Test Feed",
			Description: "A test feed",
		}
		err := repos.Feed.CreateFeed(context.Background(), feed)
		require.NoError(t, err)
		assert.NotZero(t, feed.ID)

		got, err := repos.Feed.GetFeed(context.Background(), "user-1", feed.ID)
		require.NoError(t, err)
		assert.Equal(t, feed.URL, got.URL)
		assert.Equal(t, feed.Title, got.Title)
		assert.Nil(t, got.LastFetchedAt, "new feed has never been fetched")
	})

	t.Run("duplicate url for same owner rejected", func(t *testing.T) {
		feed := &domain.Feed{UserID: "user-1", URL: "https://example.com/feed.xml", Title: "dup"}
		err := repos.Feed.CreateFeed(context.Background(), feed)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("same url allowed for different owner", func(t *testing.T) {
		feed := &domain.Feed{UserID: "user-2", URL: "https://example.com/feed.xml", Title: "other owner"}
		err := repos.Feed.CreateFeed(context.Background(), feed)
		assert.NoError(t, err)
	})

	t.Run("feed limit enforced", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			feed := &domain.Feed{
				UserID: "limited-user",
				URL:    fmt.Sprintf("https://example.com/feed%d.xml", i),
				Title:  fmt.Sprintf("Feed %d", i),
			}
			require.NoError(t, repos.Feed.CreateFeed(context.Background(), feed))
		}

		over := &domain.Feed{UserID: "limited-user", URL: "https://example.com/feed11.xml", Title: "over"}
		err := repos.Feed.CreateFeed(context.Background(), over)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFeedLimit)
	})
}

func TestFeedRepository_ListFeeds(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		feed := &domain.Feed{
			UserID: "user-1",
			URL:    fmt.Sprintf("https://example.com/feed%d.xml", i),
			Title:  fmt.Sprintf("Feed %d", i),
		}
		require.NoError(t, repos.Feed.CreateFeed(context.Background(), feed))
	}
	other := &domain.Feed{UserID: "user-2", URL: "https://other.com/feed.xml", Title: "other"}
	require.NoError(t, repos.Feed.CreateFeed(context.Background(), other))

	feeds, err := repos.Feed.ListFeeds(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, feeds, 3, "other owner's feeds excluded")

	// newest first by id tie-break on equal timestamps
	assert.Equal(t, "Feed 2", feeds[0].Title)
	assert.Equal(t, "Feed 0", feeds[2].Title)
}

func TestFeedRepository_UpdateFeedLastFetched(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	feed := mustCreateFeed(t, repos, "user-1", "https://example.com/feed.xml")

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	err := repos.Feed.UpdateFeedLastFetched(context.Background(), feed.ID, ts)
	require.NoError(t, err)

	got, err := repos.Feed.GetFeed(context.Background(), "user-1", feed.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastFetchedAt)
	assert.True(t, got.LastFetchedAt.Equal(ts), "expected %v, got %v", ts, got.LastFetchedAt)

	t.Run("update non-existent feed is a no-op", func(t *testing.T) {
		err := repos.Feed.UpdateFeedLastFetched(context.Background(), 99999, ts)
		assert.NoError(t, err)
	})
}

func TestFeedRepository_UpdateFeedMeta(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	feed := mustCreateFeed(t, repos, "user-1", "https://example.com/feed.xml")

	err := repos.Feed.UpdateFeedMeta(context.Background(), feed.ID, "New Title", "New Description")
	require.NoError(t, err)

	got, err := repos.Feed.GetFeed(context.Background(), "user-1", feed.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "New Description", got.Description)
}

func TestFeedRepository_DeleteFeed(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	feed := mustCreateFeed(t, repos, "user-1", "https://example.com/feed.xml")

	t.Run("other owner cannot delete", func(t *testing.T) {
		err := repos.Feed.DeleteFeed(context.Background(), "user-2", feed.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, repos.Feed.DeleteFeed(context.Background(), "user-1", feed.ID))
		_, err := repos.Feed.GetFeed(context.Background(), "user-1", feed.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
