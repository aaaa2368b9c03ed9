package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordRepository_Add(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("add trims and stores", func(t *testing.T) {
		kw, err := repos.Keyword.Add(context.Background(), "user-1", "  golang  ")
		require.NoError(t, err)
		assert.Equal(t, "golang", kw.Keyword)
		assert.NotZero(t, kw.ID)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := repos.Keyword.Add(context.Background(), "user-1", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("too long rejected", func(t *testing.T) {
		_, err := repos.Keyword.Add(context.Background(), "user-1", strings.Repeat("x", 21))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "20 characters")
	})

	t.Run("exactly 20 multibyte runes allowed", func(t *testing.T) {
		// length limit counts runes, not bytes
		kw, err := repos.Keyword.Add(context.Background(), "user-1", strings.Repeat("あ", 20))
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("あ", 20), kw.Keyword)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		_, err := repos.Keyword.Add(context.Background(), "user-1", "golang")
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("limit of ten enforced", func(t *testing.T) {
		// user-1 already has 2 keywords from previous subtests
		for i := 0; i < 8; i++ {
			_, err := repos.Keyword.Add(context.Background(), "user-1", fmt.Sprintf("kw%d", i))
			require.NoError(t, err)
		}

		_, err := repos.Keyword.Add(context.Background(), "user-1", "one-more")
		assert.ErrorIs(t, err, ErrKeywordLimit)
	})
}

func TestKeywordRepository_List(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	for _, kw := range []string{"first", "second", "third"} {
		_, err := repos.Keyword.Add(context.Background(), "user-1", kw)
		require.NoError(t, err)
	}
	_, err := repos.Keyword.Add(context.Background(), "user-2", "foreign")
	require.NoError(t, err)

	keywords, err := repos.Keyword.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, keywords, 3)
	assert.Equal(t, "first", keywords[0].Keyword, "registration order preserved")
	assert.Equal(t, "third", keywords[2].Keyword)
}

func TestKeywordRepository_Delete(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	kw, err := repos.Keyword.Add(context.Background(), "user-1", "golang")
	require.NoError(t, err)

	t.Run("foreign owner rejected", func(t *testing.T) {
		err := repos.Keyword.Delete(context.Background(), "user-2", kw.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, repos.Keyword.Delete(context.Background(), "user-1", kw.ID))
		keywords, err := repos.Keyword.List(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, keywords)
	})
}
