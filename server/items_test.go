package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raihara3/feedspace/pkg/domain"
)

func TestServer_ListItems(t *testing.T) {
	env := setupTestServer(t)

	env.doRequest(t, http.MethodPost, "/api/v1/feeds", "u1", map[string]string{"url": "https://a.example.com/rss"})

	t.Run("returns owner items with feed title", func(t *testing.T) {
		code, body := env.doRequest(t, http.MethodGet, "/api/v1/items", "u1", nil)
		require.Equal(t, http.StatusOK, code)

		items := body["items"].([]interface{})
		require.Len(t, items, 2)
		first := items[0].(map[string]interface{})
		assert.Equal(t, "Test Feed", first["feed_title"])
		assert.Equal(t, false, first["is_read"])
	})

	t.Run("other owner sees nothing", func(t *testing.T) {
		code, body := env.doRequest(t, http.MethodGet, "/api/v1/items", "u2", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, body["items"])
	})

	t.Run("keywords annotated case-insensitively", func(t *testing.T) {
		env.doRequest(t, http.MethodPost, "/api/v1/keywords", "u1", map[string]string{"keyword": "FIRST"})
		env.doRequest(t, http.MethodPost, "/api/v1/keywords", "u1", map[string]string{"keyword": "golang"})

		code, body := env.doRequest(t, http.MethodGet, "/api/v1/items", "u1", nil)
		require.Equal(t, http.StatusOK, code)

		matched := map[string][]interface{}{}
		for _, raw := range body["items"].([]interface{}) {
			item := raw.(map[string]interface{})
			if kws, ok := item["matched_keywords"].([]interface{}); ok {
				matched[item["title"].(string)] = kws
			}
		}
		require.Contains(t, matched, "first post")
		assert.Equal(t, []interface{}{"FIRST"}, matched["first post"])
		assert.NotContains(t, matched, "second post")
	})
}

func TestAnnotateItems(t *testing.T) {
	items := []*domain.Item{
		{ID: 1, Title: "Go generics explained", Description: "a deep dive"},
		{ID: 2, Title: "Weekly digest", Description: "rust and go news"},
		{ID: 3, Title: "Cooking tips"},
	}
	keywords := []*domain.Keyword{
		{Keyword: "go"},
		{Keyword: "RUST"},
		{Keyword: "python"},
	}

	annotated := annotateItems(items, keywords)
	require.Len(t, annotated, 3)
	assert.Equal(t, []string{"go"}, annotated[0].MatchedKeywords)
	assert.Equal(t, []string{"go", "RUST"}, annotated[1].MatchedKeywords)
	assert.Empty(t, annotated[2].MatchedKeywords)
}

func TestServer_MarkRead(t *testing.T) {
	env := setupTestServer(t)

	env.doRequest(t, http.MethodPost, "/api/v1/feeds", "u1", map[string]string{"url": "https://a.example.com/rss"})

	_, body := env.doRequest(t, http.MethodGet, "/api/v1/items", "u1", nil)
	items := body["items"].([]interface{})
	require.NotEmpty(t, items)
	itemID := int64(items[0].(map[string]interface{})["id"].(float64))

	t.Run("mark read", func(t *testing.T) {
		code, resp := env.doRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/items/%d/read", itemID), "u1",
			map[string]bool{"is_read": true})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["is_read"])

		_, listBody := env.doRequest(t, http.MethodGet, "/api/v1/items", "u1", nil)
		for _, raw := range listBody["items"].([]interface{}) {
			item := raw.(map[string]interface{})
			if int64(item["id"].(float64)) == itemID {
				assert.Equal(t, true, item["is_read"])
				assert.NotEmpty(t, item["read_at"])
			}
		}
	})

	t.Run("mark unread clears read_at", func(t *testing.T) {
		code, _ := env.doRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/items/%d/read", itemID), "u1",
			map[string]bool{"is_read": false})
		require.Equal(t, http.StatusOK, code)

		_, listBody := env.doRequest(t, http.MethodGet, "/api/v1/items", "u1", nil)
		for _, raw := range listBody["items"].([]interface{}) {
			item := raw.(map[string]interface{})
			if int64(item["id"].(float64)) == itemID {
				assert.Equal(t, false, item["is_read"])
				assert.Nil(t, item["read_at"])
			}
		}
	})

	t.Run("other owner gets not found", func(t *testing.T) {
		code, _ := env.doRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/items/%d/read", itemID), "u2",
			map[string]bool{"is_read": true})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("bad id", func(t *testing.T) {
		code, _ := env.doRequest(t, http.MethodPost, "/api/v1/items/abc/read", "u1",
			map[string]bool{"is_read": true})
		assert.Equal(t, http.StatusBadRequest, code)
	})
}
