package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raihara3/feedspace/pkg/domain"
)

func TestNormalize(t *testing.T) {
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("complete entry passes through", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{
			Title:     "Hello",
			Link:      "http://example.com/a",
			Summary:   "plain summary",
			Content:   "<p>html content</p>",
			GUID:      "guid-1",
			Published: &published,
		})

		assert.Equal(t, "Hello", item.Title)
		assert.Equal(t, "http://example.com/a", item.Link)
		assert.Equal(t, "plain summary", item.Description, "summary wins over content")
		assert.Equal(t, "guid-1", item.GUID)
		assert.Equal(t, &published, item.PublishedAt)
	})

	t.Run("missing title defaults to Untitled", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{Link: "http://example.com/a"})
		assert.Equal(t, "Untitled", item.Title)
	})

	t.Run("whitespace title defaults to Untitled", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{Title: "   "})
		assert.Equal(t, "Untitled", item.Title)
	})

	t.Run("guid falls back to link", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{Link: "http://example.com/a"})
		assert.Equal(t, "http://example.com/a", item.GUID)
	})

	t.Run("guid fallback is deterministic", func(t *testing.T) {
		a := Normalize(domain.ParsedEntry{Title: "one", Link: "http://example.com/same"})
		b := Normalize(domain.ParsedEntry{Title: "two", Link: "http://example.com/same"})
		assert.Equal(t, a.GUID, b.GUID, "same link yields same dedup key")
	})

	t.Run("no guid and no link collide on empty key", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{Title: "orphan"})
		assert.Empty(t, item.GUID)
	})

	t.Run("html content stripped when summary absent", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{
			Title:   "t",
			Content: "<p>some <b>bold</b> text</p>",
		})
		assert.Equal(t, "some bold text", item.Description)
	})

	t.Run("summary with markup is stripped too", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{
			Title:   "t",
			Summary: `<a href="http://x">linked</a> text`,
		})
		assert.Equal(t, "linked text", item.Description)
	})

	t.Run("missing description stays empty", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{Title: "t"})
		assert.Empty(t, item.Description)
	})

	t.Run("missing publish time stays nil", func(t *testing.T) {
		item := Normalize(domain.ParsedEntry{Title: "t"})
		assert.Nil(t, item.PublishedAt)
	})
}

func TestNormalizeAll(t *testing.T) {
	entries := []domain.ParsedEntry{
		{Title: "first", Link: "http://example.com/1"},
		{Title: "second", Link: "http://example.com/2"},
		{Link: "http://example.com/3"},
	}

	items := NormalizeAll(entries)
	assert.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title, "source order preserved")
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "Untitled", items[2].Title)
}
