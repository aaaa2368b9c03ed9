package feed

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/raihara3/feedspace/pkg/domain"
)

// defaultTitle is used for entries that come without a title
const defaultTitle = "Untitled"

// stripPolicy removes all HTML markup, leaving plain text
var stripPolicy = bluemonday.StrictPolicy()

// Normalize maps a raw parsed entry to the canonical stored-item shape.
// It is total: missing fields get defaults instead of errors. The guid
// falls back to the link because the guid is the sole dedup key; entries
// with neither guid nor link are indistinguishable and will collide.
func Normalize(entry domain.ParsedEntry) domain.Item {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = defaultTitle
	}

	// prefer the plain-text summary over raw HTML content, strip any
	// markup either way
	desc := entry.Summary
	if desc == "" {
		desc = entry.Content
	}
	if desc != "" {
		desc = strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(desc)))
	}

	guid := entry.GUID
	if guid == "" {
		guid = entry.Link
	}

	return domain.Item{
		GUID:        guid,
		Title:       title,
		Link:        entry.Link,
		Description: desc,
		PublishedAt: entry.Published,
	}
}

// NormalizeAll normalizes a batch of entries preserving source order
func NormalizeAll(entries []domain.ParsedEntry) []domain.Item {
	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Normalize(e))
	}
	return items
}
