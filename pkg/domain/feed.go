package domain

import "time"

// Feed represents a subscribed feed source owned by a single user
type Feed struct {
	ID            int64      `json:"id"`
	UserID        string     `json:"user_id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	LastFetchedAt *time.Time `json:"last_fetched_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ParsedFeed is the result of fetching and parsing a feed URL.
// It carries the feed-level metadata and entries in source order.
type ParsedFeed struct {
	Title       string
	Description string
	Entries     []ParsedEntry
}

// ParsedEntry is a single raw entry as it came from the feed document,
// before normalization. Optional fields stay empty/nil when the source
// omits them.
type ParsedEntry struct {
	Title     string
	Link      string
	Summary   string // plain-text snippet, when the source provides one
	Content   string // raw HTML content
	GUID      string
	Published *time.Time
}
