package domain

import "time"

// Item represents a stored feed entry
type Item struct {
	ID          int64      `json:"id"`
	FeedID      int64      `json:"feed_id"`
	GUID        string     `json:"guid"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// joined data, populated by list queries
	FeedTitle string `json:"feed_title,omitempty"`
}

// AnnotatedItem is an item decorated with the owner's keywords that
// match its title or description
type AnnotatedItem struct {
	Item
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}
