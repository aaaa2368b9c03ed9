package domain

import "time"

// ReadLaterEntry is a bookmarked item. It stores a snapshot of the item
// fields so the bookmark survives retention eviction of the source item.
type ReadLaterEntry struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	FeedItemID  int64      `json:"feed_item_id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FeedTitle   string     `json:"feed_title"`
	FeedID      int64      `json:"feed_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
