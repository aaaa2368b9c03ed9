package domain

import "time"

// Keyword is an owner-scoped tag matched against item titles and
// descriptions at query time
type Keyword struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"created_at"`
}
