package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/raihara3/feedspace/pkg/domain"
)

// ReadLaterRepository handles read-later bookmark operations
type ReadLaterRepository struct {
	db     *sqlx.DB
	limits Limits
}

// readLaterSQL represents a read-later entry for SQL operations
type readLaterSQL struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	FeedItemID  int64      `db:"feed_item_id"`
	Title       string     `db:"title"`
	Link        string     `db:"link"`
	Description string     `db:"description"`
	PublishedAt *time.Time `db:"published_at"`
	FeedTitle   string     `db:"feed_title"`
	FeedID      int64      `db:"feed_id"`
	CreatedAt   time.Time  `db:"created_at"`
}

// NewReadLaterRepository creates a new read-later repository
func NewReadLaterRepository(database *sqlx.DB, limits Limits) *ReadLaterRepository {
	return &ReadLaterRepository{db: database, limits: limits}
}

// List returns an owner's read-later entries, newest first
func (r *ReadLaterRepository) List(ctx context.Context, userID string) ([]*domain.ReadLaterEntry, error) {
	var entries []readLaterSQL
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM read_later WHERE user_id = ? ORDER BY datetime(created_at) DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list read later: %w", err)
	}

	result := make([]*domain.ReadLaterEntry, len(entries))
	for i, e := range entries {
		result[i] = r.toDomainEntry(&e)
	}
	return result, nil
}

// Add bookmarks an item with a denormalized snapshot of its fields so
// the entry survives retention eviction of the source item. Returns
// ErrReadLaterLimit at capacity and ErrDuplicate when the link is
// already bookmarked.
func (r *ReadLaterRepository) Add(ctx context.Context, entry *domain.ReadLaterEntry) error {
	if r.limits.MaxReadLater > 0 {
		var count int
		if err := r.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM read_later WHERE user_id = ?", entry.UserID); err != nil {
			return fmt.Errorf("count read later: %w", err)
		}
		if count >= r.limits.MaxReadLater {
			return ErrReadLaterLimit
		}
	}

	sqlEntry := &readLaterSQL{
		UserID:      entry.UserID,
		FeedItemID:  entry.FeedItemID,
		Title:       entry.Title,
		Link:        entry.Link,
		Description: entry.Description,
		PublishedAt: entry.PublishedAt,
		FeedTitle:   entry.FeedTitle,
		FeedID:      entry.FeedID,
	}

	query := `
		INSERT INTO read_later (user_id, feed_item_id, title, link, description, published_at, feed_title, feed_id)
		VALUES (:user_id, :feed_item_id, :title, :link, :description, :published_at, :feed_title, :feed_id)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlEntry)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("add read later: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// Delete removes an owner's read-later entry
func (r *ReadLaterRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM read_later WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete read later: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete read later rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReadLaterRepository) toDomainEntry(e *readLaterSQL) *domain.ReadLaterEntry {
	return &domain.ReadLaterEntry{
		ID:          e.ID,
		UserID:      e.UserID,
		FeedItemID:  e.FeedItemID,
		Title:       e.Title,
		Link:        e.Link,
		Description: e.Description,
		PublishedAt: e.PublishedAt,
		FeedTitle:   e.FeedTitle,
		FeedID:      e.FeedID,
		CreatedAt:   e.CreatedAt,
	}
}
