package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/raihara3/feedspace/pkg/domain"
)

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          int64      `db:"id"`
	FeedID      int64      `db:"feed_id"`
	GUID        string     `db:"guid"`
	Title       string     `db:"title"`
	Link        string     `db:"link"`
	Description string     `db:"description"`
	PublishedAt *time.Time `db:"published_at"`
	IsRead      bool       `db:"is_read"`
	ReadAt      *time.Time `db:"read_at"`
	CreatedAt   time.Time  `db:"created_at"`

	// joined data (not stored in DB, populated by queries)
	FeedTitle string `db:"feed_title"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(database *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: database}
}

// GetExistingGuids returns the set of guids already stored for a feed
func (r *ItemRepository) GetExistingGuids(ctx context.Context, feedID int64) (map[string]struct{}, error) {
	var guids []string
	err := r.db.SelectContext(ctx, &guids, "SELECT guid FROM items WHERE feed_id = ?", feedID)
	if err != nil {
		return nil, fmt.Errorf("get existing guids: %w", err)
	}

	set := make(map[string]struct{}, len(guids))
	for _, g := range guids {
		set[g] = struct{}{}
	}
	return set, nil
}

// UpsertItems inserts a batch of items in one transaction, ignoring
// (feed_id, guid) conflicts. Returns the number of rows actually
// inserted. Retries the whole transaction on SQLite busy errors.
func (r *ItemRepository) UpsertItems(ctx context.Context, feedID int64, items []domain.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	inserted := 0
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin tx: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		for _, item := range items {
			res, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO items (feed_id, guid, title, link, description, published_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				feedID, item.GUID, item.Title, item.Link, item.Description, item.PublishedAt)
			if err != nil {
				if isLockError(err) {
					return err // retry
				}
				return &criticalError{err: fmt.Errorf("insert item: %w", err)}
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return &criticalError{err: fmt.Errorf("rows affected: %w", err)}
			}
			inserted += int(affected)
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("commit tx: %w", err)}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// InsertItemFallback inserts a single item, treating a duplicate
// (feed_id, guid) as a silent no-op. Used as the row-by-row fallback
// when the transactional batch insert fails.
func (r *ItemRepository) InsertItemFallback(ctx context.Context, feedID int64, item domain.Item) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO items (feed_id, guid, title, link, description, published_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		feedID, item.GUID, item.Title, item.Link, item.Description, item.PublishedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert item fallback: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListItemIDsByAge returns a feed's item IDs ordered newest-first by
// creation time. ID breaks ties so the order is stable regardless of
// timestamp precision.
func (r *ItemRepository) ListItemIDsByAge(ctx context.Context, feedID int64) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM items
		WHERE feed_id = ?
		ORDER BY datetime(created_at) DESC, id DESC`, feedID)
	if err != nil {
		return nil, fmt.Errorf("list item ids by age: %w", err)
	}
	return ids, nil
}

// DeleteItems removes items by ID
func (r *ItemRepository) DeleteItems(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In("DELETE FROM items WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}

// CountItems returns the number of stored items for a feed
func (r *ItemRepository) CountItems(ctx context.Context, feedID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM items WHERE feed_id = ?", feedID)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// DeleteItemsOlderThan removes items created before the cutoff across
// all feeds. Used by the optional age sweep, not by cap retention.
func (r *ItemRepository) DeleteItemsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM items WHERE datetime(created_at) < datetime(?)", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete items older than: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// ListUserItems returns all items across an owner's feeds, ordered by
// publish time descending with unknown publish times last, then by
// creation time descending.
func (r *ItemRepository) ListUserItems(ctx context.Context, userID string) ([]*domain.Item, error) {
	query := `
		SELECT i.*, f.title AS feed_title
		FROM items i
		JOIN feeds f ON i.feed_id = f.id
		WHERE f.user_id = ?
		ORDER BY i.published_at IS NULL, datetime(i.published_at) DESC, datetime(i.created_at) DESC, i.id DESC
	`
	var sqlItems []itemSQL
	if err := r.db.SelectContext(ctx, &sqlItems, query, userID); err != nil {
		return nil, fmt.Errorf("list user items: %w", err)
	}

	items := make([]*domain.Item, len(sqlItems))
	for i, item := range sqlItems {
		items[i] = r.toDomainItem(&item)
	}
	return items, nil
}

// GetItem retrieves a single item belonging to one of the owner's feeds
func (r *ItemRepository) GetItem(ctx context.Context, userID string, id int64) (*domain.Item, error) {
	query := `
		SELECT i.*, f.title AS feed_title
		FROM items i
		JOIN feeds f ON i.feed_id = f.id
		WHERE i.id = ? AND f.user_id = ?
	`
	var sqlItem itemSQL
	err := r.db.GetContext(ctx, &sqlItem, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return r.toDomainItem(&sqlItem), nil
}

// SetReadStatus marks an owner's item read or unread, stamping or
// clearing read_at accordingly
func (r *ItemRepository) SetReadStatus(ctx context.Context, userID string, itemID int64, isRead bool) error {
	var query string
	if isRead {
		query = `
			UPDATE items SET is_read = 1, read_at = datetime('now')
			WHERE id = ? AND feed_id IN (SELECT id FROM feeds WHERE user_id = ?)
		`
	} else {
		query = `
			UPDATE items SET is_read = 0, read_at = NULL
			WHERE id = ? AND feed_id IN (SELECT id FROM feeds WHERE user_id = ?)
		`
	}

	res, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("set read status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ItemRepository) toDomainItem(i *itemSQL) *domain.Item {
	return &domain.Item{
		ID:          i.ID,
		FeedID:      i.FeedID,
		GUID:        i.GUID,
		Title:       i.Title,
		Link:        i.Link,
		Description: i.Description,
		PublishedAt: i.PublishedAt,
		IsRead:      i.IsRead,
		ReadAt:      i.ReadAt,
		CreatedAt:   i.CreatedAt,
		FeedTitle:   i.FeedTitle,
	}
}
