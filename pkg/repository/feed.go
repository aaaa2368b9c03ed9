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

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db     *sqlx.DB
	limits Limits
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID            int64      `db:"id"`
	UserID        string     `db:"user_id"`
	URL           string     `db:"url"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	LastFetchedAt *time.Time `db:"last_fetched_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB, limits Limits) *FeedRepository {
	return &FeedRepository{db: database, limits: limits}
}

// CreateFeed inserts a new feed for its owner. Returns ErrFeedLimit
// when the owner is at capacity and ErrDuplicate when the URL is
// already registered for this owner.
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	if r.limits.MaxFeeds > 0 {
		var count int
		if err := r.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM feeds WHERE user_id = ?", feed.UserID); err != nil {
			return fmt.Errorf("count feeds: %w", err)
		}
		if count >= r.limits.MaxFeeds {
			return ErrFeedLimit
		}
	}

	sqlFeed := &feedSQL{
		UserID:        feed.UserID,
		URL:           feed.URL,
		Title:         feed.Title,
		Description:   feed.Description,
		LastFetchedAt: feed.LastFetchedAt,
	}

	query := `
		INSERT INTO feeds (user_id, url, title, description, last_fetched_at)
		VALUES (:user_id, :url, :title, :description, :last_fetched_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlFeed)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	feed.ID = id
	return nil
}

// GetFeed retrieves an owner's feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, userID string, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed,
		"SELECT * FROM feeds WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return r.toDomainFeed(&sqlFeed), nil
}

// ListFeeds retrieves all feeds of an owner, newest first
func (r *FeedRepository) ListFeeds(ctx context.Context, userID string) ([]*domain.Feed, error) {
	var sqlFeeds []feedSQL
	err := r.db.SelectContext(ctx, &sqlFeeds,
		"SELECT * FROM feeds WHERE user_id = ? ORDER BY datetime(created_at) DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	feeds := make([]*domain.Feed, len(sqlFeeds))
	for i, f := range sqlFeeds {
		feeds[i] = r.toDomainFeed(&f)
	}
	return feeds, nil
}

// UpdateFeedLastFetched stamps the feed's last successful fetch time.
// Retries on SQLite busy errors since it races with item writes.
func (r *FeedRepository) UpdateFeedLastFetched(ctx context.Context, feedID int64, ts time.Time) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			UPDATE feeds
			SET last_fetched_at = ?,
			    updated_at = datetime('now')
			WHERE id = ?
		`
		_, err := r.db.ExecContext(ctx, query, ts, feedID)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update feed last fetched: %w", err)}
		}
		return nil
	})
}

// UpdateFeedMeta refreshes title and description from a re-fetch
func (r *FeedRepository) UpdateFeedMeta(ctx context.Context, feedID int64, title, description string) error {
	query := `
		UPDATE feeds
		SET title = ?, description = ?, updated_at = datetime('now')
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, title, description, feedID)
	if err != nil {
		return fmt.Errorf("update feed meta: %w", err)
	}
	return nil
}

// DeleteFeed removes an owner's feed and, via cascade, all its items
func (r *FeedRepository) DeleteFeed(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM feeds WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete feed rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FeedRepository) toDomainFeed(f *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:            f.ID,
		UserID:        f.UserID,
		URL:           f.URL,
		Title:         f.Title,
		Description:   f.Description,
		LastFetchedAt: f.LastFetchedAt,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
