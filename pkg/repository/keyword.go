package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/raihara3/feedspace/pkg/domain"
)

// KeywordRepository handles owner-scoped keyword operations
type KeywordRepository struct {
	db     *sqlx.DB
	limits Limits
}

// keywordSQL represents a keyword for SQL operations
type keywordSQL struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Keyword   string    `db:"keyword"`
	CreatedAt time.Time `db:"created_at"`
}

// NewKeywordRepository creates a new keyword repository
func NewKeywordRepository(database *sqlx.DB, limits Limits) *KeywordRepository {
	return &KeywordRepository{db: database, limits: limits}
}

// List returns an owner's keywords in registration order
func (r *KeywordRepository) List(ctx context.Context, userID string) ([]*domain.Keyword, error) {
	var keywords []keywordSQL
	err := r.db.SelectContext(ctx, &keywords,
		"SELECT * FROM keywords WHERE user_id = ? ORDER BY datetime(created_at) ASC, id ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}

	result := make([]*domain.Keyword, len(keywords))
	for i, k := range keywords {
		result[i] = r.toDomainKeyword(&k)
	}
	return result, nil
}

// Add registers a keyword for an owner. The keyword is trimmed and
// validated against the length limit; ErrKeywordLimit and ErrDuplicate
// signal capacity and uniqueness violations.
func (r *KeywordRepository) Add(ctx context.Context, userID, keyword string) (*domain.Keyword, error) {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: keyword cannot be empty", ErrInvalid)
	}
	if r.limits.KeywordMaxLength > 0 && len([]rune(trimmed)) > r.limits.KeywordMaxLength {
		return nil, fmt.Errorf("%w: keyword must be %d characters or less", ErrInvalid, r.limits.KeywordMaxLength)
	}

	if r.limits.MaxKeywords > 0 {
		var count int
		if err := r.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM keywords WHERE user_id = ?", userID); err != nil {
			return nil, fmt.Errorf("count keywords: %w", err)
		}
		if count >= r.limits.MaxKeywords {
			return nil, ErrKeywordLimit
		}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO keywords (user_id, keyword) VALUES (?, ?)", userID, trimmed)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("add keyword: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get insert id: %w", err)
	}

	var created keywordSQL
	if err := r.db.GetContext(ctx, &created, "SELECT * FROM keywords WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get created keyword: %w", err)
	}
	return r.toDomainKeyword(&created), nil
}

// Delete removes an owner's keyword
func (r *KeywordRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM keywords WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete keyword: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete keyword rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *KeywordRepository) toDomainKeyword(k *keywordSQL) *domain.Keyword {
	return &domain.Keyword{
		ID:        k.ID,
		UserID:    k.UserID,
		Keyword:   k.Keyword,
		CreatedAt: k.CreatedAt,
	}
}
