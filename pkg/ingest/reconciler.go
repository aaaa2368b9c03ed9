package ingest

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/raihara3/feedspace/pkg/domain"
)

//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore

// ItemStore is the item-level persistence surface the reconciler needs
type ItemStore interface {
	GetExistingGuids(ctx context.Context, feedID int64) (map[string]struct{}, error)
	UpsertItems(ctx context.Context, feedID int64, items []domain.Item) (int, error)
	InsertItemFallback(ctx context.Context, feedID int64, item domain.Item) (bool, error)
	ListItemIDsByAge(ctx context.Context, feedID int64) ([]int64, error)
	DeleteItems(ctx context.Context, ids []int64) error
}

// Reconciler decides which candidate entries are new for a feed and
// which stored items must go to respect the per-feed retention cap
type Reconciler struct {
	store        ItemStore
	retentionCap int
}

// NewReconciler creates a reconciler with the given retention cap
func NewReconciler(store ItemStore, retentionCap int) *Reconciler {
	return &Reconciler{store: store, retentionCap: retentionCap}
}

// Dedup filters candidates down to those not already stored, keeping
// source order. Within the batch the first occurrence of a guid wins,
// so two entries normalized to the same key count once.
func Dedup(existing map[string]struct{}, candidates []domain.Item) []domain.Item {
	seen := make(map[string]struct{}, len(candidates))
	fresh := make([]domain.Item, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := existing[c.GUID]; ok {
			continue
		}
		if _, ok := seen[c.GUID]; ok {
			continue
		}
		seen[c.GUID] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}

// Ingest runs one reconcile pass for a feed: dedup against stored
// guids, insert what's new, then enforce the retention cap. The cap
// step runs even when nothing was inserted - it is a standalone
// invariant, not a side effect of inserting.
func (r *Reconciler) Ingest(ctx context.Context, feedID int64, candidates []domain.Item) (int, error) {
	existing, err := r.store.GetExistingGuids(ctx, feedID)
	if err != nil {
		return 0, fmt.Errorf("load existing guids: %w", err)
	}

	fresh := Dedup(existing, candidates)

	inserted := 0
	if len(fresh) > 0 {
		inserted, err = r.store.UpsertItems(ctx, feedID, fresh)
		if err != nil {
			// the batch path failed, retry row by row tolerating duplicates
			lgr.Printf("[WARN] batch insert failed for feed %d, falling back to row-by-row: %v", feedID, err)
			inserted = r.insertOneByOne(ctx, feedID, fresh)
		}
	}

	evicted, err := r.EnforceCap(ctx, feedID)
	if err != nil {
		return inserted, fmt.Errorf("enforce retention cap: %w", err)
	}
	if evicted > 0 {
		lgr.Printf("[DEBUG] evicted %d items beyond cap for feed %d", evicted, feedID)
	}

	return inserted, nil
}

// insertOneByOne is the compensating path when the transactional batch
// insert is unavailable: sequential idempotent inserts, counting
// successes and ignoring duplicate-key signals
func (r *Reconciler) insertOneByOne(ctx context.Context, feedID int64, items []domain.Item) int {
	inserted := 0
	for _, item := range items {
		ok, err := r.store.InsertItemFallback(ctx, feedID, item)
		if err != nil {
			lgr.Printf("[WARN] fallback insert failed for feed %d guid %q: %v", feedID, item.GUID, err)
			continue
		}
		if ok {
			inserted++
		}
	}
	return inserted
}

// EnforceCap evicts everything beyond the retention cap, oldest by
// creation time first. Creation time, not publish time, keeps eviction
// monotonic regardless of what dates the feed reports.
func (r *Reconciler) EnforceCap(ctx context.Context, feedID int64) (int, error) {
	ids, err := r.store.ListItemIDsByAge(ctx, feedID)
	if err != nil {
		return 0, fmt.Errorf("list items by age: %w", err)
	}

	if len(ids) <= r.retentionCap {
		return 0, nil
	}

	toEvict := ids[r.retentionCap:]
	if err := r.store.DeleteItems(ctx, toEvict); err != nil {
		return 0, fmt.Errorf("delete evicted items: %w", err)
	}
	return len(toEvict), nil
}
