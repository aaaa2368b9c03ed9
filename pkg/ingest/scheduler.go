package ingest

import (
	"time"

	"github.com/samber/lo"

	"github.com/raihara3/feedspace/pkg/domain"
)

// IsDue reports whether a feed is due for a refresh: either it has
// never been fetched or the staleness window has elapsed since the
// last successful fetch.
func IsDue(feed *domain.Feed, now time.Time, staleness time.Duration) bool {
	if feed.LastFetchedAt == nil {
		return true
	}
	return now.Sub(*feed.LastFetchedAt) >= staleness
}

// BatchPlan partitions feeds into those due for refresh and those
// still fresh
type BatchPlan struct {
	Due     []*domain.Feed
	Skipped []*domain.Feed
}

// NeedsRefresh reports whether the plan has any work to do
func (p BatchPlan) NeedsRefresh() bool { return len(p.Due) > 0 }

// PlanBatch partitions feeds by staleness. Pure and side-effect free;
// it neither fetches nor mutates anything.
func PlanBatch(feeds []*domain.Feed, now time.Time, staleness time.Duration) BatchPlan {
	due, skipped := lo.FilterReject(feeds, func(f *domain.Feed, _ int) bool {
		return IsDue(f, now, staleness)
	})
	return BatchPlan{Due: due, Skipped: skipped}
}
