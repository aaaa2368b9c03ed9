package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/raihara3/feedspace/pkg/domain"
	"github.com/raihara3/feedspace/pkg/feed"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester
//go:generate moq -out mocks/sweeper.go -pkg mocks -skip-ensure -fmt goimports . Sweeper

// Fetcher retrieves and parses a feed URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// FeedStore is the feed-level persistence surface the orchestrator needs
type FeedStore interface {
	UpdateFeedLastFetched(ctx context.Context, feedID int64, ts time.Time) error
	UpdateFeedMeta(ctx context.Context, feedID int64, title, description string) error
}

// Ingester reconciles normalized candidates against a feed's stored items
type Ingester interface {
	Ingest(ctx context.Context, feedID int64, candidates []domain.Item) (int, error)
}

// Sweeper removes items older than a cutoff, used by the optional age sweep
type Sweeper interface {
	DeleteItemsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Orchestrator drives one refresh cycle over a set of feeds, isolating
// failures per feed and folding outcomes into a report
type Orchestrator struct {
	fetcher  Fetcher
	feeds    FeedStore
	ingester Ingester
	sweeper  Sweeper

	maxWorkers int
	sweepAge   time.Duration
	now        func() time.Time
}

// Config holds orchestrator settings
type Config struct {
	MaxWorkers int           // concurrent feed fetches, defaults to 4
	SweepAge   time.Duration // optional age-based sweep, 0 disables it
}

// NewOrchestrator creates an orchestrator. Sweeper may be nil when the
// age sweep is disabled.
func NewOrchestrator(fetcher Fetcher, feeds FeedStore, ingester Ingester, sweeper Sweeper, cfg Config) *Orchestrator {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	return &Orchestrator{
		fetcher:    fetcher,
		feeds:      feeds,
		ingester:   ingester,
		sweeper:    sweeper,
		maxWorkers: cfg.MaxWorkers,
		sweepAge:   cfg.SweepAge,
		now:        time.Now,
	}
}

// RunCycle processes the given feeds with a bounded worker pool. Each
// feed either contributes a success entry (possibly zero new items) or
// an error entry; one feed's failure never aborts the batch. Report
// order follows completion, not input order.
func (o *Orchestrator) RunCycle(ctx context.Context, feeds []*domain.Feed) domain.CycleReport {
	results := make([]domain.FeedReport, 0, len(feeds))
	var mu sync.Mutex

	g := errgroup.Group{}
	g.SetLimit(o.maxWorkers)

	for _, f := range feeds {
		g.Go(func() error {
			report := o.processFeed(ctx, f)
			mu.Lock()
			results = append(results, report)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, failures live in the report

	if o.sweepAge > 0 && o.sweeper != nil {
		cutoff := o.now().Add(-o.sweepAge)
		if n, err := o.sweeper.DeleteItemsOlderThan(ctx, cutoff); err != nil {
			lgr.Printf("[ERROR] age sweep failed: %v", err)
		} else if n > 0 {
			lgr.Printf("[INFO] age sweep removed %d items older than %v", n, o.sweepAge)
		}
	}

	return domain.CycleReport{Results: results}
}

// processFeed runs the fetch -> normalize -> reconcile pipeline for a
// single feed and returns its report entry
func (o *Orchestrator) processFeed(ctx context.Context, f *domain.Feed) domain.FeedReport {
	lgr.Printf("[DEBUG] refreshing feed %q (%s)", f.Title, f.URL)

	parsed, err := o.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch feed %q: %v", f.URL, err)
		return domain.FeedReport{Feed: f.Title, Error: err.Error()}
	}

	// stamp the fetch time before item persistence so a slow or failing
	// write cannot make the next cycle retry inside the staleness window
	if err := o.feeds.UpdateFeedLastFetched(ctx, f.ID, o.now()); err != nil {
		lgr.Printf("[WARN] failed to update last fetched for feed %d: %v", f.ID, err)
	}

	// pick up upstream title/description changes
	if parsed.Title != "" && (parsed.Title != f.Title || parsed.Description != f.Description) {
		if err := o.feeds.UpdateFeedMeta(ctx, f.ID, parsed.Title, parsed.Description); err != nil {
			lgr.Printf("[WARN] failed to update metadata for feed %d: %v", f.ID, err)
		}
	}

	candidates := feed.NormalizeAll(parsed.Entries)
	inserted, err := o.ingester.Ingest(ctx, f.ID, candidates)
	if err != nil {
		lgr.Printf("[WARN] failed to reconcile feed %q: %v", f.Title, err)
		return domain.FeedReport{Feed: f.Title, Error: err.Error()}
	}

	if inserted > 0 {
		lgr.Printf("[INFO] added %d new items from feed %q", inserted, f.Title)
	}
	return domain.FeedReport{Feed: f.Title, NewItems: inserted}
}
