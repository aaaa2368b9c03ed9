package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/samber/lo"

	"github.com/raihara3/feedspace/pkg/domain"
	"github.com/raihara3/feedspace/pkg/feed"
	"github.com/raihara3/feedspace/pkg/ingest"
)

// createFeedHandler subscribes the owner to a feed URL. The URL is
// fetched and parsed up front so a broken feed is rejected before
// anything is stored, and the first ingestion happens inline.
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if !validFeedURL(req.URL) {
		renderError(w, r, fmt.Errorf("feed URL is required"), http.StatusBadRequest)
		return
	}

	parsed, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		lgr.Printf("[WARN] can't fetch feed %s: %v", req.URL, err)
		renderError(w, r, fmt.Errorf("can't fetch feed: %v", err), http.StatusBadRequest)
		return
	}

	title := parsed.Title
	if title == "" {
		title = req.URL
	}
	f := &domain.Feed{
		UserID:      userID(r),
		URL:         req.URL,
		Title:       title,
		Description: parsed.Description,
	}
	if err := s.feeds.CreateFeed(ctx, f); err != nil {
		renderStoreError(w, r, err)
		return
	}

	if err := s.feeds.UpdateFeedLastFetched(ctx, f.ID, time.Now()); err != nil {
		lgr.Printf("[WARN] failed to stamp fetch time for feed %d: %v", f.ID, err)
	}

	added, err := s.ingester.Ingest(ctx, f.ID, feed.NormalizeAll(parsed.Entries))
	if err != nil {
		// the subscription itself succeeded, the next cycle will retry items
		lgr.Printf("[WARN] initial ingestion failed for feed %d: %v", f.ID, err)
	}

	renderJSON(w, r, http.StatusCreated, map[string]interface{}{
		"feed":        f,
		"items_added": added,
	})
}

// listFeedsHandler returns the owner's feeds, newest first
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.feeds.ListFeeds(r.Context(), userID(r))
	if err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"feeds": feeds})
}

// deleteFeedHandler removes a feed and, by cascade, its items
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.feeds.DeleteFeed(r.Context(), userID(r), id); err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// refreshFeedsHandler refreshes all owner feeds regardless of staleness.
// Always 200, per-feed failures live inside the results.
func (s *Server) refreshFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.feeds.ListFeeds(r.Context(), userID(r))
	if err != nil {
		renderStoreError(w, r, err)
		return
	}

	report := s.refresher.RunCycle(r.Context(), feeds)
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"total_new_items": report.TotalNewItems(),
		"results":         report.Results,
	})
}

// checkAndRefreshHandler refreshes only feeds past the staleness window
func (s *Server) checkAndRefreshHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.feeds.ListFeeds(r.Context(), userID(r))
	if err != nil {
		renderStoreError(w, r, err)
		return
	}

	plan := ingest.PlanBatch(feeds, time.Now(), s.staleness)
	if !plan.NeedsRefresh() {
		renderJSON(w, r, http.StatusOK, map[string]interface{}{
			"needs_refresh": false,
			"message":       "all feeds are fresh",
		})
		return
	}

	report := s.refresher.RunCycle(r.Context(), plan.Due)
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"needs_refresh":   true,
		"refreshed":       true,
		"total_new_items": report.TotalNewItems(),
		"results":         report.Results,
	})
}

// previewFeedHandler fetches a feed URL without subscribing, returning
// metadata and a sample of entries
func (s *Server) previewFeedHandler(w http.ResponseWriter, r *http.Request) {
	feedURL := r.URL.Query().Get("url")
	if !validFeedURL(feedURL) {
		renderError(w, r, fmt.Errorf("url parameter is required"), http.StatusBadRequest)
		return
	}

	parsed, err := s.fetcher.Fetch(r.Context(), feedURL)
	if err != nil {
		renderError(w, r, fmt.Errorf("can't fetch feed: %v", err), http.StatusBadRequest)
		return
	}

	sample := lo.Map(lo.Subset(feed.NormalizeAll(parsed.Entries), 0, 3),
		func(it domain.Item, _ int) map[string]interface{} {
			return map[string]interface{}{
				"title":        it.Title,
				"link":         it.Link,
				"description":  it.Description,
				"published_at": it.PublishedAt,
			}
		})

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"title":       parsed.Title,
		"description": parsed.Description,
		"item_count":  len(parsed.Entries),
		"items":       sample,
	})
}

// ogpImageHandler resolves a page's social preview image
func (s *Server) ogpImageHandler(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if !validFeedURL(pageURL) {
		renderError(w, r, fmt.Errorf("url parameter is required"), http.StatusBadRequest)
		return
	}

	img, err := s.images.ImageURL(r.Context(), pageURL)
	if err != nil {
		renderError(w, r, fmt.Errorf("can't resolve image: %v", err), http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"image_url": img})
}

// validFeedURL accepts absolute http(s) URLs only
func validFeedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
