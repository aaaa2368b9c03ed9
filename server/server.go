package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/raihara3/feedspace/pkg/domain"
	"github.com/raihara3/feedspace/pkg/repository"
)

// Server represents HTTP server instance
type Server struct {
	feeds     FeedStore
	items     ItemStore
	readLater ReadLaterStore
	keywords  KeywordStore
	fetcher   Fetcher
	ingester  Ingester
	refresher Refresher
	images    ImageExtractor

	listen    string
	timeout   time.Duration
	staleness time.Duration
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// FeedStore is the feed persistence surface for HTTP handlers
type FeedStore interface {
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	GetFeed(ctx context.Context, userID string, id int64) (*domain.Feed, error)
	ListFeeds(ctx context.Context, userID string) ([]*domain.Feed, error)
	UpdateFeedLastFetched(ctx context.Context, feedID int64, ts time.Time) error
	DeleteFeed(ctx context.Context, userID string, id int64) error
}

// ItemStore is the item persistence surface for HTTP handlers
type ItemStore interface {
	ListUserItems(ctx context.Context, userID string) ([]*domain.Item, error)
	GetItem(ctx context.Context, userID string, id int64) (*domain.Item, error)
	SetReadStatus(ctx context.Context, userID string, itemID int64, isRead bool) error
}

// ReadLaterStore manages bookmarked items
type ReadLaterStore interface {
	List(ctx context.Context, userID string) ([]*domain.ReadLaterEntry, error)
	Add(ctx context.Context, entry *domain.ReadLaterEntry) error
	Delete(ctx context.Context, userID string, id int64) error
}

// KeywordStore manages owner keywords
type KeywordStore interface {
	List(ctx context.Context, userID string) ([]*domain.Keyword, error)
	Add(ctx context.Context, userID, keyword string) (*domain.Keyword, error)
	Delete(ctx context.Context, userID string, id int64) error
}

// Fetcher retrieves and parses a feed URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Ingester reconciles normalized entries into a feed's item set
type Ingester interface {
	Ingest(ctx context.Context, feedID int64, candidates []domain.Item) (int, error)
}

// Refresher runs a refresh cycle over a set of feeds
type Refresher interface {
	RunCycle(ctx context.Context, feeds []*domain.Feed) domain.CycleReport
}

// ImageExtractor resolves a page's preview image URL
type ImageExtractor interface {
	ImageURL(ctx context.Context, pageURL string) (string, error)
}

// Params holds everything the server needs
type Params struct {
	Feeds     FeedStore
	Items     ItemStore
	ReadLater ReadLaterStore
	Keywords  KeywordStore
	Fetcher   Fetcher
	Ingester  Ingester
	Refresher Refresher
	Images    ImageExtractor

	Listen    string
	Timeout   time.Duration
	Staleness time.Duration
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		feeds:     p.Feeds,
		items:     p.Items,
		readLater: p.ReadLater,
		keywords:  p.Keywords,
		fetcher:   p.Fetcher,
		ingester:  p.Ingester,
		refresher: p.Refresher,
		images:    p.Images,
		listen:    p.Listen,
		timeout:   p.Timeout,
		staleness: p.Staleness,
		version:   p.Version,
		debug:     p.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         s.listen,
		Handler:      s.router,
		ReadTimeout:  s.timeout,
		WriteTimeout: s.timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler exposes the configured router, used by tests
func (s *Server) Handler() http.Handler { return s.router }

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedspace", "raihara3", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		owned := r.Group()
		owned.Use(s.requireUser)
		owned.HandleFunc("POST /feeds", s.createFeedHandler)
		owned.HandleFunc("GET /feeds", s.listFeedsHandler)
		owned.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		owned.HandleFunc("POST /feeds/refresh", s.refreshFeedsHandler)
		owned.HandleFunc("POST /feeds/check-and-refresh", s.checkAndRefreshHandler)
		owned.HandleFunc("GET /items", s.listItemsHandler)
		owned.HandleFunc("POST /items/{id}/read", s.markReadHandler)
		owned.HandleFunc("GET /read-later", s.listReadLaterHandler)
		owned.HandleFunc("POST /read-later", s.addReadLaterHandler)
		owned.HandleFunc("DELETE /read-later/{id}", s.deleteReadLaterHandler)
		owned.HandleFunc("GET /keywords", s.listKeywordsHandler)
		owned.HandleFunc("POST /keywords", s.addKeywordHandler)
		owned.HandleFunc("DELETE /keywords/{id}", s.deleteKeywordHandler)
		owned.HandleFunc("GET /preview", s.previewFeedHandler)
		owned.HandleFunc("GET /ogp-image", s.ogpImageHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

type ctxKey int

const userIDKey ctxKey = iota

// requireUser rejects requests without an owner identity. Identity
// arrives in the X-User-ID header, set by the auth proxy in front.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if uid == "" {
			renderError(w, r, fmt.Errorf("missing X-User-ID header"), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, uid)))
	})
}

// userID returns the owner identity set by requireUser
func userID(r *http.Request) string {
	uid, _ := r.Context().Value(userIDKey).(string)
	return uid
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// renderStoreError maps repository sentinels to HTTP statuses
func renderStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		renderError(w, r, err, http.StatusConflict)
	case errors.Is(err, repository.ErrInvalid),
		errors.Is(err, repository.ErrFeedLimit),
		errors.Is(err, repository.ErrKeywordLimit),
		errors.Is(err, repository.ErrReadLaterLimit):
		renderError(w, r, err, http.StatusBadRequest)
	default:
		lgr.Printf("[ERROR] store operation failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// pathID parses the {id} path value
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}
