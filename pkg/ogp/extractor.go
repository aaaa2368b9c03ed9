package ogp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Extractor resolves a page's social preview image from its OGP or
// Twitter card metadata. Results, including misses, are cached with a
// TTL so repeated item renders don't re-fetch the same article.
type Extractor struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	cache       *expirable.LRU[string, string]
}

// Params configures the extractor
type Params struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	CacheSize   int
	CacheTTL    time.Duration
}

// NewExtractor creates an extractor with a bounded TTL cache
func NewExtractor(p Params) *Extractor {
	if p.Timeout <= 0 {
		p.Timeout = 5 * time.Second
	}
	if p.MaxBodySize <= 0 {
		p.MaxBodySize = 50 * 1024
	}
	if p.CacheSize <= 0 {
		p.CacheSize = 256
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = time.Hour
	}
	return &Extractor{
		client:      &http.Client{Timeout: p.Timeout},
		userAgent:   p.UserAgent,
		maxBodySize: p.MaxBodySize,
		cache:       expirable.NewLRU[string, string](p.CacheSize, nil, p.CacheTTL),
	}
}

// metaSelectors in priority order, og:image first
var metaSelectors = []string{
	`meta[property="og:image"]`,
	`meta[property="og:image:url"]`,
	`meta[name="twitter:image"]`,
	`meta[name="twitter:image:src"]`,
}

// ImageURL returns the preview image URL for the page, or empty string
// when the page declares none. A cached entry, hit or miss, is returned
// without a network round trip.
func (e *Extractor) ImageURL(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid URL: %s", pageURL)
	}

	if img, ok := e.cache.Get(pageURL); ok {
		return img, nil
	}

	img, err := e.fetchImage(ctx, pageURL, parsed)
	if err != nil {
		return "", err
	}

	// misses are cached too, a page without metadata stays that way
	e.cache.Add(pageURL, img)
	return img, nil
}

func (e *Extractor) fetchImage(ctx context.Context, pageURL string, base *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, pageURL)
	}

	// meta tags live in <head>, a bounded prefix of the page is enough
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, e.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("parse HTML from %s: %w", pageURL, err)
	}

	for _, sel := range metaSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if img := resolveImageURL(base, content); img != "" {
				return img, nil
			}
		}
	}

	lgr.Printf("[DEBUG] no preview image metadata at %s", pageURL)
	return "", nil
}

// resolveImageURL absolutizes relative image references against the
// page URL and rejects non-http results
func resolveImageURL(base *url.URL, content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	ref, err := url.Parse(content)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}
