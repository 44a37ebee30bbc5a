// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"rsstok/internal/resilience/circuitbreaker"
	"rsstok/internal/resilience/retry"
	"rsstok/internal/usecase/feed"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// RSSFetcher implements feed.Fetcher using the gofeed library.
// It includes circuit breaker, retry, and per-host rate limiting.
type RSSFetcher struct {
	client         *http.Client
	cfg            Config
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRSSFetcher creates an RSSFetcher with the given HTTP client and
// parser configuration. The client's own timeout should match cfg.Timeout.
func NewRSSFetcher(client *http.Client, cfg Config) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		cfg:            cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
		limiters:       make(map[string]*rate.Limiter),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) (*feed.Feed, error) {
	if err := f.waitHost(ctx, feedURL); err != nil {
		return nil, err
	}

	var result *feed.Feed
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}
		result = cbResult.(*feed.Feed)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return result, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) (*feed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = f.cfg.UserAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]feed.Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, f.mapItem(it))
	}

	return &feed.Feed{Title: parsed.Title, Items: items}, nil
}

// mapItem translates one gofeed item, including the extension fields the
// extractor's fallback chains consult, into the pipeline's Item.
func (f *RSSFetcher) mapItem(it *gofeed.Item) feed.Item {
	item := feed.Item{
		Title:        it.Title,
		Link:         it.Link,
		Published:    it.Published,
		PublishedAlt: it.Updated,
		Description:  it.Description,
		Content:      it.Content,
	}

	if len(it.Enclosures) > 0 {
		item.Enclosure = &feed.Enclosure{
			URL:  it.Enclosures[0].URL,
			Type: it.Enclosures[0].Type,
		}
	}

	if media, ok := it.Extensions[f.cfg.MediaNamespace]; ok {
		for _, ext := range media["content"] {
			if u := ext.Attrs["url"]; u != "" {
				item.MediaContents = append(item.MediaContents, feed.MediaObject{URL: u})
			}
		}
		if thumbs := media["thumbnail"]; len(thumbs) > 0 {
			item.MediaThumbnail = thumbs[0].Attrs["url"]
		}
	}

	// gofeed folds content:encoded into Content for RSS feeds, but keep
	// the raw extension value too so the extractor can prefer it.
	if content, ok := it.Extensions[f.cfg.ContentNamespace]; ok {
		if encoded := content["encoded"]; len(encoded) > 0 {
			item.ContentEncoded = encoded[0].Value
		}
	}

	return item
}

// waitHost applies the per-host politeness limiter.
func (f *RSSFetcher) waitHost(ctx context.Context, feedURL string) error {
	if f.cfg.PerHostRPS <= 0 {
		return nil
	}

	parsed, err := url.Parse(feedURL)
	if err != nil {
		// Let the parser produce the real error.
		return nil
	}

	f.mu.Lock()
	limiter, ok := f.limiters[parsed.Host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.cfg.PerHostRPS), f.cfg.PerHostBurst)
		f.limiters[parsed.Host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}
