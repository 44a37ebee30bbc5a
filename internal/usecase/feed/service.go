package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"rsstok/internal/domain/entity"
	"rsstok/internal/observability/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	// maxArticles bounds each feed to its first entries in document order.
	maxArticles = 15

	// fullContentThreshold is the minimum rune count for an extracted body
	// to be presented as full content. Shorter bodies are not meaningfully
	// longer than the truncated summary and are treated as absent.
	fullContentThreshold = 350
)

// DefaultImage is the placeholder used when no image can be extracted.
const DefaultImage = "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=800&q=80"

// Config holds tunables for the feed service.
type Config struct {
	// MaxArticles caps the number of entries taken per feed. Zero means
	// the built-in default of 15.
	MaxArticles int

	// DefaultImage is the fallback image URL. Zero value means the
	// built-in placeholder.
	DefaultImage string

	// CacheTTL is how long fetched batches are served from memory.
	// Zero disables caching.
	CacheTTL time.Duration
}

// DefaultConfig returns the service defaults: 15 articles per feed, the
// built-in placeholder image, and a one hour cache window.
func DefaultConfig() Config {
	return Config{
		MaxArticles:  maxArticles,
		DefaultImage: DefaultImage,
		CacheTTL:     time.Hour,
	}
}

// Service orchestrates feed fetching, normalization, and merging.
type Service struct {
	fetcher        Fetcher
	extractor      Extractor
	contentFetcher ContentFetcher
	cfg            Config

	feedCache  *ttlCache[*entity.FeedBatch]
	mixedCache *ttlCache[*entity.MixedBatch]

	now func() time.Time
}

// NewService creates a feed Service. contentFetcher may be nil to disable
// readable-body enhancement for items whose feed content is too short.
func NewService(fetcher Fetcher, extractor Extractor, contentFetcher ContentFetcher, cfg Config) *Service {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = maxArticles
	}
	if cfg.DefaultImage == "" {
		cfg.DefaultImage = DefaultImage
	}
	return &Service{
		fetcher:        fetcher,
		extractor:      extractor,
		contentFetcher: contentFetcher,
		cfg:            cfg,
		feedCache:      newTTLCache[*entity.FeedBatch](cfg.CacheTTL),
		mixedCache:     newTTLCache[*entity.MixedBatch](cfg.CacheTTL),
		now:            time.Now,
	}
}

// CacheSize reports how many batches are currently cached, counting both
// single-feed and mixed entries. Used by the health endpoint.
func (s *Service) CacheSize() int {
	return s.feedCache.size() + s.mixedCache.size()
}

// FetchFeed retrieves one feed and normalizes its first entries into
// Articles. Caller-input problems surface as ErrURLRequired before any
// network access; everything else that goes wrong with the feed itself
// collapses into ErrFeedUnavailable with the cause logged.
func (s *Service) FetchFeed(ctx context.Context, url string) (*entity.FeedBatch, error) {
	if err := entity.ValidateFeedURL(url); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrURLRequired, err)
	}

	if batch, ok := s.feedCache.get(cacheKey([]string{url})); ok {
		metrics.RecordFeedCacheHit()
		return batch, nil
	}
	metrics.RecordFeedCacheMiss()

	start := s.now()
	parsed, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Warn("feed fetch failed",
			slog.String("url", url),
			slog.Any("error", err))
		metrics.RecordFeedFetch(false, s.now().Sub(start))
		return nil, fmt.Errorf("%w: %s", ErrFeedUnavailable, url)
	}
	metrics.RecordFeedFetch(true, s.now().Sub(start))

	fetchedAt := s.now()
	source := parsed.Title
	if source == "" {
		source = "Unknown Source"
	}

	items := parsed.Items
	if len(items) > s.cfg.MaxArticles {
		items = items[:s.cfg.MaxArticles]
	}

	articles := make([]entity.Article, 0, len(items))
	for i, item := range items {
		articles = append(articles, s.buildArticle(ctx, item, source, fetchedAt, i))
	}

	batch := &entity.FeedBatch{
		Title:     parsed.Title,
		Articles:  articles,
		FetchedAt: fetchedAt,
	}
	s.feedCache.put(cacheKey([]string{url}), batch)
	return batch, nil
}

// FetchMixed fetches every URL independently and concurrently, tolerates
// partial failures, and returns the surviving articles in uniform random
// order. It fails only when no feed yields anything.
func (s *Service) FetchMixed(ctx context.Context, urls []string) (*entity.MixedBatch, error) {
	urls = normalizeURLs(urls)
	if len(urls) == 0 {
		return nil, ErrURLRequired
	}

	key := cacheKey(urls)
	if batch, ok := s.mixedCache.get(key); ok {
		metrics.RecordFeedCacheHit()
		return batch, nil
	}
	metrics.RecordFeedCacheMiss()

	var (
		mu      sync.Mutex
		batches []*entity.FeedBatch
		failed  []string
	)

	// Fan-out with per-feed failure isolation: goroutines never return an
	// error, so one bad feed cannot cancel its siblings through the group
	// context. Only external cancellation propagates.
	g, gctx := errgroup.WithContext(ctx)
	for _, url := range urls {
		g.Go(func() error {
			batch, err := s.FetchFeed(gctx, url)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("feed dropped from mixed batch",
					slog.String("url", url),
					slog.Any("error", err))
				failed = append(failed, url)
				return nil
			}
			batches = append(batches, batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var articles []entity.Article
	sourceCount := 0
	singleTitle := ""
	for _, batch := range batches {
		if len(batch.Articles) == 0 {
			continue
		}
		sourceCount++
		singleTitle = batch.Articles[0].Source
		articles = append(articles, batch.Articles...)
	}

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	shuffleArticles(articles)

	title := singleTitle
	if sourceCount > 1 {
		title = fmt.Sprintf("%d Mixed Feeds", sourceCount)
	}

	batch := &entity.MixedBatch{
		Articles:    articles,
		Title:       title,
		SourceCount: sourceCount,
		FetchedAt:   s.now(),
		Failed:      failed,
	}
	s.mixedCache.put(key, batch)
	metrics.RecordMixedBatch(len(articles))

	slog.Info("mixed batch assembled",
		slog.Int("requested", len(urls)),
		slog.Int("source_count", sourceCount),
		slog.Int("articles", len(articles)),
		slog.Int("failed", len(failed)))

	return batch, nil
}

// buildArticle maps one feed item to an Article, applying the extraction
// fallback chains and the documented defaults.
func (s *Service) buildArticle(ctx context.Context, item Item, source string, fetchedAt time.Time, index int) entity.Article {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}

	pubDate := item.Published
	if pubDate == "" {
		pubDate = item.PublishedAlt
	}
	if pubDate == "" {
		pubDate = fetchedAt.UTC().Format(time.RFC3339)
	}

	image := s.extractor.Image(item)
	if image == "" {
		image = s.cfg.DefaultImage
	}

	fullContent := s.extractor.FullContent(item)
	if fullContent == "" {
		fullContent = s.enhanceContent(ctx, item)
	}

	return entity.Article{
		ID:             fmt.Sprintf("%d-%d", fetchedAt.UnixMilli(), index),
		Title:          title,
		Description:    s.extractor.Summary(item),
		FullContent:    fullContent,
		HasFullContent: fullContent != "",
		Link:           item.Link,
		PubDate:        pubDate,
		Image:          image,
		Source:         source,
	}
}

// enhanceContent fetches a readable body from the article page when the
// feed item carried nothing substantial. Failures degrade to "no full
// content"; they never fail the batch.
func (s *Service) enhanceContent(ctx context.Context, item Item) string {
	if s.contentFetcher == nil || item.Link == "" {
		return ""
	}

	start := s.now()
	body, err := s.contentFetcher.FetchContent(ctx, item.Link)
	if err != nil {
		metrics.RecordContentFetchFailed(s.now().Sub(start))
		slog.Debug("content enhancement failed",
			slog.String("url", item.Link),
			slog.Any("error", err))
		return ""
	}
	metrics.RecordContentFetchSuccess(s.now().Sub(start), len(body))
	if utf8.RuneCountInString(body) <= fullContentThreshold {
		return ""
	}
	return body
}

// normalizeURLs trims whitespace and drops empty entries, preserving order.
func normalizeURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
