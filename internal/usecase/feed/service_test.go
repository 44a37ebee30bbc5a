package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type stubFetcher struct {
	feeds   map[string]*Feed
	errs    map[string]error
	fetches []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*Feed, error) {
	f.fetches = append(f.fetches, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if feed, ok := f.feeds[url]; ok {
		return feed, nil
	}
	return nil, errors.New("unexpected url: " + url)
}

type stubExtractor struct {
	image   string
	summary string
	full    string
}

func (e stubExtractor) Image(Item) string       { return e.image }
func (e stubExtractor) Summary(Item) string     { return e.summary }
func (e stubExtractor) FullContent(Item) string { return e.full }

type stubContentFetcher struct {
	body string
	err  error
}

func (c stubContentFetcher) FetchContent(context.Context, string) (string, error) {
	return c.body, c.err
}

func feedWithItems(title string, n int) *Feed {
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{
			Title:     fmt.Sprintf("%s item %d", title, i),
			Link:      fmt.Sprintf("https://example.com/%s/%d", title, i),
			Published: "Mon, 02 Jan 2006 15:04:05 GMT",
		})
	}
	return &Feed{Title: title, Items: items}
}

func newTestService(fetcher Fetcher, cfg Config) *Service {
	return NewService(fetcher, stubExtractor{}, nil, cfg)
}

func TestFetchFeed_NormalizesItems(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": {
			Title: "Example Feed",
			Items: []Item{
				{Title: "Has Title", Link: "https://a.example/1", Published: "2026-05-04"},
				{Link: "https://a.example/2"},
			},
		},
	}}
	svc := NewService(fetcher, stubExtractor{image: "https://img.example/x.jpg", summary: "snippet"}, nil, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}

	if batch.Title != "Example Feed" {
		t.Errorf("Title = %q", batch.Title)
	}
	if len(batch.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2", len(batch.Articles))
	}

	first := batch.Articles[0]
	if first.Title != "Has Title" || first.PubDate != "2026-05-04" {
		t.Errorf("first article = %+v", first)
	}
	if first.Image != "https://img.example/x.jpg" {
		t.Errorf("Image = %q", first.Image)
	}
	if first.Source != "Example Feed" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.Description != "snippet" {
		t.Errorf("Description = %q", first.Description)
	}

	second := batch.Articles[1]
	if second.Title != "Untitled" {
		t.Errorf("missing title = %q, want Untitled", second.Title)
	}
	if second.PubDate == "" {
		t.Error("missing pub date not defaulted")
	}
}

func TestFetchFeed_DefaultImageApplied(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": feedWithItems("a", 1),
	}}
	svc := newTestService(fetcher, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if batch.Articles[0].Image != DefaultImage {
		t.Errorf("Image = %q, want default placeholder", batch.Articles[0].Image)
	}
}

func TestFetchFeed_CapsArticles(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": feedWithItems("a", 40),
	}}
	svc := newTestService(fetcher, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if len(batch.Articles) != maxArticles {
		t.Errorf("len(Articles) = %d, want %d", len(batch.Articles), maxArticles)
	}
	// Document order is preserved before the cap.
	if batch.Articles[0].Title != "a item 0" {
		t.Errorf("first article = %q", batch.Articles[0].Title)
	}
}

func TestFetchFeed_ValidationBeforeNetwork(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := newTestService(fetcher, Config{})

	for _, url := range []string{"", "   ", "ftp://example.com/feed", "not a url"} {
		_, err := svc.FetchFeed(context.Background(), url)
		if !errors.Is(err, ErrURLRequired) {
			t.Errorf("FetchFeed(%q) error = %v, want ErrURLRequired", url, err)
		}
	}
	if len(fetcher.fetches) != 0 {
		t.Errorf("fetcher called %d times for invalid input", len(fetcher.fetches))
	}
}

func TestFetchFeed_FetchFailureCollapses(t *testing.T) {
	fetcher := &stubFetcher{errs: map[string]error{
		"https://down.example/rss": errors.New("dial tcp: connection refused"),
	}}
	svc := newTestService(fetcher, Config{})

	_, err := svc.FetchFeed(context.Background(), "https://down.example/rss")
	if !errors.Is(err, ErrFeedUnavailable) {
		t.Fatalf("error = %v, want ErrFeedUnavailable", err)
	}
	if strings.Contains(err.Error(), "connection refused") {
		t.Errorf("underlying cause leaked into error: %v", err)
	}
}

func TestFetchFeed_UnknownSourceDefault(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": {Items: []Item{{Title: "x", Link: "https://a.example/1"}}},
	}}
	svc := newTestService(fetcher, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if batch.Articles[0].Source != "Unknown Source" {
		t.Errorf("Source = %q, want Unknown Source", batch.Articles[0].Source)
	}
}

func TestFetchFeed_CachedWithinTTL(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": feedWithItems("a", 2),
	}}
	svc := newTestService(fetcher, Config{CacheTTL: time.Hour})

	first, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	second, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}

	if len(fetcher.fetches) != 1 {
		t.Errorf("fetches = %d, want 1", len(fetcher.fetches))
	}
	if first != second {
		t.Error("cached call returned a different batch")
	}
}

func TestFetchMixed_MergesAndShuffles(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": feedWithItems("Alpha", 3),
		"https://b.example/rss": feedWithItems("Beta", 2),
	}}
	svc := newTestService(fetcher, Config{})

	batch, err := svc.FetchMixed(context.Background(), []string{"https://a.example/rss", "https://b.example/rss"})
	if err != nil {
		t.Fatalf("FetchMixed() error = %v", err)
	}

	if batch.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", batch.SourceCount)
	}
	if batch.Title != "2 Mixed Feeds" {
		t.Errorf("Title = %q", batch.Title)
	}
	if len(batch.Articles) != 5 {
		t.Fatalf("len(Articles) = %d, want 5", len(batch.Articles))
	}

	// Shuffling must preserve the multiset of articles.
	var links []string
	for _, a := range batch.Articles {
		links = append(links, a.Link)
	}
	sort.Strings(links)
	want := []string{
		"https://example.com/Alpha/0",
		"https://example.com/Alpha/1",
		"https://example.com/Alpha/2",
		"https://example.com/Beta/0",
		"https://example.com/Beta/1",
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchMixed_SingleSourceKeepsTitle(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": feedWithItems("Alpha", 2),
	}}
	svc := newTestService(fetcher, Config{})

	batch, err := svc.FetchMixed(context.Background(), []string{"https://a.example/rss"})
	if err != nil {
		t.Fatalf("FetchMixed() error = %v", err)
	}
	if batch.Title != "Alpha" {
		t.Errorf("Title = %q, want Alpha", batch.Title)
	}
	if batch.SourceCount != 1 {
		t.Errorf("SourceCount = %d, want 1", batch.SourceCount)
	}
}

func TestFetchMixed_PartialFailureTolerated(t *testing.T) {
	fetcher := &stubFetcher{
		feeds: map[string]*Feed{
			"https://a.example/rss": feedWithItems("Alpha", 2),
		},
		errs: map[string]error{
			"https://down.example/rss": errors.New("boom"),
		},
	}
	svc := newTestService(fetcher, Config{})

	batch, err := svc.FetchMixed(context.Background(), []string{"https://a.example/rss", "https://down.example/rss"})
	if err != nil {
		t.Fatalf("FetchMixed() error = %v", err)
	}
	if batch.SourceCount != 1 {
		t.Errorf("SourceCount = %d, want 1", batch.SourceCount)
	}
	if len(batch.Failed) != 1 || batch.Failed[0] != "https://down.example/rss" {
		t.Errorf("Failed = %v", batch.Failed)
	}
}

func TestFetchMixed_AllFeedsFail(t *testing.T) {
	fetcher := &stubFetcher{errs: map[string]error{
		"https://a.example/rss": errors.New("boom"),
		"https://b.example/rss": errors.New("boom"),
	}}
	svc := newTestService(fetcher, Config{})

	_, err := svc.FetchMixed(context.Background(), []string{"https://a.example/rss", "https://b.example/rss"})
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("error = %v, want ErrNoArticles", err)
	}
}

func TestFetchMixed_EmptyURLs(t *testing.T) {
	svc := newTestService(&stubFetcher{}, Config{})

	for _, urls := range [][]string{nil, {}, {"", "  "}} {
		_, err := svc.FetchMixed(context.Background(), urls)
		if !errors.Is(err, ErrURLRequired) {
			t.Errorf("FetchMixed(%v) error = %v, want ErrURLRequired", urls, err)
		}
	}
}

func TestFetchMixed_CacheKeyOrderIndependent(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": feedWithItems("Alpha", 1),
		"https://b.example/rss": feedWithItems("Beta", 1),
	}}
	svc := newTestService(fetcher, Config{CacheTTL: time.Hour})

	first, err := svc.FetchMixed(context.Background(), []string{"https://a.example/rss", "https://b.example/rss"})
	if err != nil {
		t.Fatalf("FetchMixed() error = %v", err)
	}
	second, err := svc.FetchMixed(context.Background(), []string{"https://b.example/rss", "https://a.example/rss"})
	if err != nil {
		t.Fatalf("FetchMixed() error = %v", err)
	}

	if first != second {
		t.Error("reordered URL set missed the cache")
	}
}

func TestEnhanceContent_LongBodyAdopted(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": {Title: "Alpha", Items: []Item{{Title: "x", Link: "https://a.example/1"}}},
	}}
	body := strings.Repeat("w", 400)
	svc := NewService(fetcher, stubExtractor{}, stubContentFetcher{body: body}, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if !batch.Articles[0].HasFullContent {
		t.Fatal("HasFullContent = false, want true")
	}
	if batch.Articles[0].FullContent != body {
		t.Error("fetched body not adopted")
	}
}

func TestEnhanceContent_ShortBodyIgnored(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": {Title: "Alpha", Items: []Item{{Title: "x", Link: "https://a.example/1"}}},
	}}
	svc := NewService(fetcher, stubExtractor{}, stubContentFetcher{body: "too short"}, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if batch.Articles[0].HasFullContent {
		t.Error("short fetched body should not count as full content")
	}
}

func TestEnhanceContent_FetchFailureDegrades(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": {Title: "Alpha", Items: []Item{{Title: "x", Link: "https://a.example/1"}}},
	}}
	svc := NewService(fetcher, stubExtractor{}, stubContentFetcher{err: errors.New("timeout")}, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if batch.Articles[0].HasFullContent {
		t.Error("failed enhancement should degrade to no full content")
	}
}

func TestEnhanceContent_FeedContentWins(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*Feed{
		"https://a.example/rss": {Title: "Alpha", Items: []Item{{Title: "x", Link: "https://a.example/1"}}},
	}}
	feedBody := strings.Repeat("f", 400)
	svc := NewService(fetcher, stubExtractor{full: feedBody}, stubContentFetcher{body: strings.Repeat("w", 500)}, Config{})

	batch, err := svc.FetchFeed(context.Background(), "https://a.example/rss")
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if batch.Articles[0].FullContent != feedBody {
		t.Error("feed-supplied content should not be replaced by a fetched body")
	}
}
