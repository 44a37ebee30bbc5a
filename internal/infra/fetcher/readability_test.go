package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testConfig() ContentFetchConfig {
	cfg := DefaultContentFetchConfig()
	cfg.Enabled = true
	// httptest servers listen on loopback
	cfg.DenyPrivateIPs = false
	return cfg
}

func TestReadabilityFetcher_FetchContent_Success(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
  <nav>Home | About | Contact</nav>
  <article>
    <h1>Test Article</h1>
    <p>This is the first paragraph of the article with enough text to be
       recognized as real content by the readability algorithm. It keeps
       going for a while so the scorer has something to work with.</p>
    <p>This is the second paragraph, also reasonably long, describing the
       subject in more detail and padding out the article body.</p>
  </article>
  <footer>Copyright 2026</footer>
</body>
</html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	defer server.Close()

	f := NewReadabilityFetcher(testConfig())

	content, err := f.FetchContent(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if !strings.Contains(content, "first paragraph") {
		t.Errorf("content missing article text, got %q", content)
	}
	if strings.Contains(content, "Copyright 2026") {
		t.Errorf("content should not include footer chrome, got %q", content)
	}
}

func TestReadabilityFetcher_FetchContent_BadScheme(t *testing.T) {
	f := NewReadabilityFetcher(testConfig())

	_, err := f.FetchContent(context.Background(), "ftp://example.com/article")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("FetchContent() error = %v, want ErrInvalidURL", err)
	}
}

func TestReadabilityFetcher_FetchContent_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("x", 4096) + "</body></html>"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 1024
	f := NewReadabilityFetcher(cfg)

	_, err := f.FetchContent(context.Background(), server.URL)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("FetchContent() error = %v, want ErrBodyTooLarge", err)
	}
}

func TestReadabilityFetcher_FetchContent_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewReadabilityFetcher(testConfig())

	_, err := f.FetchContent(context.Background(), server.URL)
	if err == nil {
		t.Fatal("FetchContent() error = nil, want HTTP status error")
	}
}

func TestContentFetchConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContentFetchConfig)
		wantErr bool
	}{
		{"defaults", func(c *ContentFetchConfig) {}, false},
		{"zero timeout", func(c *ContentFetchConfig) { c.Timeout = 0 }, true},
		{"tiny body size", func(c *ContentFetchConfig) { c.MaxBodySize = 100 }, true},
		{"huge body size", func(c *ContentFetchConfig) { c.MaxBodySize = 200 * 1024 * 1024 }, true},
		{"negative redirects", func(c *ContentFetchConfig) { c.MaxRedirects = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultContentFetchConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadContentFetchConfig_Env(t *testing.T) {
	t.Setenv("CONTENT_FETCH_ENABLED", "true")
	t.Setenv("CONTENT_FETCH_TIMEOUT", "5s")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "3")

	cfg, err := LoadContentFetchConfig()
	if err != nil {
		t.Fatalf("LoadContentFetchConfig() error = %v", err)
	}
	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.MaxRedirects != 3 {
		t.Errorf("MaxRedirects = %d, want 3", cfg.MaxRedirects)
	}
}

func TestLoadContentFetchConfig_InvalidTimeout(t *testing.T) {
	t.Setenv("CONTENT_FETCH_TIMEOUT", "not-a-duration")

	_, err := LoadContentFetchConfig()
	if err == nil {
		t.Fatal("LoadContentFetchConfig() error = nil, want parse error")
	}
}
