package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadPresets_Defaults(t *testing.T) {
	t.Setenv("FEED_PRESETS_FILE", "")

	presets := LoadPresets()

	if len(presets) != 4 {
		t.Fatalf("len(presets) = %d, want 4", len(presets))
	}
	if presets[0].Name != "Hacker News" {
		t.Errorf("presets[0].Name = %q, want Hacker News", presets[0].Name)
	}
}

func TestLoadPresets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
- name: Go Blog
  url: https://go.dev/blog/feed.atom
  description: Official Go news
- name: No URL
  description: should be skipped
- name: Lobsters
  url: https://lobste.rs/rss
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write presets file: %v", err)
	}
	t.Setenv("FEED_PRESETS_FILE", path)

	presets := LoadPresets()

	want := []Preset{
		{Name: "Go Blog", URL: "https://go.dev/blog/feed.atom", Description: "Official Go news"},
		{Name: "Lobsters", URL: "https://lobste.rs/rss"},
	}
	if diff := cmp.Diff(want, presets); diff != "" {
		t.Errorf("presets mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPresets_MissingFileFallsBack(t *testing.T) {
	t.Setenv("FEED_PRESETS_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	presets := LoadPresets()

	if diff := cmp.Diff(DefaultPresets(), presets); diff != "" {
		t.Errorf("presets mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPresets_InvalidYAMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write presets file: %v", err)
	}
	t.Setenv("FEED_PRESETS_FILE", path)

	presets := LoadPresets()

	if diff := cmp.Diff(DefaultPresets(), presets); diff != "" {
		t.Errorf("presets mismatch (-want +got):\n%s", diff)
	}
}
