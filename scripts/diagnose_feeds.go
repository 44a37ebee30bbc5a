// Command diagnose_feeds checks the health of the configured preset feeds.
// It fetches each feed, parses it, and prints a report so broken or empty
// presets can be spotted before users hit them.
//
// Usage:
//
//	go run scripts/diagnose_feeds.go [url ...]
//
// With no arguments the configured presets are checked (FEED_PRESETS_FILE
// or the built-in list). Extra URLs given as arguments are checked too.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"rsstok/internal/config"
)

// FeedDiagnostic is the result of checking a single feed.
type FeedDiagnostic struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Status        string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT", "REDIRECT"
	HTTPCode      int    `json:"http_code,omitempty"`
	ItemCount     int    `json:"item_count"`
	LatestDate    string `json:"latest_date,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	ResponseTime  int64  `json:"response_time_ms"`
	ContentLength int64  `json:"content_length"`
}

func main() {
	presets := config.LoadPresets()
	for _, url := range os.Args[1:] {
		presets = append(presets, config.Preset{Name: url, URL: url})
	}

	log.Printf("Diagnosing %d feeds...", len(presets))

	diagnostics := make([]FeedDiagnostic, 0, len(presets))
	for i, p := range presets {
		log.Printf("[%d/%d] Checking: %s", i+1, len(presets), p.Name)
		diagnostics = append(diagnostics, diagnoseFeed(p.Name, p.URL, 30*time.Second))

		// Be nice to the servers.
		time.Sleep(500 * time.Millisecond)
	}

	printReport(diagnostics)
	writeJSONReport(diagnostics)
}

func diagnoseFeed(name, url string, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{Name: name, URL: url}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		diag.Status = "REQUEST_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	req.Header.Set("User-Agent", "rsstok-diagnostic/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("request timeout after %v", timeout)
		} else {
			diag.Status = "HTTP_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	diag.HTTPCode = resp.StatusCode
	diag.ContentLength = resp.ContentLength

	if resp.Request.URL.String() != url {
		diag.RedirectURL = resp.Request.URL.String()
		diag.Status = "REDIRECT"
	}
	if resp.StatusCode != http.StatusOK {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status)
		return diag
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}
	for _, item := range feed.Items {
		if item.PublishedParsed != nil {
			diag.LatestDate = item.PublishedParsed.Format(time.RFC3339)
			break
		}
	}
	if diag.Status == "" {
		diag.Status = "OK"
	}
	return diag
}

func printReport(diagnostics []FeedDiagnostic) {
	counts := map[string]int{}
	for _, d := range diagnostics {
		counts[d.Status]++
	}

	fmt.Println()
	fmt.Println("=== Feed Diagnosis Report ===")
	for _, d := range diagnostics {
		fmt.Printf("%-12s %-20s %3d items  %5dms  %s\n",
			d.Status, d.Name, d.ItemCount, d.ResponseTime, d.URL)
		if d.ErrorMessage != "" {
			fmt.Printf("             %s\n", d.ErrorMessage)
		}
		if d.RedirectURL != "" {
			fmt.Printf("             redirected to %s\n", d.RedirectURL)
		}
	}
	fmt.Println()
	fmt.Printf("Summary: %d OK, %d redirect, %d empty, %d failing (of %d)\n",
		counts["OK"], counts["REDIRECT"], counts["EMPTY"],
		len(diagnostics)-counts["OK"]-counts["REDIRECT"]-counts["EMPTY"],
		len(diagnostics))
}

func writeJSONReport(diagnostics []FeedDiagnostic) {
	data, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal report: %v", err)
		return
	}
	name := fmt.Sprintf("feed_diagnosis_%s.json", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		log.Printf("Failed to write report: %v", err)
		return
	}
	log.Printf("JSON report written to %s", name)
}
