package library

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"rsstok/internal/handler/http/respond"
	"rsstok/internal/observability/metrics"
)

// ListRecentFeedsHandler serves GET /library/recent-feeds.
type ListRecentFeedsHandler struct{ Svc Service }

func (h ListRecentFeedsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.Svc.RecentFeeds(r.Context())
	if err != nil {
		slog.Error("list recent feeds failed", slog.Any("error", err))
		respond.JSON(w, http.StatusOK, map[string]any{"feeds": []RecentFeedDTO{}})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"feeds": toRecentFeedDTOs(feeds)})
}

// TouchRecentFeedHandler serves POST /library/recent-feeds with body
// {"url": "..."}. Storage errors are already swallowed by the use case.
type TouchRecentFeedHandler struct{ Svc Service }

func (h TouchRecentFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.URL == "" {
		respond.Message(w, http.StatusBadRequest, "url parameter is required")
		return
	}

	h.Svc.TouchRecentFeed(r.Context(), body.URL)

	metrics.RecordLibraryOperation("recent_feeds", "touch")
	respond.JSON(w, http.StatusCreated, map[string]bool{"success": true})
}
