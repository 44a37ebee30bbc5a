package library

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"rsstok/internal/handler/http/respond"
	"rsstok/internal/observability/metrics"
)

// ListReadHandler serves GET /library/read, returning the links marked as
// read and their count.
type ListReadHandler struct{ Svc Service }

func (h ListReadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	links, err := h.Svc.ReadLinks(r.Context())
	if err != nil {
		slog.Error("list read links failed", slog.Any("error", err))
		respond.JSON(w, http.StatusOK, map[string]any{"links": []string{}, "count": 0})
		return
	}
	if links == nil {
		links = []string{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"links": links, "count": len(links)})
}

// MarkReadHandler serves POST /library/read with body {"link": "..."}.
type MarkReadHandler struct{ Svc Service }

func (h MarkReadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Link == "" {
		respond.Message(w, http.StatusBadRequest, "link parameter is required")
		return
	}

	if err := h.Svc.MarkRead(r.Context(), body.Link); err != nil {
		if isValidationError(err) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("mark read failed",
			slog.String("link", body.Link),
			slog.Any("error", err))
	}

	metrics.RecordLibraryOperation("read", "add")
	respond.JSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// ClearReadHandler serves DELETE /library/read, wiping read history.
type ClearReadHandler struct{ Svc Service }

func (h ClearReadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.ClearRead(r.Context()); err != nil {
		slog.Error("clear read history failed", slog.Any("error", err))
	}

	metrics.RecordLibraryOperation("read", "clear")
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
