package library

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"rsstok/internal/domain/entity"
	"rsstok/internal/handler/http/respond"
	"rsstok/internal/observability/metrics"
	libUC "rsstok/internal/usecase/library"
)

// Storage failures on library reads degrade to empty collections instead
// of erroring. The library is a convenience layer; losing it must never
// break the reading flow.

// ListSavedHandler serves GET /library/saved.
type ListSavedHandler struct{ Svc Service }

func (h ListSavedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.ListSaved(r.Context())
	if err != nil {
		slog.Error("list saved articles failed", slog.Any("error", err))
		respond.JSON(w, http.StatusOK, map[string]any{"articles": []SavedDTO{}})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"articles": toSavedDTOs(articles)})
}

// SaveHandler serves POST /library/saved.
type SaveHandler struct{ Svc Service }

func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var article entity.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Svc.SaveArticle(r.Context(), article); err != nil {
		if isValidationError(err) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("save article failed",
			slog.String("link", article.Link),
			slog.Any("error", err))
	}

	metrics.RecordLibraryOperation("saved", "add")
	respond.JSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// UnsaveHandler serves DELETE /library/saved?link=.
type UnsaveHandler struct{ Svc Service }

func (h UnsaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		respond.Message(w, http.StatusBadRequest, "link parameter is required")
		return
	}

	if err := h.Svc.UnsaveArticle(r.Context(), link); err != nil {
		if isValidationError(err) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("unsave article failed",
			slog.String("link", link),
			slog.Any("error", err))
	}

	metrics.RecordLibraryOperation("saved", "remove")
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// isValidationError reports whether err is caller feedback rather than a
// storage failure.
func isValidationError(err error) bool {
	return errors.Is(err, libUC.ErrLinkRequired) || errors.Is(err, libUC.ErrTitleRequired)
}
