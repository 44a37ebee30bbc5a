package library

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"rsstok/internal/domain/entity"
	"rsstok/internal/handler/http/respond"
	"rsstok/internal/observability/metrics"
)

// ListLikedHandler serves GET /library/liked.
type ListLikedHandler struct{ Svc Service }

func (h ListLikedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.ListLiked(r.Context())
	if err != nil {
		slog.Error("list liked articles failed", slog.Any("error", err))
		respond.JSON(w, http.StatusOK, map[string]any{"articles": []LikedDTO{}})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"articles": toLikedDTOs(articles)})
}

// LikeHandler serves POST /library/liked.
type LikeHandler struct{ Svc Service }

func (h LikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var article entity.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Svc.LikeArticle(r.Context(), article); err != nil {
		if isValidationError(err) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("like article failed",
			slog.String("link", article.Link),
			slog.Any("error", err))
	}

	metrics.RecordLibraryOperation("liked", "add")
	respond.JSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// UnlikeHandler serves DELETE /library/liked?link=.
type UnlikeHandler struct{ Svc Service }

func (h UnlikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		respond.Message(w, http.StatusBadRequest, "link parameter is required")
		return
	}

	if err := h.Svc.UnlikeArticle(r.Context(), link); err != nil {
		if isValidationError(err) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("unlike article failed",
			slog.String("link", link),
			slog.Any("error", err))
	}

	metrics.RecordLibraryOperation("liked", "remove")
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
