package feed

import (
	"errors"
	"net/http"

	"rsstok/internal/handler/http/respond"
	feedUC "rsstok/internal/usecase/feed"
)

// fetchFailedMsg is the client-facing body for any fetch or parse failure.
// The underlying cause is logged server-side only.
const fetchFailedMsg = "Failed to fetch or parse the RSS feed. Please check the URL and try again."

// GetHandler serves GET /feed?url=.
type GetHandler struct{ Svc Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		respond.Message(w, http.StatusBadRequest, "URL parameter is required")
		return
	}

	batch, err := h.Svc.FetchFeed(r.Context(), url)
	if err != nil {
		switch {
		case errors.Is(err, feedUC.ErrURLRequired):
			respond.Message(w, http.StatusBadRequest, "URL parameter is required")
		case errors.Is(err, feedUC.ErrFeedUnavailable):
			respond.Message(w, http.StatusInternalServerError, fetchFailedMsg)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(batch))
}
