package feed

import (
	"errors"
	"net/http"
	"strings"

	"rsstok/internal/handler/http/respond"
	feedUC "rsstok/internal/usecase/feed"
)

// MixedHandler serves GET /feed/mixed?urls=a,b,c.
type MixedHandler struct{ Svc Service }

func (h MixedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("urls")
	if strings.TrimSpace(raw) == "" {
		respond.Message(w, http.StatusBadRequest, "URL parameter is required")
		return
	}

	batch, err := h.Svc.FetchMixed(r.Context(), strings.Split(raw, ","))
	if err != nil {
		switch {
		case errors.Is(err, feedUC.ErrURLRequired):
			respond.Message(w, http.StatusBadRequest, "URL parameter is required")
		case errors.Is(err, feedUC.ErrNoArticles):
			respond.Message(w, http.StatusBadGateway, "No articles found from any feed")
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toMixedDTO(batch))
}
