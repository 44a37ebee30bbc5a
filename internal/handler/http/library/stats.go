package library

import (
	"log/slog"
	"net/http"

	"rsstok/internal/handler/http/respond"
	libUC "rsstok/internal/usecase/library"
)

// StatsHandler serves GET /library/stats. Storage failures degrade to a
// zeroed stats object so the stats view renders instead of erroring.
type StatsHandler struct{ Svc Service }

func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		slog.Error("compute library stats failed", slog.Any("error", err))
		respond.JSON(w, http.StatusOK, &libUC.Stats{TopSources: []libUC.SourceCount{}})
		return
	}
	if stats.TopSources == nil {
		stats.TopSources = []libUC.SourceCount{}
	}
	respond.JSON(w, http.StatusOK, stats)
}
