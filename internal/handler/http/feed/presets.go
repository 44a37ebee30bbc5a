package feed

import (
	"net/http"

	"rsstok/internal/config"
	"rsstok/internal/handler/http/respond"
)

// PresetsHandler serves GET /feeds/presets, the curated catalog shown to
// users who have not added feeds of their own.
type PresetsHandler struct{ Presets []config.Preset }

func (h PresetsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	presets := h.Presets
	if presets == nil {
		presets = config.DefaultPresets()
	}
	respond.JSON(w, http.StatusOK, map[string]any{"presets": presets})
}
