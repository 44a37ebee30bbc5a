package feed

import (
	"net/http"

	"rsstok/internal/config"
)

// Register wires the feed endpoints onto the mux.
func Register(mux *http.ServeMux, svc Service, presets []config.Preset) {
	mux.Handle("GET /feed", GetHandler{svc})
	mux.Handle("GET /feed/mixed", MixedHandler{svc})
	mux.Handle("GET /feeds/presets", PresetsHandler{presets})
}
