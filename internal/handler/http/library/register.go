package library

import "net/http"

// Register wires the library endpoints onto the mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /library/saved", ListSavedHandler{svc})
	mux.Handle("POST /library/saved", SaveHandler{svc})
	mux.Handle("DELETE /library/saved", UnsaveHandler{svc})

	mux.Handle("GET /library/liked", ListLikedHandler{svc})
	mux.Handle("POST /library/liked", LikeHandler{svc})
	mux.Handle("DELETE /library/liked", UnlikeHandler{svc})

	mux.Handle("GET /library/read", ListReadHandler{svc})
	mux.Handle("POST /library/read", MarkReadHandler{svc})
	mux.Handle("DELETE /library/read", ClearReadHandler{svc})

	mux.Handle("GET /library/recent-feeds", ListRecentFeedsHandler{svc})
	mux.Handle("POST /library/recent-feeds", TouchRecentFeedHandler{svc})

	mux.Handle("GET /library/stats", StatsHandler{svc})
}
