package api

import (
	"net/http"
)

// NewRouter setup routes and apply global middleware
func NewRouter(h *Handler, allowedOrigins string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("/info", h.Info)
	mux.HandleFunc("/download", h.Download)
	mux.HandleFunc("/ws", h.WebSocket)

	// Wrap everything with our robust CORS logic
	return CORSMiddleware(allowedOrigins, mux)
}
