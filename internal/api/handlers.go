package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tubegrab/internal/hub"
	"tubegrab/internal/models"

	"github.com/gorilla/websocket"
)

// Extractor is the metadata side of the download collaborator.
type Extractor interface {
	Info(url string) (*models.VideoInfo, error)
}

// Launcher accepts a download job and returns immediately.
type Launcher interface {
	Launch(url, formatID string) models.Ack
}

type Handler struct {
	extractor    Extractor
	launcher     Launcher
	registry     *hub.Registry
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
}

func NewHandler(extractor Extractor, launcher Launcher, registry *hub.Registry, writeTimeout time.Duration) *Handler {
	return &Handler{
		extractor: extractor,
		launcher:  launcher,
		registry:  registry,
		upgrader: websocket.Upgrader{
			// Cross-origin policy is enforced by the CORS middleware;
			// the upgrade itself accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeTimeout: writeTimeout,
	}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Tubegrab backend is running",
	})
}

func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	info, err := h.extractor.Info(req.URL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// Download accepts the job and answers before it runs. The outcome is
// only observable on the status stream.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	ack := h.launcher.Launch(req.URL, req.FormatID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(ack)
}

// WebSocket upgrades the connection and registers it for status
// pushes. The client is not expected to send anything meaningful; the
// read loop only exists to notice the disconnect.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("🔌 WebSocket upgrade failed: %v", err)
		return
	}

	sub := &wsConn{conn: conn, timeout: h.writeTimeout}
	h.registry.Register(sub)
	log.Printf("👀 Subscriber connected (%d active)", h.registry.Len())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.registry.Unregister(sub)
	conn.Close()
	log.Printf("👋 Subscriber disconnected (%d active)", h.registry.Len())
}
