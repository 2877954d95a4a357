package session

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// WebSocketPath is where the client script connects.
const WebSocketPath = "/ws/overlay"

//go:embed client.js
var clientScript []byte

// The client script is served to arbitrary storefront origins.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientConfig is the DOM binding handed to the client script.
type ClientConfig struct {
	Selector         string `json:"selector"`
	BodySelector     string `json:"bodySelector"`
	TriggerSelector  string `json:"triggerSelector"`
	CloseSelector    string `json:"closeSelector"`
	BackdropSelector string `json:"backdropSelector"`
	ContentSelector  string `json:"contentSelector"`
	LoadingClass     string `json:"loadingClass"`
	Endpoint         string `json:"endpoint"`
}

// Handler serves the overlay websocket, the client script and the session
// control API.
type Handler struct {
	ctx    context.Context
	hub    *Hub
	opts   Options
	script []byte
}

// NewHandler builds a Handler. Sessions end when ctx is cancelled.
func NewHandler(ctx context.Context, hub *Hub, client ClientConfig, opts Options) (*Handler, error) {
	if client.Endpoint == "" {
		client.Endpoint = WebSocketPath
	}
	cfg, err := json.Marshal(client)
	if err != nil {
		return nil, err
	}

	var script bytes.Buffer
	script.WriteString("window.OverlayConfig = ")
	script.Write(cfg)
	script.WriteString(";\n")
	script.Write(clientScript)

	return &Handler{ctx: ctx, hub: hub, opts: opts, script: script.Bytes()}, nil
}

// RegisterRoutes mounts the session endpoints on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get(WebSocketPath, h.handleWebSocket)
	r.Get("/overlay.js", h.handleScript)
	r.Get("/api/sessions", h.handleSessions)
	r.Delete("/api/cache", h.handleClearCache)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.Logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	s := newSession(conn, h.opts)
	h.hub.add(s)
	defer h.hub.remove(s)
	s.run(h.ctx)
}

func (h *Handler) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(h.script)
}

func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hub.List(r.Context()))
}

func (h *Handler) handleClearCache(w http.ResponseWriter, r *http.Request) {
	n := h.hub.ClearAll()
	h.opts.Logger.Info().Int("sessions", n).Msg("cache cleared")
	writeJSON(w, http.StatusOK, map[string]int{"sessions": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
