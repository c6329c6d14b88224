package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests and runs the connection until it closes.
type Handler struct {
	hub      *Hub
	router   *Router
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub *Hub, router *Router, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// shop dashboards and driver apps are served from other origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_handler"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.WarnContext(r.Context(), "WebSocket upgrade failed", "error", err)
		return
	}

	client := newClient(conn, h.hub, h.logger)
	h.hub.AddClient(client)
	h.logger.InfoContext(r.Context(), "Client connected", "connection", string(client.id))

	go client.writePump()
	client.readPump(context.WithoutCancel(r.Context()), h.router)

	h.logger.InfoContext(r.Context(), "Client disconnected", "connection", string(client.id))
}
