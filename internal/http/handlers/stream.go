package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/logx"
)

// observerHub is the fan-out the stream handler attaches connections to.
type observerHub interface {
	Subscribe() *broadcast.Subscription
	Unsubscribe(id uuid.UUID)
}

// NewObserverHub wires a broadcast.Hub into an observerHub.
func NewObserverHub(h *broadcast.Hub) observerHub {
	return h
}

// writeTimeout bounds a single frame write so one stuck connection cannot
// pin its writer goroutine.
const writeTimeout = 5 * time.Second

// StreamHandler serves the persistent observer channel at GET /ws.
type StreamHandler struct {
	hub    observerHub
	logger logx.Logger
}

// NewStreamHandler wires the broadcast hub into a websocket endpoint.
func NewStreamHandler(hub observerHub, logger logx.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, logger: logger}
}

// Serve upgrades the connection and relays hub events until the client goes
// away or the hub shuts down. Client-to-server messages are discarded.
func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", logx.Any("err", err))
		return
	}

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub.ID)
	h.logger.Info("observer connected", logx.String("observer", sub.ID.String()))

	// CloseRead discards inbound frames and cancels the context when the
	// client disconnects.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("observer disconnected", logx.String("observer", sub.ID.String()))
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case ev, ok := <-sub.C:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.writeEvent(ctx, conn, ev); err != nil {
				h.logger.Warn("observer write failed, dropping connection",
					logx.String("observer", sub.ID.String()), logx.Any("err", err))
				conn.Close(websocket.StatusAbnormalClosure, "write failed")
				return
			}
		}
	}
}

func (h *StreamHandler) writeEvent(ctx context.Context, conn *websocket.Conn, ev broadcast.Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, ev)
}
