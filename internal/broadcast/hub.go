package broadcast

import (
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"courier-tracking/internal/logx"
)

// Subscription is one observer's handle on the hub. Events arrive on C in
// publish order; the channel is closed on Unsubscribe or hub shutdown.
type Subscription struct {
	ID uuid.UUID
	C  <-chan Event
}

// Hub maintains the set of connected observers and fans events out to all of
// them. It is owned by the service container, never package-global, so tests
// and shutdown own its full lifecycle.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]chan Event
	buffer int
	closed bool

	logger  logx.Logger
	dropped prometheus.Counter
}

// NewHub creates a hub whose observers each get a buffer of the given size.
// A slow observer whose buffer is full has deliveries dropped rather than
// blocking the publisher.
func NewHub(logger logx.Logger, buffer int, dropped prometheus.Counter) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:    make(map[uuid.UUID]chan Event),
		buffer:  buffer,
		logger:  logger,
		dropped: dropped,
	}
}

// Subscribe registers a new observer. The observer receives only forward
// pushes; no backfill of current state is sent. After Close the returned
// subscription's channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	id := uuid.New()
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return &Subscription{ID: id, C: ch}
	}
	h.subs[id] = ch
	return &Subscription{ID: id, C: ch}
}

// Unsubscribe removes an observer and closes its channel. Safe to call
// concurrently with an in-flight Publish; delivery to a since-removed
// observer is dropped.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish delivers the payload to every currently subscribed observer, tagged
// with the event name. It never blocks on a slow observer: a full buffer
// means the event is dropped for that observer only.
func (h *Hub) Publish(event string, payload any) {
	ev := Event{Name: event, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.dropped.Inc()
			h.logger.Warn("observer buffer full, event dropped",
				logx.String("event", event),
				logx.String("observer", id.String()),
			)
		}
	}
}

// Len returns the number of currently subscribed observers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close stops accepting new observers and closes every observer channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
