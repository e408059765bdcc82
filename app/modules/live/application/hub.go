// Package liveservice fans scorecard events out to the clients watching a
// save slot.
package liveservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	livemetrics "github.com/Black-And-White-Club/three-under/internal/observability/metrics/live"
	"github.com/google/uuid"
)

// DefaultClientBuffer is the number of messages a client may fall behind by
// before it is dropped.
const DefaultClientBuffer = 16

// Envelope is the frame written to clients.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one subscriber of a slot.
type Client struct {
	ID      string
	SlotKey string

	send      chan []byte
	closeOnce sync.Once
}

// Messages yields encoded envelopes. The channel is closed when the client is
// unregistered or dropped.
func (c *Client) Messages() <-chan []byte { return c.send }

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub tracks clients per slot key.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[string]*Client
	buffer  int
	logger  *slog.Logger
	metrics livemetrics.LiveMetrics
}

// NewHub creates a Hub. A non-positive buffer selects DefaultClientBuffer.
func NewHub(logger *slog.Logger, metrics livemetrics.LiveMetrics, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	if metrics == nil {
		metrics = livemetrics.NewNoop()
	}
	return &Hub{
		clients: make(map[string]map[string]*Client),
		buffer:  buffer,
		logger:  logger,
		metrics: metrics,
	}
}

// Register adds a client watching slotKey.
func (h *Hub) Register(slotKey string) *Client {
	c := &Client{
		ID:      uuid.NewString(),
		SlotKey: slotKey,
		send:    make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	if h.clients[slotKey] == nil {
		h.clients[slotKey] = make(map[string]*Client)
	}
	h.clients[slotKey][c.ID] = c
	h.mu.Unlock()

	h.metrics.ClientConnected()
	h.logger.Info("Live client registered", attr.SlotKey(slotKey), attr.String("client_id", c.ID))
	return c
}

// Unregister removes c. Calling it for a client that was already dropped is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	removed := h.removeLocked(c)
	h.mu.Unlock()

	if removed {
		h.logger.Info("Live client unregistered", attr.SlotKey(c.SlotKey), attr.String("client_id", c.ID))
	}
}

func (h *Hub) removeLocked(c *Client) bool {
	slot, ok := h.clients[c.SlotKey]
	if !ok {
		return false
	}
	if _, ok := slot[c.ID]; !ok {
		return false
	}
	delete(slot, c.ID)
	if len(slot) == 0 {
		delete(h.clients, c.SlotKey)
	}
	c.close()
	h.metrics.ClientDisconnected()
	return true
}

// Broadcast queues an envelope for every client of slotKey without blocking.
// Clients whose buffer is full are dropped. It returns the number of clients
// the message was queued for.
func (h *Hub) Broadcast(ctx context.Context, slotKey, event string, data []byte) (int, error) {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return 0, fmt.Errorf("failed to encode live frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, c := range h.clients[slotKey] {
		select {
		case c.send <- frame:
			delivered++
			h.metrics.RecordDelivered(event)
		default:
			h.removeLocked(c)
			h.metrics.RecordDropped()
			h.logger.WarnContext(ctx, "Dropped slow live client",
				attr.SlotKey(slotKey),
				attr.String("client_id", c.ID),
			)
		}
	}
	return delivered, nil
}

// ClientCount reports the clients watching slotKey.
func (h *Hub) ClientCount(slotKey string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[slotKey])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, slot := range h.clients {
		for _, c := range slot {
			h.removeLocked(c)
		}
	}
}
