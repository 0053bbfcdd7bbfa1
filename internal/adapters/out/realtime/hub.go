// Package realtime pushes order events to browsers over websockets.
//
// Every connected client is a subscriber. Events are fanned out to all of them
// without acknowledgement; nothing is stored for clients that connect later.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const (
	// DefaultSendBuffer is the number of frames queued per subscriber.
	DefaultSendBuffer = 16

	pingEvent = "ping"
)

var ErrOriginNotAllowed = errors.New("websocket origin is not allowed")

// Frame is the JSON envelope of every message sent to subscribers.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type subscriber struct {
	id     uuid.UUID
	conn   *websocket.Conn
	send   chan string
	done   chan struct{}
	failed atomic.Bool
	once   sync.Once
}

func (s *subscriber) stop() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Hub accepts websocket subscribers and broadcasts frames to them.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*subscriber

	origins    map[string]struct{}
	anyOrigin  bool
	sendBuffer int
	server     websocket.Server
	logger     *slog.Logger
}

// NewHub creates a hub accepting browser connections from allowedOrigins.
// "*" allows every origin. Requests without an Origin header are accepted.
func NewHub(allowedOrigins []string, logger *slog.Logger) *Hub {
	h := &Hub{
		subscribers: make(map[uuid.UUID]*subscriber),
		origins:     make(map[string]struct{}, len(allowedOrigins)),
		sendBuffer:  DefaultSendBuffer,
		logger:      logger.With("component", "realtime_hub"),
	}
	for _, origin := range allowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			h.anyOrigin = true
			continue
		}
		h.origins[origin] = struct{}{}
	}

	h.server = websocket.Server{
		Handshake: h.handshake,
		Handler:   h.serve,
	}
	return h
}

// ServeHTTP upgrades the request and keeps the subscriber until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.server.ServeHTTP(w, r)
}

func (h *Hub) handshake(cfg *websocket.Config, r *http.Request) error {
	origin, err := websocket.Origin(cfg, r)
	if err != nil {
		return err
	}
	if origin == nil {
		return nil
	}

	if !h.anyOrigin {
		if _, ok := h.origins[origin.Scheme+"://"+origin.Host]; !ok {
			h.logger.WarnContext(r.Context(), "Rejected websocket origin", "origin", origin.String())
			return ErrOriginNotAllowed
		}
	}
	cfg.Origin = origin
	return nil
}

func (h *Hub) serve(conn *websocket.Conn) {
	s := &subscriber{
		id:   uuid.New(),
		conn: conn,
		send: make(chan string, h.sendBuffer),
		done: make(chan struct{}),
	}
	ctx := conn.Request().Context()

	total := h.add(s)
	h.logger.InfoContext(ctx, "Client connected to WebSocket", "subscriber_id", s.id, "subscribers", total)

	go h.writeLoop(s)

	// Incoming frames carry nothing; reading only detects the disconnect.
	var discard string
	for {
		if err := websocket.Message.Receive(conn, &discard); err != nil {
			break
		}
	}

	total = h.remove(s)
	h.logger.InfoContext(ctx, "Client disconnected from WebSocket", "subscriber_id", s.id, "subscribers", total)
}

func (h *Hub) writeLoop(s *subscriber) {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.send:
			if err := websocket.Message.Send(s.conn, msg); err != nil {
				s.failed.Store(true)
				h.logger.Debug("Websocket write failed", "subscriber_id", s.id, "error", err)
				return
			}
		}
	}
}

func (h *Hub) add(s *subscriber) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribers[s.id] = s
	return len(h.subscribers)
}

func (h *Hub) remove(s *subscriber) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subscribers, s.id)
	s.stop()
	return len(h.subscribers)
}

// Broadcast sends {"event": event, "data": payload} to every current subscriber.
// A subscriber whose queue is full misses the frame and is marked for removal
// by the next heartbeat. Only an unencodable payload is an error.
func (h *Hub) Broadcast(event string, payload any) error {
	frame, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", event, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.subscribers {
		select {
		case s.send <- string(frame):
		default:
			s.failed.Store(true)
			h.logger.Warn("Subscriber queue full, frame dropped", "subscriber_id", s.id, "event", event)
		}
	}
	return nil
}

// Heartbeat disconnects subscribers that failed a previous write and pings the
// rest. It returns how many were pinged and how many were dropped.
func (h *Hub) Heartbeat(ctx context.Context) (int, int) {
	frame, _ := json.Marshal(Frame{Event: pingEvent})

	var stale []*subscriber
	pinged := 0

	h.mu.Lock()
	for id, s := range h.subscribers {
		if s.failed.Load() {
			delete(h.subscribers, id)
			stale = append(stale, s)
			continue
		}
		select {
		case s.send <- string(frame):
			pinged++
		default:
			s.failed.Store(true)
		}
	}
	h.mu.Unlock()

	for _, s := range stale {
		s.stop()
		_ = s.conn.Close()
		h.logger.InfoContext(ctx, "Dropped unresponsive subscriber", "subscriber_id", s.id)
	}
	return pinged, len(stale)
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	all := make([]*subscriber, 0, len(h.subscribers))
	for id, s := range h.subscribers {
		delete(h.subscribers, id)
		all = append(all, s)
	}
	h.mu.Unlock()

	for _, s := range all {
		s.stop()
		_ = s.conn.Close()
	}
}
