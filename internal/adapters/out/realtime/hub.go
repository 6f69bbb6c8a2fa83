// Package realtime delivers live events to connected websocket sessions.
//
// A Hub keeps the sessions of this process, grouped by user and with a
// separate admin group. Membership is decided from the authenticated
// principal at registration. Delivery is at-most-once: a session that is
// not connected when an event is published never sees it.
//
// With several replicas, PgRelay publishes through Postgres NOTIFY and every
// replica relays the frames into its own Hub.
package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	// sendQueue bounds the frames waiting for one session; a session that
	// falls this far behind is evicted.
	sendQueue = 64
)

var ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub constructor")

// Conn is the part of *websocket.Conn the hub writes to. WriteControl and
// Close may be called while a WriteJSON is in flight.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v any) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Frame is the JSON text frame sent for every live event.
type Frame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type outbound struct {
	frame Frame
	kind  string
}

// session owns one websocket. Only its writer goroutine calls WriteJSON.
type session struct {
	conn      Conn
	principal auth.Principal

	send     chan outbound
	done     chan struct{}
	stopOnce sync.Once
}

func newSession(conn Conn, principal auth.Principal) *session {
	return &session{
		conn:      conn,
		principal: principal,
		send:      make(chan outbound, sendQueue),
		done:      make(chan struct{}),
	}
}

// enqueue never blocks. It reports false when the session is stopped or its
// queue is full.
func (s *session) enqueue(msg outbound) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

func (s *session) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Hub implements ports.EventPublisher for the sessions of this process.
type Hub struct {
	mu     sync.RWMutex
	users  map[kernel.UUID]map[*session]struct{}
	admins map[*session]struct{}

	logger *slog.Logger
	now    func() time.Time
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		users:  make(map[kernel.UUID]map[*session]struct{}),
		admins: make(map[*session]struct{}),
		logger: logger.With("component", "realtime_hub"),
		now:    time.Now,
	}
}

// Register adds conn to the channel of principal.UserID and, for admins, to
// the admin group. The returned func removes it and is safe to call twice.
func (h *Hub) Register(conn Conn, principal auth.Principal) (unregister func()) {
	s := newSession(conn, principal)

	h.mu.Lock()
	group, ok := h.users[principal.UserID]
	if !ok {
		group = make(map[*session]struct{})
		h.users[principal.UserID] = group
	}
	group[s] = struct{}{}
	if principal.IsAdmin() {
		h.admins[s] = struct{}{}
	}
	h.mu.Unlock()

	metrics.LiveConnections.Inc()
	h.logger.Debug("session registered", "user_id", principal.UserID, "role", principal.Role)

	go h.writeLoop(s)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.remove(s)
			s.stop()
		})
	}
}

// writeLoop drains the session queue. A write that misses its deadline or
// fails evicts the session.
func (h *Hub) writeLoop(s *session) {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(h.now().Add(writeWait))
			if err := s.conn.WriteJSON(msg.frame); err != nil {
				h.logger.Warn("live write failed, evicting session",
					"event", msg.frame.Event, "user_id", s.principal.UserID, "error", err)
				h.evict(s)
				return
			}
			metrics.LiveEventsDeliveredTotal.WithLabelValues(msg.kind).Inc()
		}
	}
}

// Publish queues one frame for every session in channel and returns without
// waiting for the network. A session whose queue is full is evicted; that is
// not an error for the caller.
func (h *Hub) Publish(ctx context.Context, channel ports.Channel, event string, payload any) error {
	if h == nil || h.users == nil {
		return ErrHubIsNotConstructed
	}

	targets := h.members(channel)
	if len(targets) == 0 {
		return nil
	}

	msg := outbound{frame: Frame{Event: event, Payload: payload}, kind: channelKind(channel)}
	for _, s := range targets {
		if !s.enqueue(msg) {
			h.logger.WarnContext(ctx, "live session is not keeping up, evicting",
				"event", event, "user_id", s.principal.UserID)
			h.evict(s)
		}
	}
	return nil
}

// Sweep pings every session and evicts those that cannot be written to.
// It returns the number of evicted sessions.
func (h *Hub) Sweep() int {
	deadline := h.now().Add(writeWait)

	evicted := 0
	for _, s := range h.all() {
		if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			h.evict(s)
			evicted++
		}
	}
	if evicted > 0 {
		h.logger.Info("swept dead sessions", "evicted", evicted)
	}
	return evicted
}

// Connections returns the number of registered sessions.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, group := range h.users {
		n += len(group)
	}
	return n
}

func (h *Hub) members(channel ports.Channel) []*session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var group map[*session]struct{}
	if channel.IsAdmin() {
		group = h.admins
	} else {
		group = h.users[channel.UserID()]
	}

	out := make([]*session, 0, len(group))
	for s := range group {
		out = append(out, s)
	}
	return out
}

func (h *Hub) all() []*session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []*session
	for _, group := range h.users {
		for s := range group {
			out = append(out, s)
		}
	}
	return out
}

func (h *Hub) evict(s *session) {
	if h.remove(s) {
		metrics.LiveConnectionsEvictedTotal.Inc()
	}
	s.stop()
	_ = s.conn.Close()
}

// remove reports whether s was still registered.
func (h *Hub) remove(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.users[s.principal.UserID]
	if !ok {
		return false
	}
	if _, ok = group[s]; !ok {
		return false
	}

	delete(group, s)
	if len(group) == 0 {
		delete(h.users, s.principal.UserID)
	}
	delete(h.admins, s)
	metrics.LiveConnections.Dec()
	return true
}

func channelKind(c ports.Channel) string {
	if c.IsAdmin() {
		return "admin"
	}
	return "user"
}
