package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RelayChannel is the Postgres NOTIFY channel shared by every replica.
const RelayChannel = "dispatch_events"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	listenerPingInterval = 90 * time.Second
)

// maxNotifyBytes stays under Postgres's 8000 byte NOTIFY payload limit.
const maxNotifyBytes = 7900

// shortestCut is the length below which a string field is no longer shortened.
const shortestCut = 32

var ErrRelayPayloadTooLarge = errors.New("live event does not fit in a NOTIFY payload")

// relayEnvelope is the NOTIFY payload. Free text such as an order description
// is shortened when the envelope would exceed maxNotifyBytes.
type relayEnvelope struct {
	Admin   bool            `json:"admin,omitempty"`
	UserID  string          `json:"userId,omitempty"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// PgRelay implements ports.EventPublisher across replicas: Publish issues
// pg_notify, and Listen feeds every notification into the local Hub,
// including the ones this replica sent.
type PgRelay struct {
	db     *gorm.DB
	dsn    string
	hub    *Hub
	logger *slog.Logger
}

func NewPgRelay(db *gorm.DB, dsn string, hub *Hub, logger *slog.Logger) *PgRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &PgRelay{
		db:     db,
		dsn:    dsn,
		hub:    hub,
		logger: logger.With("component", "realtime_relay"),
	}
}

func (r *PgRelay) Publish(ctx context.Context, channel ports.Channel, event string, payload any) error {
	body, err := encodeEnvelope(channel, event, payload)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", RelayChannel, string(body)).Error; err != nil {
		return fmt.Errorf("pg_notify %s: %w", event, err)
	}
	return nil
}

// Listen blocks until ctx is done, relaying notifications into the hub.
func (r *PgRelay) Listen(ctx context.Context) error {
	listener := pq.NewListener(r.dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				r.logger.Warn("relay listener event", "event", ev, "error", err)
			}
		})
	defer func() { _ = listener.Close() }()

	if err := listener.Listen(RelayChannel); err != nil {
		return fmt.Errorf("listen %s: %w", RelayChannel, err)
	}
	r.logger.InfoContext(ctx, "relay listening", "channel", RelayChannel)

	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect; anything sent meanwhile is lost
			if n == nil {
				continue
			}
			if err := r.relay(ctx, n.Extra); err != nil {
				r.logger.ErrorContext(ctx, "failed to relay live event", "error", err)
			}
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				r.logger.WarnContext(ctx, "relay listener ping failed", "error", err)
			}
		}
	}
}

func (r *PgRelay) relay(ctx context.Context, raw string) error {
	channel, env, err := decodeEnvelope(raw)
	if err != nil {
		return err
	}
	return r.hub.Publish(ctx, channel, env.Event, env.Payload)
}

func encodeEnvelope(channel ports.Channel, event string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	env := relayEnvelope{Admin: channel.IsAdmin(), Event: event, Payload: body}
	if !channel.IsAdmin() {
		env.UserID = channel.UserID().String()
	}

	raw, err := json.Marshal(env)
	if err != nil || len(raw) <= maxNotifyBytes {
		return raw, err
	}

	var fields map[string]any
	if err = json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%s: %w", event, ErrRelayPayloadTooLarge)
	}
	for len(raw) > maxNotifyBytes {
		if !halveLongestString(fields) {
			return nil, fmt.Errorf("%s: %w", event, ErrRelayPayloadTooLarge)
		}
		if env.Payload, err = json.Marshal(fields); err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", event, err)
		}
		if raw, err = json.Marshal(env); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// halveLongestString cuts the longest top-level string of fields to half its
// runes, marking the cut with an ellipsis. It reports false when no string is
// long enough to cut.
func halveLongestString(fields map[string]any) bool {
	key, longest := "", []rune(nil)
	for k, v := range fields {
		if s, ok := v.(string); ok {
			if r := []rune(s); len(r) > len(longest) {
				key, longest = k, r
			}
		}
	}
	if len(longest) <= shortestCut {
		return false
	}
	fields[key] = string(longest[:len(longest)/2]) + "…"
	return true
}

func decodeEnvelope(raw string) (ports.Channel, relayEnvelope, error) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return ports.Channel{}, env, fmt.Errorf("decode relay envelope: %w", err)
	}
	if env.Admin {
		return ports.AdminChannel(), env, nil
	}
	userID, err := kernel.UUIDFromString(env.UserID)
	if err != nil {
		return ports.Channel{}, env, fmt.Errorf("relay envelope user: %w", err)
	}
	return ports.UserChannel(userID), env, nil
}
