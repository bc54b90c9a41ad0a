package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/barmonse/teg-server/internal/model"
)

// NATSConfig holds NATS broker connection configuration
type NATSConfig struct {
	URL string
	// SubjectPrefix namespaces this deployment's subjects
	SubjectPrefix string
}

// DefaultNATSConfig returns a NATSConfig with sensible defaults
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "teg",
	}
}

// NATSBroker is a Broker backed by a NATS server, for running more than one
// server instance against shared storage. Events are JSON envelopes; NATS
// preserves per-subject publish order for a single publisher.
type NATSBroker struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewNATSBroker connects to a NATS server
func NewNATSBroker(cfg NATSConfig, logger *slog.Logger) (*NATSBroker, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("teg-server"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return NewNATSBrokerWithConn(conn, cfg.SubjectPrefix, logger), nil
}

// NewNATSBrokerWithConn wraps an existing NATS connection
func NewNATSBrokerWithConn(conn *nats.Conn, prefix string, logger *slog.Logger) *NATSBroker {
	return &NATSBroker{
		conn:   conn,
		prefix: prefix,
		logger: logger.With(slog.String("component", "broadcast")),
	}
}

// Ensure NATSBroker implements the interface
var _ Broker = (*NATSBroker)(nil)

func (b *NATSBroker) Publish(ctx context.Context, topic string, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to encode event",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
		return
	}
	if err := b.conn.Publish(b.subject(topic), data); err != nil {
		b.logger.Error("failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}

func (b *NATSBroker) Subscribe(topic string) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBrokerClosed
	}

	gate := newEventGate(subscriberBuffer)
	sub, err := b.conn.Subscribe(b.subject(topic), func(msg *nats.Msg) {
		var event model.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Error("failed to decode event",
				slog.String("topic", topic),
				slog.String("error", err.Error()))
			return
		}
		if !gate.deliver(event) {
			b.logger.Warn("event dropped - subscriber buffer full",
				slog.String("topic", topic),
				slog.String("event_type", string(event.Type)))
		}
	})
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return &Subscription{
		C: gate.ch,
		closeFn: func() {
			once.Do(func() {
				if err := sub.Unsubscribe(); err != nil {
					b.logger.Warn("failed to unsubscribe",
						slog.String("topic", topic),
						slog.String("error", err.Error()))
				}
				// Unsubscribe does not wait for an in-flight delivery
				// callback; the gate keeps it off the closed channel.
				gate.close()
			})
		},
	}, nil
}

// eventGate hands events from a NATS delivery callback to the subscriber
// channel. A callback may still be running when the subscription is torn
// down; the gate guarantees no send happens after the channel is closed.
type eventGate struct {
	mu     sync.Mutex
	closed bool
	ch     chan model.Event
}

func newEventGate(buffer int) *eventGate {
	return &eventGate{ch: make(chan model.Event, buffer)}
}

// deliver enqueues the event without blocking. It reports false when the
// buffer is full; events arriving after close are discarded quietly.
func (g *eventGate) deliver(event model.Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return true
	}
	select {
	case g.ch <- event:
		return true
	default:
		return false
	}
}

// close stops delivery and closes the channel. Safe to call while a
// deliver is in flight.
func (g *eventGate) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	close(g.ch)
}

func (b *NATSBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.conn.Drain(); err != nil {
		return err
	}
	return nil
}

// subject maps a topic to a NATS subject. Topics use "/" separators, which
// are not valid in subjects.
func (b *NATSBroker) subject(topic string) string {
	return b.prefix + "." + strings.ReplaceAll(topic, "/", ".")
}
