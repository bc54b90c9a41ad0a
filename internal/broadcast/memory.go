package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/barmonse/teg-server/internal/model"
)

const subscriberBuffer = 256

// MemoryBroker is an in-process Broker. Each topic gets its own hub
// goroutine; publishing enqueues onto the hub's buffered channel, so the
// per-topic goroutine preserves publish order while fan-out happens off the
// publisher's call path.
type MemoryBroker struct {
	mu     sync.RWMutex
	hubs   map[string]*topicHub
	closed bool
	logger *slog.Logger
}

// NewMemoryBroker creates a new in-process broker
func NewMemoryBroker(logger *slog.Logger) *MemoryBroker {
	return &MemoryBroker{
		hubs:   make(map[string]*topicHub),
		logger: logger.With(slog.String("component", "broadcast")),
	}
}

// Ensure MemoryBroker implements the interface
var _ Broker = (*MemoryBroker)(nil)

func (b *MemoryBroker) Publish(ctx context.Context, topic string, event model.Event) {
	b.mu.RLock()
	hub := b.hubs[topic]
	closed := b.closed
	b.mu.RUnlock()
	if closed || hub == nil {
		// No subscribers on this topic yet
		return
	}
	hub.publish(event)
}

func (b *MemoryBroker) Subscribe(topic string) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBrokerClosed
	}
	hub, ok := b.hubs[topic]
	if !ok {
		hub = newTopicHub(topic, b.logger)
		b.hubs[topic] = hub
		go hub.run()
	}
	return hub.subscribe(), nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for topic, hub := range b.hubs {
		hub.close()
		delete(b.hubs, topic)
	}
	return nil
}

// topicHub manages the subscribers for a single topic
type topicHub struct {
	topic  string
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[*subscriber]bool

	register   chan *subscriber
	unregister chan *subscriber
	events     chan model.Event
	done       chan struct{}
}

type subscriber struct {
	send chan model.Event
}

func newTopicHub(topic string, logger *slog.Logger) *topicHub {
	return &topicHub{
		topic:       topic,
		logger:      logger.With(slog.String("topic", topic)),
		subscribers: make(map[*subscriber]bool),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
		events:      make(chan model.Event, 256),
		done:        make(chan struct{}),
	}
}

// run is the hub's event loop. Running fan-out on a single goroutine keeps
// delivery in publish order for every subscriber.
func (h *topicHub) run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			count := len(h.subscribers)
			h.mu.Unlock()
			h.logger.Debug("subscriber registered", slog.Int("total_subscribers", count))

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
			}
			count := len(h.subscribers)
			h.mu.Unlock()
			h.logger.Debug("subscriber unregistered", slog.Int("total_subscribers", count))

		case event := <-h.events:
			h.mu.RLock()
			dropped := 0
			for sub := range h.subscribers {
				select {
				case sub.send <- event:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("event dropped - subscriber buffer full",
					slog.String("event_type", string(event.Type)),
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for sub := range h.subscribers {
				close(sub.send)
				delete(h.subscribers, sub)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *topicHub) publish(event model.Event) {
	select {
	case h.events <- event:
	case <-h.done:
	default:
		h.logger.Warn("event dropped - topic buffer full",
			slog.String("event_type", string(event.Type)))
	}
}

func (h *topicHub) subscribe() *Subscription {
	sub := &subscriber{send: make(chan model.Event, subscriberBuffer)}
	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.send)
	}
	var once sync.Once
	return &Subscription{
		C: sub.send,
		closeFn: func() {
			once.Do(func() {
				select {
				case h.unregister <- sub:
				case <-h.done:
				}
			})
		},
	}
}

func (h *topicHub) close() {
	close(h.done)
}
