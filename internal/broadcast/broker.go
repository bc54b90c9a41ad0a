// Package broadcast delivers session events to subscribers. A topic carries
// events in publish order; the session service publishes to a session's own
// topic and to the global topic after each committed change.
package broadcast

import (
	"context"
	"errors"

	"github.com/barmonse/teg-server/internal/model"
)

// ErrBrokerClosed is returned by Subscribe after the broker has shut down
var ErrBrokerClosed = errors.New("broker is closed")

// TopicSessionUpdates is the global topic carrying every session change
const TopicSessionUpdates = "session-updates"

// SessionTopic returns the topic scoped to a single session
func SessionTopic(id model.SessionID) string {
	return "session/" + string(id)
}

// Broker fans events out to topic subscribers. Publish is fire-and-forget
// and must never block the caller: implementations queue or drop. Events
// published to the same topic are delivered to each subscriber in publish
// order.
type Broker interface {
	Publish(ctx context.Context, topic string, event model.Event)
	Subscribe(topic string) (*Subscription, error)
	Close() error
}

// Subscription is a live feed of one topic. Events arrive on C in publish
// order; a slow consumer whose buffer fills misses events rather than
// stalling the topic. Close releases the subscription and closes C.
type Subscription struct {
	C <-chan model.Event

	closeFn func()
}

// Close detaches the subscription from its topic
func (s *Subscription) Close() {
	s.closeFn()
}
