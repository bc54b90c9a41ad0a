package session

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/barmonse/teg-server/internal/broadcast"
	"github.com/barmonse/teg-server/internal/dependencies/clock"
	"github.com/barmonse/teg-server/internal/dependencies/random"
	"github.com/barmonse/teg-server/internal/model"
	"github.com/barmonse/teg-server/internal/services/assign"
	"github.com/barmonse/teg-server/internal/services/catalog"
	"github.com/barmonse/teg-server/internal/storage"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 8
	// SessionIDAlphabet is the characters used in session ids (avoid confusing chars)
	SessionIDAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
)

// Controller manages the session lifecycle and member operations. Every
// mutation of a session runs serialized under that session's guard: load,
// clone, modify the copy, commit, then hand events to the broker. Events
// reach the broker in commit order because the guard is still held when
// they are enqueued; fan-out itself happens off the guard.
type Controller struct {
	storage storage.Storage
	broker  broadcast.Broker
	catalog *catalog.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	guard   *guard
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	broker broadcast.Broker,
	catalog *catalog.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		broker:  broker,
		catalog: catalog,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "session")),
		guard:   newGuard(),
	}
}

// queuedEvent pairs an event with its destination topic
type queuedEvent struct {
	topic string
	event model.Event
}

// Create makes a new session in the waiting state with the creator as its
// first member. The creator always takes the first color and turn order 1.
// A maxPlayers of zero means the table limit.
func (c *Controller) Create(ctx context.Context, creatorID model.UserID, name string, maxPlayers int) (*model.Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrInvalidSessionName
	}
	if maxPlayers == 0 {
		maxPlayers = model.MaxPlayers
	}
	if maxPlayers < model.MinPlayers || maxPlayers > model.MaxPlayers {
		return nil, model.ErrInvalidMaxPlayers
	}
	if _, err := c.storage.GetUser(ctx, creatorID); err != nil {
		return nil, err
	}

	now := c.clock.Now()

	// Generate unique session id
	var id model.SessionID
	for {
		id = model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet))
		exists, err := c.storage.SessionExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := &model.Session{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Status:     model.StatusWaiting,
		MaxPlayers: maxPlayers,
		CreatorID:  creatorID,
		Players: map[model.UserID]model.PlayerSlot{
			creatorID: {
				UserID:    creatorID,
				Color:     model.AllColors[0],
				TurnOrder: 1,
				JoinedAt:  now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.publish(ctx, queuedEvent{
		topic: broadcast.TopicSessionUpdates,
		event: c.event(model.EventGameUpdated, model.GameUpdatedPayload{Session: session.Snapshot()}),
	})

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("creator_id", string(creatorID)))

	return session, nil
}

// Get retrieves a session by id
func (c *Controller) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// ListByStatus returns all sessions in the given status, oldest first
func (c *Controller) ListByStatus(ctx context.Context, status model.SessionStatus) ([]*model.Session, error) {
	sessions, err := c.storage.ListSessionsByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// Join adds a user to a waiting session, assigning the first unused color
// and the next turn order
func (c *Controller) Join(ctx context.Context, id model.SessionID, userID model.UserID) (*model.Session, error) {
	if _, err := c.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	return c.withSession(ctx, id, func(session *model.Session) ([]queuedEvent, error) {
		if session.Status != model.StatusWaiting {
			return nil, model.ErrInvalidState
		}
		if session.HasPlayer(userID) {
			return nil, model.ErrAlreadyJoined
		}
		if session.IsFull() {
			return nil, model.ErrSessionFull
		}

		color, err := assign.NextAvailableColor(session.ColorsInUse())
		if err != nil {
			return nil, err
		}

		slot := model.PlayerSlot{
			UserID:    userID,
			Color:     color,
			TurnOrder: session.NextTurnOrder(),
			JoinedAt:  c.clock.Now(),
		}
		session.Players[userID] = slot

		return []queuedEvent{{
			topic: broadcast.SessionTopic(id),
			event: c.event(model.EventUserJoined, model.UserJoinedPayload{
				SessionID: id,
				Player: model.PlayerSnapshot{
					UserID:    slot.UserID,
					Color:     slot.Color,
					TurnOrder: slot.TurnOrder,
					JoinedAt:  slot.JoinedAt,
				},
			}),
		}}, nil
	})
}

// Leave removes a user from a waiting session. If the creator leaves, the
// whole session is cancelled and emptied; it stays retrievable but accepts
// no further mutations.
func (c *Controller) Leave(ctx context.Context, id model.SessionID, userID model.UserID) (*model.Session, error) {
	return c.withSession(ctx, id, func(session *model.Session) ([]queuedEvent, error) {
		if session.Status != model.StatusWaiting {
			return nil, model.ErrInvalidState
		}
		if !session.HasPlayer(userID) {
			return nil, model.ErrNotAMember
		}

		if userID == session.CreatorID {
			session.Status = model.StatusCancelled
			session.Players = map[model.UserID]model.PlayerSlot{}
			c.logger.Info("session cancelled by creator",
				slog.String("session_id", string(id)))
			return []queuedEvent{{
				topic: broadcast.SessionTopic(id),
				event: c.event(model.EventGameCancelled, model.GameCancelledPayload{
					SessionID: id,
					Message:   "creator left the session",
				}),
			}}, nil
		}

		delete(session.Players, userID)
		return []queuedEvent{{
			topic: broadcast.SessionTopic(id),
			event: c.event(model.EventUserLeft, model.UserLeftPayload{
				SessionID: id,
				UserID:    userID,
			}),
		}}, nil
	})
}

// SetColor changes a member's color in a waiting session. Picking a color
// held by another member fails; re-picking one's own color succeeds and
// still counts as a change.
func (c *Controller) SetColor(ctx context.Context, id model.SessionID, userID model.UserID, color model.PlayerColor) (*model.Session, error) {
	return c.withSession(ctx, id, func(session *model.Session) ([]queuedEvent, error) {
		if session.Status != model.StatusWaiting {
			return nil, model.ErrInvalidState
		}
		slot := session.Slot(userID)
		if slot == nil {
			return nil, model.ErrNotAMember
		}
		if assign.ColorTaken(session.Players, color, userID) {
			return nil, model.ErrColorTaken
		}

		slot.Color = color
		session.Players[userID] = *slot

		return []queuedEvent{{
			topic: broadcast.SessionTopic(id),
			event: c.event(model.EventPlayerColorChanged, model.PlayerColorChangedPayload{
				SessionID: id,
				UserID:    userID,
				Color:     color,
			}),
		}}, nil
	})
}

// Start transitions a waiting session to in progress. Only the creator may
// start, and only with enough players. Countries are dealt round-robin over
// a shuffled deck and each player draws a usable objective.
func (c *Controller) Start(ctx context.Context, id model.SessionID, userID model.UserID) (*model.Session, error) {
	countries, err := c.catalog.AllCountries(ctx)
	if err != nil {
		return nil, err
	}
	objectives := c.catalog.AllObjectives()

	return c.withSession(ctx, id, func(session *model.Session) ([]queuedEvent, error) {
		if session.Status != model.StatusWaiting {
			return nil, model.ErrInvalidState
		}
		if userID != session.CreatorID {
			return nil, model.ErrNotCreator
		}
		if len(session.Players) < model.MinPlayers {
			return nil, model.ErrNotEnoughPlayers
		}

		slots := session.SlotsInTurnOrder()
		dealt := assign.Countries(slots, countries, c.random)
		drawn := assign.Objectives(slots, objectives, c.random)

		for uid, slot := range session.Players {
			slot.Countries = dealt[uid]
			slot.Objective = drawn[uid]
			session.Players[uid] = slot
		}
		session.Status = model.StatusInProgress

		c.logger.Info("session started",
			slog.String("session_id", string(id)),
			slog.Int("players", len(session.Players)))

		return []queuedEvent{{
			topic: broadcast.SessionTopic(id),
			event: c.event(model.EventGameStarted, model.GameStartedPayload{Session: session.Snapshot()}),
		}}, nil
	})
}

// withSession runs a mutation serialized under the session's guard. The
// mutation works on a clone of the committed aggregate; on success the clone
// is committed and the mutation's events go to the broker, followed by a
// full-state update on the global topic. Nothing is published on failure.
func (c *Controller) withSession(
	ctx context.Context,
	id model.SessionID,
	mutate func(session *model.Session) ([]queuedEvent, error),
) (*model.Session, error) {
	lock := c.guard.acquire(id)
	defer c.guard.release(id, lock)

	committed, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session := committed.Clone()
	session.UpdatedAt = c.clock.Now()

	events, err := mutate(session)
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	events = append(events, queuedEvent{
		topic: broadcast.TopicSessionUpdates,
		event: c.event(model.EventGameUpdated, model.GameUpdatedPayload{Session: session.Snapshot()}),
	})
	c.publish(ctx, events...)

	return session, nil
}

func (c *Controller) publish(ctx context.Context, events ...queuedEvent) {
	for _, qe := range events {
		c.broker.Publish(ctx, qe.topic, qe.event)
	}
}

func (c *Controller) event(eventType model.EventType, payload any) model.Event {
	return model.Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: c.clock.Now(),
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, creatorID model.UserID, name string, maxPlayers int) (*model.Session, error)
	Get(ctx context.Context, id model.SessionID) (*model.Session, error)
	ListByStatus(ctx context.Context, status model.SessionStatus) ([]*model.Session, error)
	Join(ctx context.Context, id model.SessionID, userID model.UserID) (*model.Session, error)
	Leave(ctx context.Context, id model.SessionID, userID model.UserID) (*model.Session, error)
	SetColor(ctx context.Context, id model.SessionID, userID model.UserID, color model.PlayerColor) (*model.Session, error)
	Start(ctx context.Context, id model.SessionID, userID model.UserID) (*model.Session, error)
}

var _ ControllerInterface = (*Controller)(nil)
