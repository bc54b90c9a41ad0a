package model

import "time"

// EventType identifies the type of a broadcast event
type EventType string

const (
	EventGameUpdated        EventType = "GAME_UPDATED"
	EventUserJoined         EventType = "USER_JOINED"
	EventUserLeft           EventType = "USER_LEFT"
	EventGameCancelled      EventType = "GAME_CANCELLED"
	EventPlayerColorChanged EventType = "PLAYER_COLOR_CHANGED"
	EventGameStarted        EventType = "GAME_STARTED"
)

// Event is the envelope delivered to topic subscribers. Events for the
// same session are observed in commit order by every subscriber.
type Event struct {
	Type      EventType `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionSnapshot is the serializable view of a session carried in
// full-state events and API responses
type SessionSnapshot struct {
	ID         SessionID        `json:"id"`
	Name       string           `json:"name"`
	Status     SessionStatus    `json:"status"`
	MaxPlayers int              `json:"max_players"`
	CreatorID  UserID           `json:"creator_id"`
	Players    []PlayerSnapshot `json:"players"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// PlayerSnapshot is the serializable view of a player slot
type PlayerSnapshot struct {
	UserID    UserID      `json:"user_id"`
	Color     PlayerColor `json:"color"`
	TurnOrder int         `json:"turn_order"`
	Objective Objective   `json:"objective,omitempty"`
	Countries []CountryID `json:"countries,omitempty"`
	JoinedAt  time.Time   `json:"joined_at"`
}

// Snapshot converts the session to its serializable view, players ordered
// by turn order
func (s *Session) Snapshot() SessionSnapshot {
	slots := s.SlotsInTurnOrder()
	players := make([]PlayerSnapshot, len(slots))
	for i, slot := range slots {
		players[i] = PlayerSnapshot{
			UserID:    slot.UserID,
			Color:     slot.Color,
			TurnOrder: slot.TurnOrder,
			Objective: slot.Objective,
			Countries: slot.Countries,
			JoinedAt:  slot.JoinedAt,
		}
	}
	return SessionSnapshot{
		ID:         s.ID,
		Name:       s.Name,
		Status:     s.Status,
		MaxPlayers: s.MaxPlayers,
		CreatorID:  s.CreatorID,
		Players:    players,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// GameUpdatedPayload carries the full session state on the global topic
type GameUpdatedPayload struct {
	Session SessionSnapshot `json:"session"`
}

// UserJoinedPayload carries the joining player's public data
type UserJoinedPayload struct {
	SessionID SessionID      `json:"session_id"`
	Player    PlayerSnapshot `json:"player"`
}

// UserLeftPayload carries the leaving player's id
type UserLeftPayload struct {
	SessionID SessionID `json:"session_id"`
	UserID    UserID    `json:"user_id"`
}

// GameCancelledPayload carries the cancellation notice
type GameCancelledPayload struct {
	SessionID SessionID `json:"session_id"`
	Message   string    `json:"message"`
}

// PlayerColorChangedPayload carries a color reassignment
type PlayerColorChangedPayload struct {
	SessionID SessionID   `json:"session_id"`
	UserID    UserID      `json:"user_id"`
	Color     PlayerColor `json:"color"`
}

// GameStartedPayload carries the full starting state so every client can
// render countries and objectives
type GameStartedPayload struct {
	Session SessionSnapshot `json:"session"`
}
