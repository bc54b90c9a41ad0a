package response

import (
	"time"

	"github.com/barmonse/teg-server/internal/model"
	"github.com/barmonse/teg-server/internal/services/auth"
)

// User represents a user in API responses
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Email:    u.Email,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AuthResponseFromToken creates an AuthResponse from a token
func AuthResponseFromToken(t *auth.Token) AuthResponse {
	return AuthResponse{
		User:  UserFromModel(&t.User),
		Token: t.Value,
	}
}

// Player represents a session member
type Player struct {
	UserID    string    `json:"user_id"`
	Color     string    `json:"color"`
	TurnOrder int       `json:"turn_order"`
	Objective string    `json:"objective,omitempty"`
	Countries []string  `json:"countries,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.PlayerSlot
func PlayerFromModel(slot model.PlayerSlot) Player {
	var countries []string
	if slot.Countries != nil {
		countries = make([]string, len(slot.Countries))
		for i, c := range slot.Countries {
			countries[i] = string(c)
		}
	}
	return Player{
		UserID:    string(slot.UserID),
		Color:     string(slot.Color),
		TurnOrder: slot.TurnOrder,
		Objective: string(slot.Objective),
		Countries: countries,
		JoinedAt:  slot.JoinedAt,
	}
}

// Session represents a session in API responses, players ordered by turn
type Session struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	MaxPlayers int       `json:"max_players"`
	CreatorID  string    `json:"creator_id"`
	Players    []Player  `json:"players"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session) Session {
	slots := s.SlotsInTurnOrder()
	players := make([]Player, len(slots))
	for i, slot := range slots {
		players[i] = PlayerFromModel(slot)
	}
	return Session{
		ID:         string(s.ID),
		Name:       s.Name,
		Status:     string(s.Status),
		MaxPlayers: s.MaxPlayers,
		CreatorID:  string(s.CreatorID),
		Players:    players,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// SessionList is the response for session listing
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// SessionListFromModel converts a slice of sessions
func SessionListFromModel(sessions []*model.Session) SessionList {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s)
	}
	return SessionList{Sessions: out}
}
