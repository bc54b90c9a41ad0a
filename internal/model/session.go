package model

import "time"

// SessionID uniquely identifies a game session. It is opaque and assigned at
// creation.
type SessionID string

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	StatusWaiting    SessionStatus = "WAITING"     // Lobby open, players may join
	StatusInProgress SessionStatus = "IN_PROGRESS" // Game started, roster frozen
	StatusCancelled  SessionStatus = "CANCELLED"   // Creator left before start
)

// Session limits
const (
	MinPlayers = 2
	MaxPlayers = 6
)

// PlayerSlot is a user's membership record within a session
type PlayerSlot struct {
	UserID    UserID
	Color     PlayerColor
	TurnOrder int
	Objective Objective // empty until the session starts
	Countries []CountryID
	JoinedAt  time.Time
}

// Session is the authoritative aggregate for one game session. Committed
// aggregates are never mutated in place: every mutation works on a Clone and
// commits the copy.
type Session struct {
	ID         SessionID
	Name       string
	Status     SessionStatus
	MaxPlayers int
	CreatorID  UserID
	Players    map[UserID]PlayerSlot
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Slot returns the player slot for the given user, or nil if not a member
func (s *Session) Slot(userID UserID) *PlayerSlot {
	if slot, ok := s.Players[userID]; ok {
		return &slot
	}
	return nil
}

// HasPlayer reports whether the given user is a member of the session
func (s *Session) HasPlayer(userID UserID) bool {
	_, ok := s.Players[userID]
	return ok
}

// IsFull reports whether the session has reached its player capacity
func (s *Session) IsFull() bool {
	return len(s.Players) >= s.MaxPlayers
}

// ColorsInUse returns the set of colors currently held by members
func (s *Session) ColorsInUse() map[PlayerColor]bool {
	used := make(map[PlayerColor]bool, len(s.Players))
	for _, slot := range s.Players {
		used[slot.Color] = true
	}
	return used
}

// NextTurnOrder returns the turn order for the next joining player. Turn
// orders are never renumbered on leave, so this is the highest existing
// order plus one (equal to the player count plus one when there are no gaps).
func (s *Session) NextTurnOrder() int {
	highest := 0
	for _, slot := range s.Players {
		if slot.TurnOrder > highest {
			highest = slot.TurnOrder
		}
	}
	return highest + 1
}

// SlotsInTurnOrder returns the player slots sorted by turn order
func (s *Session) SlotsInTurnOrder() []PlayerSlot {
	slots := make([]PlayerSlot, 0, len(s.Players))
	for _, slot := range s.Players {
		slots = append(slots, slot)
	}
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && slots[j-1].TurnOrder > slots[j].TurnOrder; j-- {
			slots[j-1], slots[j] = slots[j], slots[j-1]
		}
	}
	return slots
}

// Clone returns a deep copy of the session. Mutating operations clone the
// committed aggregate, modify the copy, and commit it back atomically.
func (s *Session) Clone() *Session {
	players := make(map[UserID]PlayerSlot, len(s.Players))
	for id, slot := range s.Players {
		if slot.Countries != nil {
			countries := make([]CountryID, len(slot.Countries))
			copy(countries, slot.Countries)
			slot.Countries = countries
		}
		players[id] = slot
	}
	clone := *s
	clone.Players = players
	return &clone
}
