package storage

import (
	"context"

	"github.com/barmonse/teg-server/internal/model"
)

// Storage defines the interface for data persistence. It is the session
// registry: all live session aggregates are reached through it, keyed by
// session id. Implementations guard their own maps with a registry-level
// lock held only for the map operation itself, never across a session
// transition (per-session serialization is the session service's concern).
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// Registered user operations
	SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error
	GetRegisteredUser(ctx context.Context, id model.UserID) (*model.RegisteredUser, error)
	GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error)

	// Session operations. Save replaces the committed aggregate; callers
	// must never mutate an aggregate obtained from Get in place.
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
	ListSessionsByStatus(ctx context.Context, status model.SessionStatus) ([]*model.Session, error)

	// Country catalog operations
	SaveCountries(ctx context.Context, countries []model.Country) error
	GetCountries(ctx context.Context) ([]model.Country, error)
}
