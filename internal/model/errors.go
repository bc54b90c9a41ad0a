package model

import "errors"

// Common errors used across the application. All are local, synchronous
// validation failures: callers match on them with errors.Is and surface
// them directly, never retry.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidState       = errors.New("operation not valid for current session status")
	ErrSessionFull        = errors.New("session is full")
	ErrAlreadyJoined      = errors.New("user is already in session")
	ErrNotAMember         = errors.New("user is not in session")
	ErrNotCreator         = errors.New("user is not the session creator")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrColorTaken         = errors.New("color is taken by another player")
	ErrNoColorAvailable   = errors.New("no color available")
	ErrInvalidSessionName = errors.New("session name must not be empty")
	ErrInvalidMaxPlayers  = errors.New("max players must be between 2 and 6")

	// Catalog errors
	ErrCatalogNotLoaded = errors.New("country catalog not loaded")
)
