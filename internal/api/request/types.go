package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"max_players,omitempty"`
}

// SetColorRequest is the request body for picking a color
type SetColorRequest struct {
	Color string `json:"color"`
}
