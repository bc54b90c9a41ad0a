package model

import "time"

// UserID uniquely identifies a user
type UserID string

// User is a player account's public identity
type User struct {
	ID        UserID
	Username  string
	Email     string
	CreatedAt time.Time
}

// RegisteredUser holds the credential record backing a User
type RegisteredUser struct {
	UserID       UserID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
