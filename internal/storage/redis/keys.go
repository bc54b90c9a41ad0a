package redis

import (
	"fmt"

	"github.com/barmonse/teg-server/internal/model"
)

// Key prefix for all session-server data
const keyPrefix = "teg"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// registeredUserKey returns the Redis key for a RegisteredUser
func registeredUserKey(id model.UserID) string {
	return fmt.Sprintf("%s:registered_user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// sessionKey returns the Redis key for a Session aggregate
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// statusIndexKey returns the Redis key for the SET of session ids in a
// given status, so listing by status never scans the keyspace
func statusIndexKey(status model.SessionStatus) string {
	return fmt.Sprintf("%s:idx:status:%s", keyPrefix, status)
}

// countriesKey returns the Redis key for the country catalog
func countriesKey() string {
	return fmt.Sprintf("%s:countries", keyPrefix)
}
