package session

import (
	"sync"

	"github.com/barmonse/teg-server/internal/model"
)

// guard serializes mutations per session id. Each id gets its own mutex,
// created on first use and removed once no holder or waiter remains, so the
// table stays proportional to the number of sessions under contention.
// Operations on different sessions never block each other.
type guard struct {
	mu    sync.Mutex
	locks map[model.SessionID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newGuard() *guard {
	return &guard{
		locks: make(map[model.SessionID]*sessionLock),
	}
}

// acquire blocks until the caller holds the session's mutex
func (g *guard) acquire(id model.SessionID) *sessionLock {
	g.mu.Lock()
	lock, ok := g.locks[id]
	if !ok {
		lock = &sessionLock{}
		g.locks[id] = lock
	}
	lock.refs++
	g.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// release unlocks the session's mutex and drops the table entry when the
// caller was the last holder or waiter
func (g *guard) release(id model.SessionID, lock *sessionLock) {
	lock.mu.Unlock()

	g.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(g.locks, id)
	}
	g.mu.Unlock()
}
