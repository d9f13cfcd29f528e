// Package ratelimit provides the per-user message gate. It is not a token
// bucket: a message is accepted whenever the window has elapsed since the
// user's last accepted message, so steady traffic at the window period is
// never blocked.
package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is the idle age past which an entry may be evicted.
const staleAfter = 5 * time.Minute

// Limiter gates messages by last-accepted timestamp per user. The map is
// bounded: once capacity is reached, stale entries are evicted before a new
// user is admitted.
type Limiter struct {
	mu       sync.Mutex
	window   time.Duration
	capacity int
	lastSeen map[string]time.Time

	now func() time.Time // test seam
}

// New creates a Limiter that accepts at most one message per window for each
// user and tracks at most capacity users.
func New(window time.Duration, capacity int) *Limiter {
	return &Limiter{
		window:   window,
		capacity: capacity,
		lastSeen: make(map[string]time.Time, capacity),
		now:      time.Now,
	}
}

// Allow reports whether a message from userID may be processed now. The
// first message from a user always passes; later ones pass only once the
// window has elapsed since the last accepted message. Rejection does not
// refresh the timestamp.
func (l *Limiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	last, ok := l.lastSeen[userID]
	if ok && now.Sub(last) < l.window {
		return false
	}

	if !ok && len(l.lastSeen) >= l.capacity {
		l.evict(now)
	}

	l.lastSeen[userID] = now
	return true
}

// Len returns the number of tracked users.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastSeen)
}

// evict drops all entries idle longer than staleAfter. If none qualify, the
// single oldest entry is dropped so the map never exceeds capacity.
func (l *Limiter) evict(now time.Time) {
	var oldestID string
	var oldest time.Time
	dropped := false

	for id, seen := range l.lastSeen {
		if now.Sub(seen) > staleAfter {
			delete(l.lastSeen, id)
			dropped = true
			continue
		}
		if oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}

	if !dropped && oldestID != "" {
		delete(l.lastSeen, oldestID)
	}
}
