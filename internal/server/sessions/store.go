// Package sessions tracks per-user ephemeral dispatch state, currently just
// the save-mode flag. State lives in process memory only and is discarded on
// restart; entries idle longer than the TTL expire.
package sessions

import (
	"sync"
	"time"
)

type session struct {
	saveMode bool
	touched  time.Time
}

// Store keeps one session per user id.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session

	now func() time.Time // test seam
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// SaveMode reports whether save mode is on for userID. Reading refreshes the
// session's idle timer.
func (s *Store) SaveMode(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(userID)
	if sess == nil {
		return false
	}
	sess.touched = s.now()
	return sess.saveMode
}

// ToggleSaveMode flips the save-mode flag for userID and returns the new value.
func (s *Store) ToggleSaveMode(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := s.get(userID)
	if sess == nil {
		sess = &session{}
		s.sessions[userID] = sess
	}
	sess.saveMode = !sess.saveMode
	sess.touched = now

	s.sweep(now)
	return sess.saveMode
}

// get returns the live session for userID, dropping it first if expired.
// Caller must hold the lock.
func (s *Store) get(userID string) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	if s.now().Sub(sess.touched) > s.ttl {
		delete(s.sessions, userID)
		return nil
	}
	return sess
}

// sweep removes expired sessions. Caller must hold the lock.
func (s *Store) sweep(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.touched) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
