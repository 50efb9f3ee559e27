// Package session holds per-user conversation state in memory.  The store
// serializes mutation per user id so concurrent messages for the same user
// cannot interleave stage transitions, while turns for different users never
// block each other.
package session

import (
	"sync"

	"menoassist-chatbot/pkg"
)

type entry struct {
	mu   sync.Mutex
	sess *pkg.Session
}

// Store maps user ids to sessions.  Sessions are created lazily and never
// evicted; the deployment assumption is a single process.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

// WithSession runs fn with the session for userID, creating it at the greeting
// stage if absent.  fn runs under the session's own lock; the store lock is
// held only for the map lookup.
func (s *Store) WithSession(userID int64, fn func(*pkg.Session) error) error {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

// Snapshot returns a copy of the session for userID, or false when the user
// has never been seen.  The answers map is copied shallowly; values are only
// read by callers.
func (s *Store) Snapshot(userID int64) (pkg.Session, bool) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return pkg.Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	copied := pkg.Session{UserID: e.sess.UserID, Stage: e.sess.Stage, Answers: pkg.Answers{}}
	for k, v := range e.sess.Answers {
		copied.Answers[k] = v
	}
	return copied, true
}

func (s *Store) entry(userID int64) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{sess: &pkg.Session{
			UserID:  userID,
			Stage:   pkg.StageGreeting,
			Answers: pkg.Answers{},
		}}
		s.entries[userID] = e
	}
	return e
}
