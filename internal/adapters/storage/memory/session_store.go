// Package memory holds the mutex-guarded in-process stores used in local
// mode and in tests.
package memory

import (
	"sync"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// SessionStore keeps sessions in a map. Safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[domain.UserID]*domain.Session)}
}

func (s *SessionStore) Get(userID domain.UserID) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *SessionStore) Put(sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *SessionStore) Delete(userID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// Reset behaves like Delete; removing an absent session is not an error.
func (s *SessionStore) Reset(userID domain.UserID) error {
	return s.Delete(userID)
}

var _ domain.SessionStore = (*SessionStore)(nil)
