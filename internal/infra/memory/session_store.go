package memory

import (
	"context"
	"sync"
	"time"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions idle longer than ttl are dropped on access, so abandoned
// attempts do not accumulate forever. ttl <= 0 disables expiry.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]entry
}

type entry struct {
	session *domain.QuizSession
	touched time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return NewSessionStoreWithClock(ttl, time.Now)
}

// NewSessionStoreWithClock allows deterministic expiry in tests.
func NewSessionStoreWithClock(ttl time.Duration, clock func() time.Time) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]entry),
	}
}

func (s *SessionStore) Get(_ context.Context, userID string) (*domain.QuizSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[userID]
	if !ok {
		return nil, false, nil
	}
	if s.ttl > 0 && s.clock().Sub(current.touched) > s.ttl {
		delete(s.sessions, userID)
		return nil, false, nil
	}
	current.touched = s.clock()
	s.sessions[userID] = current
	return current.session, true, nil
}

func (s *SessionStore) Put(_ context.Context, session *domain.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = entry{session: session, touched: s.clock()}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
