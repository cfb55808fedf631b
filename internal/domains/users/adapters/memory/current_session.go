package memory

import "sync"

// CurrentSession remembers the most recently signed-in user, the way a single
// browser tab would. It backs identity resolution for requests without a token.
type CurrentSession struct {
	mu     sync.RWMutex
	userID int64
	active bool
}

func NewCurrentSession() *CurrentSession {
	return &CurrentSession{}
}

func (s *CurrentSession) Set(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID, s.active = userID, true
}

func (s *CurrentSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID, s.active = 0, false
}

func (s *CurrentSession) Current() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.active
}
