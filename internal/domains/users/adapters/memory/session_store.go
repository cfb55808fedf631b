package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	session sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, token string, userID int64) error {
	s.session.Store(token, userID)
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (int64, error) {
	v, ok := s.session.Load(token)
	if !ok {
		return 0, ports.ErrSessionNotFound
	}
	return v.(int64), nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.session.Delete(token)
	return nil
}

func (s *SessionStore) DeleteUser(_ context.Context, userID int64) error {
	s.session.Range(func(key, value any) bool {
		if value.(int64) == userID {
			s.session.Delete(key)
		}
		return true
	})
	return nil
}

// Clear revokes every session.
func (s *SessionStore) Clear() {
	s.session.Range(func(key, _ any) bool {
		s.session.Delete(key)
		return true
	})
}
