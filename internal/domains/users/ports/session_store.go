package ports

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when a token was never issued or has been revoked.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore tracks issued tokens so logout can revoke them.
type SessionStore interface {
	Save(ctx context.Context, token string, userID int64) error
	Lookup(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
	DeleteUser(ctx context.Context, userID int64) error
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(user TokenSubject) (string, error)
	Verify(token string) (int64, error)
}

// TokenSubject is the identity embedded in an issued token.
type TokenSubject struct {
	ID    int64
	Name  string
	Email string
	Roles []string
}
