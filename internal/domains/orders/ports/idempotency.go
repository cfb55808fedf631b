package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was used with a different payload.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord ties a client-supplied key to the order it created.
type IdempotencyRecord struct {
	Key         string
	DinerID     int64
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so retried orders are not placed twice.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, dinerID int64, key string) (*IdempotencyRecord, error)
	// Save stores the record. An existing key with the same hash returns the
	// stored record; a different hash returns ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
