package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps order idempotency keys in memory, scoped per diner.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[idempotencyKey]ports.IdempotencyRecord
	now     func() time.Time
}

type idempotencyKey struct {
	dinerID int64
	key     string
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: map[idempotencyKey]ports.IdempotencyRecord{}, now: time.Now}
}

// Reset forgets every key.
func (s *IdempotencyStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = map[idempotencyKey]ports.IdempotencyRecord{}
}

func (s *IdempotencyStore) Get(_ context.Context, dinerID int64, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[idempotencyKey{dinerID, key}]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idempotencyKey{record.DinerID, record.Key}
	if existing, ok := s.records[k]; ok {
		if existing.RequestHash != record.RequestHash {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}
	record.CreatedAt = s.now()
	s.records[k] = record
	return &record, nil
}
