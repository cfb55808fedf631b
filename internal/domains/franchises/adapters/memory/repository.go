package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps franchises in memory. Franchise and store ids come from
// separate counters that continue after the highest seeded id.
type Repository struct {
	mu              sync.RWMutex
	franchises      map[int64]*domain.Franchise
	nextFranchiseID int64
	nextStoreID     int64
	discardDeletes  bool
}

type Option func(*Repository)

// WithDiscardedDeletes confirms franchise and store deletes without applying them.
func WithDiscardedDeletes() Option {
	return func(r *Repository) { r.discardDeletes = true }
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{franchises: map[int64]*domain.Franchise{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Reset replaces the contents with seed.
func (r *Repository) Reset(seed ...*domain.Franchise) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.franchises = make(map[int64]*domain.Franchise, len(seed))
	r.nextFranchiseID, r.nextStoreID = 0, 0
	for _, f := range seed {
		clone := f.Clone()
		r.franchises[clone.ID] = clone
		r.nextFranchiseID = max(r.nextFranchiseID, clone.ID)
		for _, s := range clone.Stores {
			r.nextStoreID = max(r.nextStoreID, s.ID)
		}
	}
}

func (r *Repository) Create(_ context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	if franchise == nil {
		return nil, errors.New("franchise is nil")
	}
	clone := franchise.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.franchises {
		if strings.EqualFold(existing.Name, clone.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	r.nextFranchiseID++
	clone.ID = r.nextFranchiseID
	for i := range clone.Stores {
		r.nextStoreID++
		clone.Stores[i].ID = r.nextStoreID
	}
	r.franchises[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) Get(_ context.Context, id int64) (*domain.Franchise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.franchises[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return f.Clone(), nil
}

func (r *Repository) List(_ context.Context, query ports.ListQuery) (paging.Page[*domain.Franchise], error) {
	r.mu.RLock()
	matches := make([]*domain.Franchise, 0, len(r.franchises))
	for _, f := range r.franchises {
		if query.Filter.Match(f.Name) {
			matches = append(matches, f.Clone())
		}
	}
	r.mu.RUnlock()
	sortByID(matches)
	return paging.Slice(matches, query.Page), nil
}

func (r *Repository) ListByAdmin(_ context.Context, userID int64) ([]*domain.Franchise, error) {
	r.mu.RLock()
	out := make([]*domain.Franchise, 0)
	for _, f := range r.franchises {
		if f.AdministeredBy(userID) {
			out = append(out, f.Clone())
		}
	}
	r.mu.RUnlock()
	sortByID(out)
	return out, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.franchises[id]; !ok {
		return ports.ErrNotFound
	}
	if !r.discardDeletes {
		delete(r.franchises, id)
	}
	return nil
}

func (r *Repository) CreateStore(_ context.Context, franchiseID int64, store domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.franchises[franchiseID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	r.nextStoreID++
	store.ID = r.nextStoreID
	if err := f.AddStore(store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *Repository) DeleteStore(_ context.Context, franchiseID, storeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.franchises[franchiseID]
	if !ok {
		return ports.ErrNotFound
	}
	if _, ok := f.Store(storeID); !ok {
		return ports.ErrStoreNotFound
	}
	if !r.discardDeletes {
		f.RemoveStore(storeID)
	}
	return nil
}

func sortByID(items []*domain.Franchise) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
