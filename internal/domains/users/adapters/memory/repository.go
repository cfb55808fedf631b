package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user registry. Deleted ids are remembered and never reissued.
type Repository struct {
	mu      sync.RWMutex
	users   map[int64]*domain.User
	deleted map[int64]struct{}
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, deleted: map[int64]struct{}{}}
}

// Reset drops every user and deleted marker and restarts ids after seed.
func (r *Repository) Reset(seed ...*domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[int64]*domain.User, len(seed))
	r.deleted = map[int64]struct{}{}
	r.nextID = 0
	for _, u := range seed {
		clone := u.Clone()
		r.users[clone.ID] = clone
		if clone.ID > r.nextID {
			r.nextID = clone.ID
		}
	}
}

// Deleted reports whether the id was removed since the last reset.
func (r *Repository) Deleted(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.deleted[id]
	return ok
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := user.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(clone.Email, 0) {
		return nil, ports.ErrDuplicateEmail
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if _, exists := r.users[clone.ID]; exists {
		return nil, errors.New("user id already exists")
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.users[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := user.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	if r.emailTaken(clone.Email, clone.ID) {
		return nil, ports.ErrDuplicateEmail
	}
	r.users[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	r.deleted[id] = struct{}{}
	return nil
}

func (r *Repository) List(_ context.Context, query ports.ListQuery) (paging.Page[*domain.User], error) {
	r.mu.RLock()
	matched := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		if query.Filter.Match(user.Name, user.Email) {
			matched = append(matched, user.Clone())
		}
	}
	r.mu.RUnlock()
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paging.Slice(matched, query.Page), nil
}

func (r *Repository) emailTaken(email string, exceptID int64) bool {
	for id, user := range r.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}
