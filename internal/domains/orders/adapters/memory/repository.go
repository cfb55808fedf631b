package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps the menu and orders in memory.
type Repository struct {
	mu         sync.RWMutex
	menu       []domain.MenuItem
	orders     map[int64]*domain.Order
	nextOrder  int64
	nextItem   int64
	nextMenuID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

// Reset replaces the menu and orders; id counters continue after the seeded ids.
func (r *Repository) Reset(menu []domain.MenuItem, orders ...*domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menu = append([]domain.MenuItem(nil), menu...)
	r.orders = make(map[int64]*domain.Order, len(orders))
	r.nextOrder, r.nextItem, r.nextMenuID = 0, 0, 0
	for _, m := range menu {
		r.nextMenuID = max(r.nextMenuID, m.ID)
	}
	for _, o := range orders {
		clone := o.Clone()
		r.orders[clone.ID] = clone
		r.nextOrder = max(r.nextOrder, clone.ID)
		for _, item := range clone.Items {
			r.nextItem = max(r.nextItem, item.ID)
		}
	}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextOrder++
		clone.ID = r.nextOrder
	}
	for i := range clone.Items {
		if clone.Items[i].ID == 0 {
			r.nextItem++
			clone.Items[i].ID = r.nextItem
		}
	}
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *Repository) ListByDiner(_ context.Context, dinerID int64, page paging.Request) (paging.Page[*domain.Order], error) {
	r.mu.RLock()
	matches := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.DinerID == dinerID {
			matches = append(matches, o.Clone())
		}
	}
	r.mu.RUnlock()
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return paging.Slice(matches, page), nil
}

func (r *Repository) Menu(_ context.Context) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.MenuItem{}, r.menu...), nil
}

func (r *Repository) AddMenuItem(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMenuID++
	item.ID = r.nextMenuID
	r.menu = append(r.menu, item)
	return &item, nil
}
