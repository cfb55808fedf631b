package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var ErrForbidden = errors.New("not allowed to manage the menu")

// PlaceInput carries a diner's order. IdempotencyKey is optional.
type PlaceInput struct {
	DinerID        int64
	FranchiseID    int64
	StoreID        int64
	Items          []domain.OrderItem
	IdempotencyKey string
}

// Receipt is a placed order with its signed settlement token.
type Receipt struct {
	Order *domain.Order
	JWT   string
}

// History is one page of a diner's orders.
type History struct {
	DinerID int64
	Orders  []*domain.Order
	Page    int
	More    bool
}

type Service interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, admin bool, item domain.MenuItem) ([]domain.MenuItem, error)
	History(ctx context.Context, dinerID int64, page paging.Request) (*History, error)
	Place(ctx context.Context, input PlaceInput) (*Receipt, error)
}
