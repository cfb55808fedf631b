package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders and the menu.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByDiner(ctx context.Context, dinerID int64, page paging.Request) (paging.Page[*domain.Order], error)
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

// ReceiptSigner produces the settlement token for a placed order.
type ReceiptSigner interface {
	SignReceipt(order *domain.Order) (string, error)
}
