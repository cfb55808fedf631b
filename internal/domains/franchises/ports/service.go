package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

// ErrForbidden is returned when the actor may not touch the franchise.
var ErrForbidden = errors.New("not allowed to manage franchise")

// Actor is the caller on whose behalf a use case runs.
type Actor struct {
	UserID int64
	Admin  bool
}

// CreateInput carries a new franchise and the emails of its admins.
type CreateInput struct {
	Name        string
	AdminEmails []string
}

// Service exposes franchise use cases to adapters.
type Service interface {
	List(ctx context.Context, query ListQuery) (paging.Page[*domain.Franchise], error)
	ListForUser(ctx context.Context, actor Actor, userID int64) ([]*domain.Franchise, error)
	Get(ctx context.Context, id int64) (*domain.Franchise, error)
	Create(ctx context.Context, actor Actor, input CreateInput) (*domain.Franchise, error)
	Close(ctx context.Context, actor Actor, id int64) (*domain.ClosureReport, error)
	CreateStore(ctx context.Context, actor Actor, franchiseID int64, name string) (*domain.Store, error)
	CloseStore(ctx context.Context, actor Actor, franchiseID, storeID int64) error
}
