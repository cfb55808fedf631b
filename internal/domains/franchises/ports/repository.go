package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

var (
	ErrNotFound      = errors.New("franchise not found")
	ErrStoreNotFound = errors.New("store not found")
	ErrAdminNotFound = errors.New("franchise admin not found")
	ErrDuplicateName = errors.New("franchise name already exists")
)

// ListQuery selects a page of franchises whose name matches Filter.
type ListQuery struct {
	Filter wildcard.Filter
	Page   paging.Request
}

type Repository interface {
	Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error)
	Get(ctx context.Context, id int64) (*domain.Franchise, error)
	List(ctx context.Context, query ListQuery) (paging.Page[*domain.Franchise], error)
	ListByAdmin(ctx context.Context, userID int64) ([]*domain.Franchise, error)
	Delete(ctx context.Context, id int64) error
	CreateStore(ctx context.Context, franchiseID int64, store domain.Store) (*domain.Store, error)
	DeleteStore(ctx context.Context, franchiseID, storeID int64) error
}

// AdminDirectory resolves admin emails to user identities and records
// the franchisee role on the admin's account.
type AdminDirectory interface {
	ResolveAdmin(ctx context.Context, email string) (domain.AdminRef, error)
	GrantFranchisee(ctx context.Context, userID, franchiseID int64) error
}
