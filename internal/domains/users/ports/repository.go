package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ListQuery selects a filtered page of users ordered by id.
type ListQuery struct {
	Filter wildcard.Filter
	Page   paging.Request
}

type Repository interface {
	// Create assigns the next id when user.ID is zero.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Delete is idempotent: deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query ListQuery) (paging.Page[*domain.User], error)
}
