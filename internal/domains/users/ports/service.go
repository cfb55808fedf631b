package ports

import (
	"context"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

// Session is an authenticated identity plus the bearer token issued for it.
type Session struct {
	User  *domain.User
	Token string
}

// RegisterInput carries the fields of a new diner account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateInput patches a user; nil or empty fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Roles    []domain.RoleAssignment
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, query ListQuery) (paging.Page[*domain.User], error)
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
