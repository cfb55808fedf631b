// Package directory resolves franchise admins against the users bounded context.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
)

var _ ports.AdminDirectory = (*Users)(nil)

type Users struct {
	users userports.Service
}

func NewUsers(users userports.Service) *Users {
	return &Users{users: users}
}

func (d *Users) ResolveAdmin(ctx context.Context, email string) (domain.AdminRef, error) {
	user, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userports.ErrNotFound) {
			return domain.AdminRef{}, fmt.Errorf("%w: %s", ports.ErrAdminNotFound, email)
		}
		return domain.AdminRef{}, err
	}
	return domain.AdminRef{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// GrantFranchisee appends a franchisee role scoped to the franchise. Granting twice is a no-op.
func (d *Users) GrantFranchisee(ctx context.Context, userID, franchiseID int64) error {
	user, err := d.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	grant := userdomain.RoleAssignment{Role: userdomain.RoleFranchisee, ObjectID: franchiseID}
	roles := make([]userdomain.RoleAssignment, 0, len(user.Roles)+1)
	for _, r := range user.Roles {
		if r == grant {
			return nil
		}
		roles = append(roles, r)
	}
	_, err = d.users.Update(ctx, userID, userports.UpdateInput{Roles: append(roles, grant)})
	return err
}
