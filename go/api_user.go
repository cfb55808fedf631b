package pizzaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/http/mapper"
	userapp "github.com/Apurer/go-gin-pizza-service/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-pizza-service/internal/shared/errors"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

// UserAPI implements the user section of the API.
type UserAPI struct {
	users userports.Service
}

func NewUserAPI(users userports.Service) UserAPI {
	return UserAPI{users: users}
}

// UpdateUserRequest patches a user; empty fields are ignored. Only admins may change roles.
type UpdateUserRequest struct {
	Name     string            `json:"name"`
	Email    string            `json:"email" binding:"omitempty,email"`
	Password string            `json:"password"`
	Roles    []usermapper.Role `json:"roles" binding:"omitempty,dive"`
}

type UserList struct {
	Users []usermapper.User `json:"users"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
}

// Get /api/user/me
// Return the authenticated user
func (api *UserAPI) GetMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Get /api/user
// List users, admin only
func (api *UserAPI) ListUsers(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	page, ok := queryInt(c, "page", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", userapp.DefaultPageSize)
	if !ok {
		return
	}
	result, err := api.users.List(c.Request.Context(), userports.ListQuery{
		Filter: wildcard.Parse(queryString(c, "name", wildcard.All)),
		Page:   paging.Request{Page: page, Limit: limit},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserList{
		Users: usermapper.FromDomainUsers(result.Items),
		Total: result.Total,
		Page:  result.Page,
	})
}

// Put /api/user/:userId
// Update a user, self or admin
func (api *UserAPI) UpdateUser(c *gin.Context) {
	caller, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if caller.ID != id && !caller.IsAdmin() {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("cannot update another user"))
		return
	}
	var payload UpdateUserRequest
	if !bindJSON(c, &payload) {
		return
	}
	input := userports.UpdateInput{
		Name:     &payload.Name,
		Email:    &payload.Email,
		Password: &payload.Password,
	}
	if payload.Roles != nil {
		if !caller.IsAdmin() {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("only admins may change roles"))
			return
		}
		roles, err := usermapper.ToDomainRoles(payload.Roles)
		if err != nil {
			respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
			return
		}
		input.Roles = roles
	}
	updated, err := api.users.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(updated))
}

// Delete /api/user/:userId
// Delete a user, admin only; repeated deletes succeed
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := api.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
