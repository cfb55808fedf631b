package pizzaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	franchisemapper "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/http/mapper"
	franchiseapp "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	franchiseports "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

// FranchiseAPI implements the franchise and store section of the API.
type FranchiseAPI struct {
	franchises franchiseports.Service
}

func NewFranchiseAPI(franchises franchiseports.Service) FranchiseAPI {
	return FranchiseAPI{franchises: franchises}
}

type CreateFranchiseRequest struct {
	Name   string                  `json:"name" binding:"required"`
	Admins []franchisemapper.Admin `json:"admins" binding:"dive"`
}

type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

// Get /api/franchise
// List franchises, filtered by name
func (api *FranchiseAPI) ListFranchises(c *gin.Context) {
	page, ok := queryInt(c, "page", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", franchiseapp.DefaultPageSize)
	if !ok {
		return
	}
	result, err := api.franchises.List(c.Request.Context(), franchiseports.ListQuery{
		Filter: wildcard.Parse(queryString(c, "name", wildcard.All)),
		Page:   paging.Request{Page: page, Limit: limit},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, franchisemapper.FranchiseList{
		Franchises: franchisemapper.FromDomainFranchises(result.Items),
		More:       result.More,
	})
}

// Get /api/franchise/:userId
// List the franchises a user administers
func (api *FranchiseAPI) ListUserFranchises(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	actor := franchiseports.Actor{}
	if user, ok := identity(c); ok {
		actor = actorOf(user)
	}
	items, err := api.franchises.ListForUser(c.Request.Context(), actor, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, franchisemapper.FromDomainFranchises(items))
}

// Post /api/franchise
// Create a franchise, admin only
func (api *FranchiseAPI) CreateFranchise(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var payload CreateFranchiseRequest
	if !bindJSON(c, &payload) {
		return
	}
	emails := make([]string, 0, len(payload.Admins))
	for _, admin := range payload.Admins {
		emails = append(emails, admin.Email)
	}
	created, err := api.franchises.Create(c.Request.Context(), actorOf(user), franchiseports.CreateInput{
		Name:        payload.Name,
		AdminEmails: emails,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, franchisemapper.FromDomainFranchise(created))
}

// Delete /api/franchise/:franchiseId
// Close a franchise and its stores, admin only
func (api *FranchiseAPI) DeleteFranchise(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "franchiseId")
	if !ok {
		return
	}
	if _, err := api.franchises.Close(c.Request.Context(), actorOf(user), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "franchise deleted"})
}

// Post /api/franchise/:franchiseId/store
// Open a store, admin or franchise admin
func (api *FranchiseAPI) CreateStore(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	franchiseID, ok := pathID(c, "franchiseId")
	if !ok {
		return
	}
	var payload CreateStoreRequest
	if !bindJSON(c, &payload) {
		return
	}
	store, err := api.franchises.CreateStore(c.Request.Context(), actorOf(user), franchiseID, payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, franchisemapper.FromDomainStore(franchiseID, store))
}

// Delete /api/franchise/:franchiseId/store/:storeId
// Close a store, admin or franchise admin
func (api *FranchiseAPI) DeleteStore(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	franchiseID, ok := pathID(c, "franchiseId")
	if !ok {
		return
	}
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}
	if err := api.franchises.CloseStore(c.Request.Context(), actorOf(user), franchiseID, storeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "store deleted"})
}

func actorOf(user *userdomain.User) franchiseports.Actor {
	return franchiseports.Actor{UserID: user.ID, Admin: user.IsAdmin()}
}
