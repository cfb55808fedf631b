package pizzaserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

// IdempotencyKeyHeader lets clients retry order placement safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI implements the menu and order section of the API.
type OrderAPI struct {
	orders orderports.Service
}

func NewOrderAPI(orders orderports.Service) OrderAPI {
	return OrderAPI{orders: orders}
}

// Get /api/order/menu
// Return the pizza menu
func (api *OrderAPI) GetMenu(c *gin.Context) {
	items, err := api.orders.Menu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainMenu(items))
}

// Put /api/order/menu
// Add a menu item, admin only
func (api *OrderAPI) AddMenuItem(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var payload ordermapper.MenuItem
	if !bindJSON(c, &payload) {
		return
	}
	items, err := api.orders.AddMenuItem(c.Request.Context(), user.IsAdmin(), payload.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainMenu(items))
}

// Get /api/order
// Return the caller's order history
func (api *OrderAPI) GetOrders(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	history, err := api.orders.History(c.Request.Context(), user.ID, paging.Request{Page: page})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.OrderHistory{
		DinerID: history.DinerID,
		Orders:  ordermapper.FromDomainOrders(history.Orders),
		Page:    history.Page,
	})
}

// Post /api/order
// Place an order and return its signed receipt
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var payload ordermapper.Order
	if !bindJSON(c, &payload) {
		return
	}
	receipt, err := api.orders.Place(c.Request.Context(), orderports.PlaceInput{
		DinerID:        user.ID,
		FranchiseID:    payload.FranchiseID,
		StoreID:        payload.StoreID,
		Items:          ordermapper.ToDomainItems(payload.Items),
		IdempotencyKey: strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.OrderReceipt{
		Order: ordermapper.FromDomainOrder(receipt.Order),
		JWT:   receipt.JWT,
	})
}
