package mapper

import "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"

// DateLayout renders order dates with millisecond precision in UTC.
const DateLayout = "2006-01-02T15:04:05.000Z"

type MenuItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title" binding:"required"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
}

type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	MenuID      int64   `json:"menuId" binding:"required,gt=0"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type Order struct {
	ID          int64       `json:"id,omitempty"`
	FranchiseID int64       `json:"franchiseId" binding:"required,gt=0"`
	StoreID     int64       `json:"storeId" binding:"required,gt=0"`
	Date        string      `json:"date,omitempty"`
	Items       []OrderItem `json:"items" binding:"required,min=1,dive"`
}

type OrderHistory struct {
	DinerID int64   `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}

type OrderReceipt struct {
	Order Order  `json:"order"`
	JWT   string `json:"jwt"`
}

func FromDomainMenu(items []domain.MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, m := range items {
		out = append(out, MenuItem{ID: m.ID, Title: m.Title, Image: m.Image, Price: m.Price, Description: m.Description})
	}
	return out
}

func (m MenuItem) ToDomain() domain.MenuItem {
	return domain.MenuItem{Title: m.Title, Image: m.Image, Price: m.Price, Description: m.Description}
}

func FromDomainOrder(o *domain.Order) Order {
	if o == nil {
		return Order{Items: []OrderItem{}}
	}
	out := Order{
		ID:          o.ID,
		FranchiseID: o.FranchiseID,
		StoreID:     o.StoreID,
		Date:        o.Date.UTC().Format(DateLayout),
		Items:       make([]OrderItem, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItem{ID: item.ID, MenuID: item.MenuID, Description: item.Description, Price: item.Price})
	}
	return out
}

func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

// ToDomainItems converts request items; item ids are assigned by the repository.
func ToDomainItems(items []OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderItem{MenuID: item.MenuID, Description: item.Description, Price: item.Price})
	}
	return out
}
