package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidFranchise = errors.New("franchise id must be greater than zero")
	ErrInvalidStore     = errors.New("store id must be greater than zero")
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidMenuItem  = errors.New("menu id must be greater than zero")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrEmptyTitle       = errors.New("title is required")
)

// MenuItem is a pizza offered on the menu. Prices are in bitcoin.
type MenuItem struct {
	ID          int64
	Title       string
	Image       string
	Price       float64
	Description string
}

func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if m.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// OrderItem is one purchased menu entry with the price at order time.
type OrderItem struct {
	ID          int64
	MenuID      int64
	Description string
	Price       float64
}

// Order is a diner's purchase at a store.
type Order struct {
	ID          int64
	DinerID     int64
	FranchiseID int64
	StoreID     int64
	Date        time.Time
	Items       []OrderItem
}

// NewOrder validates and constructs an order placed at date.
func NewOrder(dinerID, franchiseID, storeID int64, date time.Time, items []OrderItem) (*Order, error) {
	o := &Order{
		DinerID:     dinerID,
		FranchiseID: franchiseID,
		StoreID:     storeID,
		Date:        date.UTC(),
		Items:       append([]OrderItem(nil), items...),
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o.FranchiseID <= 0 {
		return ErrInvalidFranchise
	}
	if o.StoreID <= 0 {
		return ErrInvalidStore
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.MenuID <= 0 {
			return ErrInvalidMenuItem
		}
		if item.Price < 0 {
			return ErrNegativePrice
		}
	}
	return nil
}

// Total sums the item prices.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]OrderItem(nil), o.Items...)
	return &clone
}
