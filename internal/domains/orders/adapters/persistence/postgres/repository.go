package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and the menu in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type menuItemRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Title       string    `gorm:"column:title"`
	Image       string    `gorm:"column:image"`
	Price       float64   `gorm:"column:price"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (menuItemRecord) TableName() string { return "menu_items" }

type orderRecord struct {
	ID          int64             `gorm:"primaryKey;column:id"`
	DinerID     int64             `gorm:"column:diner_id;index"`
	FranchiseID int64             `gorm:"column:franchise_id"`
	StoreID     int64             `gorm:"column:store_id"`
	Date        time.Time         `gorm:"column:date;index"`
	Items       []orderItemRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64   `gorm:"primaryKey;column:id"`
	OrderID     int64   `gorm:"column:order_id;index"`
	MenuID      int64   `gorm:"column:menu_id"`
	Description string  `gorm:"column:description"`
	Price       float64 `gorm:"column:price"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Save inserts a new order together with its items.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Items", orderItems).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByDiner(ctx context.Context, dinerID int64, page paging.Request) (paging.Page[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return paging.Page[*domain.Order]{}, err
	}
	scope := r.db.WithContext(ctx).Model(&orderRecord{}).Where("diner_id = ?", dinerID)
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return paging.Page[*domain.Order]{}, err
	}
	var records []orderRecord
	if err := scope.Preload("Items", orderItems).Order("id").Offset(page.Offset()).Limit(page.Limit).Find(&records).Error; err != nil {
		return paging.Page[*domain.Order]{}, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return paging.Page[*domain.Order]{
		Items: orders,
		Total: int(total),
		Page:  page.Page,
		More:  int64(page.Offset()+len(orders)) < total,
	}, nil
}

func (r *Repository) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []menuItemRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

func (r *Repository) AddMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := menuItemRecord{Title: item.Title, Image: item.Image, Price: item.Price, Description: item.Description}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	created := record.toDomain()
	return &created, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func toRecord(o *domain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemRecord{MenuID: item.MenuID, Description: item.Description, Price: item.Price})
	}
	return orderRecord{
		ID:          o.ID,
		DinerID:     o.DinerID,
		FranchiseID: o.FranchiseID,
		StoreID:     o.StoreID,
		Date:        o.Date,
		Items:       items,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          r.ID,
		DinerID:     r.DinerID,
		FranchiseID: r.FranchiseID,
		StoreID:     r.StoreID,
		Date:        r.Date.UTC(),
		Items:       make([]domain.OrderItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		o.Items = append(o.Items, domain.OrderItem{ID: item.ID, MenuID: item.MenuID, Description: item.Description, Price: item.Price})
	}
	return o
}

func (r menuItemRecord) toDomain() domain.MenuItem {
	return domain.MenuItem{ID: r.ID, Title: r.Title, Image: r.Image, Price: r.Price, Description: r.Description}
}
