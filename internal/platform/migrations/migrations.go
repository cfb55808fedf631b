package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the users, franchises, and orders contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&franchiseRecord{},
		&storeRecord{},
		&menuItemRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&orderIdempotencyRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64          `gorm:"primaryKey;column:id"`
	Name         string         `gorm:"column:name"`
	Email        string         `gorm:"column:email;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash"`
	Roles        pq.StringArray `gorm:"column:roles;type:text[]"`
	RoleObjects  pq.Int64Array  `gorm:"column:role_objects;type:bigint[]"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the Postgres session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    int64      `gorm:"column:user_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Franchise schema mirrors the franchises Postgres adapter; admins are a jsonb array.
type franchiseRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Admins    string    `gorm:"column:admins;type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (franchiseRecord) TableName() string { return "franchises" }

type storeRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	FranchiseID  int64     `gorm:"column:franchise_id;index"`
	Name         string    `gorm:"column:name"`
	TotalRevenue float64   `gorm:"column:total_revenue;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (storeRecord) TableName() string { return "stores" }

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
	ID          int64     `gorm:"primaryKey;column:id"`
	DinerID     int64     `gorm:"column:diner_id;index"`
	FranchiseID int64     `gorm:"column:franchise_id"`
	StoreID     int64     `gorm:"column:store_id"`
	Date        time.Time `gorm:"column:date;index"`
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

type orderIdempotencyRecord struct {
	DinerID     int64     `gorm:"primaryKey;column:diner_id"`
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     int64     `gorm:"column:order_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
