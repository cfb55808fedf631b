package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists franchises and their stores in PostgreSQL using GORM.
// Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type adminRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type franchiseRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	Name      string        `gorm:"column:name;uniqueIndex"`
	Admins    []adminRecord `gorm:"column:admins;type:jsonb;serializer:json"`
	Stores    []storeRecord `gorm:"foreignKey:FranchiseID"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (franchiseRecord) TableName() string { return "franchises" }

type storeRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	FranchiseID  int64     `gorm:"column:franchise_id;index"`
	Name         string    `gorm:"column:name"`
	TotalRevenue float64   `gorm:"column:total_revenue"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (storeRecord) TableName() string { return "stores" }

func (r *Repository) Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if franchise == nil {
		return nil, errors.New("franchise is nil")
	}
	record := toRecord(franchise)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Franchise, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record franchiseRecord
	err := r.db.WithContext(ctx).Preload("Stores", orderStores).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, query ports.ListQuery) (paging.Page[*domain.Franchise], error) {
	if err := r.ensureDB(); err != nil {
		return paging.Page[*domain.Franchise]{}, err
	}
	scope := r.db.WithContext(ctx).Model(&franchiseRecord{})
	if !query.Filter.MatchAll() {
		scope = scope.Where(`LOWER(name) LIKE ? ESCAPE '\'`, query.Filter.SQLPattern())
	}
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return paging.Page[*domain.Franchise]{}, err
	}
	var records []franchiseRecord
	err := scope.Preload("Stores", orderStores).
		Order("id").
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit).
		Find(&records).Error
	if err != nil {
		return paging.Page[*domain.Franchise]{}, err
	}
	items := toDomainList(records)
	return paging.Page[*domain.Franchise]{
		Items: items,
		Total: int(total),
		Page:  query.Page.Page,
		More:  int64(query.Page.Offset()+len(items)) < total,
	}, nil
}

func (r *Repository) ListByAdmin(ctx context.Context, userID int64) ([]*domain.Franchise, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	contains, err := json.Marshal([]map[string]int64{{"id": userID}})
	if err != nil {
		return nil, err
	}
	var records []franchiseRecord
	err = r.db.WithContext(ctx).
		Preload("Stores", orderStores).
		Where("admins @> ?::jsonb", string(contains)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// Delete removes the franchise and any stores still attached to it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("franchise_id = ?", id).Delete(&storeRecord{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&franchiseRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) CreateStore(ctx context.Context, franchiseID int64, store domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&franchiseRecord{}).Where("id = ?", franchiseID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ports.ErrNotFound
	}
	record := storeRecord{FranchiseID: franchiseID, Name: store.Name, TotalRevenue: store.TotalRevenue}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	created := record.toDomain()
	return &created, nil
}

func (r *Repository) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ? AND franchise_id = ?", storeID, franchiseID).Delete(&storeRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, franchiseID); err != nil {
			return err
		}
		return ports.ErrStoreNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres franchise repository not configured")
	}
	return nil
}

func orderStores(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func toRecord(f *domain.Franchise) franchiseRecord {
	admins := make([]adminRecord, 0, len(f.Admins))
	for _, a := range f.Admins {
		admins = append(admins, adminRecord{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	stores := make([]storeRecord, 0, len(f.Stores))
	for _, s := range f.Stores {
		stores = append(stores, storeRecord{Name: s.Name, TotalRevenue: s.TotalRevenue})
	}
	return franchiseRecord{ID: f.ID, Name: f.Name, Admins: admins, Stores: stores}
}

func (r franchiseRecord) toDomain() *domain.Franchise {
	f := &domain.Franchise{
		ID:     r.ID,
		Name:   r.Name,
		Admins: make([]domain.AdminRef, 0, len(r.Admins)),
		Stores: make([]domain.Store, 0, len(r.Stores)),
	}
	for _, a := range r.Admins {
		f.Admins = append(f.Admins, domain.AdminRef{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	for _, s := range r.Stores {
		f.Stores = append(f.Stores, s.toDomain())
	}
	return f
}

func (r storeRecord) toDomain() domain.Store {
	return domain.Store{ID: r.ID, Name: r.Name, TotalRevenue: r.TotalRevenue}
}

func toDomainList(records []franchiseRecord) []*domain.Franchise {
	out := make([]*domain.Franchise, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out
}
