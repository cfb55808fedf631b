package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":          record.Name,
		"email":         record.Email,
		"password_hash": record.PasswordHash,
		"roles":         record.Roles,
		"role_objects":  record.RoleObjects,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// Delete removes a user by id; a missing row is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{}).Error
}

func (r *Repository) List(ctx context.Context, query ports.ListQuery) (paging.Page[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return paging.Page[*domain.User]{}, err
	}
	scope := r.db.WithContext(ctx).Model(&userRecord{})
	if !query.Filter.MatchAll() {
		pattern := query.Filter.SQLPattern()
		scope = scope.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return paging.Page[*domain.User]{}, err
	}
	var records []userRecord
	if err := scope.Order("id").Offset(query.Page.Offset()).Limit(query.Page.Limit).Find(&records).Error; err != nil {
		return paging.Page[*domain.User]{}, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return paging.Page[*domain.User]{
		Items: users,
		Total: int(total),
		Page:  query.Page.Page,
		More:  int64(query.Page.Offset()+len(users)) < total,
	}, nil
}

func (r *Repository) first(ctx context.Context, cond string, arg any) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrDuplicateEmail
	}
	return err
}

func toRecord(user *domain.User) userRecord {
	roles := make(pq.StringArray, 0, len(user.Roles))
	objects := make(pq.Int64Array, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r.Role))
		objects = append(objects, r.ObjectID)
	}
	return userRecord{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        roles,
		RoleObjects:  objects,
	}
}

func (r userRecord) toDomain() *domain.User {
	roles := make([]domain.RoleAssignment, 0, len(r.Roles))
	for i, role := range r.Roles {
		assignment := domain.RoleAssignment{Role: domain.Role(role)}
		if i < len(r.RoleObjects) {
			assignment.ObjectID = r.RoleObjects[i]
		}
		roles = append(roles, assignment)
	}
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Roles:        roles,
	}
}
