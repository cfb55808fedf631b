//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-pizza-service/internal/platform/postgres"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

func setupUsersPostgresContainer(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pizza_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := platformpostgres.Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			_ = sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	})
	return db
}

func newUser(t *testing.T, name, email string, roles ...domain.RoleAssignment) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, name, email, "pw", bcrypt.MinCost, roles...)
	require.NoError(t, err)
	return user
}

func TestRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	repo := NewRepository(setupUsersPostgresContainer(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser(t, "Franchise Owner", "f@jwt.com",
		domain.RoleAssignment{Role: domain.RoleDiner},
		domain.RoleAssignment{Role: domain.RoleFranchisee, ObjectID: 2}))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	fetched, err := repo.GetByEmail(ctx, "F@jwt.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	require.Len(t, fetched.Roles, 2)
	assert.Equal(t, int64(2), fetched.Roles[1].ObjectID)
	assert.True(t, fetched.CheckPassword("pw"))

	_, err = repo.Create(ctx, newUser(t, "Dup", "f@jwt.com"))
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	repo := NewRepository(setupUsersPostgresContainer(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser(t, "pizza diner", "e1@x.com"))
	require.NoError(t, err)
	require.NoError(t, created.SetName("pizza dinerx"))

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "pizza dinerx", updated.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = repo.Update(ctx, created)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListFiltersAndPages(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	repo := NewRepository(setupUsersPostgresContainer(t))
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		_, err := repo.Create(ctx, newUser(t, fmt.Sprintf("User %02d", i), fmt.Sprintf("u%d@jwt.com", i)))
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*"), Page: paging.Request{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.More)

	filtered, err := repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*user 1*"), Page: paging.Request{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 3, filtered.Total)
}

func TestSessionStore_LifecycleAndPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	store := NewSessionStore(setupUsersPostgresContainer(t), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abcdef", 3))
	id, err := store.Lookup(ctx, "abcdef")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = store.Lookup(ctx, "abcdef")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
