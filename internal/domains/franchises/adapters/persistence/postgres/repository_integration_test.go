//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-pizza-service/internal/platform/postgres"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

func setupFranchisesPostgresContainer(t *testing.T) *gorm.DB {
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

func TestRepository_FranchiseLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	repo := NewRepository(setupFranchisesPostgresContainer(t))

	lota, err := repo.Create(ctx, &domain.Franchise{
		Name:   "LotaPizza",
		Admins: []domain.AdminRef{{ID: 2, Name: "Franchise Owner", Email: "f@jwt.com"}},
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Franchise{Name: "PizzaCorp"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Franchise{Name: "LotaPizza"})
	assert.ErrorIs(t, err, ports.ErrDuplicateName)

	lehi, err := repo.CreateStore(ctx, lota.ID, domain.Store{Name: "Lehi", TotalRevenue: 0.5})
	require.NoError(t, err)
	_, err = repo.CreateStore(ctx, 999, domain.Store{Name: "Nowhere"})
	assert.ErrorIs(t, err, ports.ErrNotFound)

	got, err := repo.Get(ctx, lota.ID)
	require.NoError(t, err)
	require.Len(t, got.Stores, 1)
	assert.Equal(t, "Lehi", got.Stores[0].Name)
	assert.Equal(t, "f@jwt.com", got.Admins[0].Email)

	owned, err := repo.ListByAdmin(ctx, 2)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, lota.ID, owned[0].ID)

	page, err := repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*corp*"), Page: paging.Request{Limit: 3}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.More)

	page, err = repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*"), Page: paging.Request{Limit: 1}})
	require.NoError(t, err)
	assert.True(t, page.More)

	require.NoError(t, repo.DeleteStore(ctx, lota.ID, lehi.ID))
	assert.ErrorIs(t, repo.DeleteStore(ctx, lota.ID, lehi.ID), ports.ErrStoreNotFound)
	require.NoError(t, repo.Delete(ctx, lota.ID))
	assert.ErrorIs(t, repo.Delete(ctx, lota.ID), ports.ErrNotFound)
}
