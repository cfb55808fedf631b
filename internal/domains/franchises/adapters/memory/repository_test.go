package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

func seed() []*domain.Franchise {
	return []*domain.Franchise{
		{ID: 2, Name: "LotaPizza", Admins: []domain.AdminRef{{ID: 2, Name: "Franchise Owner", Email: "f@jwt.com"}},
			Stores: []domain.Store{{ID: 4, Name: "Lehi"}, {ID: 5, Name: "Springville"}, {ID: 6, Name: "American Fork"}}},
		{ID: 3, Name: "PizzaCorp", Stores: []domain.Store{{ID: 7, Name: "Spanish Fork"}}},
		{ID: 4, Name: "topSpot"},
	}
}

func TestListPagesAndFilters(t *testing.T) {
	repo := NewRepository()
	repo.Reset(seed()...)
	ctx := context.Background()

	page, err := repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*"), Page: paging.Request{Page: 0, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "LotaPizza", page.Items[0].Name)
	assert.True(t, page.More)

	page, err = repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*"), Page: paging.Request{Page: 1, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.More)

	page, err = repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*corp*"), Page: paging.Request{Limit: 3}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Items[0].ID)
}

func TestIDsContinueAfterSeed(t *testing.T) {
	repo := NewRepository()
	repo.Reset(seed()...)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Franchise{Name: "pizzaPocket"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	store, err := repo.CreateStore(ctx, created.ID, domain.Store{Name: "SLC"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), store.ID)

	_, err = repo.Create(ctx, &domain.Franchise{Name: "lotapizza"})
	assert.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestListByAdmin(t *testing.T) {
	repo := NewRepository()
	repo.Reset(seed()...)

	owned, err := repo.ListByAdmin(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "LotaPizza", owned[0].Name)

	none, err := repo.ListByAdmin(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	repo.Reset(seed()...)

	require.NoError(t, repo.DeleteStore(ctx, 2, 4))
	assert.ErrorIs(t, repo.DeleteStore(ctx, 2, 4), ports.ErrStoreNotFound)
	require.NoError(t, repo.Delete(ctx, 3))
	assert.ErrorIs(t, repo.Delete(ctx, 3), ports.ErrNotFound)

	discarding := NewRepository(WithDiscardedDeletes())
	discarding.Reset(seed()...)
	require.NoError(t, discarding.DeleteStore(ctx, 2, 4))
	require.NoError(t, discarding.Delete(ctx, 3))
	f, err := discarding.Get(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, f.Stores, 3)
	_, err = discarding.Get(ctx, 3)
	assert.NoError(t, err)
	assert.ErrorIs(t, discarding.Delete(ctx, 99), ports.ErrNotFound)
}

func TestResetRestoresSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	repo.Reset(seed()...)
	require.NoError(t, repo.Delete(ctx, 2))
	repo.Reset(seed()...)
	_, err := repo.Get(ctx, 2)
	assert.NoError(t, err)
}
