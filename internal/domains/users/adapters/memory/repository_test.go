package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

func mustUser(t *testing.T, id int64, name, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, name, email, "pw", bcrypt.MinCost, domain.RoleAssignment{Role: domain.RoleDiner})
	require.NoError(t, err)
	return user
}

func TestRepositoryCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()
	repo.Reset(mustUser(t, 1, "Admin User", "a@jwt.com"), mustUser(t, 12, "David Garcia", "david@jwt.com"))

	created, err := repo.Create(context.Background(), mustUser(t, 0, "pizza diner", "e1@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), created.ID)

	_, err = repo.Create(context.Background(), mustUser(t, 0, "again", "E1@x.com"))
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewRepository()
	repo.Reset(mustUser(t, 1, "Admin User", "a@jwt.com"), mustUser(t, 2, "Kai Chen", "d@jwt.com"))
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 2))
	require.NoError(t, repo.Delete(ctx, 2))
	assert.True(t, repo.Deleted(2))

	page, err := repo.List(ctx, ports.ListQuery{Page: paging.Request{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	created, err := repo.Create(ctx, mustUser(t, 0, "New", "new@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestRepositoryListFiltersAndPages(t *testing.T) {
	repo := NewRepository()
	var seed []*domain.User
	for i := int64(1); i <= 12; i++ {
		seed = append(seed, mustUser(t, i, fmt.Sprintf("User %02d", i), fmt.Sprintf("u%d@jwt.com", i)))
	}
	repo.Reset(seed...)
	ctx := context.Background()

	page, err := repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*"), Page: paging.Request{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(11), page.Items[0].ID)

	filtered, err := repo.List(ctx, ports.ListQuery{Filter: wildcard.Parse("*USER 1*"), Page: paging.Request{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 3, filtered.Total)
}

func TestRepositoryUpdate(t *testing.T) {
	repo := NewRepository()
	repo.Reset(mustUser(t, 1, "Admin User", "a@jwt.com"), mustUser(t, 2, "Kai Chen", "d@jwt.com"))
	ctx := context.Background()

	user, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, user.SetEmail("a@jwt.com"))
	_, err = repo.Update(ctx, user)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)

	_, err = repo.Update(ctx, mustUser(t, 99, "Ghost", "ghost@x.com"))
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "t1", 1))
	require.NoError(t, store.Save(ctx, "t2", 1))
	require.NoError(t, store.Save(ctx, "t3", 2))

	id, err := store.Lookup(ctx, "t3")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	require.NoError(t, store.DeleteUser(ctx, 1))
	_, err = store.Lookup(ctx, "t1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	store.Clear()
	_, err = store.Lookup(ctx, "t3")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestCurrentSession(t *testing.T) {
	current := NewCurrentSession()
	_, ok := current.Current()
	assert.False(t, ok)
	current.Set(3)
	id, ok := current.Current()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
	current.Clear()
	_, ok = current.Current()
	assert.False(t, ok)
}
