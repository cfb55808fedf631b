package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
)

type call struct {
	page  int
	limit int
	name  string
}

type fakeAPI struct {
	mu             sync.Mutex
	franchiseCalls []call
	userCalls      []call
	franchises     func(call) (*pizza.FranchiseList, error)
	users          func(call) (*pizza.UserList, error)
}

func (f *fakeAPI) GetFranchises(_ context.Context, page, limit int, name string) (*pizza.FranchiseList, error) {
	c := call{page, limit, name}
	f.mu.Lock()
	f.franchiseCalls = append(f.franchiseCalls, c)
	fn := f.franchises
	f.mu.Unlock()
	if fn == nil {
		return &pizza.FranchiseList{}, nil
	}
	return fn(c)
}

func (f *fakeAPI) GetUsers(_ context.Context, page, limit int, name string) (*pizza.UserList, error) {
	c := call{page, limit, name}
	f.mu.Lock()
	f.userCalls = append(f.userCalls, c)
	fn := f.users
	f.mu.Unlock()
	if fn == nil {
		return &pizza.UserList{}, nil
	}
	return fn(c)
}

func (f *fakeAPI) lastFranchiseCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.franchiseCalls[len(f.franchiseCalls)-1]
}

func (f *fakeAPI) lastUserCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userCalls[len(f.userCalls)-1]
}

var (
	adminViewer = &pizza.User{ID: 1, Name: "Admin User", Roles: []pizza.Role{{Role: pizza.RoleAdmin}}}
	dinerViewer = &pizza.User{ID: 3, Name: "Kai Chen", Roles: []pizza.Role{{Role: pizza.RoleDiner}}}
)

func quietAdmin(api API) *Admin {
	return NewAdmin(api, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func usersOf(total int, names ...string) *pizza.UserList {
	list := &pizza.UserList{Total: total}
	for i, n := range names {
		list.Users = append(list.Users, pizza.User{ID: int64(i + 1), Name: n, Roles: []pizza.Role{{Role: pizza.RoleDiner}}})
	}
	return list
}

func TestSetViewerLoadsBothCollections(t *testing.T) {
	api := &fakeAPI{
		franchises: func(call) (*pizza.FranchiseList, error) {
			return &pizza.FranchiseList{Franchises: []pizza.Franchise{{ID: 2, Name: "LotaPizza"}}, More: true}, nil
		},
		users: func(c call) (*pizza.UserList, error) { return usersOf(12, "Admin User"), nil },
	}
	admin := quietAdmin(api)

	require.NoError(t, admin.SetViewer(context.Background(), adminViewer))

	assert.Equal(t, call{0, FranchisePageSize, "*"}, api.lastFranchiseCall())
	assert.Equal(t, call{0, UserPageSize, "*"}, api.lastUserCall())
	state := admin.State()
	assert.Len(t, state.Franchises.Franchises, 1)
	assert.True(t, state.CanNextFranchises)
	assert.False(t, state.CanPrevFranchises)
	assert.Equal(t, 12, state.Users.Total)
	assert.False(t, state.UsersLoading)

	require.NoError(t, admin.SetViewer(context.Background(), adminViewer))
	assert.Len(t, api.franchiseCalls, 1)
}

func TestFiltersWrapTermAndResetPage(t *testing.T) {
	api := &fakeAPI{
		franchises: func(call) (*pizza.FranchiseList, error) { return &pizza.FranchiseList{More: true}, nil },
		users:      func(call) (*pizza.UserList, error) { return usersOf(30), nil },
	}
	admin := quietAdmin(api)
	ctx := context.Background()
	require.NoError(t, admin.Refresh(ctx))
	require.NoError(t, admin.NextFranchises(ctx))
	require.NoError(t, admin.NextUsers(ctx))
	assert.Equal(t, 1, api.lastFranchiseCall().page)
	assert.Equal(t, 1, api.lastUserCall().page)

	require.NoError(t, admin.FilterFranchises(ctx, "lota"))
	assert.Equal(t, call{0, FranchisePageSize, "*lota*"}, api.lastFranchiseCall())

	require.NoError(t, admin.FilterUsers(ctx, "kai"))
	assert.Equal(t, call{0, UserPageSize, "*kai*"}, api.lastUserCall())

	require.NoError(t, admin.FilterUsers(ctx, ""))
	assert.Equal(t, "*", api.lastUserCall().name)
	assert.Equal(t, 0, admin.State().UserPage)
}

func TestUserPaginationBounds(t *testing.T) {
	api := &fakeAPI{users: func(call) (*pizza.UserList, error) { return usersOf(12), nil }}
	admin := quietAdmin(api)
	ctx := context.Background()
	require.NoError(t, admin.LoadUsers(ctx))

	assert.ErrorIs(t, admin.PrevUsers(ctx), ErrPageUnavailable)
	require.NoError(t, admin.NextUsers(ctx))
	assert.Equal(t, 1, admin.State().UserPage)
	assert.ErrorIs(t, admin.NextUsers(ctx), ErrPageUnavailable)
	require.NoError(t, admin.PrevUsers(ctx))
	assert.Equal(t, 0, admin.State().UserPage)
}

func TestFranchisePaginationFollowsMore(t *testing.T) {
	api := &fakeAPI{franchises: func(c call) (*pizza.FranchiseList, error) {
		return &pizza.FranchiseList{More: c.page == 0}, nil
	}}
	admin := quietAdmin(api)
	ctx := context.Background()
	require.NoError(t, admin.LoadFranchises(ctx))
	assert.ErrorIs(t, admin.PrevFranchises(ctx), ErrPageUnavailable)
	require.NoError(t, admin.NextFranchises(ctx))
	assert.ErrorIs(t, admin.NextFranchises(ctx), ErrPageUnavailable)
	require.NoError(t, admin.PrevFranchises(ctx))
}

func TestFranchiseFailureKeepsListAndRecordsError(t *testing.T) {
	fail := false
	api := &fakeAPI{franchises: func(call) (*pizza.FranchiseList, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return &pizza.FranchiseList{Franchises: []pizza.Franchise{{ID: 2, Name: "LotaPizza"}}}, nil
	}}
	var logs bytes.Buffer
	admin := NewAdmin(api, WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	ctx := context.Background()
	require.NoError(t, admin.LoadFranchises(ctx))

	fail = true
	require.Error(t, admin.FilterFranchises(ctx, "x"))
	state := admin.State()
	require.Len(t, state.Franchises.Franchises, 1)
	assert.EqualError(t, state.FranchiseErr, "connection refused")
	assert.False(t, state.FranchisesLoading)
	assert.Contains(t, logs.String(), "failed to fetch franchises")

	fail = false
	require.NoError(t, admin.LoadFranchises(ctx))
	assert.NoError(t, admin.State().FranchiseErr)
}

func TestUserFailureClearsLoading(t *testing.T) {
	api := &fakeAPI{users: func(call) (*pizza.UserList, error) { return nil, &pizza.APIError{StatusCode: 403} }}
	admin := quietAdmin(api)

	err := admin.LoadUsers(context.Background())
	assert.True(t, pizza.IsForbidden(err))
	state := admin.State()
	assert.False(t, state.UsersLoading)
	assert.Error(t, state.UserErr)
	assert.Empty(t, state.Users.Users)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{users: func(c call) (*pizza.UserList, error) {
		if c.name == "*slow*" {
			close(started)
			<-release
			return usersOf(1, "Slow Result"), nil
		}
		return usersOf(1, "Fast Result"), nil
	}}
	admin := quietAdmin(api)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- admin.FilterUsers(ctx, "slow") }()
	<-started
	assert.True(t, admin.State().UsersLoading)

	require.NoError(t, admin.FilterUsers(ctx, "fast"))
	close(release)
	assert.ErrorIs(t, <-done, ErrStale)

	state := admin.State()
	require.Len(t, state.Users.Users, 1)
	assert.Equal(t, "Fast Result", state.Users.Users[0].Name)
	assert.Equal(t, "*fast*", state.UserFilter)
	assert.False(t, state.UsersLoading)
}

func TestUserPagingRefusedWhileLoading(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	first := true
	api := &fakeAPI{users: func(call) (*pizza.UserList, error) {
		if first {
			first = false
			return usersOf(25), nil
		}
		once.Do(func() { close(started) })
		<-release
		return usersOf(25), nil
	}}
	admin := quietAdmin(api)
	ctx := context.Background()
	require.NoError(t, admin.LoadUsers(ctx))

	done := make(chan error, 1)
	go func() { done <- admin.NextUsers(ctx) }()
	<-started
	assert.ErrorIs(t, admin.NextUsers(ctx), ErrPageUnavailable)
	assert.ErrorIs(t, admin.PrevUsers(ctx), ErrPageUnavailable)
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, admin.State().UserPage)
}

func TestNavigationsCarryPayload(t *testing.T) {
	franchise := pizza.Franchise{ID: 2, Name: "LotaPizza", Stores: []pizza.Store{{ID: 4, Name: "Lehi"}}}

	nav := CloseStoreNavigation(franchise, franchise.Stores[0])
	assert.Equal(t, RouteCloseStore, nav.Route)
	require.NotNil(t, nav.Store)
	assert.Equal(t, int64(4), nav.Store.ID)
	require.NotNil(t, nav.Franchise)
	assert.Equal(t, int64(2), nav.Franchise.ID)

	nav = CloseFranchiseNavigation(franchise)
	assert.Equal(t, RouteCloseFranchise, nav.Route)
	assert.Equal(t, "LotaPizza", nav.Franchise.Name)
	assert.Nil(t, nav.Store)

	nav = CreateFranchiseNavigation()
	assert.Equal(t, RouteCreateFranchise, nav.Route)
	assert.Nil(t, nav.Franchise)
	assert.Nil(t, nav.Store)
}

func TestGoToPositionsWithoutFetching(t *testing.T) {
	api := &fakeAPI{}
	admin := quietAdmin(api)
	admin.GoTo(2, "*Lota*", -1, "")

	state := admin.State()
	assert.Equal(t, 2, state.FranchisePage)
	assert.Equal(t, "*Lota*", state.FranchiseFilter)
	assert.Equal(t, 0, state.UserPage)
	assert.Equal(t, "*", state.UserFilter)
	assert.Empty(t, api.franchiseCalls)
}
