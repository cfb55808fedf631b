package dashboard

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
	"github.com/Apurer/go-gin-pizza-service/internal/mockserver"
)

func render(t *testing.T, admin *Admin) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, admin.Render(&buf))
	return buf.String()
}

func TestFormatRevenue(t *testing.T) {
	assert.Equal(t, "0 ₿", FormatRevenue(0))
	assert.Equal(t, "1,234,567 ₿", FormatRevenue(1234567))
}

func TestFormatRoles(t *testing.T) {
	roles := []pizza.Role{{Role: "franchisee", ObjectID: 2}, {Role: "diner"}}
	assert.Equal(t, "Franchisee, Diner", FormatRoles(roles))
	assert.Equal(t, "", FormatRoles(nil))
}

func TestDashboardURL(t *testing.T) {
	raw := DashboardURL(1, "*Lota*", 0, "*")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, RouteDashboard, parsed.Path)
	assert.Equal(t, "1", parsed.Query().Get("fpage"))
	assert.Equal(t, "Lota", parsed.Query().Get("ffilter"))
	assert.False(t, parsed.Query().Has("ufilter"))
}

func TestRenderNotFoundForNonAdmins(t *testing.T) {
	admin := quietAdmin(&fakeAPI{})
	html := render(t, admin)
	assert.Contains(t, html, "dropped a pizza on the floor")

	require.NoError(t, admin.SetViewer(context.Background(), dinerViewer))
	html = render(t, admin)
	assert.Contains(t, html, "dropped a pizza on the floor")
	assert.NotContains(t, html, "User Management")
}

func TestRenderTables(t *testing.T) {
	api := &fakeAPI{
		franchises: func(call) (*pizza.FranchiseList, error) {
			return &pizza.FranchiseList{Franchises: []pizza.Franchise{{
				ID:     2,
				Name:   "LotaPizza",
				Admins: []pizza.Admin{{ID: 2, Name: "Franchise Owner"}, {ID: 5, Name: "Jane Smith"}},
				Stores: []pizza.Store{{ID: 4, Name: "Lehi", TotalRevenue: 12345}},
			}}}, nil
		},
		users: func(call) (*pizza.UserList, error) {
			return &pizza.UserList{Total: 12, Users: []pizza.User{{
				ID: 2, Name: "Franchise Owner", Email: "f@jwt.com",
				Roles: []pizza.Role{{Role: "franchisee", ObjectID: 2}, {Role: "diner"}},
			}}}, nil
		},
	}
	admin := quietAdmin(api)
	require.NoError(t, admin.SetViewer(context.Background(), adminViewer))

	html := render(t, admin)
	assert.Contains(t, html, "Mama Ricci&#39;s kitchen")
	assert.Contains(t, html, "LotaPizza")
	assert.Contains(t, html, "Franchise Owner, Jane Smith")
	assert.Contains(t, html, "12,345 ₿")
	assert.Contains(t, html, "Franchisee, Diner")
	assert.Contains(t, html, "Page 1 (12 total users)")
	assert.Contains(t, html, `data-user-id="2"`)
	assert.NotContains(t, html, "No users found")
}

func TestRenderEmptyAndLoadingUsers(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	slow := false
	api := &fakeAPI{users: func(call) (*pizza.UserList, error) {
		if slow {
			once.Do(func() { close(started) })
			<-release
		}
		return &pizza.UserList{}, nil
	}}
	admin := quietAdmin(api)
	require.NoError(t, admin.SetViewer(context.Background(), adminViewer))
	assert.Contains(t, render(t, admin), "No users found")

	slow = true
	done := make(chan error, 1)
	go func() { done <- admin.LoadUsers(context.Background()) }()
	<-started
	html := render(t, admin)
	assert.Contains(t, html, "Loading users...")
	assert.NotContains(t, html, "No users found")
	close(release)
	require.NoError(t, <-done)
}

func TestRenderAgainstMockAPI(t *testing.T) {
	srv := mockserver.New()
	ts := srv.Start()
	defer ts.Close()
	ctx := context.Background()

	client, err := pizza.NewClient(ts.URL)
	require.NoError(t, err)
	auth, err := client.Login(ctx, mockserver.AdminEmail, mockserver.AdminPassword)
	require.NoError(t, err)

	admin := quietAdmin(client.WithToken(auth.Token))
	require.NoError(t, admin.SetViewer(ctx, &auth.User))
	html := render(t, admin)
	assert.Contains(t, html, "Admin User")
	assert.Contains(t, html, "Page 1 (12 total users)")
	assert.Contains(t, html, "LotaPizza")
	assert.Contains(t, html, "0 ₿")

	require.NoError(t, admin.NextUsers(ctx))
	html = render(t, admin)
	assert.Contains(t, html, "Page 2 (12 total users)")
	assert.NotContains(t, html, "Admin User")
	assert.Equal(t, 1, strings.Count(html, `data-user-id="12"`))

	require.NoError(t, admin.FilterFranchises(ctx, "spot"))
	state := admin.State()
	require.Len(t, state.Franchises.Franchises, 1)
	assert.Equal(t, "topSpot", state.Franchises.Franchises[0].Name)
	assert.Equal(t, 0, state.FranchisePage)
}
