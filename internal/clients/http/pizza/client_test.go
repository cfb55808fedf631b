package pizza

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizza-service/internal/mockserver"
)

func newHarness(t *testing.T) (*mockserver.Server, *Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := mockserver.New()
	ts := srv.Start()
	t.Cleanup(ts.Close)
	client, err := NewClient(ts.URL)
	require.NoError(t, err)
	return srv, client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
}

func TestLoginAndListUsers(t *testing.T) {
	_, client := newHarness(t)
	ctx := context.Background()

	auth, err := client.Login(ctx, mockserver.AdminEmail, mockserver.AdminPassword)
	require.NoError(t, err)
	assert.True(t, auth.User.IsAdmin())

	admin := client.WithToken(auth.Token)
	assert.Empty(t, client.Token())

	list, err := admin.GetUsers(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 12, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Len(t, list.Users, 2)

	filtered, err := admin.GetUsers(ctx, 0, 10, "*kai*")
	require.NoError(t, err)
	require.Len(t, filtered.Users, 1)
	assert.Equal(t, "Kai Chen", filtered.Users[0].Name)

	require.NoError(t, admin.DeleteUser(ctx, 12))
	require.NoError(t, admin.DeleteUser(ctx, 12))
	list, err = admin.GetUsers(ctx, 0, 20, "*")
	require.NoError(t, err)
	assert.Equal(t, 11, list.Total)
}

func TestErrorsDecodeProblems(t *testing.T) {
	_, client := newHarness(t)
	ctx := context.Background()

	_, err := client.Login(ctx, mockserver.AdminEmail, "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unauthorized", apiErr.Title)

	_, err = client.Register(ctx, "Dup", mockserver.DinerEmail, "x")
	assert.True(t, IsConflict(err))

	diner, err := client.Login(ctx, mockserver.DinerEmail, mockserver.DinerPassword)
	require.NoError(t, err)
	_, err = client.WithToken(diner.Token).GetUsers(ctx, 0, 10, "*")
	assert.True(t, IsForbidden(err))

	admin, err := client.Login(ctx, mockserver.AdminEmail, mockserver.AdminPassword)
	require.NoError(t, err)
	err = client.WithToken(admin.Token).CloseFranchise(ctx, 99)
	assert.True(t, IsNotFound(err))
}

func TestPlainTextErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()
	client, err := NewClient(ts.URL)
	require.NoError(t, err)

	_, err = client.Menu(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Detail)
}

func TestRegisterUpdateAndLogout(t *testing.T) {
	_, client := newHarness(t)
	ctx := context.Background()

	auth, err := client.Register(ctx, "pizza diner", "e1@x.com", "diner")
	require.NoError(t, err)
	assert.Equal(t, int64(13), auth.User.ID)

	me := client.WithToken(auth.Token)
	updated, err := me.UpdateUser(ctx, auth.User.ID, UserUpdate{Name: "pizza dinerx"})
	require.NoError(t, err)
	assert.Equal(t, "pizza dinerx", updated.Name)

	user, err := me.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pizza dinerx", user.Name)

	require.NoError(t, me.Logout(ctx))
	_, err = me.Me(ctx)
	assert.True(t, IsUnauthorized(err))
}

func TestFranchiseLifecycle(t *testing.T) {
	_, client := newHarness(t)
	ctx := context.Background()

	list, err := client.GetFranchises(ctx, 0, 3, "")
	require.NoError(t, err)
	require.Len(t, list.Franchises, 3)
	assert.False(t, list.More)

	auth, err := client.Login(ctx, mockserver.AdminEmail, mockserver.AdminPassword)
	require.NoError(t, err)
	admin := client.WithToken(auth.Token)

	created, err := admin.CreateFranchise(ctx, "pizzaPocket", mockserver.FranchiseeEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	store, err := admin.CreateStore(ctx, created.ID, "SLC")
	require.NoError(t, err)
	assert.Equal(t, "SLC", store.Name)
	assert.Zero(t, store.TotalRevenue)

	owner, err := client.Login(ctx, mockserver.FranchiseeEmail, mockserver.FranchiseePassword)
	require.NoError(t, err)
	mine, err := client.WithToken(owner.Token).GetUserFranchises(ctx, owner.User.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, admin.CloseStore(ctx, created.ID, store.ID))
	require.NoError(t, admin.CloseFranchise(ctx, created.ID))
}

func TestMenuAndOrders(t *testing.T) {
	srv, client := newHarness(t)
	ctx := context.Background()

	menu, err := client.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)

	auth, err := client.Login(ctx, mockserver.DinerEmail, mockserver.DinerPassword)
	require.NoError(t, err)
	diner := client.WithToken(auth.Token)

	history, err := diner.Orders(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, history.Orders, 1)

	order := Order{FranchiseID: 2, StoreID: 4, Items: []OrderItem{{MenuID: menu[0].ID, Description: menu[0].Title, Price: menu[0].Price}}}
	first, err := diner.PlaceOrder(ctx, order, "retry-me")
	require.NoError(t, err)
	again, err := diner.PlaceOrder(ctx, order, "retry-me")
	require.NoError(t, err)
	assert.Equal(t, first.Order.ID, again.Order.ID)

	claims, err := srv.Tokens().VerifyReceipt(first.JWT)
	require.NoError(t, err)
	assert.Equal(t, first.Order.ID, claims.OrderID)

	_, err = diner.AddMenuItem(ctx, MenuItem{Title: "Margarita", Price: 0.005})
	assert.True(t, IsForbidden(err))
}
