package pizzaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the pizza routes to an existing gin engine.
// Identity resolution runs ahead of every route when an Authenticator is set.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	api := router.Group("")
	if handleFunctions.Authenticator != nil {
		api.Use(handleFunctions.Authenticator)
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			api.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			api.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			api.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			api.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			api.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Authenticator resolves the caller identity; see NewAuthenticator.
	Authenticator gin.HandlerFunc

	// Routes for the auth part of the API
	AuthAPI AuthAPI
	// Routes for the franchise part of the API
	FranchiseAPI FranchiseAPI
	// Routes for the order part of the API
	OrderAPI OrderAPI
	// Routes for the user part of the API
	UserAPI UserAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Register",
			http.MethodPost,
			"/api/auth",
			handleFunctions.AuthAPI.Register,
		},
		{
			"Login",
			http.MethodPut,
			"/api/auth",
			handleFunctions.AuthAPI.Login,
		},
		{
			"Logout",
			http.MethodDelete,
			"/api/auth",
			handleFunctions.AuthAPI.Logout,
		},
		{
			"GetMe",
			http.MethodGet,
			"/api/user/me",
			handleFunctions.UserAPI.GetMe,
		},
		{
			"ListUsers",
			http.MethodGet,
			"/api/user",
			handleFunctions.UserAPI.ListUsers,
		},
		{
			"UpdateUser",
			http.MethodPut,
			"/api/user/:userId",
			handleFunctions.UserAPI.UpdateUser,
		},
		{
			"DeleteUser",
			http.MethodDelete,
			"/api/user/:userId",
			handleFunctions.UserAPI.DeleteUser,
		},
		{
			"ListFranchises",
			http.MethodGet,
			"/api/franchise",
			handleFunctions.FranchiseAPI.ListFranchises,
		},
		{
			"CreateFranchise",
			http.MethodPost,
			"/api/franchise",
			handleFunctions.FranchiseAPI.CreateFranchise,
		},
		{
			"ListUserFranchises",
			http.MethodGet,
			"/api/franchise/:userId",
			handleFunctions.FranchiseAPI.ListUserFranchises,
		},
		{
			"DeleteFranchise",
			http.MethodDelete,
			"/api/franchise/:franchiseId",
			handleFunctions.FranchiseAPI.DeleteFranchise,
		},
		{
			"CreateStore",
			http.MethodPost,
			"/api/franchise/:franchiseId/store",
			handleFunctions.FranchiseAPI.CreateStore,
		},
		{
			"DeleteStore",
			http.MethodDelete,
			"/api/franchise/:franchiseId/store/:storeId",
			handleFunctions.FranchiseAPI.DeleteStore,
		},
		{
			"GetMenu",
			http.MethodGet,
			"/api/order/menu",
			handleFunctions.OrderAPI.GetMenu,
		},
		{
			"AddMenuItem",
			http.MethodPut,
			"/api/order/menu",
			handleFunctions.OrderAPI.AddMenuItem,
		},
		{
			"GetOrders",
			http.MethodGet,
			"/api/order",
			handleFunctions.OrderAPI.GetOrders,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/api/order",
			handleFunctions.OrderAPI.CreateOrder,
		},
	}
}
