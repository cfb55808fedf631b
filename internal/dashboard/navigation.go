package dashboard

import "github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"

// Routes the dashboard navigates to. Each target performs the mutation and
// then returns to RouteDashboard, which refreshes both collections.
const (
	RouteDashboard       = "/admin-dashboard"
	RouteCreateFranchise = "/admin-dashboard/create-franchise"
	RouteCloseFranchise  = "/admin-dashboard/close-franchise"
	RouteCloseStore      = "/admin-dashboard/close-store"
)

// Navigation names a target route and the transient payload it needs.
type Navigation struct {
	Route     string           `json:"route"`
	Franchise *pizza.Franchise `json:"franchise,omitempty"`
	Store     *pizza.Store     `json:"store,omitempty"`
}

// CreateFranchiseNavigation targets the create-franchise form.
func CreateFranchiseNavigation() Navigation {
	return Navigation{Route: RouteCreateFranchise}
}

// CloseFranchiseNavigation targets the close-franchise confirmation for franchise.
func CloseFranchiseNavigation(franchise pizza.Franchise) Navigation {
	return Navigation{Route: RouteCloseFranchise, Franchise: &franchise}
}

// CloseStoreNavigation targets the close-store confirmation for store.
func CloseStoreNavigation(franchise pizza.Franchise, store pizza.Store) Navigation {
	return Navigation{Route: RouteCloseStore, Franchise: &franchise, Store: &store}
}
