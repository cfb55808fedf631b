package mockserver

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	franchisedomain "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	orderdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
)

// Fixture credentials for the three role-bearing accounts.
const (
	AdminEmail         = "a@jwt.com"
	AdminPassword      = "Admin"
	FranchiseeEmail    = "f@jwt.com"
	FranchiseePassword = "franchise"
	DinerEmail         = "d@jwt.com"
	DinerPassword      = "a"
	// ExtraDinerPassword is shared by the nine additional diners.
	ExtraDinerPassword = "diner"
)

type fixtureUser struct {
	id       int64
	name     string
	email    string
	password string
	roles    []userdomain.RoleAssignment
}

var fixtureUsers = []fixtureUser{
	{1, "Admin User", AdminEmail, AdminPassword, []userdomain.RoleAssignment{{Role: userdomain.RoleAdmin}}},
	{2, "Franchise Owner", FranchiseeEmail, FranchiseePassword, []userdomain.RoleAssignment{{Role: userdomain.RoleFranchisee, ObjectID: 2}}},
	{3, "Kai Chen", DinerEmail, DinerPassword, diner()},
	{4, "John Doe", "john@jwt.com", ExtraDinerPassword, diner()},
	{5, "Jane Smith", "jane@jwt.com", ExtraDinerPassword, diner()},
	{6, "Mike Johnson", "mike@jwt.com", ExtraDinerPassword, diner()},
	{7, "Sarah Wilson", "sarah@jwt.com", ExtraDinerPassword, diner()},
	{8, "Tom Brown", "tom@jwt.com", ExtraDinerPassword, diner()},
	{9, "Lisa Davis", "lisa@jwt.com", ExtraDinerPassword, diner()},
	{10, "Chris Miller", "chris@jwt.com", ExtraDinerPassword, diner()},
	{11, "Amy Taylor", "amy@jwt.com", ExtraDinerPassword, diner()},
	{12, "David Garcia", "david@jwt.com", ExtraDinerPassword, diner()},
}

func diner() []userdomain.RoleAssignment {
	return []userdomain.RoleAssignment{{Role: userdomain.RoleDiner}}
}

var (
	seedUsersOnce sync.Once
	seedUsers     []*userdomain.User
)

// SeedUsers returns fresh copies of the fixture users. Hashing happens once per process.
func SeedUsers() []*userdomain.User {
	seedUsersOnce.Do(func() {
		for _, f := range fixtureUsers {
			user, err := userdomain.NewUser(f.id, f.name, f.email, f.password, bcrypt.MinCost, f.roles...)
			if err != nil {
				panic(err)
			}
			seedUsers = append(seedUsers, user)
		}
	})
	out := make([]*userdomain.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		out = append(out, u.Clone())
	}
	return out
}

// SeedFranchises returns the fixture franchises.
func SeedFranchises() []*franchisedomain.Franchise {
	return []*franchisedomain.Franchise{
		{
			ID:     2,
			Name:   "LotaPizza",
			Admins: []franchisedomain.AdminRef{{ID: 2, Name: "Franchise Owner", Email: FranchiseeEmail}},
			Stores: []franchisedomain.Store{
				{ID: 4, Name: "Lehi"},
				{ID: 5, Name: "Springville"},
				{ID: 6, Name: "American Fork"},
			},
		},
		{
			ID:     3,
			Name:   "PizzaCorp",
			Admins: []franchisedomain.AdminRef{},
			Stores: []franchisedomain.Store{{ID: 7, Name: "Spanish Fork"}},
		},
		{
			ID:     4,
			Name:   "topSpot",
			Admins: []franchisedomain.AdminRef{},
			Stores: []franchisedomain.Store{},
		},
	}
}

// SeedMenu returns the two fixture pizzas.
func SeedMenu() []orderdomain.MenuItem {
	return []orderdomain.MenuItem{
		{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"},
		{ID: 2, Title: "Pepperoni", Image: "pizza2.png", Price: 0.0042, Description: "Spicy treat"},
	}
}

// SeedOrders returns the fixture diner's order history.
func SeedOrders() []*orderdomain.Order {
	return []*orderdomain.Order{{
		ID:          1,
		DinerID:     3,
		FranchiseID: 2,
		StoreID:     4,
		Date:        time.Date(2024, 10, 7, 12, 0, 0, 0, time.UTC),
		Items: []orderdomain.OrderItem{
			{ID: 1, MenuID: 1, Description: "Veggie", Price: 0.0038},
			{ID: 2, MenuID: 2, Description: "Pepperoni", Price: 0.0042},
		},
	}}
}
