package pizza

// Role names accepted by the API.
const (
	RoleAdmin      = "admin"
	RoleDiner      = "diner"
	RoleFranchisee = "franchisee"
)

type Role struct {
	Role     string `json:"role"`
	ObjectID int64  `json:"objectId,omitempty"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the user carries the role on any object.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
}

// UserUpdate patches a user. Empty fields are left unchanged.
type UserUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Roles    []Role `json:"roles,omitempty"`
}

type Auth struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Admin struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Store struct {
	ID           int64   `json:"id"`
	FranchiseID  int64   `json:"franchiseId,omitempty"`
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type Franchise struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Admins []Admin `json:"admins"`
	Stores []Store `json:"stores"`
}

type FranchiseList struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}

type MenuItem struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	MenuID      int64   `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID          int64       `json:"id,omitempty"`
	FranchiseID int64       `json:"franchiseId"`
	StoreID     int64       `json:"storeId"`
	Date        string      `json:"date,omitempty"`
	Items       []OrderItem `json:"items"`
}

type OrderHistory struct {
	DinerID int64   `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}

type OrderReceipt struct {
	Order Order  `json:"order"`
	JWT   string `json:"jwt"`
}

type message struct {
	Message string `json:"message"`
}
