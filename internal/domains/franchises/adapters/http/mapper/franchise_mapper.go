package mapper

import "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"

// Admin is the transport form of a franchise administrator.
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

// FranchiseList is one page of franchises and whether a later page exists.
type FranchiseList struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}

func FromDomainFranchise(f *domain.Franchise) Franchise {
	if f == nil {
		return Franchise{Admins: []Admin{}, Stores: []Store{}}
	}
	out := Franchise{
		ID:     f.ID,
		Name:   f.Name,
		Admins: make([]Admin, 0, len(f.Admins)),
		Stores: make([]Store, 0, len(f.Stores)),
	}
	for _, a := range f.Admins {
		out.Admins = append(out.Admins, Admin{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	for _, s := range f.Stores {
		out.Stores = append(out.Stores, Store{ID: s.ID, Name: s.Name, TotalRevenue: s.TotalRevenue})
	}
	return out
}

func FromDomainFranchises(items []*domain.Franchise) []Franchise {
	out := make([]Franchise, 0, len(items))
	for _, f := range items {
		out = append(out, FromDomainFranchise(f))
	}
	return out
}

// FromDomainStore renders a store created under franchiseID.
func FromDomainStore(franchiseID int64, s *domain.Store) Store {
	if s == nil {
		return Store{}
	}
	return Store{ID: s.ID, FranchiseID: franchiseID, Name: s.Name, TotalRevenue: s.TotalRevenue}
}
