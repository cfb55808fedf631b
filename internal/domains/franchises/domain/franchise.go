package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName        = errors.New("name is required")
	ErrNegativeRevenue  = errors.New("revenue must not be negative")
	ErrDuplicateStoreID = errors.New("store id already used in franchise")
)

// AdminRef is a by-value copy of a franchise administrator.
type AdminRef struct {
	ID    int64
	Name  string
	Email string
}

// Store is one operational unit of a franchise.
type Store struct {
	ID           int64
	Name         string
	TotalRevenue float64
}

// Franchise groups stores under a brand and its administrators.
type Franchise struct {
	ID     int64
	Name   string
	Admins []AdminRef
	Stores []Store
}

// NewFranchise validates the name and copies the admins.
func NewFranchise(id int64, name string, admins ...AdminRef) (*Franchise, error) {
	f := &Franchise{ID: id, Admins: append([]AdminRef(nil), admins...)}
	if err := f.Rename(name); err != nil {
		return nil, err
	}
	return f, nil
}

// NewStore validates a store before it is attached to a franchise.
func NewStore(id int64, name string, revenue float64) (Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Store{}, ErrEmptyName
	}
	if revenue < 0 {
		return Store{}, ErrNegativeRevenue
	}
	return Store{ID: id, Name: name, TotalRevenue: revenue}, nil
}

func (f *Franchise) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	f.Name = name
	return nil
}

// AddStore appends a store, keeping insertion order.
func (f *Franchise) AddStore(store Store) error {
	if _, ok := f.Store(store.ID); ok && store.ID != 0 {
		return ErrDuplicateStoreID
	}
	f.Stores = append(f.Stores, store)
	return nil
}

// RemoveStore drops a store and reports whether it existed.
func (f *Franchise) RemoveStore(storeID int64) bool {
	for i, s := range f.Stores {
		if s.ID == storeID {
			f.Stores = append(f.Stores[:i:i], f.Stores[i+1:]...)
			return true
		}
	}
	return false
}

// Store looks up a store by id.
func (f *Franchise) Store(storeID int64) (Store, bool) {
	for _, s := range f.Stores {
		if s.ID == storeID {
			return s, true
		}
	}
	return Store{}, false
}

// AdministeredBy reports whether userID is one of the franchise admins.
func (f *Franchise) AdministeredBy(userID int64) bool {
	for _, a := range f.Admins {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// TotalRevenue sums the revenue of every store.
func (f *Franchise) TotalRevenue() float64 {
	var total float64
	for _, s := range f.Stores {
		total += s.TotalRevenue
	}
	return total
}

// Clone returns a deep copy.
func (f *Franchise) Clone() *Franchise {
	if f == nil {
		return nil
	}
	clone := *f
	clone.Admins = append([]AdminRef(nil), f.Admins...)
	clone.Stores = append([]Store(nil), f.Stores...)
	return &clone
}

// ClosureReport records what a franchise closure removed.
type ClosureReport struct {
	FranchiseID  int64
	ClosedStores []int64
}
