// Package dashboard holds the admin dashboard view-model: two paginated,
// filterable collections (franchises and users) fetched from the pizza API.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/wildcard"
)

const (
	FranchisePageSize = 3
	UserPageSize      = 10
)

var (
	// ErrStale is returned by a load whose response arrived after a newer load was issued.
	ErrStale = errors.New("dashboard: response superseded by a newer request")
	// ErrPageUnavailable is returned when pagination is not allowed in the current state.
	ErrPageUnavailable = errors.New("dashboard: page unavailable")
)

// API is the slice of the pizza client the dashboard reads from.
type API interface {
	GetFranchises(ctx context.Context, page, limit int, name string) (*pizza.FranchiseList, error)
	GetUsers(ctx context.Context, page, limit int, name string) (*pizza.UserList, error)
}

// Admin is safe for concurrent use. Every load carries a per-collection
// sequence number and only the latest one may replace state.
type Admin struct {
	api    API
	logger *slog.Logger

	mu     sync.Mutex
	viewer *pizza.User

	franchisePage     int
	franchiseFilter   string
	franchises        pizza.FranchiseList
	franchisesLoading bool
	franchiseErr      error
	franchiseSeq      uint64

	userPage     int
	userFilter   string
	users        pizza.UserList
	usersLoading bool
	userErr      error
	userSeq      uint64
}

type Option func(*Admin)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Admin) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAdmin(api API, opts ...Option) *Admin {
	a := &Admin{
		api:             api,
		logger:          slog.Default(),
		franchiseFilter: wildcard.All,
		userFilter:      wildcard.All,
		franchises:      pizza.FranchiseList{Franchises: []pizza.Franchise{}},
		users:           pizza.UserList{Users: []pizza.User{}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// SetViewer changes the viewed identity. A different identity reloads both collections.
func (a *Admin) SetViewer(ctx context.Context, viewer *pizza.User) error {
	a.mu.Lock()
	changed := !sameUser(a.viewer, viewer)
	if viewer != nil {
		clone := *viewer
		a.viewer = &clone
	} else {
		a.viewer = nil
	}
	a.mu.Unlock()
	if !changed || viewer == nil {
		return nil
	}
	return a.Refresh(ctx)
}

// Refresh reloads both collections concurrently with the current page and filter.
func (a *Admin) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return ignoreStale(a.LoadFranchises(ctx)) })
	g.Go(func() error { return ignoreStale(a.LoadUsers(ctx)) })
	return g.Wait()
}

// LoadFranchises fetches the current franchise page. On failure the previous
// list is kept and the error recorded.
func (a *Admin) LoadFranchises(ctx context.Context) error {
	a.mu.Lock()
	a.franchiseSeq++
	seq, page, filter := a.franchiseSeq, a.franchisePage, a.franchiseFilter
	a.franchisesLoading = true
	a.mu.Unlock()

	list, err := a.api.GetFranchises(ctx, page, FranchisePageSize, filter)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.franchiseSeq {
		return ErrStale
	}
	a.franchisesLoading = false
	if err != nil {
		a.franchiseErr = err
		a.logger.ErrorContext(ctx, "failed to fetch franchises",
			slog.Int("page", page), slog.String("filter", filter), slog.String("error", err.Error()))
		return err
	}
	a.franchiseErr = nil
	a.franchises = normalizeFranchises(list)
	return nil
}

// LoadUsers fetches the current user page. Loading is cleared whatever the
// outcome; on failure the previous list is kept and the error recorded.
func (a *Admin) LoadUsers(ctx context.Context) error {
	a.mu.Lock()
	a.userSeq++
	seq, page, filter := a.userSeq, a.userPage, a.userFilter
	a.usersLoading = true
	a.mu.Unlock()

	list, err := a.api.GetUsers(ctx, page, UserPageSize, filter)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.userSeq {
		return ErrStale
	}
	a.usersLoading = false
	if err != nil {
		a.userErr = err
		a.logger.ErrorContext(ctx, "failed to fetch users",
			slog.Int("page", page), slog.String("filter", filter), slog.String("error", err.Error()))
		return err
	}
	a.userErr = nil
	a.users = normalizeUsers(list)
	return nil
}

// FilterFranchises wraps term as `*term*`, returns to the first page and reloads.
func (a *Admin) FilterFranchises(ctx context.Context, term string) error {
	a.mu.Lock()
	a.franchiseFilter = wildcard.Wrap(term)
	a.franchisePage = 0
	a.mu.Unlock()
	return a.LoadFranchises(ctx)
}

// FilterUsers wraps term as `*term*`, returns to the first page and reloads.
func (a *Admin) FilterUsers(ctx context.Context, term string) error {
	a.mu.Lock()
	a.userFilter = wildcard.Wrap(term)
	a.userPage = 0
	a.mu.Unlock()
	return a.LoadUsers(ctx)
}

func (a *Admin) NextFranchises(ctx context.Context) error {
	a.mu.Lock()
	if !a.canNextFranchisesLocked() {
		a.mu.Unlock()
		return ErrPageUnavailable
	}
	a.franchisePage++
	a.mu.Unlock()
	return a.LoadFranchises(ctx)
}

func (a *Admin) PrevFranchises(ctx context.Context) error {
	a.mu.Lock()
	if a.franchisePage <= 0 {
		a.mu.Unlock()
		return ErrPageUnavailable
	}
	a.franchisePage--
	a.mu.Unlock()
	return a.LoadFranchises(ctx)
}

func (a *Admin) NextUsers(ctx context.Context) error {
	a.mu.Lock()
	if !a.canNextUsersLocked() {
		a.mu.Unlock()
		return ErrPageUnavailable
	}
	a.userPage++
	a.mu.Unlock()
	return a.LoadUsers(ctx)
}

func (a *Admin) PrevUsers(ctx context.Context) error {
	a.mu.Lock()
	if !a.canPrevUsersLocked() {
		a.mu.Unlock()
		return ErrPageUnavailable
	}
	a.userPage--
	a.mu.Unlock()
	return a.LoadUsers(ctx)
}

// GoTo positions both collections without fetching; used by hosts that keep
// page and filter in the URL.
func (a *Admin) GoTo(franchisePage int, franchiseFilter string, userPage int, userFilter string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.franchisePage = max(franchisePage, 0)
	a.franchiseFilter = wildcard.Wrap(trimStars(franchiseFilter))
	a.userPage = max(userPage, 0)
	a.userFilter = wildcard.Wrap(trimStars(userFilter))
}

func (a *Admin) canNextFranchisesLocked() bool {
	return a.franchises.More
}

func (a *Admin) canPrevUsersLocked() bool {
	return a.userPage > 0 && !a.usersLoading
}

func (a *Admin) canNextUsersLocked() bool {
	return a.userPage < paging.TotalPages(a.users.Total, UserPageSize)-1 && !a.usersLoading
}

// State is a point-in-time copy of the view-model.
type State struct {
	Viewer            *pizza.User
	FranchisePage     int
	FranchiseFilter   string
	Franchises        pizza.FranchiseList
	FranchisesLoading bool
	FranchiseErr      error
	CanPrevFranchises bool
	CanNextFranchises bool

	UserPage     int
	UserFilter   string
	Users        pizza.UserList
	UsersLoading bool
	UserErr      error
	CanPrevUsers bool
	CanNextUsers bool
}

func (a *Admin) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	var viewer *pizza.User
	if a.viewer != nil {
		clone := *a.viewer
		viewer = &clone
	}
	return State{
		Viewer:            viewer,
		FranchisePage:     a.franchisePage,
		FranchiseFilter:   a.franchiseFilter,
		Franchises:        a.franchises,
		FranchisesLoading: a.franchisesLoading,
		FranchiseErr:      a.franchiseErr,
		CanPrevFranchises: a.franchisePage > 0,
		CanNextFranchises: a.canNextFranchisesLocked(),
		UserPage:          a.userPage,
		UserFilter:        a.userFilter,
		Users:             a.users,
		UsersLoading:      a.usersLoading,
		UserErr:           a.userErr,
		CanPrevUsers:      a.canPrevUsersLocked(),
		CanNextUsers:      a.canNextUsersLocked(),
	}
}

func normalizeFranchises(list *pizza.FranchiseList) pizza.FranchiseList {
	if list == nil {
		return pizza.FranchiseList{Franchises: []pizza.Franchise{}}
	}
	out := *list
	if out.Franchises == nil {
		out.Franchises = []pizza.Franchise{}
	}
	return out
}

func normalizeUsers(list *pizza.UserList) pizza.UserList {
	if list == nil {
		return pizza.UserList{Users: []pizza.User{}}
	}
	out := *list
	if out.Users == nil {
		out.Users = []pizza.User{}
	}
	return out
}

func sameUser(a, b *pizza.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func ignoreStale(err error) error {
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}

func trimStars(term string) string {
	return strings.TrimSpace(strings.ReplaceAll(term, wildcard.All, ""))
}
