package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
)

// Title heads the admin view.
const Title = "Mama Ricci's kitchen"

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.New("dashboard").ParseFS(templateFS, "templates/*.gohtml"))

var printer = message.NewPrinter(language.English)

type storeRow struct {
	ID      int64
	Name    string
	Revenue string
}

type franchiseRow struct {
	Index  int
	ID     int64
	Name   string
	Admins string
	Stores []storeRow
}

type userRow struct {
	ID    int64
	Name  string
	Email string
	Roles string
}

type pageLink struct {
	Enabled bool
	URL     string
}

type adminView struct {
	Title           string
	FranchisePage   int
	UserPage        int
	Franchises      []franchiseRow
	FranchiseFilter string
	FranchiseError  string
	PrevFranchises  pageLink
	NextFranchises  pageLink
	Users           []userRow
	UserFilter      string
	UserError       string
	UsersLoading    bool
	UserFooter      string
	PrevUsers       pageLink
	NextUsers       pageLink
	Routes          map[string]string
}

// Render writes the dashboard for the current viewer. Viewers without the
// admin role get the not-found view.
func (a *Admin) Render(w io.Writer) error {
	state := a.State()
	if state.Viewer == nil || !state.Viewer.IsAdmin() {
		return templates.ExecuteTemplate(w, "notfound", nil)
	}
	return templates.ExecuteTemplate(w, "admin", buildView(state))
}

func buildView(state State) adminView {
	view := adminView{
		Title:           Title,
		FranchisePage:   state.FranchisePage,
		UserPage:        state.UserPage,
		FranchiseFilter: trimStars(state.FranchiseFilter),
		UserFilter:      trimStars(state.UserFilter),
		UsersLoading:    state.UsersLoading,
		UserFooter:      fmt.Sprintf("Page %d (%d total users)", state.UserPage+1, state.Users.Total),
		Routes: map[string]string{
			"dashboard":       RouteDashboard,
			"createFranchise": RouteCreateFranchise,
			"closeFranchise":  RouteCloseFranchise,
			"closeStore":      RouteCloseStore,
		},
	}
	if state.FranchiseErr != nil {
		view.FranchiseError = state.FranchiseErr.Error()
	}
	if state.UserErr != nil {
		view.UserError = state.UserErr.Error()
	}

	for i, f := range state.Franchises.Franchises {
		row := franchiseRow{Index: i, ID: f.ID, Name: f.Name, Admins: adminNames(f.Admins)}
		for _, s := range f.Stores {
			row.Stores = append(row.Stores, storeRow{ID: s.ID, Name: s.Name, Revenue: FormatRevenue(s.TotalRevenue)})
		}
		view.Franchises = append(view.Franchises, row)
	}
	for _, u := range state.Users.Users {
		view.Users = append(view.Users, userRow{ID: u.ID, Name: u.Name, Email: u.Email, Roles: FormatRoles(u.Roles)})
	}

	link := func(fpage, upage int) string {
		return DashboardURL(fpage, state.FranchiseFilter, upage, state.UserFilter)
	}
	view.PrevFranchises = pageLink{Enabled: state.CanPrevFranchises, URL: link(state.FranchisePage-1, state.UserPage)}
	view.NextFranchises = pageLink{Enabled: state.CanNextFranchises, URL: link(state.FranchisePage+1, state.UserPage)}
	view.PrevUsers = pageLink{Enabled: state.CanPrevUsers, URL: link(state.FranchisePage, state.UserPage-1)}
	view.NextUsers = pageLink{Enabled: state.CanNextUsers, URL: link(state.FranchisePage, state.UserPage+1)}
	return view
}

// DashboardURL encodes the dashboard position as query parameters.
func DashboardURL(franchisePage int, franchiseFilter string, userPage int, userFilter string) string {
	query := url.Values{}
	query.Set("fpage", strconv.Itoa(max(franchisePage, 0)))
	query.Set("upage", strconv.Itoa(max(userPage, 0)))
	if term := trimStars(franchiseFilter); term != "" {
		query.Set("ffilter", term)
	}
	if term := trimStars(userFilter); term != "" {
		query.Set("ufilter", term)
	}
	return RouteDashboard + "?" + query.Encode()
}

// FormatRevenue groups digits the way an English locale does and appends the bitcoin sign.
func FormatRevenue(revenue float64) string {
	return printer.Sprint(number.Decimal(revenue, number.MaxFractionDigits(3))) + " ₿"
}

// FormatRoles capitalizes each role and joins them with commas.
func FormatRoles(roles []pizza.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, capitalize(r.Role))
	}
	return strings.Join(names, ", ")
}

func adminNames(admins []pizza.Admin) string {
	names := make([]string, 0, len(admins))
	for _, a := range admins {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
