// Package admin hosts the admin dashboard and its navigation targets as a gin web app.
package admin

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
	"github.com/Apurer/go-gin-pizza-service/internal/dashboard"
)

const (
	RouteLogin  = "/login"
	RouteLogout = "/logout"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pages = template.Must(template.New("admin").ParseFS(templateFS, "templates/*.gohtml"))

type pageData struct {
	Title      string
	Error      string
	Email      string
	Name       string
	AdminEmail string
	Franchise  *pizza.Franchise
	Store      *pizza.Store
}

// Handler serves the dashboard web app. Every API call uses the signed-in user's token.
type Handler struct {
	api    *pizza.Client
	store  sessions.Store
	logger *slog.Logger
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func New(api *pizza.Client, store sessions.Store, opts ...Option) *Handler {
	h := &Handler{api: api, store: store, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Register mounts the web routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard) })
	r.GET(RouteLogin, h.loginForm)
	r.POST(RouteLogin, h.login)
	r.POST(RouteLogout, h.logout)

	signed := r.Group(dashboard.RouteDashboard, h.requireSignedIn)
	signed.GET("", h.showDashboard)
	signed.POST("/close-franchise", h.navigateCloseFranchise)
	signed.GET("/close-franchise/confirm", h.confirmCloseFranchise)
	signed.POST("/close-franchise/confirm", h.closeFranchise)
	signed.POST("/close-store", h.navigateCloseStore)
	signed.GET("/close-store/confirm", h.confirmCloseStore)
	signed.POST("/close-store/confirm", h.closeStore)
	signed.GET("/create-franchise", h.createFranchiseForm)
	signed.POST("/create-franchise", h.createFranchise)
}

const signedInKey = "web.signedIn"

func (h *Handler) requireSignedIn(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, RouteLogin)
		c.Abort()
		return
	}
	c.Set(signedInKey, user)
	c.Next()
}

func signedInFrom(c *gin.Context) *signedIn {
	user, _ := c.MustGet(signedInKey).(*signedIn)
	return user
}

func (h *Handler) loginForm(c *gin.Context) {
	h.page(c, http.StatusOK, "login", pageData{Title: "Login"})
}

func (h *Handler) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	auth, err := h.api.Login(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		status := http.StatusBadGateway
		if pizza.IsUnauthorized(err) {
			status = http.StatusUnauthorized
		} else {
			h.logger.ErrorContext(c.Request.Context(), "login failed", slog.String("error", err.Error()))
		}
		h.page(c, status, "login", pageData{Title: "Login", Email: email, Error: err.Error()})
		return
	}
	if err := h.signIn(c, auth); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
}

func (h *Handler) logout(c *gin.Context) {
	if user, ok := h.currentUser(c); ok {
		if err := h.api.WithToken(user.Token).Logout(c.Request.Context()); err != nil && !pizza.IsUnauthorized(err) {
			h.logger.WarnContext(c.Request.Context(), "logout failed", slog.String("error", err.Error()))
		}
	}
	if err := h.signOut(c); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteLogin)
}

func (h *Handler) showDashboard(c *gin.Context) {
	user := signedInFrom(c)
	board := dashboard.NewAdmin(h.api.WithToken(user.Token), dashboard.WithLogger(h.logger))
	status := http.StatusOK
	if user.User.IsAdmin() {
		board.GoTo(queryInt(c, "fpage"), c.Query("ffilter"), queryInt(c, "upage"), c.Query("ufilter"))
		// Load failures are recorded on the view-model and rendered inline.
		_ = board.SetViewer(c.Request.Context(), &user.User)
	} else {
		status = http.StatusNotFound
	}
	var buf bytes.Buffer
	if err := board.Render(&buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) navigateCloseFranchise(c *gin.Context) {
	franchise, ok := franchiseFromForm(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
		return
	}
	nav := dashboard.CloseFranchiseNavigation(franchise)
	h.navigate(c, nav)
}

func (h *Handler) navigateCloseStore(c *gin.Context) {
	franchise, ok := franchiseFromForm(c)
	storeID, err := strconv.ParseInt(c.PostForm("storeId"), 10, 64)
	if !ok || err != nil {
		c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
		return
	}
	nav := dashboard.CloseStoreNavigation(franchise, pizza.Store{ID: storeID, Name: c.PostForm("storeName")})
	h.navigate(c, nav)
}

func (h *Handler) navigate(c *gin.Context, nav dashboard.Navigation) {
	if err := h.pushNavigation(c, nav); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, nav.Route+"/confirm")
}

func (h *Handler) confirmCloseFranchise(c *gin.Context) {
	nav, err := h.popNavigation(c, dashboard.RouteCloseFranchise)
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
		return
	}
	h.page(c, http.StatusOK, "close-franchise", pageData{Title: "Sorry to see you go", Franchise: nav.Franchise})
}

func (h *Handler) confirmCloseStore(c *gin.Context) {
	nav, err := h.popNavigation(c, dashboard.RouteCloseStore)
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
		return
	}
	h.page(c, http.StatusOK, "close-store", pageData{Title: "Sorry to see you go", Franchise: nav.Franchise, Store: nav.Store})
}

func (h *Handler) closeFranchise(c *gin.Context) {
	franchise, ok := franchiseFromForm(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
		return
	}
	user := signedInFrom(c)
	if err := h.api.WithToken(user.Token).CloseFranchise(c.Request.Context(), franchise.ID); err != nil {
		h.apiFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
}

func (h *Handler) closeStore(c *gin.Context) {
	franchise, ok := franchiseFromForm(c)
	storeID, err := strconv.ParseInt(c.PostForm("storeId"), 10, 64)
	if !ok || err != nil {
		c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
		return
	}
	user := signedInFrom(c)
	if err := h.api.WithToken(user.Token).CloseStore(c.Request.Context(), franchise.ID, storeID); err != nil {
		h.apiFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
}

func (h *Handler) createFranchiseForm(c *gin.Context) {
	h.page(c, http.StatusOK, "create-franchise", pageData{Title: "Create franchise"})
}

func (h *Handler) createFranchise(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("adminEmail"))
	data := pageData{Title: "Create franchise", Name: name, AdminEmail: email}
	if name == "" || email == "" {
		data.Error = "franchise name and franchisee email are required"
		h.page(c, http.StatusBadRequest, "create-franchise", data)
		return
	}
	user := signedInFrom(c)
	if _, err := h.api.WithToken(user.Token).CreateFranchise(c.Request.Context(), name, email); err != nil {
		data.Error = err.Error()
		h.page(c, statusOf(err), "create-franchise", data)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboard.RouteDashboard)
}

func (h *Handler) apiFailure(c *gin.Context, err error) {
	h.logger.WarnContext(c.Request.Context(), "dashboard action failed", slog.String("error", err.Error()))
	h.page(c, statusOf(err), "error", pageData{Title: "Oops", Error: err.Error()})
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.logger.ErrorContext(c.Request.Context(), "dashboard request failed", slog.String("error", err.Error()))
	c.String(http.StatusInternalServerError, "internal error")
}

func (h *Handler) page(c *gin.Context, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func franchiseFromForm(c *gin.Context) (pizza.Franchise, bool) {
	id, err := strconv.ParseInt(c.PostForm("franchiseId"), 10, 64)
	if err != nil || id <= 0 {
		return pizza.Franchise{}, false
	}
	return pizza.Franchise{ID: id, Name: c.PostForm("franchiseName")}, true
}

func statusOf(err error) int {
	switch {
	case pizza.IsUnauthorized(err):
		return http.StatusUnauthorized
	case pizza.IsForbidden(err):
		return http.StatusForbidden
	case pizza.IsNotFound(err):
		return http.StatusNotFound
	case pizza.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
