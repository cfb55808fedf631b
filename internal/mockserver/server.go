// Package mockserver hosts the pizza API over resettable in-memory state for tests.
package mockserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	pizzaserver "github.com/Apurer/go-gin-pizza-service/go"
	franchisedirectory "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/directory"
	franchisememory "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/memory"
	franchiseapp "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	ordermemory "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/memory"
	orderreceipt "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/receipt"
	orderapp "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/application"
	usermemory "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-gin-pizza-service/internal/domains/users/application"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/auth"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
)

// DefaultTokenSecret signs harness tokens unless WithTokenSecret is given.
const DefaultTokenSecret = "mock-pizza-secret"

// Server owns every piece of mock state. Call Reset at the start of each scenario.
type Server struct {
	users       *usermemory.Repository
	sessions    *usermemory.SessionStore
	current     *usermemory.CurrentSession
	franchises  *franchisememory.Repository
	orders      *ordermemory.Repository
	idempotency *ordermemory.IdempotencyStore
	tokens      *auth.Manager
	engine      *gin.Engine
	logger      *slog.Logger

	persistentClosures bool
	secret             string
	clock              func() time.Time
}

type Option func(*Server)

// WithPersistentClosures makes franchise and store deletes take effect.
func WithPersistentClosures() Option {
	return func(s *Server) { s.persistentClosures = true }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func WithTokenSecret(secret string) Option {
	return func(s *Server) { s.secret = secret }
}

// WithClock fixes the timestamp given to placed orders.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.clock = now }
}

// New builds a harness loaded with the fixtures.
func New(opts ...Option) *Server {
	s := &Server{secret: DefaultTokenSecret}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.users = usermemory.NewRepository()
	s.sessions = usermemory.NewSessionStore()
	s.current = usermemory.NewCurrentSession()
	var franchiseOpts []franchisememory.Option
	if !s.persistentClosures {
		franchiseOpts = append(franchiseOpts, franchisememory.WithDiscardedDeletes())
	}
	s.franchises = franchisememory.NewRepository(franchiseOpts...)
	s.orders = ordermemory.NewRepository()
	s.idempotency = ordermemory.NewIdempotencyStore()
	s.tokens = auth.NewManager(s.secret, 24*time.Hour)

	userService := userapp.NewService(s.users, s.sessions, s.tokens, userapp.WithPasswordCost(bcrypt.MinCost))
	franchiseService := franchiseapp.NewService(s.franchises, franchisedirectory.NewUsers(userService), nil)
	orderService := orderapp.NewService(s.orders, orderreceipt.NewSigner(s.tokens),
		orderapp.WithIdempotencyStore(s.idempotency), orderapp.WithClock(s.clock))

	engine := gin.New()
	engine.Use(gin.Recovery(), platformobservability.RequestID(), platformobservability.AccessLog(s.logger))
	s.engine = pizzaserver.NewRouterWithGinEngine(engine, pizzaserver.ApiHandleFunctions{
		Authenticator: pizzaserver.NewAuthenticator(userService, s.current),
		AuthAPI:       pizzaserver.NewAuthAPI(userService, s.current),
		UserAPI:       pizzaserver.NewUserAPI(userService),
		FranchiseAPI:  pizzaserver.NewFranchiseAPI(franchiseService),
		OrderAPI:      pizzaserver.NewOrderAPI(orderService),
	})
	s.Reset()
	return s
}

// Reset restores the fixtures, forgets registered and deleted users, and ends every session.
func (s *Server) Reset() {
	s.users.Reset(SeedUsers()...)
	s.sessions.Clear()
	s.current.Clear()
	s.franchises.Reset(SeedFranchises()...)
	s.orders.Reset(SeedMenu(), SeedOrders()...)
	s.idempotency.Reset()
}

// Handler exposes the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves the harness on a loopback port. Close the returned server when done.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.engine)
}

// Tokens exposes the signer so tests can verify receipts.
func (s *Server) Tokens() *auth.Manager {
	return s.tokens
}

// CurrentUserID reports the identity of the last login, if any.
func (s *Server) CurrentUserID() (int64, bool) {
	return s.current.Current()
}
