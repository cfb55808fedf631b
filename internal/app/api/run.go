package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	pizzaserver "github.com/Apurer/go-gin-pizza-service/go"
	franchisedirectory "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/directory"
	franchisememory "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/memory"
	franchiseobs "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/observability"
	franchisepostgres "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/persistence/postgres"
	franchiseworkflows "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/workflows"
	franchiseapp "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	franchiseports "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	ordermemory "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/persistence/postgres"
	orderreceipt "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/receipt"
	orderapp "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	usermemory "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/persistence/postgres"
	userredis "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/redis"
	userapp "github.com/Apurer/go-gin-pizza-service/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/auth"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-pizza-service/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-pizza-service/internal/platform/redis"
	platformtemporal "github.com/Apurer/go-gin-pizza-service/internal/platform/temporal"
)

// ServiceName labels logs, spans, and metrics emitted by the API.
const ServiceName = "pizza-api"

// Run boots the pizza HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled and the server has drained.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry.Options(ServiceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.Postgres.DSN, logger)
	defer cleanupDB()
	if db != nil && cfg.Postgres.Migrate {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
	}
	redisClient, cleanupRedis := platformredis.ConnectOptional(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	defer cleanupRedis()

	tokens := auth.NewManager(cfg.TokenSecret, cfg.TokenTTL)
	userRepo := buildUserRepository(db, logger)
	sessions, purger := buildSessionStore(db, redisClient, cfg.TokenTTL, logger)
	userService := userobs.New(
		userapp.NewService(userRepo, sessions, tokens, userapp.WithPasswordCost(cfg.PasswordCost)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	franchiseRepo := buildFranchiseRepository(db, logger)
	var closure franchiseports.ClosureOrchestrator
	if temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, closing franchises inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		closure = franchiseworkflows.NewTemporalClosure(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}
	franchiseService := franchiseobs.New(
		franchiseapp.NewService(franchiseRepo, franchisedirectory.NewUsers(userService), closure),
		franchiseobs.WithLogger(logger),
		franchiseobs.WithTracer(instruments.Tracer("internal.franchises.application")),
		franchiseobs.WithMeter(instruments.Meter("internal.franchises.application")),
	)

	orderRepo, idempotency := buildOrderStores(db, logger)
	orderService := orderobs.New(
		orderapp.NewService(orderRepo, orderreceipt.NewSigner(tokens), orderapp.WithIdempotencyStore(idempotency)),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	if err := bootstrapAdmin(ctx, userRepo, cfg, logger); err != nil {
		return err
	}
	if cfg.SeedMenu {
		if err := seedMenu(ctx, orderRepo, logger); err != nil {
			return err
		}
	}
	if purger != nil && cfg.SessionPurgeInterval > 0 {
		go purgeSessions(ctx, purger, cfg.SessionPurgeInterval, logger)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		otelgin.Middleware(ServiceName),
		platformobservability.RequestID(),
		platformobservability.AccessLog(logger),
	)
	router := pizzaserver.NewRouterWithGinEngine(engine, pizzaserver.ApiHandleFunctions{
		Authenticator: pizzaserver.NewAuthenticator(userService, nil),
		AuthAPI:       pizzaserver.NewAuthAPI(userService, nil),
		UserAPI:       pizzaserver.NewUserAPI(userService),
		FranchiseAPI:  pizzaserver.NewFranchiseAPI(franchiseService),
		OrderAPI:      pizzaserver.NewOrderAPI(orderService),
	})
	return serve(ctx, &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}, cfg.ShutdownTimeout, logger)
}

// serve runs srv until ctx is cancelled, then shuts it down within timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("pizza API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("pizza API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	logger.Info("pizza API shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildUserRepository(db *gorm.DB, logger *slog.Logger) userports.Repository {
	if db == nil {
		return usermemory.NewRepository()
	}
	logger.Info("user repository configured with postgres")
	return userpostgres.NewRepository(db)
}

type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// buildSessionStore prefers redis, then postgres, then memory. The purger is
// non-nil only for the postgres store; redis expires keys itself.
func buildSessionStore(db *gorm.DB, client *goredis.Client, ttl time.Duration, logger *slog.Logger) (userports.SessionStore, sessionPurger) {
	switch {
	case client != nil:
		logger.Info("session store configured with redis")
		return userredis.NewSessionStore(client, ttl), nil
	case db != nil:
		logger.Info("session store configured with postgres")
		store := userpostgres.NewSessionStore(db, ttl)
		return store, store
	default:
		logger.Warn("sessions kept in memory; tokens are lost on restart")
		return usermemory.NewSessionStore(), nil
	}
}

func buildFranchiseRepository(db *gorm.DB, logger *slog.Logger) franchiseports.Repository {
	if db == nil {
		return franchisememory.NewRepository()
	}
	logger.Info("franchise repository configured with postgres")
	return franchisepostgres.NewRepository(db)
}

func buildOrderStores(db *gorm.DB, logger *slog.Logger) (orderports.Repository, orderports.IdempotencyStore) {
	if db == nil {
		return ordermemory.NewRepository(), ordermemory.NewIdempotencyStore()
	}
	logger.Info("order repository configured with postgres")
	return orderpostgres.NewRepository(db), orderpostgres.NewIdempotencyStore(db)
}

func purgeSessions(ctx context.Context, purger sessionPurger, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("expired sessions purged", slog.Int64("count", purged))
		}
	}
}
