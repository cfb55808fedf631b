// Package dashboard runs the admin dashboard web app against a pizza API.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
	"github.com/Apurer/go-gin-pizza-service/internal/web/admin"
)

const ServiceName = "pizza-dashboard"

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

	router, err := NewRouter(cfg, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin dashboard listening", slog.String("addr", srv.Addr), slog.String("api", cfg.APIBaseURL))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("admin dashboard exited", slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the instrumented gin engine serving the admin pages.
func NewRouter(cfg Config, logger *slog.Logger) (*gin.Engine, error) {
	client, err := pizza.NewClient(cfg.APIBaseURL, pizza.WithTimeout(cfg.APITimeout))
	if err != nil {
		return nil, err
	}
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		otelgin.Middleware(ServiceName),
		platformobservability.RequestID(),
		platformobservability.AccessLog(logger),
	)
	admin.New(client, admin.NewSessionStore(cfg.SessionKey, cfg.SecureCookies), admin.WithLogger(logger)).Register(engine)
	return engine, nil
}
