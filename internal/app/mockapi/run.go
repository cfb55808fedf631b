// Package mockapi serves the pizza API harness as a standalone process for
// browser and contract testing.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Apurer/go-gin-pizza-service/internal/mockserver"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
)

const (
	ServiceName = "pizza-mock-api"
	// ResetPath restores the fixtures when MOCK_ENABLE_RESET is on.
	ResetPath = "/__reset"
)

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

	opts := []mockserver.Option{mockserver.WithLogger(logger), mockserver.WithTokenSecret(cfg.TokenSecret)}
	if cfg.PersistentClosures {
		opts = append(opts, mockserver.WithPersistentClosures())
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(NewHandler(mockserver.New(opts...), cfg.EnableReset, logger), ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock pizza API listening", slog.String("addr", srv.Addr), slog.Bool("persistent_closures", cfg.PersistentClosures))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewHandler fronts the harness, optionally adding the reset endpoint.
func NewHandler(harness *mockserver.Server, enableReset bool, logger *slog.Logger) http.Handler {
	if !enableReset {
		return harness.Handler()
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST(ResetPath, func(c *gin.Context) {
		harness.Reset()
		logger.Info("mock state reset")
		c.Status(http.StatusNoContent)
	})
	engine.NoRoute(gin.WrapH(harness.Handler()))
	return engine
}
