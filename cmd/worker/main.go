package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	franchisepostgres "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/persistence/postgres"
	franchiseapp "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	franchiseactivities "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/activities/franchises"
	franchiseworkflows "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/workflows/franchises"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/config"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-pizza-service/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-pizza-service/internal/platform/temporal"
)

type workerConfig struct {
	config.Telemetry
	Postgres config.Postgres
	Temporal config.Temporal
}

func main() {
	var cfg workerConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx := context.Background()
	const serviceName = "pizza-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry.Options(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	// Activities must see the API's data, so there is no in-memory fallback here.
	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.Postgres.DSN, logger)
	defer cleanupDB()
	if db == nil {
		logger.Error("franchise closure worker requires postgres")
		os.Exit(1)
	}
	closureActivities := franchiseactivities.NewActivities(franchiseapp.NewCloser(franchisepostgres.NewRepository(db)))

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, franchiseworkflows.FranchiseClosureTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(franchiseworkflows.FranchiseClosureWorkflow, workflow.RegisterOptions{Name: franchiseworkflows.FranchiseClosureWorkflowName})
	w.RegisterActivityWithOptions(closureActivities.ListStores, activity.RegisterOptions{Name: franchiseactivities.ListStoresActivityName})
	w.RegisterActivityWithOptions(closureActivities.CloseStore, activity.RegisterOptions{Name: franchiseactivities.CloseStoreActivityName})
	w.RegisterActivityWithOptions(closureActivities.RemoveFranchise, activity.RegisterOptions{Name: franchiseactivities.RemoveFranchiseActivityName})

	logger.Info("worker listening", slog.String("taskQueue", franchiseworkflows.FranchiseClosureTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
	}
}
