package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-pizza-service/internal/app/dashboard"
)

func main() {
	cfg, err := dashboard.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := dashboard.Run(ctx, cfg); err != nil {
		log.Fatalf("admin dashboard failed: %v", err)
	}
}
