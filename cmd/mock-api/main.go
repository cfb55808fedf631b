package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-pizza-service/internal/app/mockapi"
)

func main() {
	cfg, err := mockapi.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := mockapi.Run(ctx, cfg); err != nil {
		log.Fatalf("mock pizza API failed: %v", err)
	}
}
