package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okunev/fishlog/internal/infra/app"
	"github.com/okunev/fishlog/internal/infra/config"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("fishlog api: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
