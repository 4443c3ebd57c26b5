package main

import (
	"context"
	"log"

	"github.com/ch4-lumia/lumia-backend/internal/logging"
	"github.com/ch4-lumia/lumia-backend/internal/server"
	"github.com/ch4-lumia/lumia-backend/internal/server/config"
)

func main() {
	ctx := context.Background()

	logger, sync, err := logging.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer sync()

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "app init error", "error", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "app run error", "error", err)
	}
}
