package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/okatech-org/admin.ga-sub001/internal/app"
	"github.com/okatech-org/admin.ga-sub001/internal/config"
	"github.com/okatech-org/admin.ga-sub001/internal/logger"
	"github.com/okatech-org/admin.ga-sub001/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Resolve("config/config.toml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()
	wiring, err := app.Build(ctx, cfg, logr, app.ConnectMemgraph)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize snapshot source")
	}
	defer wiring.Close(ctx)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	srv := server.NewServer(wiring.Registry, logr, metricsPath)
	r := srv.SetupRouter()

	logr.WithField("port", cfg.Server.Port).WithField("source", cfg.Snapshot.Source).Info("Starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logr.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}
