package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weatherapp/server/internal/api/controller"
	"weatherapp/server/internal/api/repository"
	"weatherapp/server/internal/api/service"
	"weatherapp/server/internal/auth"
	"weatherapp/server/internal/config"
	"weatherapp/server/internal/db"
	"weatherapp/server/internal/logger"
	"weatherapp/server/internal/server"
	"weatherapp/server/internal/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize telemetry
	shutdownOtel, err := telemetry.InitOtel(cfg.CollectorAddr)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdownOtel(ctx); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	logger.Init()

	// Initialize Postgres
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.InitializeSchema(ctx, pool); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(pool, cfg.Database.Timeout)
	locationRepo := repository.NewLocationRepository(pool, cfg.Database.Timeout)

	// Create services
	tokens := auth.NewTokenService(cfg.Auth)
	userService := service.NewUserService(userRepo, tokens)
	locationService := service.NewLocationService(locationRepo)

	// Create controllers
	userController := controller.NewUserController(userService)
	locationController := controller.NewLocationController(locationService)

	// Create the gin-based server
	srv := server.NewServer(tokens, userController, locationController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	slog.Info("server exiting")
}
