package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sakura-comic/backend/internal/api"
	"github.com/sakura-comic/backend/internal/auth"
	"github.com/sakura-comic/backend/internal/config"
	"github.com/sakura-comic/backend/internal/db"
	"github.com/sakura-comic/backend/internal/logging"
)

const demoPassword = "123456"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if cfg.GeneratedSecret {
		logging.Warn().Msg("JWT_SECRET is not set; using a random secret, tokens will not survive a restart")
	}

	// Ensure data directory exists
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal().Err(err).Str("dir", dir).Msg("Failed to create data directory")
		}
	}

	database, err := db.NewSQLite(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to initialize database")
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.SeedDemoData {
		hash, err := auth.HashPassword(demoPassword)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to hash demo password")
		}
		if err := database.SeedDemoData(ctx, hash); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		logging.Info().Str("username", db.DemoUsername).Msg("Demo data ensured")
	}

	jwtService := auth.NewJWTService(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	router := api.NewRouter(database, jwtService, cfg)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Str("db", cfg.Database.Path).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logging.Error().Err(err).Msg("Server failed")
		return
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
