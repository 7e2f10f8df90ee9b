package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egrafes/egrafes-backend/internal/config"
	"github.com/egrafes/egrafes-backend/internal/database"
	"github.com/egrafes/egrafes-backend/internal/handler"
	"github.com/egrafes/egrafes-backend/internal/logger"
	"github.com/egrafes/egrafes-backend/internal/repository"
	"github.com/egrafes/egrafes-backend/internal/router"
	"github.com/egrafes/egrafes-backend/internal/service"
	"github.com/egrafes/egrafes-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("data_dir", cfg.DataDir).
		Msg("Starting Egrafes Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	credentialRepo := repository.NewCredentialRepository(cfg.UsersFile)
	recordRepo := repository.NewRecordRepository(cfg.SeedDir, log)
	addressRepo, err := repository.NewAddressRepository(cfg.AddressesFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load address lookup table")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	sessionService := service.NewSessionService(cfg, rdb, log)
	recordService := service.NewRecordService(recordRepo, sessionService, cfg.DataDir, log)
	exportService := service.NewExportService()

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService, sessionService, credentialRepo),
		Record:  handler.NewRecordHandler(recordService, exportService),
		Address: handler.NewAddressHandler(addressRepo),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
