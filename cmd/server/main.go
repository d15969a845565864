// Command server runs the task-manager HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmorrow/taskhub/internal/api"
	"github.com/cmorrow/taskhub/internal/api/middleware"
	"github.com/cmorrow/taskhub/internal/config"
	"github.com/cmorrow/taskhub/internal/email"
	"github.com/cmorrow/taskhub/internal/platform/logger"
	"github.com/cmorrow/taskhub/internal/platform/postgres"
	"github.com/cmorrow/taskhub/internal/service/auth"
	"github.com/cmorrow/taskhub/internal/service/images"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	log.Info("database ready")

	userStore := postgres.NewUserStore(db, log)
	tokenStore := postgres.NewTokenStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher()

	dispatcher := email.NewDispatcher(email.NewSendGridMailer(cfg.Email), log)
	processor := images.NewProcessor(cfg.Upload.MaxBytes)

	userHandler := api.NewUserHandler(
		userStore,
		tokenStore,
		jwtService,
		hasher,
		hasher,
		dispatcher,
		processor,
	)
	taskHandler := api.NewTaskHandler(taskStore, processor)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userStore, tokenStore)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(userHandler, taskHandler, authMiddleware),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	// Let in-flight notification emails finish before exiting.
	dispatcher.Wait()

	return nil
}
