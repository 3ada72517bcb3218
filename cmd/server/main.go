package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobwerk/internal/app"
	"jobwerk/internal/config"
	"jobwerk/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel)
	defer logger.Sync()

	a, cleanup, err := app.Bootstrap(cfg, logger)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer cleanup()

	// The browser is acquired lazily by the first search/apply, but the
	// scheduler needs it up front.
	if a.Container.Scheduler != nil {
		if err := a.Container.Session.Acquire(context.Background()); err != nil {
			logger.Error("browser session unavailable, discovery disabled", "error", err)
		} else if err := a.Container.Scheduler.Start(context.Background()); err != nil {
			logger.Error("failed to start discovery scheduler", "error", err)
		}
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr)
	}()
	logger.Info("server starting", "addr", addr, "env", cfg.App.Environment)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
			logger.Warn("shutdown error", "error", err)
		}
	}
}
