// MCP entry point: serves the tool set over streamable HTTP so an LLM
// client can drive the tracker and the job boards. Runs its own browser
// session independent of the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobwerk/internal/browser"
	"jobwerk/internal/config"
	"jobwerk/internal/logging"
	"jobwerk/internal/mcp"
	"jobwerk/internal/runlog"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel)
	defer logger.Sync()

	jobsStore, err := store.NewJobStore(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("failed to open job store: %v", err)
	}
	filters, err := store.NewFilterStore(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("failed to open filter store: %v", err)
	}
	answers, err := store.NewAnswerStore(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("failed to open answer store: %v", err)
	}
	runs, err := runlog.NewStore(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}

	session := browser.NewSession(browser.Options{
		UseExisting: cfg.Browser.UseExisting,
		CDPURL:      cfg.Browser.CDPURL,
		ProfileDir:  cfg.Browser.ProfileDir,
		Headless:    cfg.Browser.Headless,
	}, logger)
	defer session.Close()

	deps := mcp.Deps{
		Searcher: scraper.NewOrchestrator(scraper.DefaultAdapters(session, logger), logger),
		Jobs:     jobsStore,
		Filters:  filters,
		Answers:  answers,
		Runs:     runs,
	}

	port, err := strconv.Atoi(cfg.MCP.Port)
	if err != nil {
		log.Fatalf("invalid MCP port %q: %v", cfg.MCP.Port, err)
	}

	srv := mcp.NewServer(deps, port, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("mcp server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("shutdown error", "error", err)
		}
	}
}
