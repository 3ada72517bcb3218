// One-shot search CLI: fires a query against the job boards and prints the
// merged postings as JSON. Useful for testing selectors without the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jobwerk/internal/browser"
	"jobwerk/internal/config"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/scraper"
)

func main() {
	query := flag.String("query", "", "search keyword")
	location := flag.String("location", "Germany", "search location")
	platform := flag.String("platform", "", "single platform (linkedin, indeed, stepstone, xing, jobboerse); empty searches all")
	timeout := flag.Duration("timeout", 3*time.Minute, "overall search timeout")
	flag.Parse()

	if strings.TrimSpace(*query) == "" {
		log.Fatalf("provide -query")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel)
	defer logger.Sync()

	session := browser.NewSession(browser.Options{
		UseExisting: cfg.Browser.UseExisting,
		CDPURL:      cfg.Browser.CDPURL,
		ProfileDir:  cfg.Browser.ProfileDir,
		Headless:    cfg.Browser.Headless,
	}, logger)
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := session.Acquire(ctx); err != nil {
		log.Fatalf("failed to acquire browser: %v", err)
	}

	orch := scraper.NewOrchestrator(scraper.DefaultAdapters(session, logger), logger)

	var found []jobs.Posting
	if p := strings.TrimSpace(*platform); p != "" {
		parsed, err := jobs.ParsePlatform(p)
		if err != nil || parsed == jobs.PlatformAll {
			log.Fatalf("unknown platform: %q", p)
		}
		found, err = orch.SearchOne(ctx, parsed, *query, *location)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
	} else {
		found, _ = orch.SearchAll(ctx, *query, *location)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(found); err != nil {
		log.Fatalf("encode results: %v", err)
	}
}
