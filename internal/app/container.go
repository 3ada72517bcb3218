package app

import (
	"context"

	"jobwerk/internal/browser"
	"jobwerk/internal/cache"
	"jobwerk/internal/config"
	"jobwerk/internal/enrich"
	"jobwerk/internal/logging"
	"jobwerk/internal/runlog"
	"jobwerk/internal/scheduler"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
	"jobwerk/internal/ws"
)

// Container owns every long-lived collaborator and their shutdown order.
type Container struct {
	Config config.Config
	Log    *logging.Logger

	Session *browser.Session
	Seen    cache.SeenCache

	Jobs       *store.JobStore
	Filters    *store.FilterStore
	JobFilters *store.JobFilterStore
	Resume     *store.ResumeStore
	Answers    *store.AnswerStore
	Logs       *store.SessionLogStore
	Runs       *runlog.Store

	Searcher  *scraper.Orchestrator
	Applier   *scraper.ApplyOrchestrator
	Enricher  *enrich.Fetcher
	Scheduler *scheduler.Scheduler
	Hub       *ws.Hub
}

func NewContainer(cfg config.Config, log *logging.Logger) (*Container, error) {
	if log == nil {
		log = logging.Nop()
	}
	c := &Container{Config: cfg, Log: log}

	var err error
	if c.Jobs, err = store.NewJobStore(cfg.Data.Dir); err != nil {
		return nil, err
	}
	if c.Filters, err = store.NewFilterStore(cfg.Data.Dir); err != nil {
		return nil, err
	}
	if c.JobFilters, err = store.NewJobFilterStore(cfg.Data.Dir); err != nil {
		return nil, err
	}
	if c.Resume, err = store.NewResumeStore(cfg.Data.Dir); err != nil {
		return nil, err
	}
	if c.Answers, err = store.NewAnswerStore(cfg.Data.Dir); err != nil {
		return nil, err
	}
	if c.Logs, err = store.NewSessionLogStore(cfg.Data.Dir); err != nil {
		return nil, err
	}
	if c.Runs, err = runlog.NewStore(cfg.Data.Dir); err != nil {
		return nil, err
	}

	c.Seen = newSeenCache(cfg, log)

	c.Session = browser.NewSession(browser.Options{
		UseExisting: cfg.Browser.UseExisting,
		CDPURL:      cfg.Browser.CDPURL,
		ProfileDir:  cfg.Browser.ProfileDir,
		Headless:    cfg.Browser.Headless,
	}, log)

	c.Hub = ws.NewHub(log)
	ws.SetDefaultHub(c.Hub)

	c.Searcher = scraper.NewOrchestrator(scraper.DefaultAdapters(c.Session, log), log)
	c.Applier = scraper.NewApplyOrchestrator(c.Session, c.Runs, ws.NotifyRunAction, log)
	c.Enricher = enrich.NewFetcher(log)

	if cfg.Discovery.IntervalHours > 0 {
		c.Scheduler = scheduler.New(c.Searcher, c.Enricher, c.Filters, c.Jobs, c.Seen, cfg.Discovery.IntervalHours, log)
	}

	return c, nil
}

// newSeenCache prefers Redis and falls back to the in-process cache when
// no REDIS_URL is configured or the connection fails.
func newSeenCache(cfg config.Config, log *logging.Logger) cache.SeenCache {
	if cfg.Redis.URL == "" {
		return cache.NewMemory()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheConnectTimeout)
	defer cancel()

	r, err := cache.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn("redis unavailable, using in-memory seen cache", "error", err)
		return cache.NewMemory()
	}
	log.Info("seen cache backed by redis")
	return r
}

func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Session != nil {
		c.Session.Close()
	}
	if c.Seen != nil {
		_ = c.Seen.Close()
	}
}
