// Package scheduler runs the background discovery loop: on a cron interval
// it searches every configured keyword/location pair, skips postings the
// seen cache or the tracker already knows, enriches the rest with
// descriptions and files them as "found".
package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"jobwerk/internal/cache"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
	"jobwerk/internal/ws"
)

// Searcher is the slice of the search orchestrator the loop needs.
type Searcher interface {
	SearchAll(ctx context.Context, keyword, location string) ([]jobs.Posting, []scraper.Outcome)
}

// Enricher fills descriptions on discovered postings. May be nil.
type Enricher interface {
	Postings(ctx context.Context, list []jobs.Posting, workers int) []jobs.Posting
}

type Scheduler struct {
	cron     *cron.Cron
	spec     string
	searcher Searcher
	enricher Enricher
	filters  *store.FilterStore
	tracker  *store.JobStore
	seen     cache.SeenCache
	log      *logging.Logger
}

func New(searcher Searcher, enricher Enricher, filters *store.FilterStore, tracker *store.JobStore, seen cache.SeenCache, intervalHours int, log *logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop()
	}
	return &Scheduler{
		cron:     cron.New(),
		spec:     fmt.Sprintf("@every %dh", intervalHours),
		searcher: searcher,
		enricher: enricher,
		filters:  filters,
		tracker:  tracker,
		seen:     seen,
		log:      log,
	}
}

// Start registers the cron entry and kicks off one immediate cycle so the
// tracker fills without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("discovery scheduler started", "spec", s.spec)

	go s.RunCycle(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("discovery scheduler stopped")
}

// RunCycle performs one full discovery pass. Exported so the CLI can
// trigger a one-shot run.
func (s *Scheduler) RunCycle(ctx context.Context) {
	prefs, err := s.filters.Get()
	if err != nil {
		s.log.Error("discovery: load filters", "error", err)
		return
	}
	if len(prefs.Keywords) == 0 {
		s.log.Info("discovery: no keywords configured, skipping cycle")
		return
	}
	locations := prefs.Locations
	if len(locations) == 0 {
		locations = []string{"Germany"}
	}

	added := 0
	for _, kw := range prefs.Keywords {
		for _, loc := range locations {
			if ctx.Err() != nil {
				return
			}
			added += s.discover(ctx, kw, loc)
		}
	}
	s.log.Info("discovery cycle complete", "keywords", len(prefs.Keywords), "locations", len(locations), "added", added)
}

func (s *Scheduler) discover(ctx context.Context, keyword, location string) int {
	found, _ := s.searcher.SearchAll(ctx, keyword, location)

	fresh := make([]jobs.Posting, 0, len(found))
	for _, p := range found {
		key := seenKey(p)
		if ok, err := s.seen.Seen(ctx, key); err == nil && ok {
			continue
		}
		// The seen cache is best-effort; the tracker is the source of truth.
		if tracked, err := s.tracker.HasURL(p.URL); err == nil && tracked {
			_ = s.seen.Mark(ctx, key)
			continue
		}
		fresh = append(fresh, p)
	}
	if len(fresh) == 0 {
		return 0
	}

	if s.enricher != nil {
		fresh = s.enricher.Postings(ctx, fresh, 4)
	}

	added := 0
	for _, p := range fresh {
		_, err := s.tracker.Add(store.Job{
			Title:       p.Title,
			Company:     p.Company,
			Platform:    p.Platform,
			Location:    p.Location,
			Salary:      p.Salary,
			Description: p.Description,
			URL:         p.URL,
			Status:      "found",
		})
		if err != nil {
			s.log.Warn("discovery: track posting", "url", p.URL, "error", err)
			continue
		}
		_ = s.seen.Mark(ctx, seenKey(p))
		added++
	}
	if added > 0 {
		ws.NotifyJobsDiscovered(keyword, location, added)
	}
	return added
}

func seenKey(p jobs.Posting) string {
	if p.URL != "" && p.URL != "#" {
		return p.URL
	}
	return strings.ToLower(p.Title + "|" + p.Company)
}
