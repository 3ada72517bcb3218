package scraper

import (
	"context"
	"fmt"
	"sync"

	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

// Outcome is one adapter's result in a fan-out. The HTTP caller only sees
// the merged posting list, but the per-adapter outcomes stay observable
// here and in the logs so "zero results" and "every adapter failed" can be
// told apart during diagnosis.
type Outcome struct {
	Platform jobs.Platform
	Count    int
	Err      error
}

type Orchestrator struct {
	adapters []Adapter
	log      *logging.Logger
}

func NewOrchestrator(adapters []Adapter, log *logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.Nop()
	}
	return &Orchestrator{adapters: adapters, log: log}
}

// DefaultAdapters wires the five platform adapters against one session.
func DefaultAdapters(session *browser.Session, log *logging.Logger) []Adapter {
	return []Adapter{
		NewLinkedIn(session, log),
		NewIndeed(session, log),
		NewStepStone(session, log),
		NewXing(session, log),
		NewJobboerse(session, log),
	}
}

// SearchAll fans the query out to every adapter concurrently and settles
// all of them: failures are logged and absorbed, successes concatenated in
// completion order, then deduplicated. It never returns an error; with all
// adapters down the answer is an empty list.
func (o *Orchestrator) SearchAll(ctx context.Context, keyword, location string) ([]jobs.Posting, []Outcome) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		merged   []jobs.Posting
		outcomes []Outcome
	)

	for _, ad := range o.adapters {
		wg.Add(1)
		go func(ad Adapter) {
			defer wg.Done()

			res, err := o.searchGuarded(ctx, ad, keyword, location)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.log.Warn("adapter search failed", "platform", ad.Platform().Label(), "error", err)
				outcomes = append(outcomes, Outcome{Platform: ad.Platform(), Err: err})
				return
			}
			merged = append(merged, res...)
			outcomes = append(outcomes, Outcome{Platform: ad.Platform(), Count: len(res)})
		}(ad)
	}
	wg.Wait()

	deduped := Dedupe(merged)
	o.log.Info("search fan-out settled", "keyword", keyword, "location", location,
		"adapters", len(o.adapters), "merged", len(merged), "unique", len(deduped))
	return deduped, outcomes
}

// SearchOne is a direct passthrough to the matching adapter.
func (o *Orchestrator) SearchOne(ctx context.Context, platform jobs.Platform, keyword, location string) ([]jobs.Posting, error) {
	for _, ad := range o.adapters {
		if ad.Platform() == platform {
			return o.searchGuarded(ctx, ad, keyword, location)
		}
	}
	return nil, fmt.Errorf("%w: %q", jobs.ErrUnknownPlatform, platform)
}

// searchGuarded contains adapter panics: a selector bug in one platform's
// extraction must never take down the fan-out.
func (o *Orchestrator) searchGuarded(ctx context.Context, ad Adapter, keyword, location string) (res []jobs.Posting, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%s: panic: %v", ad.Platform(), r)
		}
	}()
	return ad.Search(ctx, keyword, location)
}

// Dedupe merges cross-listed postings on the case-insensitive
// (title, company) key, first occurrence wins. The key deliberately
// ignores location: the same posting shows up on several boards far more
// often than two distinct postings share title and company text.
func Dedupe(in []jobs.Posting) []jobs.Posting {
	seen := make(map[string]struct{}, len(in))
	out := make([]jobs.Posting, 0, len(in))
	for _, p := range in {
		key := p.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
