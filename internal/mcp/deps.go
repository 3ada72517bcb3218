package mcp

import (
	"context"

	"jobwerk/internal/jobs"
	"jobwerk/internal/runlog"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
)

// Searcher is the slice of the search orchestrator the tools need.
type Searcher interface {
	SearchAll(ctx context.Context, keyword, location string) ([]jobs.Posting, []scraper.Outcome)
	SearchOne(ctx context.Context, platform jobs.Platform, keyword, location string) ([]jobs.Posting, error)
}

// Deps carries everything the tool set operates on. Searcher may be nil
// when the process runs without a browser; search_jobs then reports that.
type Deps struct {
	Searcher Searcher
	Jobs     *store.JobStore
	Filters  *store.FilterStore
	Answers  *store.AnswerStore
	Runs     *runlog.Store
}
