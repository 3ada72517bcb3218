package scheduler

import (
	"context"
	"testing"

	"jobwerk/internal/cache"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
)

type fakeSearcher struct {
	postings []jobs.Posting
	calls    int
}

func (f *fakeSearcher) SearchAll(ctx context.Context, keyword, location string) ([]jobs.Posting, []scraper.Outcome) {
	f.calls++
	return f.postings, nil
}

func newTestScheduler(t *testing.T, searcher Searcher, prefs store.Filters) (*Scheduler, *store.JobStore, cache.SeenCache) {
	t.Helper()
	dir := t.TempDir()

	filters, err := store.NewFilterStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := filters.Set(prefs); err != nil {
		t.Fatal(err)
	}
	tracker, err := store.NewJobStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	seen := cache.NewMemory()

	return New(searcher, nil, filters, tracker, seen, 6, logging.Nop()), tracker, seen
}

func TestRunCycleTracksFreshPostings(t *testing.T) {
	searcher := &fakeSearcher{postings: []jobs.Posting{
		{ID: "li-1", Title: "Go Developer", Company: "ACME", Platform: "LinkedIn", URL: "https://x/1"},
		{ID: "li-2", Title: "SRE", Company: "Beta AG", Platform: "LinkedIn", URL: "https://x/2"},
	}}
	s, tracker, _ := newTestScheduler(t, searcher, store.Filters{Keywords: []string{"golang"}, Locations: []string{"Berlin"}})

	s.RunCycle(context.Background())

	got, err := tracker.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("tracked %d jobs, want 2", len(got))
	}
	for _, j := range got {
		if j.Status != "found" {
			t.Fatalf("status = %q, want found", j.Status)
		}
	}
}

func TestRunCycleIsIdempotentAcrossCycles(t *testing.T) {
	searcher := &fakeSearcher{postings: []jobs.Posting{
		{ID: "li-1", Title: "Go Developer", Company: "ACME", Platform: "LinkedIn", URL: "https://x/1"},
	}}
	s, tracker, _ := newTestScheduler(t, searcher, store.Filters{Keywords: []string{"golang"}, Locations: []string{"Berlin"}})

	s.RunCycle(context.Background())
	s.RunCycle(context.Background())

	got, _ := tracker.List()
	if len(got) != 1 {
		t.Fatalf("tracked %d jobs after two cycles, want 1", len(got))
	}
}

func TestRunCycleSkipsAlreadyTrackedURL(t *testing.T) {
	searcher := &fakeSearcher{postings: []jobs.Posting{
		{ID: "li-1", Title: "Go Developer", Company: "ACME", Platform: "LinkedIn", URL: "https://x/1"},
	}}
	s, tracker, seen := newTestScheduler(t, searcher, store.Filters{Keywords: []string{"golang"}})

	if _, err := tracker.Add(store.Job{Title: "Go Developer", Company: "ACME", URL: "https://x/1"}); err != nil {
		t.Fatal(err)
	}

	s.RunCycle(context.Background())

	got, _ := tracker.List()
	if len(got) != 1 {
		t.Fatalf("tracked %d jobs, want 1", len(got))
	}
	// The cache learns it, so the tracker is not re-scanned next cycle.
	if ok, _ := seen.Seen(context.Background(), "https://x/1"); !ok {
		t.Fatal("expected URL to be marked seen")
	}
}

func TestRunCycleNoKeywordsNoSearch(t *testing.T) {
	searcher := &fakeSearcher{}
	s, _, _ := newTestScheduler(t, searcher, store.Filters{})

	s.RunCycle(context.Background())
	if searcher.calls != 0 {
		t.Fatalf("searcher called %d times, want 0", searcher.calls)
	}
}

func TestRunCycleFansAcrossPairs(t *testing.T) {
	searcher := &fakeSearcher{}
	s, _, _ := newTestScheduler(t, searcher, store.Filters{
		Keywords:  []string{"golang", "backend"},
		Locations: []string{"Berlin", "Munich"},
	})

	s.RunCycle(context.Background())
	if searcher.calls != 4 {
		t.Fatalf("searcher called %d times, want 4", searcher.calls)
	}
}
