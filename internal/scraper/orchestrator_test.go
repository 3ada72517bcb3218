package scraper

import (
	"context"
	"errors"
	"testing"

	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

type fakeAdapter struct {
	platform jobs.Platform
	results  []jobs.Posting
	err      error
	panics   bool
}

func (f *fakeAdapter) Platform() jobs.Platform { return f.platform }

func (f *fakeAdapter) Search(ctx context.Context, keyword, location string) ([]jobs.Posting, error) {
	if f.panics {
		panic("selector drift")
	}
	return f.results, f.err
}

func posting(title, company string) jobs.Posting {
	return jobs.Posting{ID: jobs.NewID("t"), Title: title, Company: company}
}

func TestDedupeFirstWinsCaseInsensitive(t *testing.T) {
	a := posting("Go Developer", "ACME")
	a.Platform = "LinkedIn"
	b := posting("go developer", "acme")
	b.Platform = "Indeed DE"
	c := posting("Go Developer", "Other GmbH")

	out := Dedupe([]jobs.Posting{a, b, c})
	if len(out) != 2 {
		t.Fatalf("expected 2 unique postings, got %d", len(out))
	}
	if out[0].Platform != "LinkedIn" {
		t.Fatalf("first occurrence should win, got platform %q", out[0].Platform)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	in := []jobs.Posting{posting("A", "X"), posting("B", "Y")}
	once := Dedupe(in)
	twice := Dedupe(once)
	if len(once) != 2 || len(twice) != 2 {
		t.Fatalf("dedupe changed an already-unique list: %d then %d", len(once), len(twice))
	}
}

func TestSearchAllSettlesAllAdapters(t *testing.T) {
	o := NewOrchestrator([]Adapter{
		&fakeAdapter{platform: jobs.PlatformLinkedIn, results: []jobs.Posting{posting("Go Developer", "ACME"), posting("SRE", "ACME")}},
		&fakeAdapter{platform: jobs.PlatformIndeed, err: errors.New("layout changed")},
		&fakeAdapter{platform: jobs.PlatformStepStone, results: []jobs.Posting{posting("go developer", "acme"), posting("Data Engineer", "Beta AG"), posting("Platform Engineer", "Gamma SE")}},
		&fakeAdapter{platform: jobs.PlatformXing, panics: true},
		&fakeAdapter{platform: jobs.PlatformJobboerse, results: nil},
	}, logging.Nop())

	got, outcomes := o.SearchAll(context.Background(), "engineer", "Berlin")

	// 2 + 3 merged with one cross-platform duplicate.
	if len(got) != 4 {
		t.Fatalf("expected 4 unique postings, got %d", len(got))
	}
	if len(outcomes) != 5 {
		t.Fatalf("expected an outcome per adapter, got %d", len(outcomes))
	}

	failed := 0
	for _, oc := range outcomes {
		if oc.Err != nil {
			failed++
		}
	}
	if failed != 2 {
		t.Fatalf("expected 2 failed adapters (error + panic), got %d", failed)
	}
}

func TestSearchAllAllFailedIsEmptyNotError(t *testing.T) {
	o := NewOrchestrator([]Adapter{
		&fakeAdapter{platform: jobs.PlatformLinkedIn, err: errors.New("down")},
		&fakeAdapter{platform: jobs.PlatformIndeed, panics: true},
	}, logging.Nop())

	got, outcomes := o.SearchAll(context.Background(), "engineer", "Berlin")
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	for _, oc := range outcomes {
		if oc.Err == nil {
			t.Fatalf("expected every outcome to carry an error, got %+v", oc)
		}
	}
}

func TestSearchOneUnknownPlatform(t *testing.T) {
	o := NewOrchestrator(nil, logging.Nop())
	_, err := o.SearchOne(context.Background(), jobs.Platform("monster"), "go", "Berlin")
	if !errors.Is(err, jobs.ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}
