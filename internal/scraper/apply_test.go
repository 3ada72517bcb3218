package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/runlog"
)

type fakePages struct {
	err error
}

func (f *fakePages) NewPage(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	pageCtx, cancel := context.WithCancel(ctx)
	return pageCtx, cancel, nil
}

func newTestApply(t *testing.T, pages pageProvider) (*ApplyOrchestrator, *runlog.Store) {
	t.Helper()
	runs, err := runlog.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := NewApplyOrchestrator(pages, runs, nil, logging.Nop())
	a.navigate = func(page context.Context, url string) error { return nil }
	return a, runs
}

func TestApplyUnsupportedPlatform(t *testing.T) {
	a, runs := newTestApply(t, &fakePages{})

	res, err := a.Apply(context.Background(), jobs.ApplyRequest{
		JobURL:   "https://www.xing.com/jobs/1",
		Platform: "xing",
	})
	if err != nil {
		t.Fatalf("unsupported platform must not be an error: %v", err)
	}
	if res.Success {
		t.Fatal("expected Success=false")
	}
	if !strings.Contains(res.Message, "not supported") || !strings.Contains(res.Message, "Xing") {
		t.Fatalf("message %q should name the platform and say it is unsupported", res.Message)
	}

	// The page is opened and navigated before the platform is dispatched,
	// so even an unsupported attempt leaves a run with the page load.
	summaries, err := runs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].Status != "failed" {
		t.Fatalf("expected one failed run, got %+v", summaries)
	}
	run, err := runs.Get(summaries[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Actions) != 1 || run.Actions[0].Type != runlog.ActionNavigate {
		t.Fatalf("actions = %+v", run.Actions)
	}
}

func TestApplyUnknownPlatformIsError(t *testing.T) {
	a, _ := newTestApply(t, &fakePages{})

	_, err := a.Apply(context.Background(), jobs.ApplyRequest{JobURL: "https://x/1", Platform: "monster"})
	if !errors.Is(err, jobs.ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestApplyRoutineErrorBecomesFailedResult(t *testing.T) {
	a, runs := newTestApply(t, &fakePages{})
	a.routines[jobs.PlatformLinkedIn] = func(page context.Context, rec *runlog.Recorder, _ string) (string, error) {
		return "", errors.New("no apply button found")
	}

	res, err := a.Apply(context.Background(), jobs.ApplyRequest{JobURL: "https://www.linkedin.com/jobs/1", Platform: "linkedin"})
	if err != nil {
		t.Fatalf("automation failure must not be an error: %v", err)
	}
	if res.Success {
		t.Fatal("expected Success=false")
	}
	if !strings.Contains(res.Message, "Application failed") {
		t.Fatalf("message = %q", res.Message)
	}

	summaries, err := runs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].Status != "failed" {
		t.Fatalf("expected one failed run, got %+v", summaries)
	}
}

func TestApplyPanicContained(t *testing.T) {
	a, runs := newTestApply(t, &fakePages{})
	a.routines[jobs.PlatformLinkedIn] = func(page context.Context, rec *runlog.Recorder, _ string) (string, error) {
		panic("dialog changed shape")
	}

	res, err := a.Apply(context.Background(), jobs.ApplyRequest{JobURL: "https://www.linkedin.com/jobs/1", Platform: "linkedin"})
	if err != nil {
		t.Fatalf("panic must degrade to a failed result: %v", err)
	}
	if res.Success || !strings.Contains(res.Message, "dialog changed shape") {
		t.Fatalf("result = %+v", res)
	}

	summaries, _ := runs.List()
	if len(summaries) != 1 || summaries[0].Status != "failed" {
		t.Fatalf("expected one failed run, got %+v", summaries)
	}
}

func TestApplySuccessRecordsRun(t *testing.T) {
	a, runs := newTestApply(t, &fakePages{})
	a.routines[jobs.PlatformLinkedIn] = func(page context.Context, rec *runlog.Recorder, _ string) (string, error) {
		rec.Click("button:easy-apply", runlog.ResultSuccess, "")
		return "LinkedIn application submitted", nil
	}

	res, err := a.Apply(context.Background(), jobs.ApplyRequest{JobURL: "https://www.linkedin.com/jobs/1", Platform: "linkedin"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Message != "LinkedIn application submitted" {
		t.Fatalf("result = %+v", res)
	}

	summaries, err := runs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one run, got %d", len(summaries))
	}
	run, err := runs.Get(summaries[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != "succeeded" {
		t.Fatalf("status = %q", run.Status)
	}
	// navigate then click, strictly increasing ordinals
	if len(run.Actions) != 2 || run.Actions[0].Type != runlog.ActionNavigate || run.Actions[1].Step != 2 {
		t.Fatalf("actions = %+v", run.Actions)
	}
}

func TestApplyPageFailure(t *testing.T) {
	a, _ := newTestApply(t, &fakePages{err: errors.New("browser gone")})

	res, err := a.Apply(context.Background(), jobs.ApplyRequest{JobURL: "https://www.linkedin.com/jobs/1", Platform: "linkedin"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Success || !strings.Contains(res.Message, "browser gone") {
		t.Fatalf("result = %+v", res)
	}
}
