package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/handler"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/runlog"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
)

type stubSearcher struct {
	postings []jobs.Posting
}

func (s *stubSearcher) SearchAll(ctx context.Context, keyword, location string) ([]jobs.Posting, []scraper.Outcome) {
	return s.postings, nil
}

func (s *stubSearcher) SearchOne(ctx context.Context, platform jobs.Platform, keyword, location string) ([]jobs.Posting, error) {
	return s.postings, nil
}

type stubApplier struct {
	result jobs.ApplyResult
}

func (s *stubApplier) Apply(ctx context.Context, req jobs.ApplyRequest) (jobs.ApplyResult, error) {
	return s.result, nil
}

func newTestApp(t *testing.T, register func(api fiber.Router)) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logging.Nop()).Middleware())
	register(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("bad JSON %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestSearchValidatesKeyword(t *testing.T) {
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewSearchHandler(&stubSearcher{}, nil).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "POST", "/api/search", map[string]any{"location": "Berlin"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
}

func TestSearchReturnsJobs(t *testing.T) {
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewSearchHandler(&stubSearcher{postings: []jobs.Posting{
			{ID: "li-1", Title: "Go Developer", Company: "ACME", Platform: "LinkedIn"},
		}}, nil).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "POST", "/api/search", map[string]any{"keywords": "golang", "location": "Berlin"})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["success"] != true || body["count"] != float64(1) {
		t.Fatalf("body = %v", body)
	}
}

func TestSearchAppendsSessionLogEntry(t *testing.T) {
	sessions, err := store.NewSessionLogStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewSearchHandler(&stubSearcher{}, sessions).RegisterRoutes(api)
	})

	status, _ := doJSON(t, app, "POST", "/api/search", map[string]any{"keywords": "golang", "location": "Berlin"})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}

	entries, err := sessions.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one session log entry, got %d", len(entries))
	}
	if entries[0]["type"] != "search" || entries[0]["message"] != "Search: golang in Berlin" {
		t.Fatalf("entry = %v", entries[0])
	}
}

func TestSearchRejectsUnknownPlatform(t *testing.T) {
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewSearchHandler(&stubSearcher{}, nil).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "POST", "/api/search", map[string]any{"keywords": "golang", "platform": "monster"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "monster") {
		t.Fatalf("error should name the platform, got %v", body)
	}
}

func TestApplyPassesThroughResult(t *testing.T) {
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewApplyHandler(&stubApplier{result: jobs.ApplyResult{
			Success: false,
			Message: "Auto-apply not supported for Xing",
		}}).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "POST", "/api/apply", map[string]any{
		"jobUrl":   "https://www.xing.com/jobs/1",
		"platform": "xing",
	})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["success"] != false || !strings.Contains(body["message"].(string), "Xing") {
		t.Fatalf("body = %v", body)
	}
}

func TestJobsCRUD(t *testing.T) {
	dir := t.TempDir()
	jobsStore, err := store.NewJobStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	jobFilters, err := store.NewJobFilterStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewJobsHandler(jobsStore, jobFilters).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "POST", "/api/jobs", map[string]any{
		"title":   "Go Developer",
		"company": "ACME",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d: %v", status, body)
	}
	created := body["job"].(map[string]any)
	id := created["id"].(string)
	if created["status"] != "found" {
		t.Fatalf("default status = %v", created["status"])
	}

	status, body = doJSON(t, app, "PATCH", "/api/jobs/"+id, map[string]any{"status": "applied"})
	if status != fiber.StatusOK {
		t.Fatalf("patch status = %d: %v", status, body)
	}
	if body["job"].(map[string]any)["status"] != "applied" {
		t.Fatalf("patched job = %v", body["job"])
	}

	status, body = doJSON(t, app, "GET", "/api/jobs?status=applied", nil)
	if status != fiber.StatusOK || len(body["jobs"].([]any)) != 1 {
		t.Fatalf("list = %d %v", status, body)
	}

	status, _ = doJSON(t, app, "DELETE", "/api/jobs/"+id, nil)
	if status != fiber.StatusOK {
		t.Fatalf("delete status = %d", status)
	}

	status, _ = doJSON(t, app, "DELETE", "/api/jobs/"+id, nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", status)
	}
}

func TestJobsListFiltered(t *testing.T) {
	dir := t.TempDir()
	jobsStore, err := store.NewJobStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	jobFilters, err := store.NewJobFilterStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	var rules store.JobFilters
	rules.Blacklist.Companies = []string{"Spamcorp"}
	if err := jobFilters.Set(rules); err != nil {
		t.Fatal(err)
	}
	for _, j := range []store.Job{
		{Title: "Go Developer", Company: "ACME"},
		{Title: "Go Developer", Company: "Spamcorp GmbH"},
	} {
		if _, err := jobsStore.Add(j); err != nil {
			t.Fatal(err)
		}
	}

	app := newTestApp(t, func(api fiber.Router) {
		handler.NewJobsHandler(jobsStore, jobFilters).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "GET", "/api/jobs?filtered=true", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	got := body["jobs"].([]any)
	if len(got) != 1 {
		t.Fatalf("filtered list has %d jobs, want 1", len(got))
	}
	if got[0].(map[string]any)["company"] != "ACME" {
		t.Fatalf("wrong survivor: %v", got[0])
	}
}

func TestRunsLifecycleOverHTTP(t *testing.T) {
	runs, err := runlog.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewRunsHandler(runs).RegisterRoutes(api)
	})

	status, body := doJSON(t, app, "POST", "/api/runs", map[string]any{
		"platform": "LinkedIn",
		"url":      "https://www.linkedin.com/jobs/view/1",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d: %v", status, body)
	}
	run := body["run"].(map[string]any)
	id := run["id"].(string)
	if run["status"] != "running" {
		t.Fatalf("fresh run status = %v", run["status"])
	}

	status, body = doJSON(t, app, "POST", "/api/runs/"+id+"/actions", map[string]any{
		"type":   "navigate",
		"value":  "https://www.linkedin.com/jobs/view/1",
		"result": "success",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("append status = %d: %v", status, body)
	}
	if body["action"].(map[string]any)["step"] != float64(1) {
		t.Fatalf("first action step = %v", body["action"])
	}

	status, body = doJSON(t, app, "PUT", "/api/runs/"+id, map[string]any{"status": "succeeded"})
	if status != fiber.StatusOK {
		t.Fatalf("finish status = %d: %v", status, body)
	}

	status, body = doJSON(t, app, "GET", "/api/runs/"+id+"/actions", nil)
	if status != fiber.StatusOK || len(body["actions"].([]any)) != 1 {
		t.Fatalf("actions = %d %v", status, body)
	}

	status, _ = doJSON(t, app, "PUT", "/api/runs/missing", map[string]any{"status": "failed"})
	if status != fiber.StatusNotFound {
		t.Fatalf("missing run status = %d, want 404", status)
	}
}

func TestJobsCreateRejectsBadStatus(t *testing.T) {
	jobsStore, err := store.NewJobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, func(api fiber.Router) {
		handler.NewJobsHandler(jobsStore, nil).RegisterRoutes(api)
	})

	status, _ := doJSON(t, app, "POST", "/api/jobs", map[string]any{
		"title":   "Go Developer",
		"company": "ACME",
		"status":  "ghosted",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}
