package mcp

import (
	"context"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"jobwerk/internal/store"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	dir := t.TempDir()

	jobsStore, err := store.NewJobStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	filters, err := store.NewFilterStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	answers, err := store.NewAnswerStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	return Deps{Jobs: jobsStore, Filters: filters, Answers: answers}
}

func resultText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(*sdkmcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func TestAddAndGetJobs(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	res, _, err := d.addJob(ctx, nil, &AddJobParams{Title: "Go Developer", Company: "ACME"})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("addJob errored: %s", resultText(t, res))
	}

	res, _, err = d.getJobs(ctx, nil, &GetJobsParams{Status: "found"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, res), "Go Developer") {
		t.Fatalf("getJobs missing added job: %s", resultText(t, res))
	}
}

func TestUpdateJobStatusValidation(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	res, _, err := d.updateJobStatus(ctx, nil, &UpdateJobStatusParams{JobID: "1", Status: "ghosted"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "invalid status") {
		t.Fatalf("expected invalid-status error, got %s", resultText(t, res))
	}

	res, _, err = d.updateJobStatus(ctx, nil, &UpdateJobStatusParams{JobID: "nope", Status: "applied"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "not found") {
		t.Fatalf("expected not-found error, got %s", resultText(t, res))
	}
}

func TestUpdateFiltersMergesPartial(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	_, _, err := d.updateFilters(ctx, nil, &UpdateFiltersParams{Keywords: []string{"golang"}})
	if err != nil {
		t.Fatal(err)
	}

	f, err := d.Filters.Get()
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Keywords) != 1 || f.Keywords[0] != "golang" {
		t.Fatalf("keywords = %v", f.Keywords)
	}
	// Untouched field keeps its default.
	if len(f.Locations) != 1 || f.Locations[0] != "Germany" {
		t.Fatalf("locations = %v", f.Locations)
	}
}

func TestResolveQuestionFlow(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	q, err := d.Answers.AddPendingQuestion(store.PendingQuestion{
		FieldName:     "Years of Go experience?",
		NormalizedKey: "years_of_experience",
	})
	if err != nil {
		t.Fatal(err)
	}

	res, _, err := d.resolveQuestion(ctx, nil, &ResolveQuestionParams{QuestionID: q.ID, Answer: "5"})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("resolve failed: %s", resultText(t, res))
	}

	res, _, err = d.getPendingQuestions(ctx, nil, &emptyParams{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, res), `"count": 0`) {
		t.Fatalf("pending list should be empty: %s", resultText(t, res))
	}
}

func TestGetStats(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	for _, j := range []store.Job{
		{Title: "A", Company: "X", Platform: "LinkedIn", Status: "applied"},
		{Title: "B", Company: "Y", Platform: "LinkedIn"},
		{Title: "C", Company: "Z", Platform: "Indeed DE"},
	} {
		if _, err := d.Jobs.Add(j); err != nil {
			t.Fatal(err)
		}
	}

	res, _, err := d.getStats(ctx, nil, &emptyParams{})
	if err != nil {
		t.Fatal(err)
	}
	out := resultText(t, res)
	if !strings.Contains(out, `"total": 3`) || !strings.Contains(out, `"LinkedIn": 2`) {
		t.Fatalf("stats = %s", out)
	}
}
