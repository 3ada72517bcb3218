package store

import (
	"fmt"
	"testing"
)

func TestJobStoreAddListUpdateDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJobStore(dir)
	if err != nil {
		t.Fatalf("NewJobStore: %v", err)
	}

	first, err := s.Add(Job{Title: "Backend Engineer", Company: "Acme", Platform: "LinkedIn"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == "" || first.Status != "found" || first.AppliedAt == "" {
		t.Fatalf("defaults not applied: %+v", first)
	}

	second, err := s.Add(Job{ID: "fixed-id", Title: "Data Engineer", Company: "Globex", Platform: "Xing", Status: "applied"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("newest job should list first, got %s", list[0].ID)
	}

	status := "interview"
	updated, err := s.Update("fixed-id", JobPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "interview" || updated.Title != "Data Engineer" {
		t.Fatalf("patch misapplied: %+v", updated)
	}

	if _, err := s.Update("nope", JobPatch{Status: &status}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ = s.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 job after delete, got %d", len(list))
	}

	ok, err := s.HasURL("")
	if err != nil || ok {
		t.Fatalf("empty url must not match")
	}
}

func TestFilterStoresDefaults(t *testing.T) {
	dir := t.TempDir()

	fs, err := NewFilterStore(dir)
	if err != nil {
		t.Fatalf("NewFilterStore: %v", err)
	}
	f, err := fs.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(f.Locations) != 1 || f.Locations[0] != "Germany" {
		t.Fatalf("unexpected default locations: %v", f.Locations)
	}

	jfs, err := NewJobFilterStore(dir)
	if err != nil {
		t.Fatalf("NewJobFilterStore: %v", err)
	}
	jf, err := jfs.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if jf.Salary.Min != 50000 || jf.Salary.Max != 120000 {
		t.Fatalf("unexpected default salary range: %+v", jf.Salary)
	}
	if len(jf.Whitelist.Companies) != 3 {
		t.Fatalf("unexpected default whitelist: %v", jf.Whitelist.Companies)
	}
}

func TestAnswerStoreResolveMovesQuestion(t *testing.T) {
	dir := t.TempDir()
	s, err := NewAnswerStore(dir)
	if err != nil {
		t.Fatalf("NewAnswerStore: %v", err)
	}

	q, err := s.AddPendingQuestion(PendingQuestion{
		FieldName:     "Notice period",
		NormalizedKey: "notice_period",
		Platform:      "StepStone",
	})
	if err != nil {
		t.Fatalf("AddPendingQuestion: %v", err)
	}
	if q.RiskLevel != "medium" {
		t.Fatalf("expected default risk level, got %q", q.RiskLevel)
	}

	ans, err := s.ResolveQuestion(q.ID, "3 months", "My notice period is 3 months")
	if err != nil {
		t.Fatalf("ResolveQuestion: %v", err)
	}
	if ans.NormalizedKey != "notice_period" {
		t.Fatalf("answer filed under wrong key: %q", ans.NormalizedKey)
	}

	fields, pending, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("question should be resolved, still pending: %v", pending)
	}
	if len(fields) != 1 || len(fields[0].Answers) != 1 {
		t.Fatalf("answer not recorded: %+v", fields)
	}

	if _, err := s.ResolveQuestion("missing", "x", "y"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionLogCap(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSessionLogStore(dir)
	if err != nil {
		t.Fatalf("NewSessionLogStore: %v", err)
	}

	for i := 0; i < 105; i++ {
		if err := s.Append(map[string]any{"n": fmt.Sprintf("%d", i)}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 100 {
		t.Fatalf("expected cap at 100, got %d", len(list))
	}
	if list[0]["n"] != "104" {
		t.Fatalf("newest entry should be first, got %v", list[0]["n"])
	}
	if list[0]["timestamp"] == nil {
		t.Fatalf("timestamp not stamped")
	}
}
