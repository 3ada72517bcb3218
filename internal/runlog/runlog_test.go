package runlog

import (
	"testing"
)

func TestStoreOrdinalsStrictlyIncreasing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	run, err := s.Create("job-1", "Backend Engineer", "LinkedIn", "https://example.com/job/1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if run.Status != "running" {
		t.Fatalf("new run should be running, got %q", run.Status)
	}

	types := []string{ActionNavigate, ActionWait, ActionClick, ActionClick}
	for i, typ := range types {
		a, err := s.AppendAction(run.ID, Action{Type: typ, Result: ResultSuccess})
		if err != nil {
			t.Fatalf("AppendAction: %v", err)
		}
		if a.Step != i+1 {
			t.Fatalf("step %d assigned ordinal %d", i+1, a.Step)
		}
		if a.Timestamp == "" {
			t.Fatalf("timestamp not set")
		}
	}

	got, err := s.Get(run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i, a := range got.Actions {
		if a.Step != i+1 {
			t.Fatalf("persisted ordinal mismatch at %d: %d", i, a.Step)
		}
	}
}

func TestStoreStatusAndList(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	run, _ := s.Create("", "Data Engineer", "Indeed DE", "https://de.indeed.com/x")
	_, _ = s.AppendAction(run.ID, Action{Type: ActionNavigate, Result: ResultSuccess})

	if err := s.SetStatus(run.ID, "failed"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 run, got %d", len(list))
	}
	if list[0].Status != "failed" || list[0].ActionCount != 1 {
		t.Fatalf("unexpected summary: %+v", list[0])
	}

	if _, err := s.Get("run-missing"); err != ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRecorderNotify(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	run, _ := s.Create("", "", "Xing", "https://www.xing.com/jobs/1")

	var notified []Action
	rec := NewRecorder(s, run.ID, func(runID string, a Action) {
		if runID != run.ID {
			t.Fatalf("notify for wrong run %q", runID)
		}
		notified = append(notified, a)
	})

	rec.Navigate("https://www.xing.com/jobs/1", ResultSuccess, "")
	rec.Click("button.apply", ResultFailed, "not found")
	rec.Finish("failed")

	if len(notified) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notified))
	}
	if notified[1].Step != 2 || notified[1].Error != "not found" {
		t.Fatalf("unexpected action payload: %+v", notified[1])
	}

	got, _ := s.Get(run.ID)
	if got.Status != "failed" || got.CompletedAt == "" {
		t.Fatalf("run not finished: %+v", got)
	}
}
