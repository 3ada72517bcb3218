// Package runlog is the durable record of apply attempts. Each run is one
// JSON file under <data>/runs/ holding the run metadata and its ordered
// action log; the apply orchestrator reports progress through a Recorder
// and a human reads the file afterwards to diagnose failures.
package runlog

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	ActionClick      = "click"
	ActionType       = "type"
	ActionNavigate   = "navigate"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
)

const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
	ResultPending = "pending"
)

type Action struct {
	Step       int    `json:"step"`
	Type       string `json:"type"`
	Selector   string `json:"selector,omitempty"`
	Value      string `json:"value,omitempty"`
	Result     string `json:"result"`
	Error      string `json:"error,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type Run struct {
	ID          string   `json:"id"`
	JobID       string   `json:"jobId,omitempty"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	Platform    string   `json:"platform"`
	URL         string   `json:"url"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
	CompletedAt string   `json:"completedAt,omitempty"`
	Actions     []Action `json:"actions"`
}

// RunSummary is the list view: metadata plus the action count, without the
// action bodies.
type RunSummary struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	ActionCount int    `json:"actionCount"`
}

var ErrRunNotFound = fmt.Errorf("runlog: run not found")

type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "runs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func newRunID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("run-%d-%s", time.Now().UnixMilli(), string(b))
}

func (s *Store) Create(jobID, jobTitle, platform, url string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := Run{
		ID:        newRunID(),
		JobID:     jobID,
		JobTitle:  jobTitle,
		Platform:  platform,
		URL:       url,
		Status:    "running",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Actions:   []Action{},
	}
	if err := writeJSON(s.runPath(run.ID), run); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) Get(id string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRun(id)
}

func (s *Store) List() ([]RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	out := make([]RunSummary, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		run, err := s.readRun(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, RunSummary{
			ID:          run.ID,
			JobTitle:    run.JobTitle,
			Platform:    run.Platform,
			Status:      run.Status,
			CreatedAt:   run.CreatedAt,
			ActionCount: len(run.Actions),
		})
	}
	return out, nil
}

// AppendAction assigns the next ordinal (previous count + 1, strictly
// increasing, never reused) and the timestamp, then persists.
func (s *Store) AppendAction(runID string, a Action) (Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.readRun(runID)
	if err != nil {
		return Action{}, err
	}

	a.Step = len(run.Actions) + 1
	a.Timestamp = time.Now().UTC().Format(time.RFC3339)

	run.Actions = append(run.Actions, a)
	if err := writeJSON(s.runPath(runID), run); err != nil {
		return Action{}, err
	}
	return a, nil
}

func (s *Store) SetStatus(runID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.readRun(runID)
	if err != nil {
		return err
	}
	run.Status = status
	run.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	return writeJSON(s.runPath(runID), run)
}

func (s *Store) runPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *Store) readRun(id string) (Run, error) {
	var run Run
	if err := readJSON(s.runPath(id), &run); err != nil {
		if os.IsNotExist(err) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, err
	}
	if run.Actions == nil {
		run.Actions = []Action{}
	}
	return run, nil
}
