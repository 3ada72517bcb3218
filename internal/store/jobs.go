package store

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Job is a tracked posting in the user's pipeline. It carries the fields a
// scraped posting has plus the persistence-layer identity and status the
// store assigns; the scraper-side extraction ID is not reused here.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Platform    string `json:"platform"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Status      string `json:"status"`
	AppliedAt   string `json:"appliedAt"`
	Notes       string `json:"notes,omitempty"`
}

// JobStatuses is the user-editable status pipeline. "pending" is a legacy
// value older data files still contain.
var JobStatuses = []string{"found", "applied", "interview", "rejected", "offered", "pending"}

func ValidJobStatus(s string) bool {
	for _, v := range JobStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// JobPatch carries a partial update; nil fields are left unchanged.
type JobPatch struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Platform    *string `json:"platform"`
	Location    *string `json:"location"`
	Salary      *string `json:"salary"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

type jobsDoc struct {
	Jobs []Job `json:"jobs"`
}

type JobStore struct {
	mu   sync.Mutex
	path string
}

func NewJobStore(dataDir string) (*JobStore, error) {
	s := &JobStore{path: dataDir + "/applied.json"}
	if err := ensureFile(s.path, jobsDoc{Jobs: []Job{}}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JobStore) List() ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Jobs, nil
}

// Add assigns identity, a default status and the applied date, then
// prepends so the newest entry lists first.
func (s *JobStore) Add(j Job) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return Job{}, err
	}

	if j.ID == "" {
		j.ID = fmt.Sprintf("%d", time.Now().UnixMilli())
	}
	if strings.TrimSpace(j.Status) == "" {
		j.Status = "found"
	}
	if j.AppliedAt == "" {
		j.AppliedAt = time.Now().UTC().Format("2006-01-02")
	}

	doc.Jobs = append([]Job{j}, doc.Jobs...)
	if err := writeJSON(s.path, doc); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *JobStore) Update(id string, p JobPatch) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return Job{}, err
	}

	for i := range doc.Jobs {
		if doc.Jobs[i].ID != id {
			continue
		}
		applyPatch(&doc.Jobs[i], p)
		if err := writeJSON(s.path, doc); err != nil {
			return Job{}, err
		}
		return doc.Jobs[i], nil
	}
	return Job{}, ErrNotFound
}

func (s *JobStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	kept := doc.Jobs[:0]
	found := false
	for _, j := range doc.Jobs {
		if j.ID == id {
			found = true
			continue
		}
		kept = append(kept, j)
	}
	if !found {
		return ErrNotFound
	}
	doc.Jobs = kept
	return writeJSON(s.path, doc)
}

// HasURL reports whether a posting with this URL is already tracked. Used
// by the discovery loop as a second guard behind the seen cache.
func (s *JobStore) HasURL(url string) (bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return false, err
	}
	for _, j := range doc.Jobs {
		if j.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (s *JobStore) read() (jobsDoc, error) {
	var doc jobsDoc
	if err := readJSON(s.path, &doc); err != nil {
		return jobsDoc{Jobs: []Job{}}, err
	}
	if doc.Jobs == nil {
		doc.Jobs = []Job{}
	}
	return doc, nil
}

func applyPatch(j *Job, p JobPatch) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Platform != nil {
		j.Platform = *p.Platform
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.URL != nil {
		j.URL = *p.URL
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Notes != nil {
		j.Notes = *p.Notes
	}
}
