package store

import (
	"path/filepath"
	"sync"
	"time"
)

// ResumeProfile is the structured resume document (resume.json). The text
// content is extracted from the uploaded PDF by an external collaborator;
// this store only keeps the artifact and the profile fields.
type ResumeProfile struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
}

type ResumeMeta struct {
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

type ResumeStore struct {
	mu      sync.Mutex
	dataDir string
}

func NewResumeStore(dataDir string) (*ResumeStore, error) {
	s := &ResumeStore{dataDir: dataDir}
	if err := ensureFile(s.profilePath(), ResumeProfile{Skills: []string{}}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ResumeStore) profilePath() string { return filepath.Join(s.dataDir, "resume.json") }
func (s *ResumeStore) metaPath() string    { return filepath.Join(s.dataDir, "resume-meta.json") }

// FilePath is where the uploaded resume PDF lives; the apply orchestrator
// hands this path to the platform routines.
func (s *ResumeStore) FilePath() string { return filepath.Join(s.dataDir, "resume.pdf") }

func (s *ResumeStore) Get() (ResumeProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p ResumeProfile
	if err := readJSON(s.profilePath(), &p); err != nil {
		return ResumeProfile{Skills: []string{}}, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func (s *ResumeStore) Set(p ResumeProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.profilePath(), p)
}

// RecordUpload writes the metadata sidecar after the PDF was saved.
func (s *ResumeStore) RecordUpload(filename string, size int64) (ResumeMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta := ResumeMeta{
		Filename:   filename,
		Size:       size,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := writeJSON(s.metaPath(), meta); err != nil {
		return ResumeMeta{}, err
	}
	return meta, nil
}

func (s *ResumeStore) Meta() (ResumeMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var m ResumeMeta
	if err := readJSON(s.metaPath(), &m); err != nil {
		return ResumeMeta{}, ErrNotFound
	}
	return m, nil
}
