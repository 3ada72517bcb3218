package store

import "sync"

// Filters is the simple search-preference document (filters.json).
type Filters struct {
	Keywords           []string `json:"keywords"`
	Locations          []string `json:"locations"`
	SalaryMin          int      `json:"salaryMin"`
	SalaryMax          int      `json:"salaryMax,omitempty"`
	RequireVisa        bool     `json:"requireVisa"`
	BlacklistCompanies []string `json:"blacklistCompanies"`
	WhitelistCompanies []string `json:"whitelistCompanies"`
}

func defaultFilters() Filters {
	return Filters{
		Keywords:           []string{},
		Locations:          []string{"Germany"},
		BlacklistCompanies: []string{},
		WhitelistCompanies: []string{},
	}
}

type FilterStore struct {
	mu   sync.Mutex
	path string
}

func NewFilterStore(dataDir string) (*FilterStore, error) {
	s := &FilterStore{path: dataDir + "/filters.json"}
	if err := ensureFile(s.path, defaultFilters()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FilterStore) Get() (Filters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var f Filters
	if err := readJSON(s.path, &f); err != nil {
		return defaultFilters(), err
	}
	return f, nil
}

func (s *FilterStore) Set(f Filters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, f)
}

// JobFilters is the advanced filter document (job-filters.json) consumed
// by the post-hoc filtering layer.
type JobFilters struct {
	Blacklist struct {
		Companies []string `json:"companies"`
		Keywords  []string `json:"keywords"`
	} `json:"blacklist"`
	Whitelist struct {
		Companies []string `json:"companies"`
	} `json:"whitelist"`
	Salary struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"salary"`
	WorkType struct {
		Remote bool `json:"remote"`
		Hybrid bool `json:"hybrid"`
		Onsite bool `json:"onsite"`
	} `json:"workType"`
	Visa struct {
		RequiresSponsorship bool `json:"requiresSponsorship"`
	} `json:"visa"`
}

func defaultJobFilters() JobFilters {
	var f JobFilters
	f.Blacklist.Companies = []string{}
	f.Blacklist.Keywords = []string{}
	f.Whitelist.Companies = []string{"SAP", "Bosch", "Siemens"}
	f.Salary.Min = 50000
	f.Salary.Max = 120000
	f.WorkType.Remote = true
	f.WorkType.Hybrid = true
	f.WorkType.Onsite = true
	return f
}

type JobFilterStore struct {
	mu   sync.Mutex
	path string
}

func NewJobFilterStore(dataDir string) (*JobFilterStore, error) {
	s := &JobFilterStore{path: dataDir + "/job-filters.json"}
	if err := ensureFile(s.path, defaultJobFilters()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JobFilterStore) Get() (JobFilters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var f JobFilters
	if err := readJSON(s.path, &f); err != nil {
		return defaultJobFilters(), err
	}
	return f, nil
}

func (s *JobFilterStore) Set(f JobFilters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, f)
}
