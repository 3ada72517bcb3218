package store

import (
	"sync"
	"time"
)

// SessionLogStore keeps the rolling session log (logs.json): loosely
// structured events the front ends post, newest first, capped at 100.

const sessionLogCap = 100

type sessionLogDoc struct {
	Sessions []map[string]any `json:"sessions"`
}

type SessionLogStore struct {
	mu   sync.Mutex
	path string
}

func NewSessionLogStore(dataDir string) (*SessionLogStore, error) {
	s := &SessionLogStore{path: dataDir + "/logs.json"}
	if err := ensureFile(s.path, sessionLogDoc{Sessions: []map[string]any{}}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SessionLogStore) List() ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Sessions, nil
}

func (s *SessionLogStore) Append(entry map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	if entry == nil {
		entry = map[string]any{}
	}
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	doc.Sessions = append([]map[string]any{entry}, doc.Sessions...)
	if len(doc.Sessions) > sessionLogCap {
		doc.Sessions = doc.Sessions[:sessionLogCap]
	}
	return writeJSON(s.path, doc)
}

func (s *SessionLogStore) read() (sessionLogDoc, error) {
	var doc sessionLogDoc
	if err := readJSON(s.path, &doc); err != nil {
		return sessionLogDoc{}, err
	}
	if doc.Sessions == nil {
		doc.Sessions = []map[string]any{}
	}
	return doc, nil
}
