package store

import (
	"fmt"
	"sync"
	"time"
)

// The answer library (answers.json) pre-fills recurring application-form
// questions. Fields are keyed by a normalized field name; each keeps the
// answers given so far. Questions the automation could not answer land in
// PendingQuestions until the user resolves them.

type Answer struct {
	ID            string `json:"id"`
	NormalizedKey string `json:"normalizedKey"`
	Value         string `json:"value"`
	Text          string `json:"text"`
	Label         string `json:"label"`
	CreatedAt     string `json:"createdAt"`
}

type AnswerField struct {
	NormalizedKey string   `json:"normalizedKey"`
	Label         string   `json:"label"`
	Answers       []Answer `json:"answers"`
}

type PendingQuestion struct {
	ID              string `json:"id"`
	RunID           string `json:"runId,omitempty"`
	JobID           string `json:"jobId,omitempty"`
	Platform        string `json:"platform,omitempty"`
	FieldName       string `json:"fieldName"`
	NormalizedKey   string `json:"normalizedKey"`
	RiskLevel       string `json:"riskLevel"`
	SuggestedAnswer string `json:"suggestedAnswer,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

type answersDoc struct {
	Fields           []AnswerField     `json:"fields"`
	PendingQuestions []PendingQuestion `json:"pendingQuestions"`
}

type AnswerStore struct {
	mu   sync.Mutex
	path string
}

func NewAnswerStore(dataDir string) (*AnswerStore, error) {
	s := &AnswerStore{path: dataDir + "/answers.json"}
	if err := ensureFile(s.path, answersDoc{Fields: []AnswerField{}, PendingQuestions: []PendingQuestion{}}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AnswerStore) Get() ([]AnswerField, []PendingQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, nil, err
	}
	return doc.Fields, doc.PendingQuestions, nil
}

// AddAnswer appends an answer under its normalized key, creating the field
// on first use.
func (s *AnswerStore) AddAnswer(normalizedKey, value, text, label string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return Answer{}, err
	}

	ans := Answer{
		ID:            fmt.Sprintf("ans-%d", time.Now().UnixMilli()),
		NormalizedKey: normalizedKey,
		Value:         value,
		Text:          text,
		Label:         label,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	placed := false
	for i := range doc.Fields {
		if doc.Fields[i].NormalizedKey == normalizedKey {
			doc.Fields[i].Answers = append(doc.Fields[i].Answers, ans)
			placed = true
			break
		}
	}
	if !placed {
		doc.Fields = append(doc.Fields, AnswerField{
			NormalizedKey: normalizedKey,
			Label:         label,
			Answers:       []Answer{ans},
		})
	}

	if err := writeJSON(s.path, doc); err != nil {
		return Answer{}, err
	}
	return ans, nil
}

func (s *AnswerStore) AddPendingQuestion(q PendingQuestion) (PendingQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return PendingQuestion{}, err
	}

	if q.ID == "" {
		q.ID = fmt.Sprintf("pq-%d", time.Now().UnixMilli())
	}
	if q.RiskLevel == "" {
		q.RiskLevel = "medium"
	}
	q.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	doc.PendingQuestions = append(doc.PendingQuestions, q)
	if err := writeJSON(s.path, doc); err != nil {
		return PendingQuestion{}, err
	}
	return q, nil
}

// ResolveQuestion removes a pending question and records the given answer
// under the question's normalized key.
func (s *AnswerStore) ResolveQuestion(questionID, value, text string) (Answer, error) {
	s.mu.Lock()
	var question *PendingQuestion
	doc, err := s.read()
	if err != nil {
		s.mu.Unlock()
		return Answer{}, err
	}

	kept := doc.PendingQuestions[:0]
	for i := range doc.PendingQuestions {
		if doc.PendingQuestions[i].ID == questionID {
			q := doc.PendingQuestions[i]
			question = &q
			continue
		}
		kept = append(kept, doc.PendingQuestions[i])
	}
	if question == nil {
		s.mu.Unlock()
		return Answer{}, ErrNotFound
	}
	doc.PendingQuestions = kept
	if err := writeJSON(s.path, doc); err != nil {
		s.mu.Unlock()
		return Answer{}, err
	}
	s.mu.Unlock()

	return s.AddAnswer(question.NormalizedKey, value, text, question.FieldName)
}

func (s *AnswerStore) read() (answersDoc, error) {
	var doc answersDoc
	if err := readJSON(s.path, &doc); err != nil {
		return answersDoc{}, err
	}
	if doc.Fields == nil {
		doc.Fields = []AnswerField{}
	}
	if doc.PendingQuestions == nil {
		doc.PendingQuestions = []PendingQuestion{}
	}
	return doc, nil
}
