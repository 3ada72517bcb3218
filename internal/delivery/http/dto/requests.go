package dto

type SearchRequest struct {
	Keywords string `json:"keywords" validate:"required,min=1,max=200"`
	Location string `json:"location"`
	Platform string `json:"platform"`
}

type ApplyRequest struct {
	JobURL     string `json:"jobUrl" validate:"required,url"`
	Platform   string `json:"platform" validate:"required"`
	ResumePath string `json:"resumePath"`
}

type JobCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Company     string `json:"company" validate:"required,min=1"`
	Platform    string `json:"platform"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=found applied interview rejected offered pending"`
	Notes       string `json:"notes"`
}

// JobUpdateRequest mirrors store.JobPatch: absent fields stay untouched.
type JobUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Company     *string `json:"company" validate:"omitempty,min=1"`
	Platform    *string `json:"platform"`
	Location    *string `json:"location"`
	Salary      *string `json:"salary"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Status      *string `json:"status" validate:"omitempty,oneof=found applied interview rejected offered pending"`
	Notes       *string `json:"notes"`
}

type AnswerRequest struct {
	Field    string `json:"field" validate:"required,min=1"`
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer" validate:"required,min=1"`
}

type PendingQuestionRequest struct {
	Question      string `json:"question" validate:"required,min=1"`
	NormalizedKey string `json:"normalizedKey" validate:"required,min=1"`
	Platform      string `json:"platform"`
	JobURL        string `json:"jobUrl"`
	RiskLevel     string `json:"riskLevel" validate:"omitempty,oneof=low medium high"`
}

type ResolveQuestionRequest struct {
	QuestionID string `json:"questionId" validate:"required,min=1"`
	Answer     string `json:"answer" validate:"required,min=1"`
}

type ResumeProfileRequest struct {
	Name    string   `json:"name" validate:"required,min=1"`
	Email   string   `json:"email" validate:"omitempty,email"`
	Phone   string   `json:"phone"`
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
}

type RunCreateRequest struct {
	JobID    string `json:"jobId"`
	JobTitle string `json:"jobTitle"`
	Platform string `json:"platform" validate:"required,min=1"`
	URL      string `json:"url" validate:"required,url"`
}

type RunActionRequest struct {
	Type     string `json:"type" validate:"required,oneof=click type navigate wait screenshot"`
	Selector string `json:"selector"`
	Value    string `json:"value"`
	Result   string `json:"result" validate:"required,oneof=success failed pending"`
	Error    string `json:"error"`
}

type RunStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=running succeeded failed"`
}

type SessionLogRequest struct {
	Type    string `json:"type" validate:"required,min=1"`
	Message string `json:"message" validate:"required,min=1"`
	Level   string `json:"level" validate:"omitempty,oneof=debug info warn error"`
}
