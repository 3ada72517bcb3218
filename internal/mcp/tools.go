package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"jobwerk/internal/jobs"
	"jobwerk/internal/store"
)

type SearchJobsParams struct {
	Keywords string `json:"keywords" jsonschema:"Job title or keywords to search for, e.g. Python Developer"`
	Location string `json:"location,omitempty" jsonschema:"Location filter, defaults to Germany"`
	Platform string `json:"platform,omitempty" jsonschema:"One of linkedin, indeed, stepstone, xing, jobboerse; empty searches all"`
}

type GetJobsParams struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by tracker status (found, applied, interview, rejected, offered)"`
}

type AddJobParams struct {
	Title    string `json:"title" jsonschema:"Job title"`
	Company  string `json:"company" jsonschema:"Company name"`
	Platform string `json:"platform,omitempty"`
	Location string `json:"location,omitempty"`
	Salary   string `json:"salary,omitempty"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateJobStatusParams struct {
	JobID  string `json:"jobId" jsonschema:"Tracker job ID"`
	Status string `json:"status" jsonschema:"New status: found, applied, interview, rejected or offered"`
	Notes  string `json:"notes,omitempty" jsonschema:"Optional note to attach"`
}

type DeleteJobParams struct {
	JobID string `json:"jobId" jsonschema:"Tracker job ID"`
}

type UpdateFiltersParams struct {
	Keywords           []string `json:"keywords,omitempty" jsonschema:"Search keywords for the discovery loop"`
	Locations          []string `json:"locations,omitempty"`
	SalaryMin          *int     `json:"salaryMin,omitempty"`
	BlacklistCompanies []string `json:"blacklistCompanies,omitempty"`
	WhitelistCompanies []string `json:"whitelistCompanies,omitempty"`
}

type AddAnswerParams struct {
	Field    string `json:"field" jsonschema:"Normalized field key, e.g. years_of_experience"`
	Question string `json:"question" jsonschema:"The question text as the form shows it"`
	Answer   string `json:"answer" jsonschema:"The answer to store"`
}

type ResolveQuestionParams struct {
	QuestionID string `json:"questionId" jsonschema:"Pending question ID"`
	Answer     string `json:"answer" jsonschema:"The answer that resolves it"`
}

type emptyParams struct{}

func registerTools(s *sdkmcp.Server, deps Deps) {
	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "search_jobs",
		Description: "Search German job boards (LinkedIn, Indeed, StepStone, Xing, Jobbörse) live through the browser",
	}, deps.searchJobs)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_jobs",
		Description: "List tracked jobs from the application tracker, optionally filtered by status",
	}, deps.getJobs)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "add_job",
		Description: "Add a job to the application tracker",
	}, deps.addJob)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "update_job_status",
		Description: "Move a tracked job to a new pipeline status",
	}, deps.updateJobStatus)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "delete_job",
		Description: "Remove a job from the tracker",
	}, deps.deleteJob)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_filters",
		Description: "Read the saved search preferences (keywords, locations, salary floor, company lists)",
	}, deps.getFilters)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "update_filters",
		Description: "Update search preferences; omitted fields keep their current value",
	}, deps.updateFilters)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_answers",
		Description: "Read the saved application-form answer library",
	}, deps.getAnswers)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "add_answer",
		Description: "Save an answer for a recurring application-form question",
	}, deps.addAnswer)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_pending_questions",
		Description: "List form questions the automation could not answer and is waiting on",
	}, deps.getPendingQuestions)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "resolve_question",
		Description: "Answer a pending question; the answer is filed into the library for next time",
	}, deps.resolveQuestion)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_stats",
		Description: "Summarize the tracker: counts per status and per platform, plus recent automation runs",
	}, deps.getStats)
}

func (d Deps) searchJobs(ctx context.Context, req *sdkmcp.CallToolRequest, params *SearchJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if d.Searcher == nil {
		return errorResult("search is unavailable: no browser session in this process"), nil, nil
	}
	if params.Keywords == "" {
		return errorResult("keywords is required"), nil, nil
	}
	location := params.Location
	if location == "" {
		location = "Germany"
	}

	platform, err := jobs.ParsePlatform(params.Platform)
	if err != nil {
		return errorResult("unknown platform: " + params.Platform), nil, nil
	}

	var found []jobs.Posting
	if platform == jobs.PlatformAll {
		found, _ = d.Searcher.SearchAll(ctx, params.Keywords, location)
	} else {
		found, err = d.Searcher.SearchOne(ctx, platform, params.Keywords, location)
		if err != nil {
			return errorResult("search failed: " + err.Error()), nil, nil
		}
	}

	return jsonResult(map[string]any{"count": len(found), "jobs": found}), nil, nil
}

func (d Deps) getJobs(ctx context.Context, req *sdkmcp.CallToolRequest, params *GetJobsParams) (*sdkmcp.CallToolResult, any, error) {
	list, err := d.Jobs.List()
	if err != nil {
		return nil, nil, err
	}
	if params.Status != "" {
		filtered := make([]store.Job, 0, len(list))
		for _, j := range list {
			if j.Status == params.Status {
				filtered = append(filtered, j)
			}
		}
		list = filtered
	}
	return jsonResult(map[string]any{"count": len(list), "jobs": list}), nil, nil
}

func (d Deps) addJob(ctx context.Context, req *sdkmcp.CallToolRequest, params *AddJobParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Title == "" || params.Company == "" {
		return errorResult("title and company are required"), nil, nil
	}
	j, err := d.Jobs.Add(store.Job{
		Title:    params.Title,
		Company:  params.Company,
		Platform: params.Platform,
		Location: params.Location,
		Salary:   params.Salary,
		URL:      params.URL,
		Notes:    params.Notes,
	})
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(map[string]any{"job": j}), nil, nil
}

func (d Deps) updateJobStatus(ctx context.Context, req *sdkmcp.CallToolRequest, params *UpdateJobStatusParams) (*sdkmcp.CallToolResult, any, error) {
	if !store.ValidJobStatus(params.Status) {
		return errorResult("invalid status: " + params.Status), nil, nil
	}
	patch := store.JobPatch{Status: &params.Status}
	if params.Notes != "" {
		patch.Notes = &params.Notes
	}
	j, err := d.Jobs.Update(params.JobID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResult("job not found: " + params.JobID), nil, nil
		}
		return nil, nil, err
	}
	return jsonResult(map[string]any{"job": j}), nil, nil
}

func (d Deps) deleteJob(ctx context.Context, req *sdkmcp.CallToolRequest, params *DeleteJobParams) (*sdkmcp.CallToolResult, any, error) {
	if err := d.Jobs.Delete(params.JobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResult("job not found: " + params.JobID), nil, nil
		}
		return nil, nil, err
	}
	return textResult("deleted " + params.JobID), nil, nil
}

func (d Deps) getFilters(ctx context.Context, req *sdkmcp.CallToolRequest, params *emptyParams) (*sdkmcp.CallToolResult, any, error) {
	f, err := d.Filters.Get()
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(f), nil, nil
}

func (d Deps) updateFilters(ctx context.Context, req *sdkmcp.CallToolRequest, params *UpdateFiltersParams) (*sdkmcp.CallToolResult, any, error) {
	f, err := d.Filters.Get()
	if err != nil {
		return nil, nil, err
	}

	if params.Keywords != nil {
		f.Keywords = params.Keywords
	}
	if params.Locations != nil {
		f.Locations = params.Locations
	}
	if params.SalaryMin != nil {
		f.SalaryMin = *params.SalaryMin
	}
	if params.BlacklistCompanies != nil {
		f.BlacklistCompanies = params.BlacklistCompanies
	}
	if params.WhitelistCompanies != nil {
		f.WhitelistCompanies = params.WhitelistCompanies
	}

	if err := d.Filters.Set(f); err != nil {
		return nil, nil, err
	}
	return jsonResult(f), nil, nil
}

func (d Deps) getAnswers(ctx context.Context, req *sdkmcp.CallToolRequest, params *emptyParams) (*sdkmcp.CallToolResult, any, error) {
	fields, _, err := d.Answers.Get()
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(map[string]any{"fields": fields}), nil, nil
}

func (d Deps) addAnswer(ctx context.Context, req *sdkmcp.CallToolRequest, params *AddAnswerParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Field == "" || params.Answer == "" {
		return errorResult("field and answer are required"), nil, nil
	}
	ans, err := d.Answers.AddAnswer(params.Field, params.Answer, params.Answer, params.Question)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(map[string]any{"answer": ans}), nil, nil
}

func (d Deps) getPendingQuestions(ctx context.Context, req *sdkmcp.CallToolRequest, params *emptyParams) (*sdkmcp.CallToolResult, any, error) {
	_, pending, err := d.Answers.Get()
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(map[string]any{"count": len(pending), "pendingQuestions": pending}), nil, nil
}

func (d Deps) resolveQuestion(ctx context.Context, req *sdkmcp.CallToolRequest, params *ResolveQuestionParams) (*sdkmcp.CallToolResult, any, error) {
	if params.QuestionID == "" || params.Answer == "" {
		return errorResult("questionId and answer are required"), nil, nil
	}
	ans, err := d.Answers.ResolveQuestion(params.QuestionID, params.Answer, params.Answer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResult("pending question not found: " + params.QuestionID), nil, nil
		}
		return nil, nil, err
	}
	return jsonResult(map[string]any{"answer": ans}), nil, nil
}

func (d Deps) getStats(ctx context.Context, req *sdkmcp.CallToolRequest, params *emptyParams) (*sdkmcp.CallToolResult, any, error) {
	list, err := d.Jobs.List()
	if err != nil {
		return nil, nil, err
	}

	byStatus := map[string]int{}
	byPlatform := map[string]int{}
	for _, j := range list {
		byStatus[j.Status]++
		if j.Platform != "" {
			byPlatform[j.Platform]++
		}
	}

	stats := map[string]any{
		"total":      len(list),
		"byStatus":   byStatus,
		"byPlatform": byPlatform,
	}
	if d.Runs != nil {
		if runs, err := d.Runs.List(); err == nil {
			stats["runs"] = len(runs)
		}
	}
	return jsonResult(stats), nil, nil
}

func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

func errorResult(msg string) *sdkmcp.CallToolResult {
	res := textResult(msg)
	res.IsError = true
	return res
}

func jsonResult(v any) *sdkmcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encode result: %v", err))
	}
	return textResult(string(b))
}
