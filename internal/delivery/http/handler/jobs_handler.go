package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/dto"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/filter"
	"jobwerk/internal/store"
)

// JobsHandler serves the application tracker CRUD.
type JobsHandler struct {
	jobs       *store.JobStore
	jobFilters *store.JobFilterStore
}

func NewJobsHandler(jobs *store.JobStore, jobFilters *store.JobFilterStore) *JobsHandler {
	return &JobsHandler{jobs: jobs, jobFilters: jobFilters}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/jobs", h.HandleList)
	r.Post("/jobs", h.HandleCreate)
	r.Patch("/jobs/:id", h.HandleUpdate)
	r.Delete("/jobs/:id", h.HandleDelete)
}

func (h *JobsHandler) HandleList(c fiber.Ctx) error {
	list, err := h.jobs.List()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	status := c.Query("status")
	if status != "" {
		filtered := make([]store.Job, 0, len(list))
		for _, j := range list {
			if j.Status == status {
				filtered = append(filtered, j)
			}
		}
		list = filtered
	}

	// ?filtered=true runs the advanced blacklist/salary rules server-side.
	if c.Query("filtered") == "true" && h.jobFilters != nil {
		rules, err := h.jobFilters.Get()
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
		list = filter.Apply(list, rules)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"jobs": list})
}

func (h *JobsHandler) HandleCreate(c fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	j, err := h.jobs.Add(store.Job{
		Title:       req.Title,
		Company:     req.Company,
		Platform:    req.Platform,
		Location:    req.Location,
		Salary:      req.Salary,
		Description: req.Description,
		URL:         req.URL,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"success": true, "job": j})
}

func (h *JobsHandler) HandleUpdate(c fiber.Ctx) error {
	id := c.Params("id")

	var req dto.JobUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	j, err := h.jobs.Update(id, store.JobPatch{
		Title:       req.Title,
		Company:     req.Company,
		Platform:    req.Platform,
		Location:    req.Location,
		Salary:      req.Salary,
		Description: req.Description,
		URL:         req.URL,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"success": true, "job": j})
}

func (h *JobsHandler) HandleDelete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.jobs.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Message(c, fiber.StatusOK, true, "Job deleted")
}
