package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/dto"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/runlog"
)

// RunsHandler exposes the per-attempt automation logs.
type RunsHandler struct {
	runs *runlog.Store
}

func NewRunsHandler(runs *runlog.Store) *RunsHandler {
	return &RunsHandler{runs: runs}
}

func (h *RunsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/runs", h.HandleList)
	r.Post("/runs", h.HandleCreate)
	r.Get("/runs/:id", h.HandleGet)
	r.Put("/runs/:id", h.HandleSetStatus)
	r.Get("/runs/:id/actions", h.HandleActions)
	r.Post("/runs/:id/actions", h.HandleAppendAction)
}

func (h *RunsHandler) HandleList(c fiber.Ctx) error {
	list, err := h.runs.List()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"runs": list})
}

func (h *RunsHandler) HandleGet(c fiber.Ctx) error {
	run, err := h.runs.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, runlog.ErrRunNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Run not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, run)
}

func (h *RunsHandler) HandleCreate(c fiber.Ctx) error {
	var req dto.RunCreateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	run, err := h.runs.Create(req.JobID, req.JobTitle, req.Platform, req.URL)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"success": true, "run": run})
}

func (h *RunsHandler) HandleSetStatus(c fiber.Ctx) error {
	var req dto.RunStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	if err := h.runs.SetStatus(c.Params("id"), req.Status); err != nil {
		if errors.Is(err, runlog.ErrRunNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Run not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Message(c, fiber.StatusOK, true, "Run updated")
}

func (h *RunsHandler) HandleAppendAction(c fiber.Ctx) error {
	var req dto.RunActionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	a, err := h.runs.AppendAction(c.Params("id"), runlog.Action{
		Type:     req.Type,
		Selector: req.Selector,
		Value:    req.Value,
		Result:   req.Result,
		Error:    req.Error,
	})
	if err != nil {
		if errors.Is(err, runlog.ErrRunNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Run not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"success": true, "action": a})
}

func (h *RunsHandler) HandleActions(c fiber.Ctx) error {
	run, err := h.runs.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, runlog.ErrRunNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Run not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"runId": run.ID, "actions": run.Actions})
}
