package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/store"
)

// FiltersHandler serves both filter documents: the simple search
// preferences and the advanced job-filter rules.
type FiltersHandler struct {
	filters    *store.FilterStore
	jobFilters *store.JobFilterStore
}

func NewFiltersHandler(filters *store.FilterStore, jobFilters *store.JobFilterStore) *FiltersHandler {
	return &FiltersHandler{filters: filters, jobFilters: jobFilters}
}

func (h *FiltersHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/filters", h.HandleGetFilters)
	r.Put("/filters", h.HandlePutFilters)
	r.Get("/job-filters", h.HandleGetJobFilters)
	r.Put("/job-filters", h.HandlePutJobFilters)
}

func (h *FiltersHandler) HandleGetFilters(c fiber.Ctx) error {
	f, err := h.filters.Get()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, f)
}

func (h *FiltersHandler) HandlePutFilters(c fiber.Ctx) error {
	var f store.Filters
	if err := c.Bind().Body(&f); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := h.filters.Set(f); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Message(c, fiber.StatusOK, true, "Filters updated")
}

func (h *FiltersHandler) HandleGetJobFilters(c fiber.Ctx) error {
	f, err := h.jobFilters.Get()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, f)
}

func (h *FiltersHandler) HandlePutJobFilters(c fiber.Ctx) error {
	var f store.JobFilters
	if err := c.Bind().Body(&f); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := h.jobFilters.Set(f); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Message(c, fiber.StatusOK, true, "Job filters updated")
}
