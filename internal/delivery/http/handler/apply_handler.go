package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/dto"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/jobs"
)

type Applier interface {
	Apply(ctx context.Context, req jobs.ApplyRequest) (jobs.ApplyResult, error)
}

type ApplyHandler struct {
	applier Applier
}

func NewApplyHandler(applier Applier) *ApplyHandler {
	return &ApplyHandler{applier: applier}
}

func (h *ApplyHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/apply", h.HandleApply)
}

func (h *ApplyHandler) HandleApply(c fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	res, err := h.applier.Apply(c.Context(), jobs.ApplyRequest{
		JobURL:     req.JobURL,
		ResumePath: req.ResumePath,
		Platform:   req.Platform,
	})
	if err != nil {
		if errors.Is(err, jobs.ErrUnknownPlatform) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unknown platform: "+req.Platform, nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Message(c, fiber.StatusOK, res.Success, res.Message)
}
