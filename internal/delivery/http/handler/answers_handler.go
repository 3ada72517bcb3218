package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/dto"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/store"
)

// AnswersHandler serves the answer library: saved form answers plus the
// pending questions the automation could not answer on its own.
type AnswersHandler struct {
	answers *store.AnswerStore
}

func NewAnswersHandler(answers *store.AnswerStore) *AnswersHandler {
	return &AnswersHandler{answers: answers}
}

func (h *AnswersHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/answers", h.HandleList)
	r.Post("/answers", h.HandleAddAnswer)
	r.Get("/answers/pending-questions", h.HandlePendingQuestions)
	r.Post("/answers/pending-questions", h.HandleAddPendingQuestion)
	r.Post("/answers/resolve", h.HandleResolve)
}

func (h *AnswersHandler) HandleList(c fiber.Ctx) error {
	fields, pending, err := h.answers.Get()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"fields":           fields,
		"pendingQuestions": pending,
	})
}

func (h *AnswersHandler) HandleAddAnswer(c fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	ans, err := h.answers.AddAnswer(req.Field, req.Answer, req.Answer, req.Question)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"success": true, "answer": ans})
}

func (h *AnswersHandler) HandlePendingQuestions(c fiber.Ctx) error {
	_, pending, err := h.answers.Get()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"pendingQuestions": pending})
}

func (h *AnswersHandler) HandleAddPendingQuestion(c fiber.Ctx) error {
	var req dto.PendingQuestionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	q, err := h.answers.AddPendingQuestion(store.PendingQuestion{
		FieldName:     req.Question,
		NormalizedKey: req.NormalizedKey,
		Platform:      req.Platform,
		RiskLevel:     req.RiskLevel,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"success": true, "question": q})
}

func (h *AnswersHandler) HandleResolve(c fiber.Ctx) error {
	var req dto.ResolveQuestionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	ans, err := h.answers.ResolveQuestion(req.QuestionID, req.Answer, req.Answer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Pending question not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"success": true, "answer": ans})
}
