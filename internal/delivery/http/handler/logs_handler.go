package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/store"
)

type LogsHandler struct {
	logs *store.SessionLogStore
}

func NewLogsHandler(logs *store.SessionLogStore) *LogsHandler {
	return &LogsHandler{logs: logs}
}

func (h *LogsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/logs", h.HandleList)
	r.Post("/logs", h.HandleAppend)
}

func (h *LogsHandler) HandleList(c fiber.Ctx) error {
	sessions, err := h.logs.List()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"sessions": sessions})
}

// HandleAppend accepts loosely structured entries; the store stamps the
// timestamp and enforces the cap.
func (h *LogsHandler) HandleAppend(c fiber.Ctx) error {
	var entry map[string]any
	if err := c.Bind().Body(&entry); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := h.logs.Append(entry); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Message(c, fiber.StatusCreated, true, "Log entry recorded")
}
