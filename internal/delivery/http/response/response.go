// Package response fixes the wire envelopes the HTTP API speaks. Mutating
// endpoints answer {"success": ..., "message": ...}, reads return their
// payload directly, and failures are {"error": ..., "details": ...}.
package response

import "github.com/gofiber/fiber/v3"

const (
	MessageBadRequest          = "Invalid request"
	MessageNotFound            = "Not found"
	MessageInternalServerError = "Internal server error"
)

type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type MessageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func JSON(c fiber.Ctx, status int, v interface{}) error {
	return c.Status(status).JSON(v)
}

func Message(c fiber.Ctx, status int, success bool, message string) error {
	return c.Status(status).JSON(MessageBody{Success: success, Message: message})
}

func Error(c fiber.Ctx, status int, message string, details interface{}) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = defaultMessageForStatus(status)
	}
	return c.Status(status).JSON(ErrorBody{Error: message, Details: details})
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	default:
		return MessageInternalServerError
	}
}
