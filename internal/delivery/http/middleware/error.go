package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/logging"
)

type AppError struct {
	StatusCode int
	Message    string
	Details    interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, details interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Details: details, Cause: cause}
}

type ErrorMiddleware struct {
	log *logging.Logger
}

func NewErrorMiddleware(log *logging.Logger) *ErrorMiddleware {
	if log == nil {
		log = logging.Nop()
	}
	return &ErrorMiddleware{log: log}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("panic recovered", "path", c.Path(), "panic", r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, details := m.normalize(err)
		if status >= 500 {
			m.log.Error("request failed", "path", c.Path(), "error", err)
		}
		return response.Error(c, status, msg, details)
	}
}

// normalize collapses 5xx details so internal error text never reaches the
// client.
func (m *ErrorMiddleware) normalize(err error) (int, string, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, appErr.Message, appErr.Details
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, fiberErr.Message, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
