package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobwerk/internal/logging"
)

type AccessLogMiddleware struct {
	log *logging.Logger
}

func NewAccessLogMiddleware(log *logging.Logger) *AccessLogMiddleware {
	if log == nil {
		log = logging.Nop()
	}
	return &AccessLogMiddleware{log: log}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		m.log.Info("http access",
			"rid", rid,
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		)
		return err
	}
}
