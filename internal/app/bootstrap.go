package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/config"
	"jobwerk/internal/delivery/http/handler"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/routes"
	"jobwerk/internal/logging"
	"jobwerk/internal/ws"
)

const cacheConnectTimeout = 5 * time.Second

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the full server: container, middleware, routes, hub.
// The returned cleanup releases the browser and cache connections.
func Bootstrap(cfg config.Config, log *logging.Logger) (*App, func(), error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("build container: %w", err)
	}

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: 12 << 20,
	})

	f.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	f.Use(middleware.NewErrorMiddleware(log).Middleware())

	registry := routes.NewRegistry(
		handler.NewSearchHandler(c.Searcher, c.Logs),
		handler.NewApplyHandler(c.Applier),
		handler.NewJobsHandler(c.Jobs, c.JobFilters),
		handler.NewFiltersHandler(c.Filters, c.JobFilters),
		handler.NewResumeHandler(c.Resume),
		handler.NewAnswersHandler(c.Answers),
		handler.NewLogsHandler(c.Logs),
		handler.NewRunsHandler(c.Runs),
		ws.NewHandler(c.Hub, log),
	)
	registry.Register(f)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
