package routes

import (
	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/handler"
	"jobwerk/internal/ws"
)

// Registry collects every handler and mounts them on the app. The API
// lives flat under /api; health and the websocket feed sit at the root.
type Registry struct {
	health  *handler.HealthHandler
	search  *handler.SearchHandler
	apply   *handler.ApplyHandler
	jobs    *handler.JobsHandler
	filters *handler.FiltersHandler
	resume  *handler.ResumeHandler
	answers *handler.AnswersHandler
	logs    *handler.LogsHandler
	runs    *handler.RunsHandler
	events  *ws.Handler
}

func NewRegistry(
	search *handler.SearchHandler,
	apply *handler.ApplyHandler,
	jobs *handler.JobsHandler,
	filters *handler.FiltersHandler,
	resume *handler.ResumeHandler,
	answers *handler.AnswersHandler,
	logs *handler.LogsHandler,
	runs *handler.RunsHandler,
	events *ws.Handler,
) *Registry {
	return &Registry{
		health:  handler.NewHealthHandler(),
		search:  search,
		apply:   apply,
		jobs:    jobs,
		filters: filters,
		resume:  resume,
		answers: answers,
		logs:    logs,
		runs:    runs,
		events:  events,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	if r.events != nil {
		app.Get("/ws", r.events.HandleEventsWS)
	}

	api := app.Group("/api")
	r.search.RegisterRoutes(api)
	r.apply.RegisterRoutes(api)
	r.jobs.RegisterRoutes(api)
	r.filters.RegisterRoutes(api)
	r.resume.RegisterRoutes(api)
	r.answers.RegisterRoutes(api)
	r.logs.RegisterRoutes(api)
	r.runs.RegisterRoutes(api)
}
