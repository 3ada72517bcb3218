package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/dto"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/jobs"
	"jobwerk/internal/scraper"
	"jobwerk/internal/store"
)

// Searcher is the slice of the search orchestrator the handler needs.
type Searcher interface {
	SearchAll(ctx context.Context, keyword, location string) ([]jobs.Posting, []scraper.Outcome)
	SearchOne(ctx context.Context, platform jobs.Platform, keyword, location string) ([]jobs.Posting, error)
}

type SearchHandler struct {
	searcher Searcher
	sessions *store.SessionLogStore
}

func NewSearchHandler(searcher Searcher, sessions *store.SessionLogStore) *SearchHandler {
	return &SearchHandler{searcher: searcher, sessions: sessions}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/search", h.HandleSearch)
}

func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	platform, err := jobs.ParsePlatform(req.Platform)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown platform: "+req.Platform, nil, err)
	}

	var found []jobs.Posting
	if platform == jobs.PlatformAll {
		found, _ = h.searcher.SearchAll(c.Context(), req.Keywords, req.Location)
	} else {
		found, err = h.searcher.SearchOne(c.Context(), platform, req.Keywords, req.Location)
		if err != nil {
			// One platform worth of failure still reads as an empty
			// result; the cause is in the server log.
			found = []jobs.Posting{}
		}
	}
	if found == nil {
		found = []jobs.Posting{}
	}

	// Best effort: the session log is a diary, not part of the contract.
	if h.sessions != nil {
		_ = h.sessions.Append(map[string]any{
			"type":    "search",
			"message": "Search: " + req.Keywords + " in " + req.Location,
		})
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"count":   len(found),
		"jobs":    found,
	})
}
