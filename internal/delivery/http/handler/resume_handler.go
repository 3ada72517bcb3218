package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobwerk/internal/delivery/http/dto"
	"jobwerk/internal/delivery/http/middleware"
	"jobwerk/internal/delivery/http/response"
	"jobwerk/internal/store"
)

const maxResumeSize = 10 << 20 // 10 MB

type ResumeHandler struct {
	resume *store.ResumeStore
}

func NewResumeHandler(resume *store.ResumeStore) *ResumeHandler {
	return &ResumeHandler{resume: resume}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/resume", h.HandleGet)
	r.Put("/resume", h.HandlePut)
	r.Post("/resume/upload", h.HandleUpload)
}

func (h *ResumeHandler) HandleGet(c fiber.Ctx) error {
	p, err := h.resume.Get()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := fiber.Map{"profile": p}
	if meta, err := h.resume.Meta(); err == nil {
		out["file"] = meta
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ResumeHandler) HandlePut(c fiber.Ctx) error {
	var req dto.ResumeProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if details, err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, details, err)
	}

	err := h.resume.Set(store.ResumeProfile{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Summary: req.Summary,
		Skills:  req.Skills,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Message(c, fiber.StatusOK, true, "Resume profile updated")
}

func (h *ResumeHandler) HandleUpload(c fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No resume file in request", nil, err)
	}
	if fh.Size > maxResumeSize {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file too large (max 10 MB)", nil, errors.New("size limit exceeded"))
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume must be a PDF", nil, errors.New("unexpected file type"))
	}

	if err := c.SaveFile(fh, h.resume.FilePath()); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	meta, err := h.resume.RecordUpload(fh.Filename, fh.Size)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"success": true, "file": meta})
}
