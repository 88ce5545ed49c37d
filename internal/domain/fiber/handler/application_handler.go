package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/dto"
	"github.com/kodamai/recruitr/internal/middleware"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/usecase"
	"github.com/kodamai/recruitr/internal/util"
)

const maxCVSize = 5 * 1024 * 1024

type ApplicationHandler struct {
	uc       *usecase.ApplicationUsecase
	auth     *usecase.AuthUsecase
	userRepo usecase.UserStore
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase, auth *usecase.AuthUsecase, userRepo usecase.UserStore) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, auth: auth, userRepo: userRepo}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	apps := app.Group("/applications", middleware.RequireAuth(h.auth, h.userRepo))
	apps.Post("", h.Submit)
	apps.Get("/mine", h.Mine)
	apps.Patch("/:id/status", middleware.RequireHiringManager(), h.UpdateStatus)
}

// Submit accepts a multipart form: job_id, cover_letter and a PDF cv.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.FormValue("job_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job_id",
		}, err)
	}
	coverLetter := c.FormValue("cover_letter")
	if coverLetter == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cover_letter is required",
		}, nil)
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cv file is required",
		}, err)
	}
	if file.Size > maxCVSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cv file size is too large (max 5MB)",
		}, nil)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("unsupported cv file type %s", ext),
		}, nil)
	}

	src, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read cv file",
		}, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read cv file",
		}, err)
	}

	user := middleware.CurrentUser(c)
	app, err := h.uc.Submit(user.ID, usecase.SubmitApplicationInput{
		JobID:       jobID,
		CoverLetter: coverLetter,
		CVFilename:  file.Filename,
		CVContent:   content,
	})
	if err != nil {
		return respondError(c, err, "failed to submit application")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application submitted, AI analysis started",
		Data:    toApplicationDTO(app),
	})
}

func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	apps, err := h.uc.ListByApplicant(user.ID)
	if err != nil {
		return respondError(c, err, "failed to list applications")
	}
	items := make([]dto.ApplicationDTO, 0, len(apps))
	for _, app := range apps {
		items = append(items, toApplicationDTO(&app))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Applications retrieved",
		Data:    items,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid application id",
		}, err)
	}
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	app, err := h.uc.UpdateStatus(middleware.CurrentUser(c).ID, appID, req.Status)
	if err != nil {
		return respondError(c, err, "failed to update application status")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application status updated",
		Data:    toApplicationDTO(app),
	})
}

func toApplicationDTO(app *model.Application) dto.ApplicationDTO {
	return dto.ApplicationDTO{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		CVFilename:  app.CVFilename,
		Status:      app.Status,
		AIProcessed: app.AIProcessed,
		CreatedAt:   app.CreatedAt,
	}
}
