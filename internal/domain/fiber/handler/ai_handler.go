package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/dto"
	"github.com/kodamai/recruitr/internal/middleware"
	"github.com/kodamai/recruitr/internal/usecase"
	"github.com/kodamai/recruitr/internal/util"
)

type AIHandler struct {
	analysis *usecase.AnalysisUsecase
	apps     *usecase.ApplicationUsecase
	emails   *usecase.EmailUsecase
	auth     *usecase.AuthUsecase
	userRepo usecase.UserStore
}

func NewAIHandler(analysis *usecase.AnalysisUsecase, apps *usecase.ApplicationUsecase, emails *usecase.EmailUsecase, auth *usecase.AuthUsecase, userRepo usecase.UserStore) *AIHandler {
	return &AIHandler{analysis: analysis, apps: apps, emails: emails, auth: auth, userRepo: userRepo}
}

func (h *AIHandler) RegisterRoutes(app *fiber.App) {
	ai := app.Group("/ai",
		middleware.RequireAuth(h.auth, h.userRepo),
		middleware.RequireHiringManager())
	ai.Post("/analyze-application", middleware.RateLimiter(10, time.Minute), h.Analyze)
	ai.Get("/applications/:id/analysis", h.Analysis)
	ai.Post("/emails", middleware.RateLimiter(10, time.Minute), h.GenerateEmail)
	ai.Get("/applications/:id/emails", h.Drafts)
	ai.Get("/jobs/:id/top-candidates", h.TopCandidates)
}

// Analyze re-runs the AI analysis for an owned application in the
// background and returns immediately.
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	user := middleware.CurrentUser(c)
	if err := h.analysis.RequestAnalysis(user.ID, req.ApplicationID); err != nil {
		return respondError(c, err, "failed to start analysis")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "AI analysis started",
		Data:    fiber.Map{"application_id": req.ApplicationID},
	})
}

func (h *AIHandler) Analysis(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid application id",
		}, err)
	}

	analysis, err := h.apps.GetAnalysis(middleware.CurrentUser(c).ID, appID)
	if err != nil {
		return respondError(c, err, "failed to get analysis")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Analysis retrieved",
		Data:    analysis,
	})
}

func (h *AIHandler) GenerateEmail(c *fiber.Ctx) error {
	var req dto.EmailDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	user := middleware.CurrentUser(c)
	result, err := h.emails.Draft(c.UserContext(), user.ID, req.ApplicationID, req.EmailType, req.SendImmediately)
	if err != nil {
		return respondError(c, err, "failed to generate email")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: result.Message,
		Data:    result,
	})
}

func (h *AIHandler) Drafts(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid application id",
		}, err)
	}

	drafts, err := h.emails.DraftsForApplication(middleware.CurrentUser(c).ID, appID)
	if err != nil {
		return respondError(c, err, "failed to list drafts")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Drafts retrieved",
		Data:    drafts,
	})
}

func (h *AIHandler) TopCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}
	topK := c.QueryInt("limit", 10)

	user := middleware.CurrentUser(c)
	ranks, err := h.analysis.TopCandidates(c.UserContext(), user.ID, jobID, topK)
	if err != nil {
		return respondError(c, err, "failed to rank candidates")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Top candidates retrieved",
		Data:    ranks,
	})
}
