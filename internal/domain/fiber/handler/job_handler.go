package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/dto"
	"github.com/kodamai/recruitr/internal/middleware"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/usecase"
	"github.com/kodamai/recruitr/internal/util"
)

type JobHandler struct {
	uc       *usecase.JobUsecase
	auth     *usecase.AuthUsecase
	userRepo usecase.UserStore
}

func NewJobHandler(uc *usecase.JobUsecase, auth *usecase.AuthUsecase, userRepo usecase.UserStore) *JobHandler {
	return &JobHandler{uc: uc, auth: auth, userRepo: userRepo}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	jobs := app.Group("/jobs", middleware.RequireAuth(h.auth, h.userRepo))
	jobs.Get("", h.List)
	jobs.Post("", middleware.RequireHiringManager(), h.Create)
	jobs.Get("/:id", h.Get)
	jobs.Patch("/:id/close", middleware.RequireHiringManager(), h.Close)
	jobs.Get("/:id/applications", middleware.RequireHiringManager(), h.Applications)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	jobs, pagination, err := h.uc.ListJobs(user, page, pageSize)
	if err != nil {
		return respondError(c, err, "failed to list jobs")
	}

	items := make([]dto.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, toJobDTO(&j))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Jobs retrieved",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Title == "" || req.Description == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and description are required",
		}, nil)
	}
	if req.SalaryMin < 0 || req.SalaryMax < req.SalaryMin {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid salary range",
		}, nil)
	}

	user := middleware.CurrentUser(c)
	job, err := h.uc.CreateJob(c.UserContext(), user.ID, usecase.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	})
	if err != nil {
		return respondError(c, err, "failed to create job")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created",
		Data:    toJobDTO(job),
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	job, err := h.uc.GetJob(middleware.CurrentUser(c), jobID)
	if err != nil {
		return respondError(c, err, "failed to get job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job retrieved",
		Data:    toJobDTO(job),
	})
}

func (h *JobHandler) Close(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	job, err := h.uc.CloseJob(middleware.CurrentUser(c).ID, jobID)
	if err != nil {
		return respondError(c, err, "failed to close job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job closed",
		Data:    toJobDTO(job),
	})
}

func (h *JobHandler) Applications(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	items, err := h.uc.JobApplications(middleware.CurrentUser(c).ID, jobID)
	if err != nil {
		return respondError(c, err, "failed to list applications")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Applications retrieved",
		Data:    items,
	})
}

func toJobDTO(job *model.Job) dto.JobDTO {
	return dto.JobDTO{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		Location:        job.Location,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		Status:          job.Status,
		HiringManagerID: job.HiringManagerID,
		CreatedAt:       job.CreatedAt,
	}
}
