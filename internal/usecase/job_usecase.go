package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/response"
	"github.com/kodamai/recruitr/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JobInput struct {
	Title       string
	Description string
	Location    string
	SalaryMin   int
	SalaryMax   int
}

type JobApplicationItem struct {
	ID             uuid.UUID `json:"id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	CoverLetter    string    `json:"cover_letter"`
	CVFilename     string    `json:"cv_filename"`
	Status         string    `json:"status"`
	CreatedAt      string    `json:"created_at"`
}

type JobUsecase struct {
	jobRepo  JobStore
	appRepo  ApplicationStore
	userRepo UserStore
	embedder service.EmbeddingService
	logger   *zap.Logger
}

func NewJobUsecase(jobRepo JobStore, appRepo ApplicationStore, userRepo UserStore, embedder service.EmbeddingService, logger *zap.Logger) *JobUsecase {
	return &JobUsecase{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		embedder: embedder,
		logger:   logger,
	}
}

// CreateJob stores a new open job for the manager. The description
// embedding powers candidate ranking; embedding failure is soft and the
// job is created without a vector.
func (uc *JobUsecase) CreateJob(ctx context.Context, managerID uuid.UUID, input JobInput) (*model.Job, error) {
	job := &model.Job{
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		SalaryMin:       input.SalaryMin,
		SalaryMax:       input.SalaryMax,
		Status:          model.JobStatusOpen,
		HiringManagerID: managerID,
	}

	if uc.embedder != nil {
		if emb, err := uc.embedder.Embed(ctx, input.Description); err != nil {
			uc.logger.Warn("job embedding failed, candidate ranking unavailable until re-embedded",
				zap.String("title", input.Title),
				zap.Error(err))
		} else {
			job.Embedding = pgvector.NewVector(emb)
		}
	}

	if err := uc.jobRepo.CreateJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns the manager's own jobs, or all open jobs for
// applicants, newest first.
func (uc *JobUsecase) ListJobs(user *model.User, page, pageSize int) ([]model.Job, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var jobs []model.Job
	var total int64
	var err error
	if user.Role == model.RoleHiringManager {
		jobs, total, err = uc.jobRepo.FindJobsByManagerPaged(user.ID, offset, pageSize)
	} else {
		jobs, total, err = uc.jobRepo.FindOpenJobsPaged(offset, pageSize)
	}
	if err != nil {
		return nil, nil, err
	}

	return jobs, buildPagination(page, pageSize, total, len(jobs)), nil
}

func (uc *JobUsecase) GetJob(user *model.User, jobID uuid.UUID) (*model.Job, error) {
	job, err := uc.jobRepo.FindJobByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}
	if user.Role == model.RoleHiringManager && job.HiringManagerID != user.ID {
		return nil, apperror.Unauthorized("not authorized to view this job")
	}
	return job, nil
}

// CloseJob applies the terminal open -> closed transition. Jobs are
// never reopened.
func (uc *JobUsecase) CloseJob(managerID, jobID uuid.UUID) (*model.Job, error) {
	job, err := uc.jobRepo.FindJobByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}
	if job.HiringManagerID != managerID {
		return nil, apperror.Unauthorized("not authorized to close this job")
	}
	job.Status = model.JobStatusClosed
	if err := uc.jobRepo.UpdateJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) JobApplications(managerID, jobID uuid.UUID) ([]JobApplicationItem, error) {
	job, err := uc.jobRepo.FindJobByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}
	if job.HiringManagerID != managerID {
		return nil, apperror.Unauthorized("not authorized to view applications for this job")
	}

	apps, err := uc.appRepo.FindApplicationsByJob(jobID)
	if err != nil {
		return nil, err
	}

	items := make([]JobApplicationItem, 0, len(apps))
	for _, app := range apps {
		item := JobApplicationItem{
			ID:          app.ID,
			CoverLetter: app.CoverLetter,
			CVFilename:  app.CVFilename,
			Status:      app.Status,
			CreatedAt:   app.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if applicant, err := uc.userRepo.FindUserByID(app.ApplicantID); err == nil {
			item.ApplicantName = applicant.FullName
			item.ApplicantEmail = applicant.Email
		} else {
			item.ApplicantName = "Unknown"
			item.ApplicantEmail = "Unknown"
		}
		items = append(items, item)
	}
	return items, nil
}

func buildPagination(page, pageSize int, total int64, returned int) *response.Pagination {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	from := 0
	if returned > 0 {
		from = (page-1)*pageSize + 1
	}
	return &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         (page-1)*pageSize + returned,
	}
}
