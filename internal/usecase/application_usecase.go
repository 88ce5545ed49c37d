package usecase

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmitApplicationInput struct {
	JobID       uuid.UUID
	CoverLetter string
	CVFilename  string
	CVContent   []byte
}

// ApplicationAnalysis is the manager-facing view of an application's AI
// annotations. Processed=false means "not yet analyzed"; the other
// fields are meaningless in that case.
type ApplicationAnalysis struct {
	Processed      bool       `json:"processed"`
	Score          float64    `json:"score,omitempty"`
	Summary        string     `json:"summary,omitempty"`
	Recommendation string     `json:"recommendation,omitempty"`
	Reasoning      string     `json:"reasoning,omitempty"`
	Skills         []string   `json:"skills,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	Message        string     `json:"message,omitempty"`
}

type ApplicationUsecase struct {
	appRepo  ApplicationStore
	jobRepo  JobStore
	analysis *AnalysisUsecase
	logger   *zap.Logger
}

func NewApplicationUsecase(appRepo ApplicationStore, jobRepo JobStore, analysis *AnalysisUsecase, logger *zap.Logger) *ApplicationUsecase {
	return &ApplicationUsecase{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		analysis: analysis,
		logger:   logger,
	}
}

// Submit stores the application and dispatches the AI analysis in the
// background so the applicant is not blocked on the completion-service
// round trip.
func (uc *ApplicationUsecase) Submit(applicantID uuid.UUID, input SubmitApplicationInput) (*model.Application, error) {
	if _, err := uc.jobRepo.FindJobByID(input.JobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}

	app := &model.Application{
		JobID:       input.JobID,
		ApplicantID: applicantID,
		CoverLetter: input.CoverLetter,
		CVFilename:  input.CVFilename,
		CVContent:   input.CVContent,
		Status:      model.ApplicationStatusPending,
	}
	if err := uc.appRepo.CreateApplication(app); err != nil {
		return nil, err
	}

	uc.analysis.EnqueueAnalysis(app.ID)

	uc.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", input.JobID.String()))

	return app, nil
}

func (uc *ApplicationUsecase) ListByApplicant(applicantID uuid.UUID) ([]model.Application, error) {
	return uc.appRepo.FindApplicationsByApplicant(applicantID)
}

// GetAnalysis returns the AI annotations for a manager-owned
// application.
func (uc *ApplicationUsecase) GetAnalysis(managerID, applicationID uuid.UUID) (*ApplicationAnalysis, error) {
	app, err := uc.appRepo.FindApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("application")
		}
		return nil, err
	}
	job, err := uc.jobRepo.FindJobByID(app.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}
	if job.HiringManagerID != managerID {
		return nil, apperror.Unauthorized("not authorized to view this application")
	}

	if !app.AIProcessed {
		return &ApplicationAnalysis{
			Processed: false,
			Message:   "Not yet analyzed by AI",
		}, nil
	}

	var skills []string
	if app.SkillsExtracted != "" {
		if err := json.Unmarshal([]byte(app.SkillsExtracted), &skills); err != nil {
			skills = nil
		}
	}

	return &ApplicationAnalysis{
		Processed:      true,
		Score:          app.AIScore,
		Summary:        app.AISummary,
		Recommendation: app.AIRecommendation,
		Reasoning:      app.AIReasoning,
		Skills:         skills,
		ProcessedAt:    app.AIProcessedAt,
	}, nil
}

// UpdateStatus lets a manager override the workflow status at any time.
func (uc *ApplicationUsecase) UpdateStatus(managerID, applicationID uuid.UUID, status string) (*model.Application, error) {
	switch status {
	case model.ApplicationStatusPending, model.ApplicationStatusReviewing,
		model.ApplicationStatusShortlisted, model.ApplicationStatusRejected:
	default:
		return nil, apperror.InvalidInput("unknown status " + status)
	}

	app, err := uc.appRepo.FindApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("application")
		}
		return nil, err
	}
	job, err := uc.jobRepo.FindJobByID(app.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}
	if job.HiringManagerID != managerID {
		return nil, apperror.Unauthorized("not authorized to update this application")
	}

	app.Status = status
	if err := uc.appRepo.UpdateApplication(app); err != nil {
		return nil, err
	}
	return app, nil
}
