package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/repository"
	"github.com/pgvector/pgvector-go"
)

// Store interfaces mirror the repository method sets so the usecases
// can be exercised against in-memory fakes. The gorm repositories are
// the production implementations.

type UserStore interface {
	CreateUser(user *model.User) error
	FindUserByID(id uuid.UUID) (*model.User, error)
	FindUserByEmail(email string) (*model.User, error)
}

type JobStore interface {
	CreateJob(job *model.Job) error
	UpdateJob(job *model.Job) error
	FindJobByID(id uuid.UUID) (*model.Job, error)
	FindJobsByManager(managerID uuid.UUID) ([]model.Job, error)
	FindJobsByManagerPaged(managerID uuid.UUID, offset, limit int) ([]model.Job, int64, error)
	FindOpenJobsPaged(offset, limit int) ([]model.Job, int64, error)
	FindJobsByManagerAndTitle(managerID uuid.UUID, title string) ([]model.Job, error)
	FindJobsByManagerCreatedSince(managerID uuid.UUID, since time.Time) ([]model.Job, error)
	FindHighestSalaryJob(managerID uuid.UUID) (*model.Job, error)
	FindMostAppliedJob(managerID uuid.UUID) (*repository.JobApplicationCount, error)
}

type ApplicationStore interface {
	CreateApplication(app *model.Application) error
	UpdateApplication(app *model.Application) error
	FindApplicationByID(id uuid.UUID) (*model.Application, error)
	FindApplicationsByJob(jobID uuid.UUID) ([]model.Application, error)
	FindApplicationsByApplicant(applicantID uuid.UUID) ([]model.Application, error)
	CountApplicationsByManager(managerID uuid.UUID) (int64, error)
	RankApplicationsByEmbedding(jobID uuid.UUID, embedding pgvector.Vector, topK int) ([]model.Application, error)
}

type EmailDraftStore interface {
	CreateDraft(draft *model.EmailDraft) error
	UpdateDraft(draft *model.EmailDraft) error
	FindDraftByID(id uuid.UUID) (*model.EmailDraft, error)
	FindDraftsByApplication(applicationID uuid.UUID) ([]model.EmailDraft, error)
}
