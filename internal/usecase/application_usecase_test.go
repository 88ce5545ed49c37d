package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApplicationFixture() (*ApplicationUsecase, *fakeApplicationStore, *fakeJobStore) {
	apps := newFakeApplicationStore()
	jobs := &fakeJobStore{}
	users := newFakeUserStore()
	analysis := NewAnalysisUsecase(apps, jobs, users, &stubCompletion{response: `{"score": 50, "recommendation": "review"}`}, nil, zap.NewNop(), 1)
	uc := NewApplicationUsecase(apps, jobs, analysis, zap.NewNop())
	return uc, apps, jobs
}

func TestSubmitApplication(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	job := jobs.add(&model.Job{Title: "Dev", Description: "d", HiringManagerID: uuid.New()})
	applicantID := uuid.New()

	app, err := uc.Submit(applicantID, SubmitApplicationInput{
		JobID:       job.ID,
		CoverLetter: "I am keen.",
		CVFilename:  "cv.pdf",
		CVContent:   []byte("%PDF-fake"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.Equal(t, applicantID, app.ApplicantID)

	stored, err := apps.FindApplicationByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", stored.CVFilename)
}

func TestSubmitApplicationUnknownJob(t *testing.T) {
	uc, _, _ := newApplicationFixture()

	_, err := uc.Submit(uuid.New(), SubmitApplicationInput{JobID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetAnalysisNotProcessed(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	managerID := uuid.New()
	job := jobs.add(&model.Job{Title: "Dev", HiringManagerID: managerID})
	app := &model.Application{JobID: job.ID, ApplicantID: uuid.New()}
	require.NoError(t, apps.CreateApplication(app))

	analysis, err := uc.GetAnalysis(managerID, app.ID)
	require.NoError(t, err)
	assert.False(t, analysis.Processed)
	assert.Equal(t, "Not yet analyzed by AI", analysis.Message)
	assert.Zero(t, analysis.Score)
}

func TestGetAnalysisProcessed(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	managerID := uuid.New()
	job := jobs.add(&model.Job{Title: "Dev", HiringManagerID: managerID})
	processedAt := time.Now()
	app := &model.Application{
		JobID:            job.ID,
		ApplicantID:      uuid.New(),
		AIProcessed:      true,
		AIProcessedAt:    &processedAt,
		AIScore:          90,
		AISummary:        "Great fit",
		AIRecommendation: "shortlist",
		AIReasoning:      "Solid track record",
		SkillsExtracted:  `["Go","SQL"]`,
	}
	require.NoError(t, apps.CreateApplication(app))

	analysis, err := uc.GetAnalysis(managerID, app.ID)
	require.NoError(t, err)
	assert.True(t, analysis.Processed)
	assert.Equal(t, float64(90), analysis.Score)
	assert.Equal(t, []string{"Go", "SQL"}, analysis.Skills)
	assert.Equal(t, "shortlist", analysis.Recommendation)
}

func TestGetAnalysisOwnership(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	job := jobs.add(&model.Job{Title: "Dev", HiringManagerID: uuid.New()})
	app := &model.Application{JobID: job.ID, ApplicantID: uuid.New()}
	require.NoError(t, apps.CreateApplication(app))

	_, err := uc.GetAnalysis(uuid.New(), app.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestUpdateStatus(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	managerID := uuid.New()
	job := jobs.add(&model.Job{Title: "Dev", HiringManagerID: managerID})
	app := &model.Application{JobID: job.ID, ApplicantID: uuid.New(), Status: model.ApplicationStatusPending}
	require.NoError(t, apps.CreateApplication(app))

	updated, err := uc.UpdateStatus(managerID, app.ID, model.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusShortlisted, updated.Status)
}

func TestUpdateStatusInvalid(t *testing.T) {
	uc, _, _ := newApplicationFixture()

	_, err := uc.UpdateStatus(uuid.New(), uuid.New(), "hired")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdateStatusOwnership(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	job := jobs.add(&model.Job{Title: "Dev", HiringManagerID: uuid.New()})
	app := &model.Application{JobID: job.ID, ApplicantID: uuid.New()}
	require.NoError(t, apps.CreateApplication(app))

	_, err := uc.UpdateStatus(uuid.New(), app.ID, model.ApplicationStatusRejected)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestListByApplicant(t *testing.T) {
	uc, apps, jobs := newApplicationFixture()
	job := jobs.add(&model.Job{Title: "Dev", HiringManagerID: uuid.New()})
	mine := uuid.New()
	require.NoError(t, apps.CreateApplication(&model.Application{JobID: job.ID, ApplicantID: mine}))
	require.NoError(t, apps.CreateApplication(&model.Application{JobID: job.ID, ApplicantID: uuid.New()}))

	list, err := uc.ListByApplicant(mine)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
