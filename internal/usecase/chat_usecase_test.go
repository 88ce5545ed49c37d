package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture() (*ChatUsecase, *fakeJobStore, *fakeApplicationStore, *fakeUserStore) {
	jobs := &fakeJobStore{}
	apps := newFakeApplicationStore()
	users := newFakeUserStore()
	return NewChatUsecase(jobs, apps, users), jobs, apps, users
}

func TestChatListJobsEmpty(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	answer, err := uc.Answer(uuid.New(), "Show me all my open jobs")
	require.NoError(t, err)
	assert.Equal(t, "You haven't created any jobs yet.", answer)
}

func TestChatListOpenJobs(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", Location: "London", SalaryMin: 60000, SalaryMax: 80000, Status: model.JobStatusOpen, HiringManagerID: managerID})
	jobs.add(&model.Job{Title: "Designer", Location: "Remote", SalaryMin: 40000, SalaryMax: 55000, Status: model.JobStatusClosed, HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "Show me all my open jobs")
	require.NoError(t, err)
	assert.Equal(t, "Found 1 open job(s):\n\n• **Backend Engineer** - London | £60000-£80000\n", answer)
}

func TestChatListOpenJobsNoneOpen(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Designer", Status: model.JobStatusClosed, HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "show me open jobs")
	require.NoError(t, err)
	assert.Equal(t, "You have no open jobs.", answer)
}

func TestChatListClosedJobs(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Designer", Location: "Remote", SalaryMin: 40000, SalaryMax: 55000, Status: model.JobStatusClosed, HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "list my closed jobs")
	require.NoError(t, err)
	assert.Equal(t, "Found 1 closed job(s):\n\n• **Designer** - Remote | £40000-£55000\n", answer)
}

func TestChatListAllJobsWithStatusTags(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", Location: "London", SalaryMin: 60000, SalaryMax: 80000, Status: model.JobStatusOpen, HiringManagerID: managerID})
	jobs.add(&model.Job{Title: "Designer", SalaryMin: 40000, SalaryMax: 55000, Status: model.JobStatusClosed, HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "list all my jobs")
	require.NoError(t, err)
	assert.Contains(t, answer, "You have 2 total job(s) (1 open, 1 closed):")
	assert.Contains(t, answer, "• **Backend Engineer** [Open] - London | £60000-£80000")
	assert.Contains(t, answer, "• **Designer** [Closed] - No location | £40000-£55000")
}

func TestChatScopedToManager(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	jobs.add(&model.Job{Title: "Someone Else's Job", Status: model.JobStatusOpen, HiringManagerID: uuid.New()})

	answer, err := uc.Answer(uuid.New(), "show me all my jobs")
	require.NoError(t, err)
	assert.Equal(t, "You haven't created any jobs yet.", answer)
}

func TestChatCountApplications(t *testing.T) {
	uc, jobs, apps, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Dev", HiringManagerID: managerID})
	apps.countByManager = 5

	answer, err := uc.Answer(managerID, "How many applications do I have?")
	require.NoError(t, err)
	assert.Equal(t, "You have 5 total application(s) across all your jobs.", answer)
}

func TestChatCountApplicationsNoJobs(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	answer, err := uc.Answer(uuid.New(), "how many applications do I have")
	require.NoError(t, err)
	assert.Equal(t, "You haven't created any jobs yet, so there are no applications.", answer)
}

func TestChatApplicantsForJob(t *testing.T) {
	uc, jobs, apps, users := newChatFixture()
	managerID := uuid.New()
	job := jobs.add(&model.Job{Title: "Backend Engineer", HiringManagerID: managerID})

	applicant := &model.User{Email: "jane@example.com", FullName: "Jane Doe", Role: model.RoleApplicant}
	require.NoError(t, users.CreateUser(applicant))
	require.NoError(t, apps.CreateApplication(&model.Application{
		JobID:       job.ID,
		ApplicantID: applicant.ID,
		CVFilename:  "jane_cv.pdf",
		Status:      model.ApplicationStatusReviewing,
	}))

	answer, err := uc.Answer(managerID, "List applicants for Backend Engineer?")
	require.NoError(t, err)
	assert.Equal(t, "Found 1 application(s) for **Backend Engineer**:\n\n• **Jane Doe** (jane@example.com)\n  Status: reviewing\n  CV: jane_cv.pdf\n\n", answer)
}

func TestChatApplicantsForUnknownJob(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "list applicants for Astronaut")
	require.NoError(t, err)
	assert.Equal(t, "You don't have a job matching 'astronaut'", answer)
}

func TestChatApplicantsForJobNoApplications(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "applicants for backend engineer")
	require.NoError(t, err)
	assert.Equal(t, "No applications yet for **Backend Engineer**", answer)
}

func TestChatMostAppliedJob(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", HiringManagerID: managerID})
	jobs.mostApplied = &repository.JobApplicationCount{Title: "Backend Engineer", Count: 7}

	answer, err := uc.Answer(managerID, "Which job has the most applicants?")
	require.NoError(t, err)
	assert.Equal(t, "**Backend Engineer** has the most applicants with 7 application(s).", answer)
}

func TestChatMostAppliedJobNoApplications(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "which job has the most applicants")
	require.NoError(t, err)
	assert.Equal(t, "No applications yet on any of your jobs.", answer)
}

func TestChatRecentJobs(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	jobs.add(&model.Job{Title: "New Job", HiringManagerID: managerID, CreatedAt: now.AddDate(0, 0, -2)})
	jobs.add(&model.Job{Title: "Old Job", HiringManagerID: managerID, CreatedAt: now.AddDate(0, 0, -30)})

	answer, err := uc.Answer(managerID, "Show me recent jobs")
	require.NoError(t, err)
	assert.Equal(t, "You created 1 job(s) in the last week:\n\n• **New Job** - Created 2025-06-13\n", answer)
}

func TestChatRecentJobsEmpty(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	answer, err := uc.Answer(uuid.New(), "any new jobs recently?")
	require.NoError(t, err)
	assert.Equal(t, "You haven't created any jobs in the last week.", answer)
}

func TestChatHighestSalary(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Junior Dev", SalaryMin: 30000, SalaryMax: 40000, HiringManagerID: managerID})
	jobs.add(&model.Job{Title: "Principal Engineer", SalaryMin: 90000, SalaryMax: 120000, HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "Which job has the highest salary?")
	require.NoError(t, err)
	assert.Equal(t, "**Principal Engineer** has your highest salary at £90000-£120000", answer)
}

func TestChatHighestSalaryNoJobs(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	answer, err := uc.Answer(uuid.New(), "highest salary job?")
	require.NoError(t, err)
	assert.Equal(t, "You haven't created any jobs yet.", answer)
}

func TestChatHelpFallback(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	answer, err := uc.Answer(uuid.New(), "what is the meaning of life?")
	require.NoError(t, err)
	assert.Contains(t, answer, "I can help you with:")
	assert.Contains(t, answer, "'Show me all my open jobs'")
}

// "show me applications for X" contains both list keywords and "for";
// the list intent sits earlier so it must win only when "job" appears.
func TestChatIntentPriority(t *testing.T) {
	uc, jobs, _, _ := newChatFixture()
	managerID := uuid.New()
	jobs.add(&model.Job{Title: "Backend Engineer", HiringManagerID: managerID})

	answer, err := uc.Answer(managerID, "show applications for Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, "No applications yet for **Backend Engineer**", answer)

	answer, err = uc.Answer(managerID, "show me all jobs for my team")
	require.NoError(t, err)
	assert.Contains(t, answer, "You have 1 total job(s)")
}
