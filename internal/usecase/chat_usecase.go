package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"gorm.io/gorm"
)

// ChatUsecase answers a hiring manager's free-text questions about
// their own hiring data. It is a deterministic keyword router: the
// question is matched, in fixed priority order, against an explicit
// list of (predicate, handler) pairs, and the answer is a pure function
// of the database state. No model call is involved.
type ChatUsecase struct {
	jobRepo  JobStore
	appRepo  ApplicationStore
	userRepo UserStore
	intents  []chatIntent
	now      func() time.Time
}

type chatIntent struct {
	name   string
	match  func(q string) bool
	answer func(uc *ChatUsecase, managerID uuid.UUID, q string) (string, error)
}

func NewChatUsecase(jobRepo JobStore, appRepo ApplicationStore, userRepo UserStore) *ChatUsecase {
	uc := &ChatUsecase{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
	uc.intents = []chatIntent{
		{
			name: "list_jobs",
			match: func(q string) bool {
				return containsAny(q, "show", "list", "all") && strings.Contains(q, "job")
			},
			answer: (*ChatUsecase).answerListJobs,
		},
		{
			name: "count_applications",
			match: func(q string) bool {
				return strings.Contains(q, "how many") && strings.Contains(q, "application")
			},
			answer: (*ChatUsecase).answerCountApplications,
		},
		{
			name: "applicants_for_job",
			match: func(q string) bool {
				return containsAny(q, "applicant", "application") && strings.Contains(q, "for")
			},
			answer: (*ChatUsecase).answerApplicantsForJob,
		},
		{
			name: "most_applied_job",
			match: func(q string) bool {
				return strings.Contains(q, "most") && containsAny(q, "applicant", "application")
			},
			answer: (*ChatUsecase).answerMostAppliedJob,
		},
		{
			name: "recent_jobs",
			match: func(q string) bool {
				return containsAny(q, "recent", "last week", "new")
			},
			answer: (*ChatUsecase).answerRecentJobs,
		},
		{
			name: "highest_salary",
			match: func(q string) bool {
				return strings.Contains(q, "highest") && strings.Contains(q, "salary")
			},
			answer: (*ChatUsecase).answerHighestSalary,
		},
	}
	return uc
}

// Answer routes the question to the first matching intent. Every query
// is scoped to jobs owned by managerID.
func (uc *ChatUsecase) Answer(managerID uuid.UUID, question string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(question))

	for _, intent := range uc.intents {
		if intent.match(q) {
			return intent.answer(uc, managerID, q)
		}
	}
	return helpMessage, nil
}

const helpMessage = "I can help you with:\n" +
	"• 'Show me all my open jobs'\n" +
	"• 'Show me closed jobs'\n" +
	"• 'List applicants for [job title]'\n" +
	"• 'How many applications do I have?'\n" +
	"• 'Which job has the most applicants?'\n" +
	"• 'Show me recent jobs'\n" +
	"• 'Which job has the highest salary?'"

func (uc *ChatUsecase) answerListJobs(managerID uuid.UUID, q string) (string, error) {
	jobs, err := uc.jobRepo.FindJobsByManager(managerID)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "You haven't created any jobs yet.", nil
	}

	var open, closed []model.Job
	for _, j := range jobs {
		if j.Status == model.JobStatusOpen {
			open = append(open, j)
		} else {
			closed = append(closed, j)
		}
	}

	if strings.Contains(q, "open") {
		if len(open) == 0 {
			return "You have no open jobs.", nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d open job(s):\n\n", len(open))
		for _, j := range open {
			fmt.Fprintf(&b, "• **%s** - %s | £%d-£%d\n", j.Title, locationOrDefault(j), j.SalaryMin, j.SalaryMax)
		}
		return b.String(), nil
	}

	if strings.Contains(q, "closed") {
		if len(closed) == 0 {
			return "You have no closed jobs.", nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d closed job(s):\n\n", len(closed))
		for _, j := range closed {
			fmt.Fprintf(&b, "• **%s** - %s | £%d-£%d\n", j.Title, locationOrDefault(j), j.SalaryMin, j.SalaryMax)
		}
		return b.String(), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d total job(s) (%d open, %d closed):\n\n", len(jobs), len(open), len(closed))
	for _, j := range jobs {
		statusTag := "Open"
		if j.Status != model.JobStatusOpen {
			statusTag = "Closed"
		}
		fmt.Fprintf(&b, "• **%s** [%s] - %s | £%d-£%d\n", j.Title, statusTag, locationOrDefault(j), j.SalaryMin, j.SalaryMax)
	}
	return b.String(), nil
}

func (uc *ChatUsecase) answerCountApplications(managerID uuid.UUID, _ string) (string, error) {
	jobs, err := uc.jobRepo.FindJobsByManager(managerID)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "You haven't created any jobs yet, so there are no applications.", nil
	}
	count, err := uc.appRepo.CountApplicationsByManager(managerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You have %d total application(s) across all your jobs.", count), nil
}

func (uc *ChatUsecase) answerApplicantsForJob(managerID uuid.UUID, q string) (string, error) {
	parts := strings.SplitN(q, "for", 2)
	if len(parts) < 2 {
		return helpMessage, nil
	}
	title := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(parts[1]), "?"))

	jobs, err := uc.jobRepo.FindJobsByManagerAndTitle(managerID, title)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return fmt.Sprintf("You don't have a job matching '%s'", title), nil
	}

	// First match wins; retrieval order is not guaranteed sorted.
	job := jobs[0]
	apps, err := uc.appRepo.FindApplicationsByJob(job.ID)
	if err != nil {
		return "", err
	}
	if len(apps) == 0 {
		return fmt.Sprintf("No applications yet for **%s**", job.Title), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d application(s) for **%s**:\n\n", len(apps), job.Title)
	for _, app := range apps {
		name, email := "Unknown", "Unknown"
		if applicant, err := uc.userRepo.FindUserByID(app.ApplicantID); err == nil {
			name, email = applicant.FullName, applicant.Email
		}
		cv := app.CVFilename
		if cv == "" {
			cv = "No CV"
		}
		fmt.Fprintf(&b, "• **%s** (%s)\n  Status: %s\n  CV: %s\n\n", name, email, app.Status, cv)
	}
	return b.String(), nil
}

func (uc *ChatUsecase) answerMostAppliedJob(managerID uuid.UUID, _ string) (string, error) {
	jobs, err := uc.jobRepo.FindJobsByManager(managerID)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "You haven't created any jobs yet.", nil
	}
	top, err := uc.jobRepo.FindMostAppliedJob(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "No applications yet on any of your jobs.", nil
		}
		return "", err
	}
	return fmt.Sprintf("**%s** has the most applicants with %d application(s).", top.Title, top.Count), nil
}

func (uc *ChatUsecase) answerRecentJobs(managerID uuid.UUID, _ string) (string, error) {
	weekAgo := uc.now().AddDate(0, 0, -7)
	jobs, err := uc.jobRepo.FindJobsByManagerCreatedSince(managerID, weekAgo)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "You haven't created any jobs in the last week.", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You created %d job(s) in the last week:\n\n", len(jobs))
	for _, j := range jobs {
		fmt.Fprintf(&b, "• **%s** - Created %s\n", j.Title, j.CreatedAt.Format("2006-01-02"))
	}
	return b.String(), nil
}

func (uc *ChatUsecase) answerHighestSalary(managerID uuid.UUID, _ string) (string, error) {
	job, err := uc.jobRepo.FindHighestSalaryJob(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "You haven't created any jobs yet.", nil
		}
		return "", err
	}
	return fmt.Sprintf("**%s** has your highest salary at £%d-£%d", job.Title, job.SalaryMin, job.SalaryMax), nil
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

func locationOrDefault(j model.Job) string {
	if j.Location == "" {
		return "No location"
	}
	return j.Location
}
