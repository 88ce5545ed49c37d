package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DraftResult struct {
	DraftID   uuid.UUID `json:"draft_id"`
	EmailType string    `json:"email_type"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Sent      bool      `json:"sent"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
}

type EmailUsecase struct {
	appRepo   ApplicationStore
	jobRepo   JobStore
	userRepo  UserStore
	draftRepo EmailDraftStore
	ai        service.CompletionService
	mailer    service.Mailer
	logger    *zap.Logger
}

func NewEmailUsecase(appRepo ApplicationStore, jobRepo JobStore, userRepo UserStore, draftRepo EmailDraftStore, ai service.CompletionService, mailer service.Mailer, logger *zap.Logger) *EmailUsecase {
	return &EmailUsecase{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		draftRepo: draftRepo,
		ai:        ai,
		mailer:    mailer,
		logger:    logger,
	}
}

// Draft generates a candidate email of the given type, persists it as a
// new draft row (every call creates a new row, even on resend), and
// optionally hands it to the mailer. The draft's Sent flag flips only
// on confirmed delivery; a failed send retains the row with Sent=false.
func (uc *EmailUsecase) Draft(ctx context.Context, managerID, applicationID uuid.UUID, emailType string, sendImmediately bool) (*DraftResult, error) {
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
		return nil, apperror.Unauthorized("not authorized to email candidates for this job")
	}
	applicant, err := uc.userRepo.FindUserByID(app.ApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("applicant")
		}
		return nil, err
	}
	manager, err := uc.userRepo.FindUserByID(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("hiring manager")
		}
		return nil, err
	}

	prompt := buildEmailPrompt(emailType, applicant.FullName, manager.FullName, job.Title, app)

	text, err := uc.ai.Complete(ctx, service.CompletionRequest{
		Messages: []service.CompletionMessage{
			{Role: service.RoleSystem, Content: "You are an expert HR professional writing recruiting emails."},
			{Role: service.RoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, apperror.ExternalService(fmt.Errorf("failed to generate email: %w", err))
	}

	subject, body := SplitSubject(text, job.Title)
	body = CleanupEmailBody(body, applicant.FullName)

	draft := &model.EmailDraft{
		ApplicationID: applicationID,
		DraftType:     emailType,
		Subject:       subject,
		Body:          body,
		CreatedBy:     managerID,
	}
	if err := uc.draftRepo.CreateDraft(draft); err != nil {
		return nil, err
	}

	result := &DraftResult{
		DraftID:   draft.ID,
		EmailType: emailType,
		Subject:   subject,
		Body:      body,
		Recipient: applicant.Email,
		Message:   "Draft created",
	}

	if sendImmediately {
		if err := uc.mailer.Send(applicant.Email, applicant.FullName, subject, body); err != nil {
			uc.logger.Error("email delivery failed, draft retained",
				zap.String("draft_id", draft.ID.String()),
				zap.String("application_id", applicationID.String()),
				zap.Error(err))
			result.Message = fmt.Sprintf("Draft saved but sending failed: %v", err)
		} else {
			draft.Sent = true
			if err := uc.draftRepo.UpdateDraft(draft); err != nil {
				return nil, err
			}
			result.Sent = true
			result.Message = fmt.Sprintf("Email sent to %s", applicant.Email)
		}
	}

	return result, nil
}

func (uc *EmailUsecase) DraftsForApplication(managerID, applicationID uuid.UUID) ([]model.EmailDraft, error) {
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
		return nil, apperror.Unauthorized("not authorized to view drafts for this job")
	}
	return uc.draftRepo.FindDraftsByApplication(applicationID)
}

// formatRules are appended to every email prompt. The model is not
// contractually guaranteed to follow them, which is why CleanupEmailBody
// exists.
const formatRules = `

Formatting rules:
- Do NOT include a greeting line (no "Hi ...", "Dear ...") — it is added at send time
- Do NOT include a signature or sign-off — it is added at send time
- Do NOT include bracketed placeholders like [Date], [Time], [Your Name] or [Position]
- Put the subject on the first line as "Subject: ..." and the body on the lines after it`

func buildEmailPrompt(emailType, applicantName, managerName, jobTitle string, app *model.Application) string {
	const companyName = "HireChat"
	switch emailType {
	case model.DraftTypeRejection:
		return fmt.Sprintf(`Write a professional, empathetic rejection email for a job candidate.

Candidate: %s
Position: %s
Company: %s

The candidate scored %.0f/100 in our AI screening. Reason: %s

Write a kind, constructive email that:
- Thanks them for applying
- Explains we've moved forward with other candidates
- Encourages them to apply for future roles
- Is warm and professional%s`, applicantName, jobTitle, companyName, app.AIScore, app.AIReasoning, formatRules)
	case model.DraftTypeInterview:
		return fmt.Sprintf(`Write a professional interview invitation email.

Candidate: %s
Position: %s
Company: %s

Write an email that:
- Confirms interview invitation
- Provides interview format details
- Asks them to confirm attendance
- Is clear and professional%s`, applicantName, jobTitle, companyName, formatRules)
	default: // shortlist, also the fallback for unknown types
		return fmt.Sprintf(`Write a professional email inviting a candidate to the next stage.

Candidate: %s
Position: %s
Company: %s

The candidate scored %.0f/100. Summary: %s

Write an email that:
- Congratulates them on being shortlisted
- Explains next steps
- Asks for their availability for an interview
- Is professional and enthusiastic%s`, applicantName, jobTitle, companyName, app.AIScore, app.AISummary, formatRules)
	}
}

// SplitSubject finds the first line starting (case-insensitively) with
// "Subject:" and returns it plus everything after as the body. Without
// a marker the subject falls back to a templated string and the whole
// response becomes the body.
func SplitSubject(text, jobTitle string) (subject, body string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= len("subject:") && strings.EqualFold(trimmed[:len("subject:")], "subject:") {
			subject = strings.TrimSpace(trimmed[len("subject:"):])
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return subject, body
		}
	}
	return fmt.Sprintf("Update on your application for %s", jobTitle), strings.TrimSpace(text)
}

var (
	placeholderRe = regexp.MustCompile(`(?i)\[[^\]\n]*(date|time|name|position)[^\]\n]*\]`)
	greetingRe    = regexp.MustCompile(`(?i)^(hi|hello|dear|hey|greetings)\b`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

// CleanupEmailBody applies the deterministic post-processing pass:
// placeholder strip, leading-greeting strip, blank-line collapse. The
// pass is idempotent; running it on already-cleaned text is a no-op.
func CleanupEmailBody(body, applicantName string) string {
	body = placeholderRe.ReplaceAllString(body, "")

	// Strip to a fixpoint so the pass stays idempotent even when the
	// model stacked more than one greeting line.
	body = strings.TrimSpace(body)
	for body != "" {
		firstLine, rest := body, ""
		if idx := strings.Index(body, "\n"); idx >= 0 {
			firstLine, rest = body[:idx], body[idx+1:]
		}
		if !isGreetingLine(strings.TrimSpace(firstLine), applicantName) {
			break
		}
		body = strings.TrimSpace(rest)
	}

	body = blankLinesRe.ReplaceAllString(body, "\n\n")
	return strings.TrimSpace(body)
}

func isGreetingLine(line, applicantName string) bool {
	if line == "" {
		return false
	}
	if greetingRe.MatchString(line) {
		return true
	}
	firstName := strings.Fields(applicantName)
	if len(firstName) > 0 && strings.HasPrefix(strings.ToLower(line), strings.ToLower(firstName[0])+",") {
		return true
	}
	return false
}
