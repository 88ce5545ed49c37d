package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/service"
	"github.com/kodamai/recruitr/internal/util"
	"github.com/pgvector/pgvector-go"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const extractionSentinel = "Unable to extract text from CV"

// Verdict is the scoring engine's structured output for one
// CV-against-job evaluation.
type Verdict struct {
	Score          float64
	Summary        string
	Recommendation string
	Reasoning      string
	Skills         []string
}

type AnalysisResult struct {
	ApplicationID  uuid.UUID `json:"application_id"`
	Score          float64   `json:"score"`
	Recommendation string    `json:"recommendation"`
	Status         string    `json:"status"`
	Summary        string    `json:"summary"`
}

type CandidateRank struct {
	ApplicationID  uuid.UUID `json:"application_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	Score          float64   `json:"score"`
	Recommendation string    `json:"recommendation"`
	Status         string    `json:"status"`
}

type AnalysisUsecase struct {
	appRepo  ApplicationStore
	jobRepo  JobStore
	userRepo UserStore
	ai       service.CompletionService
	embedder service.EmbeddingService
	logger   *zap.Logger
	sem      chan struct{}
}

// NewAnalysisUsecase builds the scoring pipeline. maxConcurrent bounds
// the number of background completion calls in flight at once.
func NewAnalysisUsecase(appRepo ApplicationStore, jobRepo JobStore, userRepo UserStore, ai service.CompletionService, embedder service.EmbeddingService, logger *zap.Logger, maxConcurrent int) *AnalysisUsecase {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &AnalysisUsecase{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		ai:       ai,
		embedder: embedder,
		logger:   logger,
		sem:      make(chan struct{}, maxConcurrent),
	}
}

// RequestAnalysis verifies the manager owns the application's job and
// dispatches a background re-analysis.
func (uc *AnalysisUsecase) RequestAnalysis(managerID, applicationID uuid.UUID) error {
	app, err := uc.appRepo.FindApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("application")
		}
		return err
	}
	job, err := uc.jobRepo.FindJobByID(app.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("job")
		}
		return err
	}
	if job.HiringManagerID != managerID {
		return apperror.Unauthorized("not authorized to analyze this application")
	}
	uc.EnqueueAnalysis(applicationID)
	return nil
}

// EnqueueAnalysis runs Analyze on a goroutine after the caller's
// request has returned. Two concurrent analyses of the same
// application are not serialized; last writer wins on the AI fields.
func (uc *AnalysisUsecase) EnqueueAnalysis(applicationID uuid.UUID) {
	go func() {
		uc.sem <- struct{}{}
		defer func() { <-uc.sem }()

		if _, err := uc.Analyze(context.Background(), applicationID); err != nil {
			uc.logger.Error("background analysis failed",
				zap.String("application_id", applicationID.String()),
				zap.Error(err))
		}
	}()
}

// Analyze is the only place the AI verdict is committed. Re-running it
// for the same application overwrites the prior annotation state.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, applicationID uuid.UUID) (*AnalysisResult, error) {
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

	cvText := util.ExtractPDFText(app.CVContent)
	if cvText == "" {
		cvText = extractionSentinel
	}

	verdict := uc.ScoreCV(ctx, cvText, job.Description, job.Title)

	skills := verdict.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		skillsJSON = []byte("[]")
	}

	if uc.embedder != nil && cvText != extractionSentinel {
		if emb, err := uc.embedder.Embed(ctx, cvText); err != nil {
			uc.logger.Warn("cv embedding failed, ranking will skip this application",
				zap.String("application_id", applicationID.String()),
				zap.Error(err))
		} else {
			app.CVEmbedding = pgvector.NewVector(emb)
		}
	}

	now := time.Now()
	app.CVParsedText = cvText
	app.AIScore = verdict.Score
	app.AISummary = verdict.Summary
	app.AIRecommendation = verdict.Recommendation
	app.AIReasoning = verdict.Reasoning
	app.SkillsExtracted = string(skillsJSON)
	app.AIProcessed = true
	app.AIProcessedAt = &now
	app.Status = DeriveStatus(verdict.Score, verdict.Recommendation)

	if err := uc.appRepo.UpdateApplication(app); err != nil {
		return nil, err
	}

	uc.logger.Info("application analyzed",
		zap.String("application_id", applicationID.String()),
		zap.Float64("score", verdict.Score),
		zap.String("recommendation", verdict.Recommendation),
		zap.String("status", app.Status))

	return &AnalysisResult{
		ApplicationID:  app.ID,
		Score:          app.AIScore,
		Recommendation: app.AIRecommendation,
		Status:         app.Status,
		Summary:        app.AISummary,
	}, nil
}

// ScoreCV asks the completion service for a structured verdict. Any
// transport or parse failure degrades to the default verdict so the
// pipeline never blocks on an AI outage.
func (uc *AnalysisUsecase) ScoreCV(ctx context.Context, cvText, jobDescription, jobTitle string) Verdict {
	prompt := buildScoringPrompt(cvText, jobDescription, jobTitle)

	text, err := uc.ai.Complete(ctx, service.CompletionRequest{
		Messages: []service.CompletionMessage{
			{Role: service.RoleSystem, Content: "You are an expert recruiter and HR professional."},
			{Role: service.RoleUser, Content: prompt},
		},
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		uc.logger.Warn("cv analysis completion failed", zap.Error(err))
		return fallbackVerdict(err)
	}

	verdict, err := parseVerdict(text)
	if err != nil {
		uc.logger.Warn("cv analysis verdict rejected", zap.Error(err))
		return fallbackVerdict(err)
	}
	return verdict
}

// DeriveStatus double-gates the model's categorical verdict against its
// own numeric score.
func DeriveStatus(score float64, recommendation string) string {
	switch {
	case recommendation == "shortlist" && score >= 80:
		return model.ApplicationStatusShortlisted
	case recommendation == "reject" && score < 40:
		return model.ApplicationStatusRejected
	default:
		return model.ApplicationStatusReviewing
	}
}

// TopCandidates ranks an owned job's analyzed applications by CV
// embedding distance to the job description embedding.
func (uc *AnalysisUsecase) TopCandidates(ctx context.Context, managerID, jobID uuid.UUID, topK int) ([]CandidateRank, error) {
	if topK <= 0 {
		topK = 10
	}
	job, err := uc.jobRepo.FindJobByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job")
		}
		return nil, err
	}
	if job.HiringManagerID != managerID {
		return nil, apperror.Unauthorized("not authorized to view candidates for this job")
	}

	if len(job.Embedding.Slice()) == 0 {
		if uc.embedder == nil {
			return nil, apperror.ExternalService(fmt.Errorf("no embedding service configured"))
		}
		emb, err := uc.embedder.Embed(ctx, job.Description)
		if err != nil {
			return nil, apperror.ExternalService(err)
		}
		job.Embedding = pgvector.NewVector(emb)
		if err := uc.jobRepo.UpdateJob(job); err != nil {
			return nil, err
		}
	}

	apps, err := uc.appRepo.RankApplicationsByEmbedding(jobID, job.Embedding, topK)
	if err != nil {
		return nil, err
	}

	ranks := make([]CandidateRank, 0, len(apps))
	for _, app := range apps {
		rank := CandidateRank{
			ApplicationID:  app.ID,
			Score:          app.AIScore,
			Recommendation: app.AIRecommendation,
			Status:         app.Status,
		}
		if applicant, err := uc.userRepo.FindUserByID(app.ApplicantID); err == nil {
			rank.ApplicantName = applicant.FullName
			rank.ApplicantEmail = applicant.Email
		} else {
			rank.ApplicantName = "Unknown"
		}
		ranks = append(ranks, rank)
	}
	return ranks, nil
}

func buildScoringPrompt(cvText, jobDescription, jobTitle string) string {
	return fmt.Sprintf(`You are an expert recruiter analyzing a CV for a job position.

**Job Title:** %s

**Job Description:**
%s

**Candidate's CV:**
%s

Please analyze this CV and provide:
1. A match score (0-100) based on how well the candidate fits the role
2. A brief summary (2-3 sentences) of the candidate's key qualifications
3. A recommendation: "shortlist", "review", or "reject"
4. Reasoning for your recommendation (2-3 sentences)
5. List of key skills extracted from the CV

Respond in JSON format:
{
  "score": 85,
  "summary": "...",
  "recommendation": "shortlist",
  "reasoning": "...",
  "skills": ["JavaScript", "React", "Node.js", "AWS"]
}
`, jobTitle, jobDescription, cvText)
}

func fallbackVerdict(cause error) Verdict {
	return Verdict{
		Score:          50,
		Summary:        "Unable to analyze CV automatically. Manual review required.",
		Recommendation: "review",
		Reasoning:      fmt.Sprintf("Error during AI analysis: %v", cause),
		Skills:         []string{},
	}
}

// parseVerdict extracts and validates the five verdict fields from the
// raw completion text. Out-of-range scores and unknown recommendation
// tags are rejected so the caller falls back to the default verdict.
func parseVerdict(text string) (Verdict, error) {
	cleaned := stripCodeFences(text)
	if !gjson.Valid(cleaned) {
		return Verdict{}, fmt.Errorf("completion is not valid JSON")
	}

	parsed := gjson.Parse(cleaned)
	scoreField := parsed.Get("score")
	recField := parsed.Get("recommendation")
	if !scoreField.Exists() || !recField.Exists() {
		return Verdict{}, fmt.Errorf("completion is missing score or recommendation")
	}

	score := scoreField.Float()
	if score < 0 || score > 100 {
		return Verdict{}, fmt.Errorf("score %v out of range [0,100]", score)
	}

	recommendation := strings.ToLower(strings.TrimSpace(recField.String()))
	switch recommendation {
	case "shortlist", "review", "reject":
	default:
		return Verdict{}, fmt.Errorf("unknown recommendation %q", recField.String())
	}

	var skills []string
	for _, s := range parsed.Get("skills").Array() {
		skills = append(skills, s.String())
	}

	return Verdict{
		Score:          score,
		Summary:        parsed.Get("summary").String(),
		Recommendation: recommendation,
		Reasoning:      parsed.Get("reasoning").String(),
		Skills:         skills,
	}, nil
}

func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}
