package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
)

// Application carries the submitted CV plus the AI annotation fields.
// The AI fields are meaningful only when AIProcessed is true; before
// that a zero AIScore means "not yet analyzed", not a real score.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;index;not null" json:"job_id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;index;not null" json:"applicant_id"`
	CoverLetter string    `gorm:"type:text;not null" json:"cover_letter"`
	CVFilename  string    `gorm:"not null" json:"cv_filename"`
	CVContent   []byte    `gorm:"type:bytea" json:"-"`
	Status      string    `gorm:"type:varchar(50);default:'pending'" json:"status"`

	CVParsedText     string          `gorm:"type:text" json:"-"`
	AIScore          float64         `gorm:"type:float" json:"ai_score"`
	AISummary        string          `gorm:"type:text" json:"ai_summary"`
	AIRecommendation string          `gorm:"type:varchar(50)" json:"ai_recommendation"`
	AIReasoning      string          `gorm:"type:text" json:"ai_reasoning"`
	SkillsExtracted  string          `gorm:"type:jsonb" json:"skills_extracted"`
	AIProcessed      bool            `gorm:"default:false" json:"ai_processed"`
	AIProcessedAt    *time.Time      `json:"ai_processed_at"`
	CVEmbedding      pgvector.Vector `gorm:"type:vector(3072)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}
