package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DraftTypeRejection = "rejection"
	DraftTypeShortlist = "shortlist"
	DraftTypeInterview = "interview"
)

// EmailDraft rows are append-only: every generation creates a new row,
// even for the same application and type. Sent flips true exactly once,
// only after the mailer confirmed delivery.
type EmailDraft struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;index;not null" json:"application_id"`
	DraftType     string    `gorm:"type:varchar(50);not null" json:"draft_type"`
	Subject       string    `gorm:"not null" json:"subject"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	Sent          bool      `gorm:"default:false" json:"sent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *EmailDraft) TableName() string {
	return "email_drafts"
}
