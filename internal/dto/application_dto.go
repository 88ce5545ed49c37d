package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationDTO struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
	CVFilename  string    `json:"cv_filename"`
	Status      string    `json:"status"`
	AIProcessed bool      `json:"ai_processed"`
	CreatedAt   time.Time `json:"created_at"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
