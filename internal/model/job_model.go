package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Job struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string          `gorm:"not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Location        string          `gorm:"not null" json:"location"`
	SalaryMin       int             `gorm:"not null" json:"salary_min"`
	SalaryMax       int             `gorm:"not null" json:"salary_max"`
	Status          string          `gorm:"type:varchar(50);default:'open'" json:"status"`
	HiringManagerID uuid.UUID       `gorm:"type:uuid;index;not null" json:"hiring_manager_id"`
	Embedding       pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
