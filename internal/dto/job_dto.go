package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
}

type JobDTO struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	SalaryMin       int       `json:"salary_min"`
	SalaryMax       int       `json:"salary_max"`
	Status          string    `json:"status"`
	HiringManagerID uuid.UUID `json:"hiring_manager_id"`
	CreatedAt       time.Time `json:"created_at"`
}
