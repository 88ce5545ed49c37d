package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleApplicant     = "applicant"
	RoleHiringManager = "hiring_manager"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"not null" json:"full_name"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"type:varchar(50);default:'applicant';not null" json:"role"`
	IsActive       bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}
