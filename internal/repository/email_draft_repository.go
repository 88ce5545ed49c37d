package repository

import (
	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"gorm.io/gorm"
)

type EmailDraftRepository struct {
	db *gorm.DB
}

func NewEmailDraftRepository(db *gorm.DB) *EmailDraftRepository {
	return &EmailDraftRepository{db}
}

func (r *EmailDraftRepository) CreateDraft(draft *model.EmailDraft) error {
	return r.db.Create(draft).Error
}

func (r *EmailDraftRepository) UpdateDraft(draft *model.EmailDraft) error {
	return r.db.Save(draft).Error
}

func (r *EmailDraftRepository) FindDraftByID(id uuid.UUID) (*model.EmailDraft, error) {
	var d model.EmailDraft
	err := r.db.First(&d, "id = ?", id).Error
	return &d, err
}

func (r *EmailDraftRepository) FindDraftsByApplication(applicationID uuid.UUID) ([]model.EmailDraft, error) {
	var drafts []model.EmailDraft
	err := r.db.Where("application_id = ?", applicationID).
		Order("created_at DESC").Find(&drafts).Error
	return drafts, err
}
