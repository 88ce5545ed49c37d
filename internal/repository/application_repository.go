package repository

import (
	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) CreateApplication(app *model.Application) error {
	return r.db.Create(app).Error
}

func (r *ApplicationRepository) UpdateApplication(app *model.Application) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepository) FindApplicationByID(id uuid.UUID) (*model.Application, error) {
	var a model.Application
	err := r.db.First(&a, "id = ?", id).Error
	return &a, err
}

func (r *ApplicationRepository) FindApplicationsByJob(jobID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("job_id = ?", jobID).Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) FindApplicationsByApplicant(applicantID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("applicant_id = ?", applicantID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) CountApplicationsByManager(managerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.hiring_manager_id = ?", managerID).
		Count(&count).Error
	return count, err
}

// RankApplicationsByEmbedding orders a job's analyzed applications by
// CV-embedding distance to the given vector, nearest first.
func (r *ApplicationRepository) RankApplicationsByEmbedding(jobID uuid.UUID, embedding pgvector.Vector, topK int) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Raw(`
        SELECT *
        FROM applications
        WHERE job_id = ? AND ai_processed = true AND cv_embedding IS NOT NULL
        ORDER BY cv_embedding <-> ?
        LIMIT ?
    `, jobID, embedding, topK).Scan(&apps).Error
	return apps, err
}
