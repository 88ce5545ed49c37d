package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) CreateJob(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) UpdateJob(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepository) FindJobByID(id uuid.UUID) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "id = ?", id).Error
	return &j, err
}

func (r *JobRepository) FindJobsByManager(managerID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Where("hiring_manager_id = ?", managerID).
		Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) FindJobsByManagerPaged(managerID uuid.UUID, offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64
	q := r.db.Model(&model.Job{}).Where("hiring_manager_id = ?", managerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepository) FindOpenJobsPaged(offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64
	q := r.db.Model(&model.Job{}).Where("status = ?", model.JobStatusOpen)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error
	return jobs, total, err
}

// FindJobsByManagerAndTitle matches the title as a case-insensitive
// substring. Result order follows the underlying retrieval order.
func (r *JobRepository) FindJobsByManagerAndTitle(managerID uuid.UUID, title string) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Where("hiring_manager_id = ? AND title ILIKE ?", managerID, "%"+title+"%").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) FindJobsByManagerCreatedSince(managerID uuid.UUID, since time.Time) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Where("hiring_manager_id = ? AND created_at >= ?", managerID, since).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) FindHighestSalaryJob(managerID uuid.UUID) (*model.Job, error) {
	var j model.Job
	err := r.db.Where("hiring_manager_id = ?", managerID).
		Order("salary_max DESC").First(&j).Error
	return &j, err
}

type JobApplicationCount struct {
	Title string
	Count int64
}

// FindMostAppliedJob returns the manager's job with the highest
// application count. Ties break on the aggregation's arbitrary order.
func (r *JobRepository) FindMostAppliedJob(managerID uuid.UUID) (*JobApplicationCount, error) {
	var result JobApplicationCount
	err := r.db.Raw(`
        SELECT j.title AS title, COUNT(a.id) AS count
        FROM jobs j
        JOIN applications a ON a.job_id = j.id
        WHERE j.hiring_manager_id = ?
        GROUP BY j.id, j.title
        ORDER BY COUNT(a.id) DESC
        LIMIT 1
    `, managerID).Scan(&result).Error
	if err != nil {
		return nil, err
	}
	if result.Title == "" && result.Count == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &result, nil
}
