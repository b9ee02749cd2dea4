package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
)

// JobFilter narrows the browse listing. Zero value list everything, oldest first.
type JobFilter struct {
	Search   string
	Location string
	Desc     bool
}

// JobStore persist jobs.
type JobStore struct {
	db *gorm.DB
}

// NewJobStore creates JobStore on top of db.
func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

// Create insert job owned by job.CompanyID.
func (s *JobStore) Create(ctx context.Context, job *model.Job) error {
	err := s.db.WithContext(ctx).Omit("Company").Create(job).Error
	if pgCode(err) == foreignKeyViolation {
		return apperror.New(apperror.Forbidden, "Company profile not found", err)
	}
	return err
}

// GetByID return job with its company.
func (s *JobStore) GetByID(ctx context.Context, id uuid.UUID) (model.Job, error) {
	var job model.Job
	err := s.db.WithContext(ctx).Preload("Company").First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Job{}, apperror.New(apperror.JobNotFound, "Job not found", err)
	}
	return job, err
}

// List return every job matching filter, joined with company.
func (s *JobStore) List(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	jobs := []model.Job{}
	result := s.db.WithContext(ctx).Model(&model.Job{}).Preload("Company")

	if filter.Search != "" {
		result = result.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Location != "" {
		result = result.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	err := result.Order(clause.OrderByColumn{
		Column: clause.Column{Name: "post_time"},
		Desc:   filter.Desc,
	}).Order("id").Find(&jobs).Error
	return jobs, err
}

// ListByCompany return jobs owned by companyID, newest first.
func (s *JobStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Job, error) {
	jobs := []model.Job{}
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("post_time DESC, id").
		Find(&jobs).Error
	return jobs, err
}
