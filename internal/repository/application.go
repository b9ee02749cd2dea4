package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
)

// ApplicationStore persist applications. Uniqueness of (user, job) and the
// Applied-only status change are both enforced by the database.
type ApplicationStore struct {
	db *gorm.DB
}

// NewApplicationStore creates ApplicationStore on top of db.
func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Create insert app. Second insert for the same (user, job) fail with DuplicateApplication.
func (s *ApplicationStore) Create(ctx context.Context, app *model.Application) error {
	err := s.db.WithContext(ctx).Omit("User", "Job").Create(app).Error
	switch pgCode(err) {
	case "":
		return err
	case uniqueViolation:
		return apperror.New(apperror.DuplicateApplication, "Already applied to this job", err)
	case foreignKeyViolation:
		return apperror.New(apperror.JobNotFound, "Job not found", err)
	default:
		return err
	}
}

// GetByID return application with its job.
func (s *ApplicationStore) GetByID(ctx context.Context, id uuid.UUID) (model.Application, error) {
	var app model.Application
	err := s.db.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Application{}, apperror.New(apperror.ApplicationNotFound, "Application not found", err)
	}
	return app, err
}

// ListByUser return applications of userID newest first, each joined with job and company.
func (s *ApplicationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Application, error) {
	apps := []model.Application{}
	err := s.db.WithContext(ctx).
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("applied_at DESC, id").
		Find(&apps).Error
	return apps, err
}

// ListByJob return applications for jobID in submission order, each joined with applicant.
func (s *ApplicationStore) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.Application, error) {
	apps := []model.Application{}
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", jobID).
		Order("applied_at, id").
		Find(&apps).Error
	return apps, err
}

// Exists reports whether userID applied to jobID.
func (s *ApplicationStore) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

// AppliedJobIDs return set of job ids userID applied to.
func (s *ApplicationStore) AppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("user_id = ?", userID).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}
	applied := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}

// CompareAndSetStatus move application id from status from to status to in a single
// conditional UPDATE. When the row is no longer in from, nothing is written and
// InvalidTransition is returned.
func (s *ApplicationStore) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to model.ApplicationStatus, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":            to,
			"status_changed_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.InvalidTransition, "Application status already decided", nil)
	}
	return nil
}
