// Package service implement account management, the job catalog and the application ledger.
// Services accept store interfaces at construction and hold no other shared state.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobposter-backend/internal/model"
	"jobposter-backend/internal/repository"
)

// AccountRepository is the account store used by AccountService.
type AccountRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	CreateCompany(ctx context.Context, company *model.Company) error
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// JobRepository is the job store used by Catalog and Ledger.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Job, error)
	List(ctx context.Context, filter repository.JobFilter) ([]model.Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Job, error)
}

// ApplicationRepository is the application store used by Ledger and Catalog.
// Create must reject a second application for the same (user, job) with
// DuplicateApplication, and CompareAndSetStatus must be a single atomic step.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.Application, error)
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	AppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to model.ApplicationStatus, at time.Time) error
}

// Clock return current time. Tests replace it to pin timestamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
