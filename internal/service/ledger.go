package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/metrics"
	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
)

// Ledger manage applications and enforce their status machine.
type Ledger struct {
	apps ApplicationRepository
	jobs JobRepository
	now  Clock
	log  logrus.FieldLogger
}

// NewLedger creates Ledger. A nil clock means wall clock in UTC.
func NewLedger(apps ApplicationRepository, jobs JobRepository, clock Clock, log logrus.FieldLogger) *Ledger {
	if clock == nil {
		clock = utcNow
	}
	return &Ledger{apps: apps, jobs: jobs, now: clock, log: log}
}

// Submit create an Applied application of the caller to jobID.
func (l *Ledger) Submit(ctx context.Context, caller policy.Caller, jobID uuid.UUID) (model.Application, error) {
	app, err := l.submit(ctx, caller, jobID)
	l.observe("submit", err)
	return app, err
}

func (l *Ledger) submit(ctx context.Context, caller policy.Caller, jobID uuid.UUID) (model.Application, error) {
	if err := policy.Check(caller, policy.Apply, caller.ID); err != nil {
		return model.Application{}, err
	}
	if _, err := l.jobs.GetByID(ctx, jobID); err != nil {
		return model.Application{}, err
	}

	now := l.now()
	app := model.Application{
		UserID:          caller.ID,
		JobID:           jobID,
		Status:          model.ApplicationStatusApplied,
		AppliedAt:       now,
		StatusChangedAt: now,
	}
	if err := l.apps.Create(ctx, &app); err != nil {
		return model.Application{}, err
	}

	metrics.ApplicationsSubmitted.Inc()
	l.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"job_id":         jobID,
		"user_id":        caller.ID,
	}).Info("application submitted")
	return app, nil
}

// ListForUser return applications of userID, newest first, joined with job and company.
func (l *Ledger) ListForUser(ctx context.Context, caller policy.Caller, userID uuid.UUID) ([]model.Application, error) {
	if err := policy.Check(caller, policy.ListOwnApplications, userID); err != nil {
		return nil, err
	}
	return l.apps.ListByUser(ctx, userID)
}

// ListForJob return applications for jobID joined with applicant. Only the owning company may ask.
func (l *Ledger) ListForJob(ctx context.Context, caller policy.Caller, jobID uuid.UUID) ([]model.Application, error) {
	if !policy.Permits(caller.Role, policy.ListJobApplications) {
		return nil, policy.Check(caller, policy.ListJobApplications, uuid.Nil)
	}
	job, err := l.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(caller, policy.ListJobApplications, job.CompanyID); err != nil {
		return nil, err
	}
	return l.apps.ListByJob(ctx, jobID)
}

// HasApplied reports whether the caller already applied to jobID.
func (l *Ledger) HasApplied(ctx context.Context, caller policy.Caller, jobID uuid.UUID) (bool, error) {
	if err := policy.Check(caller, policy.ListOwnApplications, caller.ID); err != nil {
		return false, err
	}
	return l.apps.Exists(ctx, caller.ID, jobID)
}

// UpdateStatus move application id from Applied to the status named by raw.
// The change is a compare-and-set, so of several concurrent calls at most one succeed
// and the rest observe InvalidTransition.
func (l *Ledger) UpdateStatus(ctx context.Context, caller policy.Caller, id uuid.UUID, raw string) (model.Application, error) {
	app, err := l.updateStatus(ctx, caller, id, raw)
	l.observe("update_status", err)
	return app, err
}

func (l *Ledger) updateStatus(ctx context.Context, caller policy.Caller, id uuid.UUID, raw string) (model.Application, error) {
	if strings.TrimSpace(raw) == "" {
		return model.Application{}, apperror.New(apperror.InvalidInput, "Status is required", nil)
	}
	if !policy.Permits(caller.Role, policy.UpdateApplicationStatus) {
		return model.Application{}, policy.Check(caller, policy.UpdateApplicationStatus, uuid.Nil)
	}

	app, err := l.apps.GetByID(ctx, id)
	if err != nil {
		return model.Application{}, err
	}

	ownerID, err := l.jobOwner(ctx, app)
	if err != nil {
		return model.Application{}, err
	}
	if err := policy.Check(caller, policy.UpdateApplicationStatus, ownerID); err != nil {
		return model.Application{}, err
	}

	to, ok := model.ParseApplicationStatus(raw)
	if !ok || !model.CanTransition(app.Status, to) {
		return model.Application{}, apperror.New(apperror.InvalidTransition,
			"Cannot change status from "+string(app.Status)+" to "+strings.TrimSpace(raw), nil)
	}

	at := l.now()
	if err := l.apps.CompareAndSetStatus(ctx, app.ID, app.Status, to, at); err != nil {
		return model.Application{}, err
	}
	from := app.Status
	app.Status = to
	app.StatusChangedAt = at

	metrics.ApplicationTransitions.WithLabelValues(string(to)).Inc()
	l.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"from":           from,
		"to":             to,
		"company_id":     caller.ID,
	}).Info("application status changed")
	return app, nil
}

func (l *Ledger) jobOwner(ctx context.Context, app model.Application) (uuid.UUID, error) {
	if app.Job != nil {
		return app.Job.CompanyID, nil
	}
	job, err := l.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return uuid.Nil, err
	}
	return job.CompanyID, nil
}

func (l *Ledger) observe(operation string, err error) {
	if err == nil {
		return
	}
	kind := apperror.KindOf(err)
	if kind == apperror.Internal {
		l.log.WithError(err).WithField("operation", operation).Error("ledger operation failed")
	}
	metrics.RejectedOperations.WithLabelValues(operation, kind.String()).Inc()
}
