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
	"jobposter-backend/internal/repository"
)

// JobInput is the company supplied part of a new job.
type JobInput struct {
	Title       string
	Location    string
	Description string
}

// Catalog store and serve job postings.
type Catalog struct {
	jobs JobRepository
	apps ApplicationRepository
	now  Clock
	log  logrus.FieldLogger
}

// NewCatalog creates Catalog. A nil clock means wall clock in UTC.
func NewCatalog(jobs JobRepository, apps ApplicationRepository, clock Clock, log logrus.FieldLogger) *Catalog {
	if clock == nil {
		clock = utcNow
	}
	return &Catalog{jobs: jobs, apps: apps, now: clock, log: log}
}

// PostJob create a job owned by the calling company.
func (c *Catalog) PostJob(ctx context.Context, caller policy.Caller, in JobInput) (model.Job, error) {
	if err := policy.Check(caller, policy.PostJob, caller.ID); err != nil {
		return model.Job{}, err
	}

	info := model.EditableJobInfo{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
	}
	if info.Title == "" || info.Description == "" || info.Location == "" {
		return model.Job{}, apperror.New(apperror.InvalidInput, "Title, location and description are required", nil)
	}

	job := model.Job{
		CompanyID:       caller.ID,
		EditableJobInfo: info,
		PostTime:        c.now(),
	}
	if err := c.jobs.Create(ctx, &job); err != nil {
		return model.Job{}, err
	}

	metrics.JobsPosted.Inc()
	c.log.WithFields(logrus.Fields{"job_id": job.ID, "company_id": job.CompanyID}).Info("job posted")
	return job, nil
}

// ListAllJobs return every job with its company, flagged with whether the caller applied.
func (c *Catalog) ListAllJobs(ctx context.Context, caller policy.Caller, filter repository.JobFilter) ([]model.JobListing, error) {
	if err := policy.Check(caller, policy.BrowseJobs, uuid.Nil); err != nil {
		return nil, err
	}

	jobs, err := c.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	applied, err := c.apps.AppliedJobIDs(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	listings := make([]model.JobListing, 0, len(jobs))
	for _, job := range jobs {
		listings = append(listings, model.JobListing{Job: job, Applied: applied[job.ID]})
	}
	return listings, nil
}

// ListJobsForCompany return jobs owned by companyID.
func (c *Catalog) ListJobsForCompany(ctx context.Context, caller policy.Caller, companyID uuid.UUID) ([]model.Job, error) {
	if err := policy.Check(caller, policy.ListOwnJobs, companyID); err != nil {
		return nil, err
	}
	return c.jobs.ListByCompany(ctx, companyID)
}
