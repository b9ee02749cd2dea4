package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
	"jobposter-backend/internal/repository"
)

// memStore is an in-memory stand-in for the three gorm stores with the same
// uniqueness and compare-and-set guarantees.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]model.User
	companies map[uuid.UUID]model.Company
	jobs      map[uuid.UUID]model.Job
	apps      map[uuid.UUID]model.Application
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]model.User{},
		companies: map[uuid.UUID]model.Company{},
		jobs:      map[uuid.UUID]model.Job{},
		apps:      map[uuid.UUID]model.Application{},
	}
}

type memAccounts struct{ *memStore }
type memJobs struct{ *memStore }
type memApps struct{ *memStore }

func (s memAccounts) insertUser(user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperror.New(apperror.DuplicateEmail, "Email already registered", nil)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = *user
	return nil
}

func (s memAccounts) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertUser(user)
}

func (s memAccounts) CreateCompany(_ context.Context, company *model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertUser(&company.User); err != nil {
		return err
	}
	company.UserID = company.User.ID
	s.companies[company.UserID] = *company
	return nil
}

func (s memAccounts) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrAccountNotFound
}

func (s memAccounts) FindByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrAccountNotFound
	}
	return u, nil
}

func (s memJobs) Create(_ context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = uuid.New()
	s.jobs[job.ID] = *job
	return nil
}

func (s memJobs) withCompany(job model.Job) model.Job {
	if c, ok := s.companies[job.CompanyID]; ok {
		job.Company = &c
	}
	return job
}

func (s memJobs) GetByID(_ context.Context, id uuid.UUID) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return model.Job{}, apperror.New(apperror.JobNotFound, "Job not found", nil)
	}
	return s.withCompany(job), nil
}

func (s memJobs) List(_ context.Context, filter repository.JobFilter) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := []model.Job{}
	for _, job := range s.jobs {
		if filter.Search != "" && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(filter.Location)) {
			continue
		}
		jobs = append(jobs, s.withCompany(job))
	}
	sort.Slice(jobs, func(i, j int) bool {
		if filter.Desc {
			return jobs[i].PostTime.After(jobs[j].PostTime)
		}
		return jobs[i].PostTime.Before(jobs[j].PostTime)
	})
	return jobs, nil
}

func (s memJobs) ListByCompany(_ context.Context, companyID uuid.UUID) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := []model.Job{}
	for _, job := range s.jobs {
		if job.CompanyID == companyID {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (s memApps) Create(_ context.Context, app *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[app.JobID]; !ok {
		return apperror.New(apperror.JobNotFound, "Job not found", nil)
	}
	for _, a := range s.apps {
		if a.UserID == app.UserID && a.JobID == app.JobID {
			return apperror.New(apperror.DuplicateApplication, "Already applied to this job", nil)
		}
	}
	app.ID = uuid.New()
	s.apps[app.ID] = *app
	return nil
}

func (s memApps) GetByID(_ context.Context, id uuid.UUID) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return model.Application{}, apperror.New(apperror.ApplicationNotFound, "Application not found", nil)
	}
	job := s.jobs[app.JobID]
	app.Job = &job
	return app, nil
}

func (s memApps) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := []model.Application{}
	for _, a := range s.apps {
		if a.UserID == userID {
			job := memJobs(s).withCompany(s.jobs[a.JobID])
			a.Job = &job
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppliedAt.After(apps[j].AppliedAt) })
	return apps, nil
}

func (s memApps) ListByJob(_ context.Context, jobID uuid.UUID) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := []model.Application{}
	for _, a := range s.apps {
		if a.JobID == jobID {
			u := s.users[a.UserID]
			a.User = &u
			apps = append(apps, a)
		}
	}
	return apps, nil
}

func (s memApps) Exists(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (s memApps) AppliedJobIDs(_ context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := map[uuid.UUID]bool{}
	for _, a := range s.apps {
		if a.UserID == userID {
			applied[a.JobID] = true
		}
	}
	return applied, nil
}

func (s memApps) CompareAndSetStatus(_ context.Context, id uuid.UUID, from, to model.ApplicationStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok || app.Status != from {
		return apperror.New(apperror.InvalidTransition, "Application status already decided", nil)
	}
	app.Status = to
	app.StatusChangedAt = at
	s.apps[id] = app
	return nil
}
