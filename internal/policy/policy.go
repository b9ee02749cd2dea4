// Package policy implement access rule that gate every sensitive read and every mutation.
package policy

import (
	"fmt"

	"github.com/google/uuid"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
)

// Caller is an authenticated account as resolved from its bearer token.
type Caller struct {
	ID   uuid.UUID
	Role model.Role
}

// FromUser build Caller from account record
func FromUser(u model.User) Caller {
	return Caller{ID: u.ID, Role: u.Role}
}

// Action names an operation guarded by the policy.
type Action int

// Guarded actions
const (
	CreateAccount Action = iota
	PostJob
	BrowseJobs
	ListOwnJobs
	Apply
	ListOwnApplications
	ListJobApplications
	UpdateApplicationStatus
)

func (a Action) String() string {
	switch a {
	case CreateAccount:
		return "create account"
	case PostJob:
		return "post job"
	case BrowseJobs:
		return "browse jobs"
	case ListOwnJobs:
		return "list own jobs"
	case Apply:
		return "apply to job"
	case ListOwnApplications:
		return "list own applications"
	case ListJobApplications:
		return "list job applications"
	case UpdateApplicationStatus:
		return "update application status"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// rule say which role may perform an action and whether the resource must be owned by the caller.
type rule struct {
	role  model.Role
	owned bool
}

var rules = map[Action]rule{
	CreateAccount:           {role: model.RoleAdmin},
	PostJob:                 {role: model.RoleCompany, owned: true},
	BrowseJobs:              {role: model.RoleUser},
	ListOwnJobs:             {role: model.RoleCompany, owned: true},
	Apply:                   {role: model.RoleUser, owned: true},
	ListOwnApplications:     {role: model.RoleUser, owned: true},
	ListJobApplications:     {role: model.RoleCompany, owned: true},
	UpdateApplicationStatus: {role: model.RoleCompany, owned: true},
}

// Permits reports whether role may perform action on some resource, ignoring ownership.
// Used at route level where the resource owner is not known yet.
func Permits(role model.Role, action Action) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}

	switch role {
	case model.RoleAdmin, model.RoleCompany, model.RoleUser:
		return role == r.role
	default:
		return false
	}
}

// Allow is the authorization predicate. owner is the account owning the resource
// (the job's company, the applicant, ...) and is ignored for action without ownership.
func Allow(caller Caller, action Action, owner uuid.UUID) bool {
	if caller.ID == uuid.Nil {
		return false
	}
	if !Permits(caller.Role, action) {
		return false
	}
	if rules[action].owned && owner != caller.ID {
		return false
	}
	return true
}

// Check is Allow returning Forbidden error on deny.
func Check(caller Caller, action Action, owner uuid.UUID) error {
	if Allow(caller, action, owner) {
		return nil
	}
	return apperror.New(apperror.Forbidden, fmt.Sprintf("not allowed to %s", action), nil)
}
