package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	// ApplicationStatusApplied is the initial state, set when user apply to a job
	ApplicationStatusApplied ApplicationStatus = "Applied"
	// ApplicationStatusAccepted indicates that the company accepted the applicant
	ApplicationStatusAccepted ApplicationStatus = "Accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// applicationTransitions lists every allowed move. States missing from the map are terminal.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

// IsTerminal reports whether no transition leaves s.
func (s ApplicationStatus) IsTerminal() bool {
	return len(applicationTransitions[s]) == 0
}

// CanTransition reports whether an application in from may move to to.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseApplicationStatus maps raw status into ApplicationStatus.
// Matching is case insensitive because older rows stored "applied".
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "applied":
		return ApplicationStatusApplied, true
	case "accepted":
		return ApplicationStatusAccepted, true
	case "rejected":
		return ApplicationStatusRejected, true
	default:
		return "", false
	}
}

// Application represents a job application record, at most one per (user, job)
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_user_job,priority:1" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"applicant,omitempty"`

	JobID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_application_user_job,priority:2" json:"job_id"`
	Job   *Job      `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"job,omitempty"`

	Status          ApplicationStatus `gorm:"type:text;not null;default:'Applied';check:status IN ('Applied', 'Accepted', 'Rejected')" json:"status"`
	AppliedAt       time.Time         `gorm:"not null;index" json:"applied_at"`
	StatusChangedAt time.Time         `gorm:"not null" json:"status_changed_at"`
}
