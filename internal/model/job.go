package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableJobInfo is part of job that the owning company provide
type EditableJobInfo struct {
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Location    string `gorm:"type:text;not null" json:"location"`
}

// Job is gorm model for store job post data in DB
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID;references:UserID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
	EditableJobInfo
	PostTime time.Time `gorm:"not null;index;<-:create" json:"post_time"`
}

// JobListing is a job as seen by a browsing user.
type JobListing struct {
	Job
	Applied bool `json:"applied"`
}
