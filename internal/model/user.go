// Package model contain gorm model for recording data to database
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role string

// Roles an account can hold
const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCompany, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts raw role string from storage or token into Role.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}

// User is the account record shared by every role.
// Role specific data live in their own table keyed by user id (see Company).
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"type:text;not null;index;check:role IN ('user', 'company', 'admin')" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Company holds company profile, owner of zero or more job.
type Company struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	User     User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Location string    `gorm:"type:text;not null" json:"location"`
}

// NormalizeEmail lower case and trim email so uniqueness does not depend on casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
