package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleReviewer  UserRole = "reviewer"
	RoleAnnotator UserRole = "annotator"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleReviewer, RoleAnnotator:
		return true
	}
	return false
}

type User struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Role            UserRole  `gorm:"type:varchar(20);not null;default:'annotator'" json:"role"`
	Specialty       *string   `gorm:"type:varchar(255)" json:"specialty"`
	ExperienceYears *int      `json:"experience_years"`
	PasswordHash    string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
