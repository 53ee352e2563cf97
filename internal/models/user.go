package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOrganizer UserRole = "organizer"
	RoleStaff     UserRole = "staff"
)

// User is a marketplace account. Role is fixed at signup: organizers post
// jobs, staff browse and apply. Company is only set for organizers.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null" json:"role"`
	FullName     string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone        string         `gorm:"type:varchar(50);not null" json:"phone"`
	Company      string         `gorm:"type:varchar(255)" json:"company,omitempty"`
	Location     string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Postings     []JobPosting  `gorm:"foreignKey:OrganizerID" json:"-"`
	Applications []Application `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (User) TableName() string {
	return "user_profiles"
}
