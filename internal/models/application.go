package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a staff member's request to fill one position on a posting.
// JobID is the posting applied to; AssignedJobID is the posting the hire was
// actually committed against, which can differ when the organizer assigns the
// applicant to another of their active postings. AssignedJobID is set iff the
// application is accepted.
type Application struct {
	ID            uint64            `gorm:"primarykey" json:"id"`
	JobID         uint64            `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	ApplicantID   uint64            `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	CoverLetter   string            `gorm:"type:text;not null" json:"cover_letter"`
	Availability  string            `gorm:"type:text;not null" json:"availability"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AssignedJobID *uint64           `json:"assigned_job_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Job         JobPosting  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant   User        `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	AssignedJob *JobPosting `gorm:"foreignKey:AssignedJobID" json:"assigned_job,omitempty"`
}
