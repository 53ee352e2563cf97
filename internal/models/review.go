package models

import "time"

// Review is post-hire feedback, at most one per (organizer, staff, job)
// triple. Uniqueness is enforced by the database; a violation surfaces as a
// distinguishable duplicate-review error rather than a generic failure.
type Review struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	OrganizerID   uint64    `gorm:"not null;uniqueIndex:idx_reviews_organizer_staff_job" json:"organizer_id"`
	StaffID       uint64    `gorm:"not null;uniqueIndex:idx_reviews_organizer_staff_job" json:"staff_id"`
	JobID         uint64    `gorm:"not null;uniqueIndex:idx_reviews_organizer_staff_job" json:"job_id"`
	ApplicationID uint64    `gorm:"not null" json:"application_id"`
	Rating        int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Organizer   User        `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Staff       User        `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Job         JobPosting  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Application Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}
