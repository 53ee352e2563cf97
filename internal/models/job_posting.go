package models

import (
	"time"

	"gorm.io/gorm"
)

type PostingStatus string

const (
	PostingStatusActive PostingStatus = "active"
	PostingStatusFilled PostingStatus = "filled"
)

// JobPosting is an organizer's published shift with a capacity
// (PositionsNeeded) and fill progress (Hired). HourlyRate is stored in
// minor currency units.
type JobPosting struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	OrganizerID     uint64         `gorm:"not null;index" json:"organizer_id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	StartDate       string         `gorm:"type:varchar(20);not null" json:"start_date"`
	EndDate         string         `gorm:"type:varchar(20)" json:"end_date"`
	StartTime       string         `gorm:"type:varchar(10)" json:"start_time"`
	EndTime         string         `gorm:"type:varchar(10)" json:"end_time"`
	Location        string         `gorm:"not null" json:"location"`
	PositionsNeeded int            `gorm:"not null" json:"positions_needed"`
	HourlyRate      int            `gorm:"not null" json:"hourly_rate"`
	Role            string         `gorm:"type:varchar(100);not null" json:"role"`
	Status          PostingStatus  `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Hired           int            `gorm:"not null;default:0" json:"hired"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organizer    User          `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// DeriveStatus is the single source of truth for posting status: filled iff
// hired meets capacity. Every mutation of Hired or PositionsNeeded must go
// through this.
func DeriveStatus(hired, positionsNeeded int) PostingStatus {
	if hired >= positionsNeeded {
		return PostingStatusFilled
	}
	return PostingStatusActive
}

// RecomputeStatus applies the status derivation rule to the posting.
func (p *JobPosting) RecomputeStatus() {
	p.Status = DeriveStatus(p.Hired, p.PositionsNeeded)
}
