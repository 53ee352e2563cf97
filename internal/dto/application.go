package dto

import (
	"time"

	"github.com/shiftmatch/staffing-api/internal/models"
)

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID            uint64                   `json:"id"`
	JobID         uint64                   `json:"job_id"`
	ApplicantID   uint64                   `json:"applicant_id"`
	CoverLetter   string                   `json:"cover_letter"`
	Availability  string                   `json:"availability"`
	Status        models.ApplicationStatus `json:"status"`
	AssignedJobID *uint64                  `json:"assigned_job_id,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	Applicant     *ApplicantDTO            `json:"applicant,omitempty"`
	Job           *JobPostingDTO           `json:"job,omitempty"`
}

// AcceptResponseDTO is the outcome of an accept call. When assignment is
// pending the hire has not been committed and active_postings carries the
// organizer's choices for the required assign step.
type AcceptResponseDTO struct {
	Application       ApplicationDTO  `json:"application"`
	PendingAssignment bool            `json:"pending_assignment"`
	ActivePostings    []JobPostingDTO `json:"active_postings,omitempty"`
}

// ReviewDTO represents a review in API responses
type ReviewDTO struct {
	ID            uint64    `json:"id"`
	OrganizerID   uint64    `json:"organizer_id"`
	StaffID       uint64    `json:"staff_id"`
	JobID         uint64    `json:"job_id"`
	ApplicationID uint64    `json:"application_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToApplicationDTO converts an Application model to ApplicationDTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:            app.ID,
		JobID:         app.JobID,
		ApplicantID:   app.ApplicantID,
		CoverLetter:   app.CoverLetter,
		Availability:  app.Availability,
		Status:        app.Status,
		AssignedJobID: app.AssignedJobID,
		CreatedAt:     app.CreatedAt,
	}

	// Include applicant if preloaded
	if app.Applicant.ID != 0 {
		applicant := ToApplicantDTO(app.Applicant)
		dto.Applicant = &applicant
	}

	// Include job if preloaded
	if app.Job.ID != 0 {
		job := ToJobPostingDTO(app.Job)
		dto.Job = &job
	}

	return dto
}

// ToApplicationDTOs converts a slice of applications
func ToApplicationDTOs(apps []models.Application) []ApplicationDTO {
	items := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		items[i] = ToApplicationDTO(app)
	}
	return items
}

// ToAcceptResponseDTO converts an accept result for the API
func ToAcceptResponseDTO(app models.Application, pending bool, postings []models.JobPosting) AcceptResponseDTO {
	resp := AcceptResponseDTO{
		Application:       ToApplicationDTO(app),
		PendingAssignment: pending,
	}
	if pending {
		resp.ActivePostings = make([]JobPostingDTO, len(postings))
		for i, p := range postings {
			resp.ActivePostings[i] = ToJobPostingDTO(p)
		}
	}
	return resp
}

// ToReviewDTO converts a Review model to ReviewDTO
func ToReviewDTO(review models.Review) ReviewDTO {
	return ReviewDTO{
		ID:            review.ID,
		OrganizerID:   review.OrganizerID,
		StaffID:       review.StaffID,
		JobID:         review.JobID,
		ApplicationID: review.ApplicationID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		CreatedAt:     review.CreatedAt,
	}
}
