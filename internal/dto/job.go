package dto

import (
	"time"

	"github.com/shiftmatch/staffing-api/internal/models"
)

// JobPostingDTO represents a posting in API responses
type JobPostingDTO struct {
	ID              uint64               `json:"id"`
	OrganizerID     uint64               `json:"organizer_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	Location        string               `json:"location"`
	PositionsNeeded int                  `json:"positions_needed"`
	HourlyRate      int                  `json:"hourly_rate"`
	Role            string               `json:"role"`
	Status          models.PostingStatus `json:"status"`
	Hired           int                  `json:"hired"`
	CreatedAt       time.Time            `json:"created_at"`
}

// OpenJobDTO is a posting in the staff browse view: joined with the
// organizer's display identity and flagged when near the viewer's location.
type OpenJobDTO struct {
	JobPostingDTO
	Organizer OrganizerDTO `json:"organizer"`
	Nearby    bool         `json:"nearby"`
}

// JobListResponse represents a paginated list of postings
type JobListResponse struct {
	Postings   []JobPostingDTO `json:"postings"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int64           `json:"total_count"`
}

// ToJobPostingDTO converts a JobPosting model to JobPostingDTO
func ToJobPostingDTO(posting models.JobPosting) JobPostingDTO {
	return JobPostingDTO{
		ID:              posting.ID,
		OrganizerID:     posting.OrganizerID,
		Title:           posting.Title,
		Description:     posting.Description,
		StartDate:       posting.StartDate,
		EndDate:         posting.EndDate,
		StartTime:       posting.StartTime,
		EndTime:         posting.EndTime,
		Location:        posting.Location,
		PositionsNeeded: posting.PositionsNeeded,
		HourlyRate:      posting.HourlyRate,
		Role:            posting.Role,
		Status:          posting.Status,
		Hired:           posting.Hired,
		CreatedAt:       posting.CreatedAt,
	}
}

// ToOpenJobDTO converts an active posting (with preloaded organizer) for the
// staff browse view.
func ToOpenJobDTO(posting models.JobPosting, nearby bool) OpenJobDTO {
	return OpenJobDTO{
		JobPostingDTO: ToJobPostingDTO(posting),
		Organizer:     ToOrganizerDTO(posting.Organizer),
		Nearby:        nearby,
	}
}

// ToJobListResponse converts a slice of postings to JobListResponse
func ToJobListResponse(postings []models.JobPosting, page, pageSize int, totalCount int64) JobListResponse {
	items := make([]JobPostingDTO, len(postings))
	for i, posting := range postings {
		items[i] = ToJobPostingDTO(posting)
	}

	return JobListResponse{
		Postings:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
