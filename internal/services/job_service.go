package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPostingFieldsRequired = errors.New("title, start date, location, positions, hourly rate and role are required")
	ErrInvalidPositions      = errors.New("positions needed must be a positive number")
	ErrInvalidHourlyRate     = errors.New("hourly rate must be a non-negative number")
	ErrPostingNotFound       = errors.New("job posting not found")
	ErrBackendUnavailable    = errors.New("database setup required")
)

// JobService handles the posting lifecycle and the staff browse flow.
type JobService struct {
	jobRepo repository.JobRepository
	appRepo repository.ApplicationRepository
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		appRepo: appRepo,
	}
}

// CreatePostingInput represents input for creating a posting. PositionsNeeded
// and HourlyRate arrive as strings from the form; the rate may carry currency
// symbols which are stripped before parsing.
type CreatePostingInput struct {
	OrganizerID     uint64
	Title           string
	Description     string
	StartDate       string
	EndDate         string
	StartTime       string
	EndTime         string
	Location        string
	PositionsNeeded string
	HourlyRate      string
	Role            string
}

// CreatePosting validates and creates a posting. EndDate defaults to
// StartDate; new postings start active with zero hires.
func (s *JobService) CreatePosting(input CreatePostingInput) (*models.JobPosting, error) {
	if input.Title == "" || input.StartDate == "" || input.Location == "" ||
		input.PositionsNeeded == "" || input.HourlyRate == "" || input.Role == "" {
		return nil, ErrPostingFieldsRequired
	}

	positions, err := strconv.Atoi(input.PositionsNeeded)
	if err != nil || positions <= 0 {
		return nil, ErrInvalidPositions
	}

	rate, err := parseHourlyRate(input.HourlyRate)
	if err != nil {
		return nil, ErrInvalidHourlyRate
	}

	endDate := input.EndDate
	if endDate == "" {
		endDate = input.StartDate
	}

	posting := &models.JobPosting{
		OrganizerID:     input.OrganizerID,
		Title:           input.Title,
		Description:     input.Description,
		StartDate:       input.StartDate,
		EndDate:         endDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Location:        input.Location,
		PositionsNeeded: positions,
		HourlyRate:      rate,
		Role:            input.Role,
		Status:          models.PostingStatusActive,
		Hired:           0,
	}

	if err := s.jobRepo.Create(posting); err != nil {
		return nil, classifyRepoError(err, "failed to create posting")
	}

	return posting, nil
}

// ListPostings returns an organizer's postings, newest first.
func (s *JobService) ListPostings(organizerID uint64, page, pageSize int) ([]models.JobPosting, int64, error) {
	filter := repository.JobFilter{
		OrganizerID: &organizerID,
		Page:        page,
		PageSize:    pageSize,
	}

	postings, total, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, 0, classifyRepoError(err, "failed to list postings")
	}

	return postings, total, nil
}

// GetPosting returns a posting by ID.
func (s *JobService) GetPosting(id uint64) (*models.JobPosting, error) {
	posting, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, classifyRepoError(err, "failed to find posting")
	}
	return posting, nil
}

// UpdatePostingInput represents partial updates to a posting.
type UpdatePostingInput struct {
	Title           *string
	Description     *string
	StartDate       *string
	EndDate         *string
	StartTime       *string
	EndTime         *string
	Location        *string
	PositionsNeeded *string
	HourlyRate      *string
	Role            *string
}

// UpdatePosting applies the given fields and rederives status, since a
// capacity change can fill or reopen the posting.
func (s *JobService) UpdatePosting(id uint64, input UpdatePostingInput) (*models.JobPosting, error) {
	posting, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, classifyRepoError(err, "failed to find posting")
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrPostingFieldsRequired
		}
		posting.Title = *input.Title
	}
	if input.Description != nil {
		posting.Description = *input.Description
	}
	if input.StartDate != nil {
		posting.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		posting.EndDate = *input.EndDate
	}
	if input.StartTime != nil {
		posting.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		posting.EndTime = *input.EndTime
	}
	if input.Location != nil {
		if *input.Location == "" {
			return nil, ErrPostingFieldsRequired
		}
		posting.Location = *input.Location
	}
	if input.PositionsNeeded != nil {
		positions, err := strconv.Atoi(*input.PositionsNeeded)
		if err != nil || positions <= 0 {
			return nil, ErrInvalidPositions
		}
		posting.PositionsNeeded = positions
	}
	if input.HourlyRate != nil {
		rate, err := parseHourlyRate(*input.HourlyRate)
		if err != nil {
			return nil, ErrInvalidHourlyRate
		}
		posting.HourlyRate = rate
	}
	if input.Role != nil {
		posting.Role = *input.Role
	}

	posting.RecomputeStatus()

	if err := s.jobRepo.Update(posting); err != nil {
		return nil, classifyRepoError(err, "failed to update posting")
	}

	return posting, nil
}

// DashboardStats summarizes an organizer's current postings and applicants.
type DashboardStats struct {
	ActivePostings  int64 `json:"active_postings"`
	TotalApplicants int64 `json:"total_applicants"`
	Accepted        int64 `json:"accepted"`
}

// GetDashboardStats folds the organizer's current records into counts.
func (s *JobService) GetDashboardStats(organizerID uint64) (*DashboardStats, error) {
	active, err := s.jobRepo.CountActiveByOrganizer(organizerID)
	if err != nil {
		return nil, classifyRepoError(err, "failed to count active postings")
	}

	total, err := s.appRepo.CountByOrganizer(organizerID, nil)
	if err != nil {
		return nil, classifyRepoError(err, "failed to count applicants")
	}

	accepted := models.ApplicationStatusAccepted
	hired, err := s.appRepo.CountByOrganizer(organizerID, &accepted)
	if err != nil {
		return nil, classifyRepoError(err, "failed to count accepted applicants")
	}

	return &DashboardStats{
		ActivePostings:  active,
		TotalApplicants: total,
		Accepted:        hired,
	}, nil
}

// ListOpenJobs returns all active postings joined with their organizer
// profiles, filtered by the free-text query. Filtering happens in memory so
// the substring semantics match the browse view exactly.
func (s *JobService) ListOpenJobs(query string) ([]models.JobPosting, error) {
	postings, err := s.jobRepo.ListOpen()
	if err != nil {
		return nil, classifyRepoError(err, "failed to list open jobs")
	}

	if strings.TrimSpace(query) == "" {
		return postings, nil
	}

	filtered := make([]models.JobPosting, 0, len(postings))
	for _, p := range postings {
		if MatchesQuery(p, query) {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

// MatchesQuery reports whether a posting matches the free-text search:
// case-insensitive substring over title, location, role, and description.
// The description is skipped when absent.
func MatchesQuery(posting models.JobPosting, query string) bool {
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(posting.Title), q) ||
		strings.Contains(strings.ToLower(posting.Location), q) ||
		strings.Contains(strings.ToLower(posting.Role), q) {
		return true
	}
	if posting.Description != "" && strings.Contains(strings.ToLower(posting.Description), q) {
		return true
	}

	return false
}

// IsNearby reports whether a job is near the user: either location string is
// a case-insensitive substring of the other. This is a deliberate text
// heuristic, not geocoded distance; false when either side is empty.
func IsNearby(jobLocation, userLocation string) bool {
	if jobLocation == "" || userLocation == "" {
		return false
	}

	job := strings.ToLower(jobLocation)
	user := strings.ToLower(userLocation)

	return strings.Contains(job, user) || strings.Contains(user, job)
}

// parseHourlyRate strips non-digit characters (currency symbols, separators)
// before parsing, mirroring the posting form's tolerant input.
func parseHourlyRate(raw string) (int, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0, fmt.Errorf("no digits in hourly rate %q", raw)
	}

	return strconv.Atoi(digits.String())
}

// classifyRepoError maps schema-missing failures to ErrBackendUnavailable so
// dependent views can degrade instead of crashing.
func classifyRepoError(err error, msg string) error {
	if repository.IsSchemaMissing(err) {
		return ErrBackendUnavailable
	}
	return fmt.Errorf("%s: %w", msg, err)
}
