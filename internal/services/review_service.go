package services

import (
	"errors"

	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRatingRequired  = errors.New("please select a rating")
	ErrNotHired        = errors.New("reviews can only be left for hired staff")
	ErrDuplicateReview = errors.New("you have already reviewed this staff member for this job")
)

// ReviewService records post-hire feedback, one review per
// (organizer, staff, job) triple.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	appRepo    repository.ApplicationRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, appRepo repository.ApplicationRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		appRepo:    appRepo,
	}
}

// SubmitReviewInput represents a review of a hired applicant.
type SubmitReviewInput struct {
	OrganizerID   uint64
	ApplicationID uint64
	Rating        int
	Comment       string
}

// Submit records a review. The applicant must currently be accepted, and the
// database's unique index is the authority on duplicates: a violation comes
// back as a distinguishable duplicate-review error, not a generic failure.
func (s *ReviewService) Submit(input SubmitReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingRequired
	}

	app, err := s.appRepo.FindByID(input.ApplicationID, "Job")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, classifyRepoError(err, "failed to find application")
	}

	if app.Job.OrganizerID != input.OrganizerID {
		return nil, ErrNotPostingOwner
	}
	if app.Status != models.ApplicationStatusAccepted {
		return nil, ErrNotHired
	}

	review := &models.Review{
		OrganizerID:   input.OrganizerID,
		StaffID:       app.ApplicantID,
		JobID:         app.JobID,
		ApplicationID: app.ID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, classifyRepoError(err, "failed to create review")
	}

	return review, nil
}

// HasReviewed reports whether the organizer has already reviewed this staff
// member for this job.
func (s *ReviewService) HasReviewed(organizerID, staffID, jobID uint64) (bool, error) {
	exists, err := s.reviewRepo.Exists(organizerID, staffID, jobID)
	if err != nil {
		return false, classifyRepoError(err, "failed to check reviews")
	}
	return exists, nil
}
