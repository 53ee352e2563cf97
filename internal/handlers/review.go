package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/dto"
	apierrors "github.com/shiftmatch/staffing-api/internal/errors"
	"github.com/shiftmatch/staffing-api/internal/middleware"
	"github.com/shiftmatch/staffing-api/internal/services"
)

// ReviewHandler coordinates review HTTP handlers.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Submit records a review of a hired applicant.
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitReviewRequest struct {
		ApplicationID uint64 `json:"application_id" binding:"required"`
		Rating        int    `json:"rating"`
		Comment       string `json:"comment"`
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.Submit(services.SubmitReviewInput{
		OrganizerID:   userID,
		ApplicationID: req.ApplicationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReviewDTO(*review))
}

// Check reports whether the current organizer has reviewed a staff member
// for a job.
func (h *ReviewHandler) Check(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	staffID, err := strconv.ParseUint(c.Query("staff_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid staff_id")
		return
	}
	jobID, err := strconv.ParseUint(c.Query("job_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job_id")
		return
	}

	reviewed, err := h.reviewService.HasReviewed(userID, staffID, jobID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviewed": reviewed})
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRatingRequired),
		errors.Is(err, services.ErrNotHired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateReview):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrNotPostingOwner):
		apierrors.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrBackendUnavailable):
		apierrors.ServiceUnavailable(c, "Database setup required. Please contact your administrator.")
	default:
		apierrors.InternalError(c, "")
	}
}
