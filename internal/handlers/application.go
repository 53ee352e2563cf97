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

// ApplicationHandler coordinates the applicant workflow HTTP handlers.
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
	}
}

// Apply submits an application to an open posting for the current staff user.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	type ApplyRequest struct {
		CoverLetter  string `json:"cover_letter" binding:"required"`
		Availability string `json:"availability" binding:"required"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please fill in all fields")
		return
	}

	app, err := h.appService.Apply(services.ApplyInput{
		JobID:        jobID,
		ApplicantID:  userID,
		CoverLetter:  req.CoverLetter,
		Availability: req.Availability,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListMine returns the current staff user's applications, newest first.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	apps, err := h.appService.ListApplications(userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": dto.ToApplicationDTOs(apps)})
}

// ListApplicants returns the non-rejected applicants across the current
// organizer's postings.
func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	apps, err := h.appService.ListApplicants(userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applicants": dto.ToApplicationDTOs(apps)})
}

// ListApplicantsForPosting returns the non-rejected applicants for the
// posting loaded by RequirePostingOwnership.
func (h *ApplicationHandler) ListApplicantsForPosting(c *gin.Context) {
	posting, ok := middleware.GetPosting(c)
	if !ok {
		apierrors.InternalError(c, "Posting not found in context")
		return
	}

	apps, err := h.appService.ListApplicantsForPosting(posting.ID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applicants": dto.ToApplicationDTOs(apps)})
}

// Accept hires an applicant. With several active postings no state changes
// and the response asks for an explicit assignment instead.
func (h *ApplicationHandler) Accept(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid application ID")
		return
	}

	result, err := h.appService.Accept(applicationID, userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAcceptResponseDTO(
		*result.Application,
		result.PendingAssignment,
		result.ActivePostings,
	))
}

// Assign commits a deferred hire against the chosen posting.
func (h *ApplicationHandler) Assign(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid application ID")
		return
	}

	type AssignRequest struct {
		JobID uint64 `json:"job_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.Assign(applicationID, req.JobID, userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// Reject marks an applicant rejected, reversing any committed hire.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid application ID")
		return
	}

	app, err := h.appService.Reject(applicationID, userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationFieldsMissing):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrAlreadyAccepted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrPostingNotFound),
		errors.Is(err, services.ErrNotPostingOwner):
		apierrors.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrNoActivePostings),
		errors.Is(err, services.ErrInvalidAssignTarget):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrBackendUnavailable):
		apierrors.ServiceUnavailable(c, "Database setup required. Please contact your administrator.")
	default:
		apierrors.InternalError(c, "")
	}
}
