package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/dto"
	apierrors "github.com/shiftmatch/staffing-api/internal/errors"
	"github.com/shiftmatch/staffing-api/internal/middleware"
	"github.com/shiftmatch/staffing-api/internal/services"
	"github.com/shiftmatch/staffing-api/internal/utils"
)

// JobHandler coordinates posting lifecycle and browse HTTP handlers.
type JobHandler struct {
	jobService  *services.JobService
	authService *services.AuthService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService, authService *services.AuthService) *JobHandler {
	return &JobHandler{
		jobService:  jobService,
		authService: authService,
	}
}

// CreatePosting creates a new job posting for the current organizer.
func (h *JobHandler) CreatePosting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePostingRequest struct {
		Title           string `json:"title" binding:"required"`
		Description     string `json:"description"`
		StartDate       string `json:"start_date" binding:"required"`
		EndDate         string `json:"end_date"`
		StartTime       string `json:"start_time"`
		EndTime         string `json:"end_time"`
		Location        string `json:"location" binding:"required"`
		PositionsNeeded string `json:"positions_needed" binding:"required"`
		HourlyRate      string `json:"hourly_rate" binding:"required"`
		Role            string `json:"role" binding:"required"`
	}

	var req CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please fill in all required fields")
		return
	}

	posting, err := h.jobService.CreatePosting(services.CreatePostingInput{
		OrganizerID:     userID,
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		PositionsNeeded: req.PositionsNeeded,
		HourlyRate:      req.HourlyRate,
		Role:            req.Role,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobPostingDTO(*posting))
}

// ListPostings returns the current organizer's postings, newest first.
func (h *JobHandler) ListPostings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	postings, total, err := h.jobService.ListPostings(userID, params.Page, params.Limit)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(postings, params.Page, params.Limit, total))
}

// GetPosting returns the posting loaded by RequirePostingOwnership.
func (h *JobHandler) GetPosting(c *gin.Context) {
	posting, ok := middleware.GetPosting(c)
	if !ok {
		apierrors.InternalError(c, "Posting not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobPostingDTO(posting))
}

// UpdatePosting applies partial updates to an owned posting.
func (h *JobHandler) UpdatePosting(c *gin.Context) {
	posting, ok := middleware.GetPosting(c)
	if !ok {
		apierrors.InternalError(c, "Posting not found in context")
		return
	}

	type UpdatePostingRequest struct {
		Title           *string `json:"title"`
		Description     *string `json:"description"`
		StartDate       *string `json:"start_date"`
		EndDate         *string `json:"end_date"`
		StartTime       *string `json:"start_time"`
		EndTime         *string `json:"end_time"`
		Location        *string `json:"location"`
		PositionsNeeded *string `json:"positions_needed"`
		HourlyRate      *string `json:"hourly_rate"`
		Role            *string `json:"role"`
	}

	var req UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.jobService.UpdatePosting(posting.ID, services.UpdatePostingInput{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		PositionsNeeded: req.PositionsNeeded,
		HourlyRate:      req.HourlyRate,
		Role:            req.Role,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobPostingDTO(*updated))
}

// GetStats returns the organizer's dashboard counters.
func (h *JobHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.jobService.GetDashboardStats(userID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListOpenJobs returns active postings for the staff browse view, filtered
// by the optional ?q= free-text search and flagged with the nearby heuristic
// against the viewer's profile location.
func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobs, err := h.jobService.ListOpenJobs(c.Query("q"))
	if err != nil {
		respondJobError(c, err)
		return
	}

	items := make([]dto.OpenJobDTO, len(jobs))
	for i, job := range jobs {
		items[i] = dto.ToOpenJobDTO(job, services.IsNearby(job.Location, user.Location))
	}

	c.JSON(http.StatusOK, gin.H{"jobs": items})
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostingFieldsRequired),
		errors.Is(err, services.ErrInvalidPositions),
		errors.Is(err, services.ErrInvalidHourlyRate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPostingNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrBackendUnavailable):
		apierrors.ServiceUnavailable(c, "Database setup required. Please contact your administrator.")
	default:
		apierrors.InternalError(c, "")
	}
}
