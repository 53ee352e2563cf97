package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/constants"
	"github.com/shiftmatch/staffing-api/internal/database"
	"github.com/shiftmatch/staffing-api/internal/dto"
	apierrors "github.com/shiftmatch/staffing-api/internal/errors"
	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"github.com/shiftmatch/staffing-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type applicationTestEnv struct {
	db         *gorm.DB
	handler    *ApplicationHandler
	jobService *services.JobService
	organizer  *models.User
	staff      *models.User
}

func setupApplicationTestEnv(t *testing.T) *applicationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.JobPosting{},
		&models.Application{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	appService := services.NewApplicationService(appRepo, jobRepo)
	jobService := services.NewJobService(jobRepo, appRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	organizer := &models.User{
		Email:        "organizer@example.com",
		PasswordHash: "x",
		Role:         models.RoleOrganizer,
		FullName:     "Olive Organizer",
		Phone:        "1",
		Company:      "Olive Events",
		Location:     "San Francisco, CA",
	}
	require.NoError(t, db.Create(organizer).Error)

	staff := &models.User{
		Email:        "staff@example.com",
		PasswordHash: "x",
		Role:         models.RoleStaff,
		FullName:     "Sam Staff",
		Phone:        "2",
		Location:     "Oakland, CA",
	}
	require.NoError(t, db.Create(staff).Error)

	return &applicationTestEnv{
		db:         db,
		handler:    NewApplicationHandler(appService),
		jobService: jobService,
		organizer:  organizer,
		staff:      staff,
	}
}

func (env *applicationTestEnv) createPosting(t *testing.T, title string) *models.JobPosting {
	t.Helper()

	posting, err := env.jobService.CreatePosting(services.CreatePostingInput{
		OrganizerID:     env.organizer.ID,
		Title:           title,
		StartDate:       "2026-09-12",
		Location:        "San Francisco, CA",
		PositionsNeeded: "2",
		HourlyRate:      "2500",
		Role:            "Server",
	})
	require.NoError(t, err)
	return posting
}

// serveAsUser runs a single-route request with the session user pre-resolved,
// the state RequireAuth leaves behind.
func serveAsUser(userID uint64, method, path string, body []byte, register func(*gin.Engine)) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})
	register(r)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApplicationHandler_Apply(t *testing.T) {
	env := setupApplicationTestEnv(t)
	posting := env.createPosting(t, "Wedding servers")

	body, err := json.Marshal(map[string]string{
		"cover_letter": "Experienced server.",
		"availability": "Weekends",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/jobs/%d/apply", posting.ID)
	w := serveAsUser(env.staff.ID, http.MethodPost, path, body, func(r *gin.Engine) {
		r.POST("/api/jobs/:id/apply", env.handler.Apply)
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ApplicationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, posting.ID, response.JobID)
	require.Equal(t, models.ApplicationStatusPending, response.Status)

	// Applying twice to the same job is a conflict
	w = serveAsUser(env.staff.ID, http.MethodPost, path, body, func(r *gin.Engine) {
		r.POST("/api/jobs/:id/apply", env.handler.Apply)
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeConflict, apiErr.Code)
}

func TestApplicationHandler_AcceptCommitsSinglePosting(t *testing.T) {
	env := setupApplicationTestEnv(t)
	posting := env.createPosting(t, "Wedding servers")

	app := &models.Application{
		JobID:        posting.ID,
		ApplicantID:  env.staff.ID,
		CoverLetter:  "Experienced.",
		Availability: "Anytime",
		Status:       models.ApplicationStatusPending,
	}
	require.NoError(t, env.db.Create(app).Error)

	path := fmt.Sprintf("/api/applications/%d/accept", app.ID)
	w := serveAsUser(env.organizer.ID, http.MethodPost, path, nil, func(r *gin.Engine) {
		r.POST("/api/applications/:id/accept", env.handler.Accept)
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AcceptResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.PendingAssignment)
	require.Equal(t, models.ApplicationStatusAccepted, response.Application.Status)
	require.NotNil(t, response.Application.AssignedJobID)
	require.Equal(t, posting.ID, *response.Application.AssignedJobID)
}

func TestApplicationHandler_AcceptDefersAcrossPostings(t *testing.T) {
	env := setupApplicationTestEnv(t)
	posting := env.createPosting(t, "Wedding servers")
	other := env.createPosting(t, "Concert security")

	app := &models.Application{
		JobID:        posting.ID,
		ApplicantID:  env.staff.ID,
		CoverLetter:  "Experienced.",
		Availability: "Anytime",
		Status:       models.ApplicationStatusPending,
	}
	require.NoError(t, env.db.Create(app).Error)

	acceptPath := fmt.Sprintf("/api/applications/%d/accept", app.ID)
	w := serveAsUser(env.organizer.ID, http.MethodPost, acceptPath, nil, func(r *gin.Engine) {
		r.POST("/api/applications/:id/accept", env.handler.Accept)
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AcceptResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.PendingAssignment)
	require.Len(t, response.ActivePostings, 2)
	require.Equal(t, models.ApplicationStatusPending, response.Application.Status, "no state committed yet")

	// Assign commits against the chosen posting
	body, err := json.Marshal(map[string]uint64{"job_id": other.ID})
	require.NoError(t, err)

	assignPath := fmt.Sprintf("/api/applications/%d/assign", app.ID)
	w = serveAsUser(env.organizer.ID, http.MethodPost, assignPath, body, func(r *gin.Engine) {
		r.POST("/api/applications/:id/assign", env.handler.Assign)
	})

	require.Equal(t, http.StatusOK, w.Code)

	var assigned dto.ApplicationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assigned))
	require.Equal(t, models.ApplicationStatusAccepted, assigned.Status)
	require.NotNil(t, assigned.AssignedJobID)
	require.Equal(t, other.ID, *assigned.AssignedJobID)
}

func TestApplicationHandler_ForeignApplicationLooksAbsent(t *testing.T) {
	env := setupApplicationTestEnv(t)
	posting := env.createPosting(t, "Wedding servers")

	app := &models.Application{
		JobID:        posting.ID,
		ApplicantID:  env.staff.ID,
		CoverLetter:  "Experienced.",
		Availability: "Anytime",
		Status:       models.ApplicationStatusPending,
	}
	require.NoError(t, env.db.Create(app).Error)

	intruder := &models.User{
		Email:        "intruder@example.com",
		PasswordHash: "x",
		Role:         models.RoleOrganizer,
		FullName:     "Other Organizer",
		Phone:        "3",
		Company:      "Other Co",
		Location:     "San Jose, CA",
	}
	require.NoError(t, env.db.Create(intruder).Error)

	path := fmt.Sprintf("/api/applications/%d/accept", app.ID)
	w := serveAsUser(intruder.ID, http.MethodPost, path, nil, func(r *gin.Engine) {
		r.POST("/api/applications/:id/accept", env.handler.Accept)
	})

	// Ownership failures read as not-found, not forbidden
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationHandler_RejectReopensPosting(t *testing.T) {
	env := setupApplicationTestEnv(t)
	posting := env.createPosting(t, "Wedding servers")

	jobID := posting.ID
	app := &models.Application{
		JobID:         posting.ID,
		ApplicantID:   env.staff.ID,
		CoverLetter:   "Experienced.",
		Availability:  "Anytime",
		Status:        models.ApplicationStatusAccepted,
		AssignedJobID: &jobID,
	}
	require.NoError(t, env.db.Create(app).Error)

	posting.Hired = 2
	posting.RecomputeStatus()
	require.NoError(t, env.db.Save(posting).Error)
	require.Equal(t, models.PostingStatusFilled, posting.Status)

	path := fmt.Sprintf("/api/applications/%d/reject", app.ID)
	w := serveAsUser(env.organizer.ID, http.MethodPost, path, nil, func(r *gin.Engine) {
		r.POST("/api/applications/:id/reject", env.handler.Reject)
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ApplicationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.ApplicationStatusRejected, response.Status)
	require.Nil(t, response.AssignedJobID)

	var reloaded models.JobPosting
	require.NoError(t, env.db.First(&reloaded, posting.ID).Error)
	require.Equal(t, 1, reloaded.Hired)
	require.Equal(t, models.PostingStatusActive, reloaded.Status)
}
