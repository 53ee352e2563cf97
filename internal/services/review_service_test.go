package services

import (
	"testing"

	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type reviewTestEnv struct {
	db            *gorm.DB
	reviewService *ReviewService
	appService    *ApplicationService
	jobService    *JobService
	organizer     *models.User
	staff         *models.User
}

func setupReviewTestEnv(t *testing.T) *reviewTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.JobPosting{},
		&models.Application{},
		&models.Review{},
	))

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

	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	return &reviewTestEnv{
		db:            db,
		reviewService: NewReviewService(reviewRepo, appRepo),
		appService:    NewApplicationService(appRepo, jobRepo),
		jobService:    NewJobService(jobRepo, appRepo),
		organizer:     organizer,
		staff:         staff,
	}
}

// hireStaff walks the full path: post, apply, accept. Returns the accepted
// application.
func (env *reviewTestEnv) hireStaff(t *testing.T) *models.Application {
	t.Helper()

	posting, err := env.jobService.CreatePosting(CreatePostingInput{
		OrganizerID:     env.organizer.ID,
		Title:           "Gala servers",
		StartDate:       "2026-09-20",
		Location:        "San Francisco, CA",
		PositionsNeeded: "3",
		HourlyRate:      "2800",
		Role:            "Server",
	})
	require.NoError(t, err)

	app, err := env.appService.Apply(ApplyInput{
		JobID:        posting.ID,
		ApplicantID:  env.staff.ID,
		CoverLetter:  "Ten years of service experience.",
		Availability: "Weekends",
	})
	require.NoError(t, err)

	result, err := env.appService.Accept(app.ID, env.organizer.ID)
	require.NoError(t, err)
	require.False(t, result.PendingAssignment)

	return result.Application
}

func TestReviewService_Submit(t *testing.T) {
	env := setupReviewTestEnv(t)
	app := env.hireStaff(t)

	t.Run("rating required", func(t *testing.T) {
		_, err := env.reviewService.Submit(SubmitReviewInput{
			OrganizerID:   env.organizer.ID,
			ApplicationID: app.ID,
			Rating:        0,
		})
		require.ErrorIs(t, err, ErrRatingRequired)

		_, err = env.reviewService.Submit(SubmitReviewInput{
			OrganizerID:   env.organizer.ID,
			ApplicationID: app.ID,
			Rating:        6,
		})
		require.ErrorIs(t, err, ErrRatingRequired)
	})

	t.Run("successful submit", func(t *testing.T) {
		review, err := env.reviewService.Submit(SubmitReviewInput{
			OrganizerID:   env.organizer.ID,
			ApplicationID: app.ID,
			Rating:        5,
			Comment:       "Excellent work.",
		})
		require.NoError(t, err)
		require.Equal(t, env.staff.ID, review.StaffID)
		require.Equal(t, app.JobID, review.JobID)
	})

	t.Run("second review for the same triple refused", func(t *testing.T) {
		_, err := env.reviewService.Submit(SubmitReviewInput{
			OrganizerID:   env.organizer.ID,
			ApplicationID: app.ID,
			Rating:        3,
		})
		require.ErrorIs(t, err, ErrDuplicateReview)
	})
}

func TestReviewService_OnlyHiredStaffReviewable(t *testing.T) {
	env := setupReviewTestEnv(t)

	posting, err := env.jobService.CreatePosting(CreatePostingInput{
		OrganizerID:     env.organizer.ID,
		Title:           "Ushers",
		StartDate:       "2026-10-05",
		Location:        "San Francisco, CA",
		PositionsNeeded: "2",
		HourlyRate:      "1800",
		Role:            "Usher",
	})
	require.NoError(t, err)

	app, err := env.appService.Apply(ApplyInput{
		JobID:        posting.ID,
		ApplicantID:  env.staff.ID,
		CoverLetter:  "Available immediately.",
		Availability: "Evenings",
	})
	require.NoError(t, err)

	// Still pending
	_, err = env.reviewService.Submit(SubmitReviewInput{
		OrganizerID:   env.organizer.ID,
		ApplicationID: app.ID,
		Rating:        4,
	})
	require.ErrorIs(t, err, ErrNotHired)

	// Rejected applicants are not reviewable either
	_, err = env.appService.Reject(app.ID, env.organizer.ID)
	require.NoError(t, err)

	_, err = env.reviewService.Submit(SubmitReviewInput{
		OrganizerID:   env.organizer.ID,
		ApplicationID: app.ID,
		Rating:        4,
	})
	require.ErrorIs(t, err, ErrNotHired)
}

func TestReviewService_OwnershipEnforced(t *testing.T) {
	env := setupReviewTestEnv(t)
	app := env.hireStaff(t)

	other := &models.User{
		Email:        "other@example.com",
		PasswordHash: "x",
		Role:         models.RoleOrganizer,
		FullName:     "Other Organizer",
		Phone:        "3",
		Company:      "Other Co",
		Location:     "San Jose, CA",
	}
	require.NoError(t, env.db.Create(other).Error)

	_, err := env.reviewService.Submit(SubmitReviewInput{
		OrganizerID:   other.ID,
		ApplicationID: app.ID,
		Rating:        5,
	})
	require.ErrorIs(t, err, ErrNotPostingOwner)
}

func TestReviewService_HasReviewed(t *testing.T) {
	env := setupReviewTestEnv(t)
	app := env.hireStaff(t)

	reviewed, err := env.reviewService.HasReviewed(env.organizer.ID, env.staff.ID, app.JobID)
	require.NoError(t, err)
	require.False(t, reviewed)

	_, err = env.reviewService.Submit(SubmitReviewInput{
		OrganizerID:   env.organizer.ID,
		ApplicationID: app.ID,
		Rating:        4,
		Comment:       "Reliable.",
	})
	require.NoError(t, err)

	reviewed, err = env.reviewService.HasReviewed(env.organizer.ID, env.staff.ID, app.JobID)
	require.NoError(t, err)
	require.True(t, reviewed)
}
