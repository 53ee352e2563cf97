package repository

import (
	"github.com/shiftmatch/staffing-api/internal/models"
)

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	// Create creates a new user profile
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// JobFilter holds filtering options for listing postings
type JobFilter struct {
	OrganizerID *uint64
	Status      *models.PostingStatus
	Page        int
	PageSize    int
}

// JobRepository defines the interface for job posting data access
type JobRepository interface {
	// Create creates a new job posting
	Create(posting *models.JobPosting) error

	// FindByID finds a posting by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.JobPosting, error)

	// List retrieves postings with filtering and pagination, newest first
	List(filter JobFilter) ([]models.JobPosting, int64, error)

	// ListActiveByOrganizer lists an organizer's active postings
	ListActiveByOrganizer(organizerID uint64) ([]models.JobPosting, error)

	// ListOpen lists all active postings with organizer profiles, newest first
	ListOpen() ([]models.JobPosting, error)

	// Update updates a posting
	Update(posting *models.JobPosting) error

	// CountActiveByOrganizer counts an organizer's active postings
	CountActiveByOrganizer(organizerID uint64) (int64, error)
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(app *models.Application) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Application, error)

	// FindByJobAndApplicant finds the application a user submitted for a job
	FindByJobAndApplicant(jobID, applicantID uint64) (*models.Application, error)

	// ListByOrganizer lists applications across an organizer's postings,
	// newest first. Rejected applications are excluded when excludeRejected
	// is set (soft-hidden, the rows are retained).
	ListByOrganizer(organizerID uint64, excludeRejected bool) ([]models.Application, error)

	// ListByJob lists applications for a single posting, newest first
	ListByJob(jobID uint64, excludeRejected bool) ([]models.Application, error)

	// ListByApplicant lists a staff member's applications, newest first
	ListByApplicant(applicantID uint64) ([]models.Application, error)

	// CountByOrganizer counts applications across an organizer's postings,
	// optionally restricted to one status
	CountByOrganizer(organizerID uint64, status *models.ApplicationStatus) (int64, error)

	// Update updates an application
	Update(app *models.Application) error

	// SaveWithPosting persists an application and a posting atomically; used
	// to commit or reverse a hire so capacity never drifts from status
	SaveWithPosting(app *models.Application, posting *models.JobPosting) error
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create inserts a review; a duplicate (organizer, staff, job) triple
	// surfaces as gorm.ErrDuplicatedKey
	Create(review *models.Review) error

	// Exists reports whether a review exists for the triple
	Exists(organizerID, staffID, jobID uint64) (bool, error)
}
