package repository

import (
	"github.com/shiftmatch/staffing-api/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var app models.Application
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&app, id).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

// FindByJobAndApplicant finds the application a user submitted for a job
func (r *GormApplicationRepository) FindByJobAndApplicant(jobID, applicantID uint64) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByOrganizer lists applications across an organizer's postings, newest first
func (r *GormApplicationRepository) ListByOrganizer(organizerID uint64, excludeRejected bool) ([]models.Application, error) {
	var apps []models.Application

	query := r.db.
		Joins("JOIN job_postings ON job_postings.id = applications.job_id").
		Where("job_postings.organizer_id = ?", organizerID)

	if excludeRejected {
		query = query.Where("applications.status <> ?", models.ApplicationStatusRejected)
	}

	if err := query.
		Preload("Applicant").
		Preload("Job").
		Order("applications.created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// ListByJob lists applications for a single posting, newest first
func (r *GormApplicationRepository) ListByJob(jobID uint64, excludeRejected bool) ([]models.Application, error) {
	var apps []models.Application

	query := r.db.Where("job_id = ?", jobID)
	if excludeRejected {
		query = query.Where("status <> ?", models.ApplicationStatusRejected)
	}

	if err := query.
		Preload("Applicant").
		Preload("Job").
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// ListByApplicant lists a staff member's applications, newest first
func (r *GormApplicationRepository) ListByApplicant(applicantID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CountByOrganizer counts applications across an organizer's postings
func (r *GormApplicationRepository) CountByOrganizer(organizerID uint64, status *models.ApplicationStatus) (int64, error) {
	var count int64

	query := r.db.Model(&models.Application{}).
		Joins("JOIN job_postings ON job_postings.id = applications.job_id").
		Where("job_postings.organizer_id = ?", organizerID)

	if status != nil {
		query = query.Where("applications.status = ?", *status)
	}

	err := query.Count(&count).Error
	return count, err
}

// Update updates an application
func (r *GormApplicationRepository) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

// SaveWithPosting persists an application and a posting atomically
func (r *GormApplicationRepository) SaveWithPosting(app *models.Application, posting *models.JobPosting) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(app).Error; err != nil {
			return err
		}

		return tx.Save(posting).Error
	})
}
