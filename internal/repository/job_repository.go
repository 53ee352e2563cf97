package repository

import (
	"github.com/shiftmatch/staffing-api/internal/database"
	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/utils"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job posting
func (r *GormJobRepository) Create(posting *models.JobPosting) error {
	return r.db.Create(posting).Error
}

// FindByID finds a posting by ID with optional preloading
func (r *GormJobRepository) FindByID(id uint64, preload ...string) (*models.JobPosting, error) {
	var posting models.JobPosting
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&posting, id).Error; err != nil {
		return nil, err
	}

	return &posting, nil
}

// List retrieves postings with filtering and pagination, newest first
func (r *GormJobRepository) List(filter JobFilter) ([]models.JobPosting, int64, error) {
	var postings []models.JobPosting

	query := r.db.Model(&models.JobPosting{})

	if filter.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&postings).Error; err != nil {
		return nil, 0, err
	}

	return postings, total, nil
}

// ListActiveByOrganizer lists an organizer's active postings
func (r *GormJobRepository) ListActiveByOrganizer(organizerID uint64) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	if err := r.db.
		Where("organizer_id = ? AND status = ?", organizerID, models.PostingStatusActive).
		Order("created_at DESC").
		Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// ListOpen lists all active postings with organizer profiles, newest first
func (r *GormJobRepository) ListOpen() ([]models.JobPosting, error) {
	var postings []models.JobPosting
	if err := r.db.
		Preload("Organizer").
		Where("status = ?", models.PostingStatusActive).
		Order("created_at DESC").
		Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// Update updates a posting
func (r *GormJobRepository) Update(posting *models.JobPosting) error {
	return r.db.Save(posting).Error
}

// CountActiveByOrganizer counts an organizer's active postings
func (r *GormJobRepository) CountActiveByOrganizer(organizerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobPosting{}).
		Where("organizer_id = ? AND status = ?", organizerID, models.PostingStatusActive).
		Count(&count).Error
	return count, err
}
