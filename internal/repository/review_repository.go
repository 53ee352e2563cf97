package repository

import (
	"github.com/shiftmatch/staffing-api/internal/models"
	"gorm.io/gorm"
)

// GormReviewRepository is a GORM implementation of ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a review. The (organizer_id, staff_id, job_id) unique index
// is the authority on duplicates; we do not pre-check.
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Exists reports whether a review exists for the triple
func (r *GormReviewRepository) Exists(organizerID, staffID, jobID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("organizer_id = ? AND staff_id = ? AND job_id = ?", organizerID, staffID, jobID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
