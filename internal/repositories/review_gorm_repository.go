package repositories

import (
	"errors"
	"fmt"

	"scoops/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// GetByProductSlug returns all reviews for a product, newest first.
func (r *GORMReviewRepository) GetByProductSlug(slug string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_slug = ?", slug).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", slug, err)
	}
	return reviews, nil
}

// GetByUserAndProduct returns the single review a user holds for a product.
func (r *GORMReviewRepository) GetByUserAndProduct(userID, slug string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "user_id = ? AND product_slug = ?", userID, slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// GetByID returns a review by its ID.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review %s: %w", id, err)
	}
	return &review, nil
}

// Create adds a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update modifies an existing review's rating and comment.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	result := r.db.Model(&models.Review{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
		"rating":  review.Rating,
		"comment": review.Comment,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update review %s: %w", review.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

// Delete removes a review by its ID.
func (r *GORMReviewRepository) Delete(id string) error {
	result := r.db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}
