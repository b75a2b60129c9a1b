package repositories

import (
	"scoops/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByProductSlug(slug string) ([]models.Review, error)
	GetByUserAndProduct(userID, slug string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
	GetByID(id string) (*models.Review, error)
}
