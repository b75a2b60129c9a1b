package repositories

import (
	"scoops/internal/models"
)

// OrderRepository defines the interface for order data access. Listing
// methods return orders newest-first by creation time.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Update(order *models.Order) error
	Delete(id string) error
}
