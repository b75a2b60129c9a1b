package repositories

import (
	"errors"
	"fmt"

	"scoops/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists a new order along with its items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetAll returns every order, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByUserID returns the orders owned by a user, newest first.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Update saves the full order record.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"cancelled_by":   order.CancelledBy,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// Delete removes an order unconditionally.
func (r *GORMOrderRepository) Delete(id string) error {
	result := r.db.Delete(&models.Order{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}
