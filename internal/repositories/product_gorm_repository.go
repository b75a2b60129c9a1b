package repositories

import (
	"errors"
	"fmt"

	"scoops/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll returns all products.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetBySlug returns a product by its slug.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s not found", slug)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", slug, err)
	}
	return &product, nil
}

// Create adds a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update modifies an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	result := r.db.Model(&models.Product{}).Where("slug = ?", product.Slug).Updates(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", product.Slug, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %s not found for update", product.Slug)
	}
	return nil
}

// Delete removes a product by its slug.
func (r *GORMProductRepository) Delete(slug string) error {
	result := r.db.Delete(&models.Product{}, "slug = ?", slug)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", slug, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %s not found for deletion", slug)
	}
	return nil
}
