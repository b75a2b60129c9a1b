package repositories

import (
	"fmt"
	"sync"

	"scoops/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product // keyed by slug
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetBySlug returns a product by its slug.
func (r *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[slug]
	if !ok {
		return nil, fmt.Errorf("product %s not found", slug)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.products[product.Slug]; ok {
		return fmt.Errorf("product %s already exists", product.Slug)
	}
	r.products[product.Slug] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.Slug]; !ok {
		return fmt.Errorf("product %s not found for update", product.Slug)
	}
	r.products[product.Slug] = *product
	return nil
}

// Delete removes a product by its slug.
func (r *MockProductRepository) Delete(slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[slug]; !ok {
		return fmt.Errorf("product %s not found for deletion", slug)
	}
	delete(r.products, slug)
	return nil
}
