package repositories

import (
	"sort"
	"sync"
	"time"

	"scoops/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// GetByProductSlug returns all reviews for a product, newest first.
func (r *MockReviewRepository) GetByProductSlug(slug string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviewList []models.Review
	for _, review := range r.reviews {
		if review.ProductSlug == slug {
			reviewList = append(reviewList, review)
		}
	}
	sort.Slice(reviewList, func(i, j int) bool {
		return reviewList[i].CreatedAt.After(reviewList[j].CreatedAt)
	})
	return reviewList, nil
}

// GetByUserAndProduct returns the single review a user holds for a product.
func (r *MockReviewRepository) GetByUserAndProduct(userID, slug string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.UserID == userID && review.ProductSlug == slug {
			rev := review
			return &rev, nil
		}
	}
	return nil, models.ErrReviewNotFound
}

// GetByID returns a review by its ID.
func (r *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, models.ErrReviewNotFound
	}
	return &review, nil
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// Update modifies an existing review.
func (r *MockReviewRepository) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reviews[review.ID]
	if !ok {
		return models.ErrReviewNotFound
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	stored.UpdatedAt = time.Now()
	r.reviews[review.ID] = stored
	return nil
}

// Delete removes a review by its ID.
func (r *MockReviewRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return models.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}
