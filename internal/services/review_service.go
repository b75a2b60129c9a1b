package services

import (
	"errors"
	"fmt"

	"scoops/internal/models"
	"scoops/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ReviewService handles product reviews. A user holds at most one review
// per product; submitting again updates the existing one.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	validate    *validator.Validate
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

// GetReviewsForProduct returns all reviews for a product, newest first.
func (s *ReviewService) GetReviewsForProduct(slug string) ([]models.Review, error) {
	return s.reviewRepo.GetByProductSlug(slug)
}

// SubmitReview creates the user's review for a product, or updates it if
// one already exists.
func (s *ReviewService) SubmitReview(userID, productSlug string, rating int, comment string) (*models.Review, error) {
	review := &models.Review{
		UserID:      userID,
		ProductSlug: productSlug,
		Rating:      rating,
		Comment:     comment,
	}
	if err := s.validate.Struct(review); err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid review: %v", err))
	}

	if _, err := s.productRepo.GetBySlug(productSlug); err != nil {
		return nil, models.NewDomainError(models.ErrCodeNotFound, fmt.Sprintf("product %s not found", productSlug))
	}

	existing, err := s.reviewRepo.GetByUserAndProduct(userID, productSlug)
	if err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			if err := s.reviewRepo.Create(review); err != nil {
				return nil, fmt.Errorf("failed to create review: %w", err)
			}
			return review, nil
		}
		return nil, err
	}

	existing.Rating = rating
	existing.Comment = comment
	if err := s.reviewRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return existing, nil
}

// DeleteReview removes a review. The owner may delete their own review;
// admins may delete any.
func (s *ReviewService) DeleteReview(reviewID, requestingUserID string, isAdmin bool) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if !isAdmin && review.UserID != requestingUserID {
		return models.ErrForbiddenActor
	}
	return s.reviewRepo.Delete(reviewID)
}
