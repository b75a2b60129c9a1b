package handlers

import (
	"scoops/internal/middleware"
	"scoops/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// RegisterRoutes registers the review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/product/:slug", h.HandleGetProductReviews)
	reviewRoutes.Post("/", auth, h.HandleSubmitReview)
	reviewRoutes.Delete("/:id", auth, h.HandleDeleteReview)
}

// HandleGetProductReviews lists reviews for a product.
func (h *ReviewHandler) HandleGetProductReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetReviewsForProduct(c.Params("slug"))
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve reviews")
	}
	return c.JSON(reviews)
}

// SubmitReviewRequest is the payload for creating or updating a review.
type SubmitReviewRequest struct {
	ProductSlug string `json:"product_slug"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// HandleSubmitReview creates or updates the caller's review for a product.
func (h *ReviewHandler) HandleSubmitReview(c *fiber.Ctx) error {
	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	review, err := h.service.SubmitReview(middleware.UserID(c), req.ProductSlug, req.Rating, req.Comment)
	if err != nil {
		return respondDomainError(c, err, "Could not submit review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleDeleteReview removes a review (owner or admin).
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	err := h.service.DeleteReview(c.Params("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return respondDomainError(c, err, "Could not delete review")
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
