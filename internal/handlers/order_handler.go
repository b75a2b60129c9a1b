package handlers

import (
	"errors"

	"scoops/internal/middleware"
	"scoops/internal/models"
	"scoops/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. auth must authenticate the
// caller; admin must additionally require the admin role.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", auth, h.HandleCreateOrder)
	orderRoutes.Get("/my", auth, h.HandleGetMyOrders)
	orderRoutes.Get("/", auth, admin, h.HandleGetAllOrders)
	orderRoutes.Patch("/:id/status", auth, admin, h.HandleUpdateStatus)
	orderRoutes.Patch("/:id/cancel", auth, h.HandleCancelOrder)
	orderRoutes.Delete("/:id", auth, admin, h.HandleDeleteOrder)
}

// HandleCreateOrder places a new order for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.CreateOrder(middleware.UserID(c), req)
	if err != nil {
		return respondDomainError(c, err, "Could not create order")
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders lists the authenticated user's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersForUser(middleware.UserID(c))
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetAllOrders lists every order for admins, newest first, with
// owner name and email joined.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondDomainError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleUpdateStatus sets an order's status (admin).
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.AdminUpdateStatus(c.Params("id"), updateData.Status)
	if err != nil {
		return respondDomainError(c, err, "Could not update order status")
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels the authenticated user's own pending order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.service.CancelOrder(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondDomainError(c, err, "Could not cancel order")
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order unconditionally (admin).
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Params("id")); err != nil {
		return respondDomainError(c, err, "Could not delete order")
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}

// respondDomainError maps a domain error onto its HTTP status. Anything
// unclassified is logged with full detail and reported generically.
func respondDomainError(c *fiber.Ctx, err error, fallback string) error {
	var domainErr *models.DomainError
	if errors.As(err, &domainErr) {
		status := fiber.StatusInternalServerError
		switch domainErr.Code {
		case models.ErrCodeValidation:
			status = fiber.StatusBadRequest
		case models.ErrCodeNotFound:
			status = fiber.StatusNotFound
		case models.ErrCodeForbiddenActor, models.ErrCodeForbiddenTransition:
			status = fiber.StatusForbidden
		case models.ErrCodeInvalidTransition:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"message": domainErr.Message,
			"code":    domainErr.Code,
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("operation failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
	})
}
