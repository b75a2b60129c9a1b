package services

import (
	"fmt"
	"time"

	"scoops/internal/models"
	"scoops/internal/notifications"
	"scoops/internal/repositories"
	"scoops/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// OrderService owns the order lifecycle: creation, the status state
// machine with its role-gated transition rules, and the notification
// fan-out triggered by each accepted transition.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	notifier  notifications.Notifier
	events    rabbitmq.Publisher // nil disables event publishing
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewOrderService creates a new OrderService. events may be nil when no
// RabbitMQ broker is configured.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, notifier notifications.Notifier, events rabbitmq.Publisher, log zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		events:    events,
		validate:  validator.New(),
		log:       log.With().Str("component", "order_service").Logger(),
	}
}

// CreateOrderRequest is the payload for placing an order. Item prices and
// the total are captured as given; they are not recomputed from the
// catalog.
type CreateOrderRequest struct {
	Items           []models.OrderItem     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	TotalAmount     float64                `json:"total_amount"`
}

// CreateOrder places a new order for userID. The order starts pending;
// payment status defaults to pending for cash on delivery and paid
// otherwise. On success the admin "new order" and customer "order
// received" notifications are dispatched fire-and-forget.
func (s *OrderService) CreateOrder(userID string, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("order must contain at least one item")
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	paymentStatus := models.PaymentStatusPaid
	if method == models.PaymentMethodCOD {
		paymentStatus = models.PaymentStatusPending
	}

	order := &models.Order{
		UserID:          userID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   method,
		PaymentStatus:   paymentStatus,
		TotalAmount:     req.TotalAmount,
		Status:          models.OrderStatusPending,
		CancelledBy:     models.CancelledByNone,
	}

	if err := s.validate.Struct(order); err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid order: %v", err))
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent(rabbitmq.RoutingKeyOrderCreated, order)
	s.dispatchAsync(order, notifications.EventNewOrderAdmin)
	s.dispatchAsync(order, notifications.EventOrderReceivedCustomer)

	return order, nil
}

// AdminUpdateStatus sets an order's status to any value of the
// enumeration. The only gate is cancellation provenance: an order the
// user cancelled is immutable to admins. There is deliberately no
// forward-only check; an admin override may move the status anywhere.
func (s *OrderService) AdminUpdateStatus(orderID, newStatus string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.CancelledBy == models.CancelledByUser {
		return nil, models.ErrForbiddenTransition
	}

	order.Status = status
	if status == models.OrderStatusCancelled {
		order.CancelledBy = models.CancelledByAdmin
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.RoutingKeyOrderStatusChanged, order)
	s.dispatchAsync(order, notifications.EventStatusChangedCustomer)

	return order, nil
}

// CancelOrder is the user-facing cancellation. Only the owning user may
// cancel, and only while the order is still pending.
func (s *OrderService) CancelOrder(orderID, requestingUserID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requestingUserID {
		return nil, models.ErrForbiddenActor
	}

	if order.Status != models.OrderStatusPending {
		return nil, models.ErrInvalidTransition
	}

	order.Status = models.OrderStatusCancelled
	order.CancelledBy = models.CancelledByUser

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.RoutingKeyOrderStatusChanged, order)
	s.dispatchAsync(order, notifications.EventStatusChangedCustomer)

	return order, nil
}

// DeleteOrder removes an order unconditionally regardless of its state.
// No notification is triggered; this is an admin escape hatch, not a
// lifecycle stage.
func (s *OrderService) DeleteOrder(orderID string) error {
	return s.orderRepo.Delete(orderID)
}

// GetOrdersForUser returns the orders owned by userID, newest first.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetAllOrders returns every order, newest first, with the owner's name
// and email joined in for the admin listing.
func (s *OrderService) GetAllOrders() ([]models.AdminOrder, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	seen := make(map[string]bool)
	for _, order := range orders {
		if !seen[order.UserID] {
			seen[order.UserID] = true
			ids = append(ids, order.UserID)
		}
	}

	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to join order owners: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	adminOrders := make([]models.AdminOrder, 0, len(orders))
	for _, order := range orders {
		owner := byID[order.UserID]
		adminOrders = append(adminOrders, models.AdminOrder{
			Order:     order,
			UserName:  owner.Name,
			UserEmail: owner.Email,
		})
	}
	return adminOrders, nil
}

// dispatchAsync hands the notification fan-out to a background goroutine.
// The caller's response path never waits on it, and a dispatch failure or
// panic is logged, never propagated.
func (s *OrderService) dispatchAsync(order *models.Order, event notifications.EventKind) {
	if s.notifier == nil {
		return
	}
	snapshot := *order
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Interface("panic", r).
					Str("order_id", snapshot.ID).
					Str("event", string(event)).
					Msg("notification dispatch panicked")
			}
		}()
		s.notifier.Dispatch(&snapshot, event)
	}()
}

// publishEvent publishes an order lifecycle event to the event stream,
// best effort. Publish failure is logged and swallowed.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.events == nil {
		return
	}
	evt := rabbitmq.OrderEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		CancelledBy: string(order.CancelledBy),
		Total:       order.TotalAmount,
		OccurredAt:  time.Now(),
	}
	if err := s.events.PublishOrderEvent(routingKey, evt); err != nil {
		s.log.Warn().Err(err).
			Str("order_id", order.ID).
			Str("routing_key", routingKey).
			Msg("failed to publish order event")
	}
}
