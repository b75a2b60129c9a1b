package services_test

import (
	"sync"
	"testing"
	"time"

	"scoops/internal/models"
	"scoops/internal/notifications"
	"scoops/internal/repositories"
	"scoops/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ids []string) ([]models.User, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.User), args.Error(1)
}

// recordingNotifier captures dispatched events and signals each dispatch
// on a channel so tests can wait for the fire-and-forget goroutines.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notifications.EventKind
	orders []models.Order
	done   chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) Dispatch(order *models.Order, event notifications.EventKind) []notifications.SendResult {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.orders = append(n.orders, *order)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *recordingNotifier) wait(t *testing.T, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for dispatch %d of %d", i+1, count)
		}
	}
}

func (n *recordingNotifier) dispatched() []notifications.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifications.EventKind(nil), n.events...)
}

func validShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	}
}

func validItems() []models.OrderItem {
	return []models.OrderItem{
		{ProductSlug: "mango-tub", Name: "Mango Tub", Quantity: 2, Price: 50},
		{ProductSlug: "choco-cone", Name: "Choco Cone", Quantity: 1, Price: 50},
	}
}

func newOrderService(orderRepo *MockOrderRepository, userRepo *MockUserRepository, notifier notifications.Notifier) *services.OrderService {
	return services.NewOrderService(orderRepo, userRepo, notifier, nil, zerolog.Nop())
}

func TestOrderService_CreateOrder_COD(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.CreateOrder("user-1", services.CreateOrderRequest{
		Items:           validItems(),
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
		TotalAmount:     150,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.CancelledByNone, order.CancelledBy)
	assert.Equal(t, 150.0, order.TotalAmount)
	assert.Len(t, order.Items, 2)

	notifier.wait(t, 2)
	assert.ElementsMatch(t,
		[]notifications.EventKind{notifications.EventNewOrderAdmin, notifications.EventOrderReceivedCustomer},
		notifier.dispatched())
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PrepaidIsPaid(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Twice()

	for _, method := range []string{"upi", "card"} {
		order, err := service.CreateOrder("user-1", services.CreateOrderRequest{
			Items:           validItems(),
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   method,
			TotalAmount:     150,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	}
	notifier.wait(t, 4)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	order, err := service.CreateOrder("user-1", services.CreateOrderRequest{
		Items:           nil,
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
		TotalAmount:     0,
	})

	assert.Nil(t, order)
	var domainErr *models.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, models.ErrCodeValidation, domainErr.Code)
	assert.Empty(t, notifier.dispatched())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_CreateOrder_InvalidInput(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newOrderService(mockRepo, new(MockUserRepository), newRecordingNotifier())

	tests := []struct {
		name string
		req  services.CreateOrderRequest
	}{
		{
			name: "unknown payment method",
			req: services.CreateOrderRequest{
				Items:           validItems(),
				ShippingAddress: validShippingAddress(),
				PaymentMethod:   "barter",
			},
		},
		{
			name: "zero quantity item",
			req: services.CreateOrderRequest{
				Items:           []models.OrderItem{{ProductSlug: "mango-tub", Name: "Mango Tub", Quantity: 0, Price: 50}},
				ShippingAddress: validShippingAddress(),
				PaymentMethod:   "cod",
			},
		},
		{
			name: "missing shipping email",
			req: services.CreateOrderRequest{
				Items: validItems(),
				ShippingAddress: models.ShippingAddress{
					FullName: "Asha Rao",
					Phone:    "9876543210",
					Address:  "12 MG Road",
					City:     "Bengaluru",
					State:    "Karnataka",
					Pincode:  "560001",
				},
				PaymentMethod: "cod",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := service.CreateOrder("user-1", tt.req)
			assert.Nil(t, order)
			var domainErr *models.DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, models.ErrCodeValidation, domainErr.Code)
		})
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_AdminUpdateStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusPending, ShippingAddress: validShippingAddress()}
	mockRepo.On("GetByID", "ord-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.OrderStatusConfirmed && o.CancelledBy == models.CancelledByNone
	})).Return(nil).Once()

	order, err := service.AdminUpdateStatus("ord-1", "Confirmed")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	notifier.wait(t, 1)
	assert.Equal(t, []notifications.EventKind{notifications.EventStatusChangedCustomer}, notifier.dispatched())
	mockRepo.AssertExpectations(t)
}

func TestOrderService_AdminUpdateStatus_CancelSetsProvenance(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusProcessing, ShippingAddress: validShippingAddress()}
	mockRepo.On("GetByID", "ord-1").Return(stored, nil).Once()
	// Status and provenance land in the same write.
	mockRepo.On("Update", mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.OrderStatusCancelled && o.CancelledBy == models.CancelledByAdmin
	})).Return(nil).Once()

	order, err := service.AdminUpdateStatus("ord-1", "cancelled")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, models.CancelledByAdmin, order.CancelledBy)
	notifier.wait(t, 1)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_AdminUpdateStatus_UserCancelledIsImmutable(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusCancelled, CancelledBy: models.CancelledByUser, ShippingAddress: validShippingAddress()}
	mockRepo.On("GetByID", "ord-1").Return(stored, nil).Times(3)

	for _, next := range []string{"delivered", "pending", "cancelled"} {
		order, err := service.AdminUpdateStatus("ord-1", next)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, models.ErrForbiddenTransition)
	}

	assert.Empty(t, notifier.dispatched())
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestOrderService_AdminUpdateStatus_PermissiveOverride(t *testing.T) {
	// There is no forward-only rule; an admin may move delivered back to
	// pending.
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusDelivered, ShippingAddress: validShippingAddress()}
	mockRepo.On("GetByID", "ord-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.AdminUpdateStatus("ord-1", "pending")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	notifier.wait(t, 1)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_AdminUpdateStatus_Errors(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newOrderService(mockRepo, new(MockUserRepository), newRecordingNotifier())

	// Unknown status string never reaches the repository.
	order, err := service.AdminUpdateStatus("ord-1", "teleported")
	assert.Nil(t, order)
	var domainErr *models.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, models.ErrCodeValidation, domainErr.Code)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)

	// Missing order.
	mockRepo.On("GetByID", "missing").Return(nil, models.ErrOrderNotFound).Once()
	order, err = service.AdminUpdateStatus("missing", "confirmed")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CancelOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusPending, ShippingAddress: validShippingAddress()}
	mockRepo.On("GetByID", "ord-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.OrderStatusCancelled && o.CancelledBy == models.CancelledByUser
	})).Return(nil).Once()

	order, err := service.CancelOrder("ord-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, models.CancelledByUser, order.CancelledBy)
	notifier.wait(t, 1)
	assert.Equal(t, []notifications.EventKind{notifications.EventStatusChangedCustomer}, notifier.dispatched())
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CancelOrder_NotOwner(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newOrderService(mockRepo, new(MockUserRepository), newRecordingNotifier())

	stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusPending, ShippingAddress: validShippingAddress()}
	mockRepo.On("GetByID", "ord-1").Return(stored, nil).Once()

	order, err := service.CancelOrder("ord-1", "someone-else")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, models.ErrForbiddenActor)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestOrderService_CancelOrder_NotPending(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newOrderService(mockRepo, new(MockUserRepository), newRecordingNotifier())

	for _, status := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		stored := &models.Order{ID: "ord-1", UserID: "user-1", Status: status, ShippingAddress: validShippingAddress()}
		mockRepo.On("GetByID", "ord-1").Return(stored, nil).Once()

		order, err := service.CancelOrder("ord-1", "user-1")
		assert.Nil(t, order)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	}
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	service := newOrderService(mockRepo, new(MockUserRepository), notifier)

	mockRepo.On("Delete", "ord-1").Return(nil).Once()
	assert.NoError(t, service.DeleteOrder("ord-1"))

	// Deleting again reports not found, not silent success.
	mockRepo.On("Delete", "ord-1").Return(models.ErrOrderNotFound).Once()
	assert.ErrorIs(t, service.DeleteOrder("ord-1"), models.ErrOrderNotFound)

	assert.Empty(t, notifier.dispatched())
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetAllOrders_JoinsOwners(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockRepo, mockUsers, newRecordingNotifier())

	orders := []models.Order{
		{ID: "ord-2", UserID: "user-2"},
		{ID: "ord-1", UserID: "user-1"},
	}
	mockRepo.On("GetAll").Return(orders, nil).Once()
	mockUsers.On("GetByIDs", []string{"user-2", "user-1"}).Return([]models.User{
		{ID: "user-1", Name: "Asha Rao", Email: "asha@example.com"},
		{ID: "user-2", Name: "Ben Dias", Email: "ben@example.com"},
	}, nil).Once()

	joined, err := service.GetAllOrders()

	assert.NoError(t, err)
	assert.Len(t, joined, 2)
	assert.Equal(t, "Ben Dias", joined[0].UserName)
	assert.Equal(t, "ben@example.com", joined[0].UserEmail)
	assert.Equal(t, "Asha Rao", joined[1].UserName)
	mockRepo.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestOrderService_CancelThenAdminUpdate_EndToEnd(t *testing.T) {
	// Full round trip against the in-memory repository: a user cancels a
	// pending order, then no admin update can touch it.
	repo := repositories.NewMockOrderRepository()
	notifier := newRecordingNotifier()
	service := services.NewOrderService(repo, new(MockUserRepository), notifier, nil, zerolog.Nop())

	order := &models.Order{
		UserID:          "user-1",
		Items:           validItems(),
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   models.PaymentMethodCOD,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
	}
	assert.NoError(t, repo.Create(order))

	cancelled, err := service.CancelOrder(order.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, models.CancelledByUser, cancelled.CancelledBy)
	notifier.wait(t, 1)

	_, err = service.AdminUpdateStatus(order.ID, "delivered")
	assert.ErrorIs(t, err, models.ErrForbiddenTransition)

	// Status unchanged after the rejected update.
	stored, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)
	assert.Equal(t, models.CancelledByUser, stored.CancelledBy)
}
