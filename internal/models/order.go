package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle enumeration.
type OrderStatus string

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

// PaymentMethod is the fixed set of accepted payment methods.
type PaymentMethod string

// CancelledBy records who cancelled an order, if anyone.
type CancelledBy string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed by the shop
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the order
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled by the user or an admin

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"

	CancelledByNone  CancelledBy = ""
	CancelledByUser  CancelledBy = "user"
	CancelledByAdmin CancelledBy = "admin"
)

// ParseOrderStatus normalizes an incoming status string into the enum.
// Incoming strings are parsed here once; everything downstream compares
// typed values.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown order status: %q", s)
	}
}

// ParsePaymentMethod normalizes an incoming payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentMethodCOD:
		return PaymentMethodCOD, nil
	case PaymentMethodUPI:
		return PaymentMethodUPI, nil
	case PaymentMethodCard:
		return PaymentMethodCard, nil
	default:
		return "", fmt.Errorf("unknown payment method: %q", s)
	}
}

// Terminal reports whether the status allows no further lifecycle progress.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ShippingAddress is the delivery contact captured at order time. It is a
// snapshot; later profile edits never touch past orders.
type ShippingAddress struct {
	FullName string `json:"full_name" gorm:"type:varchar(100)" validate:"required"`
	Email    string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Phone    string `json:"phone" gorm:"type:varchar(20)" validate:"required"`
	Address  string `json:"address" gorm:"type:varchar(255)" validate:"required"`
	City     string `json:"city" gorm:"type:varchar(100)" validate:"required"`
	State    string `json:"state" gorm:"type:varchar(100)" validate:"required"`
	Pincode  string `json:"pincode" gorm:"type:varchar(10)" validate:"required"`
	Landmark string `json:"landmark,omitempty" gorm:"type:varchar(255)"`
}

// OrderItem is a line item with name and price snapshotted at order time.
type OrderItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	OrderID     string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductSlug string  `json:"product_slug" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	Price       float64 `json:"price" validate:"gte=0"` // Unit price at the time of order
}

// Order represents a customer order.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"not null;index;type:varchar(36)" validate:"required"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:ship_"`
	PaymentMethod   PaymentMethod   `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus   PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	TotalAmount     float64         `json:"total_amount" validate:"gte=0"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CancelledBy     CancelledBy     `json:"cancelled_by,omitempty" gorm:"type:varchar(10)"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// AdminOrder is an order joined with its owner's name and email for the
// admin listing.
type AdminOrder struct {
	Order
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
