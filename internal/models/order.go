package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks where an order is in the kitchen pipeline.
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusCooking   OrderStatus = "cooking"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
)

// ParseOrderStatus rejects anything outside the four known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusReceived, StatusCooking, StatusPreparing, StatusDelivered:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Valid reports whether the status is one of the enumerated values.
func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// PaymentMethod is how the customer pays at the door or up front.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// ParsePaymentMethod validates the payment method identifier.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentOnline:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// CustomerInfo captures the contact details collected on checkout.
// All fields are required free text; no format validation is applied.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// Order is an immutable record of a completed checkout. Only the status
// field changes after creation; items and total are snapshots taken at
// placement time.
type Order struct {
	ID                string          `json:"id"`
	Items             []CartItem      `json:"items"`
	Total             decimal.Decimal `json:"total"`
	Status            OrderStatus     `json:"status"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	PaymentScreenshot string          `json:"paymentScreenshot,omitempty"`
	Customer          CustomerInfo    `json:"customerInfo"`
	CreatedAt         time.Time       `json:"createdAt"`
}
