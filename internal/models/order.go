// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderType is the fulfillment type of a purchase.
type OrderType string

const (
	OrderTypeDigital  OrderType = "digital"
	OrderTypePhysical OrderType = "physical"
	OrderTypeCustom   OrderType = "custom"
)

// Order payment and fulfillment statuses. Orders are created once with
// the pending/processing defaults; only the status fields mutate after.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order links a user, a story, and a fulfillment type. There are no
// cross-order invariants: buying the same story twice simply produces
// two orders.
type Order struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	StoryID               uuid.UUID `json:"story_id"`
	OrderType             OrderType `json:"order_type"`
	TotalAmount           float64   `json:"total_amount"`
	PaymentStatus         string    `json:"payment_status"`
	StripePaymentIntentID *string   `json:"stripe_payment_intent_id"`
	ShippingAddress       *string   `json:"shipping_address"`
	OrderStatus           string    `json:"order_status"`
	CreatedAt             time.Time `json:"created_at"`
}

// ValidOrderType reports whether t is one of the known fulfillment types.
func ValidOrderType(t OrderType) bool {
	switch t {
	case OrderTypeDigital, OrderTypePhysical, OrderTypeCustom:
		return true
	}
	return false
}
