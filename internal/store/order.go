// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"storynest/internal/models"
)

// OrderStore handles order database operations.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore creates a new OrderStore with the given database connection.
func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, user_id, story_id, order_type, total_amount, payment_status, stripe_payment_intent_id, shipping_address, order_status, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID, &o.UserID, &o.StoryID, &o.OrderType, &o.TotalAmount,
		&o.PaymentStatus, &o.StripePaymentIntentID, &o.ShippingAddress,
		&o.OrderStatus, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new order. Payment and fulfillment statuses always
// start at their defaults (pending/processing) regardless of input.
func (s *OrderStore) Create(o *models.Order) (*models.Order, error) {
	created, err := scanOrder(s.db.QueryRow(`
		INSERT INTO orders (user_id, story_id, order_type, total_amount, stripe_payment_intent_id, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderColumns+`
	`, o.UserID, o.StoryID, o.OrderType, o.TotalAmount, o.StripePaymentIntentID, o.ShippingAddress))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

// FindByID retrieves an order by UUID. Returns nil if not found.
func (s *OrderStore) FindByID(id uuid.UUID) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRow(`
		SELECT `+orderColumns+` FROM orders WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by id: %w", err)
	}
	return o, nil
}

// ListByUser returns the user's order history, newest first.
func (s *OrderStore) ListByUser(userID uuid.UUID) ([]models.Order, error) {
	rows, err := s.db.Query(`
		SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateStatus sets the fulfillment status of an order. Setting the same
// status twice is a no-op, not an error. Returns the updated row, or nil
// if no order with that ID exists.
func (s *OrderStore) UpdateStatus(id uuid.UUID, status string) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRow(`
		UPDATE orders SET order_status = $1 WHERE id = $2
		RETURNING `+orderColumns+`
	`, status, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// Count returns the total number of orders.
func (s *OrderStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
