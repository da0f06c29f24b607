// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"storynest/internal/middleware"
	"storynest/internal/models"
	"storynest/internal/store"
)

// Orders groups the purchase handlers.
type Orders struct {
	orders  *store.OrderStore
	stories *store.StoryStore
}

// NewOrders creates a new Orders handler group.
func NewOrders(orders *store.OrderStore, stories *store.StoryStore) *Orders {
	return &Orders{orders: orders, stories: stories}
}

type orderRequest struct {
	StoryID         string  `json:"story_id"`
	OrderType       string  `json:"order_type"`
	TotalAmount     float64 `json:"total_amount"`
	ShippingAddress *string `json:"shipping_address"`
}

// Create places an order for a story. Payment and fulfillment always
// start at their pending/processing defaults; nothing a client sends
// can change that.
func (h *Orders) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var errs []FieldError
	orderType := models.OrderType(strings.TrimSpace(req.OrderType))
	if !models.ValidOrderType(orderType) {
		errs = append(errs, FieldError{"order_type", "Order type must be digital, physical, or custom."})
	}
	if req.TotalAmount < 0 {
		errs = append(errs, FieldError{"total_amount", "Total amount cannot be negative."})
	}
	storyID, err := parseUUID(req.StoryID)
	if err != nil {
		errs = append(errs, FieldError{"story_id", "Story ID must be a valid UUID."})
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	story, err := h.stories.FindByID(storyID)
	if err != nil {
		slog.Error("find story for order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}
	if story == nil {
		writeError(w, http.StatusNotFound, "Story not found")
		return
	}

	order, err := h.orders.Create(&models.Order{
		UserID:          sess.UserID,
		StoryID:         story.ID,
		OrderType:       orderType,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		slog.Error("create order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// ListMine returns the authenticated user's orders, newest first.
func (h *Orders) ListMine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	list, err := h.orders.ListByUser(sess.UserID)
	if err != nil {
		slog.Error("list orders failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns one of the user's own orders. Someone else's order reads
// as 404, same concealment as stories.
func (h *Orders) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orders.FindByID(id)
	if err != nil {
		slog.Error("find order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}
	if order == nil || order.UserID != sess.UserID {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
