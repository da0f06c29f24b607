// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"storynest/internal/models"
	"storynest/internal/store"
)

// Admin groups the handlers behind the admin gate: platform stats,
// user and story overviews, template authoring, and order fulfillment.
type Admin struct {
	users     *store.UserStore
	stories   *store.StoryStore
	templates *store.TemplateStore
	orders    *store.OrderStore
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(users *store.UserStore, stories *store.StoryStore, templates *store.TemplateStore, orders *store.OrderStore) *Admin {
	return &Admin{users: users, stories: stories, templates: templates, orders: orders}
}

// Stats returns platform-wide entity counts for the dashboard.
func (h *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	userCount, err := h.users.Count()
	if err != nil {
		h.statsError(w, err)
		return
	}
	storyCount, err := h.stories.Count()
	if err != nil {
		h.statsError(w, err)
		return
	}
	templateCount, err := h.templates.Count()
	if err != nil {
		h.statsError(w, err)
		return
	}
	orderCount, err := h.orders.Count()
	if err != nil {
		h.statsError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"users":     userCount,
		"stories":   storyCount,
		"templates": templateCount,
		"orders":    orderCount,
	})
}

func (h *Admin) statsError(w http.ResponseWriter, err error) {
	slog.Error("admin stats failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to load stats")
}

// ListUsers returns all registered users.
func (h *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List()
	if err != nil {
		slog.Error("admin list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	if list == nil {
		list = []models.User{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ListStories returns every story regardless of owner or publication.
func (h *Admin) ListStories(w http.ResponseWriter, r *http.Request) {
	list, err := h.stories.List()
	if err != nil {
		slog.Error("admin list stories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load stories")
		return
	}
	if list == nil {
		list = []models.Story{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateTemplate adds a new story template to the platform catalog.
func (h *Admin) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var tmpl models.StoryTemplate
	if err := decodeJSON(r, &tmpl); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := validateTemplateFields(tmpl.Title, tmpl.Content, tmpl.PageCount); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	created, err := h.templates.Create(&tmpl)
	if err != nil {
		slog.Error("create template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateTemplate replaces a template's fields.
func (h *Admin) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	var tmpl models.StoryTemplate
	if err := decodeJSON(r, &tmpl); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := validateTemplateFields(tmpl.Title, tmpl.Content, tmpl.PageCount); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	updated, err := h.templates.Update(id, &tmpl)
	if err != nil {
		slog.Error("update template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTemplate removes a template. Stories already created from it
// are standalone copies and are not affected.
func (h *Admin) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	if err := h.templates.Delete(id); err != nil {
		slog.Error("delete template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Template deleted"})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order through fulfillment.
func (h *Admin) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := strings.TrimSpace(req.Status)
	switch status {
	case models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		writeValidationError(w, []FieldError{{"status", "Status must be processing, shipped, delivered, or cancelled."}})
		return
	}

	order, err := h.orders.UpdateStatus(id, status)
	if err != nil {
		slog.Error("update order status failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
