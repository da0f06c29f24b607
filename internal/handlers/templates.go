// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"storynest/internal/models"
	"storynest/internal/store"
)

// Templates serves the public story template gallery.
type Templates struct {
	templates *store.TemplateStore
}

// NewTemplates creates a new Templates handler group.
func NewTemplates(templates *store.TemplateStore) *Templates {
	return &Templates{templates: templates}
}

// List returns all story templates, newest first.
func (h *Templates) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.List()
	if err != nil {
		slog.Error("list templates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load templates")
		return
	}
	if list == nil {
		list = []models.StoryTemplate{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns a single template by ID.
func (h *Templates) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	tmpl, err := h.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load template")
		return
	}
	if tmpl == nil {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	writeJSON(w, http.StatusOK, tmpl)
}
