// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API: authentication, story
// templates, story creation and management, the published catalog,
// orders, and the admin surface.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FieldError names a request field that failed validation, matching the
// API's error envelope: {"message": ..., "errors": [{"field", "message"}]}.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", "error", err)
	}
}

// writeError sends the standard error envelope with just a message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeValidationError sends a 400 with per-field details.
func writeValidationError(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// decodeJSON reads a JSON request body into dst. Unknown fields are
// tolerated; malformed bodies are not.
func decodeJSON(r *http.Request, dst any) error {
	defer io.Copy(io.Discard, r.Body)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("request body is not valid JSON")
	}
	return nil
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// jsonField decodes a JSON value carried inside a form field.
func jsonField(value string, dst any) error {
	if value == "" {
		return errors.New("missing field")
	}
	return json.Unmarshal([]byte(value), dst)
}
