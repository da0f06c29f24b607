// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StoryTemplate is a platform-authored story skeleton. Its content holds
// literal placeholder tokens (e.g. "[CHARACTER1]") listed in order in
// PlaceholderNames; creating a story from a template substitutes
// user-supplied names for those tokens position by position.
type StoryTemplate struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	PlaceholderNames []string  `json:"placeholder_names"`
	Genre            string    `json:"genre"`
	AgeGroup         string    `json:"age_group"`
	PageCount        int       `json:"page_count"`
	PreviewImages    []string  `json:"preview_images"`
	Description      string    `json:"description"`
	Rating           float64   `json:"rating"`
	CreatedAt        time.Time `json:"created_at"`
}
