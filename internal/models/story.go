// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StoryType distinguishes how a story came to exist.
type StoryType string

const (
	// StoryTypeTemplate marks a story created from a StoryTemplate with
	// the reader's character names substituted in.
	StoryTypeTemplate StoryType = "template"

	// StoryTypeCustom marks an AI-generated story.
	StoryTypeCustom StoryType = "custom"

	// StoryTypePremade marks ready-made catalog stories owned by the
	// platform rather than a user.
	StoryTypePremade StoryType = "premade"
)

// Story is a finalized, ownable piece of content. Content is immutable
// once generation completes; later edits touch metadata fields only and
// preserve identity. UserID is nil for premade catalog items.
type Story struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	StoryType      StoryType  `json:"story_type"`
	UserID         *uuid.UUID `json:"user_id"`
	CharacterNames []string   `json:"character_names"`
	PageCount      int        `json:"page_count"`
	Illustrations  []string   `json:"illustrations"`
	Genre          string     `json:"genre"`
	AgeGroup       string     `json:"age_group"`
	Price          *float64   `json:"price"`
	IsPublished    bool       `json:"is_published"`
	Rating         float64    `json:"rating"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OwnedBy reports whether the story belongs to the given user.
// Premade stories (nil owner) belong to nobody.
func (s *Story) OwnedBy(userID uuid.UUID) bool {
	return s.UserID != nil && *s.UserID == userID
}

// StoryUpdate carries a partial field merge for Story updates. Nil
// fields are left untouched; the store always refreshes updated_at.
type StoryUpdate struct {
	Title       *string  `json:"title"`
	Genre       *string  `json:"genre"`
	AgeGroup    *string  `json:"age_group"`
	Price       *float64 `json:"price"`
	IsPublished *bool    `json:"is_published"`
	Description *string  `json:"description"`
}
