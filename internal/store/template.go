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

// TemplateStore handles story template database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `id, title, content, placeholder_names, genre, age_group, page_count, preview_images, description, rating, created_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.StoryTemplate, error) {
	t := &models.StoryTemplate{}
	var placeholders, previews []byte
	err := row.Scan(
		&t.ID, &t.Title, &t.Content, &placeholders, &t.Genre, &t.AgeGroup,
		&t.PageCount, &previews, &t.Description, &t.Rating, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := scanList(placeholders, &t.PlaceholderNames); err != nil {
		return nil, err
	}
	if err := scanList(previews, &t.PreviewImages); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all story templates, newest first.
func (s *TemplateStore) List() ([]models.StoryTemplate, error) {
	rows, err := s.db.Query(`
		SELECT ` + templateColumns + ` FROM story_templates ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.StoryTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.StoryTemplate, error) {
	t, err := scanTemplate(s.db.QueryRow(`
		SELECT `+templateColumns+` FROM story_templates WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Create inserts a new story template.
func (s *TemplateStore) Create(t *models.StoryTemplate) (*models.StoryTemplate, error) {
	placeholders, err := jsonList(t.PlaceholderNames)
	if err != nil {
		return nil, err
	}
	previews, err := jsonList(t.PreviewImages)
	if err != nil {
		return nil, err
	}

	created, err := scanTemplate(s.db.QueryRow(`
		INSERT INTO story_templates (title, content, placeholder_names, genre, age_group, page_count, preview_images, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+templateColumns+`
	`, t.Title, t.Content, placeholders, t.Genre, t.AgeGroup, t.PageCount, previews, t.Description))
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// Update replaces all editable fields of a template. Returns the updated
// row, or nil if no template with that ID exists.
func (s *TemplateStore) Update(id uuid.UUID, t *models.StoryTemplate) (*models.StoryTemplate, error) {
	placeholders, err := jsonList(t.PlaceholderNames)
	if err != nil {
		return nil, err
	}
	previews, err := jsonList(t.PreviewImages)
	if err != nil {
		return nil, err
	}

	updated, err := scanTemplate(s.db.QueryRow(`
		UPDATE story_templates
		SET title = $1, content = $2, placeholder_names = $3, genre = $4,
		    age_group = $5, page_count = $6, preview_images = $7, description = $8
		WHERE id = $9
		RETURNING `+templateColumns+`
	`, t.Title, t.Content, placeholders, t.Genre, t.AgeGroup, t.PageCount, previews, t.Description, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return updated, nil
}

// Delete removes a template by ID.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM story_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Count returns the total number of story templates.
func (s *TemplateStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM story_templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return n, nil
}
