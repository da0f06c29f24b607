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

// StoryStore handles story database operations: the reader's personal
// library plus the published catalog.
type StoryStore struct {
	db *sql.DB
}

// NewStoryStore creates a new StoryStore with the given database connection.
func NewStoryStore(db *sql.DB) *StoryStore {
	return &StoryStore{db: db}
}

const storyColumns = `id, title, content, story_type, user_id, character_names, page_count, illustrations, genre, age_group, price, is_published, rating, description, created_at, updated_at`

func scanStory(row interface{ Scan(...any) error }) (*models.Story, error) {
	st := &models.Story{}
	var names, illustrations []byte
	err := row.Scan(
		&st.ID, &st.Title, &st.Content, &st.StoryType, &st.UserID, &names,
		&st.PageCount, &illustrations, &st.Genre, &st.AgeGroup, &st.Price,
		&st.IsPublished, &st.Rating, &st.Description, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := scanList(names, &st.CharacterNames); err != nil {
		return nil, err
	}
	if err := scanList(illustrations, &st.Illustrations); err != nil {
		return nil, err
	}
	return st, nil
}

func collectStories(rows *sql.Rows) ([]models.Story, error) {
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, *st)
	}
	return stories, rows.Err()
}

// Create inserts a new story and returns the stored row.
func (s *StoryStore) Create(st *models.Story) (*models.Story, error) {
	names, err := jsonList(st.CharacterNames)
	if err != nil {
		return nil, err
	}
	illustrations, err := jsonList(st.Illustrations)
	if err != nil {
		return nil, err
	}

	created, err := scanStory(s.db.QueryRow(`
		INSERT INTO stories (title, content, story_type, user_id, character_names, page_count, illustrations, genre, age_group, price, is_published, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+storyColumns+`
	`, st.Title, st.Content, st.StoryType, st.UserID, names, st.PageCount,
		illustrations, st.Genre, st.AgeGroup, st.Price, st.IsPublished, st.Description))
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return created, nil
}

// FindByID retrieves a story by UUID. Returns nil if not found.
func (s *StoryStore) FindByID(id uuid.UUID) (*models.Story, error) {
	st, err := scanStory(s.db.QueryRow(`
		SELECT `+storyColumns+` FROM stories WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find story by id: %w", err)
	}
	return st, nil
}

// ListByUser returns the user's personal library, newest first.
func (s *StoryStore) ListByUser(userID uuid.UUID) ([]models.Story, error) {
	rows, err := s.db.Query(`
		SELECT `+storyColumns+` FROM stories WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list stories by user: %w", err)
	}
	return collectStories(rows)
}

// ListPublished returns the public catalog, newest first.
func (s *StoryStore) ListPublished() ([]models.Story, error) {
	rows, err := s.db.Query(`
		SELECT ` + storyColumns + ` FROM stories WHERE is_published ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published stories: %w", err)
	}
	return collectStories(rows)
}

// Search filters the published catalog. The query matches title or
// description case-insensitively; genre and ageGroup are exact filters.
// Empty arguments are skipped. All active filters combine with AND.
func (s *StoryStore) Search(query, genre, ageGroup string) ([]models.Story, error) {
	sqlQuery := `SELECT ` + storyColumns + ` FROM stories WHERE is_published`
	var args []any

	if query != "" {
		args = append(args, "%"+query+"%")
		n := len(args)
		sqlQuery += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", n, n)
	}
	if genre != "" {
		args = append(args, genre)
		sqlQuery += fmt.Sprintf(" AND genre = $%d", len(args))
	}
	if ageGroup != "" {
		args = append(args, ageGroup)
		sqlQuery += fmt.Sprintf(" AND age_group = $%d", len(args))
	}

	sqlQuery += " ORDER BY created_at DESC"

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search stories: %w", err)
	}
	return collectStories(rows)
}

// List returns every story regardless of owner or publication state.
// Admin use only.
func (s *StoryStore) List() ([]models.Story, error) {
	rows, err := s.db.Query(`
		SELECT ` + storyColumns + ` FROM stories ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return collectStories(rows)
}

// Update applies a partial metadata merge: only non-nil fields change,
// content and identity never do. Returns the updated row, or nil if no
// story with that ID exists.
func (s *StoryStore) Update(id uuid.UUID, upd *models.StoryUpdate) (*models.Story, error) {
	st, err := scanStory(s.db.QueryRow(`
		UPDATE stories SET
			title        = COALESCE($1, title),
			genre        = COALESCE($2, genre),
			age_group    = COALESCE($3, age_group),
			price        = COALESCE($4, price),
			is_published = COALESCE($5, is_published),
			description  = COALESCE($6, description),
			updated_at   = NOW()
		WHERE id = $7
		RETURNING `+storyColumns+`
	`, upd.Title, upd.Genre, upd.AgeGroup, upd.Price, upd.IsPublished, upd.Description, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update story: %w", err)
	}
	return st, nil
}

// Delete removes a story by ID.
func (s *StoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

// Count returns the total number of stories.
func (s *StoryStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return n, nil
}
