package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin account, a couple of story templates, and a small pre-made
// catalog so the storefront is browsable out of the box. The admin will
// be prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, "admin@storynest.local", string(hash), "Admin", "", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedTemplates(db); err != nil {
		return err
	}
	if err := seedCatalog(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@storynest.local",
		"password", "admin",
	)

	return nil
}

func seedTemplates(db *sql.DB) error {
	templates := []struct {
		title, content, placeholders, genre, ageGroup, description string
		pageCount                                                  int
	}{
		{
			title: "The Brave Little Explorer",
			content: "Once upon a time, [CHARACTER1] found an old map in the attic. [PAGE BREAK] " +
				"The map led [CHARACTER1] and their best friend [CHARACTER2] deep into the whispering woods. [PAGE BREAK] " +
				"Together, [CHARACTER1] and [CHARACTER2] discovered that the real treasure was the courage they found along the way.",
			placeholders: `["[CHARACTER1]","[CHARACTER2]"]`,
			genre:        "adventure",
			ageGroup:     "4-6",
			description:  "A treasure hunt about courage and friendship.",
			pageCount:    10,
		},
		{
			title: "Goodnight, Little Star",
			content: "Every night, [CHARACTER1] waved goodnight to the littlest star in the sky. [PAGE BREAK] " +
				"One evening the star floated down to visit [CHARACTER1]'s window. [PAGE BREAK] " +
				"They whispered secrets until [CHARACTER1] drifted off to the softest sleep.",
			placeholders: `["[CHARACTER1]"]`,
			genre:        "bedtime",
			ageGroup:     "2-4",
			description:  "A gentle bedtime story about a child and a friendly star.",
			pageCount:    8,
		},
	}

	for _, t := range templates {
		_, err := db.Exec(`
			INSERT INTO story_templates (title, content, placeholder_names, genre, age_group, page_count, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, t.title, t.content, t.placeholders, t.genre, t.ageGroup, t.pageCount, t.description)
		if err != nil {
			return fmt.Errorf("seed template %q: %w", t.title, err)
		}
	}

	return nil
}

func seedCatalog(db *sql.DB) error {
	stories := []struct {
		title, content, genre, ageGroup, description string
		pageCount                                    int
		price                                        float64
	}{
		{
			title: "The Dragon Who Couldn't Roar",
			content: "High on Misty Mountain lived a small dragon with a very quiet voice. [PAGE BREAK] " +
				"While the other dragons practiced roaring, he practiced listening. [PAGE BREAK] " +
				"When the great storm came, it was his quiet wisdom that saved the mountain.",
			genre:       "fantasy",
			ageGroup:    "4-6",
			description: "A quiet dragon learns that listening can be louder than roaring.",
			pageCount:   12,
			price:       9.99,
		},
		{
			title: "Submarine to the Stars",
			content: "Captain Pinwheel's submarine could dive deeper than any other. [PAGE BREAK] " +
				"One night it dove so deep it came out the other side, into a sea of stars. [PAGE BREAK] " +
				"The crew mapped constellations like coral reefs all the way home.",
			genre:       "science-fiction",
			ageGroup:    "6-8",
			description: "A deep-sea voyage that turns into a journey through the night sky.",
			pageCount:   14,
			price:       12.99,
		},
	}

	for _, s := range stories {
		_, err := db.Exec(`
			INSERT INTO stories (title, content, story_type, genre, age_group, page_count, price, is_published, description)
			VALUES ($1, $2, 'premade', $3, $4, $5, $6, TRUE, $7)
		`, s.title, s.content, s.genre, s.ageGroup, s.pageCount, s.price, s.description)
		if err != nil {
			return fmt.Errorf("seed story %q: %w", s.title, err)
		}
	}

	return nil
}
