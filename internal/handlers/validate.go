package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for account and story fields.
const (
	maxTitleLen    = 300
	maxPasswordLen = 200
	minPasswordLen = 8
	maxNameLen     = 100
)

// validateRegistration checks new-account inputs.
func validateRegistration(email, password string) []FieldError {
	var errs []FieldError

	email = strings.TrimSpace(email)
	if email == "" {
		errs = append(errs, FieldError{"email", "Email is required."})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, FieldError{"email", "Email address is not valid."})
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		errs = append(errs, FieldError{"password", "Password must be at least 8 characters."})
	} else if utf8.RuneCountInString(password) > maxPasswordLen {
		errs = append(errs, FieldError{"password", "Password is too long (max 200 characters)."})
	}

	return errs
}

// validateTemplateStoryRequest checks the inputs for creating a story
// from a template.
func validateTemplateStoryRequest(title string, characterNames []string) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(title) == "" {
		errs = append(errs, FieldError{"title", "Title is required."})
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs = append(errs, FieldError{"title", "Title is too long (max 300 characters)."})
	}

	var nonEmpty int
	for _, n := range characterNames {
		if strings.TrimSpace(n) != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		errs = append(errs, FieldError{"character_names", "At least one character name is required."})
	}
	for _, n := range characterNames {
		if utf8.RuneCountInString(n) > maxNameLen {
			errs = append(errs, FieldError{"character_names", "Character names are too long (max 100 characters)."})
			break
		}
	}

	return errs
}

// validateTemplateFields checks admin template create/update inputs.
func validateTemplateFields(title, content string, pageCount int) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(title) == "" {
		errs = append(errs, FieldError{"title", "Title is required."})
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, FieldError{"content", "Content is required."})
	}
	if pageCount < 1 {
		errs = append(errs, FieldError{"page_count", "Page count must be positive."})
	}

	return errs
}
