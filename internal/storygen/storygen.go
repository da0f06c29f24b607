// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storygen turns a structured story request into finished story
// content by prompting an LLM and parsing its JSON-shaped reply. It
// persists nothing and never retries: a bad provider response surfaces
// as an error for the caller to report, and the caller may simply ask
// again. Repeated calls with the same request are expected to produce
// different stories.
package storygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// PageBreak is the delimiter the model is instructed to place between
// story pages in the generated content.
const PageBreak = "[PAGE BREAK]"

// Page count bounds accepted for a generation request.
const (
	MinPageCount = 8
	MaxPageCount = 50
)

// Generator is the capability this service needs from the AI layer.
// *ai.Registry satisfies it; tests supply deterministic fakes.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Request describes the story a reader asked for.
type Request struct {
	Title          string   `json:"title"`
	Genre          string   `json:"genre"`
	AgeGroup       string   `json:"age_group"`
	PageCount      int      `json:"page_count"`
	CharacterNames []string `json:"character_names"`
	Theme          string   `json:"theme"`

	// CharacterPhotos holds raw image bytes uploaded alongside the
	// request. They are archived for illustration work; the text
	// model only learns how many were provided.
	CharacterPhotos [][]byte `json:"-"`
}

// FieldError names a request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the request preconditions and returns one entry per
// offending field. An empty slice means the request is acceptable.
func (r *Request) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, FieldError{"title", "Title is required."})
	}
	if strings.TrimSpace(r.Genre) == "" {
		errs = append(errs, FieldError{"genre", "Genre is required."})
	}
	if strings.TrimSpace(r.AgeGroup) == "" {
		errs = append(errs, FieldError{"age_group", "Age group is required."})
	}
	if r.PageCount < MinPageCount || r.PageCount > MaxPageCount {
		errs = append(errs, FieldError{"page_count",
			fmt.Sprintf("Page count must be between %d and %d.", MinPageCount, MaxPageCount)})
	}
	if !hasNonEmpty(r.CharacterNames) {
		errs = append(errs, FieldError{"character_names", "At least one character name is required."})
	}
	if strings.TrimSpace(r.Theme) == "" {
		errs = append(errs, FieldError{"theme", "Theme is required."})
	}

	return errs
}

func hasNonEmpty(names []string) bool {
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			return true
		}
	}
	return false
}

// Result is the structured output of one generation.
type Result struct {
	Content       string   `json:"content"`
	Description   string   `json:"description"`
	Illustrations []string `json:"illustrations"`
}

// Service wraps a Generator with the prompt/response contract for
// personalized children's stories.
type Service struct {
	gen Generator
}

// New creates a story generation service on top of the given Generator.
func New(gen Generator) *Service {
	return &Service{gen: gen}
}

// Generate produces one story for the request. The provider's reply must
// be a JSON object with content, description, and illustrations keys;
// anything else — empty reply, broken JSON, missing keys — is an error,
// and nothing is retried or persisted here.
func (s *Service) Generate(ctx context.Context, req *Request) (*Result, error) {
	raw, err := s.gen.Generate(ctx, systemPrompt, userPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("storygen: provider call: %w", err)
	}

	return parseResult(raw)
}

// Variations produces n independent generations of the same request.
// Each variation is a separate provider call so the stories differ in
// plot, not just wording. The first failed call aborts the whole batch;
// partial batches are never returned.
func (s *Service) Variations(ctx context.Context, req *Request, n int) ([]*Result, error) {
	results := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		res, err := s.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("storygen: variation %d of %d: %w", i+1, n, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// systemPrompt fixes the model's role and the response schema. The JSON
// shape must match Result exactly; parseResult rejects anything less.
const systemPrompt = `You are a children's book author who writes warm, age-appropriate,
personalized stories. You always answer with a single JSON object and nothing else,
using exactly this structure:
{
  "content": "The complete story text with clear page breaks marked as [PAGE BREAK]",
  "description": "A brief, engaging description of the story",
  "illustrations": ["Illustration prompt 1", "Illustration prompt 2", "Illustration prompt 3"]
}
Do not wrap the JSON in markdown code fences. Do not add commentary.`

// userPrompt embeds every request field into the instruction.
func userPrompt(req *Request) string {
	var b strings.Builder

	b.WriteString("Create a personalized children's story with the following specifications:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Genre: %s\n", req.Genre)
	fmt.Fprintf(&b, "Age Group: %s\n", req.AgeGroup)
	fmt.Fprintf(&b, "Page Count: %d\n", req.PageCount)
	fmt.Fprintf(&b, "Character Names: %s\n", strings.Join(req.CharacterNames, ", "))
	fmt.Fprintf(&b, "Theme: %s\n", req.Theme)

	if n := len(req.CharacterPhotos); n > 0 {
		fmt.Fprintf(&b, "\nThe reader uploaded %d reference photo(s) of the characters; "+
			"write illustration prompts that an illustrator could match to real children.\n", n)
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Write an engaging, age-appropriate story\n")
	b.WriteString("- Use the provided character names throughout\n")
	fmt.Fprintf(&b, "- Make it exactly %d pages long, separated by %s markers\n", req.PageCount, PageBreak)
	b.WriteString("- Include the theme naturally in the story\n")
	b.WriteString("- Create a brief description for the story\n")
	b.WriteString("- Suggest 3 illustration prompts that would work well with the story\n")

	return b.String()
}

// parseResult validates the provider's reply against the Result schema.
func parseResult(raw string) (*Result, error) {
	raw = stripFences(raw)
	if raw == "" {
		return nil, fmt.Errorf("storygen: empty response from provider")
	}

	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("storygen: response is not valid JSON: %w", err)
	}

	if res.Content == "" {
		return nil, fmt.Errorf("storygen: response missing content")
	}
	if res.Description == "" {
		return nil, fmt.Errorf("storygen: response missing description")
	}
	if len(res.Illustrations) == 0 {
		return nil, fmt.Errorf("storygen: response missing illustrations")
	}

	return &res, nil
}

// stripFences removes a markdown code fence wrapper if the model added
// one despite instructions.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if nl := strings.Index(raw, "\n"); nl != -1 {
			raw = raw[nl+1:]
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}

	return strings.TrimSpace(raw)
}

// Pages splits generated content on the page break marker, trimming
// whitespace around each page.
func Pages(content string) []string {
	parts := strings.Split(content, PageBreak)
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}
