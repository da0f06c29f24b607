// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storygen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	responses []string
	err       error
	calls     int
	lastUser  string
}

func (f *fakeGenerator) Generate(_ context.Context, _, userPrompt string) (string, error) {
	f.calls++
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fake: no responses left")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

const goodResponse = `{
  "content": "Page one. [PAGE BREAK] Page two. [PAGE BREAK] Page three.",
  "description": "A short adventure.",
  "illustrations": ["A forest", "A castle", "A celebration"]
}`

func validRequest() *Request {
	return &Request{
		Title:          "Mia and the Moon",
		Genre:          "adventure",
		AgeGroup:       "4-6",
		PageCount:      10,
		CharacterNames: []string{"Mia"},
		Theme:          "courage",
	}
}

func TestValidate(t *testing.T) {
	if errs := validRequest().Validate(); len(errs) != 0 {
		t.Fatalf("valid request produced errors: %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"empty title", func(r *Request) { r.Title = "  " }, "title"},
		{"empty genre", func(r *Request) { r.Genre = "" }, "genre"},
		{"empty age group", func(r *Request) { r.AgeGroup = "" }, "age_group"},
		{"page count too low", func(r *Request) { r.PageCount = 7 }, "page_count"},
		{"page count too high", func(r *Request) { r.PageCount = 51 }, "page_count"},
		{"no character names", func(r *Request) { r.CharacterNames = nil }, "character_names"},
		{"blank character names", func(r *Request) { r.CharacterNames = []string{"", "  "} }, "character_names"},
		{"empty theme", func(r *Request) { r.Theme = "" }, "theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			errs := req.Validate()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.field {
				t.Errorf("got field %q, want %q", errs[0].Field, tt.field)
			}
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	for _, pc := range []int{MinPageCount, MaxPageCount} {
		req := validRequest()
		req.PageCount = pc
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("page count %d rejected: %v", pc, errs)
		}
	}
}

func TestGenerate(t *testing.T) {
	gen := &fakeGenerator{responses: []string{goodResponse}}
	svc := New(gen)

	res, err := svc.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(res.Content, PageBreak) {
		t.Errorf("content lost page breaks: %q", res.Content)
	}
	if res.Description == "" {
		t.Error("description is empty")
	}
	if len(res.Illustrations) != 3 {
		t.Errorf("got %d illustrations, want 3", len(res.Illustrations))
	}
}

func TestGeneratePromptEmbedsRequest(t *testing.T) {
	gen := &fakeGenerator{responses: []string{goodResponse}}
	svc := New(gen)

	req := validRequest()
	req.CharacterNames = []string{"Mia", "Tom"}
	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{"Mia and the Moon", "adventure", "4-6", "Mia, Tom", "courage", PageBreak} {
		if !strings.Contains(gen.lastUser, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateFencedResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"```json\n" + goodResponse + "\n```"}}
	svc := New(gen)

	res, err := svc.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Generate with fenced response: %v", err)
	}
	if res.Content == "" {
		t.Error("content is empty")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  string
	}{
		{"empty response", "", "empty response"},
		{"whitespace response", "   \n  ", "empty response"},
		{"malformed json", "once upon a time", "not valid JSON"},
		{"missing content", `{"description": "d", "illustrations": ["a"]}`, "missing content"},
		{"missing description", `{"content": "c", "illustrations": ["a"]}`, "missing description"},
		{"missing illustrations", `{"content": "c", "description": "d"}`, "missing illustrations"},
		{"empty illustrations", `{"content": "c", "description": "d", "illustrations": []}`, "missing illustrations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&fakeGenerator{responses: []string{tt.response}})
			_, err := svc.Generate(context.Background(), validRequest())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateProviderError(t *testing.T) {
	svc := New(&fakeGenerator{err: errors.New("boom")})
	if _, err := svc.Generate(context.Background(), validRequest()); err == nil {
		t.Fatal("expected provider error to surface")
	}
}

func TestVariations(t *testing.T) {
	gen := &fakeGenerator{responses: []string{goodResponse}}
	svc := New(gen)

	results, err := svc.Variations(context.Background(), validRequest(), 3)
	if err != nil {
		t.Fatalf("Variations: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if gen.calls != 3 {
		t.Errorf("got %d provider calls, want 3", gen.calls)
	}
}

func TestVariationsAbortOnFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []string{goodResponse, "not json", goodResponse}}
	svc := New(gen)

	results, err := svc.Variations(context.Background(), validRequest(), 3)
	if err == nil {
		t.Fatal("expected batch to fail")
	}
	if results != nil {
		t.Errorf("expected no partial results, got %d", len(results))
	}
	if gen.calls != 2 {
		t.Errorf("got %d calls, want 2 (abort on first failure)", gen.calls)
	}
}

func TestPages(t *testing.T) {
	content := "One. [PAGE BREAK] Two. [PAGE BREAK]  [PAGE BREAK] Three."
	pages := Pages(content)
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3: %v", len(pages), pages)
	}
	if pages[0] != "One." || pages[2] != "Three." {
		t.Errorf("unexpected pages: %v", pages)
	}
}
