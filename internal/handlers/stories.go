// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"storynest/internal/middleware"
	"storynest/internal/models"
	"storynest/internal/placeholder"
	"storynest/internal/slug"
	"storynest/internal/storage"
	"storynest/internal/store"
	"storynest/internal/storygen"
)

// Photo upload limits for custom story requests.
const (
	maxPhotoCount = 5
	maxPhotoSize  = 5 << 20 // 5 MiB per photo
	variationN    = 3

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	maxImagePixels = 100_000_000

	// photoURLTTL is how long presigned photo download URLs stay valid.
	photoURLTTL = 15 * time.Minute
)

// Stories groups the story-related HTTP handlers: the reader's library,
// the published catalog, and story creation.
type Stories struct {
	stories   *store.StoryStore
	templates *store.TemplateStore
	generator *storygen.Service
	storage   *storage.Client // nil when object storage is not configured
}

// NewStories creates a new Stories handler group.
func NewStories(stories *store.StoryStore, templates *store.TemplateStore, generator *storygen.Service, storage *storage.Client) *Stories {
	return &Stories{
		stories:   stories,
		templates: templates,
		generator: generator,
		storage:   storage,
	}
}

// ListMine returns the authenticated user's story library, newest first.
func (h *Stories) ListMine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	list, err := h.stories.ListByUser(sess.UserID)
	if err != nil {
		slog.Error("list user stories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load stories")
		return
	}
	if list == nil {
		list = []models.Story{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Catalog returns the published catalog, optionally filtered by the
// search (title/description), genre, and ageGroup query parameters.
func (h *Stories) Catalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("search"))
	genre := strings.TrimSpace(q.Get("genre"))
	ageGroup := strings.TrimSpace(q.Get("ageGroup"))

	var (
		list []models.Story
		err  error
	)
	if query == "" && genre == "" && ageGroup == "" {
		list, err = h.stories.ListPublished()
	} else {
		list, err = h.stories.Search(query, genre, ageGroup)
	}
	if err != nil {
		slog.Error("catalog query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}
	if list == nil {
		list = []models.Story{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns a single story. Published stories are visible to everyone;
// unpublished stories only to their owner. Someone else's story reads as
// 404, never 403, so story IDs are not probeable.
func (h *Stories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}

	story, err := h.stories.FindByID(id)
	if err != nil {
		slog.Error("find story failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load story")
		return
	}
	if story == nil {
		writeError(w, http.StatusNotFound, "Story not found")
		return
	}

	if !story.IsPublished {
		sess := middleware.SessionFromCtx(r.Context())
		if sess == nil || !story.OwnedBy(sess.UserID) {
			writeError(w, http.StatusNotFound, "Story not found")
			return
		}
	}

	writeJSON(w, http.StatusOK, story)
}

type templateStoryRequest struct {
	TemplateID     string   `json:"template_id"`
	Title          string   `json:"title"`
	CharacterNames []string `json:"character_names"`
}

// CreateFromTemplate instantiates a story from a template by literal,
// position-by-position placeholder substitution. No AI call is involved.
func (h *Stories) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req templateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := validateTemplateStoryRequest(req.Title, req.CharacterNames); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	tmpl, err := h.findTemplate(req.TemplateID)
	if err != nil {
		slog.Error("find template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load template")
		return
	}
	if tmpl == nil {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	content := placeholder.Apply(tmpl.Content, tmpl.PlaceholderNames, req.CharacterNames)

	story, err := h.stories.Create(&models.Story{
		Title:          req.Title,
		Content:        content,
		StoryType:      models.StoryTypeTemplate,
		UserID:         &sess.UserID,
		CharacterNames: req.CharacterNames,
		PageCount:      tmpl.PageCount,
		Genre:          tmpl.Genre,
		AgeGroup:       tmpl.AgeGroup,
		Description:    tmpl.Description,
	})
	if err != nil {
		slog.Error("create template story failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create story")
		return
	}

	writeJSON(w, http.StatusCreated, story)
}

// CreateCustom generates a brand-new story with the AI provider. The
// request is multipart: a "data" field carrying the JSON story request
// plus up to five character photos. Photos that are too large or not
// images are silently dropped, never fatal.
func (h *Stories) CreateCustom(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	req, errs := h.parseCustomRequest(r)
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		slog.Error("story generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate story. Please try again.")
		return
	}

	story, err := h.stories.Create(&models.Story{
		Title:          req.Title,
		Content:        result.Content,
		StoryType:      models.StoryTypeCustom,
		UserID:         &sess.UserID,
		CharacterNames: req.CharacterNames,
		PageCount:      req.PageCount,
		Illustrations:  result.Illustrations,
		Genre:          req.Genre,
		AgeGroup:       req.AgeGroup,
		Description:    result.Description,
	})
	if err != nil {
		slog.Error("create custom story failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save story")
		return
	}

	h.archivePhotos(r, story, req.CharacterPhotos)

	writeJSON(w, http.StatusCreated, story)
}

// Variations generates several independent takes on the same request so
// the reader can pick one. Nothing is persisted; the chosen variation
// comes back through CreateCustom semantics on the client's next call.
func (h *Stories) Variations(w http.ResponseWriter, r *http.Request) {
	req, errs := h.parseCustomRequest(r)
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	results, err := h.generator.Variations(r.Context(), req, variationN)
	if err != nil {
		slog.Error("story variations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate story variations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"variations": results})
}

// Update applies a partial metadata merge to an owned story.
func (h *Stories) Update(w http.ResponseWriter, r *http.Request) {
	story, ok := h.ownedStory(w, r)
	if !ok {
		return
	}

	var upd models.StoryUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.stories.Update(story.ID, &upd)
	if err != nil {
		slog.Error("update story failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update story")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Story not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an owned story.
func (h *Stories) Delete(w http.ResponseWriter, r *http.Request) {
	story, ok := h.ownedStory(w, r)
	if !ok {
		return
	}

	if err := h.stories.Delete(story.ID); err != nil {
		slog.Error("delete story failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete story")
		return
	}

	// Best effort: the story row is gone either way.
	if h.storage != nil {
		if err := h.storage.DeleteArchivedPhotos(r.Context(), photoArchivePrefix(story)); err != nil {
			slog.Warn("delete archived photos failed", "story_id", story.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Story deleted"})
}

// Photos returns presigned download URLs for the character photos
// archived with a story. Owner only; URLs expire after photoURLTTL.
func (h *Stories) Photos(w http.ResponseWriter, r *http.Request) {
	story, ok := h.ownedStory(w, r)
	if !ok {
		return
	}

	photos := []storage.ArchivedPhoto{}
	if h.storage != nil {
		list, err := h.storage.ArchivedPhotoURLs(r.Context(), photoArchivePrefix(story), photoURLTTL)
		if err != nil {
			slog.Error("list archived photos failed", "story_id", story.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load photos")
			return
		}
		if list != nil {
			photos = list
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"photos": photos})
}

// ownedStory loads the story in the URL and checks it belongs to the
// session user. Both a missing story and someone else's story answer
// 404 so ownership is never revealed.
func (h *Stories) ownedStory(w http.ResponseWriter, r *http.Request) (*models.Story, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid story ID")
		return nil, false
	}

	story, err := h.stories.FindByID(id)
	if err != nil {
		slog.Error("find story failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load story")
		return nil, false
	}
	if story == nil || !story.OwnedBy(sess.UserID) {
		writeError(w, http.StatusNotFound, "Story not found")
		return nil, false
	}

	return story, true
}

func (h *Stories) findTemplate(rawID string) (*models.StoryTemplate, error) {
	id, err := parseUUID(rawID)
	if err != nil {
		return nil, nil // invalid ID reads as not found
	}
	return h.templates.FindByID(id)
}

// parseCustomRequest reads a custom story request from either a JSON
// body or a multipart form with a "data" JSON field and photo parts.
func (h *Stories) parseCustomRequest(r *http.Request) (*storygen.Request, []FieldError) {
	var req storygen.Request

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(int64(maxPhotoCount)*maxPhotoSize + 1<<20); err != nil {
			return nil, []FieldError{{"data", "Request form could not be parsed."}}
		}
		if err := jsonField(r.FormValue("data"), &req); err != nil {
			return nil, []FieldError{{"data", "Story request JSON is not valid."}}
		}
		req.CharacterPhotos = collectPhotos(r)
	} else {
		if err := decodeJSON(r, &req); err != nil {
			return nil, []FieldError{{"data", "Story request JSON is not valid."}}
		}
	}

	if errs := req.Validate(); len(errs) > 0 {
		out := make([]FieldError, len(errs))
		for i, e := range errs {
			out[i] = FieldError{Field: e.Field, Message: e.Message}
		}
		return nil, out
	}

	return &req, nil
}

// collectPhotos extracts valid uploaded photos: at most five, each under
// the size limit and decodable as an image. Anything else is dropped
// without failing the request.
func collectPhotos(r *http.Request) [][]byte {
	if r.MultipartForm == nil {
		return nil
	}

	var photos [][]byte
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			if len(photos) >= maxPhotoCount {
				return photos
			}
			if fh.Size > maxPhotoSize {
				slog.Warn("dropping oversized photo", "name", fh.Filename, "size", fh.Size)
				continue
			}

			f, err := fh.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(io.LimitReader(f, maxPhotoSize+1))
			f.Close()
			if err != nil || len(data) > maxPhotoSize {
				continue
			}

			// Must decode as a real image (jpeg/png/gif/webp).
			if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
				slog.Warn("dropping non-image upload", "name", fh.Filename)
				continue
			}

			photos = append(photos, data)
		}
	}
	return photos
}

// archivePhotos stores the reader's character photos in the archive
// bucket for later illustration work, each with a JPEG thumbnail.
// Storage being down or absent never fails story creation.
func (h *Stories) archivePhotos(r *http.Request, story *models.Story, photos [][]byte) {
	if h.storage == nil || len(photos) == 0 {
		return
	}

	batch := make([]storage.Photo, len(photos))
	for i, data := range photos {
		thumb, err := generateThumbnail(data, thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "story_id", story.ID, "error", err)
		}
		batch[i] = storage.Photo{
			ContentType: http.DetectContentType(data),
			Data:        data,
			Thumbnail:   thumb,
		}
	}

	prefix := photoArchivePrefix(story) + "/" + slug.Generate(story.Title)
	if _, err := h.storage.ArchiveCharacterPhotos(r.Context(), prefix, batch); err != nil {
		slog.Error("archive character photos failed", "story_id", story.ID, "error", err)
	}
}

// photoArchivePrefix is the key prefix holding a story's archived
// photos. Keyed by story ID so the archive stays findable after the
// title (and its slug) changes.
func photoArchivePrefix(story *models.Story) string {
	return "character-photos/" + story.ID.String()
}

// generateThumbnail creates a JPEG thumbnail from an image, constrained
// to maxWidth while preserving aspect ratio. Returns nil if the image is
// already smaller than maxWidth.
func generateThumbnail(data []byte, maxWidth int) ([]byte, error) {
	// Decode config first to check dimensions without a full decode.
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Check for image bombs.
	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	// Skip thumbnail if the image is already small enough.
	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Scale to maxWidth preserving aspect ratio.
	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, int(float64(bounds.Dy())*ratio)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
