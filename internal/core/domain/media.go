package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ImageKind tags an image as taken before or after the work.
type ImageKind string

const (
	ImageBefore ImageKind = "before"
	ImageAfter  ImageKind = "after"
)

// Valid accepts the empty kind, which means untagged.
func (k ImageKind) Valid() bool {
	return k == "" || k == ImageBefore || k == ImageAfter
}

const (
	MaxCaption     = 200
	MaxCommentText = 300
)

type Image struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	URL          string    `json:"url"`
	Caption      string    `json:"caption,omitempty"`
	Kind         ImageKind `json:"kind,omitempty"`
	UploadedByID string    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"image_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadRules restricts what may be stored as an order image.
type UploadRules struct {
	AllowedMIME []string
	AllowedExt  []string
	MaxSize     int64
}

var ImageUploadRules = UploadRules{
	AllowedMIME: []string{"image/jpeg", "image/png", "image/webp"},
	AllowedExt:  []string{".jpg", ".jpeg", ".png", ".webp"},
	MaxSize:     10 * 1024 * 1024,
}

// Check validates an incoming file against the rules.
func (r UploadRules) Check(filename, contentType string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("empty file: %w", ErrInvalidInput)
	}
	if r.MaxSize > 0 && size > r.MaxSize {
		return fmt.Errorf("file exceeds %dMB: %w", r.MaxSize/1024/1024, ErrInvalidInput)
	}
	if !slices.Contains(r.AllowedMIME, contentType) {
		return fmt.Errorf("file type %q not allowed: %w", contentType, ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(r.AllowedExt, ext) {
		return fmt.Errorf("extension %q not allowed: %w", ext, ErrInvalidInput)
	}
	return nil
}
