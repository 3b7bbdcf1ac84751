package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/airhost/ops/internal/core/domain"
)

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips markup from user supplied text and trims it.
func cleanText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// requireText cleans s and checks it holds between min and max characters.
func requireText(field, s string, min, max int) (string, error) {
	s = cleanText(s)
	n := utf8.RuneCountInString(s)
	if n < min {
		if min == 1 {
			return "", fmt.Errorf("%s is required: %w", field, domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("%s must be at least %d characters: %w", field, min, domain.ErrInvalidInput)
	}
	if n > max {
		return "", fmt.Errorf("%s must be at most %d characters: %w", field, max, domain.ErrInvalidInput)
	}
	return s, nil
}
