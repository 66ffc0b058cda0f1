package country

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest country name accepted from the search form.
const MaxNameLength = 64

// Country pairs an English country name with its slug, the two-letter
// ISO 3166-1 code the air-quality API filters by.
type Country struct {
	name string
	slug string
}

// NewCountry creates a Country. The slug is upper-cased.
func NewCountry(name, slug string) (Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Country{}, ErrEmptyName
	}
	slug = strings.ToUpper(strings.TrimSpace(slug))
	if len(slug) != 2 {
		return Country{}, ErrUnknownCountry
	}
	return Country{name: name, slug: slug}, nil
}

// Name returns the display name.
func (c Country) Name() string {
	return c.name
}

// Slug returns the two-letter country code.
func (c Country) Slug() string {
	return c.slug
}

// Validate checks raw form input and returns it trimmed.
func Validate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return trimmed, nil
}
