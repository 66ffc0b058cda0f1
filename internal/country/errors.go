package country

import "errors"

// Domain errors for country input.
var (
	// Validation errors
	ErrEmptyName   = errors.New("country name is empty")
	ErrNameTooLong = errors.New("country name is too long")

	// Lookup errors
	ErrUnknownCountry = errors.New("country not supported")
)

// Messages shown next to the search field for the validation errors.
const (
	EmptyNameMessage   = "Please enter a country name"
	NameTooLongMessage = "Country name is too long"
)
