package report

import "errors"

// Domain errors for report operations.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyCountry   = errors.New("report country slug cannot be empty")
)
