package driver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/country"
)

// searchFailure describes how a failed search is reported to the user.
type searchFailure struct {
	status  int
	message string
	// invalid input is shown under the search field, everything else in the results area
	invalid bool
}

func classifySearchError(input string, err error) searchFailure {
	switch {
	case errors.Is(err, country.ErrEmptyName):
		return searchFailure{status: http.StatusBadRequest, message: country.EmptyNameMessage, invalid: true}
	case errors.Is(err, country.ErrNameTooLong):
		return searchFailure{status: http.StatusBadRequest, message: country.NameTooLongMessage, invalid: true}
	case errors.Is(err, country.ErrUnknownCountry):
		return searchFailure{
			status:  http.StatusNotFound,
			message: fmt.Sprintf("No air quality data for %q. Try a country from the list.", input),
		}
	case errors.Is(err, application.ErrUpstreamUnavailable):
		return searchFailure{
			status:  http.StatusBadGateway,
			message: "Air quality data is unavailable right now. Please try again later.",
		}
	default:
		return searchFailure{status: http.StatusInternalServerError, message: "Something went wrong. Please try again."}
	}
}
