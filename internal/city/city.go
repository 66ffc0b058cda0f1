package city

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NoDescription is shown when the encyclopedia has nothing about a city.
const NoDescription = "Here is no description about this place"

// City is a ranked city together with its encyclopedia description.
type City struct {
	Name        string
	Location    string
	Value       float64
	Unit        string
	Description string
}

// FromMeasurement builds a City from a ranked measurement and a raw extract.
func FromMeasurement(m Measurement, extract string) City {
	return City{
		Name:        m.city,
		Location:    m.location,
		Value:       m.value,
		Unit:        m.unit,
		Description: Describe(extract),
	}
}

var stripPolicy = bluemonday.StrictPolicy()

// Describe turns an HTML extract into plain text, falling back to
// NoDescription when nothing readable is left.
func Describe(extract string) string {
	text := stripPolicy.Sanitize(extract)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return NoDescription
	}
	return text
}
