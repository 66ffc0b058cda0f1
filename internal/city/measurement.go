package city

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyCity is returned when a measurement has no city name.
var ErrEmptyCity = errors.New("measurement city cannot be empty")

// DefaultParameter is the pollutant cities are ranked by.
const DefaultParameter = "pm25"

// Measurement is the latest reading of a pollutant at one monitoring location.
type Measurement struct {
	city        string
	location    string
	parameter   string
	value       float64
	unit        string
	lastUpdated time.Time
}

// NewMeasurement creates a Measurement. City is required, location may be empty.
func NewMeasurement(city, location, parameter string, value float64, unit string, lastUpdated time.Time) (Measurement, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Measurement{}, ErrEmptyCity
	}
	return Measurement{
		city:        city,
		location:    strings.TrimSpace(location),
		parameter:   parameter,
		value:       value,
		unit:        unit,
		lastUpdated: lastUpdated,
	}, nil
}

func (m Measurement) City() string           { return m.city }
func (m Measurement) Location() string       { return m.location }
func (m Measurement) Parameter() string      { return m.parameter }
func (m Measurement) Value() float64         { return m.value }
func (m Measurement) Unit() string           { return m.unit }
func (m Measurement) LastUpdated() time.Time { return m.lastUpdated }
