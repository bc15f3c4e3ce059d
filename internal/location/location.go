package location

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mooncorn/locationtracker/internal/observable"
)

// ErrLocationUnknown is delivered to reporters when a reading has no position
var ErrLocationUnknown = fmt.Errorf("location unknown: %w", observable.ErrUnknownValue)

// ErrInvalidCoordinates is returned when a latitude or longitude is out of range
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Location is a geographic position in decimal degrees
type Location struct {
	Latitude  float64
	Longitude float64
}

// New creates a new Location
func New(latitude, longitude float64) Location {
	return Location{Latitude: latitude, Longitude: longitude}
}

// Parse builds a Location after checking that both coordinates are in range
func Parse(latitude, longitude float64) (Location, error) {
	loc := New(latitude, longitude)
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks the coordinate ranges
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, l.Longitude)
	}
	return nil
}

// String renders the location as "latitude, longitude"
func (l Location) String() string {
	return formatDegrees(l.Latitude) + ", " + formatDegrees(l.Longitude)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Reading is a location sample that may be unknown
type Reading = observable.Value[Location]

// Known returns a reading for the given coordinates
func Known(latitude, longitude float64) Reading {
	return observable.Known(New(latitude, longitude))
}

// Unknown returns a reading for a position that cannot be determined
func Unknown() Reading {
	return observable.Unknown[Location]()
}
