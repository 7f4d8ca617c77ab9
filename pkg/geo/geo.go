// Package geo provides the spherical geometry primitives for the
// navigation subsystem: coordinate validation, great-circle distance,
// forward azimuth and compass angle normalization.
package geo

import (
	"fmt"
	"math"
)

const (
	earthRadius = 6371.0 // km

	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// Coordinate is a WGS84 position. Altitude is in meters and carries no
// validity constraint.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt,omitempty"`
}

// Valid reports whether latitude and longitude are within range.
func (c Coordinate) Valid() bool {
	return c.Lat >= minLatitude && c.Lat <= maxLatitude &&
		c.Lon >= minLongitude && c.Lon <= maxLongitude
}

// String formats the coordinate for display, appending altitude only
// when one is set.
func (c Coordinate) String() string {
	s := fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon)
	if c.Alt != 0 {
		s += fmt.Sprintf(" (alt: %.1fm)", c.Alt)
	}
	return s
}

// Distance returns the haversine great-circle distance between a and b
// in kilometers, or -1 if either coordinate is invalid.
func Distance(a, b Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return -1
	}

	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadius * c
}

// InitialBearing returns the forward azimuth from one coordinate to
// another in degrees [0, 360), or 0 if either coordinate is invalid.
func InitialBearing(from, to Coordinate) float64 {
	if !from.Valid() || !to.Valid() {
		return 0
	}

	lat1 := from.Lat * math.Pi / 180.0
	lat2 := to.Lat * math.Pi / 180.0
	dLon := (to.Lon - from.Lon) * math.Pi / 180.0

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeAngle(math.Atan2(y, x) * 180.0 / math.Pi)
}

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
