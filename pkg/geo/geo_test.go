package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	sanFrancisco = Coordinate{Lat: 37.7749, Lon: -122.4194}
	losAngeles   = Coordinate{Lat: 34.0522, Lon: -118.2437}
	oakland      = Coordinate{Lat: 37.8044, Lon: -122.2712}
)

func TestCoordinateValid(t *testing.T) {
	testCases := []struct {
		name  string
		coord Coordinate
		valid bool
	}{
		{"San Francisco", sanFrancisco, true},
		{"Null Island", Coordinate{}, true},
		{"North Pole", Coordinate{Lat: 90, Lon: 0}, true},
		{"Date line", Coordinate{Lat: 0, Lon: -180}, true},
		{"Latitude too high", Coordinate{Lat: 91, Lon: 0}, false},
		{"Latitude too low", Coordinate{Lat: -90.0001, Lon: 0}, false},
		{"Longitude too high", Coordinate{Lat: 0, Lon: 180.5}, false},
		{"Longitude too low", Coordinate{Lat: 0, Lon: -181}, false},
		{"Extreme altitude still valid", Coordinate{Lat: 45, Lon: 45, Alt: -12000}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.coord.Valid())
		})
	}
}

func TestDistance(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Coordinate
		expected float64
		delta    float64
	}{
		{"Same point", sanFrancisco, sanFrancisco, 0, 0.001},
		{"SF to Oakland", sanFrancisco, oakland, 13.0, 1.0},
		{"SF to LA", sanFrancisco, losAngeles, 559.0, 5.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dist := Distance(tc.a, tc.b)
			assert.InDelta(t, tc.expected, dist, tc.delta)
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	assert.Equal(t, Distance(sanFrancisco, losAngeles), Distance(losAngeles, sanFrancisco))
}

func TestDistanceInvalidCoordinate(t *testing.T) {
	bad := Coordinate{Lat: 91, Lon: 0}
	assert.Equal(t, -1.0, Distance(bad, losAngeles))
	assert.Equal(t, -1.0, Distance(sanFrancisco, bad))
}

func TestInitialBearing(t *testing.T) {
	testCases := []struct {
		name     string
		from, to Coordinate
		expected float64
		delta    float64
	}{
		{"Due north", Coordinate{Lat: 0, Lon: 0}, Coordinate{Lat: 1, Lon: 0}, 0, 0.001},
		{"Due east", Coordinate{Lat: 0, Lon: 0}, Coordinate{Lat: 0, Lon: 1}, 90, 0.001},
		{"Due south", Coordinate{Lat: 1, Lon: 0}, Coordinate{Lat: 0, Lon: 0}, 180, 0.001},
		{"Due west", Coordinate{Lat: 0, Lon: 1}, Coordinate{Lat: 0, Lon: 0}, 270, 0.001},
		{"SF to LA", sanFrancisco, losAngeles, 136.5, 1.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, InitialBearing(tc.from, tc.to), tc.delta)
		})
	}
}

func TestInitialBearingInvalidCoordinate(t *testing.T) {
	bad := Coordinate{Lat: 0, Lon: 200}
	assert.Equal(t, 0.0, InitialBearing(bad, losAngeles))
	assert.Equal(t, 0.0, InitialBearing(sanFrancisco, bad))
}

func TestNormalizeAngle(t *testing.T) {
	testCases := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"Already normalized", 90, 90},
		{"Zero", 0, 0},
		{"One wrap above", 450, 90},
		{"Negative", -90, 270},
		{"Full turn", 360, 0},
		{"Two turns", 720, 0},
		{"Two turns negative", -720, 0},
		{"Just below limit", 359.9, 359.9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, NormalizeAngle(tc.in), 1e-9)
		})
	}
}

func TestCoordinateString(t *testing.T) {
	assert.Equal(t, "37.774900, -122.419400", sanFrancisco.String())

	withAlt := Coordinate{Lat: 37.8267, Lon: -122.4233, Alt: 40}
	assert.Equal(t, "37.826700, -122.423300 (alt: 40.0m)", withAlt.String())
}
