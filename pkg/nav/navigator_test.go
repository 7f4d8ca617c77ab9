package nav

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/geo"
)

var (
	downtownSF = geo.Coordinate{Lat: 37.7749, Lon: -122.4194, Alt: 50}
	alcatraz   = geo.Coordinate{Lat: 37.8267, Lon: -122.4233, Alt: 40}
)

func newTestNavigator(t *testing.T) (*Navigator, *alerts.Recorder) {
	t.Helper()
	rec := alerts.NewRecorder()
	return NewNavigator(rec), rec
}

// startNavigation puts the navigator into an active trip toward
// Alcatraz from downtown San Francisco.
func startNavigation(t *testing.T, n *Navigator) {
	t.Helper()
	n.UpdateLocation(downtownSF)
	n.UpdateSpeed(45)
	require.True(t, n.SetDestination(alcatraz, "Alcatraz Island"))
	require.True(t, n.StartNavigation())
	require.Equal(t, StatusNavigating, n.Status())
}

func TestNavigatorDefaults(t *testing.T) {
	n, _ := newTestNavigator(t)

	assert.Equal(t, StatusIdle, n.Status())
	assert.Equal(t, geo.Coordinate{}, n.Location())
	assert.Equal(t, 0.0, n.Speed())
	assert.Equal(t, 0.0, n.Heading())
	assert.True(t, n.SignalAvailable())
	assert.Equal(t, 8, n.Satellites())
	assert.Equal(t, 3.0, n.Accuracy())

	_, set := n.Destination()
	assert.False(t, set)
	assert.Equal(t, 0, n.Route().Len())
}

func TestUpdateLocationRejectsInvalid(t *testing.T) {
	n, rec := newTestNavigator(t)
	n.UpdateLocation(downtownSF)

	n.UpdateLocation(geo.Coordinate{Lat: 91.0, Lon: -122.4194})

	assert.Equal(t, downtownSF, n.Location(), "fix unchanged after invalid update")
	assert.Equal(t, StatusIdle, n.Status())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Invalid GPS coordinates received", last.Message)
	assert.Equal(t, alerts.LevelWarning, last.Level)
}

func TestSetDestination(t *testing.T) {
	n, rec := newTestNavigator(t)

	assert.True(t, n.SetDestination(alcatraz, "Alcatraz Island"))

	dest, set := n.Destination()
	require.True(t, set)
	assert.Equal(t, alcatraz, dest)
	assert.Equal(t, "Alcatraz Island", n.DestinationName())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Destination set: Alcatraz Island (37.826700, -122.423300 (alt: 40.0m))", last.Message)
	assert.Equal(t, alerts.LevelInfo, last.Level)
}

func TestSetDestinationRejectsInvalid(t *testing.T) {
	n, rec := newTestNavigator(t)

	assert.False(t, n.SetDestination(geo.Coordinate{Lat: 0, Lon: -200}, "Nowhere"))

	_, set := n.Destination()
	assert.False(t, set)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Invalid destination coordinates", last.Message)
	assert.Equal(t, alerts.LevelWarning, last.Level)
}

func TestSetDestinationResetsTripState(t *testing.T) {
	n, _ := newTestNavigator(t)
	startNavigation(t, n)

	// A new destination during an active trip returns to idle.
	require.True(t, n.SetDestination(geo.Coordinate{Lat: 37.8044, Lon: -122.2712}, "Oakland"))
	assert.Equal(t, StatusIdle, n.Status())
}

func TestStartNavigationWithoutDestination(t *testing.T) {
	n, rec := newTestNavigator(t)

	assert.False(t, n.StartNavigation())
	assert.Equal(t, StatusIdle, n.Status())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "No destination set for navigation", last.Message)
	assert.Equal(t, alerts.LevelWarning, last.Level)
}

func TestStartNavigationWithoutSignal(t *testing.T) {
	n, rec := newTestNavigator(t)
	n.UpdateLocation(downtownSF)
	require.True(t, n.SetDestination(alcatraz, "Alcatraz Island"))

	n.UpdateGPSSignal(2, 20.0)
	assert.False(t, n.StartNavigation())
	assert.Equal(t, StatusIdle, n.Status())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "GPS signal unavailable - cannot start navigation", last.Message)
	assert.Equal(t, alerts.LevelCritical, last.Level)
}

func TestStartNavigation(t *testing.T) {
	n, rec := newTestNavigator(t)
	startNavigation(t, n)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Contains(t, last.Message, "Navigation started - Distance: ")
	assert.Contains(t, last.Message, "km, ETA: ")
	assert.Equal(t, alerts.LevelInfo, last.Level)
}

func TestArrival(t *testing.T) {
	n, rec := newTestNavigator(t)
	startNavigation(t, n)

	// Pull up a few meters short of the island.
	n.UpdateLocation(geo.Coordinate{Lat: 37.8266, Lon: -122.4232, Alt: 40})

	assert.Equal(t, StatusArrived, n.Status())

	arrived := 0
	for _, msg := range rec.Messages() {
		if msg == "Destination reached!" {
			arrived++
		}
	}
	assert.Equal(t, 1, arrived)

	// Further fixes near the destination do not re-announce arrival.
	n.UpdateLocation(alcatraz)
	arrived = 0
	for _, msg := range rec.Messages() {
		if msg == "Destination reached!" {
			arrived++
		}
	}
	assert.Equal(t, 1, arrived)
	assert.Equal(t, StatusArrived, n.Status())
}

func TestNoArrivalOutsideThreshold(t *testing.T) {
	n, _ := newTestNavigator(t)
	startNavigation(t, n)

	// Fisherman's Wharf is ~2.4 km from Alcatraz.
	n.UpdateLocation(geo.Coordinate{Lat: 37.8049, Lon: -122.4194})
	assert.Equal(t, StatusNavigating, n.Status())
}

func TestSignalLossSuspendsNavigation(t *testing.T) {
	n, rec := newTestNavigator(t)
	startNavigation(t, n)

	n.UpdateGPSSignal(3, 12.0)
	assert.Equal(t, StatusGPSLost, n.Status())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "GPS signal lost!", last.Message)
	assert.Equal(t, alerts.LevelCritical, last.Level)

	// Recovery resumes the trip.
	n.UpdateGPSSignal(8, 3.0)
	assert.Equal(t, StatusNavigating, n.Status())

	last, ok = rec.Last()
	require.True(t, ok)
	assert.Equal(t, "GPS signal restored", last.Message)
}

func TestSignalLossWhileIdle(t *testing.T) {
	n, rec := newTestNavigator(t)

	n.UpdateGPSSignal(0, 99.0)
	assert.Equal(t, StatusIdle, n.Status(), "loss outside navigation leaves status alone")

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "GPS signal lost!", last.Message)

	n.UpdateGPSSignal(8, 3.0)
	assert.Equal(t, StatusIdle, n.Status())
}

func TestStopNavigation(t *testing.T) {
	n, rec := newTestNavigator(t)
	startNavigation(t, n)
	require.True(t, n.AddWaypoint(goldenGatePark))

	n.StopNavigation()

	assert.Equal(t, StatusIdle, n.Status())
	assert.Equal(t, 0, n.Route().Len())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Navigation stopped", last.Message)
	assert.Equal(t, alerts.LevelInfo, last.Level)
}

func TestUpdateSpeedClamps(t *testing.T) {
	n, _ := newTestNavigator(t)

	n.UpdateSpeed(-10)
	assert.Equal(t, 0.0, n.Speed())

	n.UpdateSpeed(72.5)
	assert.Equal(t, 72.5, n.Speed())
}

func TestUpdateHeadingNormalizes(t *testing.T) {
	n, _ := newTestNavigator(t)

	n.UpdateHeading(450)
	assert.InDelta(t, 90.0, n.Heading(), 1e-9)

	n.UpdateHeading(-90)
	assert.InDelta(t, 270.0, n.Heading(), 1e-9)
}

func TestDistanceAndETA(t *testing.T) {
	n, _ := newTestNavigator(t)

	assert.Equal(t, -1.0, n.DistanceToDestination())
	assert.Equal(t, -1.0, n.ETA())

	n.UpdateLocation(downtownSF)
	require.True(t, n.SetDestination(alcatraz, "Alcatraz Island"))

	dist := n.DistanceToDestination()
	assert.InDelta(t, 5.8, dist, 0.5)

	// Speed zero means no ETA.
	assert.Equal(t, -1.0, n.ETA())

	n.UpdateSpeed(dist) // cover the distance in one hour
	assert.InDelta(t, 60.0, n.ETA(), 1e-9)
}

func TestSimulateUpdateReproducible(t *testing.T) {
	n1, _ := newTestNavigator(t)
	n2, _ := newTestNavigator(t)
	for _, n := range []*Navigator{n1, n2} {
		n.UpdateLocation(downtownSF)
		n.UpdateSpeed(45)
		n.UpdateHeading(90)
	}

	n1.SimulateUpdate(rand.New(rand.NewSource(42)))
	n2.SimulateUpdate(rand.New(rand.NewSource(42)))

	assert.Equal(t, n1.Location(), n2.Location())
	assert.Equal(t, n1.Speed(), n2.Speed())
	assert.Equal(t, n1.Heading(), n2.Heading())
	assert.Equal(t, n1.Satellites(), n2.Satellites())
	assert.Equal(t, n1.Accuracy(), n2.Accuracy())
}

func TestSimulateUpdateStaysInBounds(t *testing.T) {
	n, _ := newTestNavigator(t)
	n.UpdateLocation(downtownSF)
	n.UpdateSpeed(45)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n.SimulateUpdate(rng)

		assert.True(t, n.Location().Valid())
		assert.GreaterOrEqual(t, n.Speed(), 0.0)
		assert.GreaterOrEqual(t, n.Heading(), 0.0)
		assert.Less(t, n.Heading(), 360.0)
		assert.GreaterOrEqual(t, n.Satellites(), 4)
		assert.LessOrEqual(t, n.Satellites(), 12)
		assert.GreaterOrEqual(t, n.Accuracy(), 1.0)
		assert.LessOrEqual(t, n.Accuracy(), 8.0)
	}
}
