// Package nav implements the navigation subsystem of the dashboard:
// the GPS fix and signal quality state, the destination and waypoint
// route, and the status state machine that ties them together.
//
// The package reports operational outcomes through an alerts.Notifier
// rather than errors; invalid coordinates are rejected wholesale while
// out-of-range scalar readings (speed, heading, satellites, accuracy)
// are clamped or normalized.
package nav

import (
	"fmt"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/geo"
)

// Arriving within this distance of the destination ends navigation.
const arrivalThresholdKm = 0.1

// Navigator is the navigation facade. It owns the current fix, the
// destination, the route and the status state machine.
//
// Navigator is not safe for concurrent use; the dashboard drives it
// from a single goroutine.
type Navigator struct {
	location        geo.Coordinate
	destination     geo.Coordinate
	destinationName string
	destinationSet  bool
	status          Status
	speed           float64 // km/h
	heading         float64 // degrees, [0, 360)
	route           *Route
	signal          *SignalMonitor
	notifier        alerts.Notifier
}

// NewNavigator returns an idle navigator that assumes a healthy GPS
// fix until readings arrive. A nil notifier falls back to a no-op
// sink so pure-math callers need no alert plumbing.
func NewNavigator(notifier alerts.Notifier) *Navigator {
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	return &Navigator{
		status:   StatusIdle,
		route:    NewRoute(notifier),
		signal:   NewSignalMonitor(notifier),
		notifier: notifier,
	}
}

// UpdateLocation ingests a GPS fix. An invalid coordinate is rejected
// and reported without touching the current fix or status. A valid fix
// within the arrival threshold of the destination completes an active
// navigation.
func (n *Navigator) UpdateLocation(c geo.Coordinate) {
	if !c.Valid() {
		n.notifier.Notify("Invalid GPS coordinates received", alerts.LevelWarning)
		return
	}
	n.location = c

	if n.status != StatusNavigating {
		return
	}
	if dist := geo.Distance(n.location, n.destination); dist >= 0 && dist < arrivalThresholdKm {
		n.status = StatusArrived
		n.notifier.Notify("Destination reached!", alerts.LevelInfo)
	}
}

// SetDestination stores a destination and resets the trip to idle,
// whatever state the previous trip was in. An invalid coordinate is
// rejected and reported without changing the current destination.
func (n *Navigator) SetDestination(dest geo.Coordinate, name string) bool {
	if !dest.Valid() {
		n.notifier.Notify("Invalid destination coordinates", alerts.LevelWarning)
		return false
	}
	n.destination = dest
	n.destinationName = name
	n.destinationSet = true
	n.status = StatusIdle

	n.notifier.Notify(fmt.Sprintf("Destination set: %s (%s)", name, dest), alerts.LevelInfo)
	return true
}

// StartNavigation begins guidance toward the destination. It refuses
// when no destination is set or the GPS signal is unavailable.
func (n *Navigator) StartNavigation() bool {
	if !n.destinationSet {
		n.notifier.Notify("No destination set for navigation", alerts.LevelWarning)
		return false
	}
	if !n.signal.Available() {
		n.notifier.Notify("GPS signal unavailable - cannot start navigation", alerts.LevelCritical)
		return false
	}

	n.status = StatusNavigating
	dist := geo.Distance(n.location, n.destination)
	n.notifier.Notify(
		fmt.Sprintf("Navigation started - Distance: %.1f km, ETA: %.0f min", dist, n.etaMinutes(dist)),
		alerts.LevelInfo,
	)
	return true
}

// StopNavigation ends guidance from any state, clears the route and
// returns to idle.
func (n *Navigator) StopNavigation() {
	n.status = StatusIdle
	n.route.Clear()
	n.notifier.Notify("Navigation stopped", alerts.LevelInfo)
}

// UpdateGPSSignal ingests fix-quality readings and reconciles the
// status with signal availability: an active navigation suspends on
// loss and a suspended one resumes on recovery. Other states are
// unaffected.
func (n *Navigator) UpdateGPSSignal(satellites int, accuracy float64) {
	if !n.signal.Update(satellites, accuracy) {
		return
	}
	switch {
	case !n.signal.Available() && n.status == StatusNavigating:
		n.status = StatusGPSLost
	case n.signal.Available() && n.status == StatusGPSLost:
		n.status = StatusNavigating
	}
}

// UpdateSpeed stores the vehicle speed, clamping negative readings to
// zero.
func (n *Navigator) UpdateSpeed(kmh float64) {
	if kmh < 0 {
		kmh = 0
	}
	n.speed = kmh
}

// UpdateHeading stores the vehicle heading normalized into [0, 360).
func (n *Navigator) UpdateHeading(deg float64) {
	n.heading = geo.NormalizeAngle(deg)
}

// AddWaypoint appends a waypoint to the route.
func (n *Navigator) AddWaypoint(w Waypoint) bool {
	return n.route.Add(w)
}

// ClearRoute removes every waypoint without notifying.
func (n *Navigator) ClearRoute() {
	n.route.Clear()
}

// CalculateDistance returns the great-circle distance between two
// coordinates in kilometers, or -1 when either is invalid.
func (n *Navigator) CalculateDistance(from, to geo.Coordinate) float64 {
	return geo.Distance(from, to)
}

// DistanceToDestination returns the remaining distance in kilometers,
// or -1 when no destination is set.
func (n *Navigator) DistanceToDestination() float64 {
	if !n.destinationSet {
		return -1
	}
	return geo.Distance(n.location, n.destination)
}

// ETA returns the estimated minutes to the destination at the current
// speed, or -1 when it cannot be computed.
func (n *Navigator) ETA() float64 {
	return n.etaMinutes(n.DistanceToDestination())
}

func (n *Navigator) etaMinutes(distanceKm float64) float64 {
	if distanceKm < 0 || n.speed <= 0 {
		return -1
	}
	return distanceKm / n.speed * 60
}

// Location returns the current GPS fix.
func (n *Navigator) Location() geo.Coordinate { return n.location }

// Destination returns the destination coordinate and whether one has
// been set.
func (n *Navigator) Destination() (geo.Coordinate, bool) {
	return n.destination, n.destinationSet
}

// DestinationName returns the display name of the destination.
func (n *Navigator) DestinationName() string { return n.destinationName }

// Status returns the current navigation status.
func (n *Navigator) Status() Status { return n.status }

// Speed returns the vehicle speed in km/h.
func (n *Navigator) Speed() float64 { return n.speed }

// Heading returns the vehicle heading in degrees [0, 360).
func (n *Navigator) Heading() float64 { return n.heading }

// SignalAvailable reports whether the GPS fix is usable.
func (n *Navigator) SignalAvailable() bool { return n.signal.Available() }

// Satellites returns the last satellite count.
func (n *Navigator) Satellites() int { return n.signal.Satellites() }

// Accuracy returns the last GPS accuracy reading in meters.
func (n *Navigator) Accuracy() float64 { return n.signal.Accuracy() }

// Route returns the waypoint route.
func (n *Navigator) Route() *Route { return n.route }
