package nav

import "github.com/kass/go-vehicle-dash/pkg/alerts"

const (
	// A fix needs at least this many satellites to be usable.
	minSatellites = 4
	// Accuracy readings above this many meters make the fix unusable.
	maxAccuracyMeters = 10.0

	// Receiver state assumed before the first reading arrives.
	defaultSatellites = 8
	defaultAccuracy   = 3.0 // meters
)

// SignalMonitor tracks GPS fix quality and reports availability edges:
// one critical alert when the signal is lost, one info alert when it
// returns, and nothing while the state holds.
type SignalMonitor struct {
	satellites int
	accuracy   float64 // meters
	available  bool
	notifier   alerts.Notifier
}

// NewSignalMonitor returns a monitor that assumes a healthy fix.
func NewSignalMonitor(notifier alerts.Notifier) *SignalMonitor {
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	return &SignalMonitor{
		satellites: defaultSatellites,
		accuracy:   defaultAccuracy,
		available:  true,
		notifier:   notifier,
	}
}

// Update ingests a satellite count and an accuracy reading, both
// clamped at zero, and reports whether signal availability flipped.
func (m *SignalMonitor) Update(satellites int, accuracy float64) bool {
	if satellites < 0 {
		satellites = 0
	}
	if accuracy < 0 {
		accuracy = 0
	}
	m.satellites = satellites
	m.accuracy = accuracy

	available := satellites >= minSatellites && accuracy <= maxAccuracyMeters
	if available == m.available {
		return false
	}
	m.available = available

	if available {
		m.notifier.Notify("GPS signal restored", alerts.LevelInfo)
	} else {
		m.notifier.Notify("GPS signal lost!", alerts.LevelCritical)
	}
	return true
}

// Available reports whether the current fix is usable.
func (m *SignalMonitor) Available() bool { return m.available }

// Satellites returns the last satellite count.
func (m *SignalMonitor) Satellites() int { return m.satellites }

// Accuracy returns the last accuracy reading in meters.
func (m *SignalMonitor) Accuracy() float64 { return m.accuracy }
