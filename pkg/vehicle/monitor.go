// Package vehicle implements the diagnostics subsystem: engine
// temperature, fuel, speed and brake wear with threshold alerts.
// Sensor readings are clamped into physical range rather than
// rejected, unlike coordinate input on the navigation side.
package vehicle

import (
	"fmt"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
)

const (
	maxEngineTemp          = 105.0 // Celsius
	engineTempWarnBand     = 10.0  // degrees below max that raises a warning
	lowFuelThreshold       = 15.0  // percent
	criticalFuelThreshold  = 5.0   // percent
	maxSpeedLimit          = 120.0 // km/h
	minBrakeThreshold      = 20.0  // percent, 100 = new pads
	criticalBrakeThreshold = 10.0  // percent

	minEngineTemp = -50.0
	maxTempInput  = 200.0

	tankCapacity = 50.0 // liters
)

// Monitor tracks vehicle diagnostics and raises alerts when readings
// cross their thresholds. Each setter clamps its input and re-runs the
// relevant check, so a value that stays in a bad band keeps alerting
// on every update.
//
// Monitor is not safe for concurrent use; the dashboard drives it from
// a single goroutine.
type Monitor struct {
	engineTemp  float64 // Celsius
	fuelLevel   float64 // percent
	consumption float64 // L/100km
	speed       float64 // km/h
	brakeWear   float64 // percent, 100 = new
	notifier    alerts.Notifier
}

// NewMonitor returns a monitor with nominal readings.
func NewMonitor(notifier alerts.Notifier) *Monitor {
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	return &Monitor{
		engineTemp:  85.0,
		fuelLevel:   75.0,
		consumption: 8.5,
		speed:       0.0,
		brakeWear:   85.0,
		notifier:    notifier,
	}
}

// SetEngineTemperature stores a temperature reading clamped into
// [-50, 200] degrees Celsius.
func (m *Monitor) SetEngineTemperature(celsius float64) {
	if celsius < minEngineTemp {
		celsius = minEngineTemp
	}
	if celsius > maxTempInput {
		celsius = maxTempInput
	}
	m.engineTemp = celsius
	m.checkEngineTemperature()
}

// SetFuelLevel stores a fuel percentage clamped into [0, 100].
func (m *Monitor) SetFuelLevel(percent float64) {
	m.fuelLevel = clampPercent(percent)
	m.checkFuelLevel()
}

// SetConsumption stores the fuel consumption rate in L/100km, clamped
// at zero.
func (m *Monitor) SetConsumption(litersPer100Km float64) {
	if litersPer100Km < 0 {
		litersPer100Km = 0
	}
	m.consumption = litersPer100Km
}

// SetSpeed stores the vehicle speed clamped at zero.
func (m *Monitor) SetSpeed(kmh float64) {
	if kmh < 0 {
		kmh = 0
	}
	m.speed = kmh
	m.checkSpeed()
}

// SetBrakeWear stores the brake wear percentage clamped into [0, 100],
// where 100 means new pads.
func (m *Monitor) SetBrakeWear(percent float64) {
	m.brakeWear = clampPercent(percent)
	m.checkBrakes()
}

// EngineTemperature returns the engine temperature in Celsius.
func (m *Monitor) EngineTemperature() float64 { return m.engineTemp }

// FuelLevel returns the fuel level percentage.
func (m *Monitor) FuelLevel() float64 { return m.fuelLevel }

// Consumption returns the fuel consumption rate in L/100km.
func (m *Monitor) Consumption() float64 { return m.consumption }

// Speed returns the vehicle speed in km/h.
func (m *Monitor) Speed() float64 { return m.speed }

// BrakeWear returns the brake wear percentage.
func (m *Monitor) BrakeWear() float64 { return m.brakeWear }

// EstimatedRange returns how far the remaining fuel reaches in
// kilometers at the current consumption rate, or 0 when fuel or
// consumption is zero.
func (m *Monitor) EstimatedRange() float64 {
	if m.consumption <= 0 || m.fuelLevel <= 0 {
		return 0
	}
	fuelLiters := m.fuelLevel / 100.0 * tankCapacity
	return fuelLiters / m.consumption * 100.0
}

// criticalReporter is the slice of the notification center the system
// check consults for pending critical alerts.
type criticalReporter interface {
	HasCritical() bool
}

// SystemCheck re-runs every threshold check and reports an all-clear
// unless the notification sink holds a pending critical alert, from
// this subsystem or any other.
func (m *Monitor) SystemCheck() {
	m.checkEngineTemperature()
	m.checkFuelLevel()
	m.checkSpeed()
	m.checkBrakes()

	if r, ok := m.notifier.(criticalReporter); ok && r.HasCritical() {
		return
	}
	m.notifier.Notify("System check completed - All systems normal", alerts.LevelInfo)
}

func (m *Monitor) checkEngineTemperature() {
	switch {
	case m.engineTemp > maxEngineTemp:
		m.notifier.Notify(
			fmt.Sprintf("Engine overheating! Temperature: %.1f°C (Max: %.1f°C)", m.engineTemp, maxEngineTemp),
			alerts.LevelCritical,
		)
	case m.engineTemp > maxEngineTemp-engineTempWarnBand:
		m.notifier.Notify(
			fmt.Sprintf("Engine temperature elevated: %.1f°C", m.engineTemp),
			alerts.LevelWarning,
		)
	}
}

func (m *Monitor) checkFuelLevel() {
	switch {
	case m.fuelLevel <= criticalFuelThreshold:
		m.notifier.Notify(
			fmt.Sprintf("CRITICAL: Fuel level extremely low! %.1f%% remaining", m.fuelLevel),
			alerts.LevelCritical,
		)
	case m.fuelLevel <= lowFuelThreshold:
		m.notifier.Notify(
			fmt.Sprintf("Low fuel warning: %.1f%% remaining", m.fuelLevel),
			alerts.LevelWarning,
		)
	}
}

func (m *Monitor) checkSpeed() {
	if m.speed > maxSpeedLimit {
		m.notifier.Notify(
			fmt.Sprintf("Speed limit exceeded! Current: %.1f km/h (Limit: %.1f km/h)", m.speed, maxSpeedLimit),
			alerts.LevelWarning,
		)
	}
}

func (m *Monitor) checkBrakes() {
	if m.brakeWear > minBrakeThreshold {
		return
	}
	message := fmt.Sprintf("Brake system requires attention! Wear level: %.1f%%", m.brakeWear)
	if m.brakeWear <= criticalBrakeThreshold {
		m.notifier.Notify(message, alerts.LevelCritical)
	} else {
		m.notifier.Notify(message, alerts.LevelWarning)
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
