package vehicle

import (
	"math/rand"
	"time"
)

// SimulateUpdate perturbs the monitored readings the way a short test
// drive would: the engine warms slightly faster than it cools, fuel
// and brake pads only wear down, and speed drifts in both directions.
// Passing a seeded source makes a run reproducible; a nil rng falls
// back to a time-seeded one.
func (m *Monitor) SimulateUpdate(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.SetEngineTemperature(m.engineTemp + rng.Float64()*5.0 - 2.0)
	m.SetFuelLevel(m.fuelLevel - rng.Float64()*0.5)
	m.SetSpeed(m.speed + rng.Float64()*15.0 - 5.0)
	m.SetBrakeWear(m.brakeWear - rng.Float64()*0.1)
}
