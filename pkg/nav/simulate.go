package nav

import (
	"math/rand"
	"time"

	"github.com/kass/go-vehicle-dash/pkg/geo"
)

// SimulateUpdate feeds the navigator one tick of synthetic sensor
// readings: the fix drifts by up to ±0.001 degrees, speed wanders
// between -2 and +5 km/h, heading by ±10 degrees, and signal quality
// stays within plausible receiver bounds (4-12 satellites, 1-8 m).
// Passing a seeded source makes a run reproducible; a nil rng gets a
// time-seeded one.
func (n *Navigator) SimulateUpdate(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	loc := n.Location()
	n.UpdateLocation(geo.Coordinate{
		Lat: loc.Lat + (rng.Float64()-0.5)*0.002,
		Lon: loc.Lon + (rng.Float64()-0.5)*0.002,
		Alt: loc.Alt,
	})
	n.UpdateSpeed(n.Speed() + rng.Float64()*7 - 2)
	n.UpdateHeading(n.Heading() + rng.Float64()*20 - 10)
	n.UpdateGPSSignal(4+rng.Intn(9), 1.0+rng.Float64()*7.0)
}
