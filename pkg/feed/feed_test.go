package feed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/geo"
	"github.com/kass/go-vehicle-dash/pkg/nav"
)

var _ Dashboard = (*nav.Navigator)(nil)

type signalUpdate struct {
	satellites int
	accuracy   float64
}

type dashRecorder struct {
	locations []geo.Coordinate
	speeds    []float64
	headings  []float64
	signals   []signalUpdate
}

func (d *dashRecorder) UpdateLocation(c geo.Coordinate) { d.locations = append(d.locations, c) }
func (d *dashRecorder) UpdateSpeed(kmh float64)         { d.speeds = append(d.speeds, kmh) }
func (d *dashRecorder) UpdateHeading(deg float64)       { d.headings = append(d.headings, deg) }
func (d *dashRecorder) UpdateGPSSignal(satellites int, accuracy float64) {
	d.signals = append(d.signals, signalUpdate{satellites: satellites, accuracy: accuracy})
}

// sentence appends the NMEA checksum to a bare sentence body.
func sentence(body string) string {
	var sum byte
	for i := 1; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("%s*%02X", body, sum)
}

func run(t *testing.T, f *Feed, lines ...string) {
	t.Helper()
	err := f.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
}

func TestFeedRMCDrivesNavigation(t *testing.T) {
	dash := &dashRecorder{}
	f := NewFeed(dash)

	// 37°46.494'N 122°25.164'W at 12 knots heading due east.
	run(t, f, sentence("$GPRMC,123519,A,3746.4940,N,12225.1640,W,12.0,90.0,230394,,,A"))

	require.Len(t, dash.locations, 1)
	assert.InDelta(t, 37.7749, dash.locations[0].Lat, 0.0001)
	assert.InDelta(t, -122.4194, dash.locations[0].Lon, 0.0001)

	require.Len(t, dash.speeds, 1)
	assert.InDelta(t, 22.224, dash.speeds[0], 0.001, "knots convert to km/h")

	require.Len(t, dash.headings, 1)
	assert.Equal(t, 90.0, dash.headings[0])

	assert.Equal(t, Stats{Sentences: 1, Fixes: 1}, f.Stats())
}

func TestFeedIgnoresVoidRMC(t *testing.T) {
	dash := &dashRecorder{}
	f := NewFeed(dash)

	run(t, f, sentence("$GPRMC,123519,V,,,,,,,230394,,,N"))

	assert.Empty(t, dash.locations)
	assert.Empty(t, dash.speeds)
	assert.Equal(t, Stats{Sentences: 1}, f.Stats())
}

func TestFeedGGACarriesAltitudeAndSatellites(t *testing.T) {
	dash := &dashRecorder{}
	f := NewFeed(dash)

	run(t, f,
		sentence("$GPGGA,123519,3746.4940,N,12225.1640,W,1,08,1.2,40.0,M,0.0,M,,"),
		sentence("$GPRMC,123520,A,3746.4940,N,12225.1640,W,12.0,90.0,230394,,,A"),
	)

	require.Len(t, dash.signals, 1)
	assert.Equal(t, signalUpdate{satellites: 8, accuracy: 3.0}, dash.signals[0])

	require.Len(t, dash.locations, 2)
	assert.Equal(t, 40.0, dash.locations[0].Alt)
	assert.Equal(t, 40.0, dash.locations[1].Alt, "RMC fixes inherit the GGA altitude")

	assert.Equal(t, Stats{Sentences: 2, Fixes: 2}, f.Stats())
}

func TestFeedGSAScalesHDOPIntoAccuracy(t *testing.T) {
	dash := &dashRecorder{}
	f := NewFeed(dash)

	run(t, f,
		sentence("$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,2.0,2.1"),
		sentence("$GPGGA,123519,3746.4940,N,12225.1640,W,1,08,1.2,40.0,M,0.0,M,,"),
		sentence("$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.2,2.1"),
	)

	// The first GSA arrives before any satellite count and is held.
	require.Len(t, dash.signals, 2)
	assert.Equal(t, signalUpdate{satellites: 8, accuracy: 10.0}, dash.signals[0],
		"GGA pushes the earlier GSA accuracy")
	assert.Equal(t, signalUpdate{satellites: 8, accuracy: 6.0}, dash.signals[1])
}

func TestFeedNoFixGGAReportsOutage(t *testing.T) {
	dash := &dashRecorder{}
	f := NewFeed(dash)

	run(t, f, sentence("$GPGGA,011735,,,,,0,00,,,,,,,"))

	require.Len(t, dash.signals, 1)
	assert.Equal(t, signalUpdate{satellites: 0, accuracy: 3.0}, dash.signals[0],
		"an outage reports zero satellites at the nominal accuracy")
	assert.Empty(t, dash.locations, "a no-fix sentence carries no position")
	assert.Equal(t, Stats{Sentences: 1}, f.Stats())
}

func TestFeedOutageMarksNavigatorLost(t *testing.T) {
	rec := alerts.NewRecorder()
	n := nav.NewNavigator(rec)
	n.UpdateLocation(geo.Coordinate{Lat: 37.7749, Lon: -122.4194})
	require.True(t, n.SetDestination(geo.Coordinate{Lat: 37.8267, Lon: -122.4233}, "Alcatraz Island"))
	require.True(t, n.StartNavigation())

	f := NewFeed(n)
	run(t, f, sentence("$GPGGA,011735,,,,,0,00,,,,,,,"))

	assert.Equal(t, nav.StatusGPSLost, n.Status())
	assert.Contains(t, rec.Messages(), "GPS signal lost!")
}

func TestFeedSkipsGarbage(t *testing.T) {
	dash := &dashRecorder{}
	f := NewFeed(dash)

	run(t, f,
		"",
		"not nmea at all",
		"$GPRMC,totally,broken*00",
		"$GPGGA,011735,,,,,0,00,,,,,,,*FF",
		sentence("$GPRMC,123519,A,3746.4940,N,12225.1640,W,12.0,90.0,230394,,,A"),
	)

	assert.Equal(t, Stats{Sentences: 1, Skipped: 2, Fixes: 1}, f.Stats(),
		"only lines that look like sentences count as skipped")
	assert.Empty(t, dash.signals, "a no-fix frame with a bad checksum is not trusted")
	assert.Len(t, dash.locations, 1)
}

func TestFeedDrivesNavigatorToArrival(t *testing.T) {
	rec := alerts.NewRecorder()
	n := nav.NewNavigator(rec)
	n.UpdateLocation(geo.Coordinate{Lat: 37.7749, Lon: -122.4194, Alt: 50})
	n.UpdateSpeed(45)
	require.True(t, n.SetDestination(geo.Coordinate{Lat: 37.8267, Lon: -122.4233, Alt: 40}, "Alcatraz Island"))
	require.True(t, n.StartNavigation())

	f := NewFeed(n)
	run(t, f,
		// Mid-bay fix, then one on the destination.
		sentence("$GPGGA,120000,3748.0000,N,12225.2000,W,1,09,1.0,40.0,M,0.0,M,,"),
		sentence("$GPRMC,120001,A,3749.6020,N,12225.3980,W,8.0,270.0,230394,,,A"),
	)

	assert.Equal(t, nav.StatusArrived, n.Status())
	assert.Contains(t, rec.Messages(), "Destination reached!")
	assert.Equal(t, 40.0, n.Location().Alt)
	assert.Equal(t, Stats{Sentences: 2, Fixes: 2}, f.Stats())
}

func TestFeedStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFeed(&dashRecorder{})
	err := f.Run(ctx, strings.NewReader(sentence("$GPRMC,123519,A,3746.4940,N,12225.1640,W,12.0,90.0,230394,,,A")))

	assert.ErrorIs(t, err, context.Canceled)
}
