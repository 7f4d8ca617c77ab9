// Package feed adapts a stream of NMEA 0183 sentences into dashboard
// updates: RMC drives position, speed and heading, GGA carries
// altitude and the satellite count, GSA carries the dilution of
// precision the accuracy estimate derives from.
package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kass/go-vehicle-dash/pkg/geo"
)

const (
	knotsToKmh = 1.852

	// hdopRangeErrorMeters converts HDOP into a horizontal accuracy
	// estimate, assuming a nominal 5 m user range error.
	hdopRangeErrorMeters = 5.0
)

// Dashboard is the slice of the navigation facade the feed drives.
// *nav.Navigator satisfies it.
type Dashboard interface {
	UpdateLocation(c geo.Coordinate)
	UpdateSpeed(kmh float64)
	UpdateHeading(deg float64)
	UpdateGPSSignal(satellites int, accuracy float64)
}

// Stats counts what the feed has processed so far.
type Stats struct {
	Sentences int // parsed NMEA sentences
	Skipped   int // lines that failed to parse
	Fixes     int // position updates pushed to the dashboard
}

// Feed parses NMEA sentences from a reader and forwards them to the
// dashboard. Unparsable lines are counted and skipped, never fatal.
//
// Feed is not safe for concurrent use; read Stats only after Run
// returns.
type Feed struct {
	dash   Dashboard
	logger zerolog.Logger

	altitude   float64 // last GGA altitude, folded into RMC fixes
	satellites int     // last GGA satellite count, -1 until seen
	accuracy   float64 // meters, derived from GSA HDOP

	stats Stats
}

// NewFeed returns a feed that forwards fixes to dash.
func NewFeed(dash Dashboard) *Feed {
	return &Feed{
		dash:       dash,
		logger:     log.With().Str("module", "feed").Logger(),
		satellites: -1,
		accuracy:   3.0, // nominal until the first DOP report
	}
}

// Run consumes r line by line until EOF, a read error, or ctx is
// canceled. Cancellation is observed at line boundaries, so a blocked
// read (a quiet serial port) holds Run until the underlying reader is
// closed.
func (f *Feed) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "$") {
			continue
		}
		f.handle(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read nmea stream: %w", err)
	}
	return nil
}

// Stats returns the processing counters.
func (f *Feed) Stats() Stats { return f.stats }

func (f *Feed) handle(line string) {
	if f.handleNoFix(line) {
		f.stats.Sentences++
		return
	}

	sentence, err := nmea.Parse(line)
	if err != nil {
		f.stats.Skipped++
		f.logger.Debug().Err(err).Str("line", line).Msg("skipping unparsable sentence")
		return
	}
	f.stats.Sentences++

	switch sentence.DataType() {
	case nmea.TypeRMC:
		f.handleRMC(sentence.(nmea.RMC))
	case nmea.TypeGGA:
		f.handleGGA(sentence.(nmea.GGA))
	case nmea.TypeGSA:
		f.handleGSA(sentence.(nmea.GSA))
	}
}

// handleNoFix intercepts the frames a receiver emits before it holds a
// position: an RMC marked void and a GGA with fix quality 0. Their
// position fields are empty, which field-for-field sentence parsers
// reject, and the satellite count is the only datum they carry.
func (f *Feed) handleNoFix(line string) bool {
	star := strings.LastIndexByte(line, '*')
	if star < 1 || star+3 != len(line) {
		return false
	}
	sum, err := strconv.ParseUint(line[star+1:], 16, 8)
	if err != nil || byte(sum) != checksum(line[1:star]) {
		return false
	}

	fields := strings.Split(line[1:star], ",")
	switch {
	case len(fields) > 2 && strings.HasSuffix(fields[0], "RMC") && fields[2] == "V":
		f.logger.Debug().Str("line", line).Msg("void rmc")
		return true
	case len(fields) > 7 && strings.HasSuffix(fields[0], "GGA") && fields[6] == "0":
		sats, err := strconv.Atoi(fields[7])
		if err != nil {
			sats = 0
		}
		f.satellites = sats
		f.dash.UpdateGPSSignal(f.satellites, f.accuracy)
		return true
	}
	return false
}

// checksum XORs the sentence payload between the leading $ and the *.
func checksum(payload string) byte {
	var sum byte
	for i := 0; i < len(payload); i++ {
		sum ^= payload[i]
	}
	return sum
}

func (f *Feed) handleRMC(m nmea.RMC) {
	if m.Validity != "A" {
		// V marks a void fix; the next GGA reports the outage.
		return
	}

	f.dash.UpdateLocation(geo.Coordinate{Lat: m.Latitude, Lon: m.Longitude, Alt: f.altitude})
	f.dash.UpdateSpeed(m.Speed * knotsToKmh)
	f.dash.UpdateHeading(m.Course)
	f.stats.Fixes++

	f.logger.Debug().
		Float64("lat", m.Latitude).
		Float64("lon", m.Longitude).
		Float64("speed_kn", m.Speed).
		Float64("course", m.Course).
		Msg("rmc fix")
}

func (f *Feed) handleGGA(m nmea.GGA) {
	f.satellites = int(m.NumSatellites)
	f.dash.UpdateGPSSignal(f.satellites, f.accuracy)

	if m.FixQuality == "0" {
		return
	}

	f.altitude = m.Altitude
	f.dash.UpdateLocation(geo.Coordinate{Lat: m.Latitude, Lon: m.Longitude, Alt: m.Altitude})
	f.stats.Fixes++
}

func (f *Feed) handleGSA(m nmea.GSA) {
	f.accuracy = m.HDOP * hdopRangeErrorMeters
	if f.satellites < 0 {
		// Hold signal updates until the first GGA reports a count.
		return
	}
	f.dash.UpdateGPSSignal(f.satellites, f.accuracy)
}
