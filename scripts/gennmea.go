// Generates an NMEA 0183 replay file for the feed command: a drive
// from downtown San Francisco toward Alcatraz at one fix per second,
// with a short mid-route signal outage.
//
// Usage: go run scripts/gennmea.go -o data/drive.nmea
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kass/go-vehicle-dash/pkg/geo"
)

func main() {
	var (
		outputFile = flag.String("o", "data/drive.nmea", "Output file path")
		ticks      = flag.Int("n", 60, "Number of one-second fixes to generate")
		outageAt   = flag.Int("outage-at", 25, "Tick where the signal outage starts (negative disables)")
		outageLen  = flag.Int("outage-len", 5, "Outage length in ticks")
	)
	flag.Parse()

	start := geo.Coordinate{Lat: 37.7749, Lon: -122.4194, Alt: 50}
	dest := geo.Coordinate{Lat: 37.8267, Lon: -122.4233, Alt: 40}

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	out, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	log.Printf("Generating %d fixes from %s to %s\n", *ticks, start, dest)

	const speedKnots = 24.3 // ~45 km/h
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sentences := 0

	for i := 0; i < *ticks; i++ {
		frac := 0.0
		if *ticks > 1 {
			frac = float64(i) / float64(*ticks-1)
		}
		fix := geo.Coordinate{
			Lat: start.Lat + (dest.Lat-start.Lat)*frac,
			Lon: start.Lon + (dest.Lon-start.Lon)*frac,
			Alt: start.Alt + (dest.Alt-start.Alt)*frac,
		}
		course := geo.InitialBearing(fix, dest)

		if *outageAt >= 0 && i >= *outageAt && i < *outageAt+*outageLen {
			// Receiver loses the constellation: void RMC, no-fix GGA.
			fmt.Fprint(out, formatNMEA(fmt.Sprintf("$GPRMC,%s,V,,,,,,,,%s,,,N",
				clock.Format("150405"), clock.Format("020106"))))
			fmt.Fprint(out, formatNMEA(fmt.Sprintf("$GPGGA,%s,,,,,0,00,,,,,,,,,", clock.Format("150405"))))
			sentences += 2
		} else {
			fmt.Fprint(out, generateRMC(clock, fix, speedKnots, course))
			fmt.Fprint(out, generateGGA(clock, fix, 8))
			fmt.Fprint(out, generateGSA())
			sentences += 3
		}

		clock = clock.Add(time.Second)
	}

	log.Printf("Wrote %d sentences to %s\n", sentences, *outputFile)
}

// calculateChecksum XORs the sentence bytes between '$' and '*'.
func calculateChecksum(sentence string) string {
	var checksum byte
	for i := 1; i < len(sentence); i++ {
		checksum ^= sentence[i]
	}
	return fmt.Sprintf("%02X", checksum)
}

func formatNMEA(sentence string) string {
	return fmt.Sprintf("%s*%s\r\n", sentence, calculateChecksum(sentence))
}

// nmeaLatLon converts decimal degrees into the DDMM.MMMM fields and
// hemisphere letters NMEA sentences carry.
func nmeaLatLon(c geo.Coordinate) (string, string, string, string) {
	latDeg := int(math.Abs(c.Lat))
	latMin := (math.Abs(c.Lat) - float64(latDeg)) * 60
	latHem := "N"
	if c.Lat < 0 {
		latHem = "S"
	}

	lonDeg := int(math.Abs(c.Lon))
	lonMin := (math.Abs(c.Lon) - float64(lonDeg)) * 60
	lonHem := "E"
	if c.Lon < 0 {
		lonHem = "W"
	}

	return fmt.Sprintf("%02d%07.4f", latDeg, latMin), latHem,
		fmt.Sprintf("%03d%07.4f", lonDeg, lonMin), lonHem
}

func generateRMC(timestamp time.Time, fix geo.Coordinate, speedKnots, course float64) string {
	lat, latHem, lon, lonHem := nmeaLatLon(fix)
	sentence := fmt.Sprintf("$GPRMC,%s,A,%s,%s,%s,%s,%.1f,%.1f,%s,,,A",
		timestamp.Format("150405"),
		lat, latHem, lon, lonHem,
		speedKnots, course,
		timestamp.Format("020106"))
	return formatNMEA(sentence)
}

func generateGGA(timestamp time.Time, fix geo.Coordinate, satellites int) string {
	lat, latHem, lon, lonHem := nmeaLatLon(fix)
	sentence := fmt.Sprintf("$GPGGA,%s,%s,%s,%s,%s,1,%02d,1.2,%.1f,M,0.0,M,,",
		timestamp.Format("150405"),
		lat, latHem, lon, lonHem,
		satellites, fix.Alt)
	return formatNMEA(sentence)
}

func generateGSA() string {
	ids := make([]string, 12)
	for i := 0; i < 8; i++ {
		ids[i] = fmt.Sprintf("%02d", i+1)
	}
	sentence := fmt.Sprintf("$GPGSA,A,3,%s,2.1,1.2,1.8", strings.Join(ids, ","))
	return formatNMEA(sentence)
}
