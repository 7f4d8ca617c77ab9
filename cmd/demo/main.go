package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/geo"
	"github.com/kass/go-vehicle-dash/pkg/nav"
)

var (
	// ANSI color codes
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func init() {
	// Disable colors if not in a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		colorReset = ""
		colorRed = ""
		colorGreen = ""
		colorYellow = ""
		colorPurple = ""
		colorCyan = ""
		colorBold = ""
	}
}

func printTitle(title string) {
	fmt.Printf("\n%s%s🧭 %s%s\n", colorBold, colorPurple, title, colorReset)
	fmt.Println(strings.Repeat("=", 60))
}

func printSubtitle(subtitle string) {
	fmt.Printf("\n%s%s%s%s\n", colorBold, colorCyan, subtitle, colorReset)
}

func printSuccess(message string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, message, colorReset)
}

func printInfo(message string) {
	fmt.Printf("%s• %s%s\n", colorYellow, message, colorReset)
}

func printError(message string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, message, colorReset)
}

func printStat(label string, value interface{}) {
	fmt.Printf("  %s%s:%s %s%v%s\n", colorBold, label, colorReset, colorYellow, value, colorReset)
}

func main() {
	// The demo narrates on stdout; keep the structured log quiet.
	zerolog.SetGlobalLevel(zerolog.Disabled)

	printTitle("GPS Navigation Demo")

	center, err := alerts.NewCenter()
	if err != nil {
		printError(fmt.Sprintf("Failed to start notification center: %v", err))
		os.Exit(1)
	}
	navigator := nav.NewNavigator(center)

	// Phase 1: acquire a fix in San Francisco.
	printSubtitle("Acquiring GPS Fix")
	start := geo.Coordinate{Lat: 37.7749, Lon: -122.4194, Alt: 50}
	navigator.UpdateLocation(start)
	navigator.UpdateSpeed(45.0)
	navigator.UpdateHeading(90.0)
	navigator.UpdateGPSSignal(8, 3.5)
	printSuccess(fmt.Sprintf("Fix acquired at %s", navigator.Location()))
	printStat("Satellites", navigator.Satellites())
	printStat("Accuracy", fmt.Sprintf("%.1fm", navigator.Accuracy()))

	// A fix off the globe never replaces the last good one.
	navigator.UpdateLocation(geo.Coordinate{Lat: 95.0, Lon: -122.4194})
	printInfo(fmt.Sprintf("Bogus fix (lat 95°) rejected, still at %s", navigator.Location()))

	time.Sleep(300 * time.Millisecond)

	// Phase 2: plan the sightseeing route.
	printSubtitle("Planning Route")
	navigator.AddWaypoint(nav.Waypoint{
		Coordinate: geo.Coordinate{Lat: 37.7849, Lon: -122.4094, Alt: 60},
		Name:       "Golden Gate Park",
		Address:    "Golden Gate Park, San Francisco, CA",
	})
	navigator.AddWaypoint(nav.Waypoint{
		Coordinate: geo.Coordinate{Lat: 37.8049, Lon: -122.4194, Alt: 70},
		Name:       "Fisherman's Wharf",
		Address:    "Pier 39, San Francisco, CA",
	})

	dest := geo.Coordinate{Lat: 37.8267, Lon: -122.4233, Alt: 40}
	navigator.SetDestination(dest, "Alcatraz Island")

	printSuccess(fmt.Sprintf("Route planned with %d waypoints", navigator.Route().Len()))
	printStat("Destination", fmt.Sprintf("%s (%s)", navigator.DestinationName(), dest))
	printStat("Distance", fmt.Sprintf("%.1f km", navigator.DistanceToDestination()))
	printStat("Initial bearing", fmt.Sprintf("%.0f°", geo.InitialBearing(start, dest)))
	if nearest, ok := navigator.Route().Nearest(navigator.Location()); ok {
		printStat("Nearest stop", nearest.Name)
	}

	time.Sleep(300 * time.Millisecond)

	// Phase 3: navigate toward Alcatraz.
	printSubtitle("Navigating")
	navigator.StartNavigation()
	printStat("Status", navigator.Status())
	printStat("ETA", fmt.Sprintf("%.0f min", navigator.ETA()))

	const steps = 6
	for i := 1; i <= steps; i++ {
		fix := geo.Coordinate{
			Lat: start.Lat + (dest.Lat-start.Lat)*float64(i)/steps,
			Lon: start.Lon + (dest.Lon-start.Lon)*float64(i)/steps,
			Alt: start.Alt + (dest.Alt-start.Alt)*float64(i)/steps,
		}
		navigator.UpdateLocation(fix)
		navigator.UpdateHeading(geo.InitialBearing(fix, dest))

		switch i {
		case 2:
			// Drop the signal under the bridge approach.
			navigator.UpdateGPSSignal(2, 15.0)
			printError(fmt.Sprintf("Signal degraded (2 satellites, 15.0m), status %s", navigator.Status()))
		case 3:
			navigator.UpdateGPSSignal(9, 2.0)
			printSuccess(fmt.Sprintf("Signal recovered (9 satellites, 2.0m), status %s", navigator.Status()))
		}

		if dist := navigator.DistanceToDestination(); dist >= 0.1 {
			printInfo(fmt.Sprintf("Step %d: %s, %.1f km to go, status %s",
				i, navigator.Location(), dist, navigator.Status()))
		}
		time.Sleep(200 * time.Millisecond)
	}

	if navigator.Status() == nav.StatusArrived {
		printSuccess("Arrived at Alcatraz Island!")
	} else {
		printError(fmt.Sprintf("Expected arrival, got %s", navigator.Status()))
	}

	time.Sleep(300 * time.Millisecond)

	// Phase 4: replay the notification log.
	printSubtitle("Notification Log")
	for _, n := range center.Notifications() {
		label := n.Level.String()
		switch n.Level {
		case alerts.LevelCritical:
			label = colorRed + label + colorReset
		case alerts.LevelWarning:
			label = colorYellow + label + colorReset
		default:
			label = colorGreen + label + colorReset
		}
		fmt.Printf("  [%s] %s: %s\n", n.At.Format("15:04:05"), label, n.Message)
	}

	printTitle("Demo Complete")
	printStat("Notifications", center.Count())
	printStat("Warnings", center.CountByLevel(alerts.LevelWarning))
	printStat("Critical", center.CountByLevel(alerts.LevelCritical))
	fmt.Println()
}
