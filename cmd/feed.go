package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/feed"
	"github.com/kass/go-vehicle-dash/pkg/geo"
	"github.com/kass/go-vehicle-dash/pkg/nav"
)

// runFeed drives the navigator from an NMEA stream until the stream
// ends or the process is interrupted.
func runFeed(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	// Flags override the configured source.
	replay := cfg.Feed.Replay
	if replayFile != "" {
		replay = replayFile
	}
	port := cfg.Feed.Serial
	if serialPort != "" {
		port = serialPort
	}
	baud := cfg.Feed.Baud
	if baudRate > 0 {
		baud = baudRate
	}

	source, name, err := openSource(replay, port, baud)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open NMEA source")
	}
	defer source.Close()

	center, err := alerts.NewCenter()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start notification center")
	}

	navigator := nav.NewNavigator(center)
	navigator.UpdateLocation(geo.Coordinate{
		Lat: cfg.Navigation.StartLat,
		Lon: cfg.Navigation.StartLon,
		Alt: cfg.Navigation.StartAlt,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A read blocked on a quiet port only returns once the port is
	// closed, so close it when the context ends.
	go func() {
		<-ctx.Done()
		source.Close()
	}()

	log.Info().Str("source", name).Msg("Feeding NMEA sentences to the navigator")

	// Closing the source on interrupt surfaces as a read error, so only
	// report errors that arrive while the context is still live.
	f := feed.NewFeed(navigator)
	if err := f.Run(ctx, source); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Feed stopped")
	}

	stats := f.Stats()
	log.Info().
		Int("sentences", stats.Sentences).
		Int("skipped", stats.Skipped).
		Int("fixes", stats.Fixes).
		Msg("Feed finished")

	fmt.Printf("\nFinal position: %s\n", navigator.Location())
	fmt.Printf("Speed: %.1f km/h, Heading: %.0f°\n", navigator.Speed(), navigator.Heading())
	state := "available"
	if !navigator.SignalAvailable() {
		state = "lost"
	}
	fmt.Printf("GPS signal: %s (%d satellites, %.1fm accuracy)\n",
		state, navigator.Satellites(), navigator.Accuracy())
	fmt.Printf("Notifications recorded: %d\n", center.Count())
}

// openSource opens the replay file when one is given, otherwise the
// serial port.
func openSource(replay, port string, baud int) (io.ReadCloser, string, error) {
	if replay != "" {
		f, err := os.Open(replay)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open replay file: %w", err)
		}
		return f, replay, nil
	}

	if port == "" {
		return nil, "", errors.New("no NMEA source: pass --replay or --serial, or set one in the config")
	}

	mode := &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open serial port %s: %w", port, err)
	}
	return p, port, nil
}
