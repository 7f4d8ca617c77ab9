package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kass/go-vehicle-dash/pkg/config"
)

// Version information - populated at build time via ldflags
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vehicle-dash",
	Short: "In-vehicle dashboard simulator centered on GPS navigation",
	Long:  `An in-vehicle dashboard simulator: GPS navigation with route tracking, vehicle health monitoring, a media player and system settings, driven from a terminal UI or a live NMEA feed.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive dashboard",
	Long:  `Launch the terminal dashboard with navigation, vehicle, media and settings screens.`,
	Run:   runDashboard,
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Drive the navigator from an NMEA sentence stream",
	Long:  `Read NMEA 0183 sentences from a serial port or a replay file and feed them into the navigator.`,
	Run:   runFeed,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vehicle-dash %s (%s)\n", version, commit)
	},
}

var (
	replayFile string
	serialPort string
	baudRate   int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	feedCmd.Flags().StringVarP(&replayFile, "replay", "r", "", "NMEA replay file to read instead of a serial port")
	feedCmd.Flags().StringVarP(&serialPort, "serial", "s", "", "Serial port carrying NMEA sentences (e.g. /dev/ttyUSB0)")
	feedCmd.Flags().IntVarP(&baudRate, "baud", "b", 0, "Serial baud rate (0 uses the configured rate)")

	rootCmd.AddCommand(runCmd, feedCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies the logging settings
// before any subsystem starts.
func loadConfig() config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return cfg
}
