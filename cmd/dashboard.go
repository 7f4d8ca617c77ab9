package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/config"
	"github.com/kass/go-vehicle-dash/pkg/geo"
	"github.com/kass/go-vehicle-dash/pkg/media"
	"github.com/kass/go-vehicle-dash/pkg/nav"
	"github.com/kass/go-vehicle-dash/pkg/settings"
	"github.com/kass/go-vehicle-dash/pkg/vehicle"
)

// screen is the dashboard view currently on display. The menu mirrors
// the head unit's main menu, one screen per subsystem.
type screen int

const (
	screenMenu screen = iota
	screenVehicle
	screenGPS
	screenMedia
	screenSettings
	screenNotifications
)

// How many live alerts the menu keeps on screen.
const recentAlerts = 6

type alertMsg alerts.Notification
type simTickMsg time.Time
type mediaTickMsg time.Time

type dashboard struct {
	cfg config.Config

	center    *alerts.Center
	navigator *nav.Navigator
	monitor   *vehicle.Monitor
	player    *media.Player
	prefs     *settings.Settings
	rng       *rand.Rand

	screen     screen
	spinner    spinner.Model
	progress   progress.Model
	simulating bool
	simTicks   int

	recent []alerts.Notification
	width  int
	height int
}

var program *tea.Program

func runDashboard(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	d, err := newDashboard(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Off-terminal there is nothing to interact with; print the status
	// of every subsystem once and leave.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Print(d.plainStatus())
		return
	}

	// Stray log lines would tear the alt screen.
	if !verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	program = tea.NewProgram(d, tea.WithAltScreen())

	// Alerts arrive on the bus from whatever subsystem raised them; a
	// buffered hop keeps Notify from blocking on the UI loop.
	live := make(chan alerts.Notification, 64)
	d.center.Subscribe("dashboard", func(n alerts.Notification) {
		select {
		case live <- n:
		default:
		}
	})
	defer d.center.Unsubscribe("dashboard")
	go func() {
		for n := range live {
			program.Send(alertMsg(n))
		}
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newDashboard wires the subsystems around a shared alert center and
// seeds them the way the head unit boots: the demo playlist loaded and
// the navigator on its configured start fix.
func newDashboard(cfg config.Config) (dashboard, error) {
	center, err := alerts.NewCenter()
	if err != nil {
		return dashboard{}, err
	}

	navigator := nav.NewNavigator(center)
	monitor := vehicle.NewMonitor(center)
	player := media.NewPlayer(center)
	prefs := settings.NewSettings(center, center)

	player.LoadPlaylist(media.DemoPlaylist())
	navigator.UpdateLocation(geo.Coordinate{
		Lat: cfg.Navigation.StartLat,
		Lon: cfg.Navigation.StartLon,
		Alt: cfg.Navigation.StartAlt,
	})
	navigator.UpdateSpeed(cfg.Navigation.SpeedKmh)
	navigator.UpdateHeading(cfg.Navigation.HeadingDeg)
	navigator.UpdateGPSSignal(cfg.Navigation.Satellites, cfg.Navigation.AccuracyM)

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	return dashboard{
		cfg:       cfg,
		center:    center,
		navigator: navigator,
		monitor:   monitor,
		player:    player,
		prefs:     prefs,
		rng:       rand.New(rand.NewSource(seed)),
		screen:    screenMenu,
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient()),
		width:     80,
		height:    24,
	}, nil
}

func (d dashboard) Init() tea.Cmd {
	return tea.Batch(d.spinner.Tick, mediaTick())
}

func (d dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.progress.Width = msg.Width - 20
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case alertMsg:
		d.recent = append(d.recent, alerts.Notification(msg))
		if len(d.recent) > recentAlerts {
			d.recent = d.recent[len(d.recent)-recentAlerts:]
		}
		return d, nil

	case simTickMsg:
		if !d.simulating {
			return d, nil
		}
		d.monitor.SimulateUpdate(d.rng)
		d.navigator.SimulateUpdate(d.rng)
		d.simTicks++
		return d, d.simTick()

	case mediaTickMsg:
		d.player.Tick(1)
		return d, mediaTick()
	}

	return d, nil
}

func (d dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return d, tea.Quit
	}

	if d.screen != screenMenu {
		switch key {
		case "esc", "backspace":
			d.screen = screenMenu
			return d, nil
		case "q":
			return d, tea.Quit
		}
		return d.handleScreenKey(key)
	}

	switch key {
	case "1":
		d.screen = screenVehicle
	case "2":
		d.screen = screenGPS
	case "3":
		d.screen = screenMedia
	case "4":
		d.screen = screenSettings
	case "5":
		d.screen = screenNotifications
	case "6":
		d.simulating = !d.simulating
		if d.simulating {
			return d, d.simTick()
		}
	case "7":
		d.runNavigationDemo()
		d.screen = screenGPS
	case "8":
		d.monitor.SystemCheck()
	case "0", "q":
		return d, tea.Quit
	}
	return d, nil
}

// handleScreenKey dispatches the per-screen controls.
func (d dashboard) handleScreenKey(key string) (tea.Model, tea.Cmd) {
	switch d.screen {
	case screenGPS:
		switch key {
		case "s":
			d.navigator.StartNavigation()
		case "x":
			d.navigator.StopNavigation()
		}

	case screenMedia:
		switch key {
		case "enter":
			d.player.Play()
		case " ":
			d.player.Pause()
		case "s":
			d.player.Stop()
		case "n":
			d.player.Next()
		case "b":
			d.player.Previous()
		case "+", "=":
			d.player.SetVolume(d.player.Volume() + 10)
		case "-":
			d.player.SetVolume(d.player.Volume() - 10)
		}

	case screenSettings:
		switch key {
		case "t":
			d.prefs.SetTheme(nextTheme(d.prefs.Theme()))
		case "l":
			d.prefs.SetLanguage(nextLanguage(d.prefs.Language()))
		case "n":
			d.prefs.SetNightMode(!d.prefs.NightMode())
		case "v":
			d.prefs.SetVoiceGuidance(!d.prefs.VoiceGuidance())
		case "a":
			d.prefs.SetNotificationSounds(!d.prefs.NotificationSounds())
		case "f":
			if d.prefs.TimeFormat() == settings.TimeFormat12h {
				d.prefs.SetTimeFormat(settings.TimeFormat24h)
			} else {
				d.prefs.SetTimeFormat(settings.TimeFormat12h)
			}
		case "u":
			if d.prefs.TemperatureUnit() == settings.UnitCelsius {
				d.prefs.SetTemperatureUnit(settings.UnitFahrenheit)
			} else {
				d.prefs.SetTemperatureUnit(settings.UnitCelsius)
			}
		case "r":
			d.prefs.ResetToDefaults()
		}

	case screenNotifications:
		if key == "c" {
			d.center.Clear()
		}
	}
	return d, nil
}

// runNavigationDemo replays the canned San Francisco trip: two
// sightseeing waypoints and a crossing to Alcatraz.
func (d dashboard) runNavigationDemo() {
	d.navigator.UpdateLocation(geo.Coordinate{Lat: 37.7749, Lon: -122.4194, Alt: 50})
	d.navigator.UpdateSpeed(45)
	d.navigator.UpdateHeading(90)

	d.navigator.AddWaypoint(nav.Waypoint{
		Coordinate: geo.Coordinate{Lat: 37.7849, Lon: -122.4094, Alt: 60},
		Name:       "Golden Gate Park",
		Address:    "Golden Gate Park, San Francisco, CA",
	})
	d.navigator.AddWaypoint(nav.Waypoint{
		Coordinate: geo.Coordinate{Lat: 37.8049, Lon: -122.4194, Alt: 70},
		Name:       "Fisherman's Wharf",
		Address:    "Pier 39, San Francisco, CA",
	})

	d.navigator.SetDestination(geo.Coordinate{Lat: 37.8267, Lon: -122.4233, Alt: 40}, "Alcatraz Island")
	d.navigator.StartNavigation()
}

func (d dashboard) simTick() tea.Cmd {
	interval := time.Duration(d.cfg.Simulation.TickMs) * time.Millisecond
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return simTickMsg(t)
	})
}

func mediaTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return mediaTickMsg(t)
	})
}

func nextTheme(t settings.Theme) settings.Theme {
	switch t {
	case settings.ThemeLight:
		return settings.ThemeDark
	case settings.ThemeDark:
		return settings.ThemeAuto
	default:
		return settings.ThemeLight
	}
}

func nextLanguage(l settings.Language) settings.Language {
	switch l {
	case settings.LanguageEnglish:
		return settings.LanguageSpanish
	case settings.LanguageSpanish:
		return settings.LanguageFrench
	case settings.LanguageFrench:
		return settings.LanguageGerman
	case settings.LanguageGerman:
		return settings.LanguageJapanese
	default:
		return settings.LanguageEnglish
	}
}
