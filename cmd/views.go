package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/media"
	"github.com/kass/go-vehicle-dash/pkg/nav"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	critStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

func (d dashboard) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🚗 Vehicle Dashboard"))
	b.WriteString("\n")

	switch d.screen {
	case screenMenu:
		b.WriteString(renderMenu(d))
	case screenVehicle:
		b.WriteString(renderVehicle(d))
	case screenGPS:
		b.WriteString(renderGPS(d))
	case screenMedia:
		b.WriteString(renderMedia(d))
	case screenSettings:
		b.WriteString(renderSettings(d))
	case screenNotifications:
		b.WriteString(renderNotifications(d))
	}

	b.WriteString("\n")
	if d.screen == screenMenu {
		b.WriteString(dimStyle.Render("Press a number to choose, 'q' to quit"))
	} else {
		b.WriteString(dimStyle.Render("Press 'esc' for the menu, 'q' to quit"))
	}

	return b.String()
}

func renderMenu(d dashboard) string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Main Menu"))
	b.WriteString("\n\n")

	entries := []string{
		"1. Vehicle Monitor Status",
		"2. GPS Navigator Status",
		"3. Media Player Controls",
		"4. System Settings",
		"5. View All Notifications",
		"6. Simulate Real-time Updates",
		"7. GPS Navigation Demo",
		"8. Run System Check",
		"0. Exit",
	}
	for _, e := range entries {
		b.WriteString("  " + e + "\n")
	}

	if d.simulating {
		b.WriteString("\n")
		b.WriteString(d.spinner.View())
		b.WriteString(fmt.Sprintf(" Simulating sensor updates... %s ticks", statStyle.Render(fmt.Sprintf("%d", d.simTicks))))
		b.WriteString("\n")
	}

	if d.center.HasCritical() {
		b.WriteString("\n")
		b.WriteString(critStyle.Render(fmt.Sprintf("🚨 %d critical alert(s) pending", d.center.CountByLevel(alerts.LevelCritical))))
		b.WriteString("\n")
	}

	if len(d.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, n := range d.recent {
			line := fmt.Sprintf("• [%s] %s", n.At.Format("15:04:05"), n.Message)
			b.WriteString(levelStyle(n.Level).Render(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderVehicle(d dashboard) string {
	m := d.monitor

	temp := fmt.Sprintf("🌡️  Engine Temperature: %s", statStyle.Render(fmt.Sprintf("%.1f°C", m.EngineTemperature())))
	switch {
	case m.EngineTemperature() > 105.0:
		temp += " " + critStyle.Render("OVERHEATING!")
	case m.EngineTemperature() > 95.0:
		temp += " " + warnStyle.Render("HIGH")
	default:
		temp += " " + okStyle.Render("NORMAL")
	}

	fuel := fmt.Sprintf("⛽ Fuel Level: %s", statStyle.Render(fmt.Sprintf("%.1f%%", m.FuelLevel())))
	switch {
	case m.FuelLevel() <= 5.0:
		fuel += " " + critStyle.Render("CRITICAL!")
	case m.FuelLevel() <= 15.0:
		fuel += " " + warnStyle.Render("LOW")
	default:
		fuel += " " + okStyle.Render("OK")
	}
	fuel += dimStyle.Render(fmt.Sprintf(" (Range: ~%.0f km)", m.EstimatedRange()))

	speed := fmt.Sprintf("🏎️  Current Speed: %s", statStyle.Render(fmt.Sprintf("%.1f km/h", m.Speed())))
	if m.Speed() > 120.0 {
		speed += " " + warnStyle.Render("OVER LIMIT!")
	} else {
		speed += " " + okStyle.Render("OK")
	}

	brakes := fmt.Sprintf("🛞 Brake Wear: %s", statStyle.Render(fmt.Sprintf("%.1f%%", m.BrakeWear())))
	switch {
	case m.BrakeWear() <= 10.0:
		brakes += " " + critStyle.Render("REPLACE NOW!")
	case m.BrakeWear() <= 20.0:
		brakes += " " + warnStyle.Render("SERVICE SOON")
	default:
		brakes += " " + okStyle.Render("OK")
	}

	consumption := dimStyle.Render(fmt.Sprintf("Consumption: %.1f L/100km", m.Consumption()))

	content := strings.Join([]string{temp, fuel, speed, brakes, consumption}, "\n")
	return subtitleStyle.Render("Vehicle Status") + "\n" + boxStyle.Render(content)
}

func renderGPS(d dashboard) string {
	n := d.navigator

	var lines []string
	lines = append(lines, fmt.Sprintf("📍 Current Location: %s", statStyle.Render(n.Location().String())))

	signal := "📡 GPS Signal: "
	if n.SignalAvailable() {
		signal += okStyle.Render("GOOD")
	} else {
		signal += critStyle.Render("POOR/LOST")
	}
	signal += dimStyle.Render(fmt.Sprintf(" (%d satellites, %.1fm accuracy)", n.Satellites(), n.Accuracy()))
	lines = append(lines, signal)

	lines = append(lines, fmt.Sprintf("🏎️  Speed: %s", statStyle.Render(fmt.Sprintf("%.1f km/h", n.Speed()))))
	lines = append(lines, fmt.Sprintf("🧭 Heading: %s", statStyle.Render(fmt.Sprintf("%.0f°", n.Heading()))))
	lines = append(lines, fmt.Sprintf("🗺️  Navigation: %s", statusStyle(n.Status()).Render(n.Status().String())))

	if dest, ok := n.Destination(); ok {
		lines = append(lines, fmt.Sprintf("🎯 Destination: %s %s",
			statStyle.Render(n.DestinationName()), dimStyle.Render("("+dest.String()+")")))
		if dist := n.DistanceToDestination(); dist >= 0 {
			lines = append(lines, fmt.Sprintf("📏 Distance: %s", statStyle.Render(fmt.Sprintf("%.1f km", dist))))
		}
		if eta := n.ETA(); eta >= 0 {
			lines = append(lines, fmt.Sprintf("⏱️  ETA: %s", statStyle.Render(fmt.Sprintf("%.0f min", eta))))
		}
	}

	out := subtitleStyle.Render("GPS Status") + "\n" + boxStyle.Render(strings.Join(lines, "\n"))
	out += "\n" + renderRoute(d)
	out += "\n" + dimStyle.Render("'s' start navigation · 'x' stop navigation")
	return out
}

func renderRoute(d dashboard) string {
	route := d.navigator.Route()
	waypoints := route.Waypoints()
	if len(waypoints) == 0 {
		return dimStyle.Render("No route waypoints set")
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Route Waypoints (%d)", len(waypoints))))
	b.WriteString("\n")

	nearest, hasNearest := route.Nearest(d.navigator.Location())
	for i, w := range waypoints {
		marker := "  "
		if hasNearest && w == nearest {
			marker = okStyle.Render("► ")
		}
		b.WriteString(fmt.Sprintf("%s%d. %s", marker, i+1, w.Name))
		if dist := d.navigator.CalculateDistance(d.navigator.Location(), w.Coordinate); dist >= 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" (%.1f km away)", dist)))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("     📍 " + w.Coordinate.String()))
		b.WriteString("\n")
		if w.Address != "" {
			b.WriteString(dimStyle.Render("     🏠 " + w.Address))
			b.WriteString("\n")
		}
	}
	if hasNearest {
		b.WriteString(dimStyle.Render("► nearest stop to the current fix"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderMedia(d dashboard) string {
	p := d.player

	var lines []string
	if track, ok := p.CurrentTrack(); ok {
		lines = append(lines, fmt.Sprintf("Title:  %s", statStyle.Render(track.Title)))
		lines = append(lines, fmt.Sprintf("Artist: %s", track.Artist))
		lines = append(lines, fmt.Sprintf("Album:  %s", track.Album))
		lines = append(lines, fmt.Sprintf("Status: %s   Volume: %s   Track: %d/%d",
			mediaStateStyle(p.State()).Render(p.State().String()),
			statStyle.Render(fmt.Sprintf("%d%%", p.Volume())),
			p.TrackIndex()+1, p.Len()))

		ratio := 0.0
		if track.Duration > 0 {
			ratio = float64(p.Position()) / float64(track.Duration)
		}
		position := fmt.Sprintf("%d:%02d / %s", p.Position()/60, p.Position()%60, track.DurationString())
		lines = append(lines, "")
		lines = append(lines, d.progress.ViewAs(ratio))
		lines = append(lines, dimStyle.Render(position))
	} else {
		lines = append(lines, warnStyle.Render("🎵 No tracks available"))
	}

	out := subtitleStyle.Render("Now Playing") + "\n" + boxStyle.Render(strings.Join(lines, "\n"))

	tracks := p.Tracks()
	if len(tracks) > 0 {
		var b strings.Builder
		b.WriteString(subtitleStyle.Render("Playlist"))
		b.WriteString("\n")
		for i, t := range tracks {
			indicator := "  "
			if i == p.TrackIndex() {
				indicator = okStyle.Render("► ")
			}
			b.WriteString(fmt.Sprintf("%s%2d. %s · %s\n", indicator, i+1, t.Title, t.Artist))
		}
		out += "\n" + b.String()
	}

	out += "\n" + dimStyle.Render("'enter' play · 'space' pause · 's' stop · 'n' next · 'b' previous · '+/-' volume")
	return out
}

func renderSettings(d dashboard) string {
	s := d.prefs

	onOff := func(v bool) string {
		if v {
			return okStyle.Render("ON")
		}
		return dimStyle.Render("OFF")
	}

	lines := []string{
		subtitleStyle.Render("🔊 Audio"),
		fmt.Sprintf("   System Volume: %s", statStyle.Render(fmt.Sprintf("%d%%", s.SystemVolume()))),
		fmt.Sprintf("   Notification Sounds: %s", onOff(s.NotificationSounds())),
		fmt.Sprintf("   Voice Guidance: %s", onOff(s.VoiceGuidance())),
		"",
		subtitleStyle.Render("💡 Display"),
		fmt.Sprintf("   Brightness: %s", statStyle.Render(fmt.Sprintf("%d%%", s.DisplayBrightness()))),
		fmt.Sprintf("   Theme: %s", statStyle.Render(s.Theme().String())),
		fmt.Sprintf("   Night Mode: %s", onOff(s.NightMode())),
		"",
		subtitleStyle.Render("🌐 System"),
		fmt.Sprintf("   Language: %s", statStyle.Render(s.Language().String())),
		fmt.Sprintf("   Time Format: %s", statStyle.Render(s.TimeFormat())),
		fmt.Sprintf("   Temperature Unit: %s", statStyle.Render("°"+s.TemperatureUnit())),
	}

	out := subtitleStyle.Render("System Settings") + "\n" + boxStyle.Render(strings.Join(lines, "\n"))
	out += "\n" + dimStyle.Render("'t' theme · 'l' language · 'n' night mode · 'v' voice · 'a' alert sounds · 'f' time format · 'u' unit · 'r' reset")
	return out
}

func renderNotifications(d dashboard) string {
	notifications := d.center.Notifications()

	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Notification Center"))
	b.WriteString("\n\n")

	if len(notifications) == 0 {
		b.WriteString(dimStyle.Render("📋 No notifications."))
		b.WriteString("\n")
	} else {
		// Newest last, like the head unit's scroll log. Show the tail.
		start := 0
		if len(notifications) > 14 {
			start = len(notifications) - 14
			b.WriteString(dimStyle.Render(fmt.Sprintf("… %d earlier notifications", start)))
			b.WriteString("\n")
		}
		for _, n := range notifications[start:] {
			line := fmt.Sprintf("[%s] %s: %s", n.At.Format("15:04:05"), n.Level, n.Message)
			b.WriteString(levelStyle(n.Level).Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s   Warnings: %s   Critical: %s",
		statStyle.Render(fmt.Sprintf("%d", d.center.Count())),
		warnStyle.Render(fmt.Sprintf("%d", d.center.CountByLevel(alerts.LevelWarning))),
		critStyle.Render(fmt.Sprintf("%d", d.center.CountByLevel(alerts.LevelCritical)))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("'c' clear all"))
	return b.String()
}

func levelStyle(l alerts.Level) lipgloss.Style {
	switch l {
	case alerts.LevelCritical:
		return critStyle
	case alerts.LevelWarning:
		return warnStyle
	case alerts.LevelInfo:
		return okStyle
	default:
		return dimStyle
	}
}

func statusStyle(s nav.Status) lipgloss.Style {
	switch s {
	case nav.StatusNavigating:
		return okStyle
	case nav.StatusArrived:
		return statStyle
	case nav.StatusGPSLost:
		return critStyle
	case nav.StatusOffRoute:
		return warnStyle
	case nav.StatusIdle:
		return dimStyle
	default:
		return dimStyle
	}
}

func mediaStateStyle(s media.State) lipgloss.Style {
	switch s {
	case media.StatePlaying:
		return okStyle
	case media.StatePaused:
		return warnStyle
	case media.StateStopped:
		return dimStyle
	default:
		return dimStyle
	}
}

// plainStatus dumps every subsystem without styling for use when
// stdout is not a terminal.
func (d dashboard) plainStatus() string {
	var b strings.Builder

	b.WriteString("Vehicle Monitoring System with GPS Navigation\n")
	b.WriteString(strings.Repeat("=", 45) + "\n")

	m := d.monitor
	b.WriteString("\n=== VEHICLE STATUS ===\n")
	fmt.Fprintf(&b, "Engine Temperature: %.1f°C\n", m.EngineTemperature())
	fmt.Fprintf(&b, "Fuel Level: %.1f%% (Range: ~%.0f km)\n", m.FuelLevel(), m.EstimatedRange())
	fmt.Fprintf(&b, "Current Speed: %.1f km/h\n", m.Speed())
	fmt.Fprintf(&b, "Brake Wear: %.1f%%\n", m.BrakeWear())

	n := d.navigator
	b.WriteString("\n=== GPS STATUS ===\n")
	fmt.Fprintf(&b, "Current Location: %s\n", n.Location())
	signal := "GOOD"
	if !n.SignalAvailable() {
		signal = "POOR/LOST"
	}
	fmt.Fprintf(&b, "GPS Signal: %s (%d satellites, %.1fm accuracy)\n", signal, n.Satellites(), n.Accuracy())
	fmt.Fprintf(&b, "Speed: %.1f km/h\n", n.Speed())
	fmt.Fprintf(&b, "Heading: %.0f°\n", n.Heading())
	fmt.Fprintf(&b, "Navigation: %s\n", n.Status())
	if dest, ok := n.Destination(); ok {
		fmt.Fprintf(&b, "Destination: %s (%s)\n", n.DestinationName(), dest)
		if dist := n.DistanceToDestination(); dist >= 0 {
			fmt.Fprintf(&b, "Distance: %.1f km\n", dist)
		}
		if eta := n.ETA(); eta >= 0 {
			fmt.Fprintf(&b, "ETA: %.0f min\n", eta)
		}
	}

	b.WriteString("\n=== MEDIA PLAYER ===\n")
	if track, ok := d.player.CurrentTrack(); ok {
		fmt.Fprintf(&b, "Track: %s - %s (%s)\n", track.Title, track.Artist, track.DurationString())
		fmt.Fprintf(&b, "Status: %s, Volume: %d%%\n", d.player.State(), d.player.Volume())
	} else {
		b.WriteString("No tracks available\n")
	}

	s := d.prefs
	b.WriteString("\n=== SYSTEM SETTINGS ===\n")
	fmt.Fprintf(&b, "Volume: %d%%, Brightness: %d%%, Theme: %s, Language: %s\n",
		s.SystemVolume(), s.DisplayBrightness(), s.Theme(), s.Language())
	fmt.Fprintf(&b, "Time Format: %s, Temperature Unit: °%s\n", s.TimeFormat(), s.TemperatureUnit())

	b.WriteString("\n=== NOTIFICATIONS ===\n")
	notifications := d.center.Notifications()
	if len(notifications) == 0 {
		b.WriteString("No notifications.\n")
	}
	for _, notification := range notifications {
		fmt.Fprintf(&b, "[%s] %s: %s\n", notification.At.Format("15:04:05"), notification.Level, notification.Message)
	}

	return b.String()
}
