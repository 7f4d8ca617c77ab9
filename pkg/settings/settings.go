// Package settings holds the driver-adjustable system settings and
// their validation rules.
package settings

import (
	"github.com/kass/go-vehicle-dash/pkg/alerts"
)

// Theme selects the display color scheme.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
	ThemeAuto
)

// String returns the display label for the theme.
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	case ThemeAuto:
		return "Auto"
	default:
		return "Unknown"
	}
}

// Language selects the interface language.
type Language int

const (
	LanguageEnglish Language = iota
	LanguageSpanish
	LanguageFrench
	LanguageGerman
	LanguageJapanese
)

// String returns the language's native display name.
func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageSpanish:
		return "Español"
	case LanguageFrench:
		return "Français"
	case LanguageGerman:
		return "Deutsch"
	case LanguageJapanese:
		return "日本語"
	default:
		return "Unknown"
	}
}

// Accepted values for the time format and temperature unit settings.
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"

	UnitCelsius    = "C"
	UnitFahrenheit = "F"
)

const nightModeBrightnessCap = 30 // percent

// SoundSink is the slice of the alert center the settings panel
// controls.
type SoundSink interface {
	SetSoundEnabled(enabled bool)
}

// Settings stores the system settings and pushes the audible-alert
// flag through to the alert center.
//
// Settings is not safe for concurrent use; the dashboard drives it
// from a single goroutine.
type Settings struct {
	volume        int // percent
	brightness    int // percent
	theme         Theme
	language      Language
	nightMode     bool
	voiceGuidance bool
	sounds        bool
	timeFormat    string
	tempUnit      string

	notifier alerts.Notifier
	sink     SoundSink
}

// NewSettings returns settings at factory defaults. A nil sink drops
// sound-flag updates.
func NewSettings(notifier alerts.Notifier, sink SoundSink) *Settings {
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	s := &Settings{notifier: notifier, sink: sink}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	s.volume = 50
	s.brightness = 75
	s.theme = ThemeAuto
	s.language = LanguageEnglish
	s.nightMode = false
	s.voiceGuidance = true
	s.sounds = true
	s.timeFormat = TimeFormat12h
	s.tempUnit = UnitCelsius
}

// SetSystemVolume clamps the volume into [0, 100] and reports when the
// system goes silent.
func (s *Settings) SetSystemVolume(percent int) {
	s.volume = clampPercent(percent)
	if s.volume == 0 {
		s.notifier.Notify("System muted", alerts.LevelInfo)
	}
}

// SystemVolume returns the system volume percentage.
func (s *Settings) SystemVolume() int { return s.volume }

// SetDisplayBrightness clamps the brightness into [0, 100] and warns
// when it drops low enough to hamper visibility.
func (s *Settings) SetDisplayBrightness(percent int) {
	s.brightness = clampPercent(percent)
	if s.brightness < 20 {
		s.notifier.Notify("Low brightness - may affect visibility", alerts.LevelWarning)
	}
}

// DisplayBrightness returns the display brightness percentage.
func (s *Settings) DisplayBrightness() int { return s.brightness }

// SetTheme switches the display theme.
func (s *Settings) SetTheme(theme Theme) {
	s.theme = theme
	s.notifier.Notify("Theme changed to "+theme.String(), alerts.LevelInfo)
}

// Theme returns the active display theme.
func (s *Settings) Theme() Theme { return s.theme }

// SetLanguage switches the interface language.
func (s *Settings) SetLanguage(lang Language) {
	s.language = lang
	s.notifier.Notify("Language changed to "+lang.String(), alerts.LevelInfo)
}

// Language returns the active interface language.
func (s *Settings) Language() Language { return s.language }

// SetNightMode toggles night mode. Enabling it dims a display brighter
// than the night cap; disabling it leaves brightness where it is.
func (s *Settings) SetNightMode(enabled bool) {
	s.nightMode = enabled
	if enabled && s.brightness > nightModeBrightnessCap {
		s.SetDisplayBrightness(nightModeBrightnessCap)
		s.notifier.Notify("Brightness auto-adjusted for night mode", alerts.LevelInfo)
	}
}

// NightMode reports whether night mode is enabled.
func (s *Settings) NightMode() bool { return s.nightMode }

// SetVoiceGuidance toggles spoken navigation prompts.
func (s *Settings) SetVoiceGuidance(enabled bool) {
	s.voiceGuidance = enabled
}

// VoiceGuidance reports whether spoken prompts are enabled.
func (s *Settings) VoiceGuidance() bool { return s.voiceGuidance }

// SetNotificationSounds toggles audible alerts and pushes the flag
// through to the alert center.
func (s *Settings) SetNotificationSounds(enabled bool) {
	s.sounds = enabled
	if s.sink != nil {
		s.sink.SetSoundEnabled(enabled)
	}
}

// NotificationSounds reports whether audible alerts are enabled.
func (s *Settings) NotificationSounds() bool { return s.sounds }

// SetTimeFormat accepts "12h" or "24h". Anything else raises a warning
// and leaves the format unchanged.
func (s *Settings) SetTimeFormat(format string) bool {
	if format != TimeFormat12h && format != TimeFormat24h {
		s.notifier.Notify("Invalid time format. Use '12h' or '24h'", alerts.LevelWarning)
		return false
	}
	s.timeFormat = format
	return true
}

// TimeFormat returns the clock format, "12h" or "24h".
func (s *Settings) TimeFormat() string { return s.timeFormat }

// SetTemperatureUnit accepts "C" or "F". Anything else raises a
// warning and leaves the unit unchanged.
func (s *Settings) SetTemperatureUnit(unit string) bool {
	if unit != UnitCelsius && unit != UnitFahrenheit {
		s.notifier.Notify("Invalid temperature unit. Use 'C' or 'F'", alerts.LevelWarning)
		return false
	}
	s.tempUnit = unit
	return true
}

// TemperatureUnit returns the temperature unit, "C" or "F".
func (s *Settings) TemperatureUnit() string { return s.tempUnit }

// ResetToDefaults restores factory defaults and re-enables audible
// alerts at the center.
func (s *Settings) ResetToDefaults() {
	s.applyDefaults()
	if s.sink != nil {
		s.sink.SetSoundEnabled(s.sounds)
	}
	s.notifier.Notify("All settings reset to defaults", alerts.LevelInfo)
}

// Save acknowledges a save request. The head unit owns the persistent
// store, so nothing is written here.
func (s *Settings) Save() {
	s.notifier.Notify("Settings saved", alerts.LevelInfo)
}

// Load acknowledges a load request without touching any store.
func (s *Settings) Load() {
	s.notifier.Notify("Settings loaded", alerts.LevelInfo)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
