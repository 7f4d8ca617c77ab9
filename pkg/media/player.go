// Package media implements the in-dash media player: a playlist with
// transport controls and volume, reporting activity through the alert
// center.
package media

import (
	"fmt"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
)

// State is the transport state of the player.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the display label for the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "STOPPED"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// Track is a single playlist entry.
type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration"` // seconds
}

// DurationString formats the track length as m:ss.
func (t Track) DurationString() string {
	return fmt.Sprintf("%d:%02d", t.Duration/60, t.Duration%60)
}

// Player holds the playlist and transport state.
//
// Player is not safe for concurrent use; the dashboard drives it from
// a single goroutine.
type Player struct {
	playlist []Track
	current  int
	state    State
	volume   int // percent
	position int // seconds into the current track
	notifier alerts.Notifier
}

// NewPlayer returns a stopped player with an empty playlist and the
// volume at 50%.
func NewPlayer(notifier alerts.Notifier) *Player {
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	return &Player{volume: 50, notifier: notifier}
}

// AddTrack appends a track to the playlist.
func (p *Player) AddTrack(t Track) {
	p.playlist = append(p.playlist, t)
	p.notifier.Notify("Track added: "+t.Title, alerts.LevelInfo)
}

// LoadPlaylist replaces the playlist and rewinds to the first track.
// The transport state is left alone.
func (p *Player) LoadPlaylist(tracks []Track) {
	p.playlist = p.playlist[:0]
	for _, t := range tracks {
		p.AddTrack(t)
	}
	p.current = 0
	p.position = 0
}

// Play starts playback of the current track. An empty playlist raises
// a warning instead.
func (p *Player) Play() {
	if len(p.playlist) == 0 {
		p.notifier.Notify("No tracks in playlist", alerts.LevelWarning)
		return
	}
	if p.current >= len(p.playlist) {
		p.current = 0
	}
	p.state = StatePlaying
	p.notifier.Notify("Now playing: "+p.playlist[p.current].Title, alerts.LevelInfo)
}

// Pause toggles between playing and paused. A stopped player stays
// stopped.
func (p *Player) Pause() {
	switch p.state {
	case StatePlaying:
		p.state = StatePaused
	case StatePaused:
		p.state = StatePlaying
	}
}

// Stop halts playback and rewinds the playhead.
func (p *Player) Stop() {
	p.state = StateStopped
	p.position = 0
}

// Next moves to the following track, wrapping at the end of the
// playlist. The skip is announced only while playing.
func (p *Player) Next() {
	if len(p.playlist) == 0 {
		return
	}
	p.current = (p.current + 1) % len(p.playlist)
	p.position = 0
	if p.state == StatePlaying {
		p.notifier.Notify("Skipped to: "+p.playlist[p.current].Title, alerts.LevelInfo)
	}
}

// Previous moves to the preceding track, wrapping at the start of the
// playlist. The skip is announced only while playing.
func (p *Player) Previous() {
	if len(p.playlist) == 0 {
		return
	}
	p.current = (p.current - 1 + len(p.playlist)) % len(p.playlist)
	p.position = 0
	if p.state == StatePlaying {
		p.notifier.Notify("Previous track: "+p.playlist[p.current].Title, alerts.LevelInfo)
	}
}

// SetVolume clamps the volume into [0, 100] and announces the new
// level.
func (p *Player) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.volume = percent
	p.notifier.Notify(fmt.Sprintf("Volume set to %d%%", p.volume), alerts.LevelInfo)
}

// Tick advances the playhead while playing, slipping quietly to the
// next track when the current one ends.
func (p *Player) Tick(seconds int) {
	if p.state != StatePlaying || len(p.playlist) == 0 || seconds <= 0 {
		return
	}
	p.position += seconds
	for p.playlist[p.current].Duration > 0 && p.position >= p.playlist[p.current].Duration {
		p.position -= p.playlist[p.current].Duration
		p.current = (p.current + 1) % len(p.playlist)
	}
}

// Volume returns the volume percentage.
func (p *Player) Volume() int { return p.volume }

// State returns the transport state.
func (p *Player) State() State { return p.state }

// Position returns how many seconds of the current track have played.
func (p *Player) Position() int { return p.position }

// TrackIndex returns the zero-based index of the current track.
func (p *Player) TrackIndex() int { return p.current }

// Len returns the number of tracks in the playlist.
func (p *Player) Len() int { return len(p.playlist) }

// CurrentTrack returns the track under the playhead, if any.
func (p *Player) CurrentTrack() (Track, bool) {
	if len(p.playlist) == 0 || p.current >= len(p.playlist) {
		return Track{}, false
	}
	return p.playlist[p.current], true
}

// Tracks returns a copy of the playlist in order.
func (p *Player) Tracks() []Track {
	out := make([]Track, len(p.playlist))
	copy(out, p.playlist)
	return out
}
