// Package alerts implements the notification center shared by every
// dashboard subsystem. Subsystems report through the Notifier
// interface; the Center stores the history, writes the structured log
// trail and fans each notification out on an in-process bus for live
// consumers such as the dashboard view.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mustafaturan/bus/v3"
	"github.com/mustafaturan/monoton/v2"
	"github.com/mustafaturan/monoton/v2/sequencer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Topic is the bus topic every notification is published on.
const Topic = "alerts.notified"

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelCritical
)

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Notifier receives subsystem notifications.
type Notifier interface {
	Notify(message string, level Level)
}

// Nop is a Notifier that discards everything.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string, Level) {}

// Notification is a single recorded alert.
type Notification struct {
	ID      string
	Message string
	Level   Level
	At      time.Time
}

// Center stores notifications and distributes them to subscribers.
type Center struct {
	mu            sync.RWMutex
	notifications []Notification
	soundEnabled  bool

	bus    *bus.Bus
	logger zerolog.Logger
}

// NewCenter returns a notification center with sound alerts enabled.
func NewCenter() (*Center, error) {
	// The bus wants a monotonic id generator; node and initial time
	// only matter when ids are produced on multiple machines.
	m, err := monoton.New(sequencer.NewMillisecond(), 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	var next bus.Next = m.Next
	b, err := bus.NewBus(next)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert bus: %w", err)
	}
	b.RegisterTopics(Topic)

	return &Center{
		soundEnabled: true,
		bus:          b,
		logger:       log.With().Str("module", "alerts").Logger(),
	}, nil
}

// Notify records a message at the given level, logs it and publishes
// it on the bus. Control characters other than tab and newline are
// stripped from the message.
func (c *Center) Notify(message string, level Level) {
	n := Notification{
		ID:      uuid.NewString(),
		Message: sanitize(message),
		Level:   level,
		At:      time.Now(),
	}

	c.mu.Lock()
	c.notifications = append(c.notifications, n)
	c.mu.Unlock()

	c.logEvent(level).Str("alert_id", n.ID).Msg(n.Message)

	if err := c.bus.Emit(context.Background(), Topic, n); err != nil {
		c.logger.Warn().Err(err).Msg("failed to publish alert")
	}
}

// Subscribe registers fn to run for every notification published after
// the call. The key identifies the subscriber and must be unique.
func (c *Center) Subscribe(key string, fn func(Notification)) {
	c.bus.RegisterHandler(key, bus.Handler{
		Matcher: Topic,
		Handle: func(_ context.Context, e bus.Event) {
			if n, ok := e.Data.(Notification); ok {
				fn(n)
			}
		},
	})
}

// Unsubscribe removes a subscriber registered with Subscribe.
func (c *Center) Unsubscribe(key string) {
	c.bus.DeregisterHandler(key)
}

// Notifications returns a snapshot of all recorded notifications in
// arrival order.
func (c *Center) Notifications() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Count returns the total number of recorded notifications.
func (c *Center) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notifications)
}

// CountByLevel returns the number of recorded notifications at level.
func (c *Center) CountByLevel(level Level) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, n := range c.notifications {
		if n.Level == level {
			count++
		}
	}
	return count
}

// HasCritical reports whether any critical notification is on record.
func (c *Center) HasCritical() bool {
	return c.CountByLevel(LevelCritical) > 0
}

// Clear discards all recorded notifications.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
}

// SetSoundEnabled toggles audible alerts for critical notifications.
func (c *Center) SetSoundEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.soundEnabled = enabled
}

// SoundEnabled reports whether audible alerts are on.
func (c *Center) SoundEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.soundEnabled
}

func (c *Center) logEvent(level Level) *zerolog.Event {
	switch level {
	case LevelCritical:
		return c.logger.Error()
	case LevelWarning:
		return c.logger.Warn()
	default:
		return c.logger.Info()
	}
}

func sanitize(message string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' {
			return -1
		}
		return r
	}, message)
}
