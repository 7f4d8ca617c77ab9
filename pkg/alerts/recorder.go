package alerts

import (
	"sync"
	"time"
)

// Recorder is a Notifier that captures notifications in memory. Tests
// across the dashboard packages use it to assert on subsystem alerts.
type Recorder struct {
	mu      sync.Mutex
	entries []Notification
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Notifier.
func (r *Recorder) Notify(message string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Notification{
		Message: message,
		Level:   level,
		At:      time.Now(),
	})
}

// Entries returns everything recorded so far in arrival order.
func (r *Recorder) Entries() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns just the recorded message strings in arrival order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.entries))
	for i, n := range r.entries {
		out[i] = n.Message
	}
	return out
}

// Count returns how many notifications have been recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CountByLevel returns how many recorded notifications carry the given
// level.
func (r *Recorder) CountByLevel(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// HasCritical reports whether any recorded notification is critical.
func (r *Recorder) HasCritical() bool {
	return r.CountByLevel(LevelCritical) > 0
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return Notification{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
