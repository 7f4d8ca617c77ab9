package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARNING", LevelWarning.String())
	assert.Equal(t, "CRITICAL", LevelCritical.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestCenterRecordsNotifications(t *testing.T) {
	center, err := NewCenter()
	require.NoError(t, err)

	center.Notify("Low fuel warning: 12.0% remaining", LevelWarning)
	center.Notify("Destination reached!", LevelInfo)

	notifications := center.Notifications()
	require.Len(t, notifications, 2)
	assert.Equal(t, "Low fuel warning: 12.0% remaining", notifications[0].Message)
	assert.Equal(t, LevelWarning, notifications[0].Level)
	assert.NotEmpty(t, notifications[0].ID)
	assert.False(t, notifications[0].At.IsZero())
}

func TestCenterCounts(t *testing.T) {
	center, err := NewCenter()
	require.NoError(t, err)

	center.Notify("a", LevelInfo)
	center.Notify("b", LevelWarning)
	center.Notify("c", LevelCritical)
	center.Notify("d", LevelCritical)

	assert.Equal(t, 4, center.Count())
	assert.Equal(t, 1, center.CountByLevel(LevelInfo))
	assert.Equal(t, 1, center.CountByLevel(LevelWarning))
	assert.Equal(t, 2, center.CountByLevel(LevelCritical))
	assert.True(t, center.HasCritical())

	center.Clear()
	assert.Equal(t, 0, center.Count())
	assert.False(t, center.HasCritical())
}

func TestCenterSanitizesControlCharacters(t *testing.T) {
	center, err := NewCenter()
	require.NoError(t, err)

	center.Notify("beep\x07 and\ttab\nnewline\x1b[0m", LevelInfo)

	notifications := center.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, "beep and\ttab\nnewline[0m", notifications[0].Message)
}

func TestCenterSubscribe(t *testing.T) {
	center, err := NewCenter()
	require.NoError(t, err)

	var received []Notification
	center.Subscribe("test-subscriber", func(n Notification) {
		received = append(received, n)
	})

	center.Notify("GPS signal lost!", LevelCritical)

	require.Len(t, received, 1)
	assert.Equal(t, "GPS signal lost!", received[0].Message)
	assert.Equal(t, LevelCritical, received[0].Level)

	center.Unsubscribe("test-subscriber")
	center.Notify("GPS signal restored", LevelInfo)
	assert.Len(t, received, 1)
}

func TestCenterSoundToggle(t *testing.T) {
	center, err := NewCenter()
	require.NoError(t, err)

	assert.True(t, center.SoundEnabled())
	center.SetSoundEnabled(false)
	assert.False(t, center.SoundEnabled())
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()

	_, ok := rec.Last()
	assert.False(t, ok)

	rec.Notify("first", LevelInfo)
	rec.Notify("second", LevelCritical)

	assert.Equal(t, []string{"first", "second"}, rec.Messages())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last.Message)
	assert.Equal(t, LevelCritical, last.Level)

	rec.Reset()
	assert.Empty(t, rec.Entries())
}
