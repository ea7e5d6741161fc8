package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myka/internal/scheduler"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{"Morning", "07:00", 7, 0, false},
		{"Midnight", "00:00", 0, 0, false},
		{"LastMinute", "23:59", 23, 59, false},
		{"LeadingSpace", " 10:30", 10, 30, false},
		{"MissingColon", "0700", 0, 0, true},
		{"HourOutOfRange", "24:00", 0, 0, true},
		{"MinuteOutOfRange", "12:60", 0, 0, true},
		{"Negative", "-1:30", 0, 0, true},
		{"NotANumber", "ab:cd", 0, 0, true},
		{"Empty", "", 0, 0, true},
		{"TooManyParts", "10:30:00", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := scheduler.ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, scheduler.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestNextFire(t *testing.T) {
	// Fixed reference point: 2024-03-15 09:30:00 local
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	t.Run("LaterToday", func(t *testing.T) {
		next, err := scheduler.NextFire(now, "14:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC), next)
	})

	t.Run("AlreadyPassedFallsOnTomorrow", func(t *testing.T) {
		next, err := scheduler.NextFire(now, "07:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC), next)
	})

	t.Run("ExactlyNowFallsOnTomorrow", func(t *testing.T) {
		next, err := scheduler.NextFire(now, "09:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC), next)
	})

	t.Run("OneSecondAhead", func(t *testing.T) {
		justBefore := time.Date(2024, 3, 15, 9, 29, 59, 0, time.UTC)
		next, err := scheduler.NextFire(justBefore, "09:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), next)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := scheduler.NextFire(now, "25:00")
		assert.ErrorIs(t, err, scheduler.ErrInvalidTimeOfDay)
	})
}

func TestActionTarget(t *testing.T) {
	assert.Equal(t, "/weight", scheduler.ActionTarget("log-weight"))
	assert.Equal(t, "/meals", scheduler.ActionTarget("log-meal"))
	assert.Equal(t, "/water", scheduler.ActionTarget("drink-water"))
	assert.Equal(t, "/todos", scheduler.ActionTarget("view-todos"))
	assert.Equal(t, "/routine", scheduler.ActionTarget("snooze"))
	assert.Equal(t, "/routine", scheduler.ActionTarget("something-else"))
}
