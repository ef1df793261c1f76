package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultReminderSettings(t *testing.T) {
	s := DefaultReminderSettings()
	assert.False(t, s.PushEnabled)
	assert.True(t, s.Recurring)
	assert.Equal(t, 3, s.DaysBefore)
	assert.Equal(t, "09:00", s.Time)
	assert.True(t, s.SoundEnabled)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	s := DefaultReminderSettings()

	for _, d := range ValidDaysBefore {
		s.DaysBefore = d
		assert.NoError(t, s.Validate())
	}

	s.DaysBefore = 4
	assert.Error(t, s.Validate())

	s.DaysBefore = 3
	s.Time = "25:00"
	assert.Error(t, s.Validate())
	s.Time = "0900"
	assert.Error(t, s.Validate())
}

func TestClock(t *testing.T) {
	s := ReminderSettings{Time: "20:30"}
	hour, minute, err := s.Clock()
	assert.NoError(t, err)
	assert.Equal(t, 20, hour)
	assert.Equal(t, 30, minute)
}
