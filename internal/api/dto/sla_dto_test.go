package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
)

func TestWorkingHoursFromPayload(t *testing.T) {
	t.Run("parses clock times and weekday names", func(t *testing.T) {
		hours, err := WorkingHoursFromPayload(WorkingHoursPayload{
			StartTime: "09:00",
			EndTime:   "18:00",
			WorkDays:  []string{"Monday", "Wednesday", "Friday"},
		})
		require.NoError(t, err)
		assert.Equal(t, 9*60, hours.StartMinute)
		assert.Equal(t, 18*60, hours.EndMinute)
		assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, hours.Days)
	})

	t.Run("rejects malformed clock", func(t *testing.T) {
		_, err := WorkingHoursFromPayload(WorkingHoursPayload{
			StartTime: "9am",
			EndTime:   "18:00",
			WorkDays:  []string{"Monday"},
		})
		assert.Error(t, err)
	})

	t.Run("rejects unknown weekday", func(t *testing.T) {
		_, err := WorkingHoursFromPayload(WorkingHoursPayload{
			StartTime: "09:00",
			EndTime:   "18:00",
			WorkDays:  []string{"Funday"},
		})
		assert.Error(t, err)
	})
}

func TestWorkingHoursToPayload(t *testing.T) {
	hours := domain.DefaultWorkingHours()
	payload := WorkingHoursToPayload(&hours)
	assert.Equal(t, "09:00", payload.StartTime)
	assert.Equal(t, "18:00", payload.EndTime)
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, payload.WorkDays)
	assert.Nil(t, payload.UpdatedAt)
}
