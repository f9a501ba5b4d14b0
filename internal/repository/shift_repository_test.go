package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-attendance-backend/internal/model"
)

func TestWindowFor(t *testing.T) {
	t.Run("day shift", func(t *testing.T) {
		shift := &model.Shift{Name: "Day", StartTime: "09:00", EndTime: "17:00"}
		w, err := windowFor(shift, "2026-03-02")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local), w.Start)
		assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.Local), w.End)
	})

	t.Run("overnight shift rolls the end to the next day", func(t *testing.T) {
		shift := &model.Shift{Name: "Night", StartTime: "22:00", EndTime: "06:00"}
		w, err := windowFor(shift, "2026-03-01")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 1, 22, 0, 0, 0, time.Local), w.Start)
		assert.Equal(t, time.Date(2026, 3, 2, 6, 0, 0, 0, time.Local), w.End)
	})

	t.Run("end equal to start rolls as well", func(t *testing.T) {
		shift := &model.Shift{Name: "Full", StartTime: "08:00", EndTime: "08:00"}
		w, err := windowFor(shift, "2026-03-02")
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, w.End.Sub(w.Start))
	})

	t.Run("malformed clock is rejected", func(t *testing.T) {
		shift := &model.Shift{Name: "Bad", StartTime: "25:99", EndTime: "17:00"}
		_, err := windowFor(shift, "2026-03-02")
		assert.Error(t, err)
	})
}

func TestValidateShiftTimes(t *testing.T) {
	assert.NoError(t, validateShiftTimes(&model.Shift{StartTime: "00:00", EndTime: "23:59"}))
	assert.Error(t, validateShiftTimes(&model.Shift{StartTime: "9am", EndTime: "17:00"}))
	assert.Error(t, validateShiftTimes(&model.Shift{StartTime: "09:00", EndTime: ""}))
}
