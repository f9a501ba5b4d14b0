package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shift 09:00-17:00, the reference window used throughout.
var window = Window{
	Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local),
	End:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.Local),
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.Local)
}

func TestEvaluatePunchIn(t *testing.T) {
	tests := []struct {
		name        string
		punchTime   time.Time
		valid       bool
		status      Status
		minutesLate int
		early       int
		graceUsed   bool
	}{
		{"early arrival is never penalized", at(8, 30), true, StatusOnTime, 0, 30, false},
		{"exactly at shift start", at(9, 0), true, StatusOnTime, 0, 0, false},
		{"one minute in is still on time", at(9, 1), true, StatusOnTime, 1, 0, true},
		{"grace period boundary is inclusive", at(9, 20), true, StatusOnTime, 20, 0, true},
		{"one minute past grace is late", at(9, 21), true, StatusLate, 21, 0, false},
		{"well past grace", at(9, 35), true, StatusLate, 35, 0, false},
		{"last minute of the shift", at(17, 0), true, StatusLate, 480, 0, false},
		{"after shift end is rejected", at(17, 5), false, StatusAbsent, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluatePunchIn(window, tt.punchTime)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.minutesLate, res.MinutesLate)
			assert.Equal(t, tt.early, res.MinutesEarly)
			assert.Equal(t, tt.graceUsed, res.GracePeriodUsed)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestEvaluatePunchInGraceScenario(t *testing.T) {
	// Punch-in at 09:15 on a 09:00 shift: on time through grace, lateness
	// recorded for information only.
	res := EvaluatePunchIn(window, at(9, 15))
	require.True(t, res.Valid)
	assert.Equal(t, StatusOnTime, res.Status)
	assert.True(t, res.GracePeriodUsed)
	assert.Equal(t, 15, res.MinutesLate)
}

func TestEvaluatePunchOut(t *testing.T) {
	punchIn := at(9, 0)

	tests := []struct {
		name     string
		punchOut time.Time
		valid    bool
		status   Status
		early    int
		overtime int
	}{
		{"twenty minutes early is flagged", at(16, 40), true, StatusEarlyDeparture, 20, 0},
		{"ten minutes early is tolerated", at(16, 50), true, StatusOnTime, 10, 0},
		{"tolerance boundary is not flagged", at(16, 45), true, StatusOnTime, 15, 0},
		{"exactly at shift end", at(17, 0), true, StatusOvertime, 0, 0},
		{"thirty minutes of overtime", at(17, 30), true, StatusOvertime, 0, 30},
		{"before punch-in is invalid", at(8, 0), false, StatusOnTime, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluatePunchOut(window, tt.punchOut, punchIn)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.early, res.MinutesEarly)
			assert.Equal(t, tt.overtime, res.OvertimeMinutes)
		})
	}
}

func TestGracePeriodInfo(t *testing.T) {
	start := at(9, 0)

	t.Run("before shift start", func(t *testing.T) {
		info := GracePeriodInfo(start, at(8, 50))
		assert.False(t, info.WithinGracePeriod)
		assert.Equal(t, at(9, 20), info.GracePeriodEnd)
	})

	t.Run("inside the grace window", func(t *testing.T) {
		info := GracePeriodInfo(start, at(9, 5))
		assert.True(t, info.WithinGracePeriod)
		assert.Equal(t, 15, info.MinutesRemaining)
	})

	t.Run("expired floors to zero", func(t *testing.T) {
		info := GracePeriodInfo(start, at(10, 0))
		assert.False(t, info.WithinGracePeriod)
		assert.Zero(t, info.MinutesRemaining)
	})
}
