// Package compliance classifies punch timestamps against an assigned shift
// window. All functions are pure; invalid punches are reported as data, never
// as errors.
package compliance

import (
	"fmt"
	"time"
)

const (
	// GracePeriodMinutes is the window after shift start during which a late
	// punch-in still counts as on time.
	GracePeriodMinutes = 20
	// EarlyDepartureToleranceMinutes is how early an officer may punch out
	// before the departure is flagged.
	EarlyDepartureToleranceMinutes = 15
)

type Status string

const (
	StatusOnTime         Status = "on_time"
	StatusLate           Status = "late"
	StatusAbsent         Status = "absent"
	StatusEarlyDeparture Status = "early_departure"
	StatusOvertime       Status = "overtime"
)

// Window is a concrete shift window. Start is always before End; overnight
// shifts are resolved to absolute instants before they reach this package.
type Window struct {
	Start time.Time
	End   time.Time
}

// Result carries the classification of one punch.
type Result struct {
	// Valid is false when the punch must be rejected (punch-in after shift
	// end, punch-out before punch-in). Callers treat Valid as authoritative;
	// Status is a placeholder on invalid results.
	Valid           bool
	Status          Status
	MinutesLate     int
	MinutesEarly    int
	OvertimeMinutes int
	GracePeriodUsed bool
	Message         string
}

// EvaluatePunchIn classifies a punch-in against the shift window.
func EvaluatePunchIn(w Window, punchTime time.Time) Result {
	grace := GracePeriodMinutes * time.Minute

	switch {
	case punchTime.Before(w.Start):
		early := minutes(w.Start.Sub(punchTime))
		return Result{
			Valid:        true,
			Status:       StatusOnTime,
			MinutesEarly: early,
			Message:      fmt.Sprintf("Punched in %d minutes before shift start.", early),
		}

	case punchTime.Equal(w.Start):
		return Result{Valid: true, Status: StatusOnTime, Message: "Punched in on time."}

	case !punchTime.After(w.Start.Add(grace)):
		late := minutes(punchTime.Sub(w.Start))
		return Result{
			Valid:           true,
			Status:          StatusOnTime,
			MinutesLate:     late,
			GracePeriodUsed: true,
			Message:         fmt.Sprintf("Punched in within the grace period (%d minutes after start).", late),
		}

	case !punchTime.After(w.End):
		late := minutes(punchTime.Sub(w.Start))
		return Result{
			Valid:       true,
			Status:      StatusLate,
			MinutesLate: late,
			Message:     fmt.Sprintf("Punched in %d minutes late.", late),
		}

	default:
		return Result{
			Valid:   false,
			Status:  StatusAbsent,
			Message: "Shift has ended. Cannot punch in.",
		}
	}
}

// EvaluatePunchOut classifies a punch-out. punchInTime is the timestamp of
// the matching punch-in.
func EvaluatePunchOut(w Window, punchTime, punchInTime time.Time) Result {
	if punchTime.Before(punchInTime) {
		// Programmer or data error, not a normal flow.
		return Result{
			Valid:   false,
			Status:  StatusOnTime,
			Message: "Punch-out cannot be earlier than punch-in.",
		}
	}

	if punchTime.Before(w.End) {
		early := minutes(w.End.Sub(punchTime))
		if early > EarlyDepartureToleranceMinutes {
			return Result{
				Valid:        true,
				Status:       StatusEarlyDeparture,
				MinutesEarly: early,
				Message:      fmt.Sprintf("Left %d minutes before shift end.", early),
			}
		}
		return Result{
			Valid:        true,
			Status:       StatusOnTime,
			MinutesEarly: early,
			Message:      "Punched out on time.",
		}
	}

	overtime := minutes(punchTime.Sub(w.End))
	return Result{
		Valid:           true,
		Status:          StatusOvertime,
		OvertimeMinutes: overtime,
		Message:         fmt.Sprintf("Punched out with %d minutes of overtime.", overtime),
	}
}

// GraceInfo feeds the UI countdown after shift start.
type GraceInfo struct {
	WithinGracePeriod bool      `json:"within_grace_period"`
	MinutesRemaining  int       `json:"minutes_remaining"`
	GracePeriodEnd    time.Time `json:"grace_period_end"`
}

// GracePeriodInfo reports where "now" sits relative to the grace window.
// MinutesRemaining floors to zero once the grace period has expired.
func GracePeriodInfo(shiftStart, now time.Time) GraceInfo {
	end := shiftStart.Add(GracePeriodMinutes * time.Minute)
	remaining := minutes(end.Sub(now))
	if remaining < 0 {
		remaining = 0
	}
	return GraceInfo{
		WithinGracePeriod: !now.Before(shiftStart) && !now.After(end),
		MinutesRemaining:  remaining,
		GracePeriodEnd:    end,
	}
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
