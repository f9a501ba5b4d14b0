package punch

import (
	"context"
	"fmt"
	"time"

	"station-attendance-backend/internal/model"
)

// State is the derived punch toggle for one officer. It is recomputed from
// the append-only punch log on every read; no stored flag exists that could
// drift from the log.
type State struct {
	PunchedIn     bool       `json:"punched_in"`
	LastPunchTime *time.Time `json:"last_punch_time"`
}

// CurrentState derives the toggle from the latest punch of the current
// server-local calendar day. An `out` record, or no record at all, means
// punched out.
func (s *Service) CurrentState(ctx context.Context, officerID uint) (State, error) {
	day := s.now().Format(dayFormat)
	last, err := s.attendance.LastOfDay(ctx, officerID, day)
	if err != nil {
		return State{}, fmt.Errorf("%w: read punch log: %v", ErrStoreUnavailable, err)
	}
	if last == nil {
		return State{}, nil
	}
	t := last.PunchedAt
	return State{
		PunchedIn:     last.Kind == model.PunchKindIn,
		LastPunchTime: &t,
	}, nil
}
