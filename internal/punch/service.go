// Package punch orchestrates punch attempts: it resolves the officer's
// location and shift, runs the geofence and compliance engines, and writes
// exactly one append-only record per accepted punch.
package punch

import (
	"context"
	"fmt"
	"log"
	"time"

	"station-attendance-backend/internal/compliance"
	"station-attendance-backend/internal/geofence"
	"station-attendance-backend/internal/model"
)

const dayFormat = "2006-01-02"

// LocationProvider yields the officer's current position. It may fail or
// time out; a failure aborts the punch before anything is written.
type LocationProvider interface {
	CurrentPosition(ctx context.Context) (geofence.Point, error)
}

// ShiftWindow is a resolved shift for a concrete date.
type ShiftWindow struct {
	ShiftID uint
	Name    string
	Window  compliance.Window
}

// ShiftStore resolves assignments into concrete windows.
type ShiftStore interface {
	// CurrentWindow returns the window containing the instant, nil when the
	// officer has no shift in force. Overlapping windows resolve to the
	// earliest start.
	CurrentWindow(ctx context.Context, officerID uint, at time.Time) (*ShiftWindow, error)
	// UpcomingWindow returns the next window starting strictly after the
	// instant, nil when none is scheduled.
	UpcomingWindow(ctx context.Context, officerID uint, at time.Time) (*ShiftWindow, error)
	// WindowForShift resolves a specific shift on a "2006-01-02" date, nil
	// when the shift no longer exists.
	WindowForShift(ctx context.Context, shiftID uint, date string) (*ShiftWindow, error)
}

// GeofenceStore yields the active zones for a station.
type GeofenceStore interface {
	ActiveZones(ctx context.Context, stationID uint) ([]geofence.Zone, error)
}

// AttendanceStore persists punch events. Insert returns only after the write
// is durable, so a re-queried state always sees the new record.
type AttendanceStore interface {
	Insert(ctx context.Context, event *model.PunchEvent) error
	LastOfDay(ctx context.Context, officerID uint, day string) (*model.PunchEvent, error)
}

// ViolationStore persists boundary violation facts.
type ViolationStore interface {
	Insert(ctx context.Context, v *model.BoundaryViolation) error
}

// Alerter is notified after a violation is recorded. Implementations must not
// block the punch flow on failure.
type Alerter interface {
	ViolationRecorded(v *model.BoundaryViolation)
}

type Service struct {
	geofences  GeofenceStore
	shifts     ShiftStore
	attendance AttendanceStore
	violations ViolationStore
	alerter    Alerter
	now        func() time.Time
}

// NewService wires the orchestrator. alerter may be nil.
func NewService(geofences GeofenceStore, shifts ShiftStore, attendance AttendanceStore, violations ViolationStore, alerter Alerter) *Service {
	return &Service{
		geofences:  geofences,
		shifts:     shifts,
		attendance: attendance,
		violations: violations,
		alerter:    alerter,
		now:        time.Now,
	}
}

// RecordPunch runs the whole punch flow for one attempt. On success it
// returns the persisted event and the compliance result (nil when no shift
// was in force). On any rejection nothing is written.
func (s *Service) RecordPunch(ctx context.Context, officerID, stationID uint, kind string, loc LocationProvider) (*model.PunchEvent, *compliance.Result, error) {
	point, err := loc.CurrentPosition(ctx)
	if err != nil {
		return nil, nil, reject(ErrLocationUnavailable, "Could not determine your current location. Please try again.")
	}

	now := s.now()
	day := now.Format(dayFormat)

	// Toggle invariant: one outstanding punch-in at a time.
	openIn, err := s.checkToggle(ctx, officerID, kind, now, day)
	if err != nil {
		return nil, nil, err
	}

	window, err := s.resolveWindow(ctx, officerID, kind, now, day, openIn)
	if err != nil {
		return nil, nil, err
	}

	zones, err := s.geofences.ActiveZones(ctx, stationID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load geofences: %v", ErrStoreUnavailable, err)
	}
	geoResult := geofence.Validate(point, zones)

	var compResult *compliance.Result
	if window != nil {
		var res compliance.Result
		if kind == model.PunchKindIn {
			res = compliance.EvaluatePunchIn(window.Window, now)
			if !res.Valid {
				return nil, nil, reject(ErrShiftEnded, res.Message)
			}
		} else {
			res = compliance.EvaluatePunchOut(window.Window, now, openIn.PunchedAt)
			if !res.Valid {
				return nil, nil, reject(ErrInvalidPunchOrder, res.Message)
			}
		}
		compResult = &res
	} else if kind == model.PunchKindIn {
		return nil, nil, reject(ErrNoActiveShift, "No shift assigned right now. Contact your administrator.")
	}
	// A punch-out without a shift proceeds without compliance fields.

	event := s.buildEvent(officerID, kind, now, day, point, geoResult, window, compResult)
	if err := s.attendance.Insert(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("%w: save punch: %v", ErrStoreUnavailable, err)
	}

	// Observational only: an out-of-bounds punch during an open shift leaves
	// a violation fact but never blocks the punch itself.
	if !geoResult.Inside && window != nil {
		s.recordViolation(ctx, officerID, point, geoResult, zones, window)
	}

	return event, compResult, nil
}

// checkToggle enforces the per-day in/out alternation and, for a punch-out,
// returns the open punch-in record. A shift that started yesterday can still
// be punched out today.
func (s *Service) checkToggle(ctx context.Context, officerID uint, kind string, now time.Time, day string) (*model.PunchEvent, error) {
	last, err := s.attendance.LastOfDay(ctx, officerID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: read punch log: %v", ErrStoreUnavailable, err)
	}

	if kind == model.PunchKindIn {
		if last != nil && last.Kind == model.PunchKindIn {
			return nil, reject(ErrAlreadyPunchedIn, "You are already punched in.")
		}
		return nil, nil
	}

	if last != nil && last.Kind == model.PunchKindIn {
		return last, nil
	}
	if last == nil {
		yesterday := now.AddDate(0, 0, -1).Format(dayFormat)
		prev, err := s.attendance.LastOfDay(ctx, officerID, yesterday)
		if err != nil {
			return nil, fmt.Errorf("%w: read punch log: %v", ErrStoreUnavailable, err)
		}
		if prev != nil && prev.Kind == model.PunchKindIn {
			return prev, nil
		}
	}
	return nil, reject(ErrNotPunchedIn, "You have not punched in yet.")
}

// resolveWindow picks the shift window a punch is judged against. A punch-out
// is judged against the shift of its open punch-in, so an overtime punch-out
// after shift end still classifies. A punch-in before the window opens counts
// toward the next window of the same day (early arrival).
func (s *Service) resolveWindow(ctx context.Context, officerID uint, kind string, now time.Time, day string, openIn *model.PunchEvent) (*ShiftWindow, error) {
	if kind == model.PunchKindOut && openIn != nil && openIn.ShiftID != nil {
		window, err := s.shifts.WindowForShift(ctx, *openIn.ShiftID, openIn.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: resolve shift: %v", ErrStoreUnavailable, err)
		}
		if window != nil {
			return window, nil
		}
	}

	window, err := s.shifts.CurrentWindow(ctx, officerID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve shift: %v", ErrStoreUnavailable, err)
	}
	if window != nil || kind != model.PunchKindIn {
		return window, nil
	}

	upcoming, err := s.shifts.UpcomingWindow(ctx, officerID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve shift: %v", ErrStoreUnavailable, err)
	}
	if upcoming != nil && upcoming.Window.Start.Format(dayFormat) == day {
		return upcoming, nil
	}
	return nil, nil
}

func (s *Service) buildEvent(officerID uint, kind string, now time.Time, day string, point geofence.Point, geoResult geofence.Result, window *ShiftWindow, compResult *compliance.Result) *model.PunchEvent {
	event := &model.PunchEvent{
		OfficerID:      officerID,
		Kind:           kind,
		PunchedAt:      now,
		Day:            day,
		Latitude:       &point.Latitude,
		Longitude:      &point.Longitude,
		WithinGeofence: geoResult.Inside,
		DistanceMeter:  geoResult.DistanceToNearest,
	}
	if geoResult.Matched != nil {
		id := geoResult.Matched.ID
		event.GeofenceID = &id
	}
	if window != nil {
		id := window.ShiftID
		event.ShiftID = &id
	}
	if compResult != nil {
		event.Status = string(compResult.Status)
		event.MinutesLate = compResult.MinutesLate
		event.MinutesEarly = compResult.MinutesEarly
		event.OvertimeMinutes = compResult.OvertimeMinutes
		event.GracePeriodUsed = compResult.GracePeriodUsed
	}
	return event
}

// TrackLocation is the background polling entry point: it validates a
// reported position and records a violation when the officer is outside every
// active zone during an open shift. The returned violation is nil when the
// position is compliant or no shift is in force.
func (s *Service) TrackLocation(ctx context.Context, officerID, stationID uint, point geofence.Point) (geofence.Result, *model.BoundaryViolation, error) {
	zones, err := s.geofences.ActiveZones(ctx, stationID)
	if err != nil {
		return geofence.Result{}, nil, fmt.Errorf("%w: load geofences: %v", ErrStoreUnavailable, err)
	}
	result := geofence.Validate(point, zones)
	if result.Inside {
		return result, nil, nil
	}

	window, err := s.shifts.CurrentWindow(ctx, officerID, s.now())
	if err != nil {
		return geofence.Result{}, nil, fmt.Errorf("%w: resolve shift: %v", ErrStoreUnavailable, err)
	}
	if window == nil {
		return result, nil, nil
	}

	v := s.buildViolation(officerID, point, result, zones, window)
	if err := s.violations.Insert(ctx, v); err != nil {
		return geofence.Result{}, nil, fmt.Errorf("%w: save violation: %v", ErrStoreUnavailable, err)
	}
	if s.alerter != nil {
		s.alerter.ViolationRecorded(v)
	}
	return result, v, nil
}

// recordViolation is the best-effort variant used from the punch flow: the
// punch has already been accepted, so a failed violation write is only logged.
func (s *Service) recordViolation(ctx context.Context, officerID uint, point geofence.Point, result geofence.Result, zones []geofence.Zone, window *ShiftWindow) {
	v := s.buildViolation(officerID, point, result, zones, window)
	if err := s.violations.Insert(ctx, v); err != nil {
		log.Printf("punch: record boundary violation for officer %d: %v", officerID, err)
		return
	}
	if s.alerter != nil {
		s.alerter.ViolationRecorded(v)
	}
}

func (s *Service) buildViolation(officerID uint, point geofence.Point, result geofence.Result, zones []geofence.Zone, window *ShiftWindow) *model.BoundaryViolation {
	v := &model.BoundaryViolation{
		OfficerID:     officerID,
		Latitude:      point.Latitude,
		Longitude:     point.Longitude,
		DistanceMeter: result.DistanceToNearest,
	}
	if window != nil {
		id := window.ShiftID
		v.ShiftID = &id
	}
	if nearest := nearestZone(point, zones); nearest != nil {
		id := nearest.ID
		v.GeofenceID = &id
	}
	return v
}

func nearestZone(p geofence.Point, zones []geofence.Zone) *geofence.Zone {
	var best *geofence.Zone
	bestDist := 0.0
	for i := range zones {
		d := geofence.NearestOf(p, zones[i:i+1])
		if d == nil {
			continue
		}
		if best == nil || *d < bestDist {
			best = &zones[i]
			bestDist = *d
		}
	}
	return best
}
