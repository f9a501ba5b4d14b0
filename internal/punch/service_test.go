package punch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-attendance-backend/internal/compliance"
	"station-attendance-backend/internal/geofence"
	"station-attendance-backend/internal/model"
)

var testCenter = geofence.Point{Latitude: 12.9716, Longitude: 77.5946}

type fakeLocation struct {
	point geofence.Point
	err   error
}

func (f fakeLocation) CurrentPosition(context.Context) (geofence.Point, error) {
	return f.point, f.err
}

type fakeShiftStore struct {
	current  *ShiftWindow
	upcoming *ShiftWindow
	err      error
}

func (f *fakeShiftStore) CurrentWindow(context.Context, uint, time.Time) (*ShiftWindow, error) {
	return f.current, f.err
}

func (f *fakeShiftStore) UpcomingWindow(context.Context, uint, time.Time) (*ShiftWindow, error) {
	return f.upcoming, f.err
}

func (f *fakeShiftStore) WindowForShift(_ context.Context, shiftID uint, _ string) (*ShiftWindow, error) {
	for _, w := range []*ShiftWindow{f.current, f.upcoming} {
		if w != nil && w.ShiftID == shiftID {
			return w, f.err
		}
	}
	return nil, f.err
}

type fakeGeofenceStore struct {
	zones []geofence.Zone
	err   error
}

func (f *fakeGeofenceStore) ActiveZones(context.Context, uint) ([]geofence.Zone, error) {
	return f.zones, f.err
}

type fakeAttendanceStore struct {
	events    []*model.PunchEvent
	insertErr error
}

func (f *fakeAttendanceStore) Insert(_ context.Context, event *model.PunchEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAttendanceStore) LastOfDay(_ context.Context, officerID uint, day string) (*model.PunchEvent, error) {
	var last *model.PunchEvent
	for _, e := range f.events {
		if e.OfficerID == officerID && e.Day == day {
			if last == nil || e.PunchedAt.After(last.PunchedAt) {
				last = e
			}
		}
	}
	return last, nil
}

type fakeViolationStore struct {
	violations []*model.BoundaryViolation
	err        error
}

func (f *fakeViolationStore) Insert(_ context.Context, v *model.BoundaryViolation) error {
	if f.err != nil {
		return f.err
	}
	f.violations = append(f.violations, v)
	return nil
}

type fixture struct {
	service    *Service
	shifts     *fakeShiftStore
	geofences  *fakeGeofenceStore
	attendance *fakeAttendanceStore
	violations *fakeViolationStore
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		shifts:     &fakeShiftStore{},
		geofences:  &fakeGeofenceStore{},
		attendance: &fakeAttendanceStore{},
		violations: &fakeViolationStore{},
		now:        time.Date(2026, 3, 2, 9, 15, 0, 0, time.Local),
	}
	f.service = NewService(f.geofences, f.shifts, f.attendance, f.violations, nil)
	f.service.now = func() time.Time { return f.now }

	// Shift 09:00-17:00 and a 500 m fence around the station.
	f.shifts.current = &ShiftWindow{
		ShiftID: 7,
		Name:    "Day",
		Window: compliance.Window{
			Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local),
			End:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.Local),
		},
	}
	f.geofences.zones = []geofence.Zone{{
		ID:     3,
		Name:   "HQ",
		Circle: &geofence.Circle{Center: testCenter, RadiusMeters: 500},
	}}
	return f
}

func TestRecordPunchInWithinGrace(t *testing.T) {
	f := newFixture(t)

	event, result, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, compliance.StatusOnTime, result.Status)
	assert.True(t, result.GracePeriodUsed)
	assert.Equal(t, 15, result.MinutesLate)

	require.Len(t, f.attendance.events, 1)
	assert.Equal(t, model.PunchKindIn, event.Kind)
	assert.True(t, event.WithinGeofence)
	require.NotNil(t, event.GeofenceID)
	assert.Equal(t, uint(3), *event.GeofenceID)
	require.NotNil(t, event.ShiftID)
	assert.Equal(t, uint(7), *event.ShiftID)
	assert.Empty(t, f.violations.violations)
}

func TestRecordPunchInEarlyArrival(t *testing.T) {
	f := newFixture(t)
	// Before the window opens it is not "current" yet; the punch counts
	// toward the upcoming same-day shift.
	f.now = time.Date(2026, 3, 2, 8, 30, 0, 0, time.Local)
	f.shifts.upcoming = f.shifts.current
	f.shifts.current = nil

	event, result, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusOnTime, result.Status)
	assert.Equal(t, 30, result.MinutesEarly)
	require.NotNil(t, event.ShiftID)
	assert.Equal(t, uint(7), *event.ShiftID)
}

func TestRecordPunchInNextShiftTomorrowIsNotActive(t *testing.T) {
	f := newFixture(t)
	f.shifts.current = nil
	f.shifts.upcoming = &ShiftWindow{
		ShiftID: 8,
		Name:    "Day",
		Window: compliance.Window{
			Start: time.Date(2026, 3, 3, 9, 0, 0, 0, time.Local),
			End:   time.Date(2026, 3, 3, 17, 0, 0, 0, time.Local),
		},
	}

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	assert.ErrorIs(t, err, ErrNoActiveShift)
	assert.Empty(t, f.attendance.events)
}

func TestRecordPunchInLate(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2026, 3, 2, 9, 35, 0, 0, time.Local)

	_, result, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusLate, result.Status)
	assert.Equal(t, 35, result.MinutesLate)
}

func TestRecordPunchInAfterShiftEnd(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2026, 3, 2, 17, 5, 0, 0, time.Local)

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShiftEnded)
	// Terminal rejection: nothing was written.
	assert.Empty(t, f.attendance.events)

	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Shift has ended. Cannot punch in.", rejection.Message)
}

func TestRecordPunchInWithoutShift(t *testing.T) {
	f := newFixture(t)
	f.shifts.current = nil

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	assert.ErrorIs(t, err, ErrNoActiveShift)
	assert.Empty(t, f.attendance.events)
}

func TestRecordPunchLocationUnavailable(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{err: errors.New("gps timeout")})
	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.Empty(t, f.attendance.events)
}

func TestRecordPunchDoubleInRejected(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.NoError(t, err)

	f.now = f.now.Add(10 * time.Minute)
	_, _, err = f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	assert.ErrorIs(t, err, ErrAlreadyPunchedIn)
	assert.Len(t, f.attendance.events, 1)
}

func TestRecordPunchOutWithoutInRejected(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindOut, fakeLocation{point: testCenter})
	assert.ErrorIs(t, err, ErrNotPunchedIn)
	assert.Empty(t, f.attendance.events)
}

func TestRecordPunchOutOvertime(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.NoError(t, err)

	f.now = time.Date(2026, 3, 2, 17, 30, 0, 0, time.Local)
	event, result, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindOut, fakeLocation{point: testCenter})
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusOvertime, result.Status)
	assert.Equal(t, 30, result.OvertimeMinutes)
	assert.Equal(t, model.PunchKindOut, event.Kind)
	assert.Len(t, f.attendance.events, 2)
}

func TestRecordPunchOutEarlyDeparture(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	require.NoError(t, err)

	f.now = time.Date(2026, 3, 2, 16, 40, 0, 0, time.Local)
	_, result, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindOut, fakeLocation{point: testCenter})
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusEarlyDeparture, result.Status)
	assert.Equal(t, 20, result.MinutesEarly)
}

func TestRecordPunchOutForOvernightShift(t *testing.T) {
	f := newFixture(t)
	// Night shift that started yesterday 22:00 and ends today 06:00.
	f.now = time.Date(2026, 3, 2, 6, 10, 0, 0, time.Local)
	f.shifts.current = &ShiftWindow{
		ShiftID: 9,
		Name:    "Night",
		Window: compliance.Window{
			Start: time.Date(2026, 3, 1, 22, 0, 0, 0, time.Local),
			End:   time.Date(2026, 3, 2, 6, 0, 0, 0, time.Local),
		},
	}
	shiftID := uint(9)
	f.attendance.events = []*model.PunchEvent{{
		OfficerID: 1,
		Kind:      model.PunchKindIn,
		PunchedAt: time.Date(2026, 3, 1, 22, 0, 0, 0, time.Local),
		Day:       "2026-03-01",
		ShiftID:   &shiftID,
	}}

	_, result, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindOut, fakeLocation{point: testCenter})
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusOvertime, result.Status)
	assert.Equal(t, 10, result.OvertimeMinutes)
}

func TestRecordPunchOutsideGeofenceLeavesViolation(t *testing.T) {
	f := newFixture(t)
	away := geofence.Point{Latitude: 13.05, Longitude: 77.5946}

	event, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: away})
	require.NoError(t, err)

	// The punch itself is accepted.
	assert.False(t, event.WithinGeofence)
	require.NotNil(t, event.DistanceMeter)
	assert.Greater(t, *event.DistanceMeter, 500.0)

	require.Len(t, f.violations.violations, 1)
	v := f.violations.violations[0]
	assert.Equal(t, uint(1), v.OfficerID)
	require.NotNil(t, v.GeofenceID)
	assert.Equal(t, uint(3), *v.GeofenceID)
	require.NotNil(t, v.ShiftID)
	assert.Equal(t, uint(7), *v.ShiftID)
}

func TestRecordPunchViolationWriteFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.violations.err = errors.New("store down")
	away := geofence.Point{Latitude: 13.05, Longitude: 77.5946}

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: away})
	require.NoError(t, err)
	assert.Len(t, f.attendance.events, 1)
}

func TestRecordPunchStoreFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.attendance.insertErr = errors.New("connection reset")

	_, _, err := f.service.RecordPunch(context.Background(), 1, 1, model.PunchKindIn, fakeLocation{point: testCenter})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, f.attendance.events)
}

func TestTrackLocation(t *testing.T) {
	t.Run("inside records nothing", func(t *testing.T) {
		f := newFixture(t)
		result, v, err := f.service.TrackLocation(context.Background(), 1, 1, testCenter)
		require.NoError(t, err)
		assert.True(t, result.Inside)
		assert.Nil(t, v)
		assert.Empty(t, f.violations.violations)
	})

	t.Run("outside during open shift records a violation", func(t *testing.T) {
		f := newFixture(t)
		away := geofence.Point{Latitude: 13.05, Longitude: 77.5946}
		result, v, err := f.service.TrackLocation(context.Background(), 1, 1, away)
		require.NoError(t, err)
		assert.False(t, result.Inside)
		require.NotNil(t, v)
		assert.Len(t, f.violations.violations, 1)
	})

	t.Run("outside with no shift records nothing", func(t *testing.T) {
		f := newFixture(t)
		f.shifts.current = nil
		away := geofence.Point{Latitude: 13.05, Longitude: 77.5946}
		_, v, err := f.service.TrackLocation(context.Background(), 1, 1, away)
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.Empty(t, f.violations.violations)
	})
}
