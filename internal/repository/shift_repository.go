package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"station-attendance-backend/internal/compliance"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/punch"
)

var ErrShiftReferenced = errors.New("shift already referenced by punch records")

type ShiftRepository interface {
	GetAll(ctx context.Context, stationID uint) ([]model.Shift, error)
	GetByID(ctx context.Context, id uint) (*model.Shift, error)
	Create(ctx context.Context, shift *model.Shift) error
	// Update refuses to touch a shift that punches already reference, so
	// historical compliance never changes retroactively.
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id uint) error

	UpsertAssignment(ctx context.Context, a *model.ShiftAssignment) error
	GetAssignments(ctx context.Context, officerID uint, date string) ([]model.ShiftAssignment, error)

	// CurrentWindow / UpcomingWindow / WindowForShift satisfy punch.ShiftStore.
	CurrentWindow(ctx context.Context, officerID uint, at time.Time) (*punch.ShiftWindow, error)
	UpcomingWindow(ctx context.Context, officerID uint, at time.Time) (*punch.ShiftWindow, error)
	WindowForShift(ctx context.Context, shiftID uint, date string) (*punch.ShiftWindow, error)
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db}
}

func (r *shiftRepository) GetAll(ctx context.Context, stationID uint) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Where("station_id = ?", stationID).Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) GetByID(ctx context.Context, id uint) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).First(&shift, id).Error
	return &shift, err
}

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	if err := validateShiftTimes(shift); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	if err := validateShiftTimes(shift); err != nil {
		return err
	}
	referenced, err := r.punchCount(ctx, shift.ID)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return ErrShiftReferenced
	}
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepository) Delete(ctx context.Context, id uint) error {
	referenced, err := r.punchCount(ctx, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return ErrShiftReferenced
	}
	return r.db.WithContext(ctx).Delete(&model.Shift{}, id).Error
}

func (r *shiftRepository) punchCount(ctx context.Context, shiftID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PunchEvent{}).
		Where("shift_id = ?", shiftID).
		Count(&count).Error
	return count, err
}

func (r *shiftRepository) UpsertAssignment(ctx context.Context, a *model.ShiftAssignment) error {
	// One assignment per officer per date; a re-assignment replaces the old
	// shift and restores a soft-deleted row.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "officer_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"shift_id", "is_active", "updated_at", "deleted_at"}),
	}).Create(a).Error
}

func (r *shiftRepository) GetAssignments(ctx context.Context, officerID uint, date string) ([]model.ShiftAssignment, error) {
	var assignments []model.ShiftAssignment
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("officer_id = ? AND date = ? AND is_active = ?", officerID, date, true).
		Find(&assignments).Error
	return assignments, err
}

// CurrentWindow resolves the shift window containing the instant. Both
// today's and yesterday's assignments are considered, so an overnight shift
// that started yesterday is still "current" this morning. When windows
// overlap, the earliest start wins; ties break on the lower shift id.
func (r *shiftRepository) CurrentWindow(ctx context.Context, officerID uint, at time.Time) (*punch.ShiftWindow, error) {
	windows, err := r.windowsAround(ctx, officerID, at)
	if err != nil {
		return nil, err
	}

	var current *punch.ShiftWindow
	for i := range windows {
		w := &windows[i]
		if at.Before(w.Window.Start) || at.After(w.Window.End) {
			continue
		}
		if current == nil || w.Window.Start.Before(current.Window.Start) ||
			(w.Window.Start.Equal(current.Window.Start) && w.ShiftID < current.ShiftID) {
			current = w
		}
	}
	return current, nil
}

// UpcomingWindow returns the earliest window starting strictly after the
// instant, looking at today's and tomorrow's assignments.
func (r *shiftRepository) UpcomingWindow(ctx context.Context, officerID uint, at time.Time) (*punch.ShiftWindow, error) {
	today := at.Format("2006-01-02")
	tomorrow := at.AddDate(0, 0, 1).Format("2006-01-02")

	var windows []punch.ShiftWindow
	for _, date := range []string{today, tomorrow} {
		ws, err := r.windowsOn(ctx, officerID, date)
		if err != nil {
			return nil, err
		}
		windows = append(windows, ws...)
	}

	var next *punch.ShiftWindow
	for i := range windows {
		w := &windows[i]
		if !w.Window.Start.After(at) {
			continue
		}
		if next == nil || w.Window.Start.Before(next.Window.Start) ||
			(w.Window.Start.Equal(next.Window.Start) && w.ShiftID < next.ShiftID) {
			next = w
		}
	}
	return next, nil
}

// WindowForShift resolves one concrete shift on a date. Referenced shifts
// cannot be deleted or edited, so the window a punch-in was judged against is
// reproducible at punch-out time.
func (r *shiftRepository) WindowForShift(ctx context.Context, shiftID uint, date string) (*punch.ShiftWindow, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Where("id = ?", shiftID).Limit(1).Find(&shifts).Error
	if err != nil || len(shifts) == 0 {
		return nil, err
	}

	w, err := windowFor(&shifts[0], date)
	if err != nil {
		return nil, err
	}
	return &punch.ShiftWindow{ShiftID: shifts[0].ID, Name: shifts[0].Name, Window: w}, nil
}

func (r *shiftRepository) windowsAround(ctx context.Context, officerID uint, at time.Time) ([]punch.ShiftWindow, error) {
	today := at.Format("2006-01-02")
	yesterday := at.AddDate(0, 0, -1).Format("2006-01-02")

	var windows []punch.ShiftWindow
	for _, date := range []string{yesterday, today} {
		ws, err := r.windowsOn(ctx, officerID, date)
		if err != nil {
			return nil, err
		}
		windows = append(windows, ws...)
	}
	return windows, nil
}

func (r *shiftRepository) windowsOn(ctx context.Context, officerID uint, date string) ([]punch.ShiftWindow, error) {
	assignments, err := r.GetAssignments(ctx, officerID, date)
	if err != nil {
		return nil, err
	}

	var windows []punch.ShiftWindow
	for i := range assignments {
		w, err := windowFor(&assignments[i].Shift, date)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", assignments[i].ID, err)
		}
		windows = append(windows, punch.ShiftWindow{
			ShiftID: assignments[i].ShiftID,
			Name:    assignments[i].Shift.Name,
			Window:  w,
		})
	}
	return windows, nil
}

// windowFor turns a "HH:MM" shift on a date into absolute instants. An end
// time at or before the start rolls to the next day (overnight shift).
func windowFor(shift *model.Shift, date string) (compliance.Window, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return compliance.Window{}, err
	}
	start, err := atClock(day, shift.StartTime)
	if err != nil {
		return compliance.Window{}, fmt.Errorf("start time %q: %w", shift.StartTime, err)
	}
	end, err := atClock(day, shift.EndTime)
	if err != nil {
		return compliance.Window{}, fmt.Errorf("end time %q: %w", shift.EndTime, err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return compliance.Window{Start: start, End: end}, nil
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func validateShiftTimes(shift *model.Shift) error {
	if _, err := time.Parse("15:04", shift.StartTime); err != nil {
		return fmt.Errorf("invalid start time %q", shift.StartTime)
	}
	if _, err := time.Parse("15:04", shift.EndTime); err != nil {
		return fmt.Errorf("invalid end time %q", shift.EndTime)
	}
	return nil
}
