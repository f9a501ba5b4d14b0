package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"station-attendance-backend/internal/model"
)

var ErrInvalidPeriod = errors.New("invalid month or year")

type PunchRepository interface {
	// Insert appends one event; punch rows are never updated afterwards.
	Insert(ctx context.Context, event *model.PunchEvent) error
	LastOfDay(ctx context.Context, officerID uint, day string) (*model.PunchEvent, error)
	GetHistory(ctx context.Context, officerID uint) ([]model.PunchEvent, error)
	GetByMonth(ctx context.Context, officerID uint, month, year string) ([]model.PunchEvent, error)
}

type punchRepository struct {
	db *gorm.DB
}

func NewPunchRepository(db *gorm.DB) PunchRepository {
	return &punchRepository{db}
}

func (r *punchRepository) Insert(ctx context.Context, event *model.PunchEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *punchRepository) LastOfDay(ctx context.Context, officerID uint, day string) (*model.PunchEvent, error) {
	var event model.PunchEvent
	// Find + Limit(1) so a missing row is not an error (and GORM stays quiet).
	err := r.db.WithContext(ctx).
		Where("officer_id = ? AND day = ?", officerID, day).
		Order("punched_at desc").
		Limit(1).
		Find(&event).Error
	if err != nil {
		return nil, err
	}
	if event.ID == 0 {
		return nil, nil
	}
	return &event, nil
}

func (r *punchRepository) GetHistory(ctx context.Context, officerID uint) ([]model.PunchEvent, error) {
	var history []model.PunchEvent
	err := r.db.WithContext(ctx).
		Where("officer_id = ?", officerID).
		Order("punched_at desc").
		Find(&history).Error
	return history, err
}

func (r *punchRepository) GetByMonth(ctx context.Context, officerID uint, month, year string) ([]model.PunchEvent, error) {
	prefix, err := monthPrefix(month, year)
	if err != nil {
		return nil, err
	}

	var events []model.PunchEvent
	err = r.db.WithContext(ctx).
		Where("officer_id = ? AND day LIKE ?", officerID, prefix+"%").
		Order("punched_at asc").
		Find(&events).Error
	return events, err
}

// monthPrefix builds the zero-padded "YYYY-MM-" day prefix. Day values are
// stored padded ("2026-01-05"), so an unpadded month like "1" must not reach
// the LIKE pattern: "2026-1%" would match October through December instead of
// January.
func monthPrefix(month, year string) (string, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", fmt.Errorf("%w: month %q", ErrInvalidPeriod, month)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return "", fmt.Errorf("%w: year %q", ErrInvalidPeriod, year)
	}
	return fmt.Sprintf("%04d-%02d-", y, m), nil
}
