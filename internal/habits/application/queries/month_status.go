package queries

import (
	"context"
	"time"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/google/uuid"
)

// DayStatusDTO is one calendar cell: a day and its status.
type DayStatusDTO struct {
	Day    time.Time
	Status domain.DayStatus
}

// MonthStatusQuery asks for the per-day statuses of a calendar month.
// HabitID nil means the aggregate view across all habits.
type MonthStatusQuery struct {
	HabitID *uuid.UUID
	Year    int
	Month   time.Month
}

// MonthStatusHandler handles the MonthStatusQuery.
type MonthStatusHandler struct {
	habitRepo domain.Repository
}

// NewMonthStatusHandler creates a new MonthStatusHandler.
func NewMonthStatusHandler(habitRepo domain.Repository) *MonthStatusHandler {
	return &MonthStatusHandler{habitRepo: habitRepo}
}

// Handle executes the MonthStatusQuery, returning one entry per day of
// the month in order.
func (h *MonthStatusHandler) Handle(ctx context.Context, query MonthStatusQuery) ([]DayStatusDTO, error) {
	var (
		habit  *domain.Habit
		habits []*domain.Habit
		err    error
	)
	if query.HabitID != nil {
		habit, err = h.habitRepo.FindByID(ctx, *query.HabitID)
		if err != nil {
			return nil, err
		}
		if habit == nil {
			return nil, ErrHabitNotFound
		}
	} else {
		habits, err = h.habitRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	today := time.Now()
	first := time.Date(query.Year, query.Month, 1, 0, 0, 0, 0, time.UTC)

	out := make([]DayStatusDTO, 0, 31)
	for day := first; day.Month() == query.Month; day = day.AddDate(0, 0, 1) {
		var status domain.DayStatus
		if habit != nil {
			status = habit.StatusOn(day, today)
		} else {
			status = domain.GroupStatusOn(habits, day, today)
		}
		out = append(out, DayStatusDTO{Day: day, Status: status})
	}
	return out, nil
}
