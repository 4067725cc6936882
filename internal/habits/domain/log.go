package domain

import (
	"time"

	"github.com/google/uuid"
)

// HabitLog is the authoritative outcome of one habit on one calendar
// day. A habit holds at most one log per day; re-recording the same day
// replaces the previous outcome in place.
type HabitLog struct {
	id        uuid.UUID
	habitID   uuid.UUID
	day       time.Time
	completed bool
	value     *float64
	note      string
}

// RehydrateHabitLog recreates a log from persisted state.
func RehydrateHabitLog(id, habitID uuid.UUID, day time.Time, completed bool, value *float64, note string) *HabitLog {
	return &HabitLog{
		id:        id,
		habitID:   habitID,
		day:       DayOf(day),
		completed: completed,
		value:     value,
		note:      note,
	}
}

func (l *HabitLog) ID() uuid.UUID      { return l.id }
func (l *HabitLog) HabitID() uuid.UUID { return l.habitID }

// Day returns the calendar day the outcome applies to, at midnight UTC.
func (l *HabitLog) Day() time.Time { return l.day }

// Completed reports the day's outcome.
func (l *HabitLog) Completed() bool { return l.completed }

// Value returns the recorded measurement, if any.
func (l *HabitLog) Value() (float64, bool) {
	if l.value == nil {
		return 0, false
	}
	return *l.value, true
}

// Note returns the free-text note attached to the outcome.
func (l *HabitLog) Note() string { return l.note }

// DayOf truncates a time to its calendar day at midnight UTC. All
// day-granularity comparisons in this package go through it.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
