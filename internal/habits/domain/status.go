package domain

import "time"

// DayStatus classifies a calendar day for a habit or a habit set.
type DayStatus string

const (
	StatusCompleted   DayStatus = "completed"
	StatusPartial     DayStatus = "partial"
	StatusMissed      DayStatus = "missed"
	StatusFuture      DayStatus = "future"
	StatusUnscheduled DayStatus = "unscheduled"
)

// StatusOn classifies a day for a single habit:
//
//  1. A day after today is Future regardless of logs.
//  2. A logged day takes its status from the log's outcome.
//  3. An unlogged past day is Unscheduled when the habit was not
//     expected, otherwise Missed.
func (h *Habit) StatusOn(date, today time.Time) DayStatus {
	date = DayOf(date)
	today = DayOf(today)

	if date.After(today) {
		return StatusFuture
	}

	if log := h.LogFor(date); log != nil {
		if log.Completed() {
			return StatusCompleted
		}
		return StatusMissed
	}

	if !h.IsScheduledOn(date) {
		return StatusUnscheduled
	}
	return StatusMissed
}

// GroupStatusOn classifies a day across a set of habits. A day with no
// scheduled habits is Unscheduled; otherwise the status reflects how
// many of the scheduled habits have a completed log: none is Missed,
// all is Completed, anything in between is Partial.
func GroupStatusOn(habits []*Habit, date, today time.Time) DayStatus {
	date = DayOf(date)
	today = DayOf(today)

	if date.After(today) {
		return StatusFuture
	}

	scheduled := make([]*Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsScheduledOn(date) {
			scheduled = append(scheduled, h)
		}
	}
	if len(scheduled) == 0 {
		return StatusUnscheduled
	}

	completed := 0
	for _, h := range scheduled {
		if log := h.LogFor(date); log != nil && log.Completed() {
			completed++
		}
	}

	switch {
	case completed == 0:
		return StatusMissed
	case completed == len(scheduled):
		return StatusCompleted
	default:
		return StatusPartial
	}
}
