package domain

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidWeekday is returned for weekday codes outside 1..7.
var ErrInvalidWeekday = errors.New("weekday code must be between 1 (Sunday) and 7 (Saturday)")

// Schedule is the set of weekdays a habit is expected on, encoded
// 1=Sunday through 7=Saturday. The empty set means every day.
type Schedule struct {
	days map[int]struct{}
}

// EveryDay returns the schedule covering all days.
func EveryDay() Schedule {
	return Schedule{}
}

// NewSchedule creates a schedule from weekday codes. Duplicates are
// collapsed; an empty argument list yields the every-day schedule.
func NewSchedule(days ...int) (Schedule, error) {
	if len(days) == 0 {
		return EveryDay(), nil
	}
	set := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return Schedule{}, ErrInvalidWeekday
		}
		set[d] = struct{}{}
	}
	if len(set) == 7 {
		// All seven days selected is the same as no restriction.
		return EveryDay(), nil
	}
	return Schedule{days: set}, nil
}

// IsEveryDay reports whether the schedule has no weekday restriction.
func (s Schedule) IsEveryDay() bool { return len(s.days) == 0 }

// Days returns the scheduled weekday codes in ascending order.
// Empty for an every-day schedule.
func (s Schedule) Days() []int {
	out := make([]int, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// IsScheduledOn reports whether the given date falls on a scheduled
// weekday. Total over all dates, no error conditions.
func (s Schedule) IsScheduledOn(date time.Time) bool {
	if s.IsEveryDay() {
		return true
	}
	_, ok := s.days[WeekdayCode(date)]
	return ok
}

// WeekdayCode maps a time to the 1=Sunday..7=Saturday encoding.
func WeekdayCode(t time.Time) int {
	return int(t.Weekday()) + 1
}
