package domain

import "time"

// MonthlyLogs returns the habit's logs falling in the given month.
func (h *Habit) MonthlyLogs(year int, month time.Month) []*HabitLog {
	out := make([]*HabitLog, 0)
	for _, l := range h.logs {
		if l.day.Year() == year && l.day.Month() == month {
			out = append(out, l)
		}
	}
	return out
}

// TotalCompletions counts the habit's completed logs.
func (h *Habit) TotalCompletions() int {
	n := 0
	for _, l := range h.logs {
		if l.completed {
			n++
		}
	}
	return n
}

// CompletionRate returns completed logs over total logs as a
// percentage, truncated to an integer. 0 when there are no logs.
func CompletionRate(logs []*HabitLog) int {
	if len(logs) == 0 {
		return 0
	}
	completed := 0
	for _, l := range logs {
		if l.completed {
			completed++
		}
	}
	return completed * 100 / len(logs)
}

// BestStreak returns the highest current streak across habits,
// 0 for an empty set.
func BestStreak(habits []*Habit) int {
	best := 0
	for _, h := range habits {
		if h.streak > best {
			best = h.streak
		}
	}
	return best
}
