package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/followthru/followthru/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("habit name cannot be empty")
	ErrValueRequired = errors.New("a numeric value is required for this habit")
	ErrFutureDate    = errors.New("cannot record an outcome for a future date")
)

// Habit is a recurring activity the user wants to build. It owns its
// completion log and keeps the streak counter derived from it.
type Habit struct {
	sharedDomain.BaseAggregateRoot
	name          string
	description   string
	kpi           KPI
	schedule      Schedule
	scheduledTime string // optional "HH:MM" display hint
	streak        int
	logs          []*HabitLog
}

// NewHabit creates a new habit.
func NewHabit(name string, kpi KPI, schedule Schedule) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	habit := &Habit{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		kpi:               kpi,
		schedule:          schedule,
		logs:              make([]*HabitLog, 0),
	}

	habit.AddDomainEvent(NewHabitCreated(habit))

	return habit, nil
}

// Getters
func (h *Habit) Name() string          { return h.name }
func (h *Habit) Description() string   { return h.description }
func (h *Habit) KPI() KPI              { return h.kpi }
func (h *Habit) Schedule() Schedule    { return h.schedule }
func (h *Habit) ScheduledTime() string { return h.scheduledTime }
func (h *Habit) Streak() int           { return h.streak }
func (h *Habit) Logs() []*HabitLog     { return h.logs }

// Rename updates the habit name.
func (h *Habit) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	h.name = name
	h.Touch()
	return nil
}

// SetDescription updates the description.
func (h *Habit) SetDescription(desc string) {
	h.description = strings.TrimSpace(desc)
	h.Touch()
}

// SetKPI updates the measurement mode.
func (h *Habit) SetKPI(kpi KPI) {
	h.kpi = kpi
	h.Touch()
}

// SetSchedule updates the scheduled weekdays. The streak depends on
// which days count, so callers should RefreshStreak afterwards.
func (h *Habit) SetSchedule(s Schedule) {
	h.schedule = s
	h.Touch()
}

// SetScheduledTime updates the display-only time-of-day hint.
// It never affects completion or status logic.
func (h *Habit) SetScheduledTime(hhmm string) {
	h.scheduledTime = strings.TrimSpace(hhmm)
	h.Touch()
}

// IsScheduledOn reports whether the habit is expected on the given date.
func (h *Habit) IsScheduledOn(date time.Time) bool {
	return h.schedule.IsScheduledOn(date)
}

// LogFor returns the log recorded for the given calendar day, or nil.
func (h *Habit) LogFor(day time.Time) *HabitLog {
	day = DayOf(day)
	for _, l := range h.logs {
		if l.day.Equal(day) {
			return l
		}
	}
	return nil
}

// Outcome is what a completion attempt carries: an optional measured
// value, an optional note, and the explicit-skip flag.
type Outcome struct {
	Value *float64
	Note  string
	Skip  bool
}

// RecordOutcome upserts the log for the given day and recomputes the
// streak from the full log history.
//
// The effective completed flag follows the KPI: a checkbox habit is
// complete unless skipped; a value-based habit is complete when the
// value meets the target. Value-based habits require a value unless the
// day is explicitly skipped.
func (h *Habit) RecordOutcome(day time.Time, out Outcome, today time.Time) (*HabitLog, error) {
	day = DayOf(day)
	today = DayOf(today)
	if day.After(today) {
		return nil, ErrFutureDate
	}

	completed := false
	switch {
	case out.Skip:
		completed = false
	case h.kpi.RequiresValue():
		if out.Value == nil {
			return nil, ErrValueRequired
		}
		completed = h.kpi.MeetsTarget(*out.Value)
	default:
		completed = true
	}

	log := h.LogFor(day)
	if log != nil {
		// Same-day re-record replaces the outcome, keeping the log id.
		log.completed = completed
		log.value = out.Value
		log.note = out.Note
	} else {
		log = &HabitLog{
			id:        uuid.New(),
			habitID:   h.ID(),
			day:       day,
			completed: completed,
			value:     out.Value,
			note:      out.Note,
		}
		h.logs = append(h.logs, log)
	}

	h.streak = h.computeStreak(today)
	h.Touch()

	h.AddDomainEvent(NewHabitCompletionLogged(h, log))

	return log, nil
}

// RefreshStreak recomputes the derived streak counter. Needed after
// schedule edits, which change which days count toward the run.
func (h *Habit) RefreshStreak(today time.Time) {
	h.streak = h.computeStreak(DayOf(today))
}

// computeStreak walks scheduled days backward from today and counts the
// trailing run of completed ones. Today is only part of the run once it
// has a log; an unlogged today is pending, not missed, so the walk
// starts at the previous scheduled day instead.
func (h *Habit) computeStreak(today time.Time) int {
	day := today
	for !h.schedule.IsScheduledOn(day) {
		day = day.AddDate(0, 0, -1)
	}
	if day.Equal(today) && h.LogFor(day) == nil {
		day = h.prevScheduled(day)
	}

	streak := 0
	for {
		log := h.LogFor(day)
		if log == nil || !log.completed {
			break
		}
		streak++
		day = h.prevScheduled(day)
	}
	return streak
}

// prevScheduled returns the scheduled day strictly before the given one.
func (h *Habit) prevScheduled(day time.Time) time.Time {
	day = day.AddDate(0, 0, -1)
	for !h.schedule.IsScheduledOn(day) {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// RehydrateHabit recreates a habit from persisted state without
// generating events. The streak is recomputed from the logs rather than
// trusted from storage; the stored value is only a display cache.
func RehydrateHabit(
	id uuid.UUID,
	name string,
	description string,
	kpi KPI,
	schedule Schedule,
	scheduledTime string,
	createdAt time.Time,
	updatedAt time.Time,
	logs []*HabitLog,
) *Habit {
	h := &Habit{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		name:          name,
		description:   description,
		kpi:           kpi,
		schedule:      schedule,
		scheduledTime: scheduledTime,
		logs:          logs,
	}
	h.streak = h.computeStreak(DayOf(time.Now()))
	return h
}
