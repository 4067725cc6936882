package domain

import (
	"time"

	sharedDomain "github.com/followthru/followthru/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Habit"

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	Name    string    `json:"name"`
	KPIKind string    `json:"kpi_kind"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h *Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habit.created"),
		HabitID:   h.ID(),
		Name:      h.Name(),
		KPIKind:   string(h.KPI().Kind()),
	}
}

// HabitUpdated is emitted when habit settings change.
type HabitUpdated struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	Name    string    `json:"name"`
}

// NewHabitUpdated creates a HabitUpdated event.
func NewHabitUpdated(h *Habit) *HabitUpdated {
	return &HabitUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habit.updated"),
		HabitID:   h.ID(),
		Name:      h.Name(),
	}
}

// HabitDeleted is emitted when a habit and its logs are removed.
type HabitDeleted struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
}

// NewHabitDeleted creates a HabitDeleted event.
func NewHabitDeleted(habitID uuid.UUID) *HabitDeleted {
	return &HabitDeleted{
		BaseEvent: sharedDomain.NewBaseEvent(habitID, aggregateType, "habit.deleted"),
		HabitID:   habitID,
	}
}

// HabitCompletionLogged is emitted when a day's outcome is recorded or
// replaced.
type HabitCompletionLogged struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	LogID     uuid.UUID `json:"log_id"`
	Day       time.Time `json:"day"`
	Completed bool      `json:"completed"`
	Streak    int       `json:"streak"`
}

// NewHabitCompletionLogged creates a HabitCompletionLogged event.
func NewHabitCompletionLogged(h *Habit, log *HabitLog) *HabitCompletionLogged {
	return &HabitCompletionLogged{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habit.completion_logged"),
		HabitID:   h.ID(),
		LogID:     log.ID(),
		Day:       log.Day(),
		Completed: log.Completed(),
		Streak:    h.Streak(),
	}
}
