package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/google/uuid"
)

var ErrHabitNotFound = errors.New("habit not found")

// HabitDTO is a data transfer object for habits.
type HabitDTO struct {
	ID             uuid.UUID
	Name           string
	Description    string
	KPIKind        string
	Target         float64
	ScheduledDays  []int
	ScheduledTime  string
	Streak         int
	TotalDone      int
	IsDueToday     bool
	CompletedToday bool
	CreatedAt      time.Time
}

// ListHabitsQuery contains the parameters for listing habits.
type ListHabitsQuery struct {
	OnlyDueToday bool
	SortBy       string // "streak", "name", "created_at"
	SortOrder    string // "asc", "desc"
}

// ListHabitsHandler handles the ListHabitsQuery.
type ListHabitsHandler struct {
	habitRepo domain.Repository
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(habitRepo domain.Repository) *ListHabitsHandler {
	return &ListHabitsHandler{habitRepo: habitRepo}
}

// Handle executes the ListHabitsQuery.
func (h *ListHabitsHandler) Handle(ctx context.Context, query ListHabitsQuery) ([]HabitDTO, error) {
	habits, err := h.habitRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	if query.OnlyDueToday {
		due := make([]*domain.Habit, 0, len(habits))
		for _, habit := range habits {
			if habit.IsScheduledOn(today) {
				due = append(due, habit)
			}
		}
		habits = due
	}

	sortHabits(habits, query.SortBy, query.SortOrder)

	return toHabitDTOs(habits, today), nil
}

func sortHabits(habits []*domain.Habit, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	desc := sortOrder == "desc"

	sort.SliceStable(habits, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "streak":
			less = habits[i].Streak() < habits[j].Streak()
		case "name":
			less = habits[i].Name() < habits[j].Name()
		default:
			less = habits[i].CreatedAt().Before(habits[j].CreatedAt())
		}
		if desc {
			return !less
		}
		return less
	})
}

func toHabitDTO(h *domain.Habit, today time.Time) HabitDTO {
	var completedToday bool
	if log := h.LogFor(today); log != nil {
		completedToday = log.Completed()
	}
	return HabitDTO{
		ID:             h.ID(),
		Name:           h.Name(),
		Description:    h.Description(),
		KPIKind:        string(h.KPI().Kind()),
		Target:         h.KPI().Target(),
		ScheduledDays:  h.Schedule().Days(),
		ScheduledTime:  h.ScheduledTime(),
		Streak:         h.Streak(),
		TotalDone:      h.TotalCompletions(),
		IsDueToday:     h.IsScheduledOn(today),
		CompletedToday: completedToday,
		CreatedAt:      h.CreatedAt(),
	}
}

func toHabitDTOs(habits []*domain.Habit, today time.Time) []HabitDTO {
	dtos := make([]HabitDTO, len(habits))
	for i, h := range habits {
		dtos[i] = toHabitDTO(h, today)
	}
	return dtos
}
