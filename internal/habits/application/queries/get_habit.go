package queries

import (
	"context"
	"time"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/google/uuid"
)

// LogDTO is a data transfer object for a single day's log.
type LogDTO struct {
	ID        uuid.UUID
	Day       time.Time
	Completed bool
	Value     *float64
	Note      string
}

// HabitDetailDTO extends HabitDTO with the full log history and
// lifetime statistics.
type HabitDetailDTO struct {
	HabitDTO
	CompletionRate int
	Logs           []LogDTO
}

// GetHabitQuery identifies the habit to fetch.
type GetHabitQuery struct {
	HabitID uuid.UUID
}

// GetHabitHandler handles the GetHabitQuery.
type GetHabitHandler struct {
	habitRepo domain.Repository
}

// NewGetHabitHandler creates a new GetHabitHandler.
func NewGetHabitHandler(habitRepo domain.Repository) *GetHabitHandler {
	return &GetHabitHandler{habitRepo: habitRepo}
}

// Handle executes the GetHabitQuery.
func (h *GetHabitHandler) Handle(ctx context.Context, query GetHabitQuery) (*HabitDetailDTO, error) {
	habit, err := h.habitRepo.FindByID(ctx, query.HabitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrHabitNotFound
	}

	logs := habit.Logs()
	logDTOs := make([]LogDTO, len(logs))
	for i, l := range logs {
		var value *float64
		if v, ok := l.Value(); ok {
			value = &v
		}
		logDTOs[i] = LogDTO{
			ID:        l.ID(),
			Day:       l.Day(),
			Completed: l.Completed(),
			Value:     value,
			Note:      l.Note(),
		}
	}

	return &HabitDetailDTO{
		HabitDTO:       toHabitDTO(habit, time.Now()),
		CompletionRate: domain.CompletionRate(logs),
		Logs:           logDTOs,
	}, nil
}
