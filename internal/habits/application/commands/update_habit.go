package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/followthru/followthru/internal/habits/domain"
	sharedApplication "github.com/followthru/followthru/internal/shared/application"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// UpdateHabitCommand contains the fields to change on a habit. Nil
// pointers leave the current value untouched.
type UpdateHabitCommand struct {
	HabitID       uuid.UUID
	Name          *string
	Description   *string
	KPIKind       *string
	Target        *float64
	ScheduledDays *[]int
	ScheduledTime *string
}

// UpdateHabitResult contains the result of updating a habit.
type UpdateHabitResult struct {
	HabitID uuid.UUID
	Streak  int
}

// UpdateHabitHandler handles the UpdateHabitCommand.
type UpdateHabitHandler struct {
	habitRepo domain.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewUpdateHabitHandler creates a new UpdateHabitHandler.
func NewUpdateHabitHandler(habitRepo domain.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *UpdateHabitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateHabitHandler{
		habitRepo: habitRepo,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the UpdateHabitCommand.
func (h *UpdateHabitHandler) Handle(ctx context.Context, cmd UpdateHabitCommand) (*UpdateHabitResult, error) {
	var habit *domain.Habit

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		habit, err = h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return ErrHabitNotFound
		}

		if cmd.Name != nil {
			if err := habit.Rename(*cmd.Name); err != nil {
				return err
			}
		}
		if cmd.Description != nil {
			habit.SetDescription(*cmd.Description)
		}
		if cmd.KPIKind != nil || cmd.Target != nil {
			kind := habit.KPI().Kind()
			if cmd.KPIKind != nil {
				kind = domain.KPIKind(*cmd.KPIKind)
			}
			target := habit.KPI().Target()
			if cmd.Target != nil {
				target = *cmd.Target
			}
			kpi, err := domain.NewKPI(kind, target)
			if err != nil {
				return err
			}
			habit.SetKPI(kpi)
		}
		if cmd.ScheduledDays != nil {
			schedule, err := domain.NewSchedule(*cmd.ScheduledDays...)
			if err != nil {
				return err
			}
			habit.SetSchedule(schedule)
			// Which days count changed, so the run must be rechecked.
			habit.RefreshStreak(time.Now())
		}
		if cmd.ScheduledTime != nil {
			habit.SetScheduledTime(*cmd.ScheduledTime)
		}

		habit.AddDomainEvent(domain.NewHabitUpdated(habit))

		return h.habitRepo.Save(txCtx, habit)
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, habit.DomainEvents())
	habit.ClearDomainEvents()

	return &UpdateHabitResult{HabitID: habit.ID(), Streak: habit.Streak()}, nil
}
