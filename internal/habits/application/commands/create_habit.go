package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/followthru/followthru/internal/habits/domain"
	sharedApplication "github.com/followthru/followthru/internal/shared/application"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

var ErrHabitNotFound = errors.New("habit not found")

// CreateHabitCommand contains the data needed to create a habit.
type CreateHabitCommand struct {
	Name          string
	Description   string
	KPIKind       string
	Target        float64
	ScheduledDays []int
	ScheduledTime string
}

// CreateHabitResult contains the result of creating a habit.
type CreateHabitResult struct {
	HabitID uuid.UUID
}

// CreateHabitHandler handles the CreateHabitCommand.
type CreateHabitHandler struct {
	habitRepo domain.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCreateHabitHandler creates a new CreateHabitHandler.
func NewCreateHabitHandler(habitRepo domain.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *CreateHabitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateHabitHandler{
		habitRepo: habitRepo,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the CreateHabitCommand.
func (h *CreateHabitHandler) Handle(ctx context.Context, cmd CreateHabitCommand) (*CreateHabitResult, error) {
	kpi, err := domain.NewKPI(domain.KPIKind(cmd.KPIKind), cmd.Target)
	if err != nil {
		return nil, err
	}

	schedule, err := domain.NewSchedule(cmd.ScheduledDays...)
	if err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(cmd.Name, kpi, schedule)
	if err != nil {
		return nil, err
	}
	habit.SetDescription(cmd.Description)
	habit.SetScheduledTime(cmd.ScheduledTime)

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.habitRepo.Save(txCtx, habit)
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, habit.DomainEvents())
	habit.ClearDomainEvents()

	return &CreateHabitResult{HabitID: habit.ID()}, nil
}
