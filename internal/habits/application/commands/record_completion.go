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

// RecordCompletionCommand contains the data needed to record a day's
// outcome for a habit. Day defaults to today when zero.
type RecordCompletionCommand struct {
	HabitID uuid.UUID
	Day     time.Time
	Value   *float64
	Note    string
	Skip    bool
}

// RecordCompletionResult contains the result of recording an outcome.
type RecordCompletionResult struct {
	LogID     uuid.UUID
	Completed bool
	Streak    int
	TotalDone int
}

// RecordCompletionHandler handles the RecordCompletionCommand.
type RecordCompletionHandler struct {
	habitRepo domain.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewRecordCompletionHandler creates a new RecordCompletionHandler.
func NewRecordCompletionHandler(habitRepo domain.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *RecordCompletionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordCompletionHandler{
		habitRepo: habitRepo,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the RecordCompletionCommand. Recording twice for the
// same day replaces the earlier outcome instead of adding a second log.
func (h *RecordCompletionHandler) Handle(ctx context.Context, cmd RecordCompletionCommand) (*RecordCompletionResult, error) {
	today := time.Now()
	day := cmd.Day
	if day.IsZero() {
		day = today
	}

	var (
		habit *domain.Habit
		log   *domain.HabitLog
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		habit, err = h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return ErrHabitNotFound
		}

		log, err = habit.RecordOutcome(day, domain.Outcome{
			Value: cmd.Value,
			Note:  cmd.Note,
			Skip:  cmd.Skip,
		}, today)
		if err != nil {
			return err
		}

		return h.habitRepo.Save(txCtx, habit)
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, habit.DomainEvents())
	habit.ClearDomainEvents()

	return &RecordCompletionResult{
		LogID:     log.ID(),
		Completed: log.Completed(),
		Streak:    habit.Streak(),
		TotalDone: habit.TotalCompletions(),
	}, nil
}
