package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/followthru/followthru/internal/habits/domain"
	sharedApplication "github.com/followthru/followthru/internal/shared/application"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// DeleteHabitCommand identifies the habit to delete.
type DeleteHabitCommand struct {
	HabitID uuid.UUID
}

// DeleteHabitHandler handles the DeleteHabitCommand.
type DeleteHabitHandler struct {
	habitRepo domain.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewDeleteHabitHandler creates a new DeleteHabitHandler.
func NewDeleteHabitHandler(habitRepo domain.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *DeleteHabitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteHabitHandler{
		habitRepo: habitRepo,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the DeleteHabitCommand. Deleting cascades to the
// habit's logs.
func (h *DeleteHabitHandler) Handle(ctx context.Context, cmd DeleteHabitCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return ErrHabitNotFound
		}
		return h.habitRepo.Delete(txCtx, cmd.HabitID)
	})
	if err != nil {
		return err
	}

	event := domain.NewHabitDeleted(cmd.HabitID)
	if payload, err := json.Marshal(event); err == nil {
		if err := h.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
			h.logger.Error("failed to publish habit deletion",
				"habit_id", cmd.HabitID,
				"error", err,
			)
		}
	}

	return nil
}
