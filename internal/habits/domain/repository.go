package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for habit persistence. A habit is
// saved as a whole, logs included; deleting a habit cascades to its
// logs.
type Repository interface {
	// Save persists a habit (create or update) together with its logs.
	Save(ctx context.Context, habit *Habit) error

	// FindByID finds a habit by its ID. Returns nil, nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)

	// FindAll returns every habit, logs included.
	FindAll(ctx context.Context) ([]*Habit, error)

	// Delete removes a habit and all of its logs.
	Delete(ctx context.Context, id uuid.UUID) error
}
