// Package persistence provides the habit repository implementations:
// in-memory for tests, SQLite for local mode, PostgreSQL when a server
// database is configured.
package persistence

import (
	"context"
	"sync"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/google/uuid"
)

// MemoryHabitRepository is an in-memory habit repository. Habits are
// cloned on the way in and out so callers never share aggregate state
// with the store.
type MemoryHabitRepository struct {
	mu     sync.RWMutex
	habits map[uuid.UUID]*domain.Habit
}

// NewMemoryHabitRepository creates an empty in-memory repository.
func NewMemoryHabitRepository() *MemoryHabitRepository {
	return &MemoryHabitRepository{habits: make(map[uuid.UUID]*domain.Habit)}
}

// Save stores a snapshot of the habit.
func (r *MemoryHabitRepository) Save(_ context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.habits[habit.ID()] = cloneHabit(habit)
	return nil
}

// FindByID returns a snapshot of the habit, or nil, nil when absent.
func (r *MemoryHabitRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	habit, ok := r.habits[id]
	if !ok {
		return nil, nil
	}
	return cloneHabit(habit), nil
}

// FindAll returns snapshots of every habit.
func (r *MemoryHabitRepository) FindAll(_ context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Habit, 0, len(r.habits))
	for _, habit := range r.habits {
		out = append(out, cloneHabit(habit))
	}
	return out, nil
}

// Delete removes the habit and its logs.
func (r *MemoryHabitRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.habits, id)
	return nil
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	logs := make([]*domain.HabitLog, len(h.Logs()))
	for i, l := range h.Logs() {
		var value *float64
		if v, ok := l.Value(); ok {
			vCopy := v
			value = &vCopy
		}
		logs[i] = domain.RehydrateHabitLog(l.ID(), l.HabitID(), l.Day(), l.Completed(), value, l.Note())
	}
	return domain.RehydrateHabit(
		h.ID(),
		h.Name(),
		h.Description(),
		h.KPI(),
		h.Schedule(),
		h.ScheduledTime(),
		h.CreatedAt(),
		h.UpdatedAt(),
		logs,
	)
}
