package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/followthru/followthru/internal/habits/infrastructure/persistence"
	sharedPersistence "github.com/followthru/followthru/internal/shared/infrastructure/persistence"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
)

func newRecordHandler(repo domain.Repository) *RecordCompletionHandler {
	return NewRecordCompletionHandler(repo, sharedPersistence.NewNoopUnitOfWork(), eventbus.NewNoopPublisher(nil), nil)
}

func seedHabit(t *testing.T, repo domain.Repository, habit *domain.Habit) {
	t.Helper()
	habit.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), habit))
}

func TestRecordCompletionHandler_Checkbox(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)

	result, err := newRecordHandler(repo).Handle(ctx, RecordCompletionCommand{
		HabitID: habit.ID(),
		Note:    "two chapters",
	})

	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 1, result.TotalDone)

	stored, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	require.Len(t, stored.Logs(), 1)
	assert.Equal(t, "two chapters", stored.Logs()[0].Note())
}

func TestRecordCompletionHandler_SameDayReplaces(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)
	handler := newRecordHandler(repo)

	first, err := handler.Handle(ctx, RecordCompletionCommand{HabitID: habit.ID()})
	require.NoError(t, err)

	second, err := handler.Handle(ctx, RecordCompletionCommand{HabitID: habit.ID(), Skip: true})
	require.NoError(t, err)

	assert.Equal(t, first.LogID, second.LogID)
	assert.False(t, second.Completed)
	assert.Equal(t, 0, second.Streak)

	stored, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Len(t, stored.Logs(), 1)
}

func TestRecordCompletionHandler_ValueRequired(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	kpi, _ := domain.NewDurationKPI(30)
	habit, _ := domain.NewHabit("Run", kpi, domain.EveryDay())
	seedHabit(t, repo, habit)

	_, err := newRecordHandler(repo).Handle(ctx, RecordCompletionCommand{HabitID: habit.ID()})
	assert.ErrorIs(t, err, domain.ErrValueRequired)
}

func TestRecordCompletionHandler_FutureDate(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)

	_, err := newRecordHandler(repo).Handle(ctx, RecordCompletionCommand{
		HabitID: habit.ID(),
		Day:     time.Now().AddDate(0, 0, 2),
	})
	assert.ErrorIs(t, err, domain.ErrFutureDate)
}

func TestRecordCompletionHandler_HabitNotFound(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()

	_, err := newRecordHandler(repo).Handle(ctx, RecordCompletionCommand{HabitID: uuid.New()})
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestRecordCompletionHandler_Backfill(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)
	handler := newRecordHandler(repo)

	// Yesterday, then today: the run spans both.
	_, err := handler.Handle(ctx, RecordCompletionCommand{
		HabitID: habit.ID(),
		Day:     time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	result, err := handler.Handle(ctx, RecordCompletionCommand{HabitID: habit.ID()})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
}
