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
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
	sharedPersistence "github.com/followthru/followthru/internal/shared/infrastructure/persistence"
)

func strPtr(s string) *string      { return &s }
func daysPtr(d ...int) *[]int      { return &d }
func targetPtr(v float64) *float64 { return &v }

func newUpdateHandler(repo domain.Repository) *UpdateHabitHandler {
	return NewUpdateHabitHandler(repo, sharedPersistence.NewNoopUnitOfWork(), eventbus.NewNoopPublisher(nil), nil)
}

func TestUpdateHabitHandler_Rename(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)

	result, err := newUpdateHandler(repo).Handle(ctx, UpdateHabitCommand{
		HabitID: habit.ID(),
		Name:    strPtr("Read fiction"),
	})

	require.NoError(t, err)
	assert.Equal(t, habit.ID(), result.HabitID)

	stored, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Equal(t, "Read fiction", stored.Name())
}

func TestUpdateHabitHandler_ChangeKPI(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Run", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)

	_, err := newUpdateHandler(repo).Handle(ctx, UpdateHabitCommand{
		HabitID: habit.ID(),
		KPIKind: strPtr("duration"),
		Target:  targetPtr(30),
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.KindDuration, stored.KPI().Kind())
	assert.Equal(t, 30.0, stored.KPI().Target())
}

func TestUpdateHabitHandler_ScheduleChangeRefreshesStreak(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Gym", domain.NewCheckboxKPI(), domain.EveryDay())

	// A two-day run under the every-day schedule.
	today := time.Now()
	_, err := habit.RecordOutcome(today.AddDate(0, 0, -1), domain.Outcome{}, today)
	require.NoError(t, err)
	_, err = habit.RecordOutcome(today, domain.Outcome{}, today)
	require.NoError(t, err)
	seedHabit(t, repo, habit)

	// Restricting to a single far-off weekday drops today from the run.
	otherDay := domain.WeekdayCode(today.AddDate(0, 0, 3))
	result, err := newUpdateHandler(repo).Handle(ctx, UpdateHabitCommand{
		HabitID:       habit.ID(),
		ScheduledDays: daysPtr(otherDay),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Streak)
}

func TestUpdateHabitHandler_NotFound(t *testing.T) {
	ctx := context.Background()
	handler := newUpdateHandler(persistence.NewMemoryHabitRepository())

	_, err := handler.Handle(ctx, UpdateHabitCommand{HabitID: uuid.New(), Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestDeleteHabitHandler(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()
	habit, _ := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	seedHabit(t, repo, habit)

	handler := NewDeleteHabitHandler(repo, sharedPersistence.NewNoopUnitOfWork(), eventbus.NewNoopPublisher(nil), nil)
	require.NoError(t, handler.Handle(ctx, DeleteHabitCommand{HabitID: habit.ID()}))

	stored, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.ErrorIs(t, handler.Handle(ctx, DeleteHabitCommand{HabitID: habit.ID()}), ErrHabitNotFound)
}
