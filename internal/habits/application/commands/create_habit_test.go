package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/followthru/followthru/internal/habits/infrastructure/persistence"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
	sharedPersistence "github.com/followthru/followthru/internal/shared/infrastructure/persistence"
)

func newCreateHandler(repo domain.Repository) *CreateHabitHandler {
	return NewCreateHabitHandler(repo, sharedPersistence.NewNoopUnitOfWork(), eventbus.NewNoopPublisher(nil), nil)
}

func TestCreateHabitHandler(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()

	result, err := newCreateHandler(repo).Handle(ctx, CreateHabitCommand{
		Name:          "Run",
		Description:   "Morning run",
		KPIKind:       "duration",
		Target:        30,
		ScheduledDays: []int{2, 4, 6},
		ScheduledTime: "07:00",
	})

	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, result.HabitID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Run", stored.Name())
	assert.Equal(t, "Morning run", stored.Description())
	assert.Equal(t, domain.KindDuration, stored.KPI().Kind())
	assert.Equal(t, 30.0, stored.KPI().Target())
	assert.Equal(t, []int{2, 4, 6}, stored.Schedule().Days())
	assert.Equal(t, "07:00", stored.ScheduledTime())
}

func TestCreateHabitHandler_DefaultsToEveryDayCheckbox(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryHabitRepository()

	result, err := newCreateHandler(repo).Handle(ctx, CreateHabitCommand{
		Name:    "Meditate",
		KPIKind: "checkbox",
	})

	require.NoError(t, err)
	stored, err := repo.FindByID(ctx, result.HabitID)
	require.NoError(t, err)
	assert.True(t, stored.Schedule().IsEveryDay())
	assert.False(t, stored.KPI().RequiresValue())
}

func TestCreateHabitHandler_Invalid(t *testing.T) {
	ctx := context.Background()
	handler := newCreateHandler(persistence.NewMemoryHabitRepository())

	_, err := handler.Handle(ctx, CreateHabitCommand{Name: "", KPIKind: "checkbox"})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = handler.Handle(ctx, CreateHabitCommand{Name: "Run", KPIKind: "duration", Target: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = handler.Handle(ctx, CreateHabitCommand{Name: "Run", KPIKind: "checkbox", ScheduledDays: []int{9}})
	assert.ErrorIs(t, err, domain.ErrInvalidWeekday)
}
