package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/followthru/followthru/internal/shared/infrastructure/database"
	"github.com/followthru/followthru/internal/shared/infrastructure/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))
	return db
}

func newTestHabit(t *testing.T) *domain.Habit {
	t.Helper()
	sched, err := domain.NewSchedule(2, 4, 6)
	require.NoError(t, err)
	kpi, err := domain.NewDurationKPI(30)
	require.NoError(t, err)

	habit, err := domain.NewHabit("Run", kpi, sched)
	require.NoError(t, err)
	habit.SetDescription("30 minutes, three times a week")
	habit.SetScheduledTime("07:00")
	return habit
}

func TestSQLiteHabitRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteHabitRepository(newTestDB(t))

	habit := newTestHabit(t)
	today := domain.DayOf(time.Now())
	v := 35.0
	_, err := habit.RecordOutcome(today, domain.Outcome{Value: &v, Note: "park loop"}, today)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, habit))

	found, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, habit.ID(), found.ID())
	assert.Equal(t, "Run", found.Name())
	assert.Equal(t, "30 minutes, three times a week", found.Description())
	assert.Equal(t, domain.KindDuration, found.KPI().Kind())
	assert.Equal(t, 30.0, found.KPI().Target())
	assert.Equal(t, []int{2, 4, 6}, found.Schedule().Days())
	assert.Equal(t, "07:00", found.ScheduledTime())

	require.Len(t, found.Logs(), 1)
	log := found.Logs()[0]
	assert.True(t, log.Completed())
	value, ok := log.Value()
	require.True(t, ok)
	assert.Equal(t, 35.0, value)
	assert.Equal(t, "park loop", log.Note())
	assert.True(t, log.Day().Equal(today))
}

func TestSQLiteHabitRepository_FindByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteHabitRepository(newTestDB(t))

	found, err := repo.FindByID(ctx, newTestHabit(t).ID())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteHabitRepository_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteHabitRepository(newTestDB(t))

	habit := newTestHabit(t)
	require.NoError(t, repo.Save(ctx, habit))

	require.NoError(t, habit.Rename("Morning run"))
	today := domain.DayOf(time.Now())
	v := 40.0
	_, err := habit.RecordOutcome(today, domain.Outcome{Value: &v}, today)
	require.NoError(t, err)

	// Re-recording the same day must update the row, not add one.
	v2 := 20.0
	_, err = habit.RecordOutcome(today, domain.Outcome{Value: &v2}, today)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, habit))

	found, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Morning run", found.Name())
	require.Len(t, found.Logs(), 1)
	assert.False(t, found.Logs()[0].Completed())
}

func TestSQLiteHabitRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteHabitRepository(newTestDB(t))

	first := newTestHabit(t)
	second, err := domain.NewHabit("Read", domain.NewCheckboxKPI(), domain.EveryDay())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	habits, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, habits, 2)
}

func TestSQLiteHabitRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSQLiteHabitRepository(db)

	habit := newTestHabit(t)
	today := domain.DayOf(time.Now())
	v := 30.0
	_, err := habit.RecordOutcome(today, domain.Outcome{Value: &v}, today)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, habit))

	require.NoError(t, repo.Delete(ctx, habit.ID()))

	found, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habit_logs WHERE habit_id = ?`, habit.ID().String()).Scan(&count))
	assert.Equal(t, 0, count, "logs must go with the habit")
}

func TestEncodeDecodeDays(t *testing.T) {
	assert.Equal(t, "", encodeDays(nil))
	assert.Equal(t, "2,4,6", encodeDays([]int{2, 4, 6}))

	days, err := decodeDays("2,4,6")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, days)

	days, err = decodeDays("")
	require.NoError(t, err)
	assert.Nil(t, days)

	_, err = decodeDays("2,x")
	assert.Error(t, err)
}
