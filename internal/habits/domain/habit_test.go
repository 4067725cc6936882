package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// March 2026: the 1st is a Sunday, so weekday codes line up with the
// day of month for the first week (1=Sun .. 7=Sat).
func date(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func TestNewHabit(t *testing.T) {
	habit, err := NewHabit("Morning meditation", NewCheckboxKPI(), EveryDay())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, habit.ID())
	assert.Equal(t, "Morning meditation", habit.Name())
	assert.Equal(t, KindCheckbox, habit.KPI().Kind())
	assert.True(t, habit.Schedule().IsEveryDay())
	assert.Equal(t, 0, habit.Streak())
	assert.Empty(t, habit.Logs())
}

func TestNewHabit_EmitsEvent(t *testing.T) {
	habit, err := NewHabit("Exercise", NewCheckboxKPI(), EveryDay())

	require.NoError(t, err)
	events := habit.DomainEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(*HabitCreated)
	require.True(t, ok)
	assert.Equal(t, habit.ID(), created.HabitID)
	assert.Equal(t, "Exercise", created.Name)
	assert.Equal(t, "habit.created", created.RoutingKey())
}

func TestNewHabit_EmptyName(t *testing.T) {
	tests := []string{"", "   ", "\t\n"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewHabit(name, NewCheckboxKPI(), EveryDay())
			assert.ErrorIs(t, err, ErrEmptyName)
		})
	}
}

func TestHabit_Rename(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())

	require.NoError(t, habit.Rename("Read fiction"))
	assert.Equal(t, "Read fiction", habit.Name())

	assert.ErrorIs(t, habit.Rename("  "), ErrEmptyName)
}

func TestHabit_RecordOutcome_Checkbox(t *testing.T) {
	habit, _ := NewHabit("Stretch", NewCheckboxKPI(), EveryDay())
	habit.ClearDomainEvents()

	log, err := habit.RecordOutcome(date(10), Outcome{Note: "felt good"}, date(10))

	require.NoError(t, err)
	assert.True(t, log.Completed())
	assert.Equal(t, "felt good", log.Note())
	assert.Equal(t, habit.ID(), log.HabitID())
	assert.Equal(t, 1, habit.Streak())

	events := habit.DomainEvents()
	require.Len(t, events, 1)
	logged, ok := events[0].(*HabitCompletionLogged)
	require.True(t, ok)
	assert.Equal(t, 1, logged.Streak)
	assert.True(t, logged.Completed)
}

func TestHabit_RecordOutcome_FutureDate(t *testing.T) {
	habit, _ := NewHabit("Stretch", NewCheckboxKPI(), EveryDay())

	_, err := habit.RecordOutcome(date(11), Outcome{}, date(10))
	assert.ErrorIs(t, err, ErrFutureDate)
	assert.Empty(t, habit.Logs())
}

func TestHabit_RecordOutcome_ValueRequired(t *testing.T) {
	kpi, err := NewDurationKPI(30)
	require.NoError(t, err)
	habit, _ := NewHabit("Run", kpi, EveryDay())

	_, err = habit.RecordOutcome(date(10), Outcome{}, date(10))
	assert.ErrorIs(t, err, ErrValueRequired)
}

func TestHabit_RecordOutcome_ValueBelowTarget(t *testing.T) {
	kpi, _ := NewDurationKPI(30)
	habit, _ := NewHabit("Run", kpi, EveryDay())

	log, err := habit.RecordOutcome(date(10), Outcome{Value: floatPtr(20)}, date(10))

	require.NoError(t, err)
	assert.False(t, log.Completed(), "20 minutes does not meet a 30 minute target")
	v, ok := log.Value()
	require.True(t, ok)
	assert.Equal(t, 20.0, v)
	assert.Equal(t, StatusMissed, habit.StatusOn(date(10), date(10)))
	assert.Equal(t, 0, habit.Streak())
}

func TestHabit_RecordOutcome_ValueMeetsTarget(t *testing.T) {
	kpi, _ := NewCountKPI(8)
	habit, _ := NewHabit("Glasses of water", kpi, EveryDay())

	log, err := habit.RecordOutcome(date(10), Outcome{Value: floatPtr(9)}, date(10))

	require.NoError(t, err)
	assert.True(t, log.Completed())
	assert.Equal(t, 1, habit.Streak())
}

func TestHabit_RecordOutcome_ExplicitSkip(t *testing.T) {
	kpi, _ := NewDurationKPI(30)
	habit, _ := NewHabit("Run", kpi, EveryDay())

	// Skipping never requires a value, even for value-based KPIs.
	log, err := habit.RecordOutcome(date(10), Outcome{Skip: true}, date(10))

	require.NoError(t, err)
	assert.False(t, log.Completed())
	assert.Equal(t, 0, habit.Streak())
}

func TestHabit_RecordOutcome_SameDayUpserts(t *testing.T) {
	habit, _ := NewHabit("Stretch", NewCheckboxKPI(), EveryDay())

	first, err := habit.RecordOutcome(date(10), Outcome{}, date(10))
	require.NoError(t, err)

	second, err := habit.RecordOutcome(date(10), Outcome{Note: "again"}, date(10))
	require.NoError(t, err)

	require.Len(t, habit.Logs(), 1, "same-day re-record must not append")
	assert.Equal(t, first.ID(), second.ID(), "replacement keeps the log id")
	assert.Equal(t, "again", second.Note())
	assert.Equal(t, 1, habit.Streak(), "no double counting")
}

func TestHabit_RecordOutcome_SkipOverwritesCompletion(t *testing.T) {
	habit, _ := NewHabit("Stretch", NewCheckboxKPI(), EveryDay())

	_, err := habit.RecordOutcome(date(10), Outcome{}, date(10))
	require.NoError(t, err)
	assert.Equal(t, 1, habit.Streak())

	_, err = habit.RecordOutcome(date(10), Outcome{Skip: true}, date(10))
	require.NoError(t, err)
	assert.Equal(t, 0, habit.Streak(), "flipping today to skipped resets the streak")
}

func TestHabit_Streak_ConsecutiveDays(t *testing.T) {
	habit, _ := NewHabit("Exercise", NewCheckboxKPI(), EveryDay())

	for d := 8; d <= 11; d++ {
		_, err := habit.RecordOutcome(date(d), Outcome{}, date(11))
		require.NoError(t, err)
	}

	assert.Equal(t, 4, habit.Streak())
}

func TestHabit_Streak_GapBreaksRun(t *testing.T) {
	habit, _ := NewHabit("Exercise", NewCheckboxKPI(), EveryDay())

	_, _ = habit.RecordOutcome(date(8), Outcome{}, date(11))
	_, _ = habit.RecordOutcome(date(10), Outcome{}, date(11))
	_, _ = habit.RecordOutcome(date(11), Outcome{}, date(11))

	// Day 9 has no log, so the run only reaches back to day 10.
	assert.Equal(t, 2, habit.Streak())
}

func TestHabit_Streak_RetroactiveSkipBreaksRun(t *testing.T) {
	habit, _ := NewHabit("Exercise", NewCheckboxKPI(), EveryDay())

	for d := 8; d <= 11; d++ {
		_, _ = habit.RecordOutcome(date(d), Outcome{}, date(11))
	}
	require.Equal(t, 4, habit.Streak())

	// Retroactively flipping day 10 to skipped must shrink the streak
	// to the run after the break, not leave the counter drifting.
	_, err := habit.RecordOutcome(date(10), Outcome{Skip: true}, date(11))
	require.NoError(t, err)
	assert.Equal(t, 1, habit.Streak())
}

func TestHabit_Streak_SkipsUnscheduledDays(t *testing.T) {
	// Mon/Wed/Fri: codes 2, 4, 6.
	sched, err := NewSchedule(2, 4, 6)
	require.NoError(t, err)
	habit, _ := NewHabit("Gym", NewCheckboxKPI(), sched)

	// Mon 2nd, Wed 4th, Fri 6th completed; today is Sat 7th.
	for _, d := range []int{2, 4, 6} {
		_, err := habit.RecordOutcome(date(d), Outcome{}, date(7))
		require.NoError(t, err)
	}

	// The intervening Tue/Thu/Sat don't count and don't break the run.
	assert.Equal(t, 3, habit.Streak())
}

func TestHabit_Streak_PendingTodayDoesNotBreak(t *testing.T) {
	habit, _ := NewHabit("Exercise", NewCheckboxKPI(), EveryDay())

	_, _ = habit.RecordOutcome(date(9), Outcome{}, date(10))
	_, _ = habit.RecordOutcome(date(10), Outcome{}, date(10))

	// Today (the 11th) has no log yet; the streak holds until the day
	// is actually missed.
	habit.RefreshStreak(date(11))
	assert.Equal(t, 2, habit.Streak())
}

func TestHabit_RefreshStreak_AfterScheduleChange(t *testing.T) {
	habit, _ := NewHabit("Gym", NewCheckboxKPI(), EveryDay())

	_, _ = habit.RecordOutcome(date(9), Outcome{}, date(10))
	_, _ = habit.RecordOutcome(date(10), Outcome{}, date(10))
	require.Equal(t, 2, habit.Streak())

	// Restrict to Mon/Wed/Fri; the 9th (Monday) and 10th are rechecked
	// against the new schedule.
	sched, _ := NewSchedule(2, 4, 6)
	habit.SetSchedule(sched)
	habit.RefreshStreak(date(10))

	// The 10th (Tuesday) is no longer scheduled; the run ends at the
	// 9th (Monday), which is completed.
	assert.Equal(t, 1, habit.Streak())
}

func TestRehydrateHabit_RecomputesStreak(t *testing.T) {
	id := uuid.New()
	today := DayOf(time.Now())
	logs := []*HabitLog{
		RehydrateHabitLog(uuid.New(), id, today.AddDate(0, 0, -1), true, nil, ""),
		RehydrateHabitLog(uuid.New(), id, today, true, nil, ""),
	}

	habit := RehydrateHabit(id, "Read", "", NewCheckboxKPI(), EveryDay(), "", today.AddDate(0, 0, -30), today, logs)

	assert.Equal(t, 2, habit.Streak(), "streak is derived from logs, not stored state")
}
