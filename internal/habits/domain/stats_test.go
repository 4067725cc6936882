package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabit_MonthlyLogs(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())
	today := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)

	_, _ = habit.RecordOutcome(date(30), Outcome{}, today)
	_, _ = habit.RecordOutcome(date(31), Outcome{}, today)
	_, _ = habit.RecordOutcome(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), Outcome{}, today)

	march := habit.MonthlyLogs(2026, time.March)
	assert.Len(t, march, 2)

	april := habit.MonthlyLogs(2026, time.April)
	assert.Len(t, april, 1)

	assert.Empty(t, habit.MonthlyLogs(2025, time.March))
}

func TestHabit_TotalCompletions(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())

	_, _ = habit.RecordOutcome(date(8), Outcome{}, date(11))
	_, _ = habit.RecordOutcome(date(9), Outcome{Skip: true}, date(11))
	_, _ = habit.RecordOutcome(date(10), Outcome{}, date(11))

	assert.Equal(t, 2, habit.TotalCompletions())
}

func TestCompletionRate(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())

	_, _ = habit.RecordOutcome(date(8), Outcome{}, date(11))
	_, _ = habit.RecordOutcome(date(9), Outcome{}, date(11))
	_, _ = habit.RecordOutcome(date(10), Outcome{Skip: true}, date(11))

	// 2 of 3 truncates to 66, never rounds up.
	assert.Equal(t, 66, CompletionRate(habit.Logs()))
}

func TestCompletionRate_Empty(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(nil))
}

func TestBestStreak(t *testing.T) {
	short, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())
	long, _ := NewHabit("Exercise", NewCheckboxKPI(), EveryDay())

	_, err := short.RecordOutcome(date(11), Outcome{}, date(11))
	require.NoError(t, err)
	for d := 9; d <= 11; d++ {
		_, err := long.RecordOutcome(date(d), Outcome{}, date(11))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, BestStreak([]*Habit{short, long}))
	assert.Equal(t, 0, BestStreak(nil))
}
