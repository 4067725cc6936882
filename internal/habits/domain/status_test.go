package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabit_StatusOn_Future(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())

	// A log never makes a future day anything but Future.
	_, err := habit.RecordOutcome(date(10), Outcome{}, date(10))
	require.NoError(t, err)

	assert.Equal(t, StatusFuture, habit.StatusOn(date(10), date(9)))
	assert.Equal(t, StatusFuture, habit.StatusOn(date(11), date(10)))
}

func TestHabit_StatusOn_Logged(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())

	_, _ = habit.RecordOutcome(date(9), Outcome{}, date(10))
	_, _ = habit.RecordOutcome(date(10), Outcome{Skip: true}, date(10))

	assert.Equal(t, StatusCompleted, habit.StatusOn(date(9), date(10)))
	assert.Equal(t, StatusMissed, habit.StatusOn(date(10), date(10)))
}

func TestHabit_StatusOn_Unlogged(t *testing.T) {
	// Tue/Thu/Sat: codes 3, 5, 7.
	sched, err := NewSchedule(3, 5, 7)
	require.NoError(t, err)
	habit, _ := NewHabit("Swim", NewCheckboxKPI(), sched)

	// Monday the 2nd is not scheduled; Tuesday the 3rd is.
	assert.Equal(t, StatusUnscheduled, habit.StatusOn(date(2), date(10)))
	assert.Equal(t, StatusMissed, habit.StatusOn(date(3), date(10)))
}

func TestHabit_StatusOn_LogOnUnscheduledDay(t *testing.T) {
	sched, _ := NewSchedule(3, 5, 7)
	habit, _ := NewHabit("Swim", NewCheckboxKPI(), sched)

	// A log recorded on a day off still counts.
	_, err := habit.RecordOutcome(date(2), Outcome{}, date(10))
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, habit.StatusOn(date(2), date(10)))
}

func TestGroupStatusOn(t *testing.T) {
	everyDay, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())
	weekdays, err := NewSchedule(2, 3, 4, 5, 6)
	require.NoError(t, err)
	gym, _ := NewHabit("Gym", NewCheckboxKPI(), weekdays)
	habits := []*Habit{everyDay, gym}

	// Monday the 9th: both scheduled, both completed.
	_, _ = everyDay.RecordOutcome(date(9), Outcome{}, date(12))
	_, _ = gym.RecordOutcome(date(9), Outcome{}, date(12))
	assert.Equal(t, StatusCompleted, GroupStatusOn(habits, date(9), date(12)))

	// Tuesday the 10th: both scheduled, only one completed.
	_, _ = everyDay.RecordOutcome(date(10), Outcome{}, date(12))
	assert.Equal(t, StatusPartial, GroupStatusOn(habits, date(10), date(12)))

	// Wednesday the 11th: both scheduled, neither completed.
	assert.Equal(t, StatusMissed, GroupStatusOn(habits, date(11), date(12)))
}

func TestGroupStatusOn_Future(t *testing.T) {
	habit, _ := NewHabit("Read", NewCheckboxKPI(), EveryDay())

	assert.Equal(t, StatusFuture, GroupStatusOn([]*Habit{habit}, date(11), date(10)))
}

func TestGroupStatusOn_NoScheduledHabits(t *testing.T) {
	weekdays, _ := NewSchedule(2, 3, 4, 5, 6)
	gym, _ := NewHabit("Gym", NewCheckboxKPI(), weekdays)

	// Sunday the 8th has nothing scheduled.
	assert.Equal(t, StatusUnscheduled, GroupStatusOn([]*Habit{gym}, date(8), date(10)))
	assert.Equal(t, StatusUnscheduled, GroupStatusOn(nil, date(8), date(10)))
}
