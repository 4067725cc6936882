package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryDay(t *testing.T) {
	sched := EveryDay()

	assert.True(t, sched.IsEveryDay())
	assert.Empty(t, sched.Days())
	for d := 1; d <= 7; d++ {
		assert.True(t, sched.IsScheduledOn(date(d)), "day %d", d)
	}
}

func TestNewSchedule(t *testing.T) {
	sched, err := NewSchedule(2, 4, 6)

	require.NoError(t, err)
	assert.False(t, sched.IsEveryDay())
	assert.Equal(t, []int{2, 4, 6}, sched.Days())
}

func TestNewSchedule_InvalidWeekday(t *testing.T) {
	for _, d := range []int{0, 8, -1} {
		_, err := NewSchedule(d)
		assert.ErrorIs(t, err, ErrInvalidWeekday, "day %d", d)
	}
}

func TestNewSchedule_Deduplicates(t *testing.T) {
	sched, err := NewSchedule(3, 3, 5, 5)

	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, sched.Days())
}

func TestNewSchedule_AllSevenCollapsesToEveryDay(t *testing.T) {
	sched, err := NewSchedule(1, 2, 3, 4, 5, 6, 7)

	require.NoError(t, err)
	assert.True(t, sched.IsEveryDay())
}

func TestSchedule_IsScheduledOn(t *testing.T) {
	// Mon/Wed/Fri. March 2026 starts on a Sunday.
	sched, err := NewSchedule(2, 4, 6)
	require.NoError(t, err)

	tests := []struct {
		day  int
		want bool
	}{
		{1, false}, // Sunday
		{2, true},  // Monday
		{3, false}, // Tuesday
		{4, true},  // Wednesday
		{5, false}, // Thursday
		{6, true},  // Friday
		{7, false}, // Saturday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sched.IsScheduledOn(date(tt.day)), "March %d", tt.day)
	}
}

func TestWeekdayCode(t *testing.T) {
	assert.Equal(t, 1, WeekdayCode(date(1))) // Sunday
	assert.Equal(t, 7, WeekdayCode(date(7))) // Saturday
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2026, time.March, 10, 18, 45, 12, 999, time.UTC)

	day := DayOf(ts)

	assert.Equal(t, date(10), day)
	assert.True(t, SameDay(ts, date(10)))
	assert.False(t, SameDay(ts, date(11)))
}
