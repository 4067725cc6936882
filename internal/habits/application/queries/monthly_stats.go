package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/followthru/followthru/internal/habits/domain"
	"github.com/google/uuid"
)

// MonthlyStatsDTO summarizes a habit's month.
type MonthlyStatsDTO struct {
	HabitID          uuid.UUID  `json:"habit_id"`
	Year             int        `json:"year"`
	Month            time.Month `json:"month"`
	CompletionRate   int        `json:"completion_rate"`
	LoggedDays       int        `json:"logged_days"`
	CompletedDays    int        `json:"completed_days"`
	Streak           int        `json:"streak"`
	TotalCompletions int        `json:"total_completions"`
}

// StatsCache stores computed monthly stats between mutations. A cache
// miss is (nil, nil); failures should degrade to a miss.
type StatsCache interface {
	Get(ctx context.Context, habitID uuid.UUID, year int, month time.Month) (*MonthlyStatsDTO, error)
	Set(ctx context.Context, stats *MonthlyStatsDTO) error
}

// MonthlyStatsQuery identifies the habit and month to summarize.
type MonthlyStatsQuery struct {
	HabitID uuid.UUID
	Year    int
	Month   time.Month
}

// MonthlyStatsHandler handles the MonthlyStatsQuery with a cache-aside
// lookup; the cache is invalidated by completion events.
type MonthlyStatsHandler struct {
	habitRepo domain.Repository
	cache     StatsCache
	logger    *slog.Logger
}

// NewMonthlyStatsHandler creates a new MonthlyStatsHandler. The cache
// may be nil, in which case stats are always computed.
func NewMonthlyStatsHandler(habitRepo domain.Repository, cache StatsCache, logger *slog.Logger) *MonthlyStatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonthlyStatsHandler{habitRepo: habitRepo, cache: cache, logger: logger}
}

// Handle executes the MonthlyStatsQuery.
func (h *MonthlyStatsHandler) Handle(ctx context.Context, query MonthlyStatsQuery) (*MonthlyStatsDTO, error) {
	if h.cache != nil {
		cached, err := h.cache.Get(ctx, query.HabitID, query.Year, query.Month)
		if err != nil {
			h.logger.Warn("stats cache lookup failed", "habit_id", query.HabitID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	habit, err := h.habitRepo.FindByID(ctx, query.HabitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrHabitNotFound
	}

	logs := habit.MonthlyLogs(query.Year, query.Month)
	completed := 0
	for _, l := range logs {
		if l.Completed() {
			completed++
		}
	}

	stats := &MonthlyStatsDTO{
		HabitID:          habit.ID(),
		Year:             query.Year,
		Month:            query.Month,
		CompletionRate:   domain.CompletionRate(logs),
		LoggedDays:       len(logs),
		CompletedDays:    completed,
		Streak:           habit.Streak(),
		TotalCompletions: habit.TotalCompletions(),
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, stats); err != nil {
			h.logger.Warn("stats cache store failed", "habit_id", query.HabitID, "error", err)
		}
	}

	return stats, nil
}

// OverviewStatsDTO summarizes the whole habit set.
type OverviewStatsDTO struct {
	HabitCount       int
	BestStreak       int
	TotalCompletions int
}

// OverviewStatsHandler computes cross-habit statistics.
type OverviewStatsHandler struct {
	habitRepo domain.Repository
}

// NewOverviewStatsHandler creates a new OverviewStatsHandler.
func NewOverviewStatsHandler(habitRepo domain.Repository) *OverviewStatsHandler {
	return &OverviewStatsHandler{habitRepo: habitRepo}
}

// Handle computes the overview.
func (h *OverviewStatsHandler) Handle(ctx context.Context) (*OverviewStatsDTO, error) {
	habits, err := h.habitRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, habit := range habits {
		total += habit.TotalCompletions()
	}

	return &OverviewStatsDTO{
		HabitCount:       len(habits),
		BestStreak:       domain.BestStreak(habits),
		TotalCompletions: total,
	}, nil
}
