package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/followthru/followthru/internal/habits/domain"
	sharedPersistence "github.com/followthru/followthru/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

// SQLiteHabitRepository persists habits in SQLite.
type SQLiteHabitRepository struct {
	db *sql.DB
}

// NewSQLiteHabitRepository creates a new SQLiteHabitRepository.
func NewSQLiteHabitRepository(db *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{db: db}
}

// Save upserts the habit row and each of its logs.
func (r *SQLiteHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := sharedPersistence.SQLExecutorFor(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		INSERT INTO habits (id, name, description, kpi_kind, kpi_target, scheduled_days, scheduled_time, streak, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			kpi_kind = excluded.kpi_kind,
			kpi_target = excluded.kpi_target,
			scheduled_days = excluded.scheduled_days,
			scheduled_time = excluded.scheduled_time,
			streak = excluded.streak,
			updated_at = excluded.updated_at`,
		habit.ID().String(),
		habit.Name(),
		habit.Description(),
		string(habit.KPI().Kind()),
		habit.KPI().Target(),
		encodeDays(habit.Schedule().Days()),
		habit.ScheduledTime(),
		habit.Streak(),
		habit.CreatedAt().UTC(),
		habit.UpdatedAt().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}

	for _, log := range habit.Logs() {
		var value any
		if v, ok := log.Value(); ok {
			value = v
		}
		_, err := exec.ExecContext(ctx, `
			INSERT INTO habit_logs (id, habit_id, day, completed, value, note)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				completed = excluded.completed,
				value = excluded.value,
				note = excluded.note`,
			log.ID().String(),
			log.HabitID().String(),
			log.Day().Format(dayFormat),
			log.Completed(),
			value,
			log.Note(),
		)
		if err != nil {
			return fmt.Errorf("failed to save habit log: %w", err)
		}
	}

	return nil
}

// FindByID loads a habit with its logs. Returns nil, nil when absent.
func (r *SQLiteHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := sharedPersistence.SQLExecutorFor(ctx, r.db)

	row := exec.QueryRowContext(ctx, `
		SELECT id, name, description, kpi_kind, kpi_target, scheduled_days, scheduled_time, created_at, updated_at
		FROM habits WHERE id = ?`, id.String())

	habitRow, err := scanSQLiteHabit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load habit: %w", err)
	}

	logs, err := r.loadLogs(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	return habitRow.toDomain(logs)
}

// FindAll loads every habit with its logs.
func (r *SQLiteHabitRepository) FindAll(ctx context.Context) ([]*domain.Habit, error) {
	exec := sharedPersistence.SQLExecutorFor(ctx, r.db)

	rows, err := exec.QueryContext(ctx, `
		SELECT id, name, description, kpi_kind, kpi_target, scheduled_days, scheduled_time, created_at, updated_at
		FROM habits ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habitRows []sqliteHabitRow
	for rows.Next() {
		hr, err := scanSQLiteHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habitRows = append(habitRows, hr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	habits := make([]*domain.Habit, 0, len(habitRows))
	for _, hr := range habitRows {
		id, err := uuid.Parse(hr.id)
		if err != nil {
			return nil, fmt.Errorf("invalid habit id %q: %w", hr.id, err)
		}
		logs, err := r.loadLogs(ctx, exec, id)
		if err != nil {
			return nil, err
		}
		habit, err := hr.toDomain(logs)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

// Delete removes the habit; logs go with it via the cascade.
func (r *SQLiteHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.SQLExecutorFor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

func (r *SQLiteHabitRepository) loadLogs(ctx context.Context, exec sharedPersistence.SQLExecutor, habitID uuid.UUID) ([]*domain.HabitLog, error) {
	rows, err := exec.QueryContext(ctx, `
		SELECT id, habit_id, day, completed, value, note
		FROM habit_logs WHERE habit_id = ? ORDER BY day`, habitID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load habit logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.HabitLog
	for rows.Next() {
		var (
			idStr, habitIDStr, dayStr, note string
			completed                       bool
			value                           sql.NullFloat64
		)
		if err := rows.Scan(&idStr, &habitIDStr, &dayStr, &completed, &value, &note); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log id %q: %w", idStr, err)
		}
		hID, err := uuid.Parse(habitIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log habit id %q: %w", habitIDStr, err)
		}
		day, err := time.ParseInLocation(dayFormat, dayStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid log day %q: %w", dayStr, err)
		}
		var v *float64
		if value.Valid {
			v = &value.Float64
		}
		logs = append(logs, domain.RehydrateHabitLog(logID, hID, day, completed, v, note))
	}
	return logs, rows.Err()
}

type sqliteHabitRow struct {
	id            string
	name          string
	description   string
	kpiKind       string
	kpiTarget     float64
	scheduledDays string
	scheduledTime string
	createdAt     time.Time
	updatedAt     time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteHabit(row rowScanner) (sqliteHabitRow, error) {
	var hr sqliteHabitRow
	err := row.Scan(
		&hr.id,
		&hr.name,
		&hr.description,
		&hr.kpiKind,
		&hr.kpiTarget,
		&hr.scheduledDays,
		&hr.scheduledTime,
		&hr.createdAt,
		&hr.updatedAt,
	)
	return hr, err
}

func (hr sqliteHabitRow) toDomain(logs []*domain.HabitLog) (*domain.Habit, error) {
	id, err := uuid.Parse(hr.id)
	if err != nil {
		return nil, fmt.Errorf("invalid habit id %q: %w", hr.id, err)
	}
	return rehydrateHabit(id, hr.name, hr.description, hr.kpiKind, hr.kpiTarget, hr.scheduledDays, hr.scheduledTime, hr.createdAt, hr.updatedAt, logs)
}

func rehydrateHabit(
	id uuid.UUID,
	name, description, kpiKind string,
	kpiTarget float64,
	scheduledDays, scheduledTime string,
	createdAt, updatedAt time.Time,
	logs []*domain.HabitLog,
) (*domain.Habit, error) {
	kpi, err := domain.NewKPI(domain.KPIKind(kpiKind), kpiTarget)
	if err != nil {
		return nil, fmt.Errorf("invalid stored KPI for habit %s: %w", id, err)
	}
	days, err := decodeDays(scheduledDays)
	if err != nil {
		return nil, fmt.Errorf("invalid stored schedule for habit %s: %w", id, err)
	}
	schedule, err := domain.NewSchedule(days...)
	if err != nil {
		return nil, fmt.Errorf("invalid stored schedule for habit %s: %w", id, err)
	}
	return domain.RehydrateHabit(id, name, description, kpi, schedule, scheduledTime, createdAt, updatedAt, logs), nil
}

// encodeDays serializes weekday codes as "2,4,6". Empty means every day.
func encodeDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
