package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/followthru/followthru/internal/habits/domain"
	sharedPersistence "github.com/followthru/followthru/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// PostgresHabitRepository persists habits in PostgreSQL.
type PostgresHabitRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHabitRepository creates a new PostgresHabitRepository.
func NewPostgresHabitRepository(pool *pgxpool.Pool) *PostgresHabitRepository {
	return &PostgresHabitRepository{pool: pool}
}

// Save upserts the habit row and each of its logs.
func (r *PostgresHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := sharedPersistence.PgExecutorFor(ctx, r.pool)

	_, err := exec.Exec(ctx, `
		INSERT INTO habits (id, name, description, kpi_kind, kpi_target, scheduled_days, scheduled_time, streak, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			kpi_kind = EXCLUDED.kpi_kind,
			kpi_target = EXCLUDED.kpi_target,
			scheduled_days = EXCLUDED.scheduled_days,
			scheduled_time = EXCLUDED.scheduled_time,
			streak = EXCLUDED.streak,
			updated_at = EXCLUDED.updated_at`,
		habit.ID(),
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
		var value *float64
		if v, ok := log.Value(); ok {
			value = &v
		}
		_, err := exec.Exec(ctx, `
			INSERT INTO habit_logs (id, habit_id, day, completed, value, note)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				completed = EXCLUDED.completed,
				value = EXCLUDED.value,
				note = EXCLUDED.note`,
			log.ID(),
			log.HabitID(),
			log.Day(),
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
func (r *PostgresHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := sharedPersistence.PgExecutorFor(ctx, r.pool)

	row := exec.QueryRow(ctx, `
		SELECT id, name, description, kpi_kind, kpi_target, scheduled_days, scheduled_time, created_at, updated_at
		FROM habits WHERE id = $1`, id)

	var hr pgHabitRow
	err := row.Scan(&hr.id, &hr.name, &hr.description, &hr.kpiKind, &hr.kpiTarget, &hr.scheduledDays, &hr.scheduledTime, &hr.createdAt, &hr.updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load habit: %w", err)
	}

	logs, err := r.loadLogs(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	return rehydrateHabit(hr.id, hr.name, hr.description, hr.kpiKind, hr.kpiTarget, hr.scheduledDays, hr.scheduledTime, hr.createdAt, hr.updatedAt, logs)
}

// FindAll loads every habit with its logs.
func (r *PostgresHabitRepository) FindAll(ctx context.Context) ([]*domain.Habit, error) {
	exec := sharedPersistence.PgExecutorFor(ctx, r.pool)

	rows, err := exec.Query(ctx, `
		SELECT id, name, description, kpi_kind, kpi_target, scheduled_days, scheduled_time, created_at, updated_at
		FROM habits ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habitRows []pgHabitRow
	for rows.Next() {
		var hr pgHabitRow
		if err := rows.Scan(&hr.id, &hr.name, &hr.description, &hr.kpiKind, &hr.kpiTarget, &hr.scheduledDays, &hr.scheduledTime, &hr.createdAt, &hr.updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habitRows = append(habitRows, hr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	habits := make([]*domain.Habit, 0, len(habitRows))
	for _, hr := range habitRows {
		logs, err := r.loadLogs(ctx, exec, hr.id)
		if err != nil {
			return nil, err
		}
		habit, err := rehydrateHabit(hr.id, hr.name, hr.description, hr.kpiKind, hr.kpiTarget, hr.scheduledDays, hr.scheduledTime, hr.createdAt, hr.updatedAt, logs)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

// Delete removes the habit; logs go with it via the cascade.
func (r *PostgresHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.PgExecutorFor(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) loadLogs(ctx context.Context, exec sharedPersistence.PgExecutor, habitID uuid.UUID) ([]*domain.HabitLog, error) {
	rows, err := exec.Query(ctx, `
		SELECT id, habit_id, day, completed, value, note
		FROM habit_logs WHERE habit_id = $1 ORDER BY day`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habit logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.HabitLog
	for rows.Next() {
		var (
			logID, hID uuid.UUID
			day        time.Time
			completed  bool
			value      *float64
			note       string
		)
		if err := rows.Scan(&logID, &hID, &day, &completed, &value, &note); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logs = append(logs, domain.RehydrateHabitLog(logID, hID, domain.DayOf(day.UTC()), completed, value, note))
	}
	return logs, rows.Err()
}

type pgHabitRow struct {
	id            uuid.UUID
	name          string
	description   string
	kpiKind       string
	kpiTarget     float64
	scheduledDays string
	scheduledTime string
	createdAt     time.Time
	updatedAt     time.Time
}
