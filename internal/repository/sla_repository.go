package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// SlaRepository encapsulates SLA configuration persistence: the singleton
// working-hours row and the policy table.
type SlaRepository interface {
	GetWorkingHours(ctx context.Context) (*domain.WorkingHours, error)
	UpsertWorkingHours(ctx context.Context, hours *domain.WorkingHours) error
	ListPolicies(ctx context.Context) ([]domain.SlaPolicy, error)
	ReplacePolicies(ctx context.Context, policies []domain.SlaPolicy) error
}

type slaRepository struct {
	pool *pgxpool.Pool
}

// NewSlaRepository instantiates repository.
func NewSlaRepository(pool *pgxpool.Pool) SlaRepository {
	return &slaRepository{pool: pool}
}

func (r *slaRepository) GetWorkingHours(ctx context.Context) (*domain.WorkingHours, error) {
	const query = `
        SELECT start_minute, end_minute, work_days, holiday_processing_enabled, updated_at
        FROM working_hours WHERE id=1`
	var hours domain.WorkingHours
	var workDays string
	if err := r.pool.QueryRow(ctx, query).Scan(
		&hours.StartMinute,
		&hours.EndMinute,
		&workDays,
		&hours.HolidayProcessingEnabled,
		&hours.UpdatedAt,
	); err != nil {
		return nil, err
	}
	days, err := parseWorkDays(workDays)
	if err != nil {
		return nil, err
	}
	hours.Days = days
	return &hours, nil
}

func (r *slaRepository) UpsertWorkingHours(ctx context.Context, hours *domain.WorkingHours) error {
	const query = `
        INSERT INTO working_hours (id, start_minute, end_minute, work_days, holiday_processing_enabled, updated_at)
        VALUES (1, $1, $2, $3, $4, NOW())
        ON CONFLICT (id) DO UPDATE SET
            start_minute=EXCLUDED.start_minute,
            end_minute=EXCLUDED.end_minute,
            work_days=EXCLUDED.work_days,
            holiday_processing_enabled=EXCLUDED.holiday_processing_enabled,
            updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		hours.StartMinute,
		hours.EndMinute,
		formatWorkDays(hours.Days),
		hours.HolidayProcessingEnabled,
	).Scan(&hours.UpdatedAt)
}

func (r *slaRepository) ListPolicies(ctx context.Context) ([]domain.SlaPolicy, error) {
	const query = `
        SELECT id, priority, max_resolution_minutes
        FROM sla_policies ORDER BY priority, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SlaPolicy
	for rows.Next() {
		var policy domain.SlaPolicy
		if err := rows.Scan(&policy.ID, &policy.Priority, &policy.MaxResolutionMinutes); err != nil {
			return nil, err
		}
		result = append(result, policy)
	}
	return result, rows.Err()
}

func (r *slaRepository) ReplacePolicies(ctx context.Context, policies []domain.SlaPolicy) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM sla_policies`); err != nil {
		return err
	}
	for i := range policies {
		const query = `
            INSERT INTO sla_policies (priority, max_resolution_minutes)
            VALUES ($1,$2)
            RETURNING id`
		if err := tx.QueryRow(ctx, query,
			policies[i].Priority,
			policies[i].MaxResolutionMinutes,
		).Scan(&policies[i].ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Work days persist as a CSV of weekday names, e.g. "Monday,Tuesday".
func formatWorkDays(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, day.String())
	}
	return strings.Join(names, ",")
}

func parseWorkDays(csv string) ([]time.Weekday, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	byName := map[string]time.Weekday{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		byName[day.String()] = day
	}
	parts := strings.Split(csv, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		day, ok := byName[strings.TrimSpace(part)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}
