package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
)

func TestParseWindow(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		window, err := ParseWindow(valid)
		require.NoError(t, err)
		assert.Equal(t, Window(valid), window)
	}
	_, err := ParseWindow("quarterly")
	assert.Error(t, err)
}

func TestWindow_Start(t *testing.T) {
	// Thursday 2025-01-16, mid-afternoon.
	now := time.Date(2025, 1, 16, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window Window
		now    time.Time
		want   time.Time
	}{
		{"daily is midnight today", WindowDaily, now, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)},
		{"weekly is most recent monday", WindowWeekly, now, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"weekly on a monday is that monday", WindowWeekly, at(13, 8, 0), time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"weekly on a sunday reaches back six days", WindowWeekly, at(12, 23, 0), time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)},
		{"monthly is the first of the month", WindowMonthly, now, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.window.Start(tc.now))
		})
	}
}

func TestAggregate(t *testing.T) {
	now := at(16, 12, 0) // Thursday
	category := func(name string) *string { return &name }
	ptr := func(v time.Time) *time.Time { return &v }

	ticket := func(cat *string, created time.Time, due, resolved *time.Time) domain.Ticket {
		return domain.Ticket{
			Category:   cat,
			CreatedAt:  created,
			DueDate:    due,
			ResolvedAt: resolved,
		}
	}

	due := at(15, 10, 0)
	tickets := []domain.Ticket{
		// Network: 3 met, 1 missed -> 75% compliance.
		ticket(category("Network"), at(14, 9, 0), &due, ptr(at(15, 9, 0))),
		ticket(category("Network"), at(14, 9, 5), &due, ptr(at(15, 9, 30))),
		ticket(category("Network"), at(14, 9, 10), &due, ptr(at(14, 16, 0))),
		ticket(category("Network"), at(14, 9, 15), &due, ptr(at(15, 11, 0))),
		// Hardware: open and overdue counts as missed, unresolved.
		ticket(category("Hardware"), at(14, 10, 0), &due, nil),
		// No category falls into Uncategorized.
		ticket(nil, at(14, 11, 0), &due, ptr(at(15, 9, 45))),
		// In-flight: due date in the future, excluded entirely.
		ticket(category("Software"), at(16, 9, 0), ptr(at(17, 10, 0)), nil),
		// No deadline: excluded entirely.
		ticket(category("Software"), at(14, 9, 0), nil, ptr(at(15, 9, 0))),
		// Created before the weekly window start: excluded.
		ticket(category("Network"), at(10, 9, 0), &due, ptr(at(15, 11, 30))),
	}

	rows := Aggregate(tickets, WindowWeekly, now)
	require.Len(t, rows, 3)

	assert.Equal(t, "Hardware", rows[0].Category)
	assert.Equal(t, 1, rows[0].TotalImpacted)
	assert.Equal(t, 0, rows[0].TotalResolved)
	assert.Equal(t, 1, rows[0].MissedCount)
	assert.Equal(t, 0.0, rows[0].ComplianceRate)

	assert.Equal(t, "Network", rows[1].Category)
	assert.Equal(t, 4, rows[1].TotalImpacted)
	assert.Equal(t, 4, rows[1].TotalResolved)
	assert.Equal(t, 3, rows[1].MetCount)
	assert.Equal(t, 1, rows[1].MissedCount)
	assert.Equal(t, 75.0, rows[1].ComplianceRate)

	assert.Equal(t, domain.UncategorizedLabel, rows[2].Category)
	assert.Equal(t, 100.0, rows[2].ComplianceRate)
}

func TestAggregate_OmitsUndecidableGroups(t *testing.T) {
	now := at(16, 12, 0)
	futureDue := at(17, 10, 0)
	name := "Software"

	rows := Aggregate([]domain.Ticket{
		{Category: &name, CreatedAt: at(16, 9, 0), DueDate: &futureDue},
	}, WindowWeekly, now)
	assert.Empty(t, rows)
}
