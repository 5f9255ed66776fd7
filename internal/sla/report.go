package sla

import (
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// Window selects the reporting period relative to the query instant.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

// ParseWindow validates a window name from the query surface.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowDaily, WindowWeekly, WindowMonthly:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown report window %q", s)
}

// Start returns the inclusive lower bound of the window containing now:
// midnight today, the most recent Monday midnight, or the first of the
// current month.
func (w Window) Start(now time.Time) time.Time {
	midnight := startOfDay(now)
	switch w {
	case WindowDaily:
		return midnight
	case WindowWeekly:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday)
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// ComplianceRow is one per-category line of a compliance report. Rows are
// recomputed on every query and never persisted.
type ComplianceRow struct {
	Category       string
	TotalResolved  int
	TotalImpacted  int
	MetCount       int
	MissedCount    int
	ComplianceRate float64
}

// Aggregate buckets tickets by category and produces compliance statistics
// for the window ending at now. Only tickets created inside the window that
// carry a deadline and have a decidable outcome contribute; categories with
// no decidable tickets produce no row. Rows are ordered by category.
func Aggregate(tickets []domain.Ticket, window Window, now time.Time) []ComplianceRow {
	windowStart := window.Start(now)

	byCategory := make(map[string]*ComplianceRow)
	for i := range tickets {
		ticket := &tickets[i]
		if ticket.CreatedAt.Before(windowStart) || ticket.DueDate == nil {
			continue
		}
		outcome := Classify(ticket, now)
		if !outcome.Decidable() {
			continue
		}

		category := ticket.CategoryLabel()
		row, ok := byCategory[category]
		if !ok {
			row = &ComplianceRow{Category: category}
			byCategory[category] = row
		}
		row.TotalImpacted++
		if ticket.ResolvedAt != nil {
			row.TotalResolved++
		}
		if outcome == OutcomeMet {
			row.MetCount++
		} else {
			row.MissedCount++
		}
	}

	rows := make([]ComplianceRow, 0, len(byCategory))
	for _, row := range byCategory {
		row.ComplianceRate = float64(row.MetCount) / float64(row.TotalImpacted) * 100
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Category < rows[j].Category
	})
	return rows
}
