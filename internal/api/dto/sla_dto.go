package dto

import (
	"fmt"
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/sla"
)

// WorkingHoursPayload is the wire shape of the working calendar. Times of
// day travel as "HH:MM" strings.
type WorkingHoursPayload struct {
	StartTime                string     `json:"start_time"`
	EndTime                  string     `json:"end_time"`
	WorkDays                 []string   `json:"work_days"`
	HolidayProcessingEnabled bool       `json:"holiday_processing_enabled"`
	UpdatedAt                *time.Time `json:"updated_at,omitempty"`
}

// PolicyPayload is the wire shape of one SLA policy row.
type PolicyPayload struct {
	ID                   string                `json:"id,omitempty"`
	Priority             domain.TicketPriority `json:"priority"`
	MaxResolutionMinutes int                   `json:"max_resolution_minutes"`
}

// ReplacePoliciesRequest payload.
type ReplacePoliciesRequest struct {
	Policies []PolicyPayload `json:"policies"`
}

// ComplianceRowResponse is one report row.
type ComplianceRowResponse struct {
	Category       string  `json:"category"`
	TotalResolved  int     `json:"total_resolved"`
	TotalImpacted  int     `json:"total_impacted"`
	MetCount       int     `json:"met_count"`
	MissedCount    int     `json:"missed_count"`
	ComplianceRate float64 `json:"compliance_rate"`
}

// WorkingHoursFromPayload converts the wire shape into the domain model.
func WorkingHoursFromPayload(p WorkingHoursPayload) (domain.WorkingHours, error) {
	start, err := parseClock(p.StartTime)
	if err != nil {
		return domain.WorkingHours{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := parseClock(p.EndTime)
	if err != nil {
		return domain.WorkingHours{}, fmt.Errorf("end_time: %w", err)
	}
	days, err := parseWeekdays(p.WorkDays)
	if err != nil {
		return domain.WorkingHours{}, err
	}
	return domain.WorkingHours{
		StartMinute:              start,
		EndMinute:                end,
		Days:                     days,
		HolidayProcessingEnabled: p.HolidayProcessingEnabled,
	}, nil
}

// WorkingHoursToPayload converts the domain model into the wire shape.
func WorkingHoursToPayload(hours *domain.WorkingHours) WorkingHoursPayload {
	names := make([]string, 0, len(hours.Days))
	for _, day := range hours.Days {
		names = append(names, day.String())
	}
	payload := WorkingHoursPayload{
		StartTime:                formatClock(hours.StartMinute),
		EndTime:                  formatClock(hours.EndMinute),
		WorkDays:                 names,
		HolidayProcessingEnabled: hours.HolidayProcessingEnabled,
	}
	if !hours.UpdatedAt.IsZero() {
		payload.UpdatedAt = &hours.UpdatedAt
	}
	return payload
}

// ComplianceRows converts engine rows into the wire shape.
func ComplianceRows(rows []sla.ComplianceRow) []ComplianceRowResponse {
	out := make([]ComplianceRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ComplianceRowResponse{
			Category:       row.Category,
			TotalResolved:  row.TotalResolved,
			TotalImpacted:  row.TotalImpacted,
			MetCount:       row.MetCount,
			MissedCount:    row.MissedCount,
			ComplianceRate: row.ComplianceRate,
		})
	}
	return out
}

func parseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func formatClock(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	byName := map[string]time.Weekday{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		byName[day.String()] = day
	}
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}
