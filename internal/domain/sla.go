package domain

import "time"

// WorkingHours is the single organization-wide working calendar used for SLA
// due-date arithmetic. StartMinute and EndMinute are minutes since midnight
// describing one contiguous same-day shift (StartMinute < EndMinute).
//
// HolidayProcessingEnabled is stored and round-tripped through the
// configuration API but currently has no effect on any calculation; it is an
// extension point for a future public-holiday calendar.
type WorkingHours struct {
	StartMinute              int
	EndMinute                int
	Days                     []time.Weekday
	HolidayProcessingEnabled bool
	UpdatedAt                time.Time
}

// DefaultWorkingHours returns the 09:00-18:00 Monday-Friday calendar used
// until an administrator configures one.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		StartMinute: 9 * 60,
		EndMinute:   18 * 60,
		Days: []time.Weekday{
			time.Monday,
			time.Tuesday,
			time.Wednesday,
			time.Thursday,
			time.Friday,
		},
	}
}

// SlaPolicy binds a priority to its resolution budget in working minutes.
// Conceptually one policy exists per priority; storage does not enforce it,
// so lookups must tolerate duplicates.
type SlaPolicy struct {
	ID                   string
	Priority             TicketPriority
	MaxResolutionMinutes int
}
