// Package sla implements the SLA engine: working-calendar arithmetic that
// converts a ticket's priority and creation time into a resolution deadline
// expressed in working time, plus compliance classification and report
// aggregation over ticket snapshots.
//
// Everything in this package is pure: inputs are explicit configuration
// snapshots and instants, outputs are values or tagged errors. Callers are
// responsible for reading one consistent configuration snapshot per
// calculation.
package sla

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// DayPhase classifies an instant relative to the working shift of its day.
type DayPhase int

const (
	// NonWorkingDay means the instant's weekday carries no shift at all.
	NonWorkingDay DayPhase = iota
	// BeforeShift means a working day, before the shift opens.
	BeforeShift
	// InShift means inside the half-open shift interval [start, end).
	InShift
	// AfterShift means a working day, at or past the shift end.
	AfterShift
)

// Calendar is an immutable snapshot of the organization's working hours.
// The zero value is unusable; build one with NewCalendar.
type Calendar struct {
	startMin int
	endMin   int
	days     [7]bool
}

// NewCalendar validates a WorkingHours snapshot and builds a Calendar.
// An empty day set or a non-positive shift is a *ConfigError.
func NewCalendar(hours domain.WorkingHours) (Calendar, error) {
	if len(hours.Days) == 0 {
		return Calendar{}, &ConfigError{Reason: "no working days configured"}
	}
	if hours.StartMinute < 0 || hours.EndMinute > 24*60 || hours.StartMinute >= hours.EndMinute {
		return Calendar{}, &ConfigError{Reason: "shift start must precede shift end within one day"}
	}
	cal := Calendar{startMin: hours.StartMinute, endMin: hours.EndMinute}
	for _, day := range hours.Days {
		cal.days[int(day)] = true
	}
	return cal, nil
}

// ShiftMinutes returns the length of one working shift.
func (c Calendar) ShiftMinutes() int {
	return c.endMin - c.startMin
}

// Classify places an instant into its day phase. The shift interval is
// closed at the start and open at the end, so the exact end-of-shift minute
// classifies as AfterShift.
func (c Calendar) Classify(t time.Time) DayPhase {
	if !c.days[int(t.Weekday())] {
		return NonWorkingDay
	}
	minute := minuteOfDay(t)
	switch {
	case minute < c.startMin:
		return BeforeShift
	case minute < c.endMin:
		return InShift
	default:
		return AfterShift
	}
}

// StartOfNextShift returns the shift-start instant on the next working day
// strictly after t's day. The search is bounded by the seven weekdays; with
// a validated Calendar it always succeeds.
func (c Calendar) StartOfNextShift(t time.Time) (time.Time, error) {
	day := startOfDay(t)
	for i := 1; i <= 7; i++ {
		candidate := day.AddDate(0, 0, i)
		if c.days[int(candidate.Weekday())] {
			return addMinutes(candidate, c.startMin), nil
		}
	}
	return time.Time{}, &ConfigError{Reason: "no working days configured"}
}

// shiftStartOn returns the shift-start instant on t's own day.
func (c Calendar) shiftStartOn(t time.Time) time.Time {
	return addMinutes(startOfDay(t), c.startMin)
}

// minutesToShiftEnd returns the whole minutes from t to the shift end of
// t's day. Only meaningful for instants classified InShift.
func (c Calendar) minutesToShiftEnd(t time.Time) int {
	return c.endMin - minuteOfDay(t)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func addMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}
