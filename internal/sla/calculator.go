package sla

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// Calculator advances a start instant by a working-time budget, producing a
// resolution deadline. It is a pure function of its configuration snapshot:
// given the same Calendar and PolicySet, the same inputs always produce the
// same deadline, and a larger budget never produces an earlier one.
type Calculator struct {
	calendar Calendar
	policies PolicySet
}

// NewCalculator builds a calculator over one configuration snapshot.
func NewCalculator(calendar Calendar, policies PolicySet) Calculator {
	return Calculator{calendar: calendar, policies: policies}
}

// DueDate computes the deadline for a ticket of the given priority created
// at start. A nil deadline with a nil error means the priority has no
// configured policy and therefore no SLA commitment. A non-nil error is
// always a *ConfigError and means the calendar can never yield a deadline.
//
// All arithmetic is in whole minutes; start is truncated to the minute.
func (c Calculator) DueDate(priority domain.TicketPriority, start time.Time) (*time.Time, error) {
	policy, ok := c.policies.Lookup(priority)
	if !ok {
		return nil, nil
	}
	if !c.calendar.hasWorkingDay() {
		return nil, &ConfigError{Reason: "no working days configured"}
	}
	if policy.MaxResolutionMinutes <= 0 {
		return nil, &ConfigError{Reason: "policy budget must be positive"}
	}

	remaining := policy.MaxResolutionMinutes
	current := start.Truncate(time.Minute)

	// Each iteration either consumes budget or jumps to a strictly later
	// shift boundary. A fully consumed shift costs two iterations, one
	// InShift pass landing exactly on the shift end and one jump to the
	// next shift start, so the loop needs at most two passes per full
	// shift in the budget plus slack for positioning the start instant.
	// Exceeding the bound means the configuration cannot make progress.
	shift := c.calendar.ShiftMinutes()
	maxIterations := 2*((remaining+shift-1)/shift) + 8

	for iterations := 0; remaining > 0; iterations++ {
		if iterations > maxIterations {
			return nil, &ConfigError{Reason: "due-date iteration bound exceeded"}
		}
		switch c.calendar.Classify(current) {
		case NonWorkingDay, AfterShift:
			next, err := c.calendar.StartOfNextShift(current)
			if err != nil {
				return nil, err
			}
			current = next
		case BeforeShift:
			current = c.calendar.shiftStartOn(current)
		case InShift:
			toClose := c.calendar.minutesToShiftEnd(current)
			if toClose > remaining {
				current = addMinutes(current, remaining)
				remaining = 0
			} else {
				// Lands exactly on the shift end, which classifies as
				// AfterShift on the next pass.
				current = addMinutes(current, toClose)
				remaining -= toClose
			}
		}
	}

	due := current
	return &due, nil
}

func (c Calendar) hasWorkingDay() bool {
	for _, working := range c.days {
		if working {
			return true
		}
	}
	return false
}
