package sla

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// Outcome is the compliance state of a ticket at a point in time.
type Outcome string

const (
	// OutcomeNoDeadline marks tickets without an SLA commitment; they never
	// enter compliance statistics.
	OutcomeNoDeadline Outcome = "NO_DEADLINE"
	// OutcomeInFlight marks open tickets still inside their deadline; their
	// outcome is not yet decidable, so they are excluded from statistics.
	OutcomeInFlight Outcome = "IN_FLIGHT"
	// OutcomeMet marks tickets resolved at or before their deadline.
	OutcomeMet Outcome = "MET"
	// OutcomeMissed marks tickets resolved late or open past their deadline.
	OutcomeMissed Outcome = "MISSED"
)

// Decidable reports whether the outcome counts toward compliance statistics.
func (o Outcome) Decidable() bool {
	return o == OutcomeMet || o == OutcomeMissed
}

// Classify determines a ticket's compliance outcome as of now.
func Classify(ticket *domain.Ticket, now time.Time) Outcome {
	if ticket.DueDate == nil {
		return OutcomeNoDeadline
	}
	due := *ticket.DueDate
	if ticket.ResolvedAt != nil {
		if ticket.ResolvedAt.After(due) {
			return OutcomeMissed
		}
		return OutcomeMet
	}
	if now.After(due) {
		return OutcomeMissed
	}
	return OutcomeInFlight
}
