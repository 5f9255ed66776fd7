package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// UncategorizedLabel groups tickets without an explicit category in reports.
const UncategorizedLabel = "Uncategorized"

// Ticket is the aggregate for tracked work items.
//
// DueDate is stamped exactly once at creation from the SLA configuration in
// effect at that moment; later configuration changes never rewrite it.
// ResolvedAt is stamped when the ticket transitions to RESOLVED and cleared
// again if the ticket is reopened.
type Ticket struct {
	ID          string
	ExternalKey string
	RequesterID string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Category    *string
	DueDate     *time.Time
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}

// CategoryLabel returns the reporting category, defaulting to Uncategorized.
func (t *Ticket) CategoryLabel() string {
	if t.Category == nil || *t.Category == "" {
		return UncategorizedLabel
	}
	return *t.Category
}
