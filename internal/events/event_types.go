package events

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketResolved      EventType = "ticket_resolved"
	EventTicketOverdue       EventType = "ticket_overdue"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Priority domain.TicketPriority `json:"priority"`
	Category *string               `json:"category,omitempty"`
	DueDate  *time.Time            `json:"due_date,omitempty"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	ResolvedAt time.Time  `json:"resolved_at"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// TicketOverduePayload payload.
type TicketOverduePayload struct {
	DueDate        time.Time             `json:"due_date"`
	OverdueMinutes int                   `json:"overdue_minutes"`
	Priority       domain.TicketPriority `json:"priority"`
}
