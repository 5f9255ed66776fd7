package dto

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    *string               `json:"category"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status  domain.TicketStatus `json:"status"`
	Comment string              `json:"comment"`
}

// TicketResponse is the full ticket wire shape including SLA stamps.
type TicketResponse struct {
	ID          string                `json:"id"`
	ExternalKey string                `json:"external_key"`
	RequesterID string                `json:"requester_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    *string               `json:"category,omitempty"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
	ResolvedAt  *time.Time            `json:"resolved_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	ClosedAt    *time.Time            `json:"closed_at,omitempty"`
}

// TicketToResponse converts the domain model into the wire shape.
func TicketToResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		ExternalKey: ticket.ExternalKey,
		RequesterID: ticket.RequesterID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		Category:    ticket.Category,
		DueDate:     ticket.DueDate,
		ResolvedAt:  ticket.ResolvedAt,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		ClosedAt:    ticket.ClosedAt,
	}
}
