package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/internal/sla"
)

// TicketService coordinates ticket workflows and their SLA stamps.
type TicketService struct {
	tickets    repository.TicketRepository
	sla        *SlaService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Sla        *SlaService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    *string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	Category    *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		sla:        deps.Sla,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket creates a ticket and stamps its SLA deadline once, from the
// configuration in effect at creation time. An unusable SLA configuration
// fails soft: the ticket is stored without a deadline and excluded from SLA
// tracking.
func (s *TicketService) CreateTicket(ctx context.Context, requesterID string, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		RequesterID: requesterID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    normalizeCategory(input.Category),
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if !domain.IsValidPriority(ticket.Priority) {
		return nil, errors.New("unknown priority")
	}

	createdAt := time.Now()
	due, err := s.sla.DueDateFor(ctx, ticket.Priority, createdAt)
	if err != nil {
		if !sla.IsConfigError(err) {
			return nil, err
		}
		s.logger.Warn("sla configuration unusable; ticket stored without deadline",
			zap.String("priority", string(ticket.Priority)),
			zap.Error(err),
		)
		due = nil
	}
	ticket.DueDate = due

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  &requesterID,
		Payload: events.TicketCreatedPayload{
			Priority: ticket.Priority,
			Category: ticket.Category,
			DueDate:  ticket.DueDate,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns paginated tickets for a requester.
func (s *TicketService) ListTickets(ctx context.Context, requesterID string, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		RequesterID: &requesterID,
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		Category:    filter.Category,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetTicket fetches a ticket ensuring ownership unless the caller is staff.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.UserRoleRequester && ticket.RequesterID != actor.ID {
		return nil, errors.New("access denied")
	}
	return ticket, nil
}

// UpdateStatus transitions a ticket. Entering RESOLVED stamps ResolvedAt;
// reopening from RESOLVED clears it again so the ticket re-enters the
// undecided population.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus, comment string) (*domain.Ticket, error) {
	if actor.Role == domain.UserRoleRequester {
		return nil, errors.New("access denied")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, errors.New("invalid status transition")
	}

	now := time.Now()
	oldStatus := ticket.Status
	switch newStatus {
	case domain.TicketStatusResolved:
		ticket.ResolvedAt = &now
	case domain.TicketStatusClosed:
		ticket.ClosedAt = &now
	case domain.TicketStatusInProgress:
		if oldStatus == domain.TicketStatusResolved {
			ticket.ResolvedAt = nil
		}
	}
	ticket.Status = newStatus

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  &actor.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
		},
	})
	if newStatus == domain.TicketStatusResolved {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketResolved,
			TicketID: ticket.ID,
			ActorID:  &actor.ID,
			Payload: events.TicketResolvedPayload{
				ResolvedAt: now,
				DueDate:    ticket.DueDate,
			},
		})
	}
	return ticket, nil
}

func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func generateTicketKey() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusCancelled},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusCancelled},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	domain.TicketStatusClosed:     {},
	domain.TicketStatusCancelled:  {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
