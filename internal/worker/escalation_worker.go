package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/repository"
)

const (
	overdueMarkerPrefix = "sla:overdue_notified:"
	overdueMarkerTTL    = 24 * time.Hour
)

// OverdueMarker deduplicates overdue notifications across sweeps. A nil
// marker publishes on every sweep.
type OverdueMarker interface {
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// EscalationWorker periodically finds open tickets past their deadline and
// publishes a ticket_overdue event once per ticket.
type EscalationWorker struct {
	tickets    repository.TicketRepository
	marker     OverdueMarker
	dispatcher events.Dispatcher
	logger     *zap.Logger
	interval   time.Duration
}

// NewEscalationWorker constructs the worker.
func NewEscalationWorker(tickets repository.TicketRepository, marker OverdueMarker, dispatcher events.Dispatcher, logger *zap.Logger, interval time.Duration) *EscalationWorker {
	return &EscalationWorker{
		tickets:    tickets,
		marker:     marker,
		dispatcher: dispatcher,
		logger:     logger,
		interval:   interval,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *EscalationWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Sweep(ctx)
			}
		}
	}()
}

// Sweep performs one pass over the overdue population.
func (w *EscalationWorker) Sweep(ctx context.Context) {
	now := time.Now()
	overdue, err := w.tickets.ListOverdue(ctx, now)
	if err != nil {
		w.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}

	published := 0
	for i := range overdue {
		ticket := &overdue[i]
		if ticket.DueDate == nil {
			continue
		}
		if !w.claim(ctx, ticket.ID) {
			continue
		}
		_ = w.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketOverdue,
			TicketID:  ticket.ID,
			Timestamp: now,
			Payload: events.TicketOverduePayload{
				DueDate:        *ticket.DueDate,
				OverdueMinutes: int(now.Sub(*ticket.DueDate).Minutes()),
				Priority:       ticket.Priority,
			},
		})
		published++
	}
	if published > 0 {
		w.logger.Info("overdue tickets escalated", zap.Int("count", published))
	}
}

func (w *EscalationWorker) claim(ctx context.Context, ticketID string) bool {
	if w.marker == nil {
		return true
	}
	claimed, err := w.marker.SetIfAbsent(ctx, overdueMarkerPrefix+ticketID, "1", overdueMarkerTTL)
	if err != nil {
		// Better to notify twice than never.
		w.logger.Warn("overdue marker unavailable", zap.Error(err))
		return true
	}
	return claimed
}
