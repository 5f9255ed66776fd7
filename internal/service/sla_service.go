package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/observability"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/internal/sla"
)

const (
	slaSnapshotCacheKey = "sla:config_snapshot"
	slaSnapshotCacheTTL = time.Hour
)

// SnapshotCache caches the serialized SLA configuration snapshot. A nil
// cache (or one returning misses) degrades to repository reads.
type SnapshotCache interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// SlaService owns the SLA configuration surface and runs the SLA engine
// over consistent configuration snapshots.
type SlaService struct {
	slaRepo    repository.SlaRepository
	ticketRepo repository.TicketRepository
	cache      SnapshotCache
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// SlaDependencies bundles collaborators for the SLA service.
type SlaDependencies struct {
	SlaRepo    repository.SlaRepository
	TicketRepo repository.TicketRepository
	Cache      SnapshotCache
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewSlaService constructs the service.
func NewSlaService(deps SlaDependencies) *SlaService {
	return &SlaService{
		slaRepo:    deps.SlaRepo,
		ticketRepo: deps.TicketRepo,
		cache:      deps.Cache,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// PolicyInput describes one policy row on the replace surface.
type PolicyInput struct {
	Priority             domain.TicketPriority
	MaxResolutionMinutes int
}

// WorkingHours returns the current calendar, creating the default one on
// first access.
func (s *SlaService) WorkingHours(ctx context.Context) (*domain.WorkingHours, error) {
	hours, err := s.slaRepo.GetWorkingHours(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		defaults := domain.DefaultWorkingHours()
		if err := s.slaRepo.UpsertWorkingHours(ctx, &defaults); err != nil {
			return nil, err
		}
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return hours, nil
}

// UpdateWorkingHours validates and replaces the calendar. Updates apply to
// calculations performed afterward only; existing deadlines are untouched.
func (s *SlaService) UpdateWorkingHours(ctx context.Context, hours domain.WorkingHours) (*domain.WorkingHours, error) {
	if _, err := sla.NewCalendar(hours); err != nil {
		return nil, err
	}
	if err := s.slaRepo.UpsertWorkingHours(ctx, &hours); err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)
	s.logger.Info("working hours updated",
		zap.Int("start_minute", hours.StartMinute),
		zap.Int("end_minute", hours.EndMinute),
		zap.Int("work_days", len(hours.Days)),
	)
	return &hours, nil
}

// Policies lists the configured policy rows.
func (s *SlaService) Policies(ctx context.Context) ([]domain.SlaPolicy, error) {
	return s.slaRepo.ListPolicies(ctx)
}

// ReplacePolicies validates and replaces the whole policy table. The
// configuration boundary enforces one policy per priority even though
// storage tolerates duplicates.
func (s *SlaService) ReplacePolicies(ctx context.Context, inputs []PolicyInput) ([]domain.SlaPolicy, error) {
	seen := make(map[domain.TicketPriority]struct{}, len(inputs))
	policies := make([]domain.SlaPolicy, 0, len(inputs))
	for _, input := range inputs {
		if !domain.IsValidPriority(input.Priority) {
			return nil, fmt.Errorf("unknown priority %q", input.Priority)
		}
		if input.MaxResolutionMinutes <= 0 {
			return nil, fmt.Errorf("resolution budget for %s must be positive", input.Priority)
		}
		if _, dup := seen[input.Priority]; dup {
			return nil, fmt.Errorf("duplicate policy for priority %s", input.Priority)
		}
		seen[input.Priority] = struct{}{}
		policies = append(policies, domain.SlaPolicy{
			Priority:             input.Priority,
			MaxResolutionMinutes: input.MaxResolutionMinutes,
		})
	}
	if err := s.slaRepo.ReplacePolicies(ctx, policies); err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)
	s.logger.Info("sla policies replaced", zap.Int("count", len(policies)))
	return policies, nil
}

// DueDateFor computes the resolution deadline for a ticket of the given
// priority created at the given instant, against the configuration in
// effect right now. nil,nil means no SLA commitment. A *sla.ConfigError
// means the calendar is unusable; callers decide whether that is soft.
func (s *SlaService) DueDateFor(ctx context.Context, priority domain.TicketPriority, createdAt time.Time) (*time.Time, error) {
	hours, policies, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	calendar, err := sla.NewCalendar(*hours)
	if err != nil {
		s.metrics.RecordSlaEvent("config_error")
		return nil, err
	}
	due, err := sla.NewCalculator(calendar, sla.NewPolicySet(policies)).DueDate(priority, createdAt)
	switch {
	case err != nil:
		s.metrics.RecordSlaEvent("config_error")
	case due == nil:
		s.metrics.RecordSlaEvent("no_policy")
	default:
		s.metrics.RecordSlaEvent("deadline_stamped")
	}
	return due, err
}

// ComplianceReport aggregates the decidable SLA outcomes per category for
// the requested window ending now.
func (s *SlaService) ComplianceReport(ctx context.Context, window sla.Window, now time.Time) ([]sla.ComplianceRow, error) {
	tickets, err := s.ticketRepo.ListForReport(ctx, window.Start(now))
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSlaEvent("report_generated")
	return sla.Aggregate(tickets, window, now), nil
}

// configSnapshot is the cached JSON shape of one consistent configuration
// read.
type configSnapshot struct {
	Hours    domain.WorkingHours `json:"hours"`
	Policies []domain.SlaPolicy  `json:"policies"`
}

func (s *SlaService) snapshot(ctx context.Context) (*domain.WorkingHours, []domain.SlaPolicy, error) {
	if cached, ok := s.cachedSnapshot(ctx); ok {
		return &cached.Hours, cached.Policies, nil
	}

	hours, err := s.WorkingHours(ctx)
	if err != nil {
		return nil, nil, err
	}
	policies, err := s.slaRepo.ListPolicies(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.storeSnapshot(ctx, configSnapshot{Hours: *hours, Policies: policies})
	return hours, policies, nil
}

func (s *SlaService) cachedSnapshot(ctx context.Context) (*configSnapshot, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.GetString(ctx, slaSnapshotCacheKey)
	if err != nil {
		s.logger.Debug("sla snapshot cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var snapshot configSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logger.Debug("sla snapshot cache corrupt", zap.Error(err))
		return nil, false
	}
	return &snapshot, true
}

func (s *SlaService) storeSnapshot(ctx context.Context, snapshot configSnapshot) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.SetString(ctx, slaSnapshotCacheKey, string(raw), slaSnapshotCacheTTL); err != nil {
		s.logger.Debug("sla snapshot cache write failed", zap.Error(err))
	}
}

func (s *SlaService) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, slaSnapshotCacheKey); err != nil {
		s.logger.Warn("sla snapshot cache invalidation failed", zap.Error(err))
	}
}
