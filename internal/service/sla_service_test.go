package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/observability"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/internal/sla"
)

type slaRepoStub struct {
	hours    *domain.WorkingHours
	policies []domain.SlaPolicy

	hoursReads int
}

func (s *slaRepoStub) GetWorkingHours(_ context.Context) (*domain.WorkingHours, error) {
	s.hoursReads++
	if s.hours == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *s.hours
	return &copied, nil
}

func (s *slaRepoStub) UpsertWorkingHours(_ context.Context, hours *domain.WorkingHours) error {
	hours.UpdatedAt = time.Now()
	copied := *hours
	s.hours = &copied
	return nil
}

func (s *slaRepoStub) ListPolicies(_ context.Context) ([]domain.SlaPolicy, error) {
	return append([]domain.SlaPolicy{}, s.policies...), nil
}

func (s *slaRepoStub) ReplacePolicies(_ context.Context, policies []domain.SlaPolicy) error {
	for i := range policies {
		policies[i].ID = "p" + string(rune('1'+i))
	}
	s.policies = append([]domain.SlaPolicy{}, policies...)
	return nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]string{}}
}

func (c *memCache) GetString(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok, nil
}

func (c *memCache) SetString(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func newSlaService(repo *slaRepoStub, tickets repository.TicketRepository, cache SnapshotCache) *SlaService {
	return NewSlaService(SlaDependencies{
		SlaRepo:    repo,
		TicketRepo: tickets,
		Cache:      cache,
		Logger:     zap.NewNop(),
		Metrics:    observability.NewMetrics(),
	})
}

// 2025-01-06 is a Monday.
func instant(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC)
}

func defaultRepo() *slaRepoStub {
	hours := domain.DefaultWorkingHours()
	return &slaRepoStub{
		hours: &hours,
		policies: []domain.SlaPolicy{
			{ID: "p1", Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 120},
		},
	}
}

func TestSlaService_DueDateFor(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps deadline from configuration", func(t *testing.T) {
		svc := newSlaService(defaultRepo(), nil, nil)
		due, err := svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
		require.NoError(t, err)
		require.NotNil(t, due)
		assert.Equal(t, instant(7, 10, 0), *due)
	})

	t.Run("no policy means no deadline", func(t *testing.T) {
		svc := newSlaService(defaultRepo(), nil, nil)
		due, err := svc.DueDateFor(ctx, domain.TicketPriorityLow, instant(6, 17, 0))
		require.NoError(t, err)
		assert.Nil(t, due)
	})

	t.Run("empty work days is a configuration error", func(t *testing.T) {
		repo := defaultRepo()
		repo.hours.Days = nil
		svc := newSlaService(repo, nil, nil)
		due, err := svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
		assert.Nil(t, due)
		assert.True(t, sla.IsConfigError(err))
	})

	t.Run("missing row falls back to default calendar", func(t *testing.T) {
		repo := defaultRepo()
		repo.hours = nil
		svc := newSlaService(repo, nil, nil)
		due, err := svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
		require.NoError(t, err)
		require.NotNil(t, due)
		assert.Equal(t, instant(7, 10, 0), *due)
	})
}

func TestSlaService_DueDateFor_CountsEngineOutcomes(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewMetrics()
	repo := defaultRepo()
	svc := NewSlaService(SlaDependencies{
		SlaRepo: repo,
		Logger:  zap.NewNop(),
		Metrics: metrics,
	})

	_, err := svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
	require.NoError(t, err)
	_, err = svc.DueDateFor(ctx, domain.TicketPriorityLow, instant(6, 17, 0))
	require.NoError(t, err)

	repo.hours.Days = nil
	_, err = svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
	require.Error(t, err)

	assert.Equal(t, int64(1), metrics.SlaEventCount("deadline_stamped"))
	assert.Equal(t, int64(1), metrics.SlaEventCount("no_policy"))
	assert.Equal(t, int64(1), metrics.SlaEventCount("config_error"))
}

func TestSlaService_SnapshotCaching(t *testing.T) {
	ctx := context.Background()
	repo := defaultRepo()
	cache := newMemCache()
	svc := newSlaService(repo, nil, cache)

	_, err := svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
	require.NoError(t, err)
	readsAfterFirst := repo.hoursReads

	_, err = svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 17, 0))
	require.NoError(t, err)
	assert.Equal(t, readsAfterFirst, repo.hoursReads, "second calculation should hit the cache")

	// A configuration write invalidates the snapshot so later calculations
	// observe the new calendar.
	hours := domain.DefaultWorkingHours()
	hours.EndMinute = 17 * 60
	_, err = svc.UpdateWorkingHours(ctx, hours)
	require.NoError(t, err)

	due, err := svc.DueDateFor(ctx, domain.TicketPriorityHigh, instant(6, 16, 0))
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, instant(7, 10, 0), *due, "new 17:00 shift end should apply")
}

func TestSlaService_UpdateWorkingHours_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newSlaService(defaultRepo(), nil, nil)

	t.Run("rejects empty day set", func(t *testing.T) {
		hours := domain.DefaultWorkingHours()
		hours.Days = nil
		_, err := svc.UpdateWorkingHours(ctx, hours)
		assert.True(t, sla.IsConfigError(err))
	})

	t.Run("rejects inverted shift", func(t *testing.T) {
		hours := domain.DefaultWorkingHours()
		hours.StartMinute, hours.EndMinute = hours.EndMinute, hours.StartMinute
		_, err := svc.UpdateWorkingHours(ctx, hours)
		assert.True(t, sla.IsConfigError(err))
	})

	t.Run("accepts inert holiday flag", func(t *testing.T) {
		hours := domain.DefaultWorkingHours()
		hours.HolidayProcessingEnabled = true
		updated, err := svc.UpdateWorkingHours(ctx, hours)
		require.NoError(t, err)
		assert.True(t, updated.HolidayProcessingEnabled)
	})
}

func TestSlaService_ReplacePolicies_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newSlaService(defaultRepo(), nil, nil)

	t.Run("rejects duplicate priorities", func(t *testing.T) {
		_, err := svc.ReplacePolicies(ctx, []PolicyInput{
			{Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 60},
			{Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 120},
		})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive budget", func(t *testing.T) {
		_, err := svc.ReplacePolicies(ctx, []PolicyInput{
			{Priority: domain.TicketPriorityLow, MaxResolutionMinutes: 0},
		})
		assert.Error(t, err)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		_, err := svc.ReplacePolicies(ctx, []PolicyInput{
			{Priority: "URGENT", MaxResolutionMinutes: 60},
		})
		assert.Error(t, err)
	})

	t.Run("replaces valid set", func(t *testing.T) {
		policies, err := svc.ReplacePolicies(ctx, []PolicyInput{
			{Priority: domain.TicketPriorityCritical, MaxResolutionMinutes: 60},
			{Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 240},
		})
		require.NoError(t, err)
		assert.Len(t, policies, 2)
	})
}

func TestSlaService_ComplianceReport(t *testing.T) {
	ctx := context.Background()
	now := instant(16, 12, 0)
	due := instant(15, 10, 0)
	resolved := instant(15, 9, 0)
	category := "Network"

	tickets := &ticketRepoStub{
		reportTickets: []domain.Ticket{
			{Category: &category, CreatedAt: instant(14, 9, 0), DueDate: &due, ResolvedAt: &resolved},
			{Category: &category, CreatedAt: instant(14, 9, 5), DueDate: &due},
		},
	}
	svc := newSlaService(defaultRepo(), tickets, nil)

	rows, err := svc.ComplianceReport(ctx, sla.WindowWeekly, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Network", rows[0].Category)
	assert.Equal(t, 2, rows[0].TotalImpacted)
	assert.Equal(t, 1, rows[0].MetCount)
	assert.Equal(t, 1, rows[0].MissedCount)
	assert.Equal(t, 50.0, rows[0].ComplianceRate)
	assert.Equal(t, sla.WindowWeekly.Start(now), tickets.reportFrom)
}
