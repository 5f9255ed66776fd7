package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
)

func testPolicies(minutes map[domain.TicketPriority]int) PolicySet {
	policies := make([]domain.SlaPolicy, 0, len(minutes))
	i := 0
	for priority, budget := range minutes {
		i++
		policies = append(policies, domain.SlaPolicy{
			ID:                   string(rune('a' + i)),
			Priority:             priority,
			MaxResolutionMinutes: budget,
		})
	}
	return NewPolicySet(policies)
}

func TestCalculator_DueDate(t *testing.T) {
	cal := weekdayCalendar(t)

	tests := []struct {
		name     string
		budget   int
		priority domain.TicketPriority
		start    time.Time
		want     time.Time
	}{
		{
			// Consumes 60 min to Mon 18:00, jumps to Tue 09:00, consumes 60 more.
			name:     "budget spills into next day",
			budget:   120,
			priority: domain.TicketPriorityHigh,
			start:    at(6, 17, 0),
			want:     at(7, 10, 0),
		},
		{
			// Consumes 30 min to Fri 18:00, jumps over the weekend.
			name:     "budget spills over the weekend",
			budget:   60,
			priority: domain.TicketPriorityMedium,
			start:    at(10, 17, 30),
			want:     at(13, 9, 30),
		},
		{
			name:     "fits inside the current shift",
			budget:   90,
			priority: domain.TicketPriorityCritical,
			start:    at(6, 9, 15),
			want:     at(6, 10, 45),
		},
		{
			name:     "before shift jumps to same-day start",
			budget:   30,
			priority: domain.TicketPriorityHigh,
			start:    at(6, 7, 10),
			want:     at(6, 9, 30),
		},
		{
			name:     "weekend start jumps to monday",
			budget:   60,
			priority: domain.TicketPriorityHigh,
			start:    at(11, 14, 0),
			want:     at(13, 10, 0),
		},
		{
			name:     "start at exact shift end consumes nothing that day",
			budget:   15,
			priority: domain.TicketPriorityHigh,
			start:    at(6, 18, 0),
			want:     at(7, 9, 15),
		},
		{
			// 540 min per shift; 1200 min = two full shifts plus 120.
			name:     "budget spans multiple full shifts",
			budget:   1200,
			priority: domain.TicketPriorityLow,
			start:    at(6, 9, 0),
			want:     at(8, 11, 0),
		},
		{
			// 5400 min = exactly 10 full shifts, two working weeks.
			name:     "multi-week budget of whole shifts",
			budget:   5400,
			priority: domain.TicketPriorityLow,
			start:    at(6, 9, 0),
			want:     at(17, 18, 0),
		},
		{
			name:     "multi-week budget with partial final shift",
			budget:   5430,
			priority: domain.TicketPriorityLow,
			start:    at(6, 9, 0),
			want:     at(20, 9, 30),
		},
		{
			name:     "seconds are truncated",
			budget:   10,
			priority: domain.TicketPriorityHigh,
			start:    time.Date(2025, 1, 6, 10, 0, 42, 0, time.UTC),
			want:     at(6, 10, 10),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := NewCalculator(cal, testPolicies(map[domain.TicketPriority]int{tc.priority: tc.budget}))
			due, err := calc.DueDate(tc.priority, tc.start)
			require.NoError(t, err)
			require.NotNil(t, due)
			assert.Equal(t, tc.want, *due)
		})
	}
}

func TestCalculator_DueDate_NoPolicy(t *testing.T) {
	calc := NewCalculator(weekdayCalendar(t), NewPolicySet(nil))
	due, err := calc.DueDate(domain.TicketPriorityLow, at(6, 9, 0))
	require.NoError(t, err)
	assert.Nil(t, due)
}

func TestCalculator_DueDate_Idempotent(t *testing.T) {
	calc := NewCalculator(weekdayCalendar(t), testPolicies(map[domain.TicketPriority]int{
		domain.TicketPriorityHigh: 480,
	}))
	start := at(9, 16, 45)

	first, err := calc.DueDate(domain.TicketPriorityHigh, start)
	require.NoError(t, err)
	second, err := calc.DueDate(domain.TicketPriorityHigh, start)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestCalculator_DueDate_MonotonicInBudget(t *testing.T) {
	cal := weekdayCalendar(t)
	start := at(10, 17, 0)

	var previous time.Time
	for budget := 30; budget <= 6000; budget += 30 {
		calc := NewCalculator(cal, testPolicies(map[domain.TicketPriority]int{
			domain.TicketPriorityMedium: budget,
		}))
		due, err := calc.DueDate(domain.TicketPriorityMedium, start)
		require.NoError(t, err)
		require.NotNil(t, due)
		if !previous.IsZero() {
			assert.False(t, due.Before(previous), "budget %d produced an earlier deadline", budget)
		}
		previous = *due
	}
}

func TestCalculator_DueDate_EmptyCalendarFailsFast(t *testing.T) {
	// A zero-value Calendar models the empty-workdays misconfiguration that
	// NewCalendar normally rejects at the boundary.
	calc := NewCalculator(Calendar{startMin: 9 * 60, endMin: 18 * 60}, testPolicies(map[domain.TicketPriority]int{
		domain.TicketPriorityHigh: 60,
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		due, err := calc.DueDate(domain.TicketPriorityHigh, at(6, 10, 0))
		assert.Nil(t, due)
		assert.True(t, IsConfigError(err))
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("due-date computation did not terminate")
	}
}

func TestCalculator_DueDate_NonPositiveBudget(t *testing.T) {
	calc := NewCalculator(weekdayCalendar(t), NewPolicySet([]domain.SlaPolicy{
		{ID: "a", Priority: domain.TicketPriorityLow, MaxResolutionMinutes: 0},
	}))
	due, err := calc.DueDate(domain.TicketPriorityLow, at(6, 10, 0))
	assert.Nil(t, due)
	assert.True(t, IsConfigError(err))
}
