package sla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
)

func TestPolicySet_Lookup(t *testing.T) {
	set := NewPolicySet([]domain.SlaPolicy{
		{ID: "p1", Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 120},
		{ID: "p2", Priority: domain.TicketPriorityLow, MaxResolutionMinutes: 2880},
	})

	policy, ok := set.Lookup(domain.TicketPriorityHigh)
	require.True(t, ok)
	assert.Equal(t, 120, policy.MaxResolutionMinutes)

	_, ok = set.Lookup(domain.TicketPriorityCritical)
	assert.False(t, ok)
	assert.Equal(t, 2, set.Len())
}

func TestPolicySet_DuplicatePriorityLowestIDWins(t *testing.T) {
	// The winner must not depend on input order.
	orders := [][]domain.SlaPolicy{
		{
			{ID: "p1", Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 120},
			{ID: "p9", Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 480},
		},
		{
			{ID: "p9", Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 480},
			{ID: "p1", Priority: domain.TicketPriorityHigh, MaxResolutionMinutes: 120},
		},
	}
	for _, policies := range orders {
		set := NewPolicySet(policies)
		policy, ok := set.Lookup(domain.TicketPriorityHigh)
		require.True(t, ok)
		assert.Equal(t, "p1", policy.ID)
		assert.Equal(t, 120, policy.MaxResolutionMinutes)
	}
}
