package sla

import "github.com/spec-kit/tracker-service/internal/domain"

// PolicySet is an immutable lookup from priority to resolution budget,
// built from one configuration snapshot.
//
// Storage does not guarantee one policy row per priority. When duplicates
// exist the row with the smallest ID wins, so the outcome is deterministic
// regardless of input order.
type PolicySet struct {
	byPriority map[domain.TicketPriority]domain.SlaPolicy
}

// NewPolicySet indexes a snapshot of policy rows.
func NewPolicySet(policies []domain.SlaPolicy) PolicySet {
	byPriority := make(map[domain.TicketPriority]domain.SlaPolicy, len(policies))
	for _, policy := range policies {
		existing, ok := byPriority[policy.Priority]
		if ok && existing.ID <= policy.ID {
			continue
		}
		byPriority[policy.Priority] = policy
	}
	return PolicySet{byPriority: byPriority}
}

// Lookup returns the policy for a priority. A missing policy is a normal
// outcome meaning the priority carries no SLA commitment.
func (s PolicySet) Lookup(priority domain.TicketPriority) (domain.SlaPolicy, bool) {
	policy, ok := s.byPriority[priority]
	return policy, ok
}

// Len returns the number of distinct priorities with a policy.
func (s PolicySet) Len() int {
	return len(s.byPriority)
}
