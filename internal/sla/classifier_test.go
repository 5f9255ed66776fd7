package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/tracker-service/internal/domain"
)

func TestClassify(t *testing.T) {
	due := at(6, 10, 0)

	ticket := func(dueDate, resolvedAt *time.Time) *domain.Ticket {
		return &domain.Ticket{DueDate: dueDate, ResolvedAt: resolvedAt}
	}
	ptr := func(v time.Time) *time.Time { return &v }

	tests := []struct {
		name       string
		dueDate    *time.Time
		resolvedAt *time.Time
		now        time.Time
		want       Outcome
	}{
		{"no deadline", nil, ptr(at(6, 9, 0)), at(6, 11, 0), OutcomeNoDeadline},
		{"resolved before deadline", &due, ptr(at(6, 9, 50)), at(6, 11, 0), OutcomeMet},
		{"resolved exactly on deadline", &due, &due, at(6, 11, 0), OutcomeMet},
		{"resolved after deadline", &due, ptr(at(6, 10, 5)), at(6, 11, 0), OutcomeMissed},
		{"open and overdue", &due, nil, at(6, 11, 0), OutcomeMissed},
		{"open inside deadline", &due, nil, at(6, 9, 55), OutcomeInFlight},
		{"open exactly at deadline", &due, nil, due, OutcomeInFlight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(ticket(tc.dueDate, tc.resolvedAt), tc.now))
		})
	}
}

func TestOutcome_Decidable(t *testing.T) {
	assert.True(t, OutcomeMet.Decidable())
	assert.True(t, OutcomeMissed.Decidable())
	assert.False(t, OutcomeInFlight.Decidable())
	assert.False(t, OutcomeNoDeadline.Decidable())
}
