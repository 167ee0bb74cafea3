package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func fixtureTickets() []domain.Ticket {
	return []domain.Ticket{
		{TicketID: "TCK-001", Title: "Fix connection pooling leak", Description: "Pool exhausts under load", Status: domain.StatusOpen, Priority: domain.PriorityHigh},
		{TicketID: "TCK-002", Title: "Implement retry backoff", Description: "Transport layer", Status: domain.StatusPending, Priority: domain.PriorityLow},
		{TicketID: "TCK-003", Title: "Update CI pipeline config", Description: "Pin the runner image", Status: domain.StatusOpen, Priority: domain.PriorityCritical},
		{TicketID: "TCK-004", Title: "Login page blank", Description: "After the pooling change", Status: domain.StatusSolved, Priority: domain.PriorityHigh},
	}
}

func TestFilterEmptyCriteriaMatchesEverything(t *testing.T) {
	tickets := fixtureTickets()
	assert.Equal(t, tickets, Filter(tickets, Criteria{}))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	out := Filter(fixtureTickets(), Criteria{Search: "POOLING"})
	require.Len(t, out, 2)
	assert.Equal(t, "TCK-001", out[0].TicketID)
	assert.Equal(t, "TCK-004", out[1].TicketID)
}

func TestFilterSearchMatchesDescription(t *testing.T) {
	out := Filter(fixtureTickets(), Criteria{Search: "runner image"})
	require.Len(t, out, 1)
	assert.Equal(t, "TCK-003", out[0].TicketID)
}

func TestFilterSearchMatchesTicketCode(t *testing.T) {
	out := Filter(fixtureTickets(), Criteria{Search: "tck-002"})
	require.Len(t, out, 1)
	assert.Equal(t, "Implement retry backoff", out[0].Title)
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	status := domain.StatusOpen
	priority := domain.PriorityHigh
	out := Filter(fixtureTickets(), Criteria{Search: "pooling", Status: &status, Priority: &priority})
	require.Len(t, out, 1)
	assert.Equal(t, "TCK-001", out[0].TicketID)
}

func TestFilterStatusOnly(t *testing.T) {
	status := domain.StatusOpen
	out := Filter(fixtureTickets(), Criteria{Status: &status})
	require.Len(t, out, 2)
	assert.Equal(t, "TCK-001", out[0].TicketID)
	assert.Equal(t, "TCK-003", out[1].TicketID)
}

func TestFilterNoMatch(t *testing.T) {
	out := Filter(fixtureTickets(), Criteria{Search: "kubernetes"})
	assert.Empty(t, out)
}

func TestFilterIsIdempotent(t *testing.T) {
	priority := domain.PriorityHigh
	criteria := Criteria{Search: "the", Priority: &priority}

	once := Filter(fixtureTickets(), criteria)
	twice := Filter(once, criteria)

	assert.Equal(t, once, twice)
}

func TestFilterPreservesOrder(t *testing.T) {
	out := Filter(fixtureTickets(), Criteria{Search: "e"})
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].TicketID, out[i].TicketID)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tickets := fixtureTickets()
	_ = Filter(tickets, Criteria{Search: "pooling"})
	assert.Equal(t, fixtureTickets(), tickets)
}
