package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketsWithStatuses(counts map[Status]int) []Ticket {
	var tickets []Ticket
	for status, n := range counts {
		for i := 0; i < n; i++ {
			tickets = append(tickets, Ticket{Status: status})
		}
	}
	return tickets
}

func TestSummarizeScenario(t *testing.T) {
	tickets := ticketsWithStatuses(map[Status]int{
		StatusOpen:    3,
		StatusPending: 2,
		StatusSolved:  5,
	})

	summary := Summarize(tickets)

	assert.Equal(t, StatsSummary{Total: 10, Open: 3, Pending: 2, Solved: 5}, summary)
}

func TestSummarizeCountsSumToTotal(t *testing.T) {
	mixes := []map[Status]int{
		{},
		{StatusOpen: 1},
		{StatusBreached: 4, StatusClosed: 1},
		{StatusOpen: 2, StatusPending: 2, StatusSolved: 2, StatusClosed: 2, StatusBreached: 2},
	}
	for _, mix := range mixes {
		summary := Summarize(ticketsWithStatuses(mix))
		sum := summary.Open + summary.Pending + summary.Solved + summary.Closed + summary.Breached
		assert.Equal(t, summary.Total, sum)
	}
}

func TestSummarizeUnknownStatusCountsTowardTotalOnly(t *testing.T) {
	tickets := []Ticket{
		{Status: StatusOpen},
		{Status: Status("Escalated")},
	}

	summary := Summarize(tickets)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Open)
	sum := summary.Open + summary.Pending + summary.Solved + summary.Closed + summary.Breached
	assert.Equal(t, 1, sum)
}

func TestParseStatus(t *testing.T) {
	status, ok := ParseStatus("breached")
	require.True(t, ok)
	assert.Equal(t, StatusBreached, status)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestParsePriority(t *testing.T) {
	priority, ok := ParsePriority("CRITICAL")
	require.True(t, ok)
	assert.Equal(t, PriorityCritical, priority)

	_, ok = ParsePriority("urgent")
	assert.False(t, ok)
}

func TestUserRefFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", UserRef{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", UserRef{FirstName: "Ada"}.FullName())
	assert.Equal(t, "", UserRef{}.FullName())
}
