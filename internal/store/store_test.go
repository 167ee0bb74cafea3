package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func fixtureTickets() []domain.Ticket {
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	return []domain.Ticket{
		{ID: "id-1", TicketID: "TCK-001", Title: "Login broken", Status: domain.StatusOpen, UpdatedAt: base},
		{ID: "id-2", TicketID: "TCK-002", Title: "Slow reports", Status: domain.StatusPending, UpdatedAt: base},
		{ID: "id-3", TicketID: "TCK-003", Title: "Export fails", Status: domain.StatusSolved, UpdatedAt: base},
	}
}

func TestReplaceAllAndStats(t *testing.T) {
	s := New()
	s.ReplaceAll(fixtureTickets(), 3)

	stats := s.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Solved)
	assert.Equal(t, 3, s.ServerTotal())
}

func TestServerTotalNeverBelowCollectionSize(t *testing.T) {
	s := New()
	s.ReplaceAll(fixtureTickets(), 1)
	assert.Equal(t, 3, s.ServerTotal())
}

func TestPatchStatusUpdatesExactlyOneTicket(t *testing.T) {
	s := New()
	s.ReplaceAll(fixtureTickets(), 3)

	before := s.Snapshot()[0].UpdatedAt
	require.True(t, s.PatchStatus("id-1", domain.StatusClosed))

	snapshot := s.Snapshot()
	assert.Equal(t, domain.StatusClosed, snapshot[0].Status)
	assert.True(t, snapshot[0].UpdatedAt.After(before))
	assert.Equal(t, domain.StatusPending, snapshot[1].Status)
	assert.Equal(t, domain.StatusSolved, snapshot[2].Status)
}

func TestPatchStatusMatchesHumanReadableCode(t *testing.T) {
	s := New()
	s.ReplaceAll(fixtureTickets(), 3)

	require.True(t, s.PatchStatus("TCK-002", domain.StatusBreached))
	assert.Equal(t, domain.StatusBreached, s.Snapshot()[1].Status)
}

func TestPatchStatusUnknownTicketIsNoOp(t *testing.T) {
	s := New()
	s.ReplaceAll(fixtureTickets(), 3)

	assert.False(t, s.PatchStatus("id-999", domain.StatusClosed))
	assert.Equal(t, domain.StatusOpen, s.Snapshot()[0].Status)
}

func TestApplyFetchDiscardsStaleResponses(t *testing.T) {
	s := New()

	older := s.BeginFetch()
	newer := s.BeginFetch()

	fresh := fixtureTickets()
	require.True(t, s.ApplyFetch(newer, fresh, 3))

	stale := []domain.Ticket{{ID: "stale", TicketID: "TCK-OLD", Status: domain.StatusOpen}}
	assert.False(t, s.ApplyFetch(older, stale, 1))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "id-1", snapshot[0].ID)
}

func TestApplyFetchSameSequenceRejected(t *testing.T) {
	s := New()
	seq := s.BeginFetch()
	require.True(t, s.ApplyFetch(seq, fixtureTickets(), 3))
	assert.False(t, s.ApplyFetch(seq, nil, 0))
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.ReplaceAll(fixtureTickets(), 3)

	snapshot := s.Snapshot()
	snapshot[0].Status = domain.StatusBreached

	assert.Equal(t, domain.StatusOpen, s.Snapshot()[0].Status)
}

func TestEmptyStore(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())
	assert.Equal(t, domain.StatsSummary{}, s.Stats())
}
