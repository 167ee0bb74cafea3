package store

import (
	"sync"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// TicketStore owns the authoritative in-memory ticket collection.
// Every derived view (stats, filtered lists, charts) is recomputed
// from a snapshot on demand; nothing derived is cached here, so the
// views cannot drift from the collection.
//
// The collection starts empty, is replaced wholesale by a successful
// fetch, and is patched in place by a status update. Tickets are never
// deleted client-side.
type TicketStore struct {
	mu          sync.RWMutex
	tickets     []domain.Ticket
	serverTotal int
	fetchSeq    uint64
	appliedSeq  uint64
	now         func() time.Time
}

// New creates an empty store.
func New() *TicketStore {
	return &TicketStore{now: time.Now}
}

// BeginFetch reserves a sequence number for a fetch that is about to
// start. ApplyFetch discards any response whose number is not newer
// than the newest applied one, so overlapping fetches cannot replace
// fresh data with stale data.
func (s *TicketStore) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq++
	return s.fetchSeq
}

// ApplyFetch replaces the collection with a fetch response. It returns
// false, leaving the collection untouched, when the response is stale.
func (s *TicketStore) ApplyFetch(seq uint64, tickets []domain.Ticket, total int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.replace(tickets, total)
	return true
}

// ReplaceAll replaces the collection outside of fetch sequencing.
func (s *TicketStore) ReplaceAll(tickets []domain.Ticket, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(tickets, total)
}

func (s *TicketStore) replace(tickets []domain.Ticket, total int) {
	s.tickets = append([]domain.Ticket(nil), tickets...)
	if total < len(tickets) {
		total = len(tickets)
	}
	s.serverTotal = total
}

// PatchStatus updates exactly one ticket's status and UpdatedAt in
// place, matching by opaque ID first and by human-readable code as a
// fallback. It returns false when no ticket matches.
func (s *TicketStore) PatchStatus(ticketID string, status domain.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == ticketID || s.tickets[i].TicketID == ticketID {
			s.tickets[i].Status = status
			s.tickets[i].UpdatedAt = s.now()
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the collection in its current order.
func (s *TicketStore) Snapshot() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Ticket(nil), s.tickets...)
}

// Len returns the collection size.
func (s *TicketStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// ServerTotal returns the server-reported total, kept consistent with
// the collection size on every replace.
func (s *TicketStore) ServerTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverTotal
}

// Stats recomputes the summary from the collection. It is a pure
// function of the current tickets; no counter is stored.
func (s *TicketStore) Stats() domain.StatsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.tickets)
}
