package view

import (
	"strings"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Criteria captures the active search text plus optional status and
// priority constraints. A nil constraint matches every ticket.
type Criteria struct {
	Search   string
	Status   *domain.Status
	Priority *domain.Priority
}

// Empty reports whether no predicate is active.
func (c Criteria) Empty() bool {
	return c.Search == "" && c.Status == nil && c.Priority == nil
}

// Filter returns the tickets matching all three predicates, preserving
// the input order. The input slice is never mutated, and filtering an
// already-filtered list with the same criteria is a no-op.
func Filter(tickets []domain.Ticket, criteria Criteria) []domain.Ticket {
	query := strings.ToLower(criteria.Search)

	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if !matchesSearch(ticket, query) {
			continue
		}
		if criteria.Status != nil && ticket.Status != *criteria.Status {
			continue
		}
		if criteria.Priority != nil && ticket.Priority != *criteria.Priority {
			continue
		}
		out = append(out, ticket)
	}
	return out
}

// matchesSearch is a case-insensitive substring match against title,
// description, and the human-readable ticket code. An empty query
// matches everything.
func matchesSearch(ticket domain.Ticket, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(ticket.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(ticket.Description), query) {
		return true
	}
	return strings.Contains(strings.ToLower(ticket.TicketID), query)
}
