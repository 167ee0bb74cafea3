package domain

// StatsSummary holds per-status counts for a ticket collection. It is
// always derived by counting, never stored as independent state, so
// Open+Pending+Solved+Closed+Breached == Total whenever every ticket
// carries one of the enumerated statuses.
type StatsSummary struct {
	Total    int
	Open     int
	Pending  int
	Solved   int
	Closed   int
	Breached int
}

// Summarize counts status occurrences across the collection. A ticket
// with an unrecognized status counts toward Total only.
func Summarize(tickets []Ticket) StatsSummary {
	summary := StatsSummary{Total: len(tickets)}
	for _, ticket := range tickets {
		switch ticket.Status {
		case StatusOpen:
			summary.Open++
		case StatusPending:
			summary.Pending++
		case StatusSolved:
			summary.Solved++
		case StatusClosed:
			summary.Closed++
		case StatusBreached:
			summary.Breached++
		}
	}
	return summary
}

// Count returns the counter for the given status, zero for
// unrecognized values.
func (s StatsSummary) Count(status Status) int {
	switch status {
	case StatusOpen:
		return s.Open
	case StatusPending:
		return s.Pending
	case StatusSolved:
		return s.Solved
	case StatusClosed:
		return s.Closed
	case StatusBreached:
		return s.Breached
	}
	return 0
}
