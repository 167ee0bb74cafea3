package charts

import (
	"math"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// trendMonths is the fixed width of the creation-trend window.
const trendMonths = 6

// Slice is one entry of a distribution: a labeled count plus its share
// of the total, rounded to one decimal place.
type Slice struct {
	Label      string
	Count      int
	Percentage float64
}

// statusOrder fixes the rendering order of the status distribution.
var statusOrder = []domain.Status{
	domain.StatusPending,
	domain.StatusOpen,
	domain.StatusSolved,
	domain.StatusClosed,
	domain.StatusBreached,
}

// priorityOrder fixes the rendering order of the priority distribution.
var priorityOrder = []domain.Priority{
	domain.PriorityCritical,
	domain.PriorityHigh,
	domain.PriorityMedium,
	domain.PriorityLow,
}

// StatusDistribution counts tickets per status in the fixed order
// Pending, Open, Solved, Closed, Breached. Percentages are zero when
// the collection is empty.
func StatusDistribution(tickets []domain.Ticket) []Slice {
	total := len(tickets)
	slices := make([]Slice, 0, len(statusOrder))
	for _, status := range statusOrder {
		count := 0
		for _, ticket := range tickets {
			if ticket.Status == status {
				count++
			}
		}
		slices = append(slices, Slice{
			Label:      string(status),
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	return slices
}

// PriorityDistribution counts tickets per priority in the fixed order
// Critical, High, Medium, Low.
func PriorityDistribution(tickets []domain.Ticket) []Slice {
	total := len(tickets)
	slices := make([]Slice, 0, len(priorityOrder))
	for _, priority := range priorityOrder {
		count := 0
		for _, ticket := range tickets {
			if ticket.Priority == priority {
				count++
			}
		}
		slices = append(slices, Slice{
			Label:      string(priority),
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	return slices
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// TrendPoint is one month of the creation trend.
type TrendPoint struct {
	Month string
	Year  int
	Count int
}

// MonthlyTrend counts ticket creation per calendar month over the six
// months ending at now's month, oldest first. Each month spans its
// first day through its last day inclusive; months with no tickets are
// present with a zero count, so the result always has six entries.
func MonthlyTrend(tickets []domain.Ticket, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, trendMonths)
	for offset := trendMonths - 1; offset >= 0; offset-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -offset, 0)
		next := first.AddDate(0, 1, 0)

		count := 0
		for _, ticket := range tickets {
			created := ticket.CreatedAt.In(now.Location())
			if !created.Before(first) && created.Before(next) {
				count++
			}
		}
		points = append(points, TrendPoint{
			Month: first.Format("Jan"),
			Year:  first.Year(),
			Count: count,
		})
	}
	return points
}
