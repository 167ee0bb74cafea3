package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Badge pairs the glyph and color used to render an enum value.
type Badge struct {
	Icon  string
	Color lipgloss.Color
}

// statusBadges covers every status; unrecognized values fall back to
// fallbackBadge instead of branching per value.
var statusBadges = map[domain.Status]Badge{
	domain.StatusOpen:     {Icon: "●", Color: lipgloss.Color("10")},
	domain.StatusPending:  {Icon: "◐", Color: lipgloss.Color("11")},
	domain.StatusSolved:   {Icon: "✔", Color: lipgloss.Color("12")},
	domain.StatusClosed:   {Icon: "■", Color: lipgloss.Color("8")},
	domain.StatusBreached: {Icon: "▲", Color: lipgloss.Color("9")},
}

var priorityBadges = map[domain.Priority]Badge{
	domain.PriorityLow:      {Icon: "▁", Color: lipgloss.Color("8")},
	domain.PriorityMedium:   {Icon: "▄", Color: lipgloss.Color("11")},
	domain.PriorityHigh:     {Icon: "▆", Color: lipgloss.Color("208")},
	domain.PriorityCritical: {Icon: "█", Color: lipgloss.Color("9")},
}

var fallbackBadge = Badge{Icon: "?", Color: lipgloss.Color("7")}

// StatusBadge returns the badge for a status.
func StatusBadge(status domain.Status) Badge {
	if badge, ok := statusBadges[status]; ok {
		return badge
	}
	return fallbackBadge
}

// PriorityBadge returns the badge for a priority.
func PriorityBadge(priority domain.Priority) Badge {
	if badge, ok := priorityBadges[priority]; ok {
		return badge
	}
	return fallbackBadge
}

// Render paints the given text in the badge's color, prefixed by its
// icon.
func (b Badge) Render(text string) string {
	return lipgloss.NewStyle().Foreground(b.Color).Render(b.Icon + " " + text)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(1, 2)

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)
