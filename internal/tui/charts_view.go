package tui

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-dashboard/internal/charts"
)

// maxBarWidth bounds the widest chart bar in cells.
const maxBarWidth = 30

// renderDistribution draws one labeled bar per slice with its count
// and percentage.
func renderDistribution(title string, slices []charts.Slice) string {
	peak := 0
	for _, slice := range slices {
		if slice.Count > peak {
			peak = slice.Count
		}
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	for _, slice := range slices {
		bar := barStyle.Render(strings.Repeat("█", scaleBar(slice.Count, peak)))
		b.WriteString(fmt.Sprintf("  %-9s %s %d (%.1f%%)\n", slice.Label, bar, slice.Count, slice.Percentage))
	}
	return b.String()
}

// renderTrend draws the six-month creation trend, oldest first.
func renderTrend(points []charts.TrendPoint) string {
	peak := 0
	for _, point := range points {
		if point.Count > peak {
			peak = point.Count
		}
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Created (last 6 months)"))
	b.WriteString("\n")
	for _, point := range points {
		bar := barStyle.Render(strings.Repeat("█", scaleBar(point.Count, peak)))
		b.WriteString(fmt.Sprintf("  %s %d  %s %d\n", point.Month, point.Year, bar, point.Count))
	}
	return b.String()
}

func scaleBar(count, peak int) int {
	if count <= 0 || peak <= 0 {
		return 0
	}
	width := count * maxBarWidth / peak
	if width < 1 {
		width = 1
	}
	return width
}
