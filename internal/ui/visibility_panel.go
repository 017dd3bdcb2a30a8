package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-across/internal/across"
	"github.com/litescript/ls-across/internal/astro"
)

// Sun separation colors
const (
	colorSunSafe    = "#7CFC00" // at least 45°
	colorSunCaution = "#FFD700" // 20-45°
	colorSunWarning = "#FF4500" // under 20°
)

// TimeLayout is how tables print timestamps. Times are shown in UTC.
const TimeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(TimeLayout)
}

// FormatDuration renders d as 1h02m, 4m30s or 12s.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// WindowTable lists visibility windows. When target is set each window also
// shows the Sun separation at its midpoint.
//
//	Begin                End                  Length  From        To   Sun
//	2024-01-01 00:00:00  2024-01-01 00:30:00  30m00s  Earth Limb  SAA  112.4°
func WindowTable(title string, res across.VisibilityResult, target *astro.Position) Table {
	t := Table{
		Title:   title,
		Headers: []string{"Begin", "End", "Length", "From", "To"},
	}
	if target != nil {
		t.Headers = append(t.Headers, "Sun")
	}

	for _, w := range res.Entries {
		row := []string{
			formatTime(w.Begin.Time),
			formatTime(w.End.Time),
			FormatDuration(w.Length()),
			orDash(w.Initial),
			orDash(w.Final),
		}
		if target != nil {
			mid := w.Begin.Add(w.Length() / 2)
			row = append(row, colorSunSeparation(astro.SunSeparation(target.RA, target.Dec, mid)))
		}
		t.Rows = append(t.Rows, row)
	}
	if len(res.Entries) > 0 {
		t.Footer = fmt.Sprintf("%d windows, %s total", len(res.Entries), FormatDuration(res.Total()))
	}
	return t
}

// RenderSunSeparation renders a Sun separation angle with its tier.
func RenderSunSeparation(sepDeg float64) string {
	return dimStyle.Render("sun-sep: ") + colorSunSeparation(sepDeg)
}

func colorSunSeparation(sepDeg float64) string {
	tier := astro.GetSunSeparationTier(sepDeg)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(sunTierToColor(tier)))

	var status string
	switch tier {
	case astro.SunSepWarning:
		status = " (warning)"
	case astro.SunSepCaution:
		status = " (caution)"
	}
	return style.Render(fmt.Sprintf("%.1f°", sepDeg) + status)
}

// sunTierToColor returns the color for a sun separation tier.
func sunTierToColor(tier astro.SunSeparationTier) string {
	switch tier {
	case astro.SunSepWarning:
		return colorSunWarning
	case astro.SunSepCaution:
		return colorSunCaution
	default:
		return colorSunSafe
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
