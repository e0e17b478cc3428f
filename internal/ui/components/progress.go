package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewx/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar, either as a percentage
// or as a count towards a target ("2/3").
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	count, target int
}

// NewProgressBar creates a new percentage progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// NewCountBar creates a progress bar for count out of target.
func NewCountBar(label string, count, target, width int) ProgressBar {
	p := ProgressBar{Label: label, Width: width, count: count, target: target}
	if target > 0 {
		p.Percent = float64(count) / float64(target)
	}
	if p.Percent > 1 {
		p.Percent = 1
	}
	return p
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	var suffix string
	switch {
	case p.target > 0:
		suffix = fmt.Sprintf("  %d/%d", p.count, p.target)
	case p.ShowPercent:
		suffix = fmt.Sprintf("  %d%%", int(p.Percent*100))
	}

	barWidth := p.Width - lipgloss.Width(result) - len(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}

	return result
}
