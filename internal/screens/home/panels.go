package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/ui/components"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all panels.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int) string {
	title := theme.Title.Render("interviewx")
	sub := theme.Subtitle.Render("Practice interviews with an AI interviewer.")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

// renderProgressPanel shows the tier, the interviews counted towards the
// next test and the status sentence.
func renderProgressPanel(p profile.Progress, threshold int, status string, cw int) string {
	tierStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	lines := []string{tierStyle.Render("▲ " + p.Tier.Label())}

	if _, ok := p.Tier.Next(); ok {
		bar := components.NewCountBar("Interviews", min(p.InterviewsCompleted, threshold), threshold, cw-24)
		lines = append(lines, bar.View())
	} else {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d interviews at this level", p.InterviewsCompleted)))
	}
	lines = append(lines, theme.Body.Width(cw-4).Render(status))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func renderMenuPanel(menu string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(menu)
}

func renderFrame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func errorLine(msg string, cw int) string {
	return theme.ErrorText.Width(cw).Render(msg)
}
