package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	iv "github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/transcript"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	info := s.renderInfoLine(width)
	status := s.renderStatusLine()
	input := "  " + s.input.View()

	bodyHeight := height - lipgloss.Height(info) - lipgloss.Height(status) - lipgloss.Height(input) - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if len(s.turns) == 0 {
		body = lipgloss.NewStyle().
			Width(width).
			Height(bodyHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render(s.emptyText())
	} else {
		lines, starts := renderTranscript(s.turns, s.focus, width-4)
		body = strings.Join(s.window(lines, starts, bodyHeight), "\n")
		body = lipgloss.NewStyle().Height(bodyHeight).Render(body)
	}

	return info + "\n" + body + "\n" + status + "\n\n" + input
}

func (s *InterviewScreen) emptyText() string {
	if s.errMsg != "" {
		return ""
	}
	if s.resume != nil {
		return s.spin.View() + " Resuming the interview..."
	}
	return s.spin.View() + " Connecting to the interviewer..."
}

func (s *InterviewScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + Heading(s.params))

	var progress string
	switch {
	case s.reviewing:
		progress = fmt.Sprintf("Reviewing question %d of %d", s.position, s.questions)
	case s.questions > 0:
		progress = fmt.Sprintf("Question %d", s.questions)
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(progress)

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	sep := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
	return line + "\n  " + sep
}

func (s *InterviewScreen) renderStatusLine() string {
	var text string
	switch {
	case s.errMsg != "":
		text = theme.ErrorText.Render(s.errMsg)
		if s.startFailed && !s.leaving {
			text += "  " + theme.Hint.Render("Press r to retry.")
		}
	case s.ended:
		text = s.spin.View() + " Saving your report..."
	case s.busy && s.phase == iv.PhasePaused:
		text = s.spin.View() + " Saving your progress..."
	case s.busy && iv.IsTermination(s.pending):
		text = s.spin.View() + " Preparing your feedback..."
	case s.busy && s.sess != nil:
		text = s.spin.View() + " The interviewer is typing..."
	case s.reviewing:
		text = theme.Hint.Render("Reviewing earlier questions. Press Esc to return to the live question.")
	}
	return "  " + text
}

// window picks the visible slice of the transcript: the focused turn while
// reviewing, otherwise the latest lines minus any manual scroll.
func (s *InterviewScreen) window(lines []string, starts []int, height int) []string {
	if len(lines) <= height {
		s.scrollUp = 0
		return lines
	}
	if s.focus >= 0 && s.focus < len(starts) {
		start := min(starts[s.focus], len(lines)-height)
		return lines[start : start+height]
	}
	s.scrollUp = min(s.scrollUp, len(lines)-height)
	end := len(lines) - s.scrollUp
	return lines[end-height : end]
}

// renderTranscript renders every turn and returns the lines together with
// the first line of each turn.
func renderTranscript(turns []transcript.Turn, focus, width int) ([]string, []int) {
	var lines []string
	starts := make([]int, len(turns))
	textStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-2, 10))

	for i, t := range turns {
		label := theme.CandidateLabel.Render("You")
		if t.Role == transcript.RoleInterviewer {
			label = theme.InterviewerLabel.Render("Interviewer")
		}
		text := t.Text
		if text == "" {
			text = "…"
		}
		block := label + "\n" + textStyle.Render(text)

		style := theme.Unfocused
		if i == focus {
			style = theme.Focused
		}

		starts[i] = len(lines)
		lines = append(lines, strings.Split(style.Render(block), "\n")...)
		lines = append(lines, "")
	}
	return lines, starts
}
