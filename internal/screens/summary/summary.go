// Package summary shows an interview's closing feedback.
package summary

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/ui/layout"
	"github.com/abhisek/interviewx/internal/ui/markdown"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

// Summary is what the screen displays.
type Summary struct {
	// Heading names the interview, e.g. "Acme · Backend Engineer".
	Heading  string
	Feedback string

	// Highlight is shown prominently above the feedback when set.
	Highlight string

	// Notes are dimmed status lines under the heading.
	Notes []string
}

// SummaryScreen renders the feedback markdown and lets the candidate
// scroll through it.
type SummaryScreen struct {
	summary Summary
	// home unwinds to the dashboard on exit instead of popping one screen.
	home bool

	offset      int
	cacheWidth  int
	cachedLines []string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen that returns to the previous screen.
func New(s Summary) *SummaryScreen {
	return &SummaryScreen{summary: s}
}

// NewFinal creates a SummaryScreen shown at the end of an interview; leaving
// it returns to the dashboard.
func NewFinal(s Summary) *SummaryScreen {
	return &SummaryScreen{summary: s, home: true}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Interview Feedback"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc", "q":
		if s.home {
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		s.scroll(-1)
	case "down", "j":
		s.scroll(1)
	case "pgup":
		s.scroll(-10)
	case "pgdown", "space":
		s.scroll(10)
	case "home", "g":
		s.offset = 0
	}
	return s, nil
}

func (s *SummaryScreen) scroll(n int) {
	s.offset += n
	if last := len(s.cachedLines) - 1; s.offset > last {
		s.offset = last
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *SummaryScreen) lines(width int) []string {
	if width != s.cacheWidth || s.cachedLines == nil {
		body := s.summary.Feedback
		if strings.TrimSpace(body) == "" {
			body = "_No feedback was returned._"
		}
		s.cachedLines = strings.Split(markdown.Render(body, width), "\n")
		s.cacheWidth = width
	}
	return s.cachedLines
}

func (s *SummaryScreen) View(width, height int) string {
	var head strings.Builder

	head.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Interview complete"))
	head.WriteString("\n")
	if s.summary.Heading != "" {
		head.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Text).Render(s.summary.Heading))
		head.WriteString("\n")
	}
	if s.summary.Highlight != "" {
		head.WriteString("\n")
		head.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Success).Bold(true).Render(s.summary.Highlight))
		head.WriteString("\n")
	}
	for _, n := range s.summary.Notes {
		head.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render(n))
		head.WriteString("\n")
	}

	header := head.String()
	bodyHeight := height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	lines := s.lines(width - 4)
	start := min(s.offset, max(len(lines)-1, 0))
	end := min(start+bodyHeight, len(lines))

	return header + "\n" + strings.Join(lines[start:end], "\n")
}
