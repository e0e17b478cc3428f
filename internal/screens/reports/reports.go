// Package reports lists finished interviews and their feedback.
package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/practice"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/screens/summary"
	"github.com/abhisek/interviewx/internal/store"
	"github.com/abhisek/interviewx/internal/ui/layout"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

const listLimit = 100

type reportsLoadedMsg struct {
	Reports []store.Report
	Err     error
}

type exportedMsg struct {
	Path string
	Err  error
}

// ReportsScreen displays past interview reports, newest first.
type ReportsScreen struct {
	repo      store.ReportRepo
	exportDir string
	reports   []store.Report
	selected  int
	offset    int
	loaded    bool
	errMsg    string
	notice    string
}

var _ screen.Screen = (*ReportsScreen)(nil)
var _ screen.KeyHintProvider = (*ReportsScreen)(nil)

// New creates a ReportsScreen. Exports are written to the working
// directory.
func New(env *screens.Env) *ReportsScreen {
	return &ReportsScreen{repo: env.Reports, exportDir: "."}
}

func (s *ReportsScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		reps, err := repo.List(context.Background(), store.QueryOpts{Limit: listLimit})
		return reportsLoadedMsg{Reports: reps, Err: err}
	}
}

func (s *ReportsScreen) Title() string {
	return "Reports"
}

func (s *ReportsScreen) KeyHints() []layout.KeyHint {
	if len(s.reports) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Feedback"},
		{Key: "e", Description: "Export JSON"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.reports = msg.Reports
		}
		s.loaded = true
		return s, nil

	case exportedMsg:
		if msg.Err != nil {
			log.Error().Err(msg.Err).Msg("report export failed")
			s.notice = ""
			s.errMsg = "Export failed: " + msg.Err.Error()
		} else {
			s.errMsg = ""
			s.notice = "Exported to " + msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.reports)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if rep, ok := s.current(); ok {
				next := summary.New(Feedback(rep))
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
			return s, nil
		case "e":
			if rep, ok := s.current(); ok {
				return s, s.export(rep)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *ReportsScreen) current() (store.Report, bool) {
	if s.selected < 0 || s.selected >= len(s.reports) {
		return store.Report{}, false
	}
	return s.reports[s.selected], true
}

func (s *ReportsScreen) export(rep store.Report) tea.Cmd {
	path := filepath.Join(s.exportDir, practice.ExportFileName(&rep))
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{Err: err}
		}
		if err := practice.ExportReport(f, &rep); err != nil {
			f.Close()
			return exportedMsg{Err: err}
		}
		if err := f.Close(); err != nil {
			return exportedMsg{Err: err}
		}
		log.Info().Int64("report", rep.ID).Str("path", path).Msg("report exported")
		return exportedMsg{Path: path}
	}
}

// Feedback builds the feedback view of a stored report.
func Feedback(rep store.Report) summary.Summary {
	notes := []string{rep.CreatedAt.Local().Format("Jan 02, 2006 15:04")}
	if tier, err := profile.ParseTier(rep.Tier); err == nil {
		notes = append(notes, "Level: "+tier.Label())
	}
	if rep.Language != "" {
		notes = append(notes, "Language: "+language.Name(rep.Language))
	}
	return summary.Summary{
		Heading:  rep.CompanyName + " · " + rep.JobRole,
		Feedback: rep.Feedback,
		Notes:    notes,
	}
}

func (s *ReportsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading reports...")
	}
	if len(s.reports) == 0 {
		if s.errMsg != "" {
			return lipgloss.NewStyle().
				Width(width).Align(lipgloss.Center).Foreground(theme.Error).
				Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
		}
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No reports yet. Finish an interview to get feedback.")
	}

	rows := max(height-4, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}
	end := min(s.offset+rows, len(s.reports))

	var b strings.Builder
	b.WriteString("\n")
	for i := s.offset; i < end; i++ {
		rep := s.reports[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s#%-3d %s  %s · %s  %s",
			prefix, rep.Sequence, rep.CreatedAt.Local().Format("Jan 02, 2006"),
			rep.CompanyName, rep.JobRole, language.Name(rep.Language))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	switch {
	case s.errMsg != "":
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.ErrorText.Render(s.errMsg)))
	case s.notice != "":
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(s.notice)))
	}
	return b.String()
}
