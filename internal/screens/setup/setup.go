// Package setup is the form that collects the interview parameters.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	iv "github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	interviewscreen "github.com/abhisek/interviewx/internal/screens/interview"
	"github.com/abhisek/interviewx/internal/ui/components"
	"github.com/abhisek/interviewx/internal/ui/layout"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

const (
	fieldCompany = iota
	fieldRole
	fieldURL
	fieldLanguage
	fieldCount
)

// SetupScreen collects the company, role, URL and interview language.
type SetupScreen struct {
	env       *screens.Env
	tier      profile.Tier
	inputs    [fieldLanguage]components.TextInput
	languages []language.Language
	langIdx   int
	focus     int
	errMsg    string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen prefilled from the last interview and the
// configured language.
func New(env *screens.Env, tier profile.Tier) *SetupScreen {
	s := &SetupScreen{
		env:       env,
		tier:      tier,
		languages: language.All(),
	}

	s.inputs[fieldCompany] = components.NewTextInput("e.g. Acme Corp", 100)
	s.inputs[fieldCompany].Label = "Company name"
	s.inputs[fieldRole] = components.NewTextInput("e.g. Senior Backend Engineer", 100)
	s.inputs[fieldRole].Label = "Job role"
	s.inputs[fieldURL] = components.NewTextInput("https://", 200)
	s.inputs[fieldURL].Label = "Company website"

	lang := language.Default
	if cfg := env.Config; cfg != nil {
		if cfg.Language != "" {
			lang = cfg.Language
		}
		if last := cfg.LastInterview; last != nil {
			s.inputs[fieldCompany].SetValue(last.CompanyName)
			s.inputs[fieldRole].SetValue(last.JobRole)
			s.inputs[fieldURL].SetValue(last.CompanyURL)
		}
	}
	if l, ok := language.Lookup(lang); ok {
		for i, candidate := range s.languages {
			if candidate.Code == l.Code {
				s.langIdx = i
			}
		}
	}

	s.setFocus(fieldCompany)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.inputs[fieldCompany].Init()
}

func (s *SetupScreen) Title() string {
	return "New Interview"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
	}
	if s.focus == fieldLanguage {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Language"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// Params returns the parameters as currently entered.
func (s *SetupScreen) Params() iv.Params {
	return iv.Params{
		CompanyName: strings.TrimSpace(s.inputs[fieldCompany].Value()),
		JobRole:     strings.TrimSpace(s.inputs[fieldRole].Value()),
		CompanyURL:  strings.TrimSpace(s.inputs[fieldURL].Value()),
	}
}

// Language returns the selected language code.
func (s *SetupScreen) Language() string {
	return s.languages[s.langIdx].Code
}

func (s *SetupScreen) setFocus(field int) tea.Cmd {
	s.focus = (field + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range s.inputs {
		if i == s.focus {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focus < fieldLanguage {
			var cmd tea.Cmd
			s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "enter":
		if s.focus < fieldLanguage {
			return s, s.setFocus(s.focus + 1)
		}
		return s, s.submit()
	case "ctrl+s":
		return s, s.submit()
	}

	if s.focus == fieldLanguage {
		switch kmsg.String() {
		case "left", "h":
			s.langIdx = (s.langIdx - 1 + len(s.languages)) % len(s.languages)
		case "right", "l", "space":
			s.langIdx = (s.langIdx + 1) % len(s.languages)
		}
		return s, nil
	}

	s.errMsg = ""
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

// submit validates the form and replaces it with the interview screen.
func (s *SetupScreen) submit() tea.Cmd {
	params := s.Params()
	if err := params.Validate(); err != nil {
		s.errMsg = err.Error()
		first := -1
		for i, v := range []string{params.CompanyName, params.JobRole, params.CompanyURL} {
			if v == "" {
				s.inputs[i].Invalidate("required")
				if first < 0 {
					first = i
				}
			}
		}
		if first < 0 {
			first = fieldURL
			s.inputs[fieldURL].Invalidate("enter an http(s) address")
		}
		return s.setFocus(first)
	}

	next := interviewscreen.New(s.env, params, s.Language(), s.tier)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	fieldWidth := min(width-8, 60)
	var b strings.Builder

	b.WriteString(theme.Title.Width(fieldWidth).Render("Set up your interview"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(fieldWidth).Render("Tier: " + s.tier.Label()))
	b.WriteString("\n\n")

	for i := range s.inputs {
		s.inputs[i].SetWidth(fieldWidth - 4)
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if s.focus == fieldLanguage {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		valueStyle = theme.Selected
	}
	b.WriteString(labelStyle.Render("Interview language"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("◂ " + s.languages[s.langIdx].Name + " ▸"))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(fieldWidth).Render(s.errMsg))
	}

	form := theme.Card.Width(fieldWidth + 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
