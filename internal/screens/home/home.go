// Package home is the dashboard shown after the splash screen.
package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	iv "github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/screens/exam"
	interviewscreen "github.com/abhisek/interviewx/internal/screens/interview"
	"github.com/abhisek/interviewx/internal/screens/reports"
	"github.com/abhisek/interviewx/internal/screens/resources"
	"github.com/abhisek/interviewx/internal/screens/setup"
	"github.com/abhisek/interviewx/internal/ui/components"
	"github.com/abhisek/interviewx/internal/ui/layout"
)

const (
	itemResume = iota
	itemNew
	itemTest
	itemReports
	itemResources
	itemQuit
)

type loadedMsg struct {
	Progress     profile.Progress
	Paused       *iv.Snapshot
	Incompatible bool
	Err          error
}

// HomeScreen shows the candidate's standing and the main menu.
type HomeScreen struct {
	env      *screens.Env
	menu     components.Menu
	progress profile.Progress
	paused   *iv.Snapshot

	incompatible bool
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ router.Revealer = (*HomeScreen)(nil)

// New creates a HomeScreen. Progress is loaded by Init.
func New(env *screens.Env) *HomeScreen {
	h := &HomeScreen{env: env, progress: profile.New()}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Revealed reloads progress when a screen above the dashboard is popped.
func (h *HomeScreen) Revealed() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p, err := h.env.Practice.Progress(ctx)
		if err != nil {
			return loadedMsg{Err: err}
		}
		snap, err := h.env.Practice.Paused(ctx)
		switch {
		case errors.Is(err, iv.ErrIncompatibleSnapshot):
			log.Warn().Err(err).Msg("paused interview cannot be resumed")
			return loadedMsg{Progress: p, Incompatible: true}
		case err != nil:
			return loadedMsg{Progress: p, Err: err}
		}
		return loadedMsg{Progress: p, Paused: snap}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

// Progress returns the progress last loaded.
func (h *HomeScreen) Progress() profile.Progress {
	return h.progress
}

func (h *HomeScreen) buildMenu() {
	selected := -1
	if h.loaded {
		selected = h.menu.Selected
	}

	env := h.env
	tier := h.progress.Tier
	paused := h.paused

	resume := components.MenuItem{Label: "Resume interview", Disabled: true}
	switch {
	case paused != nil:
		resume.Disabled = false
		resume.Note = interviewscreen.Heading(paused.Params)
		resume.Action = func() tea.Cmd {
			return push(interviewscreen.Resume(env, paused, tier))
		}
	case h.incompatible:
		resume.Note = "saved interview is from another version"
	default:
		resume.Note = "nothing paused"
	}

	test := components.MenuItem{Label: "Promotion test", Disabled: true}
	if env.Practice != nil && env.Practice.TestEligible(h.progress) {
		test.Disabled = false
		if next, ok := tier.Next(); ok {
			test.Note = "unlock " + next.Label()
		}
		test.Action = func() tea.Cmd {
			return push(exam.New(env, tier))
		}
	} else if _, ok := tier.Next(); !ok {
		test.Note = "top tier reached"
	} else {
		test.Note = "locked"
	}

	items := []components.MenuItem{
		itemResume: resume,
		itemNew: {Label: "New interview", Action: func() tea.Cmd {
			return push(setup.New(env, tier))
		}},
		itemTest: test,
		itemReports: {Label: "Reports", Action: func() tea.Cmd {
			return push(reports.New(env))
		}},
		itemResources: {Label: "Resources", Note: "interview prep guides", Action: func() tea.Cmd {
			return push(resources.New(env))
		}},
		itemQuit: {Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	if selected >= 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) status() tea.Cmd {
	st := layout.Status{Tier: h.progress.Tier.Label()}
	if cfg := h.env.Config; cfg != nil {
		st.Language = language.Name(cfg.Language)
	}
	return func() tea.Msg { return screen.StatusMsg{Status: st} }
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			log.Error().Err(msg.Err).Msg("could not load progress")
			h.errMsg = "Could not load your progress: " + msg.Err.Error()
		} else {
			h.errMsg = ""
		}
		h.progress = msg.Progress
		if h.progress.Tier == "" {
			h.progress = profile.New()
		}
		h.paused = msg.Paused
		h.incompatible = msg.Incompatible
		h.buildMenu()
		h.loaded = true
		return h, h.status()

	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{renderTitle(cw)}
	threshold := profile.DefaultTestThreshold
	status := ""
	if h.env.Practice != nil {
		threshold = h.env.Practice.Threshold()
		status = h.env.Practice.Status(h.progress)
	}
	if h.loaded {
		sections = append(sections, renderProgressPanel(h.progress, threshold, status, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, errorLine(h.errMsg, cw))
	}
	sections = append(sections, renderMenuPanel(h.menu.View(), cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
