package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/ui/layout"
)

type stubScreen struct {
	title   string
	escapes bool
	hints   []layout.KeyHint
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string { return s.title + " body" }
func (s *stubScreen) Title() string { return s.title }
func (s *stubScreen) HandlesEscape() bool { return s.escapes }
func (s *stubScreen) KeyHints() []layout.KeyHint { return s.hints }

func newTestModel(stack ...screen.Screen) AppModel {
	m := AppModel{router: router.New(stack[0])}
	for _, s := range stack[1:] {
		m.router.Push(s)
	}
	return m
}

func TestEscPopsScreen(t *testing.T) {
	m := newTestModel(&stubScreen{title: "Home"}, &stubScreen{title: "Reports"})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestEscLeftToScreen(t *testing.T) {
	m := newTestModel(&stubScreen{title: "Home"}, &stubScreen{title: "Interview", escapes: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.router.Depth())
}

func TestStatusShownInHeader(t *testing.T) {
	m := newTestModel(&stubScreen{title: "Home"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	updated, _ = updated.Update(screen.StatusMsg{Status: layout.Status{Tier: "Advanced", Language: "German"}})

	status := updated.(AppModel).status
	assert.Equal(t, "Advanced", status.Tier)
	assert.Equal(t, "German", status.Language)
	assert.Contains(t, layout.RenderHeader("Home", status, 100), "German")
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := newTestModel(&stubScreen{title: "Home", hints: []layout.KeyHint{{Key: "r", Description: "Retry"}}})
	hints := m.footerHints()
	require.Len(t, hints, 2)
	assert.Equal(t, "Retry", hints[0].Description)
}

func TestNewAppModelStartsOnSplash(t *testing.T) {
	m := newAppModel(&screens.Env{}, nil)
	assert.Equal(t, 1, m.router.Depth())
	assert.Empty(t, m.router.Active().Title())
	assert.NotNil(t, m.Init())
}

func TestNewAppModelWithStartScreen(t *testing.T) {
	m := newAppModel(&screens.Env{}, &stubScreen{title: "Interview"})
	require.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.NotNil(t, m.Init())
}
