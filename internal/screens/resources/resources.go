// Package resources is the interview-preparation reading screen.
package resources

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/resources"
	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/ui/components"
	"github.com/abhisek/interviewx/internal/ui/layout"
	"github.com/abhisek/interviewx/internal/ui/markdown"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

type phase int

const (
	phaseTopics phase = iota
	phaseLoading
	phaseArticle
)

// articleMsg carries a generated article. Seq ties it to the request that
// produced it so late replies for an abandoned topic are dropped.
type articleMsg struct {
	Seq     int
	Article *resources.Article
	Err     error
}

// ResourcesScreen lists preparation topics and shows a generated article
// for the one picked.
type ResourcesScreen struct {
	client   *resources.Client
	language string

	topics []string
	menu   components.Menu
	phase  phase
	spin   spinner.Model

	topic   string
	seq     int
	article *resources.Article
	cache   map[string]*resources.Article
	errMsg  string

	offset      int
	cacheWidth  int
	cachedLines []string
}

var _ screen.Screen = (*ResourcesScreen)(nil)
var _ screen.KeyHintProvider = (*ResourcesScreen)(nil)
var _ screen.EscapeHandler = (*ResourcesScreen)(nil)

// New creates a ResourcesScreen. Articles are written in the configured
// language.
func New(env *screens.Env) *ResourcesScreen {
	s := &ResourcesScreen{
		client:   env.Resources,
		language: language.Default,
		topics:   resources.Topics(),
		cache:    make(map[string]*resources.Article),
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if env.Config != nil && env.Config.Language != "" {
		s.language = env.Config.Language
	}

	items := make([]components.MenuItem, len(s.topics))
	for i, t := range s.topics {
		topic := t
		items[i] = components.MenuItem{Label: topic, Action: func() tea.Cmd {
			return s.open(topic, false)
		}}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *ResourcesScreen) Init() tea.Cmd {
	return nil
}

func (s *ResourcesScreen) Title() string {
	return "Resources"
}

func (s *ResourcesScreen) HandlesEscape() bool { return true }

func (s *ResourcesScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseArticle:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "r", Description: "Rewrite"},
			{Key: "Esc", Description: "Topics"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Read"},
		{Key: "Esc", Description: "Back"},
	}
}

// open shows the article for topic, generating it unless it was already
// written this visit or fresh is set.
func (s *ResourcesScreen) open(topic string, fresh bool) tea.Cmd {
	s.topic = topic
	s.errMsg = ""
	if art, ok := s.cache[topic]; ok && !fresh {
		s.show(art)
		return nil
	}

	s.seq++
	s.phase = phaseLoading
	seq, client, lang := s.seq, s.client, s.language
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		art, err := client.Article(context.Background(), topic, lang)
		return articleMsg{Seq: seq, Article: art, Err: err}
	})
}

func (s *ResourcesScreen) show(art *resources.Article) {
	s.article = art
	s.phase = phaseArticle
	s.offset = 0
	s.cachedLines = nil
}

func (s *ResourcesScreen) backToTopics() {
	s.seq++
	s.phase = phaseTopics
	s.article = nil
}

func (s *ResourcesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case articleMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		if msg.Err != nil {
			log.Error().Err(msg.Err).Str("topic", s.topic).Msg("could not generate article")
			s.backToTopics()
			s.errMsg = "Sorry, the article could not be written. Please try another topic."
			return s, nil
		}
		s.cache[msg.Article.Topic] = msg.Article
		s.show(msg.Article)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ResourcesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.phase {
	case phaseLoading:
		if key == "esc" {
			s.backToTopics()
		}
		return s, nil

	case phaseArticle:
		switch key {
		case "esc", "enter", "backspace", "q":
			s.backToTopics()
		case "r":
			return s, s.open(s.topic, true)
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

	if key == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResourcesScreen) scroll(n int) {
	s.offset += n
	if last := len(s.cachedLines) - 1; s.offset > last {
		s.offset = last
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *ResourcesScreen) lines(width int) []string {
	if width != s.cacheWidth || s.cachedLines == nil {
		s.cachedLines = strings.Split(markdown.Render(s.article.Content, width), "\n")
		s.cacheWidth = width
	}
	return s.cachedLines
}

func (s *ResourcesScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch s.phase {
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render(s.spin.View() + " Writing \"" + s.topic + "\"...")

	case phaseArticle:
		header := center.Foreground(theme.Primary).Bold(true).Render(s.article.Topic) + "\n"
		bodyHeight := max(height-lipgloss.Height(header)-1, 1)
		lines := s.lines(width - 4)
		start := min(s.offset, max(len(lines)-1, 0))
		end := min(start+bodyHeight, len(lines))
		return header + "\n" + strings.Join(lines[start:end], "\n")
	}

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Browse topics"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Short guides to help you prepare."))
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(center.Render(theme.ErrorText.Render(s.errMsg)))
		b.WriteString("\n\n")
	}
	b.WriteString(s.menu.View())
	return b.String()
}
