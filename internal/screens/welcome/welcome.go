package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

const (
	tickInterval = 50 * time.Millisecond
	bannerDelay  = 300 * time.Millisecond
)

const bannerArt = `
 ╻┏┓╻╺┳╸┏━╸┏━┓╻ ╻╻┏━╸╻ ╻╻ ╻
 ┃┃┗┫ ┃ ┣╸ ┣┳┛┃┏┛┃┣╸ ┃╻┃┏╋┛
 ╹╹ ╹ ╹ ┗━╸╹┗╸┗┛ ╹┗━╸┗┻┛╹ ╹`

const bannerCompact = "i n t e r v i e w x"

// Tagline is typed out one rune per tick under the banner.
const Tagline = "Practice interviews with an AI interviewer."

type tickMsg time.Time

// WelcomeScreen shows a short splash before the dashboard.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	typed        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by the screen next builds.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Done reports whether the tagline is fully typed.
func (w *WelcomeScreen) Done() bool {
	return w.typed >= len([]rune(Tagline))
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.Done() {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= bannerDelay {
			w.typed++
		}
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	banner := bannerArt
	if width < 40 {
		banner = bannerCompact
	}
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner),
		"",
	}

	if w.elapsed >= bannerDelay {
		runes := []rune(Tagline)
		n := min(w.typed, len(runes))
		line := string(runes[:n])
		if !w.Done() {
			line += "▌"
		}
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line))
	}

	if w.Done() {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
