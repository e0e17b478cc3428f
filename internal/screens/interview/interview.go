// Package interview is the live interview screen. Session calls run inside
// tea.Cmd goroutines; session hooks are forwarded to the screen over a
// channel so that streamed chunks render as they arrive.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/interviewx/internal/config"
	"github.com/abhisek/interviewx/internal/conversation"
	iv "github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/screens/summary"
	"github.com/abhisek/interviewx/internal/transcript"
	"github.com/abhisek/interviewx/internal/ui/components"
	"github.com/abhisek/interviewx/internal/ui/layout"
	"github.com/abhisek/interviewx/internal/ui/theme"
)

// eventBuffer bounds how far the session can run ahead of rendering.
const eventBuffer = 64

// InterviewScreen drives one interview session.
type InterviewScreen struct {
	env    *screens.Env
	params iv.Params
	lang   string
	tier   profile.Tier
	resume *iv.Snapshot

	sess   *iv.Session
	events chan tea.Msg

	// done is closed when the screen is left so a waiting listener returns.
	done    chan struct{}
	stopped bool

	// Mirrors of session state, refreshed from updates. The session itself
	// is only touched while no command is running against it.
	turns     []transcript.Turn
	phase     iv.Phase
	reviewing bool
	focus     int
	position  int
	questions int

	busy        bool
	pending     string
	startFailed bool
	ended       bool
	leaving     bool
	errMsg      string

	input    components.TextInput
	spin     spinner.Model
	scrollUp int
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.EscapeHandler = (*InterviewScreen)(nil)

// New creates a screen that starts a fresh interview. Any paused interview
// is discarded once the session is created.
func New(env *screens.Env, params iv.Params, lang string, tier profile.Tier) *InterviewScreen {
	return newScreen(env, params, lang, tier, nil)
}

// Resume creates a screen that continues a paused interview.
func Resume(env *screens.Env, snap *iv.Snapshot, tier profile.Tier) *InterviewScreen {
	return newScreen(env, snap.Params, snap.Language, tier, snap)
}

func newScreen(env *screens.Env, params iv.Params, lang string, tier profile.Tier, snap *iv.Snapshot) *InterviewScreen {
	input := components.NewTextInput("Type your answer, or \""+conversation.TerminationPhrase+"\" to finish...", 0)
	input.Blur()
	return &InterviewScreen{
		env:    env,
		params: params,
		lang:   lang,
		tier:   tier,
		resume: snap,
		events: make(chan tea.Msg, eventBuffer),
		done:   make(chan struct{}),
		focus:  -1,
		busy:   true,
		input:  input,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(s.spin.Tick, s.start(), s.listen(), s.status())
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

func (s *InterviewScreen) HandlesEscape() bool { return true }

func (s *InterviewScreen) status() tea.Cmd {
	st := layout.Status{Tier: s.tier.Label(), Language: language.Name(s.lang)}
	return func() tea.Msg { return screen.StatusMsg{Status: st} }
}

func (s *InterviewScreen) options() iv.Options {
	events := s.events
	return iv.Options{
		Language: s.lang,
		Tier:     s.tier,
		Hooks: iv.Hooks{
			OnUpdate: func(u iv.Update) { events <- updateMsg(u) },
			OnEnded:  func(o *iv.Outcome) { events <- endedMsg{Outcome: o} },
		},
	}
}

// listen waits for the next hook event, or returns nothing once the
// screen has been left.
func (s *InterviewScreen) listen() tea.Cmd {
	events, done := s.events, s.done
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

// stop releases the hook listener. The session emits nothing further once
// it has ended or paused, or when the screen is abandoned.
func (s *InterviewScreen) stop() {
	if !s.stopped {
		s.stopped = true
		close(s.done)
	}
}

// leave stops listening and emits msg.
func (s *InterviewScreen) leave(msg tea.Msg) tea.Cmd {
	s.stop()
	return func() tea.Msg { return msg }
}

func (s *InterviewScreen) start() tea.Cmd {
	s.busy = true
	s.startFailed = false
	s.errMsg = ""
	env := s.env

	if sess := s.sess; sess != nil {
		return func() tea.Msg {
			return startedMsg{Session: sess, Err: sess.Start(context.Background())}
		}
	}

	if snap := s.resume; snap != nil {
		tier, opts := s.tier, s.options()
		return func() tea.Msg {
			sess, err := iv.Resume(context.Background(), env.Conversation, snap, tier, opts)
			return startedMsg{Session: sess, Err: err}
		}
	}

	params, opts := s.params, s.options()
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := iv.New(env.Conversation, params, opts)
		if err != nil {
			return startedMsg{Err: err}
		}
		if env.Practice != nil {
			if err := env.Practice.DiscardPaused(ctx); err != nil {
				log.Warn().Err(err).Msg("discard paused interview")
			}
		}
		return startedMsg{Session: sess, Err: sess.Start(ctx)}
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case updateMsg:
		s.turns = msg.Turns
		s.phase = msg.Phase
		if s.stopped || msg.Phase == iv.PhasePaused {
			return s, nil
		}
		return s, s.listen()

	case endedMsg:
		s.ended = true
		return s, s.complete(msg.Outcome)

	case exchangeDoneMsg:
		return s.handleExchangeDone(msg)

	case completedMsg:
		return s.handleCompleted(msg)

	case pausedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("Could not save the paused interview: %v", msg.Err)
			s.leaving = true
			return s, nil
		}
		return s, s.leave(router.PopToRootMsg{})

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if !s.busy {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Session != nil {
		s.sess = msg.Session
		s.sync()
	}
	if msg.Err != nil {
		s.errMsg = fmt.Sprintf("Could not start the interview: %v", msg.Err)
		// A session that failed to open can be retried; one that was never
		// created (invalid parameters or snapshot) cannot.
		s.startFailed = true
		if s.sess == nil {
			s.leaving = true
		}
		return s, nil
	}
	return s, s.input.Focus()
}

func (s *InterviewScreen) handleExchangeDone(msg exchangeDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.sync()
	if s.ended || s.phase == iv.PhaseEnded {
		return s, nil
	}
	if msg.Err != nil {
		var rejected *iv.ErrInvariant
		if errors.As(msg.Err, &rejected) {
			s.errMsg = rejected.Reason
		} else if iv.IsTermination(s.pending) {
			s.errMsg = fmt.Sprintf("Feedback could not be generated: %v. Send %q again to retry.", msg.Err, conversation.TerminationPhrase)
		} else {
			s.errMsg = fmt.Sprintf("The interviewer did not reply: %v. Your answer was kept; send again or skip.", msg.Err)
		}
	}
	s.pending = ""
	return s, s.input.Focus()
}

// complete records the finished interview and hands over to the feedback
// screen.
func (s *InterviewScreen) complete(out *iv.Outcome) tea.Cmd {
	env, tier := s.env, s.tier
	return func() tea.Msg {
		if env.Practice == nil {
			return completedMsg{Outcome: out}
		}
		c, err := env.Practice.CompleteInterview(context.Background(), out, tier)
		return completedMsg{Outcome: out, Completion: c, Err: err}
	}
}

func (s *InterviewScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	sum := summary.Summary{
		Heading:  Heading(msg.Outcome.Params),
		Feedback: msg.Outcome.Feedback,
	}
	if msg.Err != nil {
		log.Error().Err(msg.Err).Msg("record completed interview")
		sum.Notes = append(sum.Notes, fmt.Sprintf("This interview could not be saved: %v", msg.Err))
	}
	if c := msg.Completion; c != nil && s.env.Practice != nil {
		if s.env.Practice.TestEligible(c.Progress) {
			sum.Highlight = "Promotion test unlocked!"
		}
		sum.Notes = append(sum.Notes, s.env.Practice.Status(c.Progress))
	}
	s.rememberParams(msg.Outcome.Params)
	return s, s.leave(router.ReplaceScreenMsg{Screen: summary.NewFinal(sum)})
}

// rememberParams stores the parameters as the setup form's defaults.
func (s *InterviewScreen) rememberParams(p iv.Params) {
	if s.env.Config == nil || s.env.ConfigPath == "" {
		return
	}
	s.env.Config.LastInterview = &p
	if err := config.Save(s.env.ConfigPath, s.env.Config); err != nil {
		log.Warn().Err(err).Msg("save config")
	}
}

// sync refreshes the mirrors from the session. Only called when no
// command is running against it.
func (s *InterviewScreen) sync() {
	s.turns = s.sess.Turns()
	s.phase = s.sess.Phase()
	s.reviewing = s.sess.Reviewing()
	c := s.sess.Cursor()
	s.position, _ = c.Position()
	s.questions = c.Questions()
	if !s.reviewing {
		s.focus = -1
	}
}

func (s *InterviewScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.busy || s.ended {
		return s, nil
	}

	key := msg.String()

	if s.leaving {
		if key == "esc" || key == "enter" {
			return s, s.leave(router.PopToRootMsg{})
		}
		return s, nil
	}

	if s.startFailed {
		switch key {
		case "r":
			return s, s.start()
		case "esc":
			return s, s.leave(router.PopScreenMsg{})
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.reviewing {
			s.sess.FocusInput()
			s.sync()
			return s, nil
		}
		return s.pause()
	case "ctrl+p":
		return s.pause()
	case "ctrl+s":
		return s, s.exchange(true, "")
	case "ctrl+b", "alt+up":
		return s.step(s.sess.StepBack)
	case "ctrl+n", "alt+down":
		return s.step(s.sess.StepForward)
	case "pgup":
		s.scrollUp += 5
		return s, nil
	case "pgdown":
		s.scrollUp = max(s.scrollUp-5, 0)
		return s, nil
	case "enter":
		if s.reviewing {
			// Sending is only possible from the live question.
			s.sess.FocusInput()
			s.sync()
			return s, nil
		}
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		return s, s.exchange(false, text)
	}

	s.errMsg = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InterviewScreen) exchange(skip bool, text string) tea.Cmd {
	if !s.sess.CanSend() {
		return nil
	}
	s.busy = true
	s.errMsg = ""
	s.scrollUp = 0
	s.pending = text
	s.input.Reset()
	s.input.Blur()

	sess := s.sess
	return func() tea.Msg {
		ctx := context.Background()
		if skip {
			return exchangeDoneMsg{Err: sess.Skip(ctx)}
		}
		return exchangeDoneMsg{Err: sess.Send(ctx, text)}
	}
}

func (s *InterviewScreen) step(move func() (iv.Target, error)) (screen.Screen, tea.Cmd) {
	target, err := move()
	if err != nil {
		return s, nil
	}
	s.sync()
	s.focus = target.Index
	s.scrollUp = 0
	if target.Live {
		return s, s.input.Focus()
	}
	s.input.Blur()
	return s, nil
}

func (s *InterviewScreen) pause() (screen.Screen, tea.Cmd) {
	snap, err := s.sess.Pause()
	if err != nil {
		var rejected *iv.ErrInvariant
		if errors.As(err, &rejected) {
			s.errMsg = "Only an active interview can be paused."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	s.sync()
	s.busy = true
	env := s.env
	return s, func() tea.Msg {
		if env.Practice == nil {
			return pausedMsg{}
		}
		return pausedMsg{Err: env.Practice.SavePaused(context.Background(), snap)}
	}
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.leaving:
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	case s.startFailed:
		return []layout.KeyHint{{Key: "r", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	case s.busy || s.ended:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case s.reviewing:
		return []layout.KeyHint{
			{Key: "Ctrl+B", Description: "Earlier"},
			{Key: "Ctrl+N", Description: "Later"},
			{Key: "Esc", Description: "Live"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+S", Description: "Skip"},
	}
	if s.questions > 0 {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+B", Description: "Review"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Pause"})
}

// Heading names the interview as "Company · Role".
func Heading(p iv.Params) string {
	return p.CompanyName + " · " + p.JobRole
}
