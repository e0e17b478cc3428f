// Package exam is the promotion test screen.
package exam

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/interviewx/internal/assessment"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/promotion"
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
	phaseLoading phase = iota
	phaseAnswering
	phaseGrading
	phaseResult
)

type begunMsg struct {
	Attempt *promotion.Attempt
	Err     error
}

type gradedMsg struct {
	Result   *assessment.Result
	Promoted bool
	Progress profile.Progress
	Err      error
}

// ExamScreen generates a promotion test, collects one answer per question,
// grades it and applies the outcome.
type ExamScreen struct {
	env     *screens.Env
	tier    profile.Tier
	ctrl    *promotion.Controller
	attempt *promotion.Attempt

	choices []components.MultiChoice
	current int
	phase   phase
	spin    spinner.Model

	result   *assessment.Result
	promoted bool
	progress profile.Progress

	errMsg      string
	beginFailed bool
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.EscapeHandler = (*ExamScreen)(nil)

// New creates an ExamScreen for a candidate at tier.
func New(env *screens.Env, tier profile.Tier) *ExamScreen {
	return &ExamScreen{
		env:  env,
		tier: tier,
		ctrl: promotion.New(env.Generator, promotion.WithAttemptRepo(env.Attempts)),
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	return tea.Batch(s.spin.Tick, s.begin())
}

func (s *ExamScreen) begin() tea.Cmd {
	s.phase = phaseLoading
	s.errMsg = ""
	s.beginFailed = false
	ctrl, tier := s.ctrl, s.tier
	return func() tea.Msg {
		a, err := ctrl.Begin(context.Background(), tier)
		return begunMsg{Attempt: a, Err: err}
	}
}

func (s *ExamScreen) submit() tea.Cmd {
	if !s.attempt.Complete() {
		s.errMsg = fmt.Sprintf("Answer all %d questions before submitting.", len(s.attempt.Questions))
		return nil
	}
	s.phase = phaseGrading
	s.errMsg = ""
	return tea.Batch(s.spin.Tick, s.grade())
}

// grade submits the attempt and stores the outcome.
func (s *ExamScreen) grade() tea.Cmd {
	attempt, practice := s.attempt, s.env.Practice
	return func() tea.Msg {
		ctx := context.Background()
		res, err := attempt.Submit(ctx)
		if err != nil {
			return gradedMsg{Err: err}
		}
		promoted, p, err := practice.ApplyTestResult(ctx, res)
		if err != nil {
			log.Error().Err(err).Msg("could not store test outcome")
		}
		return gradedMsg{Result: res, Promoted: promoted, Progress: p}
	}
}

func (s *ExamScreen) Title() string {
	return "Promotion Test"
}

// HandlesEscape keeps the router from popping while grading.
func (s *ExamScreen) HandlesEscape() bool {
	return true
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter", Description: "Choose"},
			{Key: "←→", Description: "Question"},
		}
		if s.attempt.Complete() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Abandon"})
	case phaseResult:
		return []layout.KeyHint{
			{Key: "←→", Description: "Question"},
			{Key: "Enter", Description: "Done"},
		}
	case phaseLoading:
		if s.beginFailed {
			return []layout.KeyHint{
				{Key: "r", Description: "Retry"},
				{Key: "Esc", Description: "Back"},
			}
		}
	}
	return nil
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.phase != phaseLoading && s.phase != phaseGrading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case begunMsg:
		if msg.Err != nil {
			log.Error().Err(msg.Err).Msg("could not generate promotion test")
			s.errMsg = "The test could not be prepared: " + msg.Err.Error()
			s.beginFailed = true
			return s, nil
		}
		s.attempt = msg.Attempt
		s.choices = make([]components.MultiChoice, len(msg.Attempt.Questions))
		for i, q := range msg.Attempt.Questions {
			s.choices[i] = components.NewMultiChoice(q.Question, q.Options)
		}
		s.current = 0
		s.phase = phaseAnswering
		return s, nil

	case gradedMsg:
		if msg.Err != nil {
			log.Error().Err(msg.Err).Msg("could not grade promotion test")
			s.phase = phaseAnswering
			s.errMsg = "Grading failed: " + msg.Err.Error() + " Press Ctrl+S to try again."
			return s, nil
		}
		s.result = msg.Result
		s.promoted = msg.Promoted
		s.progress = msg.Progress
		s.reveal()
		s.current = 0
		s.phase = phaseResult
		if s.promoted {
			return s, s.status()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) status() tea.Cmd {
	st := layout.Status{Tier: s.progress.Tier.Label()}
	if cfg := s.env.Config; cfg != nil {
		st.Language = language.Name(cfg.Language)
	}
	return func() tea.Msg { return screen.StatusMsg{Status: st} }
}

// reveal marks the correct option of every question.
func (s *ExamScreen) reveal() {
	for i, q := range s.attempt.Questions {
		for _, d := range s.result.Detailed {
			if d.QuestionID == q.ID {
				s.choices[i].Reveal(d.CorrectAnswer)
			}
		}
	}
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	pop := func() tea.Msg { return router.PopScreenMsg{} }

	switch s.phase {
	case phaseLoading:
		switch {
		case key == "esc":
			return s, pop
		case key == "r" && s.beginFailed:
			return s, tea.Batch(s.spin.Tick, s.begin())
		}
		return s, nil

	case phaseGrading:
		return s, nil

	case phaseResult:
		switch key {
		case "left", "h", "shift+tab":
			s.move(-1)
		case "right", "l", "tab":
			s.move(1)
		case "enter", "esc", "q":
			return s, pop
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, pop
	case "ctrl+s":
		return s, s.submit()
	case "left", "shift+tab":
		s.move(-1)
		return s, nil
	case "right", "tab":
		s.move(1)
		return s, nil
	}

	var cmd tea.Cmd
	s.choices[s.current], cmd = s.choices[s.current].Update(msg)
	opt, ok := s.choices[s.current].Chosen()
	if !ok {
		return s, cmd
	}
	q := s.attempt.Questions[s.current]
	if prev, had := s.attempt.Selected(q.ID); had && prev == opt {
		return s, cmd
	}
	if err := s.attempt.Answer(q.ID, opt); err != nil {
		s.errMsg = err.Error()
		return s, cmd
	}
	s.errMsg = ""
	s.advance()
	return s, cmd
}

func (s *ExamScreen) move(delta int) {
	next := s.current + delta
	if next >= 0 && next < len(s.choices) {
		s.current = next
	}
}

// advance moves to the next unanswered question, if any.
func (s *ExamScreen) advance() {
	n := len(s.attempt.Questions)
	for i := 1; i < n; i++ {
		idx := (s.current + i) % n
		if _, ok := s.attempt.Selected(s.attempt.Questions[idx].ID); !ok {
			s.current = idx
			return
		}
	}
}

func (s *ExamScreen) View(width, height int) string {
	cw := min(width-8, 76)
	var body string

	switch s.phase {
	case phaseLoading:
		if s.beginFailed {
			body = theme.ErrorText.Width(cw).Render(s.errMsg) + "\n\n" + theme.Hint.Render("Press r to retry or Esc to go back.")
		} else {
			body = s.spin.View() + " Preparing your " + s.tier.Label() + " test..."
		}
	case phaseGrading:
		body = s.spin.View() + " Grading your answers..."
	case phaseAnswering:
		body = s.viewQuestion(cw)
	case phaseResult:
		body = s.viewResult(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *ExamScreen) viewQuestion(cw int) string {
	answered := len(s.attempt.Answers())
	total := len(s.attempt.Questions)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.current+1, total)))
	b.WriteString("\n")
	b.WriteString(components.NewCountBar("Answered", answered, total, cw/2).View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.choices[s.current].View()))

	switch {
	case s.errMsg != "":
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Width(cw).Render(s.errMsg))
	case s.attempt.Complete():
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("All questions answered. Press Ctrl+S to submit."))
	}
	return b.String()
}

func (s *ExamScreen) viewResult(cw int) string {
	res := s.result
	var b strings.Builder

	headline := theme.Incorrect.Render(fmt.Sprintf("Score %.0f%%. Not passed this time.", res.Score))
	if res.Passed {
		headline = theme.Correct.Render(fmt.Sprintf("Score %.0f%%. Passed!", res.Score))
	}
	b.WriteString(headline)
	b.WriteString("\n")
	switch {
	case s.promoted:
		b.WriteString(theme.Title.Render("You are now at the " + s.progress.Tier.Label() + " level."))
	case res.Passed:
		b.WriteString(theme.Hint.Render("You are already at the top level."))
	default:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("You answered %d of %d correctly. Your level is unchanged.", res.Correct(), len(s.attempt.Questions))))
	}
	b.WriteString("\n\n")

	if res.Feedback != "" {
		b.WriteString(markdown.Render(res.Feedback, cw))
		b.WriteString("\n\n")
	}

	q := s.attempt.Questions[s.current]
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.current+1, len(s.attempt.Questions))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.choices[s.current].View()))
	for _, d := range res.Detailed {
		if d.QuestionID == q.ID && d.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(theme.Body.Width(cw).Render(d.Explanation))
		}
	}
	return b.String()
}
