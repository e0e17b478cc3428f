// Package promotion runs the promotion test: generate, collect answers,
// grade, then apply the outcome to the candidate's progress.
package promotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/interviewx/internal/assessment"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrIncompleteAnswers is returned by Submit before every question has
	// an answer.
	ErrIncompleteAnswers = assessment.ErrIncompleteAnswers

	// ErrUnknownQuestion is returned when answering a question that is not
	// part of the attempt.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidOption is returned when the answer is not one of the
	// question's options.
	ErrInvalidOption = errors.New("answer is not one of the options")

	// ErrSubmitted is returned when changing a graded attempt.
	ErrSubmitted = errors.New("attempt already graded")
)

// Controller starts promotion test attempts. Whether the candidate may take
// a test is decided by the caller.
type Controller struct {
	gen      assessment.Generator
	attempts store.AttemptRepo
	now      func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithAttemptRepo records every graded attempt.
func WithAttemptRepo(repo store.AttemptRepo) Option {
	return func(c *Controller) { c.attempts = repo }
}

// WithClock overrides the clock used for attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller.
func New(gen assessment.Generator, opts ...Option) *Controller {
	c := &Controller{gen: gen, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Begin generates a test for tier.
func (c *Controller) Begin(ctx context.Context, tier profile.Tier) (*Attempt, error) {
	questions, err := c.gen.GenerateTest(ctx, tier)
	if err != nil {
		return nil, err
	}
	return &Attempt{
		ID:        uuid.NewString(),
		Tier:      tier,
		Questions: questions,
		StartedAt: c.now().UTC(),
		ctrl:      c,
		answers:   make(map[string]string, len(questions)),
	}, nil
}

// Attempt is one run of the test. It is not safe for concurrent use.
type Attempt struct {
	ID        string
	Tier      profile.Tier
	Questions []assessment.Question
	StartedAt time.Time

	ctrl    *Controller
	answers map[string]string
	result  *assessment.Result
}

// Answer records the selected option for a question, replacing any earlier
// choice.
func (a *Attempt) Answer(questionID, option string) error {
	if a.result != nil {
		return ErrSubmitted
	}
	q, ok := a.question(questionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if !q.HasOption(option) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	a.answers[questionID] = option
	return nil
}

// Selected returns the answer chosen for a question.
func (a *Attempt) Selected(questionID string) (string, bool) {
	opt, ok := a.answers[questionID]
	return opt, ok
}

// Complete reports whether every question has an answer.
func (a *Attempt) Complete() bool {
	return len(a.answers) == len(a.Questions)
}

// Answers returns the answers in question order.
func (a *Attempt) Answers() []assessment.Answer {
	out := make([]assessment.Answer, 0, len(a.answers))
	for _, q := range a.Questions {
		if opt, ok := a.answers[q.ID]; ok {
			out = append(out, assessment.Answer{QuestionID: q.ID, Answer: opt})
		}
	}
	return out
}

// Submit grades the attempt. It fails with ErrIncompleteAnswers, sending
// nothing, while a question is unanswered. A graded attempt is recorded
// when the controller has an attempt repository.
func (a *Attempt) Submit(ctx context.Context) (*assessment.Result, error) {
	if a.result != nil {
		return nil, ErrSubmitted
	}
	if !a.Complete() {
		return nil, fmt.Errorf("%w: %d of %d answered", ErrIncompleteAnswers, len(a.answers), len(a.Questions))
	}

	res, err := a.ctrl.gen.GradeTest(ctx, a.Questions, a.Answers())
	if err != nil {
		return nil, err
	}
	a.result = res

	log.Info().
		Str("attempt", a.ID).
		Str("tier", string(a.Tier)).
		Float64("score", res.Score).
		Bool("passed", res.Passed).
		Msg("promotion test graded")

	if a.ctrl.attempts != nil {
		if err := a.record(ctx); err != nil {
			log.Warn().Err(err).Str("attempt", a.ID).Msg("could not record test attempt")
		}
	}
	return res, nil
}

// Result returns the graded result, or nil before Submit succeeds.
func (a *Attempt) Result() *assessment.Result {
	return a.result
}

func (a *Attempt) question(id string) (assessment.Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return assessment.Question{}, false
}

type attemptDetail struct {
	Attempt   string                        `json:"attempt"`
	Questions []assessment.Question         `json:"questions"`
	Answers   []assessment.Answer           `json:"answers"`
	Feedback  string                        `json:"feedback"`
	Detailed  []assessment.QuestionFeedback `json:"detailedFeedback"`
}

func (a *Attempt) record(ctx context.Context) error {
	detail, err := json.Marshal(attemptDetail{
		Attempt:   a.ID,
		Questions: a.Questions,
		Answers:   a.Answers(),
		Feedback:  a.result.Feedback,
		Detailed:  a.result.Detailed,
	})
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	return a.ctrl.attempts.Save(ctx, &store.TestAttempt{
		CreatedAt: a.ctrl.now().UTC(),
		Tier:      string(a.Tier),
		Score:     int(math.Round(a.result.Score)),
		Passed:    a.result.Passed,
		Detail:    detail,
	})
}

// ApplyOutcome promotes p when res passed. It reports whether the tier
// changed; a failed test or a pass at the top tier changes nothing.
func ApplyOutcome(p *profile.Progress, res *assessment.Result) bool {
	if res == nil || !res.Passed {
		return false
	}
	from := p.Tier
	if !p.Promote() {
		return false
	}
	log.Info().Str("from", string(from)).Str("to", string(p.Tier)).Msg("tier promoted")
	return true
}
