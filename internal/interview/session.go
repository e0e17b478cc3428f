// Package interview is the session state machine: it owns the turn log,
// drives the conversation adapter and supports pause, resume and review.
package interview

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/interviewx/internal/conversation"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/transcript"
	"github.com/rs/zerolog/log"
)

// Params are the interview parameters.
type Params = conversation.Params

// SkipText is sent when the candidate skips a question.
const SkipText = "Please skip this question."

// Update is delivered after every change to the turn log, including each
// streamed chunk.
type Update struct {
	Turns []transcript.Turn
	Phase Phase
}

// Hooks connect a session to its presentation layer. Any hook may be nil.
// Hooks run on the goroutine that called into the session.
type Hooks struct {
	OnUpdate func(Update)
	OnEnded  func(*Outcome)
	OnFailed func(error)
}

// Options configure a new session.
type Options struct {
	Language string
	Tier     profile.Tier
	Hooks    Hooks

	// Now overrides the clock used for pause and end timestamps.
	Now func() time.Time
}

// Session is a single interview. It is driven by one caller at a time and
// does no locking; the AwaitingReply phase keeps exchanges from
// overlapping.
type Session struct {
	client   *conversation.Client
	params   Params
	language string
	tier     profile.Tier
	hooks    Hooks
	now      func() time.Time

	phase   Phase
	turns   []transcript.Turn
	handle  *conversation.Handle
	cursor  Cursor
	outcome *Outcome
}

// New creates a session in the initializing phase. Nothing is sent until
// Start.
func New(client *conversation.Client, params Params, opts Options) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return newSession(client, params, opts, nil), nil
}

// Resume starts a session from a paused snapshot. The snapshot's language
// and parameters are used verbatim; opts.Language is ignored. The turn log
// is replayed as history and no greeting is requested. On an InitError the
// returned session is Failed and Start may be retried.
func Resume(ctx context.Context, client *conversation.Client, snap *Snapshot, tier profile.Tier, opts Options) (*Session, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	opts.Language = snap.Language
	opts.Tier = tier
	s := newSession(client, snap.Params, opts, transcript.Clone(snap.Turns))
	if err := s.Start(ctx); err != nil {
		return s, err
	}
	return s, nil
}

func newSession(client *conversation.Client, params Params, opts Options, turns []transcript.Turn) *Session {
	lang := opts.Language
	if lang == "" {
		lang = language.Default
	}
	tier := opts.Tier
	if tier == "" {
		tier = profile.Beginner
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		client:   client,
		params:   params,
		language: lang,
		tier:     tier,
		hooks:    opts.Hooks,
		now:      now,
		phase:    PhaseInitializing,
		turns:    turns,
	}
	s.cursor.Refresh(s.turns)
	return s
}

// Start opens the conversation. A session without turns asks for the
// interviewer's greeting and logs it as the first turn. Start is legal
// while initializing or after a failed start.
func (s *Session) Start(ctx context.Context) error {
	if s.phase != PhaseInitializing && s.phase != PhaseFailed {
		return s.reject(OpStart, "session already started")
	}
	s.phase = PhaseInitializing

	prompt := conversation.BuildSystemPrompt(s.params, s.language, s.tier)
	handle, err := s.client.CreateSession(prompt, s.turns)
	if err != nil {
		return s.fail(err)
	}

	if len(s.turns) == 0 {
		greeting, err := handle.Opening(ctx)
		if err != nil {
			handle.Release()
			return s.fail(err)
		}
		s.append(transcript.Interviewer(greeting))
	}

	s.handle = handle
	s.phase = PhaseActive
	log.Info().
		Str("company", s.params.CompanyName).
		Str("role", s.params.JobRole).
		Str("language", s.language).
		Str("tier", string(s.tier)).
		Int("turns", len(s.turns)).
		Msg("interview started")
	s.notify()
	return nil
}

// Send submits candidate text. The termination phrase, in any letter case,
// ends the interview and requests feedback instead of a reply. Otherwise
// the reply is streamed into a new interviewer turn; if the stream fails
// that turn is removed, the candidate's turn is kept and the returned error
// is an *llm.ErrCommunication.
func (s *Session) Send(ctx context.Context, text string) error {
	return s.send(ctx, OpSend, text)
}

// Skip asks the interviewer to move on to the next question.
func (s *Session) Skip(ctx context.Context) error {
	return s.send(ctx, OpSkip, SkipText)
}

func (s *Session) send(ctx context.Context, op, text string) error {
	if s.phase != PhaseActive {
		return s.reject(op, "no exchange possible")
	}
	if !s.cursor.Live() {
		s.cursor.Exit()
		return s.reject(op, "reviewing earlier questions")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return s.reject(op, "empty message")
	}

	ending := IsTermination(text)
	if !ending || !s.endRequested() {
		s.append(transcript.Candidate(text))
	}
	s.phase = PhaseAwaitingReply
	s.notify()

	if ending {
		return s.finish(ctx)
	}

	s.append(transcript.NewTurn(transcript.RoleInterviewer, transcript.KindQuestion, ""))
	s.notify()

	last := len(s.turns) - 1
	for chunk, err := range s.handle.SendStreaming(ctx, text) {
		if err != nil {
			s.turns = s.turns[:last]
			s.cursor.Refresh(s.turns)
			s.phase = PhaseActive
			log.Warn().Err(err).Int("turns", len(s.turns)).Msg("interviewer reply failed")
			s.notify()
			return err
		}
		s.turns[last].Text += chunk
		s.notify()
	}

	s.phase = PhaseActive
	s.notify()
	return nil
}

// endRequested reports whether the log already ends with the candidate
// asking to finish, as it does after a failed feedback request.
func (s *Session) endRequested() bool {
	n := len(s.turns)
	return n > 0 && s.turns[n-1].Role == transcript.RoleCandidate && IsTermination(s.turns[n-1].Text)
}

// finish requests the closing feedback. On failure the session stays
// active and ending can be retried.
func (s *Session) finish(ctx context.Context) error {
	feedback, err := s.handle.SendForFeedback(ctx, conversation.FeedbackPrompt)
	if err != nil {
		s.phase = PhaseActive
		log.Warn().Err(err).Msg("feedback generation failed")
		s.notify()
		return err
	}

	s.handle.Release()
	s.handle = nil
	s.phase = PhaseEnded
	s.outcome = &Outcome{
		Feedback: feedback,
		Sections: ParseFeedback(feedback),
		Turns:    transcript.Clone(s.turns),
		Params:   s.params,
		Language: s.language,
		EndedAt:  s.now().UTC(),
	}
	log.Info().Int("turns", len(s.turns)).Msg("interview ended with feedback")
	s.notify()
	if s.hooks.OnEnded != nil {
		s.hooks.OnEnded(s.outcome)
	}
	return nil
}

// Pause captures a snapshot and releases the conversation. Only legal
// while active.
func (s *Session) Pause() (*Snapshot, error) {
	if s.phase != PhaseActive {
		return nil, s.reject(OpPause, "only an active interview can be paused")
	}
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Params:   s.params,
		Turns:    transcript.Clone(s.turns),
		Language: s.language,
		PausedAt: s.now().UTC(),
	}
	s.handle.Release()
	s.handle = nil
	s.cursor.Exit()
	s.phase = PhasePaused
	log.Info().Int("turns", len(snap.Turns)).Msg("interview paused")
	s.notify()
	return snap, nil
}

// StepBack enters or moves through review mode and returns the turn to
// bring into view.
func (s *Session) StepBack() (Target, error) {
	if s.phase == PhaseAwaitingReply {
		return Target{}, s.reject(OpStepBack, "reply in progress")
	}
	t, ok := s.cursor.StepBack()
	if !ok {
		return Target{}, s.reject(OpStepBack, "no questions yet")
	}
	return t, nil
}

// StepForward moves through review mode, returning to live after the
// latest question.
func (s *Session) StepForward() (Target, error) {
	if s.phase == PhaseAwaitingReply {
		return Target{}, s.reject(OpStepForward, "reply in progress")
	}
	t, ok := s.cursor.StepForward()
	if !ok {
		return Target{}, s.reject(OpStepForward, "not reviewing")
	}
	return t, nil
}

// CanStepBack reports whether StepBack would succeed.
func (s *Session) CanStepBack() bool {
	return s.phase != PhaseAwaitingReply && s.cursor.CanStepBack()
}

// CanStepForward reports whether StepForward would succeed.
func (s *Session) CanStepForward() bool {
	return s.phase != PhaseAwaitingReply && s.cursor.CanStepForward()
}

// CanSend reports whether Send and Skip are currently accepted.
func (s *Session) CanSend() bool {
	return s.phase == PhaseActive && s.cursor.Live()
}

// FocusInput leaves review mode.
func (s *Session) FocusInput() {
	s.cursor.Exit()
}

// Reviewing reports whether the cursor is in review mode.
func (s *Session) Reviewing() bool {
	return !s.cursor.Live()
}

// Cursor returns a copy of the review cursor.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Params() Params { return s.params }
func (s *Session) Language() string { return s.language }
func (s *Session) Tier() profile.Tier { return s.tier }
func (s *Session) Turns() []transcript.Turn { return transcript.Clone(s.turns) }
func (s *Session) Outcome() *Outcome { return s.outcome }

// IsTermination reports whether text is the termination phrase.
func IsTermination(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), conversation.TerminationPhrase)
}

func (s *Session) append(t transcript.Turn) {
	s.turns = append(s.turns, t)
	s.cursor.Refresh(s.turns)
}

func (s *Session) notify() {
	if s.hooks.OnUpdate != nil {
		s.hooks.OnUpdate(Update{Turns: transcript.Clone(s.turns), Phase: s.phase})
	}
}

func (s *Session) fail(err error) error {
	s.phase = PhaseFailed
	ierr := &InitError{Err: err}
	log.Error().Err(err).Msg("interview failed to start")
	if s.hooks.OnFailed != nil {
		s.hooks.OnFailed(ierr)
	}
	return ierr
}

func (s *Session) reject(op, reason string) error {
	return &ErrInvariant{Op: op, Phase: s.phase, Reason: reason}
}
