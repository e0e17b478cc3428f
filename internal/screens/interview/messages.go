package interview

import (
	iv "github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/practice"
)

// startedMsg is sent when opening or resuming the conversation finishes.
type startedMsg struct {
	Session *iv.Session
	Err     error
}

// updateMsg carries a session update from the hook goroutine.
type updateMsg iv.Update

// endedMsg is sent when the interview ends with feedback.
type endedMsg struct {
	Outcome *iv.Outcome
}

// exchangeDoneMsg is sent when a send or skip returns.
type exchangeDoneMsg struct {
	Err error
}

// completedMsg is sent once a finished interview has been recorded.
type completedMsg struct {
	Outcome    *iv.Outcome
	Completion *practice.Completion
	Err        error
}

// pausedMsg is sent once the paused snapshot has been stored.
type pausedMsg struct {
	Err error
}
