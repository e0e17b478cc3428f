// Package transcript defines the turn log shared by the interview engine,
// its adapters and the persistence layer.
package transcript

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the speaker of a turn.
type Role string

const (
	RoleCandidate   Role = "candidate"
	RoleInterviewer Role = "interviewer"
)

// Kind classifies a turn at creation time.
type Kind string

const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
	KindFeedback Kind = "feedback"
	KindMeta     Kind = "meta"
)

// FeedbackMarker introduces every section of the feedback narrative.
const FeedbackMarker = "###"

// Turn is one message in the conversation.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTurn creates a turn with a fresh identifier.
func NewTurn(role Role, kind Kind, text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// Candidate creates a candidate turn.
func Candidate(text string) Turn {
	return NewTurn(RoleCandidate, KindAnswer, text)
}

// Interviewer creates an interviewer question turn.
func Interviewer(text string) Turn {
	return NewTurn(RoleInterviewer, KindQuestion, text)
}

// IsQuestion reports whether t is an interviewer turn that asks something.
// Feedback turns never count, whether tagged as such or only recognisable by
// the section marker.
func (t Turn) IsQuestion() bool {
	if t.Role != RoleInterviewer || t.Kind == KindFeedback {
		return false
	}
	return !strings.HasPrefix(strings.TrimSpace(t.Text), FeedbackMarker)
}

// Clone returns a copy of turns that shares no backing array with the input.
func Clone(turns []Turn) []Turn {
	if turns == nil {
		return nil
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Equal reports whether two logs have the same turns in the same order.
func Equal(a, b []Turn) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Role != b[i].Role || a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
