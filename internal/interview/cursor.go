package interview

import "github.com/abhisek/interviewx/internal/transcript"

// QuestionIndices returns the positions of the question turns in turns.
// Feedback turns are never included.
func QuestionIndices(turns []transcript.Turn) []int {
	var out []int
	for i, t := range turns {
		if t.IsQuestion() {
			out = append(out, i)
		}
	}
	return out
}

// Target is where the presentation layer should bring the view after a
// cursor move. Index is a position in the turn log and is -1 when Live.
type Target struct {
	Index int
	Live  bool
}

var liveTarget = Target{Index: -1, Live: true}

// Cursor pages over the question turns of a log without touching it.
// The zero value is live with no questions.
type Cursor struct {
	indices []int
	pos     int // 1-based; 0 is live
}

// Refresh recomputes the question indices and returns to live.
func (c *Cursor) Refresh(turns []transcript.Turn) {
	c.indices = QuestionIndices(turns)
	c.pos = 0
}

// Exit returns to live.
func (c *Cursor) Exit() {
	c.pos = 0
}

// Live reports whether the cursor is not reviewing.
func (c *Cursor) Live() bool {
	return c.pos == 0
}

// Position returns the index into the question list, or false when live.
func (c *Cursor) Position() (int, bool) {
	if c.pos == 0 {
		return 0, false
	}
	return c.pos - 1, true
}

// Questions returns the number of question turns.
func (c *Cursor) Questions() int {
	return len(c.indices)
}

// CanStepBack reports whether there is any question to review.
func (c *Cursor) CanStepBack() bool {
	return len(c.indices) > 0
}

// CanStepForward reports whether the cursor is reviewing.
func (c *Cursor) CanStepForward() bool {
	return c.pos != 0
}

// StepBack enters review at the latest question, or moves one question
// earlier, stopping at the first.
func (c *Cursor) StepBack() (Target, bool) {
	if !c.CanStepBack() {
		return Target{}, false
	}
	switch {
	case c.pos == 0:
		c.pos = len(c.indices)
	case c.pos > 1:
		c.pos--
	}
	return c.target(), true
}

// StepForward moves one question later, or back to live from the latest.
func (c *Cursor) StepForward() (Target, bool) {
	if !c.CanStepForward() {
		return Target{}, false
	}
	if c.pos >= len(c.indices) {
		c.pos = 0
		return liveTarget, true
	}
	c.pos++
	return c.target(), true
}

func (c *Cursor) target() Target {
	if c.pos == 0 {
		return liveTarget
	}
	return Target{Index: c.indices[c.pos-1]}
}
