// Package profile tracks the candidate's tier and the interviews completed
// since the last promotion.
package profile

import (
	"fmt"
	"strings"
)

// Tier is the candidate skill level.
type Tier string

const (
	Beginner     Tier = "beginner"
	Intermediate Tier = "intermediate"
	Advanced     Tier = "advanced"
)

// DefaultTestThreshold is the number of completed interviews at the current
// tier after which the promotion test is offered.
const DefaultTestThreshold = 3

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case Beginner, Intermediate, Advanced:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Next returns the tier after t. Advanced has no successor.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case Beginner:
		return Intermediate, true
	case Intermediate:
		return Advanced, true
	}
	return t, false
}

// Label returns the capitalised name used in prompts and on screen.
func (t Tier) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Progress is the candidate's standing.
type Progress struct {
	Tier                Tier
	InterviewsCompleted int
}

// New returns progress for a first-time candidate.
func New() Progress {
	return Progress{Tier: Beginner}
}

// TestEligible reports whether the promotion test should be offered.
// threshold <= 0 falls back to DefaultTestThreshold.
func (p Progress) TestEligible(threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultTestThreshold
	}
	if _, ok := p.Tier.Next(); !ok {
		return false
	}
	return p.InterviewsCompleted >= threshold
}

// RecordInterviewCompleted counts an interview that ended with feedback.
func (p *Progress) RecordInterviewCompleted() {
	p.InterviewsCompleted++
}

// Promote advances to the next tier and resets the completed-interview
// counter. It reports false, changing nothing, when already at the top tier.
func (p *Progress) Promote() bool {
	next, ok := p.Tier.Next()
	if !ok {
		return false
	}
	p.Tier = next
	p.InterviewsCompleted = 0
	return true
}

// Status is a one-line description of where the candidate stands.
func (p Progress) Status(threshold int) string {
	if threshold <= 0 {
		threshold = DefaultTestThreshold
	}
	next, ok := p.Tier.Next()
	switch {
	case !ok:
		return fmt.Sprintf("You are at the %s level. Keep practicing to stay sharp.", p.Tier.Label())
	case p.TestEligible(threshold):
		return fmt.Sprintf("You've completed %d interviews. Pass a short test to unlock the %s level.",
			p.InterviewsCompleted, next.Label())
	default:
		return fmt.Sprintf("Complete %d more interview(s) at the %s level to unlock the %s test.",
			threshold-p.InterviewsCompleted, p.Tier.Label(), next.Label())
	}
}
