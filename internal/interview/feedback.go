package interview

import (
	"strings"
	"time"

	"github.com/abhisek/interviewx/internal/transcript"
)

// Section is one titled part of the feedback narrative.
type Section struct {
	Title string
	Body  string
}

// ParseFeedback splits a feedback narrative on its section headings. Text
// before the first heading becomes an untitled section.
func ParseFeedback(text string) []Section {
	var (
		out     []Section
		current *Section
		body    strings.Builder
	)
	flush := func() {
		if current == nil {
			if b := strings.TrimSpace(body.String()); b != "" {
				out = append(out, Section{Body: b})
			}
		} else {
			current.Body = strings.TrimSpace(body.String())
			out = append(out, *current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, transcript.FeedbackMarker) {
			flush()
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			current = &Section{Title: title}
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()
	return out
}

// Outcome is what a session emits when it ends with feedback.
type Outcome struct {
	Feedback string
	Sections []Section
	Turns    []transcript.Turn
	Params   Params
	Language string
	EndedAt  time.Time
}

// Report is the exported form of a finished interview.
type Report struct {
	Feedback    string            `json:"feedback"`
	ChatHistory []transcript.Turn `json:"chatHistory"`
}

// Report returns the exportable form of o.
func (o *Outcome) Report() Report {
	return Report{Feedback: o.Feedback, ChatHistory: transcript.Clone(o.Turns)}
}
