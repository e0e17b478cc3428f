package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewx/internal/router"
)

func testSummary() Summary {
	return Summary{
		Heading:   "Acme · Backend Engineer",
		Feedback:  "### Strengths\nClear structure.\n\n### Areas to Improve\nQuantify impact.",
		Highlight: "Promotion test unlocked!",
		Notes:     []string{"You've completed 3 interviews."},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Interview Feedback" {
		t.Errorf("Title = %q, want %q", s.Title(), "Interview Feedback")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 40)
	for _, want := range []string{"Acme", "Strengths", "Promotion test unlocked!", "completed 3 interviews"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptyFeedback(t *testing.T) {
	s := New(Summary{})
	if !strings.Contains(s.View(80, 24), "No feedback") {
		t.Error("expected placeholder for empty feedback")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	tests := []struct {
		name  string
		final bool
		key   tea.KeyPressMsg
		want  tea.Msg
	}{
		{"enter pops", false, tea.KeyPressMsg{Code: tea.KeyEnter}, router.PopScreenMsg{}},
		{"esc pops", false, tea.KeyPressMsg{Code: tea.KeyEscape}, router.PopScreenMsg{}},
		{"final enter goes home", true, tea.KeyPressMsg{Code: tea.KeyEnter}, router.PopToRootMsg{}},
		{"final esc goes home", true, tea.KeyPressMsg{Code: tea.KeyEscape}, router.PopToRootMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testSummary())
			if tt.final {
				s = NewFinal(testSummary())
			}
			_, cmd := s.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("msg = %T, want %T", got, tt.want)
			}
		})
	}
}

func TestSummaryScreen_ScrollClamped(t *testing.T) {
	s := New(testSummary())
	s.View(80, 10)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
	for i := 0; i < 100; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.offset != len(s.cachedLines)-1 {
		t.Errorf("offset = %d, want %d", s.offset, len(s.cachedLines)-1)
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
}
