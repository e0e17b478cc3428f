package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d, want 24", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Interview", Status{Tier: "intermediate", Language: "French"}, 100)
	for _, want := range []string{"interviewx", "Interview", "intermediate", "French"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderHeader_NoStatus(t *testing.T) {
	out := RenderHeader("Home", Status{}, 80)
	if strings.Contains(out, "▲") || strings.Contains(out, "◎") {
		t.Error("expected no status markers without tier or language")
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Send"}, {Key: "Ctrl+P", Description: "Pause"}}, 80)
	for _, want := range []string{"Enter", "Send", "Ctrl+P", "Pause"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}
