package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_SelectByNumber(t *testing.T) {
	mc := NewMultiChoice("Pick one", []string{"a", "b", "c", "d"})
	if _, ok := mc.Chosen(); ok {
		t.Fatal("expected nothing chosen initially")
	}

	mc, _ = mc.Update(key('3'))
	got, ok := mc.Chosen()
	if !ok || got != "c" {
		t.Errorf("Chosen = %q, %v, want c, true", got, ok)
	}

	mc, _ = mc.Update(key('9'))
	if got, _ := mc.Chosen(); got != "c" {
		t.Errorf("out of range number changed choice to %q", got)
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("Pick one", []string{"a", "b", "c", "d"})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got, _ := mc.Chosen(); got != "b" {
		t.Errorf("Chosen = %q, want b", got)
	}
}

func TestMultiChoice_RevealFreezes(t *testing.T) {
	mc := NewMultiChoice("Pick one", []string{"a", "b", "c", "d"})
	mc.Choose("a")
	mc.Reveal("b")
	mc, _ = mc.Update(key('4'))
	if got, _ := mc.Chosen(); got != "a" {
		t.Errorf("choice changed after reveal: %q", got)
	}
	if !strings.Contains(mc.View(), "Pick one") {
		t.Error("expected question in view")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Resume", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Test", Disabled: true, Note: "locked"},
		{Label: "Quit", Action: func() tea.Cmd { called = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("Selected = %d, want 3", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "quit" {
		t.Errorf("called = %q, want quit", called)
	}
	if !strings.Contains(m.View(), "locked") {
		t.Error("expected note in view")
	}
}

func TestCountBar(t *testing.T) {
	p := NewCountBar("Interviews", 2, 3, 40)
	if !strings.Contains(p.View(), "2/3") {
		t.Errorf("expected count suffix in %q", p.View())
	}
	if over := NewCountBar("", 5, 3, 40); over.Percent != 1 {
		t.Errorf("Percent = %v, want clamped to 1", over.Percent)
	}
}

func TestTextInput_BlurredIgnoresKeys(t *testing.T) {
	ti := NewTextInput("type", 0)
	ti.Blur()
	ti, _ = ti.Update(key('x'))
	if ti.Value() != "" {
		t.Errorf("Value = %q, want empty while blurred", ti.Value())
	}
	ti.Focus()
	ti, _ = ti.Update(key('x'))
	if ti.Value() != "x" {
		t.Errorf("Value = %q, want x", ti.Value())
	}
}
