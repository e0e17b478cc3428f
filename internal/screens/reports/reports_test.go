package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewx/internal/router"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/screens/summary"
	"github.com/abhisek/interviewx/internal/store"
)

func testScreen(t *testing.T, companies ...string) *ReportsScreen {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:reports_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	for _, c := range companies {
		require.NoError(t, st.ReportRepo().Save(context.Background(), &store.Report{
			CompanyName: c,
			JobRole:     "Engineer",
			CompanyURL:  "https://example.com",
			Tier:        "beginner",
			Language:    "en",
			Feedback:    "### Summary\nFeedback for " + c,
			Transcript:  json.RawMessage(`[]`),
		}))
	}

	s := New(&screens.Env{Reports: st.ReportRepo()})
	s.exportDir = t.TempDir()
	s.Update(s.Init()())
	return s
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestReportsTitle(t *testing.T) {
	s := testScreen(t)
	assert.Equal(t, "Reports", s.Title())
}

func TestReportsEmpty(t *testing.T) {
	s := testScreen(t)
	assert.Contains(t, s.View(100, 30), "No reports yet")
	assert.Len(t, s.KeyHints(), 1)
}

func TestReportsListNewestFirst(t *testing.T) {
	s := testScreen(t, "Acme", "Globex")
	require.Len(t, s.reports, 2)
	assert.Equal(t, "Globex", s.reports[0].CompanyName)

	view := s.View(100, 30)
	assert.Less(t, strings.Index(view, "Globex"), strings.Index(view, "Acme"))
}

func TestReportsNavigation(t *testing.T) {
	s := testScreen(t, "Acme", "Globex")
	s.Update(key(tea.KeyUp))
	assert.Equal(t, 0, s.selected)
	s.Update(key(tea.KeyDown))
	s.Update(key(tea.KeyDown))
	assert.Equal(t, 1, s.selected)
}

func TestReportsEnterOpensFeedback(t *testing.T) {
	s := testScreen(t, "Acme")
	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	fb, ok := msg.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	assert.Contains(t, fb.View(100, 40), "Feedback for Acme")
}

func TestReportsExport(t *testing.T) {
	s := testScreen(t, "Acme")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	require.NotNil(t, cmd)
	s.Update(cmd())

	require.Empty(t, s.errMsg)
	assert.Contains(t, s.notice, "interview-report-")

	path := filepath.Join(s.exportDir, "interview-report-1.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "### Summary\nFeedback for Acme", got["feedback"])
	assert.Contains(t, got, "chatHistory")
}

func TestReportsEscPops(t *testing.T) {
	s := testScreen(t)
	_, cmd := s.Update(key(tea.KeyEscape))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestFeedbackNotes(t *testing.T) {
	fb := Feedback(store.Report{CompanyName: "Acme", JobRole: "PM", Tier: "advanced", Language: "es", Feedback: "ok"})
	assert.Equal(t, "Acme · PM", fb.Heading)
	assert.Contains(t, fb.Notes, "Level: Advanced")
	assert.Contains(t, fb.Notes, "Language: Spanish")
}
