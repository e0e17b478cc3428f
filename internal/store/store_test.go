package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode stays "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"paused_interviews", "progress", "reports", "test_attempts", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestPausedRepo_SingleSlot(t *testing.T) {
	s := openTestStore(t)
	repo := s.PausedRepo()
	ctx := context.Background()

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil when nothing is paused")
	}

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, &PausedInterview{
		CompanyName: "Acme",
		JobRole:     "Engineer",
		Data:        json.RawMessage(`{"version":"v1.0.0","turns":[]}`),
		PausedAt:    at,
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, &PausedInterview{
		CompanyName: "Globex",
		JobRole:     "Designer",
		Data:        json.RawMessage(`{"version":"v1.0.0","turns":[{"text":"hi"}]}`),
		PausedAt:    at.Add(time.Hour),
	}); err != nil {
		t.Fatalf("save replace: %v", err)
	}

	p, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p == nil || p.CompanyName != "Globex" || p.JobRole != "Designer" {
		t.Fatalf("expected the second save to replace the first, got %+v", p)
	}
	if string(p.Data) != `{"version":"v1.0.0","turns":[{"text":"hi"}]}` {
		t.Fatalf("snapshot not stored verbatim: %s", p.Data)
	}
	if !p.PausedAt.Equal(at.Add(time.Hour)) {
		t.Fatalf("paused at = %s", p.PausedAt)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if p, _ := repo.Load(ctx); p != nil {
		t.Fatal("expected nil after clear")
	}
}

func TestPausedRepo_RejectsEmptySnapshot(t *testing.T) {
	s := openTestStore(t)
	if err := s.PausedRepo().Save(context.Background(), &PausedInterview{CompanyName: "Acme"}); err == nil {
		t.Fatal("expected error for empty snapshot")
	}
}

func TestProgressRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil progress before first write")
	}

	if err := repo.Put(ctx, &Progress{Tier: "beginner", InterviewsCompleted: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, &Progress{Tier: "intermediate", InterviewsCompleted: 0}); err != nil {
		t.Fatalf("put again: %v", err)
	}

	p, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Tier != "intermediate" || p.InterviewsCompleted != 0 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if p.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if p, _ := repo.Get(ctx); p != nil {
		t.Fatal("expected nil progress after reset")
	}
}

func TestReportRepo_SaveListGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	for i, company := range []string{"Acme", "Globex", "Initech"} {
		r := &Report{
			CompanyName: company,
			JobRole:     "Engineer",
			Tier:        "beginner",
			Language:    "en",
			Feedback:    fmt.Sprintf("### Overall Assessment\nRun %d", i),
			Transcript:  json.RawMessage(`[{"role":"interviewer","text":"Hello"}]`),
		}
		if err := repo.Save(ctx, r); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if r.ID == 0 || r.Sequence == 0 {
			t.Fatalf("expected id and sequence assigned, got %+v", r)
		}
	}

	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(all))
	}
	if all[0].CompanyName != "Initech" {
		t.Fatalf("expected newest first, got %q", all[0].CompanyName)
	}

	limited, err := repo.List(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(limited))
	}

	older, err := repo.List(ctx, QueryOpts{Before: all[0].Sequence})
	if err != nil {
		t.Fatalf("list before: %v", err)
	}
	if len(older) != 2 || older[0].CompanyName != "Globex" {
		t.Fatalf("unexpected page %+v", older)
	}

	got, err := repo.Get(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.CompanyName != "Acme" {
		t.Fatalf("unexpected report %+v", got)
	}
	if string(got.Transcript) != `[{"role":"interviewer","text":"Hello"}]` {
		t.Fatalf("unexpected transcript %s", got.Transcript)
	}

	missing, err := repo.Get(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing report")
	}
}

func TestAttemptRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &TestAttempt{Tier: "beginner", Score: 33, Passed: false}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, &TestAttempt{Tier: "beginner", Score: 100, Passed: true, Detail: json.RawMessage(`{"score":100}`)}); err != nil {
		t.Fatalf("save: %v", err)
	}

	attempts, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if !attempts[0].Passed || attempts[0].Score != 100 {
		t.Fatalf("expected newest passing attempt first, got %+v", attempts[0])
	}
	if attempts[1].Passed || string(attempts[1].Detail) != "{}" {
		t.Fatalf("unexpected older attempt %+v", attempts[1])
	}
}

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "interview-turn", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "interview-turn", InputTokens: 200, OutputTokens: 40, LatencyMs: 500, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "test-grade", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "boom", RequestBody: "[user]\nx"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Purpose != "test-grade" || got[0].Success || got[0].ErrorMessage != "boom" {
		t.Fatalf("unexpected newest event %+v", got[0])
	}

	one, err := repo.GetLLMEvent(ctx, got[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.RequestBody != "[user]\nx" {
		t.Fatalf("unexpected event %+v", one)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	turn := byPurpose[0]
	if turn.Purpose != "interview-turn" || turn.Calls != 2 || turn.InputTokens != 300 || turn.AvgLatencyMs != 400 {
		t.Fatalf("unexpected usage %+v", turn)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected model usage %+v", byModel)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := &Report{CompanyName: "Acme", JobRole: "Engineer", Tier: "beginner", Language: "en", Feedback: "ok"}
	if err := s.ReportRepo().Save(ctx, r); err != nil {
		t.Fatalf("save report: %v", err)
	}
	a := &TestAttempt{Tier: "beginner", Score: 67}
	if err := s.AttemptRepo().Save(ctx, a); err != nil {
		t.Fatalf("save attempt: %v", err)
	}
	if a.Sequence != r.Sequence+1 {
		t.Fatalf("expected attempt sequence %d, got %d", r.Sequence+1, a.Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq != prev+1 {
			t.Fatalf("seq[%d] = %d, want %d", i, seq, prev+1)
		}
		prev = seq
	}
}

func TestInTxCommits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(r TxRepos) error {
		if err := r.ReportRepo().Save(ctx, &Report{CompanyName: "Acme", Tier: "beginner"}); err != nil {
			return err
		}
		return r.ProgressRepo().Put(ctx, &Progress{Tier: "beginner", InterviewsCompleted: 1})
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}

	reports, err := s.ReportRepo().List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	p, err := s.ProgressRepo().Get(ctx)
	if err != nil || p == nil || p.InterviewsCompleted != 1 {
		t.Fatalf("progress = %+v, err = %v", p, err)
	}
}

func TestInTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.PausedRepo().Save(ctx, &PausedInterview{CompanyName: "Acme", Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("save paused: %v", err)
	}
	before, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}

	boom := errors.New("boom")
	err = s.InTx(ctx, func(r TxRepos) error {
		if err := r.ReportRepo().Save(ctx, &Report{CompanyName: "Acme", Tier: "beginner"}); err != nil {
			return err
		}
		if err := r.PausedRepo().Clear(ctx); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	reports, err := s.ReportRepo().List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected the report to be rolled back, got %d", len(reports))
	}
	paused, err := s.PausedRepo().Load(ctx)
	if err != nil || paused == nil {
		t.Errorf("expected the paused slot to survive, got %+v, err = %v", paused, err)
	}
	next, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next != before+1 {
		t.Errorf("sequence = %d, want %d (rolled back with the report)", next, before+1)
	}
}
