package resources

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/interviewx/internal/llm"
)

func TestArticle(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("## Before the call\n\n* Read the job post\n1. Practice aloud\n"),
	})
	c := New(mock, DefaultConfig())

	art, err := c.Article(context.Background(), "  Negotiating your salary ", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Topic != "Negotiating your salary" {
		t.Errorf("topic = %q", art.Topic)
	}
	if !strings.HasPrefix(art.Content, "## Before the call") || strings.HasSuffix(art.Content, "\n") {
		t.Errorf("content not trimmed: %q", art.Content)
	}

	req, ok := mock.LastCall()
	if !ok {
		t.Fatal("expected a provider call")
	}
	if req.Schema != nil {
		t.Error("articles are free text, no schema expected")
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("unexpected messages: %+v", req.Messages)
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{`"Negotiating your salary"`, "Spanish", "## "} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
}

func TestArticleSetsPurpose(t *testing.T) {
	var purpose string
	p := purposeProvider{Provider: llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("text")}), seen: &purpose}

	if _, err := New(p, DefaultConfig()).Article(context.Background(), "Following up after an interview", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purpose != "resource-article" {
		t.Errorf("purpose = %q, want resource-article", purpose)
	}
}

type purposeProvider struct {
	llm.Provider
	seen *string
}

func (p purposeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.seen = llm.PurposeFrom(ctx)
	return p.Provider.Generate(ctx, req)
}

func TestArticleErrors(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		resp  llm.MockResponse
		check func(error) bool
	}{
		{
			name:  "blank topic",
			topic: "  ",
			check: func(err error) bool { return errors.Is(err, ErrNoTopic) },
		},
		{
			name:  "provider failure",
			topic: "Questions to ask the interviewer",
			resp:  llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}},
			check: func(err error) bool {
				var comm *llm.ErrCommunication
				var rl *llm.ErrRateLimit
				return errors.As(err, &comm) && comm.Op == OpArticle && errors.As(err, &rl)
			},
		},
		{
			name:  "empty reply",
			topic: "Questions to ask the interviewer",
			resp:  llm.MockResponse{Content: json.RawMessage(" \n ")},
			check: func(err error) bool { return errors.Is(err, ErrEmptyArticle) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(llm.NewMockProvider(tt.resp), DefaultConfig())
			art, err := c.Article(context.Background(), tt.topic, "en")
			if err == nil {
				t.Fatalf("expected error, got article %+v", art)
			}
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTopicsAreCopied(t *testing.T) {
	got := Topics()
	if len(got) != 8 {
		t.Fatalf("expected 8 topics, got %d", len(got))
	}
	got[0] = "changed"
	if Topics()[0] == "changed" {
		t.Error("Topics exposed the backing slice")
	}
}
