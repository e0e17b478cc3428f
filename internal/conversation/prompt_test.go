package conversation

import (
	"strings"
	"testing"

	"github.com/abhisek/interviewx/internal/profile"
)

var acme = Params{CompanyName: "Acme Corp", JobRole: "Backend Engineer", CompanyURL: "https://acme.example"}

func TestBuildSystemPromptIsDeterministic(t *testing.T) {
	a := BuildSystemPrompt(acme, "en", profile.Intermediate)
	b := BuildSystemPrompt(acme, "en", profile.Intermediate)
	if a != b {
		t.Fatal("expected identical prompts for identical inputs")
	}
}

func TestBuildSystemPromptContents(t *testing.T) {
	p := BuildSystemPrompt(acme, "fr", profile.Beginner)

	for _, want := range []string{
		"Acme Corp",
		"Backend Engineer",
		"https://acme.example",
		"MUST be in French",
		"foundational",
		"3-5 questions",
		"'End Interview'",
		"Do not invent facts",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildSystemPromptTierDirectives(t *testing.T) {
	tests := []struct {
		tier profile.Tier
		want string
	}{
		{profile.Beginner, "foundational"},
		{profile.Intermediate, "STAR method"},
		{profile.Advanced, "case-study"},
		{profile.Tier("unknown"), "foundational"},
	}
	for _, tt := range tests {
		if p := BuildSystemPrompt(acme, "en", tt.tier); !strings.Contains(p, tt.want) {
			t.Errorf("tier %q: prompt missing %q", tt.tier, tt.want)
		}
	}
}

func TestBuildSystemPromptUnknownLanguageFallsBack(t *testing.T) {
	if p := BuildSystemPrompt(acme, "xx", profile.Beginner); !strings.Contains(p, "MUST be in English") {
		t.Fatal("expected English fallback")
	}
}

func TestFeedbackPromptSections(t *testing.T) {
	for _, s := range []string{"### Overall Assessment", "### Key Strengths", "### Areas for Improvement"} {
		if !strings.Contains(FeedbackPrompt, s) {
			t.Errorf("feedback prompt missing section %q", s)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr string
	}{
		{"valid", acme, ""},
		{"missing company", Params{JobRole: "x", CompanyURL: "https://a.b"}, "company name"},
		{"missing role", Params{CompanyName: "x", CompanyURL: "https://a.b"}, "job role"},
		{"missing url", Params{CompanyName: "x", JobRole: "y"}, "company URL is required"},
		{"bad scheme", Params{CompanyName: "x", JobRole: "y", CompanyURL: "ftp://a.b"}, "http(s)"},
		{"no host", Params{CompanyName: "x", JobRole: "y", CompanyURL: "acme.com"}, "http(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
