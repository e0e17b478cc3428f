package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/interviewx/internal/conversation"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Language != "en" || cfg.LogLevel != "info" || cfg.TestThreshold != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `language: es
test_threshold: 5
last_interview:
  company_name: Acme Corp
  job_role: Designer
  company_url: https://acme.example
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Language != "es" {
		t.Errorf("language = %q, want es", cfg.Language)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level default lost: %q", cfg.LogLevel)
	}
	if cfg.TestThreshold != 5 {
		t.Errorf("threshold = %d, want 5", cfg.TestThreshold)
	}
	if cfg.LastInterview == nil || cfg.LastInterview.JobRole != "Designer" {
		t.Errorf("last interview = %+v", cfg.LastInterview)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"language", "language: klingon\n", "unknown language"},
		{"log level", "log_level: loud\n", "log_level"},
		{"threshold", "test_threshold: -1\n", "test_threshold"},
		{"yaml", "language: [\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.LastInterview = &conversation.Params{CompanyName: "Acme", JobRole: "PM", CompanyURL: "https://acme.example"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got.LastInterview != *cfg.LastInterview {
		t.Errorf("last interview = %+v, want %+v", got.LastInterview, cfg.LastInterview)
	}
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv("INTERVIEWX_CONFIG", "/tmp/custom.yaml")
	p, err := DefaultPath()
	if err != nil || p != "/tmp/custom.yaml" {
		t.Fatalf("DefaultPath() = %q, %v", p, err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("INTERVIEWX_TEST_DOTENV=from-file\nINTERVIEWX_TEST_PRESET=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INTERVIEWX_TEST_PRESET", "from-env")
	t.Setenv("INTERVIEWX_TEST_DOTENV", "")
	os.Unsetenv("INTERVIEWX_TEST_DOTENV")

	if err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("INTERVIEWX_TEST_DOTENV"); got != "from-file" {
		t.Errorf("INTERVIEWX_TEST_DOTENV = %q", got)
	}
	if got := os.Getenv("INTERVIEWX_TEST_PRESET"); got != "from-env" {
		t.Errorf("existing variable overridden: %q", got)
	}
}
