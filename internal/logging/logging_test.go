package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupFiltersByLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	if err := Setup("warn", &buf); err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("op", "send").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "op=send") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup("chatty", &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSetupFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	path := filepath.Join(t.TempDir(), "state", "interviewx.log")
	closer, err := SetupFile("debug", path)
	if err != nil {
		t.Fatalf("setup file: %v", err)
	}
	log.Debug().Msg("to file")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing line: %q", data)
	}
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	p, err := DefaultLogPath()
	if err != nil || p != "/var/state/interviewx/interviewx.log" {
		t.Fatalf("DefaultLogPath() = %q, %v", p, err)
	}
}
