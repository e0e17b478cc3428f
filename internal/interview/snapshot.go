package interview

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/interviewx/internal/transcript"
	"golang.org/x/mod/semver"
)

// SnapshotVersion is the format written by Pause. Snapshots with the same
// major version can be resumed.
const SnapshotVersion = "v1.0.0"

// Snapshot is the resumable projection of a paused session.
type Snapshot struct {
	Version  string            `json:"version"`
	Params   Params            `json:"interviewData"`
	Turns    []transcript.Turn `json:"messages"`
	Language string            `json:"language"`
	PausedAt time.Time         `json:"pausedAt"`
}

// Marshal encodes the snapshot for storage.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a stored snapshot and checks that it can be
// resumed.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the version, the parameters and the turn roles.
func (s *Snapshot) Validate() error {
	if !semver.IsValid(s.Version) || semver.Major(s.Version) != semver.Major(SnapshotVersion) {
		return fmt.Errorf("%w: %q", ErrIncompatibleSnapshot, s.Version)
	}
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("snapshot params: %w", err)
	}
	for i, t := range s.Turns {
		if t.Role != transcript.RoleCandidate && t.Role != transcript.RoleInterviewer {
			return fmt.Errorf("snapshot turn %d: unknown role %q", i, t.Role)
		}
	}
	return nil
}
