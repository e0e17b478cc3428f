// Package practice ties interview sessions and promotion tests to the
// candidate's stored progress, paused interview and reports.
package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/interviewx/internal/assessment"
	"github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/promotion"
	"github.com/abhisek/interviewx/internal/store"
)

// Repos are the stores the service reads and writes.
type Repos struct {
	Paused   store.PausedRepo
	Progress store.ProgressRepo
	Reports  store.ReportRepo

	// Tx, when set, makes multi-step writes atomic.
	Tx store.Transactor
}

// Service manages the candidate's standing across interviews.
type Service struct {
	repos     Repos
	threshold int
	now       func() time.Time
}

// NewService creates a Service. threshold <= 0 uses profile.DefaultTestThreshold.
func NewService(repos Repos, threshold int) *Service {
	if threshold <= 0 {
		threshold = profile.DefaultTestThreshold
	}
	return &Service{repos: repos, threshold: threshold, now: time.Now}
}

// Threshold returns the number of interviews that unlocks the test.
func (s *Service) Threshold() int {
	return s.threshold
}

// Progress returns the stored progress, or a beginner's if none exists.
func (s *Service) Progress(ctx context.Context) (profile.Progress, error) {
	rec, err := s.repos.Progress.Get(ctx)
	if err != nil {
		return profile.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if rec == nil {
		return profile.New(), nil
	}
	tier, err := profile.ParseTier(rec.Tier)
	if err != nil {
		log.Warn().Str("tier", rec.Tier).Msg("stored tier unknown, falling back to beginner")
		tier = profile.Beginner
	}
	return profile.Progress{Tier: tier, InterviewsCompleted: rec.InterviewsCompleted}, nil
}

// SaveProgress stores p.
func (s *Service) SaveProgress(ctx context.Context, p profile.Progress) error {
	if err := s.repos.Progress.Put(ctx, &store.Progress{
		Tier:                string(p.Tier),
		InterviewsCompleted: p.InterviewsCompleted,
		UpdatedAt:           s.now(),
	}); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// ResetProgress returns the candidate to beginner with no interviews.
func (s *Service) ResetProgress(ctx context.Context) error {
	if err := s.repos.Progress.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// Paused returns the paused interview snapshot, or nil if there is none.
// A stored snapshot this build cannot read is returned with
// interview.ErrIncompatibleSnapshot.
func (s *Service) Paused(ctx context.Context) (*interview.Snapshot, error) {
	p, err := s.repos.Paused.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load paused interview: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	return interview.DecodeSnapshot(p.Data)
}

// SavePaused stores snap in the paused slot, replacing any earlier one.
func (s *Service) SavePaused(ctx context.Context, snap *interview.Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := s.repos.Paused.Save(ctx, &store.PausedInterview{
		CompanyName: snap.Params.CompanyName,
		JobRole:     snap.Params.JobRole,
		Data:        data,
		PausedAt:    snap.PausedAt,
	}); err != nil {
		return fmt.Errorf("save paused interview: %w", err)
	}
	log.Info().Str("company", snap.Params.CompanyName).Msg("paused interview saved")
	return nil
}

// DiscardPaused empties the paused slot. Starting a new interview does this.
func (s *Service) DiscardPaused(ctx context.Context) error {
	if err := s.repos.Paused.Clear(ctx); err != nil {
		return fmt.Errorf("clear paused interview: %w", err)
	}
	return nil
}

// Completion is the result of recording a finished interview.
type Completion struct {
	Report   *store.Report
	Progress profile.Progress
}

// CompleteInterview records an interview that ended with feedback: it
// stores the report, counts the interview towards the next test and
// empties the paused slot. With a Transactor the three writes succeed or
// fail together.
func (s *Service) CompleteInterview(ctx context.Context, out *interview.Outcome, tier profile.Tier) (*Completion, error) {
	transcript, err := json.Marshal(out.Turns)
	if err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}
	rep := &store.Report{
		CompanyName: out.Params.CompanyName,
		JobRole:     out.Params.JobRole,
		CompanyURL:  out.Params.CompanyURL,
		Tier:        string(tier),
		Language:    out.Language,
		Feedback:    out.Feedback,
		Transcript:  transcript,
	}

	var p profile.Progress
	record := func(repos Repos) error {
		var err error
		p, err = s.with(repos).recordCompletion(ctx, rep)
		return err
	}
	if s.repos.Tx != nil {
		err = s.repos.Tx.InTx(ctx, func(r store.TxRepos) error {
			return record(Repos{Paused: r.PausedRepo(), Progress: r.ProgressRepo(), Reports: r.ReportRepo()})
		})
	} else {
		err = record(s.repos)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("report", rep.ID).
		Int("completed", p.InterviewsCompleted).
		Bool("test_eligible", p.TestEligible(s.threshold)).
		Msg("interview completed")
	return &Completion{Report: rep, Progress: p}, nil
}

// with returns a copy of s writing through repos.
func (s *Service) with(repos Repos) *Service {
	c := *s
	c.repos = repos
	return &c
}

// recordCompletion stores rep, then counts the interview and clears the
// paused slot.
func (s *Service) recordCompletion(ctx context.Context, rep *store.Report) (profile.Progress, error) {
	if err := s.repos.Reports.Save(ctx, rep); err != nil {
		return profile.Progress{}, fmt.Errorf("save report: %w", err)
	}
	p, err := s.Progress(ctx)
	if err != nil {
		return profile.Progress{}, err
	}
	p.RecordInterviewCompleted()
	if err := s.SaveProgress(ctx, p); err != nil {
		return profile.Progress{}, err
	}
	if err := s.DiscardPaused(ctx); err != nil {
		return profile.Progress{}, err
	}
	return p, nil
}

// TestEligible reports whether p may take the promotion test.
func (s *Service) TestEligible(p profile.Progress) bool {
	return p.TestEligible(s.threshold)
}

// Status is the one-line progress description for p.
func (s *Service) Status(p profile.Progress) string {
	return p.Status(s.threshold)
}

// ApplyTestResult promotes the candidate when res passed and stores the
// new progress. It reports whether a promotion happened.
func (s *Service) ApplyTestResult(ctx context.Context, res *assessment.Result) (bool, profile.Progress, error) {
	p, err := s.Progress(ctx)
	if err != nil {
		return false, p, err
	}
	if !promotion.ApplyOutcome(&p, res) {
		return false, p, nil
	}
	if err := s.SaveProgress(ctx, p); err != nil {
		return false, p, err
	}
	log.Info().Str("tier", string(p.Tier)).Msg("candidate promoted")
	return true, p, nil
}

// DecodeTranscript returns the turns stored with a report.
func DecodeTranscript(rep *store.Report) (interview.Report, error) {
	out := interview.Report{Feedback: rep.Feedback}
	if len(rep.Transcript) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(rep.Transcript, &out.ChatHistory); err != nil {
		return out, fmt.Errorf("decode report %d transcript: %w", rep.ID, err)
	}
	return out, nil
}

// ExportFileName is the default file name for an exported report.
func ExportFileName(rep *store.Report) string {
	return fmt.Sprintf("interview-report-%d.json", rep.Sequence)
}

// ExportReport writes rep as indented {feedback, chatHistory} JSON.
func ExportReport(w io.Writer, rep *store.Report) error {
	out, err := DecodeTranscript(rep)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
