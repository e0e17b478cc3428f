package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // created_at >= From
	To     time.Time // created_at <= To
}

// PausedInterview is the single saved in-progress interview. Data is the
// serialized session snapshot and is stored verbatim; the other fields are
// copies kept for listing without decoding Data.
type PausedInterview struct {
	CompanyName string
	JobRole     string
	Data        json.RawMessage
	PausedAt    time.Time
}

// PausedRepo stores at most one paused interview. Saving replaces it.
type PausedRepo interface {
	Save(ctx context.Context, p *PausedInterview) error

	// Load returns the paused interview, or nil if none is stored.
	Load(ctx context.Context) (*PausedInterview, error)

	Clear(ctx context.Context) error
}

// Progress is the candidate's tier and completed interview count at that tier.
type Progress struct {
	Tier                string
	InterviewsCompleted int
	UpdatedAt           time.Time
}

// ProgressRepo reads and writes the single progress record.
type ProgressRepo interface {
	// Get returns the stored progress, or nil if none was ever written.
	Get(ctx context.Context) (*Progress, error)

	Put(ctx context.Context, p *Progress) error

	Reset(ctx context.Context) error
}

// Report is a finished interview with its feedback and transcript.
type Report struct {
	ID          int64
	Sequence    int64
	CreatedAt   time.Time
	CompanyName string
	JobRole     string
	CompanyURL  string
	Tier        string
	Language    string
	Feedback    string
	Transcript  json.RawMessage
}

// ReportRepo stores finished interview reports.
type ReportRepo interface {
	// Save inserts r and fills in its ID, Sequence and CreatedAt.
	Save(ctx context.Context, r *Report) error

	// List returns reports newest first.
	List(ctx context.Context, opts QueryOpts) ([]Report, error)

	// Get returns the report with the given ID, or nil if not found.
	Get(ctx context.Context, id int64) (*Report, error)
}

// TestAttempt is one graded promotion test.
type TestAttempt struct {
	ID        int64
	Sequence  int64
	CreatedAt time.Time
	Tier      string
	Score     int
	Passed    bool
	Detail    json.RawMessage
}

// AttemptRepo stores graded promotion test attempts.
type AttemptRepo interface {
	Save(ctx context.Context, a *TestAttempt) error

	// List returns attempts newest first.
	List(ctx context.Context, opts QueryOpts) ([]TestAttempt, error)
}

// LLMRequestEventData captures the data for a single model request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored model request.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates requests by purpose or by model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to model request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
