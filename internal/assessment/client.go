package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/interviewx/internal/llm"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/rs/zerolog/log"
)

// Operation names carried by *llm.ErrCommunication.
const (
	OpGenerate = "generate-test"
	OpGrade    = "grade-test"
)

// Client implements Generator using an LLM provider with structured output.
type Client struct {
	provider llm.Provider
	config   Config
}

// New creates a Client with the given provider and config.
func New(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

type testOutput struct {
	Questions []Question `json:"questions"`
}

// GenerateTest asks for a fresh test at the given tier. The payload must
// match TestSchema and hold exactly QuestionCount questions with unique ids
// and OptionCount distinct options each.
func (c *Client) GenerateTest(ctx context.Context, tier profile.Tier) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "test-generate")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGeneratePrompt(tier)},
		},
		Schema:      TestSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return nil, communication(OpGenerate, err)
	}

	var out testOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, violation(TestSchema, resp.Content, fmt.Errorf("decode: %w", err))
	}
	if err := checkQuestions(out.Questions); err != nil {
		return nil, violation(TestSchema, resp.Content, err)
	}

	log.Debug().Str("tier", string(tier)).Int("questions", len(out.Questions)).Msg("promotion test generated")
	return out.Questions, nil
}

// GradeTest grades answers against their questions. Answers must cover
// every question exactly once with one of its options. The returned
// result's Passed flag is always Score >= PassingScore.
func (c *Client) GradeTest(ctx context.Context, questions []Question, answers []Answer) (*Result, error) {
	if err := checkAnswers(questions, answers); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, "test-grade")

	prompt, err := buildGradePrompt(questions, answers)
	if err != nil {
		return nil, err
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Schema:    GradingSchema,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return nil, communication(OpGrade, err)
	}

	var res Result
	if err := json.Unmarshal(resp.Content, &res); err != nil {
		return nil, violation(GradingSchema, resp.Content, fmt.Errorf("decode: %w", err))
	}
	detailed, err := reconcileFeedback(questions, answers, res.Detailed)
	if err != nil {
		return nil, violation(GradingSchema, resp.Content, err)
	}
	res.Detailed = detailed

	passed := res.Score >= PassingScore
	if passed != res.Passed {
		log.Warn().Float64("score", res.Score).Bool("reported", res.Passed).Msg("grader pass flag disagrees with score")
	}
	res.Passed = passed

	return &res, nil
}

// communication wraps a provider failure. Schema violations raised by the
// provider pass through unchanged.
func communication(op string, err error) error {
	var sv *llm.ErrSchemaViolation
	if errors.As(err, &sv) {
		return err
	}
	return &llm.ErrCommunication{Op: op, Err: err}
}

func violation(schema *llm.Schema, content json.RawMessage, err error) error {
	return &llm.ErrSchemaViolation{Schema: schema.Name, Content: content, Err: err}
}
