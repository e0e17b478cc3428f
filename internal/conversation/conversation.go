// Package conversation adapts a streaming model provider into the
// turn-based chat the interview engine drives.
package conversation

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/abhisek/interviewx/internal/llm"
	"github.com/abhisek/interviewx/internal/transcript"
	"github.com/rs/zerolog/log"
)

// Operation names carried by *llm.ErrCommunication.
const (
	OpOpen     = "open"
	OpSend     = "send"
	OpStream   = "stream"
	OpFeedback = "feedback"
)

var (
	// ErrReleased is returned by any exchange on a released handle.
	ErrReleased = errors.New("conversation handle released")

	// ErrBusy is returned when an exchange starts while another is in flight.
	ErrBusy = errors.New("another exchange is in flight")

	// ErrNotFresh is returned by Opening on a handle seeded with prior turns.
	ErrNotFresh = errors.New("opening message requires an empty history")

	// ErrStreamConsumed is yielded when a reply stream is ranged over twice.
	ErrStreamConsumed = errors.New("reply stream already consumed")
)

// Config tunes the requests sent for the conversation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used for interviews.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// Client creates conversation handles over a provider.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Client.
func New(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, cfg: cfg}
}

// Handle is one live chat: the system prompt plus the history the service
// has seen. It is not safe for concurrent use.
type Handle struct {
	client   *Client
	system   string
	history  []llm.Message
	busy     bool
	released bool
}

// CreateSession seeds a handle with prior turns. Nothing is sent.
// Candidate turns map to the user role and interviewer turns to the
// assistant role.
func (c *Client) CreateSession(systemPrompt string, prior []transcript.Turn) (*Handle, error) {
	if c == nil || c.provider == nil {
		return nil, &llm.ErrCommunication{Op: OpOpen, Err: errors.New("no provider configured")}
	}
	return &Handle{
		client:  c,
		system:  systemPrompt,
		history: historyFromTurns(prior),
	}, nil
}

// Opening asks the interviewer to introduce themselves and returns the
// whole greeting.
func (h *Handle) Opening(ctx context.Context) (string, error) {
	if len(h.history) > 0 {
		return "", &llm.ErrCommunication{Op: OpOpen, Err: ErrNotFresh}
	}
	return h.exchange(llm.WithPurpose(ctx, "interview-open"), OpOpen, OpeningInstruction)
}

// Send sends text and returns the complete reply.
func (h *Handle) Send(ctx context.Context, text string) (string, error) {
	return h.exchange(llm.WithPurpose(ctx, "interview-turn"), OpSend, text)
}

// SendForFeedback sends the closing prompt and returns the report.
func (h *Handle) SendForFeedback(ctx context.Context, prompt string) (string, error) {
	return h.exchange(llm.WithPurpose(ctx, "interview-feedback"), OpFeedback, prompt)
}

// SendStreaming sends text and yields the reply in fragments. The sequence
// can be ranged over once. The exchange is added to the handle's history
// only when the sequence is drained without error.
func (h *Handle) SendStreaming(ctx context.Context, text string) iter.Seq2[string, error] {
	used := false
	return func(yield func(string, error) bool) {
		if used {
			yield("", &llm.ErrCommunication{Op: OpStream, Err: ErrStreamConsumed})
			return
		}
		used = true

		if err := h.begin(); err != nil {
			yield("", &llm.ErrCommunication{Op: OpStream, Err: err})
			return
		}
		defer h.end()

		req := h.request(text)
		ctx := llm.WithPurpose(ctx, "interview-turn")

		var reply strings.Builder
		for chunk, err := range h.client.provider.Stream(ctx, req) {
			if err != nil {
				log.Warn().Err(err).Int("received_bytes", reply.Len()).Msg("interview reply stream failed")
				yield("", &llm.ErrCommunication{Op: OpStream, Err: err})
				return
			}
			reply.WriteString(chunk)
			if !yield(chunk, nil) {
				log.Debug().Msg("interview reply stream abandoned before completion")
				return
			}
		}

		h.commit(text, reply.String())
	}
}

// Release drops the handle. Later exchanges fail with ErrReleased.
func (h *Handle) Release() {
	h.released = true
	h.history = nil
}

// Len returns the number of messages the service has seen, including the
// hidden opening instruction.
func (h *Handle) Len() int {
	return len(h.history)
}

func (h *Handle) exchange(ctx context.Context, op, text string) (string, error) {
	if err := h.begin(); err != nil {
		return "", &llm.ErrCommunication{Op: op, Err: err}
	}
	defer h.end()

	resp, err := h.client.provider.Generate(ctx, h.request(text))
	if err != nil {
		return "", &llm.ErrCommunication{Op: op, Err: err}
	}
	reply := resp.Text()
	h.commit(text, reply)
	return reply, nil
}

func (h *Handle) begin() error {
	switch {
	case h.released:
		return ErrReleased
	case h.busy:
		return ErrBusy
	}
	h.busy = true
	return nil
}

func (h *Handle) end() {
	h.busy = false
}

func (h *Handle) request(text string) llm.Request {
	msgs := make([]llm.Message, 0, len(h.history)+1)
	msgs = append(msgs, h.history...)
	msgs = appendMessage(msgs, llm.Message{Role: llm.RoleUser, Content: text})
	return llm.Request{
		System:      h.system,
		Messages:    msgs,
		MaxTokens:   h.client.cfg.MaxTokens,
		Temperature: h.client.cfg.Temperature,
	}
}

func (h *Handle) commit(sent, reply string) {
	if h.released {
		return
	}
	h.history = appendMessage(h.history, llm.Message{Role: llm.RoleUser, Content: sent})
	h.history = appendMessage(h.history, llm.Message{Role: llm.RoleAssistant, Content: reply})
}

// appendMessage appends m, folding it into the last message when both come
// from the same speaker. Some providers reject consecutive same-role
// messages, and a resumed log can end on an unanswered candidate turn.
func appendMessage(msgs []llm.Message, m llm.Message) []llm.Message {
	if n := len(msgs); n > 0 && msgs[n-1].Role == m.Role {
		msgs[n-1].Content += "\n\n" + m.Content
		return msgs
	}
	return append(msgs, m)
}

// historyFromTurns converts a turn log to provider messages. A log that
// starts with the interviewer gets the hidden opening instruction in front,
// which is what the live handle saw. Consecutive turns from the same
// speaker are merged.
func historyFromTurns(turns []transcript.Turn) []llm.Message {
	if len(turns) == 0 {
		return nil
	}

	msgs := make([]llm.Message, 0, len(turns)+1)
	if turns[0].Role == transcript.RoleInterviewer {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: OpeningInstruction})
	}
	for _, t := range turns {
		role := llm.RoleUser
		if t.Role == transcript.RoleInterviewer {
			role = llm.RoleAssistant
		}
		msgs = appendMessage(msgs, llm.Message{Role: role, Content: t.Text})
	}
	return msgs
}
