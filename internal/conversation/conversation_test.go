package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/interviewx/internal/llm"
	"github.com/abhisek/interviewx/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandle(t *testing.T, mock *llm.MockProvider, prior []transcript.Turn) *Handle {
	t.Helper()
	h, err := New(mock, Config{MaxTokens: 512}).CreateSession("system prompt", prior)
	require.NoError(t, err)
	return h
}

func drain(seq func(func(string, error) bool)) (string, error) {
	var b strings.Builder
	for chunk, err := range seq {
		if err != nil {
			return b.String(), err
		}
		b.WriteString(chunk)
	}
	return b.String(), nil
}

func TestCreateSessionSendsNothing(t *testing.T) {
	mock := llm.NewMockProvider()
	h := newHandle(t, mock, []transcript.Turn{transcript.Interviewer("Hi"), transcript.Candidate("Hello")})
	assert.Equal(t, 0, mock.CallCount())
	assert.Equal(t, 3, h.Len(), "hidden opening instruction plus two turns")
}

func TestCreateSessionWithoutProvider(t *testing.T) {
	_, err := New(nil, Config{}).CreateSession("sys", nil)
	var ce *llm.ErrCommunication
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, OpOpen, ce.Op)
}

func TestOpening(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Hello, I'm Alex. Tell me about yourself.")})
	h := newHandle(t, mock, nil)

	greeting, err := h.Opening(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello, I'm Alex. Tell me about yourself.", greeting)

	req, _ := mock.LastCall()
	assert.Equal(t, "system prompt", req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, OpeningInstruction, req.Messages[0].Content)
	assert.Equal(t, 512, req.MaxTokens)
	assert.Equal(t, 2, h.Len())
}

func TestOpeningRejectedWithPriorTurns(t *testing.T) {
	mock := llm.NewMockProvider()
	h := newHandle(t, mock, []transcript.Turn{transcript.Interviewer("Hi")})

	_, err := h.Opening(context.Background())
	require.ErrorIs(t, err, ErrNotFresh)
	assert.Equal(t, 0, mock.CallCount())
}

func TestSendStreamingCommitsOnlyAfterDrain(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Chunks: []string{"Great. ", "Next: ", "why us?"}},
		llm.MockResponse{Content: []byte("ok")},
	)
	h := newHandle(t, mock, []transcript.Turn{transcript.Interviewer("Hi, tell me about yourself.")})
	before := h.Len()

	reply, err := drain(h.SendStreaming(context.Background(), "I build things."))
	require.NoError(t, err)
	assert.Equal(t, "Great. Next: why us?", reply)
	assert.Equal(t, before+2, h.Len())

	_, err = h.Send(context.Background(), "Because.")
	require.NoError(t, err)
	req, _ := mock.LastCall()
	last := req.Messages[len(req.Messages)-2]
	assert.Equal(t, llm.RoleAssistant, last.Role)
	assert.Equal(t, "Great. Next: why us?", last.Content)
}

func TestSendStreamingFailureLeavesHistoryUntouched(t *testing.T) {
	boom := &llm.ErrProviderUnavailable{Err: errors.New("reset by peer")}
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"Par", "tial"}, Err: boom})
	h := newHandle(t, mock, []transcript.Turn{transcript.Interviewer("Hi")})
	before := h.Len()

	got, err := drain(h.SendStreaming(context.Background(), "answer"))
	assert.Equal(t, "Partial", got)

	var ce *llm.ErrCommunication
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, OpStream, ce.Op)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, before, h.Len())
}

func TestSendStreamingAbandonedDoesNotCommit(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"a", "b", "c"}})
	h := newHandle(t, mock, nil)

	for range h.SendStreaming(context.Background(), "x") {
		break
	}
	assert.Equal(t, 0, h.Len())
}

func TestSendStreamingIsSingleUse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"one"}})
	h := newHandle(t, mock, nil)

	seq := h.SendStreaming(context.Background(), "x")
	_, err := drain(seq)
	require.NoError(t, err)

	_, err = drain(seq)
	require.ErrorIs(t, err, ErrStreamConsumed)
	assert.Equal(t, 1, mock.CallCount())
}

func TestSendWhileStreamingIsBusy(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"one", "two"}})
	h := newHandle(t, mock, nil)

	var nestedErr error
	for chunk, err := range h.SendStreaming(context.Background(), "x") {
		require.NoError(t, err)
		if chunk == "one" {
			_, nestedErr = h.Send(context.Background(), "interrupt")
		}
	}
	require.ErrorIs(t, nestedErr, ErrBusy)
	assert.Equal(t, 1, mock.CallCount())
}

func TestSendForFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("### Overall Assessment\nGood.")})
	h := newHandle(t, mock, []transcript.Turn{transcript.Interviewer("Hi"), transcript.Candidate("Hello")})

	report, err := h.SendForFeedback(context.Background(), FeedbackPrompt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report, "###"))

	req, _ := mock.LastCall()
	assert.Equal(t, FeedbackPrompt, req.Messages[len(req.Messages)-1].Content)
}

func TestSendFailureIsCommunicationError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	h := newHandle(t, mock, nil)

	_, err := h.SendForFeedback(context.Background(), FeedbackPrompt)
	var ce *llm.ErrCommunication
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, OpFeedback, ce.Op)
	assert.Equal(t, 0, h.Len())
}

func TestReleasedHandle(t *testing.T) {
	mock := llm.NewMockProvider()
	h := newHandle(t, mock, nil)
	h.Release()

	_, err := h.Send(context.Background(), "x")
	require.ErrorIs(t, err, ErrReleased)
	_, err = drain(h.SendStreaming(context.Background(), "x"))
	require.ErrorIs(t, err, ErrReleased)
	assert.Equal(t, 0, mock.CallCount())
}

func TestHistoryFromTurns(t *testing.T) {
	turns := []transcript.Turn{
		transcript.Interviewer("Q1"),
		transcript.Candidate("A1"),
		transcript.Candidate("A1 again"),
		transcript.Interviewer("Q2"),
	}
	msgs := historyFromTurns(turns)

	require.Len(t, msgs, 4)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: OpeningInstruction}, msgs[0])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "Q1"}, msgs[1])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "A1\n\nA1 again"}, msgs[2])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "Q2"}, msgs[3])

	assert.Nil(t, historyFromTurns(nil))
}

func TestSendAfterUnansweredCandidateTurnMergesUserMessages(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Chunks: []string{"Thanks, ", "next question."}},
		llm.MockResponse{Content: []byte("ok")},
	)
	h := newHandle(t, mock, []transcript.Turn{
		transcript.Interviewer("Hi, tell me about yourself."),
		transcript.Candidate("my answer"),
	})

	_, err := drain(h.SendStreaming(context.Background(), "second answer"))
	require.NoError(t, err)

	req, ok := mock.LastCall()
	require.True(t, ok)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: OpeningInstruction}, req.Messages[0])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "Hi, tell me about yourself."}, req.Messages[1])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "my answer\n\nsecond answer"}, req.Messages[2])

	// The committed history alternates too.
	_, err = h.Send(context.Background(), "third")
	require.NoError(t, err)
	req, _ = mock.LastCall()
	require.Len(t, req.Messages, 5)
	for i := 1; i < len(req.Messages); i++ {
		assert.NotEqual(t, req.Messages[i-1].Role, req.Messages[i].Role, "messages %d and %d share a role", i-1, i)
	}
	assert.Equal(t, "my answer\n\nsecond answer", req.Messages[2].Content)
}
