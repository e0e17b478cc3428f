package promotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/interviewx/internal/assessment"
	"github.com/abhisek/interviewx/internal/llm"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJSON = `{"questions": [
	{"id": "q1", "question": "A client is upset about a delay.", "options": ["Apologise and give a new date", "Blame engineering", "Ignore the email", "Offer a refund at once"]},
	{"id": "q2", "question": "You disagree with your manager.", "options": ["Raise it privately with data", "Complain to peers", "Comply silently", "Escalate to HR"]},
	{"id": "q3", "question": "You finish a task early.", "options": ["Help a teammate", "Leave early", "Hide it", "Start a side project"]}
]}`

func gradingJSON(score float64, passed bool) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"score": %v, "passed": %v, "feedback": "You showed good judgment.",
		"detailedFeedback": [
			{"questionId": "q1", "userAnswer": "Apologise and give a new date", "isCorrect": true, "explanation": "Own it.", "correctAnswer": "Apologise and give a new date"},
			{"questionId": "q2", "userAnswer": "Raise it privately with data", "isCorrect": true, "explanation": "Respectful.", "correctAnswer": "Raise it privately with data"},
			{"questionId": "q3", "userAnswer": "Leave early", "isCorrect": false, "explanation": "Team first.", "correctAnswer": "Help a teammate"}
		]}`, score, passed))
}

func answerAll(t *testing.T, a *Attempt, choices map[string]string) {
	t.Helper()
	for id, opt := range choices {
		require.NoError(t, a.Answer(id, opt))
	}
}

var choices = map[string]string{
	"q1": "Apologise and give a new date",
	"q2": "Raise it privately with data",
	"q3": "Leave early",
}

func TestBeginnerPromotionScenario(t *testing.T) {
	progress := profile.Progress{Tier: profile.Beginner, InterviewsCompleted: 2}
	require.False(t, progress.TestEligible(3))

	progress.RecordInterviewCompleted()
	require.True(t, progress.TestEligible(3))

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(testJSON)},
		llm.MockResponse{Content: gradingJSON(80, true)},
	)
	ctrl := New(assessment.New(mock, assessment.DefaultConfig()))

	attempt, err := ctrl.Begin(context.Background(), progress.Tier)
	require.NoError(t, err)
	require.Len(t, attempt.Questions, 3)
	for _, q := range attempt.Questions {
		assert.Len(t, q.Options, 4)
	}

	answerAll(t, attempt, choices)
	res, err := attempt.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, res.Passed)

	assert.True(t, ApplyOutcome(&progress, res))
	assert.Equal(t, profile.Intermediate, progress.Tier)
	assert.Equal(t, 0, progress.InterviewsCompleted)
	assert.False(t, progress.TestEligible(3))
}

func TestSubmitRequiresEveryAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(testJSON)})
	attempt, err := New(assessment.New(mock, assessment.DefaultConfig())).Begin(context.Background(), profile.Beginner)
	require.NoError(t, err)

	require.NoError(t, attempt.Answer("q1", "Blame engineering"))
	require.NoError(t, attempt.Answer("q1", "Apologise and give a new date"))
	assert.False(t, attempt.Complete())

	_, err = attempt.Submit(context.Background())
	require.ErrorIs(t, err, ErrIncompleteAnswers)
	assert.Equal(t, 1, mock.CallCount(), "grading must not be requested")
	assert.Nil(t, attempt.Result())

	got, ok := attempt.Selected("q1")
	assert.True(t, ok)
	assert.Equal(t, "Apologise and give a new date", got)
}

func TestAnswerValidation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(testJSON)})
	attempt, err := New(assessment.New(mock, assessment.DefaultConfig())).Begin(context.Background(), profile.Beginner)
	require.NoError(t, err)

	require.ErrorIs(t, attempt.Answer("q9", "Help a teammate"), ErrUnknownQuestion)
	require.ErrorIs(t, attempt.Answer("q3", "Go home"), ErrInvalidOption)
	assert.Empty(t, attempt.Answers())
}

func TestFailedTestKeepsTier(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(testJSON)},
		llm.MockResponse{Content: gradingJSON(60, true)},
	)
	attempt, err := New(assessment.New(mock, assessment.DefaultConfig())).Begin(context.Background(), profile.Beginner)
	require.NoError(t, err)
	answerAll(t, attempt, choices)

	res, err := attempt.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Passed, "passed is recomputed from the score")

	progress := profile.Progress{Tier: profile.Beginner, InterviewsCompleted: 3}
	assert.False(t, ApplyOutcome(&progress, res))
	assert.Equal(t, profile.Progress{Tier: profile.Beginner, InterviewsCompleted: 3}, progress)

	_, err = attempt.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitted)
	require.ErrorIs(t, attempt.Answer("q1", "Blame engineering"), ErrSubmitted)
}

func TestPassAtAdvancedDoesNotPromote(t *testing.T) {
	progress := profile.Progress{Tier: profile.Advanced, InterviewsCompleted: 5}
	assert.False(t, ApplyOutcome(&progress, &assessment.Result{Score: 100, Passed: true}))
	assert.Equal(t, profile.Advanced, progress.Tier)
	assert.Equal(t, 5, progress.InterviewsCompleted)
}

func TestGenerationFailureAborts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": []}`)})
	_, err := New(assessment.New(mock, assessment.DefaultConfig())).Begin(context.Background(), profile.Beginner)

	var sv *llm.ErrSchemaViolation
	require.True(t, errors.As(err, &sv), "got %v", err)
}

func TestGradingFailureLeavesAttemptOpen(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(testJSON)},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: gradingJSON(90, true)},
	)
	attempt, err := New(assessment.New(mock, assessment.DefaultConfig())).Begin(context.Background(), profile.Intermediate)
	require.NoError(t, err)
	answerAll(t, attempt, choices)

	_, err = attempt.Submit(context.Background())
	var ce *llm.ErrCommunication
	require.ErrorAs(t, err, &ce)
	assert.Nil(t, attempt.Result())

	res, err := attempt.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestSubmitRecordsAttempt(t *testing.T) {
	st, err := store.Open("file:promotion_attempts?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	when := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(testJSON)},
		llm.MockResponse{Content: gradingJSON(66.6, false)},
	)
	ctrl := New(assessment.New(mock, assessment.DefaultConfig()),
		WithAttemptRepo(st.AttemptRepo()),
		WithClock(func() time.Time { return when }),
	)

	attempt, err := ctrl.Begin(context.Background(), profile.Intermediate)
	require.NoError(t, err)
	answerAll(t, attempt, choices)
	_, err = attempt.Submit(context.Background())
	require.NoError(t, err)

	list, err := st.AttemptRepo().List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "intermediate", list[0].Tier)
	assert.Equal(t, 67, list[0].Score)
	assert.False(t, list[0].Passed)
	assert.True(t, list[0].CreatedAt.Equal(when))

	var detail attemptDetail
	require.NoError(t, json.Unmarshal(list[0].Detail, &detail))
	assert.Equal(t, attempt.ID, detail.Attempt)
	assert.Len(t, detail.Answers, 3)
}
