// Package assessment generates and grades the multiple-choice promotion
// test through a structured generation provider.
package assessment

import (
	"context"
	"errors"

	"github.com/abhisek/interviewx/internal/profile"
)

const (
	// QuestionCount is the number of questions in every test.
	QuestionCount = 3

	// OptionCount is the number of options per question.
	OptionCount = 4

	// PassingScore is the minimum score that passes a test.
	PassingScore = 70
)

// ErrIncompleteAnswers is returned when the answers do not cover every
// question exactly once with one of its options.
var ErrIncompleteAnswers = errors.New("every question needs exactly one answer chosen from its options")

// Question is one test question. The correct option is never part of it.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// Answer is the option the candidate selected for a question.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// QuestionFeedback is the grading of a single answer.
type QuestionFeedback struct {
	QuestionID    string `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Result is a graded test.
type Result struct {
	Score    float64            `json:"score"`
	Passed   bool               `json:"passed"`
	Feedback string             `json:"feedback"`
	Detailed []QuestionFeedback `json:"detailedFeedback"`
}

// Correct returns the number of answers graded correct.
func (r *Result) Correct() int {
	n := 0
	for _, d := range r.Detailed {
		if d.IsCorrect {
			n++
		}
	}
	return n
}

// Generator produces and grades promotion tests.
type Generator interface {
	GenerateTest(ctx context.Context, tier profile.Tier) ([]Question, error)
	GradeTest(ctx context.Context, questions []Question, answers []Answer) (*Result, error)
}
