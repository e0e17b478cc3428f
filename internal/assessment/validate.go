package assessment

import (
	"errors"
	"fmt"
	"strings"
)

// checkQuestions enforces what the schema cannot express portably.
func checkQuestions(qs []Question) error {
	if len(qs) != QuestionCount {
		return fmt.Errorf("want %d questions, got %d", QuestionCount, len(qs))
	}
	ids := make(map[string]bool, len(qs))
	for i, q := range qs {
		if strings.TrimSpace(q.ID) == "" {
			return fmt.Errorf("question %d has an empty id", i)
		}
		if ids[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		ids[q.ID] = true

		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %q has no text", q.ID)
		}
		if len(q.Options) != OptionCount {
			return fmt.Errorf("question %q: want %d options, got %d", q.ID, OptionCount, len(q.Options))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			key := strings.ToLower(strings.TrimSpace(o))
			if key == "" {
				return fmt.Errorf("question %q has an empty option", q.ID)
			}
			if seen[key] {
				return fmt.Errorf("question %q has duplicate option %q", q.ID, o)
			}
			seen[key] = true
		}
	}
	return nil
}

// checkAnswers requires exactly one valid answer per question and nothing
// else.
func checkAnswers(qs []Question, as []Answer) error {
	if len(qs) == 0 {
		return fmt.Errorf("%w: no questions", ErrIncompleteAnswers)
	}
	byID := make(map[string]Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}

	var errs []error
	answered := make(map[string]bool, len(as))
	for _, a := range as {
		q, ok := byID[a.QuestionID]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("answer for unknown question %q", a.QuestionID))
		case answered[a.QuestionID]:
			errs = append(errs, fmt.Errorf("question %q answered twice", a.QuestionID))
		case !q.HasOption(a.Answer):
			errs = append(errs, fmt.Errorf("answer %q is not an option of question %q", a.Answer, a.QuestionID))
		}
		answered[a.QuestionID] = true
	}
	for _, q := range qs {
		if !answered[q.ID] {
			errs = append(errs, fmt.Errorf("question %q is unanswered", q.ID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrIncompleteAnswers, errors.Join(errs...))
	}
	return nil
}

// reconcileFeedback checks that the grader covered exactly the submitted
// questions and named a real option as correct. The result is in question
// order, echoes the submitted answer and derives IsCorrect from it.
func reconcileFeedback(qs []Question, as []Answer, fb []QuestionFeedback) ([]QuestionFeedback, error) {
	if len(fb) != len(qs) {
		return nil, fmt.Errorf("want feedback for %d questions, got %d", len(qs), len(fb))
	}

	byID := make(map[string]QuestionFeedback, len(fb))
	for _, f := range fb {
		if _, dup := byID[f.QuestionID]; dup {
			return nil, fmt.Errorf("duplicate feedback for question %q", f.QuestionID)
		}
		byID[f.QuestionID] = f
	}
	answers := make(map[string]string, len(as))
	for _, a := range as {
		answers[a.QuestionID] = a.Answer
	}

	out := make([]QuestionFeedback, 0, len(qs))
	for _, q := range qs {
		f, ok := byID[q.ID]
		if !ok {
			return nil, fmt.Errorf("no feedback for question %q", q.ID)
		}
		if !q.HasOption(f.CorrectAnswer) {
			return nil, fmt.Errorf("correct answer %q for question %q is not one of its options", f.CorrectAnswer, q.ID)
		}
		f.UserAnswer = answers[q.ID]
		f.IsCorrect = f.UserAnswer == f.CorrectAnswer
		out = append(out, f)
	}
	return out, nil
}
