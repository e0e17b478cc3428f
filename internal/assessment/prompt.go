package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/interviewx/internal/profile"
)

const systemPrompt = `You are an experienced hiring manager who writes and grades short aptitude tests for job candidates.

Rules:
- Questions assess core professional knowledge and situational judgment in common workplace scenarios.
- Every question has exactly 4 distinct options and exactly one best answer.
- Never reveal or mark the correct answer when writing a test.
- When grading, judge each answer against general professional best practice and copy the correct option verbatim.`

// buildGeneratePrompt asks for a test pitched at the given tier.
func buildGeneratePrompt(tier profile.Tier) string {
	return fmt.Sprintf("Based on a %s-level job interview for a generic corporate role (e.g., business, tech, marketing), "+
		"generate a %d-question multiple-choice test to assess the candidate's core professional knowledge and situational judgment. "+
		"The questions should be relevant to common workplace scenarios. Ensure options are distinct. "+
		"Do not include the correct answer in your response.", tier, QuestionCount)
}

// buildGradePrompt carries the full questions with their options, so the
// grader can state the correct option text.
func buildGradePrompt(questions []Question, answers []Answer) (string, error) {
	qs, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	as, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A candidate has taken a test. Here are the questions and their answers. Please grade the test. "+
		"The goal is to assess general professional aptitude. A passing score is %d%%. "+
		"Provide a numeric score, constructive feedback and a detailed entry for every question.\n\n", PassingScore)
	fmt.Fprintf(&b, "Questions: %s\n", qs)
	fmt.Fprintf(&b, "Candidate's Answers: %s\n\n", as)
	b.WriteString("Return the result in the specified JSON format. Your grading should be based on a general understanding of professional best practices.")
	return b.String(), nil
}
