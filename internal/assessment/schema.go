package assessment

import "github.com/abhisek/interviewx/internal/llm"

// Distinct options are checked after decoding because not every provider
// accepts uniqueItems in a structured output schema.

// TestSchema is the shape of a generated test.
var TestSchema = &llm.Schema{
	Name:        "promotion-test",
	Description: "A short multiple-choice test of professional knowledge and situational judgment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "Exactly 3 multiple-choice questions.",
				"minItems":    QuestionCount,
				"maxItems":    QuestionCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": `A unique ID for the question (e.g., "q1").`,
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text.",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 4 distinct answer options. Do not mark the correct one.",
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
							"items": map[string]any{
								"type": "string",
							},
						},
					},
					"required":             []any{"id", "question", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// GradingSchema is the shape of a graded test.
var GradingSchema = &llm.Schema{
	Name:        "promotion-test-grading",
	Description: "The grading of a candidate's answers to a multiple-choice test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     100,
				"description": "A score from 0 to 100 based on the correctness of the answers.",
			},
			"passed": map[string]any{
				"type":        "boolean",
				"description": "True if score is 70 or above.",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": `A concise, constructive feedback summary on the answers. Address the candidate directly ("You did well on...").`,
			},
			"detailedFeedback": map[string]any{
				"type":        "array",
				"description": "One entry per question, in the order the questions were given.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionId": map[string]any{
							"type":        "string",
							"description": "The ID of the question being graded.",
						},
						"userAnswer": map[string]any{
							"type":        "string",
							"description": "The option the candidate selected, verbatim.",
						},
						"isCorrect": map[string]any{
							"type":        "boolean",
							"description": "Whether the candidate's answer is correct.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is right or wrong.",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from the question's options.",
						},
					},
					"required":             []any{"questionId", "userAnswer", "isCorrect", "explanation", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"score", "passed", "feedback", "detailedFeedback"},
		"additionalProperties": false,
	},
}
