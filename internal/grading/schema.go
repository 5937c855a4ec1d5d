package grading

import "github.com/abhisek/studiz/internal/llm"

// AnswerEvalSchema defines the JSON schema for single-answer grading
// responses.
var AnswerEvalSchema = &llm.Schema{
	Name:        "answer-eval",
	Description: "The graded outcome of one submitted answer with tutoring feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the submitted answer is correct",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "The feedback message to show the learner, written for the requested feedback level",
			},
			"mastery_delta": map[string]any{
				"type":        "number",
				"description": "Partial-credit adjustment between -1 and 1; 0 when the 0/1 correctness already tells the story",
			},
		},
		"required":             []any{"correct", "feedback", "mastery_delta"},
		"additionalProperties": false,
	},
}

// TestEvalSchema defines the JSON schema for batch test grading responses.
var TestEvalSchema = &llm.Schema{
	Name:        "test-eval",
	Description: "Per-question grades for a completed self-test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grades": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_id": map[string]any{
							"type":        "string",
							"description": "Id of the question this grade is for, echoed from the input",
						},
						"correct": map[string]any{
							"type":        "boolean",
							"description": "Whether the submitted answer is correct. For questions with an asserted verdict, echo the assertion.",
						},
						"feedback": map[string]any{
							"type":        "string",
							"description": "One or two sentences of feedback on this answer",
						},
						"mastery_delta": map[string]any{
							"type":        "number",
							"description": "Partial-credit adjustment between -1 and 1; 0 when the 0/1 correctness already tells the story",
						},
					},
					"required":             []any{"question_id", "correct", "feedback", "mastery_delta"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"grades"},
		"additionalProperties": false,
	},
}
