package quizgen

import "github.com/abhisek/studiz/internal/llm"

// QuestionSetSchema defines the JSON schema for LLM question-set
// generation responses.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "An ordered set of self-assessment questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner, plain text",
						},
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple-choice", "true-false", "short-answer", "explanation", "approach-selection"},
							"description": "How the learner answers",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "4 options for multiple-choice, one matching the answer. Empty for other types.",
						},
						"approaches": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Candidate approaches for approach-selection, one matching the answer. Empty for other types.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct answer. For choice types: the text of the correct option. For true-false: \"true\" or \"false\".",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A teaching explanation of the correct answer, 2-4 sentences",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        []any{"easy", "medium", "hard"},
							"description": "Difficulty of this question",
						},
						"concept": map[string]any{
							"type":        "string",
							"description": "The single concept this question tests, e.g. \"Chain Rule\"",
						},
						"source_doc_id": map[string]any{
							"type":        "string",
							"description": "Id of the source document the question is drawn from, empty if none",
						},
						"requires_vocal": map[string]any{
							"type":        "boolean",
							"description": "Whether the learner should explain their answer aloud",
						},
					},
					"required":             []any{"prompt", "type", "choices", "approaches", "answer", "explanation", "difficulty", "concept", "source_doc_id", "requires_vocal"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
