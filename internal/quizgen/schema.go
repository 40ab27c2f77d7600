package quizgen

import "github.com/abhisek/quizforge/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A list of multiple-choice questions generated from study material",
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
							"description": "The question text shown to the learner, in plain text",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "The answer choices. Exactly one is correct.",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"subtopic": map[string]any{
							"type":        "string",
							"description": "The subtopic this question covers, copied verbatim from the requested list. Empty when no subtopic list was given.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief explanation of why the correct answer is right",
						},
					},
					"required":             []any{"prompt", "options", "correct_index", "subtopic", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
