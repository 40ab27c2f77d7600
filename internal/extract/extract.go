// Package extract identifies the subtopics covered by a document, used to
// let the learner narrow a personalized quiz to specific areas.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizforge/internal/llm"
)

// Extractor produces a subtopic list from document text.
type Extractor interface {
	// Extract returns the subtopics found in the document, ordered as
	// they appear in the material. Returns an *ExtractionError when the
	// model output was unusable.
	Extract(ctx context.Context, documentText string) ([]string, error)
}

// ExtractionError describes a failed extraction. Retryable failures are
// worth regenerating; others indicate bad input.
type ExtractionError struct {
	Reason    string
	Retryable bool
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("subtopic extraction: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("subtopic extraction: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SubtopicsSchema defines the JSON schema for extraction responses.
var SubtopicsSchema = &llm.Schema{
	Name:        "document-subtopics",
	Description: "The distinct subtopics covered by a study document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subtopics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Short subtopic names in document order, most significant first within ties",
			},
		},
		"required":             []any{"subtopics"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You identify the subtopics covered by a learner's study document.

Rules:
- List the distinct subtopics the document actually covers, in the order they appear.
- Use short noun phrases (2-5 words), capitalized as in the document where possible.
- Merge near-duplicates into one entry.
- Do not invent subtopics the document does not cover.
- Plain text only.`

// Config controls the LLMExtractor.
type Config struct {
	// MaxSubtopics caps the returned list; extra entries are dropped.
	MaxSubtopics int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness.
	Temperature float64

	// MaxDocumentChars truncates the document included in the prompt.
	// 0 disables truncation.
	MaxDocumentChars int
}

// DefaultConfig returns recommended extractor settings.
func DefaultConfig() Config {
	return Config{
		MaxSubtopics:     15,
		MaxTokens:        1024,
		Temperature:      0.3,
		MaxDocumentChars: 24000,
	}
}

// LLMExtractor implements Extractor using the LLM provider.
type LLMExtractor struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMExtractor with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMExtractor {
	return &LLMExtractor{provider: provider, config: cfg}
}

type subtopicsOutput struct {
	Subtopics []string `json:"subtopics"`
}

// Extract returns the subtopics found in documentText.
func (e *LLMExtractor) Extract(ctx context.Context, documentText string) ([]string, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, errors.New("document text is required")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeSubtopicExtract)

	doc := documentText
	if e.config.MaxDocumentChars > 0 && len(doc) > e.config.MaxDocumentChars {
		doc = doc[:e.config.MaxDocumentChars]
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Document:\n" + doc},
		},
		Schema:      SubtopicsSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM extraction failed: %w", err)
	}

	var raw subtopicsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ExtractionError{Reason: "unparseable response", Retryable: true, Err: err}
	}

	subtopics := cleanSubtopics(raw.Subtopics, e.config.MaxSubtopics)
	if len(subtopics) == 0 {
		return nil, &ExtractionError{Reason: "no subtopics found", Retryable: true}
	}
	return subtopics, nil
}

// cleanSubtopics trims, drops empties, dedupes case-insensitively while
// keeping the first spelling, and caps the list at max.
func cleanSubtopics(raw []string, max int) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
