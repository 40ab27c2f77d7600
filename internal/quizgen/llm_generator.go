package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizforge/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Subtopic     string   `json:"subtopic"`
	Explanation  string   `json:"explanation"`
}

// Generate produces a validated question list for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if len(raw.Questions) == 0 {
		return nil, ErrEmpty
	}

	questions := make([]Question, 0, len(raw.Questions))
	for i, q := range raw.Questions {
		if err := validateQuestion(i, q, input, g.config); err != nil {
			return nil, err
		}
		questions = append(questions, Question{
			ID:           uuid.NewString(),
			Prompt:       strings.TrimSpace(q.Prompt),
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Subtopic:     strings.TrimSpace(q.Subtopic),
			Explanation:  strings.TrimSpace(q.Explanation),
		})
	}

	return questions, nil
}

func validateInput(input GenerateInput) error {
	if input.Mode == ModeSubtopics {
		// Subtopic quizzes can run without a document; the subtopic names
		// alone carry the request (mastery-driven quizzes work this way).
		if len(input.Subtopics) == 0 {
			return errors.New("subtopic mode requires at least one subtopic")
		}
	} else if strings.TrimSpace(input.DocumentText) == "" {
		return errors.New("document text is required")
	}
	if input.QuestionCount <= 0 {
		return errors.New("question count must be positive")
	}
	return nil
}

func validateQuestion(i int, q questionOutput, input GenerateInput, cfg Config) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return &FormatError{Index: i, Reason: "empty prompt"}
	}
	if len(q.Options) != cfg.OptionCount {
		return &FormatError{Index: i, Reason: fmt.Sprintf("expected %d options, got %d", cfg.OptionCount, len(q.Options))}
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return &FormatError{Index: i, Reason: "empty option"}
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return &FormatError{Index: i, Reason: fmt.Sprintf("correct_index %d out of range", q.CorrectIndex)}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &FormatError{Index: i, Reason: "empty explanation"}
	}
	if input.Mode == ModeSubtopics && q.Subtopic != "" && !containsSubtopic(input.Subtopics, q.Subtopic) {
		return &FormatError{Index: i, Reason: fmt.Sprintf("unknown subtopic %q", q.Subtopic)}
	}
	return nil
}

func containsSubtopic(subtopics []string, name string) bool {
	for _, s := range subtopics {
		if s == name {
			return true
		}
	}
	return false
}
