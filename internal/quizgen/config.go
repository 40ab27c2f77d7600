package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// OptionCount is the number of answer choices per question.
	OptionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxDocumentChars truncates the document text included in the
	// prompt. 0 disables truncation.
	MaxDocumentChars int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		OptionCount:      4,
		MaxTokens:        4096,
		Temperature:      0.7,
		MaxDocumentChars: 24000,
	}
}
