package quizgen

import (
	"context"
	"errors"
	"fmt"
)

// Generator produces quizzes from document material using an LLM provider.
type Generator interface {
	// Generate produces a validated question list for the given input.
	// Returns ErrEmpty when the model produced no usable questions and a
	// *FormatError when the output violated structural requirements.
	Generate(ctx context.Context, input GenerateInput) ([]Question, error)
}

// ErrEmpty is returned when generation yields zero questions.
var ErrEmpty = errors.New("no questions generated")

// FormatError describes a structural defect in generated output, e.g. a
// wrong option count or an out-of-range answer index. Regeneration is
// likely to fix it.
type FormatError struct {
	Index  int    // question index within the batch, -1 for batch-level defects
	Reason string
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed quiz output: %s", e.Reason)
	}
	return fmt.Sprintf("malformed question %d: %s", e.Index, e.Reason)
}
