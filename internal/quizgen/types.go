package quizgen

// Question is a generated multiple-choice question ready for display.
type Question struct {
	// ID uniquely identifies the question within its quiz.
	ID string

	// Prompt is the question text shown to the learner. Plain text.
	Prompt string

	// Options holds the answer choices. Exactly OptionCount entries,
	// one of which is correct.
	Options []string

	// CorrectIndex is the zero-based index of the correct option.
	CorrectIndex int

	// Subtopic names the document subtopic this question covers.
	// Empty when the quiz was generated from the whole document.
	Subtopic string

	// Explanation is a brief justification of the correct answer,
	// shown during review. Always present.
	Explanation string
}

// Mode selects the generation strategy.
type Mode string

const (
	// ModeDocument generates from the full document text without
	// restricting to particular subtopics.
	ModeDocument Mode = "document"

	// ModeSubtopics generates questions distributed across an explicit
	// subtopic list.
	ModeSubtopics Mode = "subtopics"
)

// GenerateInput holds all context needed to generate a quiz.
type GenerateInput struct {
	// Mode selects whole-document or subtopic-focused generation.
	Mode Mode

	// DocumentText is the source material. Required.
	DocumentText string

	// DocumentName labels the source in prompts and logs.
	DocumentName string

	// Subtopics restricts generation when Mode is ModeSubtopics.
	// Questions are tagged with the subtopic they cover.
	Subtopics []string

	// QuestionCount is the number of questions to produce.
	QuestionCount int

	// Difficulty is "easy", "medium" or "hard".
	Difficulty string
}
