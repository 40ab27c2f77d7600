package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study assistant creating quiz questions from a learner's own documents.

Rules:
- Generate exactly the requested number of multiple-choice questions from the provided material.
- Every question must be answerable from the material alone. Do not test outside knowledge.
- When no material is provided, write questions from standard knowledge of the listed subtopics instead.
- Provide exactly the requested number of options per question, with exactly one correct option.
- Distractors should be plausible misreadings of the material, not random values.
- Match the requested difficulty: "easy" tests recall, "medium" tests understanding, "hard" tests application and synthesis.
- When a subtopic list is given, spread questions across the subtopics and tag each question with the subtopic it covers, copied verbatim from the list.
- When no subtopic list is given, leave the subtopic field empty.
- The explanation must say why the correct option is right, in one or two sentences.
- Use plain text only. No markdown, no LaTeX.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	doc := input.DocumentText
	if cfg.MaxDocumentChars > 0 && len(doc) > cfg.MaxDocumentChars {
		doc = doc[:cfg.MaxDocumentChars]
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Questions: %d\n", input.QuestionCount)
	fmt.Fprintf(&b, "Options per question: %d\n", cfg.OptionCount)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)

	if input.Mode == ModeSubtopics && len(input.Subtopics) > 0 {
		b.WriteString("\nCover these subtopics:\n")
		for i, s := range input.Subtopics {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}

	if strings.TrimSpace(doc) == "" {
		b.WriteString("\nNo material is provided. Write the questions from standard knowledge of the subtopics above.\n")
		return b.String()
	}

	if input.DocumentName != "" {
		fmt.Fprintf(&b, "\nDocument: %s\n", input.DocumentName)
	}
	b.WriteString("\nMaterial:\n")
	b.WriteString(doc)

	return b.String()
}
