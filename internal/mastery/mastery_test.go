package mastery

import (
	"testing"

	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/store"
)

func taggedQuestions(subtopic string, n int, prefix string) []quizgen.Question {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			ID:           prefix + string(rune('0'+i)),
			Prompt:       "prompt",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 0,
			Subtopic:     subtopic,
		}
	}
	return qs
}

// answer fills in correct answers for the first `correct` questions and a
// wrong answer for the rest.
func answer(qs []quizgen.Question, correct int, into map[string]int) {
	for i, q := range qs {
		if i < correct {
			into[q.ID] = q.CorrectIndex
		} else {
			into[q.ID] = q.CorrectIndex + 1
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		correct int
		total   int
		want    store.ObjectiveStatus
	}{
		{9, 10, store.StatusSuccess},      // 90% is success, threshold inclusive
		{10, 10, store.StatusSuccess},
		{4, 10, store.StatusFailure},      // 40%
		{0, 10, store.StatusFailure},
		{6, 10, store.StatusIntermediate}, // 60%
		{5, 10, store.StatusIntermediate}, // exactly 50% is not failure
		{8, 10, store.StatusIntermediate},
	}
	for _, tc := range cases {
		got := Classify(Performance{Subtopic: "x", Correct: tc.correct, Total: tc.total})
		if got != tc.want {
			t.Errorf("Classify(%d/%d) = %s, want %s", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	questions := append(taggedQuestions("Mitosis", 3, "m"), taggedQuestions("Meiosis", 2, "e")...)
	questions = append(questions, taggedQuestions("", 2, "u")...) // untagged

	answers := map[string]int{}
	answer(questions[:3], 2, answers) // Mitosis 2/3
	answer(questions[3:5], 2, answers)
	// Untagged questions answered too; they must not create a group.
	answer(questions[5:], 2, answers)
	// One Meiosis answer removed: unanswered counts as incorrect.
	delete(answers, "e1")

	groups := Evaluate(questions, answers)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(groups), groups)
	}
	if groups[0].Subtopic != "Mitosis" || groups[0].Correct != 2 || groups[0].Total != 3 {
		t.Errorf("unexpected Mitosis group %+v", groups[0])
	}
	if groups[1].Subtopic != "Meiosis" || groups[1].Correct != 1 || groups[1].Total != 2 {
		t.Errorf("unexpected Meiosis group %+v", groups[1])
	}
}

func TestEvaluate_UntaggedOnly(t *testing.T) {
	questions := taggedQuestions("", 4, "u")
	answers := map[string]int{}
	answer(questions, 4, answers)
	if groups := Evaluate(questions, answers); len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
}
