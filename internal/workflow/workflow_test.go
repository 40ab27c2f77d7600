package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/quizgen"
)

func testQuizConfig() config.Quiz {
	return config.Quiz{
		DefaultQuestionCount:    10,
		MinQuestionsPerSubtopic: 2,
		MinSubtopicsForOptions:  3,
		MaxSubtopicsForOptions:  10,
		MinQuestionsForQuiz:     3,
		MaxQuestionsForQuiz:     20,
		OptionCount:             4,
		DefaultDifficulty:       "medium",
		SecondsPerQuestion:      45,
	}
}

func testQuestions(n int, subtopic string) []quizgen.Question {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			ID:           string(rune('a' + i)),
			Prompt:       "prompt",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 0,
			Subtopic:     subtopic,
		}
	}
	return qs
}

// driveToPreferences walks a controller through upload and subtopic
// selection with the given extraction result.
func driveToPreferences(t *testing.T, c *Controller, subtopics []string) {
	t.Helper()
	eff, err := c.SetDocument("notes.md", "some material")
	if err != nil {
		t.Fatalf("SetDocument: %v", err)
	}
	if err := c.ApplySubtopics(eff.Epoch, subtopics); err != nil {
		t.Fatalf("ApplySubtopics: %v", err)
	}
	if len(subtopics) > 0 {
		if err := c.ConfirmSubtopics(); err != nil {
			t.Fatalf("ConfirmSubtopics: %v", err)
		}
	}
	if got := c.State().Stage; got != StagePreferences {
		t.Fatalf("expected preferences, got %s", got)
	}
}

func TestQuickFlow(t *testing.T) {
	c := NewController(testQuizConfig())

	if err := c.Begin(ModeQuick); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := c.State().Stage; got != StageFileUpload {
		t.Fatalf("expected file_upload, got %s", got)
	}

	driveToPreferences(t, c, []string{"Mitosis", "Meiosis"})

	eff, err := c.SubmitPreferences(10, "medium", false)
	if err != nil {
		t.Fatalf("SubmitPreferences: %v", err)
	}
	if eff.Input.Mode != quizgen.ModeSubtopics {
		t.Errorf("expected subtopic mode, got %s", eff.Input.Mode)
	}
	if got := c.State().Stage; got != StageGenerating {
		t.Fatalf("expected generating, got %s", got)
	}

	if err := c.ApplyGeneration(eff.Epoch, testQuestions(10, "Mitosis"), nil); err != nil {
		t.Fatalf("ApplyGeneration: %v", err)
	}
	if got := c.State().Stage; got != StageQuizActive {
		t.Fatalf("expected quiz_active, got %s", got)
	}
}

func TestPersonalizedFlow(t *testing.T) {
	for _, typ := range []PersonalizedType{TypeComprehensive, TypeNewTopics} {
		t.Run(string(typ), func(t *testing.T) {
			c := NewController(testQuizConfig())

			if err := c.Begin(ModePersonalized); err != nil {
				t.Fatalf("Begin: %v", err)
			}
			if got := c.State().Stage; got != StageCourseSelection {
				t.Fatalf("expected course_selection, got %s", got)
			}
			if err := c.SelectCourse("c1", "Biology"); err != nil {
				t.Fatalf("SelectCourse: %v", err)
			}
			if got := c.State().Stage; got != StageTypeSelection {
				t.Fatalf("expected type selection, got %s", got)
			}
			if err := c.SelectType(typ, nil); err != nil {
				t.Fatalf("SelectType: %v", err)
			}
			if got := c.State().Stage; got != StageFileUpload {
				t.Fatalf("expected file_upload, got %s", got)
			}

			driveToPreferences(t, c, []string{"Mitosis"})
		})
	}
}

func TestWeakTopicsFlowSkipsUpload(t *testing.T) {
	c := NewController(testQuizConfig())

	if err := c.Begin(ModePersonalized); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := c.SelectCourse("c1", "Biology"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}
	if err := c.SelectType(TypeWeakTopics, []string{"Mitosis", "Osmosis"}); err != nil {
		t.Fatalf("SelectType: %v", err)
	}

	s := c.State()
	if s.Stage != StageSubtopicSelection {
		t.Fatalf("expected subtopic_selection, got %s", s.Stage)
	}
	if s.DocumentText != "" {
		t.Error("weak-topics flow must not carry a document")
	}
	if !reflect.DeepEqual(s.SelectedSubtopics, []string{"Mitosis", "Osmosis"}) {
		t.Errorf("unexpected selection %v", s.SelectedSubtopics)
	}

	// Upload operations are rejected in this flow.
	if _, err := c.SetDocument("x", "y"); err == nil {
		t.Error("expected SetDocument to be rejected")
	}

	if err := c.ConfirmSubtopics(); err != nil {
		t.Fatalf("ConfirmSubtopics: %v", err)
	}
	if got := c.State().Stage; got != StagePreferences {
		t.Fatalf("expected preferences, got %s", got)
	}
}

// The weak-topics request built by SubmitPreferences carries no document;
// the generator must accept it as-is.
func TestWeakTopicsGenerationEndToEnd(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModePersonalized); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectCourse("c1", "Biology"); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectType(TypeWeakTopics, []string{"Mitosis", "Osmosis"}); err != nil {
		t.Fatal(err)
	}
	if err := c.ConfirmSubtopics(); err != nil {
		t.Fatal(err)
	}

	eff, err := c.SubmitPreferences(6, "medium", false)
	if err != nil {
		t.Fatalf("SubmitPreferences: %v", err)
	}
	if eff.Input.Mode != quizgen.ModeSubtopics {
		t.Fatalf("expected subtopic mode, got %v", eff.Input.Mode)
	}
	if eff.Input.DocumentText != "" {
		t.Fatal("weak-topics request must not carry a document")
	}

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"questions": [
			{
				"prompt": "Which phase comes first in mitosis?",
				"options": ["Prophase", "Metaphase", "Anaphase", "Telophase"],
				"correct_index": 0,
				"subtopic": "Mitosis",
				"explanation": "Mitosis begins with prophase."
			},
			{
				"prompt": "Which way does water move in osmosis?",
				"options": ["Toward higher solute concentration", "Toward lower solute concentration", "Randomly", "It does not move"],
				"correct_index": 0,
				"subtopic": "Osmosis",
				"explanation": "Water crosses the membrane toward the higher solute concentration."
			}
		]
	}`)})
	gen := quizgen.New(mock, quizgen.DefaultConfig())

	questions, err := gen.Generate(context.Background(), eff.Input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := c.ApplyGeneration(eff.Epoch, questions, nil); err != nil {
		t.Fatalf("ApplyGeneration: %v", err)
	}
	if got := c.State().Stage; got != StageQuizActive {
		t.Fatalf("expected quiz_active, got %s", got)
	}
}

func TestWeakTopicsEmptySetStillEnterable(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModePersonalized); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectCourse("c1", "Biology"); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectType(TypeWeakTopics, nil); err != nil {
		t.Fatalf("SelectType with no weak objectives: %v", err)
	}
	if got := c.State().Stage; got != StageSubtopicSelection {
		t.Fatalf("expected subtopic_selection, got %s", got)
	}
}

func TestZeroSubtopicsSkipsSelection(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}

	eff, err := c.SetDocument("notes.md", "material")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.ApplySubtopics(eff.Epoch, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.State().Stage; got != StagePreferences {
		t.Fatalf("expected preferences, got %s", got)
	}
}

func TestBackNavigation(t *testing.T) {
	t.Run("mirrors forward transitions", func(t *testing.T) {
		c := NewController(testQuizConfig())
		if err := c.Begin(ModePersonalized); err != nil {
			t.Fatal(err)
		}
		if err := c.SelectCourse("c1", "Biology"); err != nil {
			t.Fatal(err)
		}
		if err := c.SelectType(TypeNewTopics, nil); err != nil {
			t.Fatal(err)
		}
		driveToPreferences(t, c, []string{"Mitosis"})

		steps := []Stage{StageSubtopicSelection, StageFileUpload, StageTypeSelection, StageCourseSelection, StageInitial}
		for _, want := range steps {
			if err := c.Back(); err != nil {
				t.Fatalf("Back: %v", err)
			}
			if got := c.State().Stage; got != want {
				t.Fatalf("expected %s, got %s", want, got)
			}
		}
	})

	t.Run("preferences without subtopics returns to upload", func(t *testing.T) {
		c := NewController(testQuizConfig())
		if err := c.Begin(ModeQuick); err != nil {
			t.Fatal(err)
		}
		driveToPreferences(t, c, nil)

		if err := c.Back(); err != nil {
			t.Fatal(err)
		}
		if got := c.State().Stage; got != StageFileUpload {
			t.Fatalf("expected file_upload, got %s", got)
		}
	})

	t.Run("weak topics preferences without objectives returns to type selection", func(t *testing.T) {
		c := NewController(testQuizConfig())
		if err := c.Begin(ModePersonalized); err != nil {
			t.Fatal(err)
		}
		if err := c.SelectCourse("c1", "Biology"); err != nil {
			t.Fatal(err)
		}
		if err := c.SelectType(TypeWeakTopics, nil); err != nil {
			t.Fatal(err)
		}
		if err := c.ConfirmSubtopics(); err != nil {
			t.Fatal(err)
		}

		if err := c.Back(); err != nil {
			t.Fatal(err)
		}
		if got := c.State().Stage; got != StageTypeSelection {
			t.Fatalf("expected type selection, got %s", got)
		}
	})

	t.Run("quick upload backs out to initial", func(t *testing.T) {
		c := NewController(testQuizConfig())
		if err := c.Begin(ModeQuick); err != nil {
			t.Fatal(err)
		}
		if err := c.Back(); err != nil {
			t.Fatal(err)
		}
		if got := c.State().Stage; got != StageInitial {
			t.Fatalf("expected initial, got %s", got)
		}
	})
}

func TestSubtopicSelectionResnapsCount(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	subtopics := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"}
	eff, err := c.SetDocument("notes.md", "material")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.ApplySubtopics(eff.Epoch, subtopics); err != nil {
		t.Fatal(err)
	}

	// Nine selected subtopics: floor 18, options {18, 20}; the default 10
	// snaps to 18.
	if got := c.QuestionCountOptions(); !reflect.DeepEqual(got, []int{18, 20}) {
		t.Fatalf("unexpected options %v", got)
	}
	if got := c.State().NumQuestions; got != 18 {
		t.Errorf("expected count snapped to 18, got %d", got)
	}

	// Narrowing the selection widens the options and re-snaps.
	if err := c.SetSelectedSubtopics(subtopics[:2]); err != nil {
		t.Fatal(err)
	}
	if got := c.State().NumQuestions; got != 18 {
		t.Errorf("18 is still a member, expected it kept, got %d", got)
	}

	if err := c.SetSelectedSubtopics([]string{"nope"}); err == nil {
		t.Error("expected rejection of unidentified subtopic")
	}
}

func TestSubmitPreferencesValidation(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	driveToPreferences(t, c, nil)

	var verr *ValidationError
	if _, err := c.SubmitPreferences(7, "medium", false); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for off-option count, got %v", err)
	}
	if _, err := c.SubmitPreferences(10, "impossible", false); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for unknown difficulty, got %v", err)
	}
	if _, err := c.SubmitPreferences(10, "hard", true); err != nil {
		t.Errorf("valid submission rejected: %v", err)
	}
}

func TestGenerationFailureReturnsToPreferences(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	driveToPreferences(t, c, nil)

	eff, err := c.SubmitPreferences(10, "medium", false)
	if err != nil {
		t.Fatal(err)
	}
	genErr := c.ApplyGeneration(eff.Epoch, nil, quizgen.ErrEmpty)
	if !errors.Is(genErr, quizgen.ErrEmpty) {
		t.Fatalf("expected generation error surfaced, got %v", genErr)
	}
	if got := c.State().Stage; got != StagePreferences {
		t.Fatalf("expected return to preferences, got %s", got)
	}
}

func TestStaleAsyncResultsDiscarded(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	eff, err := c.SetDocument("notes.md", "material")
	if err != nil {
		t.Fatal(err)
	}

	// User cancels while extraction is in flight.
	c.Reset()

	if err := c.ApplySubtopics(eff.Epoch, []string{"Mitosis"}); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if got := c.State().Stage; got != StageInitial {
		t.Fatalf("stale result must not move the wizard, got %s", got)
	}

	// Same for generation results.
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	driveToPreferences(t, c, nil)
	gen, err := c.SubmitPreferences(10, "easy", false)
	if err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if err := c.ApplyGeneration(gen.Epoch, testQuestions(10, ""), nil); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
}

func TestAnswerAndScore(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	driveToPreferences(t, c, nil)
	eff, err := c.SubmitPreferences(10, "medium", true)
	if err != nil {
		t.Fatal(err)
	}
	questions := testQuestions(10, "")
	if err := c.ApplyGeneration(eff.Epoch, questions, nil); err != nil {
		t.Fatal(err)
	}

	if got := c.TimerSeconds(); got != 450 {
		t.Errorf("expected 450 timer seconds, got %d", got)
	}

	// Answer 7 correctly, 2 incorrectly, 1 left blank.
	for i := 0; i < 7; i++ {
		if err := c.Answer(questions[i].ID, 0); err != nil {
			t.Fatal(err)
		}
	}
	for i := 7; i < 9; i++ {
		if err := c.Answer(questions[i].ID, 1); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Score(); got != 7 {
		t.Errorf("expected score 7, got %d", got)
	}

	if err := c.Answer("missing", 0); err == nil {
		t.Error("expected unknown question rejection")
	}
	if err := c.Answer(questions[0].ID, 9); err == nil {
		t.Error("expected out-of-range option rejection")
	}
}

func TestSnapshotIsDefensive(t *testing.T) {
	c := NewController(testQuizConfig())
	if err := c.Begin(ModeQuick); err != nil {
		t.Fatal(err)
	}
	eff, err := c.SetDocument("notes.md", "material")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.ApplySubtopics(eff.Epoch, []string{"Mitosis", "Meiosis"}); err != nil {
		t.Fatal(err)
	}

	snap := c.State()
	snap.IdentifiedSubtopics[0] = "mutated"
	if c.State().IdentifiedSubtopics[0] != "Mitosis" {
		t.Error("snapshot mutation leaked into the controller")
	}
}
