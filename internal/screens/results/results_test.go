package results

import (
	"context"
	"errors"
	"strconv"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/mastery"
	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/workflow"
)

// flakyQuizRepo fails the first N saves, then succeeds.
type flakyQuizRepo struct {
	failures int
	saved    []store.SavedQuiz
}

func (f *flakyQuizRepo) Save(_ context.Context, quiz store.SavedQuiz) (*store.SavedQuiz, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("database is locked")
	}
	f.saved = append(f.saved, quiz)
	return &quiz, nil
}

func (f *flakyQuizRepo) ForOwner(_ context.Context, ownerID string) ([]store.SavedQuiz, error) {
	return f.saved, nil
}

// flakyObjectiveRepo fails the first N loads, then succeeds.
type flakyObjectiveRepo struct {
	failures int
}

func (f *flakyObjectiveRepo) ForOwner(_ context.Context, ownerID, courseID string) ([]store.LearningObjective, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("database is locked")
	}
	return nil, nil
}

func (f *flakyObjectiveRepo) SaveAll(_ context.Context, batch []store.LearningObjective) error {
	return nil
}

func testConfig() config.Quiz {
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

// completedController drives a weak-topics quiz to completion with every
// answer correct.
func completedController(t *testing.T) *workflow.Controller {
	t.Helper()
	c := workflow.NewController(testConfig())
	if err := c.Begin(workflow.ModePersonalized); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectCourse("c1", "Biology"); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectType(workflow.TypeWeakTopics, []string{"Mitosis"}); err != nil {
		t.Fatal(err)
	}
	if err := c.ConfirmSubtopics(); err != nil {
		t.Fatal(err)
	}
	eff, err := c.SubmitPreferences(6, "medium", false)
	if err != nil {
		t.Fatal(err)
	}
	questions := make([]quizgen.Question, 6)
	for i := range questions {
		questions[i] = quizgen.Question{
			ID:           "q" + strconv.Itoa(i),
			Prompt:       "prompt",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 0,
			Subtopic:     "Mitosis",
		}
	}
	if err := c.ApplyGeneration(eff.Epoch, questions, nil); err != nil {
		t.Fatal(err)
	}
	for i := range questions {
		if err := c.Answer(questions[i].ID, 0); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSaveRetry(t *testing.T) {
	quizzes := &flakyQuizRepo{failures: 1}
	s := New(completedController(t), quizzes, mastery.NewUpdater(&flakyObjectiveRepo{}),
		auth.Session{ProfileID: "p1", Name: "sam"})

	next, _ := s.Update(s.saveQuiz()())
	s = next.(*ResultsScreen)
	if s.saveErr == "" {
		t.Fatal("expected a save error")
	}

	next, cmd := s.Update(keyPress('s'))
	s = next.(*ResultsScreen)
	if cmd == nil {
		t.Fatal("retry should re-run the save")
	}
	next, _ = s.Update(cmd())
	s = next.(*ResultsScreen)
	if !s.saved || s.saveErr != "" {
		t.Errorf("expected a clean save after retry, saved=%v err=%q", s.saved, s.saveErr)
	}
	if len(quizzes.saved) != 1 {
		t.Fatalf("expected 1 saved quiz, got %d", len(quizzes.saved))
	}
	if quizzes.saved[0].Score != 6 {
		t.Errorf("expected score 6, got %d", quizzes.saved[0].Score)
	}
}

func TestMasteryRetry(t *testing.T) {
	objectives := &flakyObjectiveRepo{failures: 1}
	s := New(completedController(t), &flakyQuizRepo{}, mastery.NewUpdater(objectives),
		auth.Session{ProfileID: "p1", Name: "sam"})

	next, _ := s.Update(s.applyMastery()())
	s = next.(*ResultsScreen)
	if s.masteryErr == "" {
		t.Fatal("expected a mastery update error")
	}

	next, cmd := s.Update(keyPress('m'))
	s = next.(*ResultsScreen)
	if cmd == nil {
		t.Fatal("retry should re-run the update")
	}
	next, _ = s.Update(cmd())
	s = next.(*ResultsScreen)
	if s.masteryErr != "" {
		t.Errorf("expected the retry to clear the error, got %q", s.masteryErr)
	}
	if s.masteryRes == nil {
		t.Error("expected a mastery result after retry")
	}
}
