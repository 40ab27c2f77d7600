package wizard

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/workflow"
)

type fakeCourses struct {
	created []store.Course
}

func (f *fakeCourses) List(_ context.Context, ownerID string) ([]store.Course, error) {
	return nil, nil
}

func (f *fakeCourses) Create(_ context.Context, name, ownerID string) (*store.Course, error) {
	c := store.Course{ID: "c-new", OwnerID: ownerID, Name: name}
	f.created = append(f.created, c)
	return &c, nil
}

func (f *fakeCourses) Delete(_ context.Context, id, ownerID string) error {
	return nil
}

type fakeObjectives struct{}

func (f *fakeObjectives) ForOwner(_ context.Context, ownerID, courseID string) ([]store.LearningObjective, error) {
	return nil, nil
}

func (f *fakeObjectives) SaveAll(_ context.Context, batch []store.LearningObjective) error {
	return nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, documentText string) ([]string, error) {
	return nil, nil
}

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, input quizgen.GenerateInput) ([]quizgen.Question, error) {
	return nil, nil
}

func testWizardConfig() config.Quiz {
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

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// courseSelectionWizard builds a wizard sitting on course selection with an
// empty course list, so "New course..." is the only menu entry.
func courseSelectionWizard(t *testing.T) (*WizardScreen, *workflow.Controller, *fakeCourses) {
	t.Helper()
	ctrl := workflow.NewController(testWizardConfig())
	if err := ctrl.Begin(workflow.ModePersonalized); err != nil {
		t.Fatal(err)
	}
	repo := &fakeCourses{}
	s := New(ctrl, testWizardConfig(), auth.Session{ProfileID: "p1", Name: "sam"},
		repo, &fakeObjectives{}, stubExtractor{}, stubGenerator{})

	next, _ := s.Update(coursesLoadedMsg{})
	s = next.(*WizardScreen)
	return s, ctrl, repo
}

// enterCreation selects "New course..." from the menu.
func enterCreation(t *testing.T, s *WizardScreen) *WizardScreen {
	t.Helper()
	next, _ := s.Update(specialKey(tea.KeyEnter))
	s = next.(*WizardScreen)
	if !s.creatingNew {
		t.Fatal("expected the inline course input to open")
	}
	return s
}

func TestCreateCoursePicksIt(t *testing.T) {
	s, ctrl, repo := courseSelectionWizard(t)
	s = enterCreation(t, s)

	s.newCourseName.SetValue("Biology")
	next, cmd := s.Update(specialKey(tea.KeyEnter))
	s = next.(*WizardScreen)
	if cmd == nil {
		t.Fatal("expected a create command")
	}

	msg, ok := cmd().(courseCreatedMsg)
	if !ok {
		t.Fatalf("expected courseCreatedMsg, got %T", cmd())
	}
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Course.Name != "Biology" {
		t.Errorf("expected course Biology, got %q", msg.Course.Name)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created course, got %d", len(repo.created))
	}

	next, _ = s.Update(msg)
	s = next.(*WizardScreen)

	st := ctrl.State()
	if st.Stage != workflow.StageTypeSelection {
		t.Fatalf("expected type selection, got %s", st.Stage)
	}
	if st.SelectedCourseID != "c-new" || st.SelectedCourseName != "Biology" {
		t.Errorf("unexpected course selection %q/%q", st.SelectedCourseID, st.SelectedCourseName)
	}
}

func TestEscCancelsInlineCourseCreation(t *testing.T) {
	s, ctrl, _ := courseSelectionWizard(t)
	s = enterCreation(t, s)
	s.newCourseName.SetValue("Bio")

	next, cmd := s.Update(specialKey(tea.KeyEscape))
	s = next.(*WizardScreen)
	if s.creatingNew {
		t.Fatal("esc should close the inline input")
	}
	if cmd != nil {
		t.Error("cancelling the input must not navigate")
	}
	if s.newCourseName.Value() != "" {
		t.Error("cancelled input should be cleared")
	}
	if got := ctrl.State().Stage; got != workflow.StageCourseSelection {
		t.Fatalf("expected to stay on course selection, got %s", got)
	}

	// A second esc, with the input closed, leaves the wizard entirely.
	_, cmd = s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a reset command")
	}
	if _, ok := cmd().(router.ResetMsg); !ok {
		t.Errorf("expected ResetMsg, got %T", cmd())
	}
}
