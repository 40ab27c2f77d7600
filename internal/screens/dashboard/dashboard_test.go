package dashboard

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/store"
)

type fakeObjectiveRepo struct {
	objectives []store.LearningObjective
}

func (f *fakeObjectiveRepo) ForOwner(_ context.Context, ownerID, courseID string) ([]store.LearningObjective, error) {
	return f.objectives, nil
}

func (f *fakeObjectiveRepo) SaveAll(_ context.Context, batch []store.LearningObjective) error {
	return nil
}

func testSession() auth.Session {
	return auth.Session{ProfileID: "p1", Name: "sam"}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func collectMsg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestQuizEntriesEmitStartMsg(t *testing.T) {
	s := New(testSession(), &fakeObjectiveRepo{}, true)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	msg, ok := collectMsg(cmd).(StartQuizMsg)
	if !ok {
		t.Fatalf("expected StartQuizMsg, got %T", collectMsg(cmd))
	}
	if msg.Personalized {
		t.Error("first entry is the quick quiz")
	}
}

func TestQuizEntriesDisabledWithoutProvider(t *testing.T) {
	s := New(testSession(), &fakeObjectiveRepo{}, false)

	// The cursor starts on the first enabled entry, past both quiz items.
	if got := s.menu.Selected; got != 2 {
		t.Fatalf("expected selection 2 (objectives), got %d", got)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	nav, ok := collectMsg(cmd).(router.NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", collectMsg(cmd))
	}
	if nav.To != router.StateObjectives {
		t.Errorf("expected objectives, got %s", nav.To)
	}

	// Moving up must not land on a disabled quiz entry.
	next, _ := s.Update(specialKey(tea.KeyUp))
	s = next.(*DashboardScreen)
	if got := s.menu.Selected; got != 2 {
		t.Errorf("expected selection to stay at 2, got %d", got)
	}
}

func TestMasterySummaryCounts(t *testing.T) {
	repo := &fakeObjectiveRepo{objectives: []store.LearningObjective{
		{Status: store.StatusSuccess},
		{Status: store.StatusSuccess},
		{Status: store.StatusIntermediate},
		{Status: store.StatusFailure},
	}}
	s := New(testSession(), repo, true)

	msg := s.Init()()
	summary, ok := msg.(masterySummaryMsg)
	if !ok {
		t.Fatalf("expected masterySummaryMsg, got %T", msg)
	}
	if summary.Mastered != 2 || summary.InProgress != 1 || summary.NeedsWork != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
}
