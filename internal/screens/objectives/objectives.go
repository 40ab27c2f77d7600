// Package objectives shows the learner's tracked learning objectives and
// their current mastery status.
package objectives

import (
	"context"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
)

type objectivesLoadedMsg struct {
	Objectives []store.LearningObjective
	Err        error
}

// ObjectivesScreen lists learning objectives grouped by course.
type ObjectivesScreen struct {
	objectives store.ObjectiveRepo
	session    auth.Session

	loading bool
	errMsg  string
	items   []store.LearningObjective
	offset  int
}

var _ screen.Screen = (*ObjectivesScreen)(nil)
var _ screen.KeyHintProvider = (*ObjectivesScreen)(nil)

func New(objectives store.ObjectiveRepo, session auth.Session) *ObjectivesScreen {
	return &ObjectivesScreen{objectives: objectives, session: session, loading: true}
}

func (s *ObjectivesScreen) Init() tea.Cmd {
	repo := s.objectives
	owner := s.session.ProfileID
	return func() tea.Msg {
		items, err := repo.ForOwner(context.Background(), owner, "")
		return objectivesLoadedMsg{Objectives: items, Err: err}
	}
}

func (s *ObjectivesScreen) Title() string { return "Learning Objectives" }

func (s *ObjectivesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Scroll"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *ObjectivesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case objectivesLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.items = msg.Objectives
		// Group by course, weakest first within each course.
		sort.SliceStable(s.items, func(i, j int) bool {
			a, b := s.items[i], s.items[j]
			if a.CourseName != b.CourseName {
				return a.CourseName < b.CourseName
			}
			return statusRank(a.Status) < statusRank(b.Status)
		})
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.items)-1 {
				s.offset++
			}
		case "esc":
			return s, func() tea.Msg { return router.NavigateMsg{To: router.StateDashboard} }
		}
	}
	return s, nil
}

func statusRank(status store.ObjectiveStatus) int {
	switch status {
	case store.StatusFailure:
		return 0
	case store.StatusIntermediate:
		return 1
	case store.StatusSuccess:
		return 2
	default:
		return 3
	}
}

func statusStyle(status store.ObjectiveStatus) lipgloss.Style {
	switch status {
	case store.StatusSuccess:
		return theme.StatusSuccess
	case store.StatusFailure:
		return theme.StatusFailure
	case store.StatusIntermediate:
		return theme.StatusIntermediate
	default:
		return theme.StatusPending
	}
}

func (s *ObjectivesScreen) View(width, height int) string {
	title := theme.Title.Render("Learning Objectives")

	var body string
	switch {
	case s.loading:
		body = theme.Hint.Render("Loading...")
	case s.errMsg != "":
		body = theme.InlineError.Render(s.errMsg)
	case len(s.items) == 0:
		body = theme.Hint.Render("Nothing tracked yet. Personalized quizzes build this list.")
	default:
		body = s.renderList(height - 8)
	}

	return layout.Centered(lipgloss.JoinVertical(lipgloss.Center, title, "", body), width, height)
}

func (s *ObjectivesScreen) renderList(visible int) string {
	if visible < 1 {
		visible = 1
	}

	var lines []string
	lastCourse := "\x00"
	end := s.offset + visible
	if end > len(s.items) {
		end = len(s.items)
	}
	for _, obj := range s.items[s.offset:end] {
		if obj.CourseName != lastCourse {
			lastCourse = obj.CourseName
			name := obj.CourseName
			if name == "" {
				name = "No course"
			}
			lines = append(lines, theme.Subtitle.Render(name))
		}
		marker := statusStyle(obj.Status).Render("●")
		lines = append(lines, "  "+marker+" "+obj.Name+"  "+theme.Hint.Render(string(obj.Status)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
