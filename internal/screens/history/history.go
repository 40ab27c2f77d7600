// Package history lists a learner's saved quizzes, newest first, with a
// per-quiz answer review.
package history

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/ui/components"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
)

type quizzesLoadedMsg struct {
	Quizzes []store.SavedQuiz
	Err     error
}

// HistoryScreen shows past quiz runs.
type HistoryScreen struct {
	quizzes store.QuizRepo
	session auth.Session

	loading bool
	errMsg  string
	items   []store.SavedQuiz
	cursor  int

	reviewing   bool
	reviewIndex int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(quizzes store.QuizRepo, session auth.Session) *HistoryScreen {
	return &HistoryScreen{quizzes: quizzes, session: session, loading: true}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.quizzes
	owner := s.session.ProfileID
	return func() tea.Msg {
		quizzes, err := repo.ForOwner(context.Background(), owner)
		return quizzesLoadedMsg{Quizzes: quizzes, Err: err}
	}
}

func (s *HistoryScreen) Title() string { return "Quiz History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.reviewing {
		return []layout.KeyHint{
			{Key: "Left/Right", Description: "Question"},
			{Key: "Esc", Description: "Back to list"},
		}
	}
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Select"},
		{Key: "Enter", Description: "Review"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.items = msg.Quizzes
		return s, nil

	case tea.KeyMsg:
		if s.reviewing {
			return s.updateReview(msg)
		}
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.items)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.items) {
				records := s.items[s.cursor].Questions.Data()
				if len(records) > 0 {
					s.reviewing = true
					s.reviewIndex = 0
				}
			}
		case "esc":
			return s, func() tea.Msg { return router.NavigateMsg{To: router.StateDashboard} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) updateReview(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	total := len(s.items[s.cursor].Questions.Data())
	switch msg.String() {
	case "esc":
		s.reviewing = false
	case "left", "h":
		if s.reviewIndex > 0 {
			s.reviewIndex--
		}
	case "right", "l":
		if s.reviewIndex < total-1 {
			s.reviewIndex++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.reviewing {
		return s.viewReview(width, height)
	}

	title := theme.Title.Render("Quiz History")

	var body string
	switch {
	case s.loading:
		body = theme.Hint.Render("Loading...")
	case s.errMsg != "":
		body = theme.InlineError.Render(s.errMsg)
	case len(s.items) == 0:
		body = theme.Hint.Render("No quizzes yet. Take one from the dashboard!")
	default:
		var lines []string
		for i, q := range s.items {
			lines = append(lines, s.renderRow(i, q))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return layout.Centered(lipgloss.JoinVertical(lipgloss.Center, title, "", body), width, height)
}

func (s *HistoryScreen) renderRow(i int, q store.SavedQuiz) string {
	cursor := "  "
	if i == s.cursor {
		cursor = theme.Selected.Render("> ")
	}

	label := "Quick"
	if q.QuizType == store.QuizTypePersonalized {
		label = "Personalized"
		if q.PersonalizedType != "" {
			label += " (" + q.PersonalizedType + ")"
		}
	}

	score := strconv.Itoa(q.Score) + "/" + strconv.Itoa(q.TotalQuestions)
	scoreStyle := theme.Correct
	if q.TotalQuestions > 0 && q.Score*2 < q.TotalQuestions {
		scoreStyle = theme.Incorrect
	}

	line := cursor + q.SavedAt.Format("2006-01-02 15:04") + "  " +
		scoreStyle.Render(score) + "  " + label + "  " + q.Difficulty
	if i == s.cursor {
		return theme.Selected.Render(line)
	}
	return theme.Unselected.Render(line)
}

func (s *HistoryScreen) viewReview(width, height int) string {
	quiz := s.items[s.cursor]
	records := quiz.Questions.Data()
	answers := quiz.Answers.Data()
	q := records[s.reviewIndex]

	choice := components.NewAnswerChoice(q.Prompt, q.Options)
	choice.Revealed = true
	choice.CorrectIndex = q.CorrectIndex
	choice.Explanation = q.Explanation
	choice.ChosenIndex = -1
	if idx, ok := answers[q.ID]; ok {
		choice.ChosenIndex = idx
	}

	header := theme.Subtitle.Render(
		"Question " + strconv.Itoa(s.reviewIndex+1) + " of " + strconv.Itoa(len(records)))
	card := theme.Card.Width(70).Render(choice.View())
	return layout.Centered(lipgloss.JoinVertical(lipgloss.Center, header, "", card), width, height)
}
