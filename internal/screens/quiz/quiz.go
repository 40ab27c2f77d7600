// Package quiz presents the active quiz: one question at a time, an
// optional countdown, and submission once every question is seen.
package quiz

import (
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/ui/components"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
	"github.com/abhisek/quizforge/internal/workflow"
)

// SubmittedMsg is sent when the quiz is submitted, by the learner or by
// the timer running out.
type SubmittedMsg struct{}

// timerTickMsg is sent every second while the countdown runs.
type timerTickMsg time.Time

// QuizScreen runs the active quiz.
type QuizScreen struct {
	controller *workflow.Controller

	index   int
	choice  components.AnswerChoice
	confirm bool

	remaining int
	timerOn   bool
	submitted bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen over the controller's active quiz.
func New(controller *workflow.Controller) *QuizScreen {
	s := &QuizScreen{controller: controller}
	s.remaining = controller.TimerSeconds()
	s.timerOn = s.remaining > 0
	s.loadQuestion()
	return s
}

func (s *QuizScreen) loadQuestion() {
	st := s.controller.State()
	if s.index >= len(st.Questions) {
		return
	}
	q := st.Questions[s.index]
	s.choice = components.NewAnswerChoice(q.Prompt, q.Options)
	if idx, ok := st.Answers[q.ID]; ok {
		s.choice.Selected = idx
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.timerOn {
		return s.tick()
	}
	return nil
}

func (s *QuizScreen) Title() string { return "Quiz" }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Up/Down", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
	}
	if s.index > 0 {
		hints = append(hints, layout.KeyHint{Key: "Left", Description: "Previous"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Abandon"})
	return hints
}

func (s *QuizScreen) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		// The tick is cancelled by submission: a late tick after submit
		// must not fire side effects.
		if s.submitted || !s.timerOn {
			return s, nil
		}
		s.remaining--
		if s.remaining <= 0 {
			return s.submit()
		}
		return s, s.tick()

	case tea.KeyMsg:
		if s.submitted {
			return s, nil
		}
		if s.confirm {
			switch msg.String() {
			case "y", "Y":
				s.submitted = true // stops the tick
				return s, func() tea.Msg { return router.ResetMsg{} }
			case "n", "N", "esc":
				s.confirm = false
			}
			return s, nil
		}

		switch msg.String() {
		case "esc":
			s.confirm = true
			return s, nil
		case "left":
			if s.index > 0 {
				s.index--
				s.loadQuestion()
			}
			return s, nil
		case "enter":
			return s.answer()
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) answer() (screen.Screen, tea.Cmd) {
	st := s.controller.State()
	q := st.Questions[s.index]
	if err := s.controller.Answer(q.ID, s.choice.Selected); err != nil {
		return s, nil
	}
	if s.index == len(st.Questions)-1 {
		return s.submit()
	}
	s.index++
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	s.submitted = true
	return s, func() tea.Msg { return SubmittedMsg{} }
}

func (s *QuizScreen) View(width, height int) string {
	st := s.controller.State()
	if len(st.Questions) == 0 {
		return layout.Centered(theme.Hint.Render("No questions."), width, height)
	}
	if s.confirm {
		msg := theme.Title.Render("Abandon this quiz?") + "\n\n" +
			theme.Hint.Render("Progress will be lost.")
		return layout.Centered(msg, width, height)
	}

	q := st.Questions[s.index]

	header := theme.Subtitle.Render(
		"Question " + itoa(s.index+1) + " of " + itoa(len(st.Questions)))
	if q.Subtopic != "" {
		header += "   " + theme.Hint.Render(q.Subtopic)
	}
	if s.timerOn {
		style := theme.Body
		if s.remaining <= 30 {
			style = theme.Incorrect
		}
		header += "   " + style.Render(formatClock(s.remaining))
	}

	progress := components.NewProgressBar("", float64(s.index)/float64(len(st.Questions)), false, 40)
	card := theme.Card.Width(70).Render(s.choice.View())
	content := lipgloss.JoinVertical(lipgloss.Center, header, "", progress.View(), "", card)
	return layout.Centered(content, width, height)
}

func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

func itoa(v int) string { return strconv.Itoa(v) }
