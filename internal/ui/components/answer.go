package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/ui/theme"
)

// AnswerChoice presents one quiz question's options. Before submission it
// is a selector; after, it highlights the correct option and the learner's
// pick.
type AnswerChoice struct {
	Question string
	Options  []string
	Selected int

	// Revealed switches the view into review mode.
	Revealed     bool
	CorrectIndex int
	ChosenIndex  int
	Explanation  string
}

// NewAnswerChoice creates a selector for a question's options.
func NewAnswerChoice(question string, options []string) AnswerChoice {
	return AnswerChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (a AnswerChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Selection is committed by the owning screen.
func (a AnswerChoice) Update(msg tea.Msg) (AnswerChoice, tea.Cmd) {
	if a.Revealed {
		return a, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if a.Selected > 0 {
			a.Selected--
		}
	case "down", "j":
		if a.Selected < len(a.Options)-1 {
			a.Selected++
		}
	}
	return a, nil
}

// View renders the question and its options.
func (a AnswerChoice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(a.Question) + "\n\n"

	for i, opt := range a.Options {
		label := string(rune('A' + i))
		prefix := "  "
		if i == a.Selected && !a.Revealed {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		if a.Revealed {
			switch {
			case i == a.CorrectIndex:
				s += theme.Correct.Render(line) + "\n"
			case i == a.ChosenIndex:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else if i == a.Selected {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	if a.Revealed && a.Explanation != "" {
		s += "\n" + theme.Hint.Render(a.Explanation) + "\n"
	}
	return s
}
