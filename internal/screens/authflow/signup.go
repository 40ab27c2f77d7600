package authflow

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/ui/components"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
)

// SignupScreen creates a new local profile.
type SignupScreen struct {
	svc      *auth.Service
	name     components.TextInput
	password components.TextInput
	confirm  components.TextInput
	focus    int
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*SignupScreen)(nil)
var _ screen.KeyHintProvider = (*SignupScreen)(nil)

// NewSignup creates the signup screen.
func NewSignup(svc *auth.Service) *SignupScreen {
	return &SignupScreen{
		svc:      svc,
		name:     components.NewTextInput("Profile", "pick a profile name", false, 32),
		password: components.NewTextInput("Password", "at least 6 characters", true, 64),
		confirm:  components.NewTextInput("Confirm password", "", true, 64),
	}
}

func (s *SignupScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *SignupScreen) Title() string { return "New Profile" }

func (s *SignupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Create"},
		{Key: "Esc", Description: "Back to sign in"},
	}
}

func (s *SignupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signUpResultMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return SignedInMsg{Session: msg.Session} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			return s, s.cycleFocus()
		case "enter":
			return s, s.submit()
		case "esc":
			return s, func() tea.Msg { return router.NavigateMsg{To: router.StateLogin} }
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.name, cmd = s.name.Update(msg)
	case 1:
		s.password, cmd = s.password.Update(msg)
	default:
		s.confirm, cmd = s.confirm.Update(msg)
	}
	return s, cmd
}

func (s *SignupScreen) cycleFocus() tea.Cmd {
	fields := []*components.TextInput{&s.name, &s.password, &s.confirm}
	fields[s.focus].Blur()
	s.focus = (s.focus + 1) % len(fields)
	return fields[s.focus].Focus()
}

func (s *SignupScreen) submit() tea.Cmd {
	if s.password.Value() != s.confirm.Value() {
		s.errMsg = "passwords do not match"
		return nil
	}
	name, password := s.name.Value(), s.password.Value()
	s.errMsg = ""
	s.busy = true
	return func() tea.Msg {
		sess, err := s.svc.SignUp(context.Background(), name, password)
		return signUpResultMsg{Session: sess, Err: err}
	}
}

func (s *SignupScreen) View(width, height int) string {
	title := theme.Title.Render("Create your profile")
	body := s.name.View() + "\n\n" + s.password.View() + "\n\n" + s.confirm.View()

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Creating profile...")
	case s.errMsg != "":
		status = theme.InlineError.Render(s.errMsg)
	}

	card := theme.Card.Width(48).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Center, title, "", card, "", status)
	return layout.Centered(content, width, height)
}
