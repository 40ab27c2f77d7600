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

// ForgotScreen resets a profile's password in place. Profiles are local,
// so confirming the profile name is the whole ceremony.
type ForgotScreen struct {
	svc      *auth.Service
	name     components.TextInput
	password components.TextInput
	focus    int
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*ForgotScreen)(nil)
var _ screen.KeyHintProvider = (*ForgotScreen)(nil)

// NewForgot creates the password reset screen.
func NewForgot(svc *auth.Service) *ForgotScreen {
	return &ForgotScreen{
		svc:      svc,
		name:     components.NewTextInput("Profile", "your profile name", false, 32),
		password: components.NewTextInput("New password", "at least 6 characters", true, 64),
	}
}

func (s *ForgotScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *ForgotScreen) Title() string { return "Reset Password" }

func (s *ForgotScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Reset"},
		{Key: "Esc", Description: "Back to sign in"},
	}
}

func (s *ForgotScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetResultMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg {
			return ResetDoneMsg{Notice: "Password reset. Sign in with your new password."}
		}

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
	if s.focus == 0 {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *ForgotScreen) cycleFocus() tea.Cmd {
	if s.focus == 0 {
		s.focus = 1
		s.name.Blur()
		return s.password.Focus()
	}
	s.focus = 0
	s.password.Blur()
	return s.name.Focus()
}

func (s *ForgotScreen) submit() tea.Cmd {
	name, password := s.name.Value(), s.password.Value()
	s.errMsg = ""
	s.busy = true
	return func() tea.Msg {
		return resetResultMsg{Err: s.svc.ResetPassword(context.Background(), name, password)}
	}
}

func (s *ForgotScreen) View(width, height int) string {
	title := theme.Title.Render("Reset password")
	body := s.name.View() + "\n\n" + s.password.View()

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Resetting...")
	case s.errMsg != "":
		status = theme.InlineError.Render(s.errMsg)
	}

	card := theme.Card.Width(48).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Center, title, "", card, "", status)
	return layout.Centered(content, width, height)
}
