// Package authflow implements the sign-in, sign-up and password reset
// screens backed by local profiles.
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

// LoginScreen signs an existing profile in.
type LoginScreen struct {
	svc      *auth.Service
	name     components.TextInput
	password components.TextInput
	focus    int
	busy     bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// NewLogin creates the login screen. notice is an optional transient
// message from a previous auth action (e.g. a completed password reset).
func NewLogin(svc *auth.Service, notice string) *LoginScreen {
	return &LoginScreen{
		svc:      svc,
		name:     components.NewTextInput("Profile", "your profile name", false, 32),
		password: components.NewTextInput("Password", "", true, 64),
		notice:   notice,
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *LoginScreen) Title() string { return "Sign In" }

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+N", Description: "New profile"},
		{Key: "Ctrl+R", Description: "Reset password"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signInResultMsg:
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
		case "ctrl+n":
			return s, func() tea.Msg { return router.NavigateMsg{To: router.StateSignup} }
		case "ctrl+r":
			return s, func() tea.Msg { return router.NavigateMsg{To: router.StateForgotPassword} }
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

func (s *LoginScreen) cycleFocus() tea.Cmd {
	if s.focus == 0 {
		s.focus = 1
		s.name.Blur()
		return s.password.Focus()
	}
	s.focus = 0
	s.password.Blur()
	return s.name.Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	name, password := s.name.Value(), s.password.Value()
	s.errMsg = ""
	s.busy = true
	return func() tea.Msg {
		sess, err := s.svc.SignIn(context.Background(), name, password)
		return signInResultMsg{Session: sess, Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("Welcome back")
	body := s.name.View() + "\n\n" + s.password.View()

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Signing in...")
	case s.errMsg != "":
		status = theme.InlineError.Render(s.errMsg)
	case s.notice != "":
		status = theme.InlineNotice.Render(s.notice)
	}

	card := theme.Card.Width(48).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Center, title, "", card, "", status)
	return layout.Centered(content, width, height)
}
