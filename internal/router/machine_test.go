package router

import (
	"errors"
	"testing"
)

func authedMachine() *Machine {
	m := NewMachine()
	m.SetAuthenticated(true)
	return m
}

func TestInitialState(t *testing.T) {
	m := NewMachine()
	if m.Current() != StateAuthLoading {
		t.Errorf("expected auth_loading, got %s", m.Current())
	}
}

func TestForcedTransitions(t *testing.T) {
	t.Run("session found during auth loading", func(t *testing.T) {
		m := NewMachine()
		m.SetAuthenticated(true)
		if m.Current() != StateDashboard {
			t.Errorf("expected dashboard, got %s", m.Current())
		}
	})

	t.Run("no session during auth loading", func(t *testing.T) {
		m := NewMachine()
		m.SetAuthenticated(false)
		if m.Current() != StateLogin {
			t.Errorf("expected login, got %s", m.Current())
		}
	})

	t.Run("sign in from login", func(t *testing.T) {
		m := NewMachine()
		m.SetAuthenticated(false)
		m.SetAuthenticated(true)
		if m.Current() != StateDashboard {
			t.Errorf("expected dashboard, got %s", m.Current())
		}
	})

	t.Run("session lost mid flow forces login", func(t *testing.T) {
		m := authedMachine()
		mustNavigate(t, m, StateCourseSelect, StateTypeSelect)
		m.SetAuthenticated(false)
		if m.Current() != StateLogin {
			t.Errorf("expected login, got %s", m.Current())
		}
	})

	t.Run("session lost on forgot password stays put", func(t *testing.T) {
		m := NewMachine()
		m.SetAuthenticated(false)
		mustNavigate(t, m, StateForgotPassword)
		m.SetAuthenticated(false)
		if m.Current() != StateForgotPassword {
			t.Errorf("expected forgot_password, got %s", m.Current())
		}
	})

	t.Run("authenticating on forgot password does not force dashboard", func(t *testing.T) {
		m := NewMachine()
		m.SetAuthenticated(false)
		mustNavigate(t, m, StateForgotPassword)
		m.SetAuthenticated(true)
		if m.Current() != StateForgotPassword {
			t.Errorf("expected forgot_password, got %s", m.Current())
		}
	})
}

func TestNavigationTable(t *testing.T) {
	m := authedMachine()
	mustNavigate(t, m, StateCourseSelect, StateTypeSelect, StateUpload, StateSubtopics, StatePreferences, StateGenerating, StateQuizActive, StateQuizCompleted, StateDashboard)

	var terr *TransitionError
	if err := m.NavigateTo(StateQuizActive); !errors.As(err, &terr) {
		t.Errorf("expected TransitionError jumping dashboard->quiz_active, got %v", err)
	}
	if m.Current() != StateDashboard {
		t.Errorf("rejected navigation moved the machine to %s", m.Current())
	}
}

func TestUnauthenticatedGate(t *testing.T) {
	m := NewMachine()
	m.SetAuthenticated(false)

	var terr *TransitionError
	if err := m.NavigateTo(StateDashboard); !errors.As(err, &terr) {
		t.Errorf("expected gate rejection, got %v", err)
	}
	mustNavigate(t, m, StateSignup, StateLogin, StateForgotPassword)
}

func TestAuthMessageClearedOutsideAuthGroup(t *testing.T) {
	m := NewMachine()
	m.SetAuthenticated(false)
	m.AuthMessage = "password reset, sign in again"

	mustNavigate(t, m, StateSignup)
	if m.AuthMessage == "" {
		t.Error("auth message must survive within the auth group")
	}

	m.SetAuthenticated(true)
	if m.AuthMessage != "" {
		t.Errorf("auth message must clear on entering the app, got %q", m.AuthMessage)
	}
}

func TestErrorState(t *testing.T) {
	m := authedMachine()
	mustNavigate(t, m, StateCourseSelect)

	m.Fail("configuration failed to load")
	if m.Current() != StateError {
		t.Fatalf("expected error state, got %s", m.Current())
	}
	if m.ErrorMessage == "" {
		t.Error("expected recorded message")
	}

	// No ordinary navigation leaves the error state.
	if err := m.NavigateTo(StateDashboard); err == nil {
		t.Error("expected navigation out of error to be rejected")
	}

	m.ResetToDashboard()
	if m.Current() != StateDashboard {
		t.Errorf("expected dashboard, got %s", m.Current())
	}
	if m.ErrorMessage != "" {
		t.Errorf("error message must clear on reset, got %q", m.ErrorMessage)
	}
}

func TestResetToDashboardUnauthenticated(t *testing.T) {
	m := NewMachine()
	m.SetAuthenticated(false)
	m.Fail("boom")
	m.ResetToDashboard()
	if m.Current() != StateLogin {
		t.Errorf("expected login, got %s", m.Current())
	}
}

func mustNavigate(t *testing.T, m *Machine, path ...State) {
	t.Helper()
	for _, s := range path {
		if err := m.NavigateTo(s); err != nil {
			t.Fatalf("NavigateTo(%s) from %s: %v", s, m.Current(), err)
		}
	}
}
