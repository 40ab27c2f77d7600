// Package router tracks which screen of the app is current. Navigation is
// a named-state machine with an explicit transition table; authentication
// changes force transitions regardless of where the user is, and a global
// error state halts forward progress until the app is reset.
package router

import "fmt"

// State names one screen of the app. Exactly one is current at a time.
type State string

const (
	StateAuthLoading    State = "auth_loading"
	StateLogin          State = "login"
	StateSignup         State = "signup"
	StateForgotPassword State = "forgot_password"
	StateDashboard      State = "dashboard_main"
	StateCourseSelect   State = "selecting_course_for_quiz"
	StateTypeSelect     State = "selecting_personalized_quiz_type"
	StateUpload         State = "uploading_document"
	StateSubtopics      State = "selecting_subtopics"
	StatePreferences    State = "preferences_setup"
	StateGenerating     State = "generating_quiz"
	StateQuizActive     State = "quiz_active"
	StateQuizCompleted  State = "quiz_completed"
	StateHistory        State = "viewing_history"
	StateObjectives     State = "viewing_objectives"
	StateError          State = "error"
)

// authStates are reachable without a session; every other state requires one.
var authStates = map[State]bool{
	StateAuthLoading:    true,
	StateLogin:          true,
	StateSignup:         true,
	StateForgotPassword: true,
	StateError:          true,
}

// transitions is the allowed navigation graph. A state missing from the
// table accepts no ordinary navigation (forced transitions still apply).
var transitions = map[State][]State{
	StateAuthLoading:    {StateLogin, StateDashboard},
	StateLogin:          {StateSignup, StateForgotPassword, StateDashboard},
	StateSignup:         {StateLogin, StateDashboard},
	StateForgotPassword: {StateLogin},
	StateDashboard:      {StateCourseSelect, StateUpload, StateHistory, StateObjectives},
	StateCourseSelect:   {StateTypeSelect, StateDashboard},
	StateTypeSelect:     {StateUpload, StateSubtopics, StateCourseSelect},
	StateUpload:         {StateSubtopics, StatePreferences, StateTypeSelect, StateDashboard},
	StateSubtopics:      {StatePreferences, StateUpload, StateTypeSelect},
	StatePreferences:    {StateGenerating, StateSubtopics, StateUpload, StateTypeSelect},
	StateGenerating:     {StateQuizActive, StatePreferences},
	StateQuizActive:     {StateQuizCompleted, StateDashboard},
	StateQuizCompleted:  {StateDashboard, StateHistory},
	StateHistory:        {StateDashboard},
	StateObjectives:     {StateDashboard},
}

// TransitionError rejects a navigation not present in the table.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from %s to %s", e.From, e.To)
}

// Machine holds the current state plus the transient messages screens show.
type Machine struct {
	current       State
	authenticated bool

	// AuthMessage is a transient message for the auth screens (e.g.
	// "password reset, sign in again"). Cleared on leaving the auth group.
	AuthMessage string

	// ErrorMessage is set while current == StateError.
	ErrorMessage string
}

// NewMachine starts in auth_loading, before the session is known.
func NewMachine() *Machine {
	return &Machine{current: StateAuthLoading}
}

// Current returns the current state.
func (m *Machine) Current() State { return m.current }

// Authenticated reports whether a session is active.
func (m *Machine) Authenticated() bool { return m.authenticated }

// NavigateTo moves to the target state if the transition table allows it
// and the session gate permits the target. Leaving the error state clears
// the recorded error; entering a state outside the auth group clears any
// transient auth message.
func (m *Machine) NavigateTo(target State) error {
	if !m.authenticated && !authStates[target] {
		return &TransitionError{From: m.current, To: target}
	}
	if !allowed(m.current, target) {
		return &TransitionError{From: m.current, To: target}
	}
	m.enter(target)
	return nil
}

// SetAuthenticated records a session change and applies the forced
// transitions: losing the session anywhere outside the auth group forces
// login; gaining one while on an auth screen forces the dashboard.
func (m *Machine) SetAuthenticated(ok bool) {
	m.authenticated = ok
	if !ok {
		if !authStates[m.current] {
			m.enter(StateLogin)
		}
		return
	}
	switch m.current {
	case StateLogin, StateSignup, StateAuthLoading:
		m.enter(StateDashboard)
	}
}

// Fail enters the error state from anywhere, recording the message.
// Forward progress halts until ResetToDashboard.
func (m *Machine) Fail(message string) {
	m.ErrorMessage = message
	m.current = StateError
}

// ResetToDashboard abandons whatever was in progress and returns to the
// dashboard, or to login when no session exists. The caller is expected to
// reset the quiz wizard alongside.
func (m *Machine) ResetToDashboard() {
	m.ErrorMessage = ""
	if m.authenticated {
		m.enter(StateDashboard)
		return
	}
	m.enter(StateLogin)
}

func (m *Machine) enter(target State) {
	if m.current == StateError {
		m.ErrorMessage = ""
	}
	if !authStates[target] {
		m.AuthMessage = ""
	}
	m.current = target
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
