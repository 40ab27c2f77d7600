package router

// Messages screens emit to drive navigation. The app model owns the
// Machine and applies these.

// NavigateMsg requests a transition to the named state.
type NavigateMsg struct {
	To State
}

// BackMsg requests a step back within the current flow.
type BackMsg struct{}

// FailMsg enters the global error state with a message.
type FailMsg struct {
	Message string
}

// ResetMsg abandons the current flow and returns to the dashboard.
type ResetMsg struct{}
