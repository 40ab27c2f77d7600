package authflow

import "github.com/abhisek/quizforge/internal/auth"

// SignedInMsg is sent when login or signup succeeds.
type SignedInMsg struct {
	Session auth.Session
}

// ResetDoneMsg is sent when a password reset completes; the app returns to
// the login screen with a notice.
type ResetDoneMsg struct {
	Notice string
}

// signInResultMsg carries an async sign-in attempt's outcome.
type signInResultMsg struct {
	Session auth.Session
	Err     error
}

// signUpResultMsg carries an async sign-up attempt's outcome.
type signUpResultMsg struct {
	Session auth.Session
	Err     error
}

// resetResultMsg carries an async password reset outcome.
type resetResultMsg struct {
	Err error
}
