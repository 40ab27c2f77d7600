// Package auth manages local profiles. Profiles are per-machine accounts
// identified by name; passwords are hashed with bcrypt and never stored in
// the clear. There is no network component: "forgot password" resets the
// hash in place after the profile name is confirmed.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/quizforge/internal/store"
)

var (
	// ErrBadCredentials is returned when the name/password pair does not
	// match a stored profile. The message is deliberately vague so the UI
	// cannot leak which half was wrong.
	ErrBadCredentials = errors.New("invalid name or password")

	// ErrNameTaken is returned by SignUp when the profile name exists.
	ErrNameTaken = errors.New("profile name already taken")

	// ErrUnknownProfile is returned by ResetPassword for a missing name.
	ErrUnknownProfile = errors.New("no such profile")
)

const (
	minPasswordLen = 6
	maxNameLen     = 32
)

// Session identifies the signed-in profile for the rest of the app.
type Session struct {
	ProfileID string
	Name      string
}

// Service wraps profile storage with credential checks.
type Service struct {
	profiles store.ProfileRepo
}

// NewService returns a Service backed by the given profile repository.
func NewService(profiles store.ProfileRepo) *Service {
	return &Service{profiles: profiles}
}

// SignUp creates a new profile and returns a session for it.
func (s *Service) SignUp(ctx context.Context, name, password string) (Session, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return Session{}, err
	}
	if err := validatePassword(password); err != nil {
		return Session{}, err
	}

	if _, err := s.profiles.ByName(ctx, name); err == nil {
		return Session{}, ErrNameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.profiles.Create(ctx, name, string(hash))
	if err != nil {
		return Session{}, err
	}
	return Session{ProfileID: p.ID, Name: p.Name}, nil
}

// SignIn verifies the credentials and returns a session.
func (s *Service) SignIn(ctx context.Context, name, password string) (Session, error) {
	name = strings.TrimSpace(name)
	p, err := s.profiles.ByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, ErrBadCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrBadCredentials
	}
	return Session{ProfileID: p.ID, Name: p.Name}, nil
}

// ResetPassword replaces the stored hash for the named profile.
func (s *Service) ResetPassword(ctx context.Context, name, newPassword string) error {
	name = strings.TrimSpace(name)
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.profiles.UpdatePassword(ctx, name, string(hash)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownProfile
		}
		return err
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New("profile name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("profile name must be at most %d characters", maxNameLen)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}
