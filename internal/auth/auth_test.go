package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizforge/internal/store"
)

func testService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open("file::memory:?cache=private")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st.Profiles())
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, "ada", "lovelace1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ProfileID)
	assert.Equal(t, "ada", sess.Name)

	again, err := svc.SignIn(ctx, "ada", "lovelace1")
	require.NoError(t, err)
	assert.Equal(t, sess.ProfileID, again.ProfileID)
}

func TestSignUpNameTaken(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada", "lovelace1")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ada", "different1")
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestSignUpValidation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "", "lovelace1")
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, "ada", "short")
	assert.Error(t, err)
}

func TestSignInBadCredentials(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada", "lovelace1")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "ada", "wrongpass")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.SignIn(ctx, "nobody", "lovelace1")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestResetPassword(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada", "lovelace1")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "ada", "babbage2"))

	_, err = svc.SignIn(ctx, "ada", "lovelace1")
	assert.ErrorIs(t, err, ErrBadCredentials)

	sess, err := svc.SignIn(ctx, "ada", "babbage2")
	require.NoError(t, err)
	assert.Equal(t, "ada", sess.Name)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "nobody", "babbage2"), ErrUnknownProfile)
}
