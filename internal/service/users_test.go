package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.Users.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, 1, profile.ID)
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, "alice@example.com", profile.Email)

	got, accessToken, err := env.Users.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, profile, got)
	require.NotEmpty(t, accessToken)

	claims, err := env.Users.Tokens.Parse(accessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims["username"])
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "al", "al@example.com", "hunter22"},
		{"bad email", "alice", "not-an-email", "hunter22"},
		{"short password", "alice", "alice@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Users.Signup(ctx, tc.username, tc.email, tc.password)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Users.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = env.Users.Signup(ctx, "alice", "other@example.com", "hunter22")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Username already registered", ve.Detail)

	_, err = env.Users.Signup(ctx, "alice2", "alice@example.com", "hunter22")
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Email already registered", ve.Detail)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Users.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	var ae *AuthError
	_, _, err = env.Users.Login(ctx, "alice", "wrong")
	require.ErrorAs(t, err, &ae)

	_, _, err = env.Users.Login(ctx, "nobody", "hunter22")
	require.ErrorAs(t, err, &ae)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice")

	profile, err := env.Users.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)

	_, err = env.Users.GetUser(ctx, "ghost")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
