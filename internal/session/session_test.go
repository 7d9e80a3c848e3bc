package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/concord/pkg/domain"
	"github.com/aretw0/concord/pkg/ports"
)

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  abc123  ", "abc123"},
		{`"abc123"`, "abc123"},
		{"'abc123'", "abc123"},
		{"Bot abc123", "abc123"},
		{"bot abc123", "abc123"},
		{`  "Bot abc123" `, "abc123"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeToken(tc.in), "input %q", tc.in)
	}
}

func TestResolveTokenPrecedence(t *testing.T) {
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvTokenAlt, "from-alt-env")

	// An explicit configuration value wins over the environment.
	token, err := ResolveToken(FromValue("from-config"), FromEnv(EnvToken), FromEnv(EnvTokenAlt))
	require.NoError(t, err)
	assert.Equal(t, "from-config", token)

	// With no config value the canonical variable is next.
	token, err = ResolveToken(FromValue(""), FromEnv(EnvToken), FromEnv(EnvTokenAlt))
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)

	// The alternate casing is the last resort.
	t.Setenv(EnvToken, "")
	token, err = ResolveToken(FromValue(""), FromEnv(EnvToken), FromEnv(EnvTokenAlt))
	require.NoError(t, err)
	assert.Equal(t, "from-alt-env", token)
}

func TestResolveTokenNormalizesWinner(t *testing.T) {
	token, err := ResolveToken(FromValue(`  "Bot tok-123" `))
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestResolveTokenWithoutAnySource(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvTokenAlt, "")

	_, err := ResolveToken(FromValue("   "), FromEnv(EnvToken), FromEnv(EnvTokenAlt))
	require.Error(t, err)

	var env *domain.Envelope
	require.ErrorAs(t, err, &env)
	assert.Equal(t, domain.KindAuthentication, env.Kind)
}

func TestOpenTransitionsToReady(t *testing.T) {
	s := New("tok")
	s.dial = func(token string) (ports.Client, func() error, error) {
		assert.Equal(t, "tok", token)
		return nil, func() error { return nil }, nil
	}

	require.Equal(t, StateUninitialized, s.State())
	require.NoError(t, s.Open(context.Background()))
	assert.Equal(t, StateReady, s.State())

	_, err := s.Client()
	assert.NoError(t, err)
}

func TestOpenFailureIsAuthenticationError(t *testing.T) {
	s := New("bad-token")
	s.dial = func(string) (ports.Client, func() error, error) {
		return nil, nil, errors.New("401: Unauthorized")
	}

	err := s.Open(context.Background())
	require.Error(t, err)

	var env *domain.Envelope
	require.ErrorAs(t, err, &env)
	assert.Equal(t, domain.KindAuthentication, env.Kind)
	assert.Equal(t, StateFailed, s.State())

	_, err = s.Client()
	require.Error(t, err)
	require.ErrorAs(t, err, &env)
	assert.Equal(t, domain.KindAuthentication, env.Kind)
}

func TestOpenTwiceIsRejected(t *testing.T) {
	s := New("tok")
	s.dial = func(string) (ports.Client, func() error, error) {
		return nil, func() error { return nil }, nil
	}
	require.NoError(t, s.Open(context.Background()))
	assert.Error(t, s.Open(context.Background()))
}

func TestClientOnUnopenedSession(t *testing.T) {
	s := New("tok")

	_, err := s.Client()
	require.Error(t, err)

	var env *domain.Envelope
	require.ErrorAs(t, err, &env)
	assert.Equal(t, domain.KindAuthentication, env.Kind)
}

func TestClosedSessionIsUnavailable(t *testing.T) {
	closed := false
	s := New("tok")
	s.dial = func(string) (ports.Client, func() error, error) {
		return nil, func() error { closed = true; return nil }, nil
	}
	require.NoError(t, s.Open(context.Background()))
	require.NoError(t, s.Close())
	assert.True(t, closed)

	_, err := s.Client()
	require.Error(t, err)

	var env *domain.Envelope
	require.ErrorAs(t, err, &env)
	assert.Equal(t, domain.KindUnavailable, env.Kind)

	// Closing again is a no-op.
	assert.NoError(t, s.Close())
}

func TestNewWithClientIsImmediatelyReady(t *testing.T) {
	s := NewWithClient(nil)
	assert.Equal(t, StateReady, s.State())
}

func TestOpenClosesConnectionCompletedAfterCancel(t *testing.T) {
	release := make(chan struct{})
	closed := make(chan struct{})

	s := New("tok")
	s.dial = func(string) (ports.Client, func() error, error) {
		<-release
		return nil, func() error { close(closed); return nil }, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Open(ctx)
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())

	// The dial finishes only now; its connection must still be torn down.
	close(release)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("late dial connection was never closed")
	}
}
