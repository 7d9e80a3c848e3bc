// Package session owns the process's single authenticated Discord handle:
// credential resolution, gateway startup, lifecycle state, and shutdown.
package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/domain"
	"github.com/aretw0/concord/pkg/ports"
)

// Credential source environment variables. EnvTokenAlt is an alternate
// casing accepted for clients that can only set that form.
const (
	EnvToken    = "DISCORD_TOKEN"
	EnvTokenAlt = "Discord_Token"
)

// State is the session lifecycle. No tool call proceeds unless the session
// is Ready.
type State int

const (
	StateUninitialized State = iota
	StateConnecting
	StateReady
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source produces a candidate credential. Sources are tried in order;
// the first non-empty result wins.
type Source func() string

// FromValue is a source backed by an already-known configuration value.
func FromValue(token string) Source {
	return func() string { return token }
}

// FromEnv is a source backed by an environment variable.
func FromEnv(key string) Source {
	return func() string { return os.Getenv(key) }
}

// ResolveToken tries each source in order and returns the first non-empty
// credential after normalization. With no credential anywhere the session
// cannot be established; this is fatal, not retried.
func ResolveToken(sources ...Source) (string, error) {
	for _, src := range sources {
		if token := NormalizeToken(src()); token != "" {
			return token, nil
		}
	}
	return "", domain.NewError(domain.KindAuthentication,
		"no Discord token provided: set the %s environment variable (or %s), or configure one",
		EnvToken, EnvTokenAlt)
}

// NormalizeToken cleans up a credential as users actually paste it: strips
// whitespace, surrounding quotes, and a leading "Bot " prefix.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	for _, q := range []string{`"`, `'`} {
		if len(token) >= 2 && strings.HasPrefix(token, q) && strings.HasSuffix(token, q) {
			token = strings.TrimSpace(token[1 : len(token)-1])
		}
	}
	if len(token) >= 4 && strings.EqualFold(token[:4], "bot ") {
		token = strings.TrimSpace(token[4:])
	}
	return token
}

// dialer opens an authenticated platform connection for a token. Swapped
// out in tests.
type dialer func(token string) (ports.Client, func() error, error)

// Session is the process's single authenticated handle to Discord. The
// credential is immutable once resolved; rotation requires a new Session.
type Session struct {
	mu      sync.RWMutex
	token   string
	state   State
	client  ports.Client
	closeFn func() error
	dial    dialer
}

// New creates an unconnected session holding the resolved credential.
func New(token string) *Session {
	return &Session{
		token: token,
		state: StateUninitialized,
		dial:  dialDiscord,
	}
}

// NewWithClient creates a session already in the Ready state, backed by the
// given client. Intended for tests with a fake platform client.
func NewWithClient(client ports.Client) *Session {
	return &Session{
		state:  StateReady,
		client: client,
	}
}

// Open establishes the gateway connection. It transitions
// uninitialized -> connecting -> ready, or to failed if the platform
// rejects the credential or the transport cannot connect.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("session already %s", state)
	}
	s.state = StateConnecting
	token := s.token
	dial := s.dial
	s.mu.Unlock()

	type dialResult struct {
		client ports.Client
		close  func() error
		err    error
	}
	done := make(chan dialResult, 1)
	go func() {
		client, closeFn, err := dial(token)
		done <- dialResult{client, closeFn, err}
	}()

	var res dialResult
	select {
	case <-ctx.Done():
		res = dialResult{err: ctx.Err()}
		// A dial that completes after cancellation would otherwise leak
		// its connection; drain and close it.
		go func() {
			if late := <-done; late.close != nil {
				_ = late.close()
			}
		}()
	case res = <-done:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if res.err != nil {
		s.state = StateFailed
		return domain.NewError(domain.KindAuthentication,
			"session establishment failed: %v", res.err)
	}
	s.client = res.client
	s.closeFn = res.close
	s.state = StateReady
	return nil
}

// Client returns the authenticated handle, or an error describing why the
// session cannot serve calls in its current state.
func (s *Session) Client() (ports.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case StateReady:
		return s.client, nil
	case StateConnecting:
		return nil, domain.NewError(domain.KindUnavailable, "session is still connecting")
	case StateClosed:
		return nil, domain.NewError(domain.KindUnavailable, "session is closed")
	default:
		return nil, domain.NewError(domain.KindAuthentication,
			"session is %s: no authenticated Discord connection", s.state)
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Close tears down the platform connection. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

// dialDiscord opens a real discordgo session. Automatic retry on hard 429s
// is disabled so rate limits surface to the error mapper with the
// platform's advertised wait; per-route pacing below the hard limit stays
// inside discordgo's bucket limiter.
func dialDiscord(token string) (ports.Client, func() error, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, nil, err
	}
	dg.ShouldRetryOnRateLimit = false
	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentGuildBans |
		discordgo.IntentMessageContent

	if err := dg.Open(); err != nil {
		return nil, nil, err
	}
	return dg, dg.Close, nil
}
