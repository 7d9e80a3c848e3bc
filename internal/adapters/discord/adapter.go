// Package discord is the platform adapter: one handler per tool, built on
// the discordgo client behind ports.Client. Pagination, batch splitting
// and rate-limit pauses live here; error classification does not (see
// errmap.go, which is the only code that understands platform failure
// shapes).
package discord

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/concord/pkg/domain"
)

// Platform limits. These mirror documented Discord API bounds, not local
// policy.
const (
	bulkDeleteMax      = 100   // messages per bulk-delete call
	messagesPageSize   = 100   // messages per history fetch
	membersPageSize    = 1000  // members per list fetch
	bansPageSize       = 1000  // bans per list fetch
	guildsPageSize     = 200   // guilds per list fetch
	maxTimeoutMinutes  = 40320 // 28 days
	maxDeleteDays      = 7
	maxReadLimit       = 1000
	defaultReadLimit   = 20
	defaultMemberLimit = 25
)

// maxRateLimitPause bounds how long a batch loop will honor an advertised
// rate-limit wait before giving up and surfacing the error.
const maxRateLimitPause = 10 * time.Second

// Adapter binds tool handlers to the platform. It holds no connection
// state: the client handle is threaded in per call by the dispatcher.
type Adapter struct {
	// DefaultGuildID, when set, is used by guild-scoped tools whose
	// callers omit server_id.
	DefaultGuildID string

	logger *slog.Logger
	sleep  func(time.Duration)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDefaultGuild sets the fallback server id for guild-scoped tools.
func WithDefaultGuild(guildID string) Option {
	return func(a *Adapter) { a.DefaultGuildID = guildID }
}

// WithSleep replaces the rate-limit pause function. Tests inject a
// recording fake to keep pagination and backoff deterministic.
func WithSleep(sleep func(time.Duration)) Option {
	return func(a *Adapter) { a.sleep = sleep }
}

// New creates an adapter.
func New(logger *slog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		logger: logger,
		sleep:  time.Sleep,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// decode maps validated arguments onto a typed parameter struct. Weak
// typing absorbs the float64 numbers JSON unmarshaling produces.
func decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

// guildID resolves the target server for a guild-scoped call: the supplied
// id wins, then the configured default. Resolved before any platform call.
func (a *Adapter) guildID(supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	if a.DefaultGuildID != "" {
		return a.DefaultGuildID, nil
	}
	return "", domain.NewError(domain.KindValidation,
		"server_id is required: no default server is configured")
}

// withRateLimitRetry runs one platform call, honoring a single advertised
// rate-limit wait before retrying once. Used inside batch loops so a hot
// route pauses only its own sequence, never the whole process.
func (a *Adapter) withRateLimitRetry(call func() error) error {
	err := call()
	var rle *discordgo.RateLimitError
	if errors.As(err, &rle) && rle.RetryAfter > 0 && rle.RetryAfter <= maxRateLimitPause {
		a.logger.Debug("rate limited, pausing route", "retry_after", rle.RetryAfter)
		a.sleep(rle.RetryAfter)
		err = call()
	}
	return err
}

// auditReason builds request options carrying an audit-log reason when one
// was supplied.
func auditReason(reason string) []discordgo.RequestOption {
	if reason == "" {
		return nil
	}
	return []discordgo.RequestOption{discordgo.WithAuditLogReason(reason)}
}
