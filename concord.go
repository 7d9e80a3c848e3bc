package concord

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/concord/internal/adapters/discord"
	"github.com/aretw0/concord/internal/dispatcher"
	"github.com/aretw0/concord/internal/metrics"
	"github.com/aretw0/concord/internal/session"
	"github.com/aretw0/concord/pkg/ports"
	"github.com/aretw0/concord/pkg/registry"
)

// Version is the release version of Concord.
var Version = "0.3.0"

// System is the wired dispatch core: the populated tool registry, the
// process session and the dispatcher bound to both. The transports
// (stdio/SSE MCP, the CLI catalog) are layered on top by the caller.
type System struct {
	Registry   *registry.Registry
	Session    *session.Session
	Dispatcher *dispatcher.Dispatcher
}

type config struct {
	logger         *slog.Logger
	defaultGuildID string
	client         ports.Client
	promRegistry   prometheus.Registerer
}

// Option configures New.
type Option func(*config)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithDefaultGuild sets the fallback server id used when a tool call
// omits server_id.
func WithDefaultGuild(guildID string) Option {
	return func(c *config) { c.defaultGuildID = guildID }
}

// WithClient substitutes an already-connected platform client. The
// session starts in the ready state; intended for tests.
func WithClient(client ports.Client) Option {
	return func(c *config) { c.client = client }
}

// WithMetrics registers dispatch collectors on the given Prometheus
// registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) { c.promRegistry = reg }
}

// New wires the registry, session and dispatcher for the given resolved
// credential. The session is not opened; call System.Session.Open before
// dispatching (unless a client was injected).
func New(token string, opts ...Option) (*System, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	adapter := discord.New(cfg.logger, discord.WithDefaultGuild(cfg.defaultGuildID))
	reg := registry.New()
	if err := adapter.RegisterAll(reg); err != nil {
		return nil, err
	}

	var sess *session.Session
	if cfg.client != nil {
		sess = session.NewWithClient(cfg.client)
	} else {
		sess = session.New(token)
	}

	var dispatchOpts []dispatcher.Option
	if cfg.promRegistry != nil {
		dispatchOpts = append(dispatchOpts, dispatcher.WithMetrics(metrics.New(cfg.promRegistry)))
	}

	return &System{
		Registry:   reg,
		Session:    sess,
		Dispatcher: dispatcher.New(reg, sess, cfg.logger, dispatchOpts...),
	}, nil
}
