// Package dispatcher routes tool call requests through validation, the
// session gate and the bound handler, normalizing every failure into the
// stable error taxonomy.
package dispatcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/concord/internal/adapters/discord"
	"github.com/aretw0/concord/internal/metrics"
	"github.com/aretw0/concord/internal/session"
	"github.com/aretw0/concord/pkg/domain"
	"github.com/aretw0/concord/pkg/registry"
)

// Dispatcher is the invocation core: lookup, validate, gate on the
// session, invoke, map errors. It never retries on behalf of the caller;
// transient-condition retry policy lives inside the platform adapter.
type Dispatcher struct {
	registry *registry.Registry
	session  *session.Session
	mapErr   func(error) *domain.Envelope
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMetrics wires dispatch instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithErrorMapper replaces the platform error mapper. Tests use this to
// inject classification fixtures.
func WithErrorMapper(mapErr func(error) *domain.Envelope) Option {
	return func(d *Dispatcher) { d.mapErr = mapErr }
}

// New creates a dispatcher over a populated registry and a session.
func New(reg *registry.Registry, sess *session.Session, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		session:  sess,
		mapErr:   discord.MapError,
		logger:   logger,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one tool call and returns a normalized result.
// Validation failures are resolved here, before any platform activity.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.ToolCallRequest) domain.Result {
	start := time.Now()
	res := d.dispatch(ctx, req)
	d.observe(req.Name, res, time.Since(start))
	return res
}

func (d *Dispatcher) dispatch(ctx context.Context, req domain.ToolCallRequest) domain.Result {
	spec, ok := d.registry.Lookup(req.Name)
	if !ok {
		return domain.Failure(domain.NewError(domain.KindValidation, "unknown tool %q", req.Name))
	}

	args := req.Args
	if args == nil {
		args = map[string]any{}
	}
	if err := spec.Params.Validate(args); err != nil {
		return domain.Failure(domain.NewError(domain.KindValidation, "%v", err))
	}

	client, err := d.session.Client()
	if err != nil {
		return domain.Failure(d.mapErr(err))
	}

	payload, err := spec.Handler(ctx, client, args)
	if err != nil {
		if partial, ok := domain.AsPartial(err); ok {
			return domain.PartialFailure(d.mapErr(partial.Cause), partial.Progress)
		}
		return domain.Failure(d.mapErr(err))
	}
	return domain.Success(payload)
}

func (d *Dispatcher) observe(tool string, res domain.Result, elapsed time.Duration) {
	if res.Status == domain.StatusSuccess {
		d.logger.Debug("tool call succeeded", "tool", tool, "elapsed", elapsed)
	} else {
		d.logger.Warn("tool call failed",
			"tool", tool, "kind", res.Err.Kind, "err", res.Err.Message, "elapsed", elapsed)
	}
	if d.metrics != nil {
		d.metrics.ObserveToolCall(tool, res, elapsed)
	}
}
