package reconcile

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

const tracerName = "github.com/vango-dev/reconcile"

// Engine mounts and patches virtual trees into a Host.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	host    host.Host
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	// roots records the tree currently rendered into each container.
	roots map[host.Handle]*vdom.VNode

	// busy is set while a render or component update runs.
	busy bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records Prometheus metrics for every render.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer used for render spans. Defaults to the tracer
// of the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// New creates an Engine that mutates h.
func New(h host.Host, opts ...Option) *Engine {
	e := &Engine{
		host:   h,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		roots:  make(map[host.Handle]*vdom.VNode),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Host returns the host the engine mutates.
func (e *Engine) Host() host.Host { return e.host }

// Current returns the tree currently rendered into container, or nil.
func (e *Engine) Current(container host.Handle) *vdom.VNode {
	return e.roots[container]
}

// Containers returns the number of containers with a rendered tree.
func (e *Engine) Containers() int { return len(e.roots) }

func (e *Engine) appendChild(parent, child host.Handle) error {
	if err := e.host.AppendChild(parent, child); err != nil {
		return errors.FromError(err, "E007")
	}
	return nil
}

func (e *Engine) removeChild(parent, child host.Handle) error {
	if err := e.host.RemoveChild(parent, child); err != nil {
		return errors.FromError(err, "E007")
	}
	return nil
}

// enter marks the engine busy. The returned func clears the mark.
func (e *Engine) enter(what string) (func(), error) {
	if e.busy {
		e.logger.Warn("reentrant call rejected", "call", what)
		return nil, errors.New("E006").WithDetail(what)
	}
	e.busy = true
	return func() { e.busy = false }, nil
}
