package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// MetricsConfig configures the Prometheus metrics of an Engine.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reconcile").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the render duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vdom",
		Subsystem: "reconcile",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of an Engine. A nil *Metrics
// records nothing.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	mounts         *prometheus.CounterVec
	patches        *prometheus.CounterVec
	replaces       prometheus.Counter
	removed        prometheus.Counter
	remounted      prometheus.Counter
	updates        prometheus.Counter
}

// NewMetrics creates and registers the engine collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		renders: counterVec("renders_total",
			"Total number of Render calls by operation and status", "op", "status"),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),
		mounts: counterVec("mounts_total",
			"Virtual nodes mounted, by kind", "kind"),
		patches: counterVec("patches_total",
			"Virtual nodes patched in place, by kind", "kind"),
		replaces: counter("replaces_total",
			"Patches that fell back to a full replace"),
		removed: counter("children_removed_total",
			"Children removed by multi-child reconciliation"),
		remounted: counter("children_remounted_total",
			"Children mounted by multi-child reconciliation"),
		updates: counter("component_updates_total",
			"Self-initiated component updates"),
	}
}

func (m *Metrics) observeRender(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.renders.WithLabelValues(op, status).Inc()
	m.renderDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) mounted(k vdom.Kind) {
	if m != nil {
		m.mounts.WithLabelValues(k.String()).Inc()
	}
}

func (m *Metrics) patched(k vdom.Kind) {
	if m != nil {
		m.patches.WithLabelValues(k.String()).Inc()
	}
}

func (m *Metrics) replaced() {
	if m != nil {
		m.replaces.Inc()
	}
}

func (m *Metrics) childrenRemounted(removed, mounted int) {
	if m != nil {
		m.removed.Add(float64(removed))
		m.remounted.Add(float64(mounted))
	}
}

func (m *Metrics) selfUpdated() {
	if m != nil {
		m.updates.Inc()
	}
}
