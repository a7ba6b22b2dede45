// Package metrics exposes Prometheus instrumentation for the management
// protocol engine.
//
// Metrics collected (names shown with the default namespace):
//   - btmgmt_commands_total: commands by opcode and outcome
//   - btmgmt_command_duration_seconds: submit-to-resolution latency by opcode
//   - btmgmt_pending_commands: commands awaiting a reply
//   - btmgmt_events_total: events delivered by event code
//   - btmgmt_dropped_events_total: events discarded by full subscriber queues
//   - btmgmt_stale_replies_total: replies that arrived after their command gave up
//   - btmgmt_protocol_errors_total: undecodable frames by error kind
//   - btmgmt_reconnects_total: management socket reconnections
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Command outcomes used as the "outcome" label.
const (
	OutcomeSuccess          = "success"
	OutcomeRejected         = "rejected"
	OutcomeTimeout          = "timeout"
	OutcomeCancelled        = "cancelled"
	OutcomeInFlightConflict = "in_flight_conflict"
	OutcomeTransportClosed  = "transport_closed"
	OutcomeError            = "error"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "btmgmt").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for command latency.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the latency histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Namespace: "btmgmt",
		// Most management commands complete in well under 10ms; pairing and
		// discovery can take seconds.
		Buckets:  []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	pending         prometheus.Gauge
	eventsTotal     *prometheus.CounterVec
	droppedEvents   *prometheus.CounterVec
	staleReplies    *prometheus.CounterVec
	protocolErrors  *prometheus.CounterVec
	reconnectsTotal prometheus.Counter
}

// New registers the collectors with the configured registry.
// It panics if they are already registered there, like promauto.
func New(opts ...Option) *Metrics {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commands_total",
			Help:        "Total number of management commands by opcode and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode", "outcome"}),

		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "command_duration_seconds",
			Help:        "Time from submitting a command to its resolution",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"opcode"}),

		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_commands",
			Help:        "Number of commands awaiting a reply",
			ConstLabels: config.ConstLabels,
		}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of events received by event code",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		droppedEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dropped_events_total",
			Help:        "Events discarded because a subscriber queue was full",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		staleReplies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stale_replies_total",
			Help:        "Replies that arrived after their command timed out or was cancelled",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode"}),

		protocolErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "protocol_errors_total",
			Help:        "Frames that could not be decoded by error kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		reconnectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconnects_total",
			Help:        "Total number of management socket reconnections",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// CommandStarted records a command entering the pending set.
func (m *Metrics) CommandStarted() {
	if m == nil {
		return
	}
	m.pending.Inc()
}

// CommandFinished records a resolved command. Call it once per
// CommandStarted.
func (m *Metrics) CommandFinished(op wire.Opcode, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.pending.Dec()
	m.CommandRefused(op, outcome)
	m.commandDuration.WithLabelValues(op.String()).Observe(elapsed.Seconds())
}

// CommandRefused records a command that never entered the pending set.
func (m *Metrics) CommandRefused(op wire.Opcode, outcome string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(op.String(), outcome).Inc()
}

// Event records a delivered event.
func (m *Metrics) Event(code wire.EventCode) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(code.String()).Inc()
}

// DroppedEvents records n events discarded by subscriber queues.
func (m *Metrics) DroppedEvents(code wire.EventCode, n int) {
	if m == nil || n == 0 {
		return
	}
	m.droppedEvents.WithLabelValues(code.String()).Add(float64(n))
}

// StaleReply records a late reply.
func (m *Metrics) StaleReply(op wire.Opcode) {
	if m == nil {
		return
	}
	m.staleReplies.WithLabelValues(op.String()).Inc()
}

// ProtocolError records an undecodable frame.
func (m *Metrics) ProtocolError(kind string) {
	if m == nil {
		return
	}
	m.protocolErrors.WithLabelValues(kind).Inc()
}

// Reconnect records a socket reconnection.
func (m *Metrics) Reconnect() {
	if m == nil {
		return
	}
	m.reconnectsTotal.Inc()
}

// ResetPending zeroes the pending gauge after the transport closes.
func (m *Metrics) ResetPending() {
	if m == nil {
		return
	}
	m.pending.Set(0)
}
