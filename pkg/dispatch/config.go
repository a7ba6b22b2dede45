package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/metrics"
	"github.com/btmgmt/btmgmt-go/pkg/subscription"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Default dispatcher settings.
const (
	DefaultCommandTimeout = 2 * time.Second
	DefaultStaleTTL       = 5 * time.Second
)

// ErrInvalidConfig indicates a Config that fails validation.
var ErrInvalidConfig = errors.New("invalid dispatcher config")

// Observer is told about every event and every successful Command Complete
// reply on the reader goroutine, before subscribers or waiters see them.
// Status-only acknowledgements are not passed on since they carry no state.
// Implemented by registry.Registry.
type Observer interface {
	ApplyEvent(index wire.ControllerIndex, ev catalog.Event)
	ApplyReply(index wire.ControllerIndex, cmd catalog.Command, reply catalog.Reply)
}

// Config configures a Dispatcher.
type Config struct {
	// CommandTimeout bounds the wait for a reply when the caller's context
	// has no deadline. A caller deadline replaces it, shorter or longer.
	CommandTimeout time.Duration

	// StaleTTL is how long a released key waits for its late reply.
	StaleTTL time.Duration

	// QueueSize is the default subscriber queue capacity.
	QueueSize int

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// ProtocolLogger receives decoded commands, replies, events and state
	// changes (optional).
	ProtocolLogger log.Logger

	// ConnectionID labels protocol log events.
	ConnectionID string

	// Metrics records command and event counters (optional).
	Metrics *metrics.Metrics

	// Tracer creates one span per Exec. Defaults to the global provider.
	Tracer trace.Tracer

	// Observer sees events and replies first (optional).
	Observer Observer

	// OnProtocolError is called for every frame that cannot be decoded (optional).
	OnProtocolError func(error)
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		CommandTimeout: DefaultCommandTimeout,
		StaleTTL:       DefaultStaleTTL,
		QueueSize:      subscription.DefaultQueueSize,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("%w: command timeout must be positive", ErrInvalidConfig)
	}
	if c.StaleTTL < 0 {
		return fmt.Errorf("%w: stale TTL must not be negative", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue size must be at least 1", ErrInvalidConfig)
	}
	return nil
}
