package btmgmt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/btmgmt/btmgmt-go/pkg/connection"
	"github.com/btmgmt/btmgmt-go/pkg/dispatch"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/subscription"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
)

// ErrInvalidConfig indicates a Config that fails validation.
var ErrInvalidConfig = errors.New("invalid btmgmt config")

// DialFunc opens the management socket. transport.Open is used when nil.
type DialFunc func(ctx context.Context, opts transport.Options) (transport.Transport, error)

// Config configures a Client. The exported fields with yaml tags can be
// loaded from a file with LoadConfig; the rest are set in code.
type Config struct {
	// CommandTimeout bounds each command when the caller's context has no
	// deadline of its own.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	// StaleTTL is how long a timed-out command's late reply is waited for.
	StaleTTL time.Duration `yaml:"stale_ttl"`

	// QueueSize is the default per-subscription queue capacity.
	QueueSize int `yaml:"queue_size"`

	// ProtocolLog is the path of a .bmlog capture file (optional).
	ProtocolLog string `yaml:"protocol_log"`

	// AutoReconnect reopens the socket after the Bluetooth stack goes away.
	AutoReconnect bool                     `yaml:"auto_reconnect"`
	Reconnect     connection.BackoffConfig `yaml:"reconnect"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `yaml:"metrics_namespace"`

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`

	// ProtocolLogger receives captured protocol events in addition to the
	// ProtocolLog file.
	ProtocolLogger log.Logger `yaml:"-"`

	// Registerer enables Prometheus metrics when set.
	Registerer prometheus.Registerer `yaml:"-"`

	// Tracer creates one span per command. Defaults to the global provider.
	Tracer trace.Tracer `yaml:"-"`

	Dial DialFunc `yaml:"-"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		CommandTimeout:   dispatch.DefaultCommandTimeout,
		StaleTTL:         dispatch.DefaultStaleTTL,
		QueueSize:        subscription.DefaultQueueSize,
		AutoReconnect:    true,
		Reconnect:        connection.DefaultBackoffConfig(),
		MetricsNamespace: "btmgmt",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("%w: command_timeout must be positive", ErrInvalidConfig)
	}
	if c.StaleTTL < 0 {
		return fmt.Errorf("%w: stale_ttl must not be negative", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be at least 1", ErrInvalidConfig)
	}
	if err := c.Reconnect.Validate(); err != nil {
		return fmt.Errorf("%w: reconnect: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ParseConfig parses YAML on top of DefaultConfig, so missing keys keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	config, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
