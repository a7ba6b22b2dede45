package connection

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// Default reopen delays for the management socket. The socket only goes
// away when the Bluetooth stack is reloaded, so the ceiling stays low.
const (
	InitialBackoff    = 500 * time.Millisecond
	MaxBackoff        = 30 * time.Second
	BackoffMultiplier = 2.0
	JitterFactor      = 0.2
)

// ErrInvalidBackoff indicates a BackoffConfig that fails validation.
var ErrInvalidBackoff = errors.New("invalid backoff config")

// BackoffConfig configures reopen delays.
type BackoffConfig struct {
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	Multiplier float64       `yaml:"multiplier"`

	// Jitter is the maximum extra delay as a fraction of the base delay.
	Jitter float64 `yaml:"jitter"`
}

// DefaultBackoffConfig returns the default reopen delays.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    InitialBackoff,
		Max:        MaxBackoff,
		Multiplier: BackoffMultiplier,
		Jitter:     JitterFactor,
	}
}

// Validate checks the configuration.
func (c BackoffConfig) Validate() error {
	switch {
	case c.Initial <= 0:
		return fmt.Errorf("%w: initial %v", ErrInvalidBackoff, c.Initial)
	case c.Max < c.Initial:
		return fmt.Errorf("%w: max %v below initial %v", ErrInvalidBackoff, c.Max, c.Initial)
	case c.Multiplier < 1:
		return fmt.Errorf("%w: multiplier %v", ErrInvalidBackoff, c.Multiplier)
	case c.Jitter < 0 || c.Jitter > 1:
		return fmt.Errorf("%w: jitter %v", ErrInvalidBackoff, c.Jitter)
	}
	return nil
}

// Backoff calculates exponential delays with jitter.
type Backoff struct {
	mu       sync.Mutex
	config   BackoffConfig
	current  time.Duration
	attempts int
}

// NewBackoff creates a backoff calculator with default settings.
func NewBackoff() *Backoff {
	return NewBackoffWithConfig(DefaultBackoffConfig())
}

// NewBackoffWithConfig creates a backoff calculator. Zero fields take
// their defaults.
func NewBackoffWithConfig(cfg BackoffConfig) *Backoff {
	def := DefaultBackoffConfig()
	if cfg.Initial <= 0 {
		cfg.Initial = def.Initial
	}
	if cfg.Max <= 0 {
		cfg.Max = def.Max
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = def.Multiplier
	}
	cfg.Jitter = min(max(cfg.Jitter, 0), 1)

	return &Backoff{config: cfg, current: cfg.Initial}
}

// Next returns the next delay (with jitter) and advances the backoff.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.jittered(b.current)
	b.attempts++
	b.current = min(time.Duration(float64(b.current)*b.config.Multiplier), b.config.Max)
	return delay
}

// Reset returns to the initial delay. Called after a successful reopen.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.config.Initial
	b.attempts = 0
}

// Attempts returns the number of delays handed out since the last reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Current returns the next base delay without jitter.
func (b *Backoff) Current() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Backoff) jittered(d time.Duration) time.Duration {
	if b.config.Jitter <= 0 {
		return d
	}
	return d + time.Duration(float64(d)*b.config.Jitter*rand.Float64())
}
