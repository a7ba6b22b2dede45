package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/metrics"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
)

// Connection errors.
var (
	ErrConnectionClosed = errors.New("connection manager closed")
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
)

// State represents the connection state.
type State uint8

const (
	// StateDisconnected indicates no open management socket.
	StateDisconnected State = iota

	// StateConnecting indicates the first open is in progress.
	StateConnecting

	// StateConnected indicates an open socket with a running reader.
	StateConnected

	// StateReconnecting indicates the socket was lost and is being reopened.
	StateReconnecting

	// StateClosed indicates the manager has been closed.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Session is one open management connection. *dispatch.Dispatcher
// implements it.
type Session interface {
	// Run reads the socket until it fails or ctx is cancelled.
	Run(ctx context.Context) error
	Close() error
}

// DialFunc opens a new session.
type DialFunc func(ctx context.Context) (Session, error)

// ReadyFunc runs after a session is opened and its reader started, before
// it is published. A non-nil error closes the session and counts as a
// failed attempt.
type ReadyFunc func(ctx context.Context, s Session) error

// Config configures a Manager.
type Config struct {
	Backoff BackoffConfig

	// AutoReconnect reopens the socket after it is lost.
	AutoReconnect bool

	// ConnectTimeout bounds each open plus the ReadyFunc.
	ConnectTimeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics counts successful reopens. May be nil.
	Metrics *metrics.Metrics
}

// DefaultConfig returns the default connection configuration.
func DefaultConfig() Config {
	return Config{
		Backoff:        DefaultBackoffConfig(),
		AutoReconnect:  true,
		ConnectTimeout: 10 * time.Second,
	}
}

// Permanent reports whether err from a DialFunc will not go away by
// retrying.
func Permanent(err error) bool {
	return errors.Is(err, transport.ErrPermissionDenied) || errors.Is(err, transport.ErrNotSupported)
}

// Manager owns the management socket lifecycle and reopens it after loss.
type Manager struct {
	mu sync.RWMutex

	state   State
	session Session
	config  Config
	backoff *Backoff
	logger  *slog.Logger

	dial  DialFunc
	ready ReadyFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onStateChange  func(oldState, newState State)
	onReconnecting func(attempt int, delay time.Duration)
}

// NewManager creates a connection manager.
func NewManager(dial DialFunc, config Config) *Manager {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = DefaultConfig().ConnectTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		state:   StateDisconnected,
		config:  config,
		backoff: NewBackoffWithConfig(config.Backoff),
		logger:  config.Logger,
		dial:    dial,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// OnReady sets the hook run for every new session. Set it before Connect.
func (m *Manager) OnReady(fn ReadyFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = fn
}

// OnStateChange sets a callback for state changes.
func (m *Manager) OnStateChange(fn func(oldState, newState State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// OnReconnecting sets a callback invoked before each reopen delay.
func (m *Manager) OnReconnecting(fn func(attempt int, delay time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReconnecting = fn
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Session returns the current session.
func (m *Manager) Session() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.state == StateClosed:
		return nil, ErrConnectionClosed
	case m.session == nil:
		return nil, ErrNotConnected
	}
	return m.session, nil
}

// Connect opens the first session. Later losses are handled in the
// background when AutoReconnect is set.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateClosed:
		m.mu.Unlock()
		return ErrConnectionClosed
	case StateDisconnected:
	default:
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.mu.Unlock()
	m.setState(StateConnecting)

	if err := m.establish(ctx); err != nil {
		m.setState(StateDisconnected)
		return err
	}
	return nil
}

// Close closes the current session and stops reconnecting.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return nil
	}
	s := m.session
	m.session = nil
	m.mu.Unlock()
	m.setState(StateClosed)

	m.cancel()
	var err error
	if s != nil {
		err = s.Close()
	}
	m.wg.Wait()
	return err
}

// establish dials, starts the reader, runs the ready hook and publishes
// the session.
func (m *Manager) establish(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.config.ConnectTimeout)
	defer cancel()

	s, err := m.dial(ctx)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(m.ctx) }()

	m.mu.RLock()
	ready := m.ready
	m.mu.RUnlock()
	if ready != nil {
		if err := ready(ctx, s); err != nil {
			s.Close()
			<-done
			return fmt.Errorf("session setup: %w", err)
		}
	}

	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		s.Close()
		<-done
		return ErrConnectionClosed
	}
	m.session = s
	m.mu.Unlock()
	m.backoff.Reset()
	m.setState(StateConnected)

	m.wg.Add(1)
	go m.watch(s, done)
	return nil
}

// watch waits for the session reader to stop and starts recovery.
func (m *Manager) watch(s Session, done <-chan error) {
	defer m.wg.Done()

	err := <-done
	m.mu.Lock()
	if m.state == StateClosed || m.session != s {
		m.mu.Unlock()
		return
	}
	m.session = nil
	m.mu.Unlock()

	if !m.config.AutoReconnect {
		m.logger.Warn("management socket lost", "error", err)
		m.setState(StateDisconnected)
		return
	}
	m.logger.Warn("management socket lost, reopening", "error", err)
	m.setState(StateReconnecting)
	m.reconnect()
}

// reconnect retries establish with backoff until it succeeds, fails
// permanently or the manager is closed.
func (m *Manager) reconnect() {
	for {
		delay := m.backoff.Next()
		attempt := m.backoff.Attempts()

		m.mu.RLock()
		onReconnecting := m.onReconnecting
		m.mu.RUnlock()
		if onReconnecting != nil {
			onReconnecting(attempt, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-m.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		err := m.establish(m.ctx)
		switch {
		case err == nil:
			m.logger.Info("management socket reopened", "attempt", attempt)
			m.config.Metrics.Reconnect()
			return
		case m.ctx.Err() != nil || errors.Is(err, ErrConnectionClosed):
			return
		case Permanent(err):
			m.logger.Error("giving up reopening management socket", "error", err)
			m.setState(StateDisconnected)
			return
		default:
			m.logger.Debug("reopen failed", "attempt", attempt, "error", err)
		}
	}
}

func (m *Manager) setState(next State) {
	m.mu.Lock()
	prev := m.state
	if prev == StateClosed && next != StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = next
	fn := m.onStateChange
	m.mu.Unlock()

	if fn != nil && prev != next {
		fn(prev, next)
	}
}
