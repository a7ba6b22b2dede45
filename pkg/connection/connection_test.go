package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/metrics"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
)

func TestBackoff(t *testing.T) {
	t.Run("Sequence", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Max: 8 * time.Second, Multiplier: 2})

		expected := []time.Duration{
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			8 * time.Second,
		}
		for i, exp := range expected {
			assert.Equal(t, exp, b.Current(), "attempt %d", i)
			assert.Equal(t, exp, b.Next(), "attempt %d", i)
		}
		assert.Equal(t, len(expected), b.Attempts())
	})

	t.Run("Jitter", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Max: time.Second, Jitter: 0.2})

		for range 20 {
			d := b.Next()
			assert.GreaterOrEqual(t, d, time.Second)
			assert.LessOrEqual(t, d, 1200*time.Millisecond)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff()
		for range 5 {
			b.Next()
		}
		require.Greater(t, b.Current(), InitialBackoff)

		b.Reset()
		assert.Equal(t, InitialBackoff, b.Current())
		assert.Equal(t, 0, b.Attempts())
	})

	t.Run("ZeroConfigUsesDefaults", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{})
		assert.Equal(t, InitialBackoff, b.Current())
	})
}

func TestBackoffConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultBackoffConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*BackoffConfig)
	}{
		{"zero initial", func(c *BackoffConfig) { c.Initial = 0 }},
		{"max below initial", func(c *BackoffConfig) { c.Max = c.Initial / 2 }},
		{"shrinking", func(c *BackoffConfig) { c.Multiplier = 0.5 }},
		{"negative jitter", func(c *BackoffConfig) { c.Jitter = -0.1 }},
		{"jitter above one", func(c *BackoffConfig) { c.Jitter = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultBackoffConfig()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidBackoff)
		})
	}
}

// fakeSession runs until closed or failed.
type fakeSession struct {
	stop   chan error
	once   sync.Once
	closed atomic.Bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{stop: make(chan error, 1)}
}

func (s *fakeSession) Run(ctx context.Context) error {
	select {
	case err := <-s.stop:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeSession) Close() error {
	s.closed.Store(true)
	s.fail(transport.ErrTransportClosed)
	return nil
}

func (s *fakeSession) fail(err error) {
	s.once.Do(func() { s.stop <- err })
}

// dialer hands out sessions and records them.
type dialer struct {
	mu       sync.Mutex
	sessions []*fakeSession
	errs     []error
}

func (d *dialer) dial(context.Context) (Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.errs) > 0 {
		err := d.errs[0]
		d.errs = d.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	s := newFakeSession()
	d.sessions = append(d.sessions, s)
	return s, nil
}

func (d *dialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

func (d *dialer) last() *fakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessions[len(d.sessions)-1]
}

func fastConfig() Config {
	c := DefaultConfig()
	c.Backoff = BackoffConfig{Initial: time.Millisecond, Max: 5 * time.Millisecond, Multiplier: 2}
	return c
}

func TestManagerConnect(t *testing.T) {
	t.Run("InitialState", func(t *testing.T) {
		m := NewManager((&dialer{}).dial, fastConfig())
		defer m.Close()

		assert.Equal(t, StateDisconnected, m.State())
		_, err := m.Session()
		assert.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("Success", func(t *testing.T) {
		d := &dialer{}
		m := NewManager(d.dial, fastConfig())
		defer m.Close()

		require.NoError(t, m.Connect(context.Background()))
		assert.Equal(t, StateConnected, m.State())
		s, err := m.Session()
		require.NoError(t, err)
		assert.Same(t, d.last(), s)

		assert.ErrorIs(t, m.Connect(context.Background()), ErrAlreadyConnected)
	})

	t.Run("DialFailure", func(t *testing.T) {
		d := &dialer{errs: []error{transport.ErrPermissionDenied}}
		m := NewManager(d.dial, fastConfig())
		defer m.Close()

		err := m.Connect(context.Background())
		assert.ErrorIs(t, err, transport.ErrPermissionDenied)
		assert.True(t, Permanent(err))
		assert.Equal(t, StateDisconnected, m.State())
	})

	t.Run("ReadyFailureClosesSession", func(t *testing.T) {
		d := &dialer{}
		m := NewManager(d.dial, fastConfig())
		defer m.Close()
		boom := errors.New("refresh failed")
		m.OnReady(func(context.Context, Session) error { return boom })

		err := m.Connect(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.True(t, d.last().closed.Load())
		assert.Equal(t, StateDisconnected, m.State())
	})

	t.Run("ConnectAfterClose", func(t *testing.T) {
		m := NewManager((&dialer{}).dial, fastConfig())
		require.NoError(t, m.Close())
		assert.ErrorIs(t, m.Connect(context.Background()), ErrConnectionClosed)
		assert.NoError(t, m.Close())
	})
}

func TestManagerReconnect(t *testing.T) {
	t.Run("ReopensAfterLoss", func(t *testing.T) {
		d := &dialer{errs: []error{nil, errors.New("EBUSY")}}
		reg := prometheus.NewRegistry()
		config := fastConfig()
		config.Metrics = metrics.New(metrics.WithRegistry(reg))
		m := NewManager(d.dial, config)
		defer m.Close()

		var readies atomic.Int32
		m.OnReady(func(context.Context, Session) error {
			readies.Add(1)
			return nil
		})

		require.NoError(t, m.Connect(context.Background()))
		first := d.last()
		first.fail(transport.ErrTransportClosed)

		require.Eventually(t, func() bool {
			return m.State() == StateConnected && d.count() == 2
		}, 2*time.Second, time.Millisecond)
		assert.Equal(t, int32(2), readies.Load())

		s, err := m.Session()
		require.NoError(t, err)
		assert.NotSame(t, first, s)
		assert.Equal(t, 0, m.backoff.Attempts(), "backoff resets after success")
	})

	t.Run("StateTransitions", func(t *testing.T) {
		d := &dialer{}
		m := NewManager(d.dial, fastConfig())
		defer m.Close()

		var mu sync.Mutex
		var seen []State
		m.OnStateChange(func(_, next State) {
			mu.Lock()
			seen = append(seen, next)
			mu.Unlock()
		})

		require.NoError(t, m.Connect(context.Background()))
		d.last().fail(transport.ErrTransportClosed)
		require.Eventually(t, func() bool { return d.count() == 2 && m.State() == StateConnected }, 2*time.Second, time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []State{StateConnecting, StateConnected, StateReconnecting, StateConnected}, seen)
	})

	t.Run("PermanentErrorStops", func(t *testing.T) {
		d := &dialer{errs: []error{nil, transport.ErrNotSupported}}
		m := NewManager(d.dial, fastConfig())
		defer m.Close()

		require.NoError(t, m.Connect(context.Background()))
		d.last().fail(transport.ErrTransportClosed)

		require.Eventually(t, func() bool { return m.State() == StateDisconnected }, 2*time.Second, time.Millisecond)
		assert.Equal(t, 1, d.count())
	})

	t.Run("Disabled", func(t *testing.T) {
		d := &dialer{}
		config := fastConfig()
		config.AutoReconnect = false
		m := NewManager(d.dial, config)
		defer m.Close()

		require.NoError(t, m.Connect(context.Background()))
		d.last().fail(transport.ErrTransportClosed)

		require.Eventually(t, func() bool { return m.State() == StateDisconnected }, 2*time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, 1, d.count())
	})

	t.Run("CloseStopsRetrying", func(t *testing.T) {
		fail := errors.New("EAGAIN")
		d := &dialer{errs: []error{nil, fail, fail, fail, fail, fail, fail, fail, fail}}
		m := NewManager(d.dial, fastConfig())

		require.NoError(t, m.Connect(context.Background()))
		d.last().fail(transport.ErrTransportClosed)
		require.Eventually(t, func() bool { return m.State() == StateReconnecting }, 2*time.Second, time.Millisecond)

		require.NoError(t, m.Close())
		assert.Equal(t, StateClosed, m.State())
		_, err := m.Session()
		assert.ErrorIs(t, err, ErrConnectionClosed)
	})

	t.Run("OnReconnectingReportsAttempts", func(t *testing.T) {
		fail := errors.New("EAGAIN")
		d := &dialer{errs: []error{nil, fail, fail}}
		m := NewManager(d.dial, fastConfig())
		defer m.Close()

		var mu sync.Mutex
		var attempts []int
		m.OnReconnecting(func(attempt int, _ time.Duration) {
			mu.Lock()
			attempts = append(attempts, attempt)
			mu.Unlock()
		})

		require.NoError(t, m.Connect(context.Background()))
		d.last().fail(transport.ErrTransportClosed)
		require.Eventually(t, func() bool { return d.count() == 2 && m.State() == StateConnected }, 2*time.Second, time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []int{1, 2, 3}, attempts)
	})
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "DISCONNECTED"},
		{StateConnecting, "CONNECTING"},
		{StateConnected, "CONNECTED"},
		{StateReconnecting, "RECONNECTING"},
		{StateClosed, "CLOSED"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}
