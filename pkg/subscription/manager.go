package subscription

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Config configures a Manager.
type Config struct {
	// QueueSize is the default per-subscription queue capacity.
	QueueSize int

	// Logger receives drop warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default subscription configuration.
func DefaultConfig() Config {
	return Config{QueueSize: DefaultQueueSize}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQueueSize, c.QueueSize)
	}
	return nil
}

// Manager routes notifications to subscriptions by controller index.
type Manager struct {
	mu     sync.RWMutex
	config Config
	logger *slog.Logger

	nextID        uint32
	subscriptions map[uint32]*Subscription

	// Index by controller for efficient routing; global holds subscriptions
	// to wire.NonController, which see every index.
	byIndex map[wire.ControllerIndex][]*Subscription
	global  []*Subscription

	// closeErr is set by CloseAll; later subscriptions start closed.
	closeErr error
}

// NewManager creates a new subscription manager with default configuration.
func NewManager() *Manager {
	return NewManagerWithConfig(DefaultConfig())
}

// NewManagerWithConfig creates a new subscription manager with custom configuration.
func NewManagerWithConfig(config Config) *Manager {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Manager{
		config:        config,
		logger:        config.Logger,
		subscriptions: make(map[uint32]*Subscription),
		byIndex:       make(map[wire.ControllerIndex][]*Subscription),
	}
}

// Subscribe creates a subscription for events of one controller index.
// wire.NonController subscribes to the global index, which receives the
// events of every controller as well as those carrying the global index.
func (m *Manager) Subscribe(index wire.ControllerIndex, opts ...Option) *Subscription {
	return m.add(index, index == wire.NonController, opts)
}

// SubscribeAll is Subscribe(wire.NonController).
func (m *Manager) SubscribeAll(opts ...Option) *Subscription {
	return m.add(wire.NonController, true, opts)
}

func (m *Manager) add(index wire.ControllerIndex, all bool, opts []Option) *Subscription {
	o := options{queueSize: m.config.QueueSize}
	for _, opt := range opts {
		opt(&o)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	sub := newSubscription(m.nextID, index, all, o)
	if m.closeErr != nil {
		sub.terminate(m.closeErr)
		return sub
	}

	sub.onClose = func(s *Subscription) { m.remove(s.ID) }
	m.subscriptions[sub.ID] = sub
	if all {
		m.global = append(m.global, sub)
	} else {
		m.byIndex[index] = append(m.byIndex[index], sub)
	}
	return sub
}

// Unsubscribe closes and removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID uint32) error {
	m.mu.RLock()
	sub, exists := m.subscriptions[subscriptionID]
	m.mu.RUnlock()
	if !exists {
		return ErrSubscriptionNotFound
	}
	sub.Close()
	return nil
}

func (m *Manager) remove(id uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, exists := m.subscriptions[id]
	if !exists {
		return
	}
	delete(m.subscriptions, id)

	if sub.All {
		m.global = without(m.global, id)
		return
	}
	m.byIndex[sub.Index] = without(m.byIndex[sub.Index], id)
	if len(m.byIndex[sub.Index]) == 0 {
		delete(m.byIndex, sub.Index)
	}
}

// without returns subs minus the subscription with id. The input slice is
// not modified because Publish may be iterating a copy of it.
func without(subs []*Subscription, id uint32) []*Subscription {
	out := make([]*Subscription, 0, len(subs))
	for _, s := range subs {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// Publish delivers n to every matching subscription without blocking.
// It returns how many subscriptions received it and how many dropped an
// older notification to make room.
func (m *Manager) Publish(n Notification) (delivered, dropped int) {
	code := n.Event.Code()

	m.mu.RLock()
	indexed := m.byIndex[n.Index]
	global := m.global
	m.mu.RUnlock()

	for _, group := range [][]*Subscription{indexed, global} {
		for _, sub := range group {
			if !sub.Matches(n.Index, code) {
				continue
			}
			d, ok := sub.push(n)
			if !ok {
				continue
			}
			delivered++
			if d {
				dropped++
				m.logger.Warn("subscriber queue full, dropped oldest event",
					"subscription", sub.ID,
					"index", n.Index.String(),
					"event", code.String())
			}
		}
	}
	return delivered, dropped
}

// CloseAll terminates every subscription with err. Subscriptions created
// afterwards start closed with the same error.
func (m *Manager) CloseAll(err error) {
	if err == nil {
		err = ErrSubscriptionClosed
	}

	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.subscriptions = make(map[uint32]*Subscription)
	m.byIndex = make(map[wire.ControllerIndex][]*Subscription)
	m.global = nil
	m.closeErr = err
	m.mu.Unlock()

	for _, sub := range subs {
		sub.terminate(err)
	}
}

// Count returns the number of open subscriptions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Get returns a subscription by ID.
func (m *Manager) Get(subscriptionID uint32) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// IsClosed reports whether CloseAll has been called.
func (m *Manager) IsClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closeErr != nil
}

