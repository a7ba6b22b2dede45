package subscription

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Subscription errors.
var (
	ErrSubscriptionClosed   = errors.New("subscription closed")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidQueueSize     = errors.New("invalid queue size")
)

// DefaultQueueSize is the per-subscriber queue capacity.
const DefaultQueueSize = 64

// Notification is one event delivered to a subscriber.
type Notification struct {
	// SubscriptionID identifies the receiving subscription.
	SubscriptionID uint32

	// Index is the controller the event was emitted for.
	Index wire.ControllerIndex

	// Event is the decoded event.
	Event catalog.Event

	// Timestamp is when the frame was read.
	Timestamp time.Time
}

// Option customizes a subscription.
type Option func(*options)

type options struct {
	queueSize int
	codes     []wire.EventCode
}

// WithQueueSize overrides the queue capacity. Values below 1 are ignored.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithEventCodes restricts delivery to the given event codes.
func WithEventCodes(codes ...wire.EventCode) Option {
	return func(o *options) {
		o.codes = append(o.codes, codes...)
	}
}

// Subscription is a bounded, drop-oldest queue of notifications.
type Subscription struct {
	// ID is the unique subscription identifier.
	ID uint32

	// Index is the subscribed controller. Ignored when All is set.
	Index wire.ControllerIndex

	// All subscribes to every controller index.
	All bool

	codes []wire.EventCode

	mu      sync.Mutex
	buf     []Notification
	head    int
	size    int
	dropped uint64
	closed  bool
	err     error
	ready   chan struct{}

	onClose func(*Subscription)
}

func newSubscription(id uint32, index wire.ControllerIndex, all bool, o options) *Subscription {
	return &Subscription{
		ID:    id,
		Index: index,
		All:   all,
		codes: o.codes,
		buf:   make([]Notification, o.queueSize),
		ready: make(chan struct{}, 1),
	}
}

// Matches reports whether an event with code at index is routed here.
func (s *Subscription) Matches(index wire.ControllerIndex, code wire.EventCode) bool {
	if !s.All && s.Index != index {
		return false
	}
	return len(s.codes) == 0 || slices.Contains(s.codes, code)
}

// push enqueues n, dropping the oldest notification when full.
// It reports whether a notification was dropped.
func (s *Subscription) push(n Notification) (dropped, ok bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, false
	}
	n.SubscriptionID = s.ID
	if s.size == len(s.buf) {
		s.buf[s.head] = Notification{}
		s.head = (s.head + 1) % len(s.buf)
		s.size--
		s.dropped++
		dropped = true
	}
	s.buf[(s.head+s.size)%len(s.buf)] = n
	s.size++
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
	return dropped, true
}

// pop dequeues the oldest notification. Callers hold s.mu.
func (s *Subscription) pop() Notification {
	n := s.buf[s.head]
	s.buf[s.head] = Notification{}
	s.head = (s.head + 1) % len(s.buf)
	s.size--
	return n
}

// Next blocks until a notification is available, the subscription is
// closed and drained, or ctx is done.
func (s *Subscription) Next(ctx context.Context) (Notification, error) {
	for {
		s.mu.Lock()
		if s.size > 0 {
			n := s.pop()
			s.mu.Unlock()
			return n, nil
		}
		if s.closed {
			err := s.err
			s.mu.Unlock()
			return Notification{}, err
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Notification{}, ctx.Err()
		case <-s.ready:
		}
	}
}

// Events yields notifications until the subscription ends or ctx is done.
// Check Err afterwards for the reason a closed subscription ended.
func (s *Subscription) Events(ctx context.Context) iter.Seq[Notification] {
	return func(yield func(Notification) bool) {
		for {
			n, err := s.Next(ctx)
			if err != nil {
				return
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of queued notifications.
func (s *Subscription) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Dropped returns the number of notifications discarded because the queue was full.
func (s *Subscription) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Err returns the terminal error, or nil while the subscription is open.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops delivery. Queued notifications can still be drained.
func (s *Subscription) Close() {
	if s.terminate(ErrSubscriptionClosed) && s.onClose != nil {
		s.onClose(s)
	}
}

// terminate closes the subscription with err. It reports whether this
// call closed it.
func (s *Subscription) terminate(err error) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.err = err
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
	return true
}
