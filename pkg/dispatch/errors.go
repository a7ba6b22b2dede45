package dispatch

import (
	"errors"
	"fmt"

	"github.com/btmgmt/btmgmt-go/pkg/transport"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Dispatcher errors.
var (
	ErrRejected         = errors.New("command rejected")
	ErrTimeout          = errors.New("command timed out")
	ErrInFlightConflict = errors.New("command already in flight")
	ErrCancelled        = errors.New("command cancelled")
	ErrAlreadyRunning   = errors.New("dispatcher already running")

	// ErrTransportClosed is returned for commands pending or submitted after
	// the transport closed.
	ErrTransportClosed = transport.ErrTransportClosed
)

// Kind classifies a CommandError.
type Kind uint8

const (
	// KindRejected means the kernel answered with a non-success status.
	KindRejected Kind = iota + 1
	// KindTimeout means no reply arrived before the deadline.
	KindTimeout
	// KindInFlightConflict means a command with the same key is awaiting a reply.
	KindInFlightConflict
	// KindCancelled means the caller's context was cancelled while waiting.
	KindCancelled
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "REJECTED"
	case KindTimeout:
		return "TIMEOUT"
	case KindInFlightConflict:
		return "IN_FLIGHT_CONFLICT"
	case KindCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindRejected:
		return ErrRejected
	case KindTimeout:
		return ErrTimeout
	case KindInFlightConflict:
		return ErrInFlightConflict
	case KindCancelled:
		return ErrCancelled
	default:
		return nil
	}
}

// CommandError reports a command that did not resolve successfully.
// It matches its kind's sentinel with errors.Is, and the context error
// for timeouts and cancellations caused by the caller's context.
type CommandError struct {
	Kind   Kind
	Opcode wire.Opcode
	Index  wire.ControllerIndex

	// Status is the kernel status for KindRejected.
	Status wire.Status

	// Err is the underlying cause, if any.
	Err error
}

func (e *CommandError) Error() string {
	if e.Kind == KindRejected {
		return fmt.Sprintf("%s on %s: %v: %s", e.Opcode, e.Index, ErrRejected, e.Status)
	}
	return fmt.Sprintf("%s on %s: %v", e.Opcode, e.Index, e.Kind.sentinel())
}

// Unwrap returns the kind sentinel and the cause.
func (e *CommandError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// StatusOf returns the kernel status carried by err, if it is a rejection.
func StatusOf(err error) (wire.Status, bool) {
	var ce *CommandError
	if errors.As(err, &ce) && ce.Kind == KindRejected {
		return ce.Status, true
	}
	return 0, false
}
