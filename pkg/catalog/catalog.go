package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Catalog errors.
var (
	// ErrInvalidParameter indicates a command failed validation before any I/O.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrAlreadyRegistered indicates a second constructor for the same code.
	ErrAlreadyRegistered = errors.New("already registered")
)

// Scope tells which controller indexes a command may be sent to.
type Scope uint8

const (
	// ScopeController commands target one controller and reject NonController.
	ScopeController Scope = iota

	// ScopeGlobal commands must be sent to NonController.
	ScopeGlobal
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeController:
		return "CONTROLLER"
	case ScopeGlobal:
		return "GLOBAL"
	default:
		return "UNKNOWN"
	}
}

// Params is implemented by every parameter structure.
//
// UnmarshalParams reads from r and leaves error reporting to r; callers
// check r.Finish afterwards.
type Params interface {
	MarshalParams(w *wire.Writer)
	UnmarshalParams(r *wire.Reader)
}

// Command is a typed management command.
type Command interface {
	Params

	// Opcode returns the command opcode.
	Opcode() wire.Opcode

	// Scope returns which controller indexes the command accepts.
	Scope() Scope

	// Validate checks parameter ranges. It returns an error wrapping
	// ErrInvalidParameter.
	Validate() error

	// NewReply returns an empty reply to decode return parameters into.
	NewReply() Reply
}

// Reply holds the return parameters of a Command Complete event.
type Reply interface {
	Params
}

// Event is a typed management event.
type Event interface {
	Params

	// Code returns the event code.
	Code() wire.EventCode
}

// invalidf returns an ErrInvalidParameter error with detail.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

var (
	registryMu sync.RWMutex
	commands   = make(map[wire.Opcode]func() Command)
	events     = make(map[wire.EventCode]func() Event)
)

// RegisterCommand registers a constructor for an opcode.
func RegisterCommand(op wire.Opcode, fn func() Command) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := commands[op]; exists {
		return fmt.Errorf("command %s (0x%04x): %w", op, uint16(op), ErrAlreadyRegistered)
	}
	commands[op] = fn
	return nil
}

// RegisterEvent registers a constructor for an event code.
func RegisterEvent(code wire.EventCode, fn func() Event) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := events[code]; exists {
		return fmt.Errorf("event %s (0x%04x): %w", code, uint16(code), ErrAlreadyRegistered)
	}
	events[code] = fn
	return nil
}

// NewCommand returns an empty command for op.
func NewCommand(op wire.Opcode) (Command, error) {
	registryMu.RLock()
	fn, ok := commands[op]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: command 0x%04x", wire.ErrUnknownOpcode, uint16(op))
	}
	return fn(), nil
}

// NewEvent returns an empty event for code.
func NewEvent(code wire.EventCode) (Event, error) {
	registryMu.RLock()
	fn, ok := events[code]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: event 0x%04x", wire.ErrUnknownOpcode, uint16(code))
	}
	return fn(), nil
}

// Opcodes returns the registered command opcodes in ascending order.
func Opcodes() []wire.Opcode {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ops := make([]wire.Opcode, 0, len(commands))
	for op := range commands {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// EventCodes returns the registered event codes in ascending order.
func EventCodes() []wire.EventCode {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]wire.EventCode, 0, len(events))
	for code := range events {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// CheckScope verifies that index is acceptable for scope.
func CheckScope(index wire.ControllerIndex, scope Scope) error {
	switch scope {
	case ScopeGlobal:
		if !index.IsGlobal() {
			return invalidf("global command sent to controller %s", index)
		}
	case ScopeController:
		if index.IsGlobal() {
			return invalidf("controller command requires a controller index")
		}
	}
	return nil
}

// MarshalParams encodes p into a fresh byte slice.
func MarshalParams(p Params) []byte {
	w := wire.NewWriter(32)
	p.MarshalParams(w)
	return w.Bytes()
}

// UnmarshalParams decodes data into p and requires every byte be consumed.
func UnmarshalParams(p Params, data []byte) error {
	r := wire.NewReader(data)
	p.UnmarshalParams(r)
	return r.Finish()
}

// EncodeCommand validates cmd and encodes it as a frame for index.
func EncodeCommand(index wire.ControllerIndex, cmd Command) ([]byte, error) {
	if err := CheckScope(index, cmd.Scope()); err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Opcode(), err)
	}
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Opcode(), err)
	}
	params := MarshalParams(cmd)
	if len(params) > wire.MaxParamSize {
		return nil, fmt.Errorf("%s: %w", cmd.Opcode(), invalidf("parameters exceed %d bytes", wire.MaxParamSize))
	}
	return wire.EncodeFrame(wire.Frame{
		Code:   uint16(cmd.Opcode()),
		Index:  index,
		Params: params,
	})
}

// DecodeCommand decodes a command frame.
func DecodeCommand(f wire.Frame) (Command, error) {
	cmd, err := NewCommand(wire.Opcode(f.Code))
	if err != nil {
		return nil, wire.NewProtocolError(err, f.Code, f.Index, "")
	}
	if err := UnmarshalParams(cmd, f.Params); err != nil {
		return nil, wire.NewProtocolError(err, f.Code, f.Index, cmd.Opcode().String())
	}
	return cmd, nil
}

// DecodeReply decodes the return parameters of a Command Complete event
// for cmd.
func DecodeReply(cmd Command, index wire.ControllerIndex, params []byte) (Reply, error) {
	reply := cmd.NewReply()
	if err := UnmarshalParams(reply, params); err != nil {
		return nil, wire.NewProtocolError(err, uint16(cmd.Opcode()), index, cmd.Opcode().String()+" reply")
	}
	return reply, nil
}

// EncodeEvent encodes ev as a frame for index.
func EncodeEvent(index wire.ControllerIndex, ev Event) ([]byte, error) {
	return wire.EncodeFrame(wire.Frame{
		Code:   uint16(ev.Code()),
		Index:  index,
		Params: MarshalParams(ev),
	})
}

// DecodeEvent decodes an event frame.
func DecodeEvent(f wire.Frame) (Event, error) {
	ev, err := NewEvent(wire.EventCode(f.Code))
	if err != nil {
		return nil, wire.NewProtocolError(err, f.Code, f.Index, "")
	}
	if err := UnmarshalParams(ev, f.Params); err != nil {
		return nil, wire.NewProtocolError(err, f.Code, f.Index, ev.Code().String())
	}
	return ev, nil
}

func mustRegisterCommand(op wire.Opcode, fn func() Command) {
	if err := RegisterCommand(op, fn); err != nil {
		panic(err)
	}
}

func mustRegisterEvent(code wire.EventCode, fn func() Event) {
	if err := RegisterEvent(code, fn); err != nil {
		panic(err)
	}
}
