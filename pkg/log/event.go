package log

import (
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Event is one captured protocol event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the management socket (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	Direction Direction `cbor:"3,keyasint"`
	Layer     Layer     `cbor:"4,keyasint"`
	Category  Category  `cbor:"5,keyasint"`

	// Index is the controller index of the frame, when the event relates
	// to one.
	Index *wire.ControllerIndex `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Codec layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Connection/command state
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// WithIndex returns e with Index set to idx.
func (e Event) WithIndex(idx wire.ControllerIndex) Event {
	e.Index = &idx
	return e
}

// Direction indicates message flow relative to this process.
type Direction uint8

const (
	// DirectionIn is kernel to userspace.
	DirectionIn Direction = 0
	// DirectionOut is userspace to kernel.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerTransport is the socket layer (raw frames).
	LayerTransport Layer = 0
	// LayerCodec is the catalog layer (decoded parameters).
	LayerCodec Layer = 1
	// LayerDispatch is the correlation layer.
	LayerDispatch Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerCodec:
		return "CODEC"
	case LayerDispatch:
		return "DISPATCH"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event.
type Category uint8

const (
	// CategoryMessage is a command, reply or event.
	CategoryMessage Category = 0
	// CategoryState is a state change.
	CategoryState Category = 2
	// CategoryError is an error.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures a raw management frame.
type FrameEvent struct {
	// Size is the frame size in bytes including the header.
	Size int `cbor:"1,keyasint"`

	// Code is the opcode (outgoing) or event code (incoming) from the header.
	Code uint16 `cbor:"2,keyasint"`

	// Data is the raw frame (may be truncated for large frames).
	Data []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`
}

// MessageEvent captures a decoded command, reply or event.
type MessageEvent struct {
	Type MessageType `cbor:"1,keyasint"`

	// Opcode is set for commands and replies.
	Opcode *wire.Opcode `cbor:"2,keyasint,omitempty"`

	// EventCode is set for events.
	EventCode *wire.EventCode `cbor:"3,keyasint,omitempty"`

	// Status is set for replies.
	Status *wire.Status `cbor:"4,keyasint,omitempty"`

	// Payload is the decoded parameter structure.
	Payload any `cbor:"5,keyasint,omitempty"`

	// Latency is the time from send to reply (replies only).
	Latency *time.Duration `cbor:"6,keyasint,omitempty"`
}

// Name returns the opcode or event code name of the message.
func (m *MessageEvent) Name() string {
	switch {
	case m.Opcode != nil:
		return m.Opcode.String()
	case m.EventCode != nil:
		return m.EventCode.String()
	default:
		return ""
	}
}

// MessageType distinguishes commands, replies and events.
type MessageType uint8

const (
	// MessageTypeCommand is an outgoing command.
	MessageTypeCommand MessageType = 0
	// MessageTypeReply is a Command Complete or Command Status matched to a command.
	MessageTypeReply MessageType = 1
	// MessageTypeEvent is an unsolicited event.
	MessageTypeEvent MessageType = 2
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeCommand:
		return "COMMAND"
	case MessageTypeReply:
		return "REPLY"
	case MessageTypeEvent:
		return "EVENT"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures lifecycle transitions.
type StateChangeEvent struct {
	Entity   StateEntity `cbor:"1,keyasint"`
	OldState string      `cbor:"2,keyasint,omitempty"`
	NewState string      `cbor:"3,keyasint"`
	Reason   string      `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what changed state.
type StateEntity uint8

const (
	// StateEntityConnection is the management socket.
	StateEntityConnection StateEntity = 0
	// StateEntityCommand is one submitted command.
	StateEntityCommand StateEntity = 1
	// StateEntityController is a controller appearing or disappearing.
	StateEntityController StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntityCommand:
		return "COMMAND"
	case StateEntityController:
		return "CONTROLLER"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`

	// Code is the offending opcode or event code, if known.
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what was being done.
	Context string `cbor:"4,keyasint,omitempty"`
}
