package wire

import (
	"errors"
	"fmt"
)

// Protocol errors.
var (
	// ErrMalformedFrame indicates length fields disagree with the buffer size.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrTruncatedFrame indicates fewer bytes than the layout requires.
	ErrTruncatedFrame = errors.New("truncated frame")

	// ErrUnknownOpcode indicates an opcode or event code the catalog does not know.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// ProtocolError describes a frame that could not be decoded.
type ProtocolError struct {
	// Err is one of ErrMalformedFrame, ErrTruncatedFrame or ErrUnknownOpcode.
	Err error

	// Code is the opcode or event code of the offending frame, if known.
	Code uint16

	// Index is the controller index of the offending frame, if known.
	Index ControllerIndex

	// Detail adds context such as the structure being decoded.
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v (code 0x%04x, index %s): %s", e.Err, e.Code, e.Index, e.Detail)
	}
	return fmt.Sprintf("%v (code 0x%04x, index %s)", e.Err, e.Code, e.Index)
}

// Unwrap returns the underlying sentinel error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// NewProtocolError wraps err with frame context.
// If err already is a *ProtocolError its code and index are replaced.
func NewProtocolError(err error, code uint16, index ControllerIndex, detail string) *ProtocolError {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		if detail == "" {
			detail = pe.Detail
		}
		return &ProtocolError{Err: pe.Err, Code: code, Index: index, Detail: detail}
	}
	return &ProtocolError{Err: err, Code: code, Index: index, Detail: detail}
}

// IsProtocolError reports whether err is a frame decoding failure.
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrMalformedFrame) ||
		errors.Is(err, ErrTruncatedFrame) ||
		errors.Is(err, ErrUnknownOpcode)
}
