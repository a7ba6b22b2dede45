package transport

import "iter"

// Transport is the frame-level connection the dispatcher drives.
// Implemented by Conn.
type Transport interface {
	// Send writes exactly one encoded frame.
	Send(frame []byte) error

	// Frames yields inbound frames until the transport closes.
	Frames() iter.Seq2[[]byte, error]

	// Close closes the transport.
	Close() error
}

// FrameReadWriter provides whole-frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	// ReadFrame reads one frame including its header.
	ReadFrame() ([]byte, error)

	// WriteFrame writes one frame including its header.
	WriteFrame(frame []byte) error
}

// Compile-time interface satisfaction checks.
var (
	_ Transport       = (*Conn)(nil)
	_ FrameReadWriter = (*Framer)(nil)
)
