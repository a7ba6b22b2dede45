// Package wire defines the binary frame format of the Bluetooth management
// protocol and the protocol types shared by commands and events.
//
// Every message on the management socket is a frame with a fixed 6-byte
// header followed by exactly Length bytes of parameters:
//
//	┌──────────────┬──────────────┬──────────────┬───────────────────┐
//	│ Code (u16)   │ Index (u16)  │ Length (u16) │ Parameters ...    │
//	└──────────────┴──────────────┴──────────────┴───────────────────┘
//
// Code is a command opcode for frames sent to the kernel and an event code
// for frames received from it. All multi-byte integers are little-endian.
//
// # Controller Index
//
// The index selects the local adapter a frame refers to. NonController
// (0xFFFF) addresses global commands and events that are not tied to a
// single adapter.
//
// # Parameter Codec
//
// Reader and Writer provide bounded little-endian field access. A Reader
// never reads past the end of its buffer: the first short read records
// ErrTruncatedFrame and every later read returns zero values, so decoders
// can read a whole structure and check Err once.
//
// # Errors
//
// Decoding failures are reported as *ProtocolError values wrapping one of
// ErrMalformedFrame, ErrTruncatedFrame or ErrUnknownOpcode. They indicate a
// kernel version mismatch or a bug and are never retried.
package wire

//go:generate go run ../../cmd/btmgmt-gen -in opcodes.yaml -out opcodes_gen.go
