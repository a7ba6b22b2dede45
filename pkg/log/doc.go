// Package log captures a machine-readable trace of management protocol
// traffic.
//
// It is separate from operational logging (slog). Operational logs say
// what the library did; the protocol log records every frame that crossed
// the management socket together with the decoded commands, replies and
// events, so a session can be inspected or replayed later.
//
// # Basic Usage
//
//	// During development, print events through slog.
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// In the field, append to a capture file.
//	fl, err := log.NewFileLogger("/var/log/btmgmt/session.bmlog")
//
//	// Or both.
//	cfg.ProtocolLogger = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Event Types
//
//   - Transport layer: raw frames with their header fields (FrameEvent)
//   - Codec layer: decoded commands, replies and events (MessageEvent)
//   - Dispatch layer: connection and command state (StateChangeEvent)
//
// Protocol errors at any layer are recorded as ErrorEventData.
//
// # File Format
//
// Capture files are a plain concatenation of CBOR encoded events with
// integer map keys, conventionally named *.bmlog. The btmgmt-log tool
// views, filters and exports them.
package log
