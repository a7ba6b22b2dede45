// Package dispatch multiplexes commands and events over one management
// socket.
//
// A Dispatcher owns a transport. Run is the only reader of it: every frame
// is decoded through the catalog and either resolves the pending command
// whose (opcode, controller index) it echoes, or is fanned out to
// subscribers as an event.
//
// # Correlation
//
// The kernel echoes the command opcode in Command Complete and Command
// Status, and sends them with the command's controller index. That pair is
// the correlation key, so at most one command per key may be awaiting a
// reply. A second Exec with the same key fails immediately with a
// CommandError of kind KindInFlightConflict; commands with different keys
// proceed concurrently.
//
// Command states:
//
//	Submitted -> AwaitingReply -> Resolved
//	                           -> Failed (rejected, timeout, cancelled, closed)
//
// # Late replies
//
// When a command times out or is cancelled its key is released but
// remembered for Config.StaleTTL. The next reply for that key is treated as
// the late reply of the abandoned command: it is logged at Warn, counted,
// and discarded rather than resolving a newer command with the same key.
//
// # Events
//
// Events are decoded on the reader goroutine, passed to the Observer (the
// controller registry) and pushed into bounded subscriber queues. The
// reader never blocks on a slow subscriber.
package dispatch
