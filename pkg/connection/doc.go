// Package connection manages the lifetime of the management socket.
//
// A Manager opens a Session through a DialFunc, runs its reader and, when
// the reader stops because the socket was lost, reopens it with
// exponential backoff:
//
//	delay = min(initial * multiplier^n, max) + random(0, delay * jitter)
//
// The defaults start at 500ms and stop growing at 30s. Every new session
// runs the ReadyFunc hook before it is published, which is where callers
// rebuild state they derive from the kernel. Permission and platform
// errors end reconnection immediately since retrying cannot fix them.
package connection
