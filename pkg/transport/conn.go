package transport

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/btmgmt/btmgmt-go/pkg/log"
)

// Transport errors.
var (
	// ErrTransportClosed indicates the socket was closed locally or by the peer.
	ErrTransportClosed = errors.New("transport closed")

	// ErrPermissionDenied indicates the process lacks CAP_NET_ADMIN.
	ErrPermissionDenied = errors.New("permission denied opening management socket")

	// ErrNotSupported indicates the kernel has no Bluetooth management support.
	ErrNotSupported = errors.New("bluetooth management socket not supported")
)

// Options configures a Conn.
type Options struct {
	// ConnectionID labels protocol log events. A random UUID is used when empty.
	ConnectionID string

	// ProtocolLogger receives every frame in and out (optional).
	ProtocolLogger log.Logger

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Conn is a management connection over a byte stream.
type Conn struct {
	rwc    io.ReadWriteCloser
	framer *Framer
	id     string
	logger *slog.Logger

	framesTaken atomic.Bool
	closed      atomic.Bool
	closeOnce   sync.Once
	closeErr    error
}

// NewConn wraps rwc. The Conn takes ownership and closes rwc on Close.
func NewConn(rwc io.ReadWriteCloser, opts Options) *Conn {
	if opts.ConnectionID == "" {
		opts.ConnectionID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Conn{
		rwc:    rwc,
		framer: NewFramer(rwc),
		id:     opts.ConnectionID,
		logger: opts.Logger.With("conn_id", opts.ConnectionID),
	}
	if opts.ProtocolLogger != nil {
		c.framer.SetLogger(opts.ProtocolLogger, opts.ConnectionID)
	}
	return c
}

// ID returns the connection id used in logs.
func (c *Conn) ID() string {
	return c.id
}

// Send writes exactly one encoded frame. Safe for concurrent use.
func (c *Conn) Send(frame []byte) error {
	if c.closed.Load() {
		return ErrTransportClosed
	}
	if err := c.framer.WriteFrame(frame); err != nil {
		if isClosedErr(err) {
			return fmt.Errorf("%w: %w", ErrTransportClosed, err)
		}
		return err
	}
	return nil
}

// ReadFrame blocks until the next whole frame arrives. After the stream
// ends every call returns an error wrapping ErrTransportClosed.
func (c *Conn) ReadFrame() ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrTransportClosed
	}
	frame, err := c.framer.ReadFrame()
	if err == nil {
		return frame, nil
	}
	if c.closed.Load() || isClosedErr(err) {
		return nil, ErrTransportClosed
	}
	return nil, fmt.Errorf("%w: read frame: %w", ErrTransportClosed, err)
}

// Frames returns the sequence of inbound frames. The sequence can be
// ranged over once; later calls yield only ErrTransportClosed. It ends
// with a final error wrapping ErrTransportClosed.
func (c *Conn) Frames() iter.Seq2[[]byte, error] {
	if !c.framesTaken.CompareAndSwap(false, true) {
		return func(yield func([]byte, error) bool) {
			yield(nil, ErrTransportClosed)
		}
	}
	return func(yield func([]byte, error) bool) {
		for {
			frame, err := c.ReadFrame()
			if err != nil {
				c.logger.Debug("frame stream ended", "error", err)
				yield(nil, err)
				return
			}
			if !yield(frame, nil) {
				return
			}
		}
	}
}

// Close closes the underlying stream. A blocked ReadFrame returns
// ErrTransportClosed. Close is idempotent.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.rwc.Close()
		c.logger.Debug("management socket closed")
	})
	return c.closeErr
}

// isClosedErr reports whether err means the stream is gone.
func isClosedErr(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, net.ErrClosed)
}
