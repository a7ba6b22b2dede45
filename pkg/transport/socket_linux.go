//go:build linux

package transport

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Management channel addressing.
const (
	hciDevNone        = 0xFFFF
	hciChannelControl = unix.HCI_CHANNEL_CONTROL
)

// Open creates the management socket and binds it to the control channel.
func Open(ctx context.Context, opts Options) (*Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW|unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK, unix.BTPROTO_HCI)
	if err != nil {
		return nil, mapErrno("socket", err, false)
	}

	sa := &unix.SockaddrHCI{Dev: hciDevNone, Channel: hciChannelControl}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, mapErrno("bind", err, true)
	}

	// The fd is non-blocking, so os.NewFile registers it with the runtime poller
	// and Close unblocks a pending Read.
	f := os.NewFile(uintptr(fd), "btmgmt")
	if f == nil {
		unix.Close(fd)
		return nil, fmt.Errorf("wrap management socket: invalid fd %d", fd)
	}

	c := NewConn(f, opts)
	c.logger.Info("management socket open")
	return c, nil
}

// mapErrno translates socket and bind failures into package errors.
func mapErrno(op string, err error, binding bool) error {
	switch {
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, op, err)
	case errors.Is(err, unix.EAFNOSUPPORT), errors.Is(err, unix.EPROTONOSUPPORT):
		return fmt.Errorf("%w: %s: %w", ErrNotSupported, op, err)
	case binding && errors.Is(err, unix.EINVAL):
		return fmt.Errorf("%w: %s: %w", ErrNotSupported, op, err)
	default:
		return fmt.Errorf("%s management socket: %w", op, err)
	}
}
