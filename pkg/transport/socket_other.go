//go:build !linux

package transport

import (
	"context"
	"fmt"
	"runtime"
)

// Open fails: the management socket exists only on Linux.
func Open(ctx context.Context, opts Options) (*Conn, error) {
	return nil, fmt.Errorf("%w on %s", ErrNotSupported, runtime.GOOS)
}
