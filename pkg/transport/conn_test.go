package transport

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func newPipeConn(t *testing.T, opts Options) (*Conn, net.Conn) {
	t.Helper()
	local, peer := net.Pipe()
	c := NewConn(local, opts)
	t.Cleanup(func() {
		c.Close()
		peer.Close()
	})
	return c, peer
}

func TestConnSend(t *testing.T) {
	c, peer := newPipeConn(t, Options{})
	frame := encodeFrame(t, uint16(wire.OpSetPowered), 0, []byte{0x01})

	errCh := make(chan error, 1)
	go func() { errCh <- c.Send(frame) }()

	buf := make([]byte, 64)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, frame, buf[:n])
	require.NoError(t, <-errCh)
}

func TestConnFrames(t *testing.T) {
	c, peer := newPipeConn(t, Options{})
	a := encodeFrame(t, uint16(wire.EvIndexAdded), 0, nil)
	b := encodeFrame(t, uint16(wire.EvNewSettings), 0, []byte{0x01, 0x00, 0x00, 0x00})

	go func() {
		// Split the second frame across writes.
		peer.Write(a)
		peer.Write(b[:3])
		peer.Write(b[3:])
		peer.Close()
	}()

	var frames [][]byte
	var last error
	for frame, err := range c.Frames() {
		if err != nil {
			last = err
			break
		}
		frames = append(frames, frame)
	}

	require.Len(t, frames, 2)
	assert.Equal(t, a, frames[0])
	assert.Equal(t, b, frames[1])
	assert.ErrorIs(t, last, ErrTransportClosed)
}

func TestConnFramesSingleUse(t *testing.T) {
	c, _ := newPipeConn(t, Options{})
	_ = c.Frames()

	var errs []error
	for frame, err := range c.Frames() {
		assert.Nil(t, frame)
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrTransportClosed)
}

func TestConnCloseUnblocksReader(t *testing.T) {
	c, _ := newPipeConn(t, Options{})

	done := make(chan error, 1)
	go func() {
		for _, err := range c.Frames() {
			if err != nil {
				done <- err
				return
			}
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrTransportClosed)
	case <-time.After(time.Second):
		t.Fatal("reader not unblocked by Close")
	}
}

func TestConnSendAfterClose(t *testing.T) {
	c, _ := newPipeConn(t, Options{})
	c.Close()

	err := c.Send(encodeFrame(t, 1, wire.NonController, nil))
	assert.ErrorIs(t, err, ErrTransportClosed)
}

func TestConnPeerClosedDuringSend(t *testing.T) {
	c, peer := newPipeConn(t, Options{})
	peer.Close()

	err := c.Send(encodeFrame(t, 1, wire.NonController, nil))
	assert.ErrorIs(t, err, ErrTransportClosed)
}

func TestConnTruncatedStream(t *testing.T) {
	c, peer := newPipeConn(t, Options{})
	go func() {
		peer.Write([]byte{0x06, 0x00, 0x00, 0x00, 0x04, 0x00, 0x01})
		peer.Close()
	}()

	_, err := c.ReadFrame()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransportClosed)
	assert.False(t, errors.Is(err, wire.ErrTruncatedFrame))
}

func TestConnProtocolLogger(t *testing.T) {
	logger := &captureLogger{}
	c, peer := newPipeConn(t, Options{ConnectionID: "fixed", ProtocolLogger: logger})
	assert.Equal(t, "fixed", c.ID())

	go func() {
		buf := make([]byte, 64)
		n, _ := peer.Read(buf)
		peer.Write(buf[:n])
	}()

	frame := encodeFrame(t, uint16(wire.OpReadVersionInfo), wire.NonController, nil)
	require.NoError(t, c.Send(frame))
	_, err := c.ReadFrame()
	require.NoError(t, err)

	events := logger.snapshot()
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "fixed", e.ConnectionID)
		require.NotNil(t, e.Index)
		assert.Equal(t, wire.NonController, *e.Index)
	}
}

func TestConnGeneratesID(t *testing.T) {
	a, _ := newPipeConn(t, Options{})
	b, _ := newPipeConn(t, Options{})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
