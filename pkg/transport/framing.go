package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// MaxLogFrameDataSize caps the raw bytes copied into a capture event.
const MaxLogFrameDataSize = 4096

var (
	ErrFrameTooShort = errors.New("frame shorter than header")
	ErrFrameLength   = errors.New("frame length mismatch")
)

// tap reports frames to an optional protocol capture logger.
type tap struct {
	logger log.Logger
	connID string
}

// SetLogger attaches a capture logger. A nil logger detaches it.
func (t *tap) SetLogger(logger log.Logger, connID string) {
	t.logger, t.connID = logger, connID
}

func (t *tap) record(h wire.Header, frame []byte, dir log.Direction) {
	if t.logger != nil {
		t.logger.Log(t.event(h, frame, dir))
	}
}

func (t *tap) event(h wire.Header, frame []byte, dir log.Direction) log.Event {
	fe := &log.FrameEvent{Size: len(frame), Code: h.Code, Data: frame}
	if len(frame) > MaxLogFrameDataSize {
		fe.Data, fe.Truncated = frame[:MaxLogFrameDataSize], true
	}
	index := h.Index
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: t.connID,
		Direction:    dir,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Index:        &index,
		Frame:        fe,
	}
}

// FrameWriter sends whole frames, one Write per frame. It is safe for
// concurrent use.
type FrameWriter struct {
	tap
	mu sync.Mutex
	w  io.Writer
}

// NewFrameWriter creates a frame writer over w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteFrame rejects anything that is not exactly one frame, then writes it.
func (fw *FrameWriter) WriteFrame(frame []byte) error {
	if len(frame) < wire.HeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(frame))
	}
	h, _ := wire.DecodeHeader(frame)
	if body := len(frame) - wire.HeaderSize; int(h.Length) != body {
		return fmt.Errorf("%w: header declares %d, have %d", ErrFrameLength, h.Length, body)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	switch n, err := fw.w.Write(frame); {
	case err != nil:
		return fmt.Errorf("write frame: %w", err)
	case n < len(frame):
		return fmt.Errorf("write frame: %w", io.ErrShortWrite)
	}
	fw.record(h, frame, log.DirectionOut)
	return nil
}

// FrameReader splits a byte stream into frames. Its buffer holds one
// maximum-size frame, so a datagram read never loses a frame's tail.
type FrameReader struct {
	tap
	r *bufio.Reader
}

// NewFrameReader creates a frame reader over r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReaderSize(r, wire.MaxFrameSize)}
}

// ReadFrame returns the next frame, header included, in a fresh slice.
// io.EOF means the stream ended between frames; io.ErrUnexpectedEOF means
// it ended inside one.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	head, err := fr.r.Peek(wire.HeaderSize)
	if err != nil {
		return nil, midFrame(err, len(head) > 0)
	}
	h, _ := wire.DecodeHeader(head)

	size := wire.HeaderSize + int(h.Length)
	buf, err := fr.r.Peek(size)
	if err != nil {
		return nil, midFrame(err, true)
	}
	frame := append([]byte(nil), buf...)
	if _, err := fr.r.Discard(size); err != nil {
		return nil, err
	}

	fr.record(h, frame, log.DirectionIn)
	return frame, nil
}

func midFrame(err error, started bool) error {
	if started && errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Framer reads and writes frames over one stream.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a framer reading and writing rw.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{FrameReader: NewFrameReader(rw), FrameWriter: NewFrameWriter(rw)}
}

// SetLogger attaches logger to both directions.
func (f *Framer) SetLogger(logger log.Logger, connID string) {
	f.FrameReader.SetLogger(logger, connID)
	f.FrameWriter.SetLogger(logger, connID)
}
