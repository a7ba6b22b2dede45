package transport

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func encodeFrame(t *testing.T, code uint16, index wire.ControllerIndex, params []byte) []byte {
	t.Helper()
	data, err := wire.EncodeFrame(wire.Frame{Code: code, Index: index, Params: params})
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	return data
}

type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
}

func (c *captureLogger) snapshot() []log.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]log.Event(nil), c.events...)
}

// chunkReader returns at most n bytes per Read.
type chunkReader struct {
	r io.Reader
	n int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

func TestFrameReaderSplitsStream(t *testing.T) {
	a := encodeFrame(t, 0x0001, wire.NonController, []byte{0x01, 0x00, 0x00, 0x00, 0x00})
	b := encodeFrame(t, 0x0006, 0, nil)
	c := encodeFrame(t, 0x0012, 1, bytes.Repeat([]byte{0xAB}, 300))

	stream := bytes.Join([][]byte{a, b, c}, nil)

	for _, chunk := range []int{1, 3, 7, 4096} {
		fr := NewFrameReader(&chunkReader{r: bytes.NewReader(stream), n: chunk})
		for i, want := range [][]byte{a, b, c} {
			got, err := fr.ReadFrame()
			if err != nil {
				t.Fatalf("chunk %d frame %d: ReadFrame failed: %v", chunk, i, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("chunk %d frame %d: got %x, want %x", chunk, i, got, want)
			}
		}
		if _, err := fr.ReadFrame(); !errors.Is(err, io.EOF) {
			t.Errorf("chunk %d: expected io.EOF at end, got %v", chunk, err)
		}
	}
}

func TestFrameReaderMaxFrame(t *testing.T) {
	want := encodeFrame(t, 0x0012, 0, bytes.Repeat([]byte{0x5A}, wire.MaxParamSize))
	fr := NewFrameReader(bytes.NewReader(want))

	got, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if len(got) != wire.MaxFrameSize {
		t.Errorf("frame size: got %d, want %d", len(got), wire.MaxFrameSize)
	}
}

func TestFrameReaderTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"partial header", []byte{0x01, 0x00, 0xFF}},
		{"partial params", []byte{0x06, 0x00, 0x00, 0x00, 0x04, 0x00, 0x01, 0x02}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := NewFrameReader(bytes.NewReader(tt.data))
			if _, err := fr.ReadFrame(); !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
			}
		})
	}
}

func TestFrameReaderReturnsCopy(t *testing.T) {
	stream := append(encodeFrame(t, 1, 0, []byte{1}), encodeFrame(t, 2, 0, []byte{2})...)
	fr := NewFrameReader(bytes.NewReader(stream))

	first, _ := fr.ReadFrame()
	if _, err := fr.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if first[0] != 1 || first[6] != 1 {
		t.Errorf("first frame overwritten: %x", first)
	}
}

func TestFrameWriterRejectsBadFrames(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf)

	if err := fw.WriteFrame([]byte{0x01, 0x00}); !errors.Is(err, ErrFrameTooShort) {
		t.Errorf("short frame: got %v, want ErrFrameTooShort", err)
	}
	if err := fw.WriteFrame([]byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01}); !errors.Is(err, ErrFrameLength) {
		t.Errorf("length mismatch: got %v, want ErrFrameLength", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %d bytes", buf.Len())
	}
}

func TestFramerLogsFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := &captureLogger{}
	f := NewFramer(&buf)
	f.SetLogger(logger, "conn-1")

	frame := encodeFrame(t, 0x0005, 2, []byte{0x01})
	if err := f.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if _, err := f.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	events := logger.snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d log events, want 2", len(events))
	}
	out, in := events[0], events[1]
	if out.Direction != log.DirectionOut || in.Direction != log.DirectionIn {
		t.Errorf("directions: got %v/%v", out.Direction, in.Direction)
	}
	if out.ConnectionID != "conn-1" || out.Layer != log.LayerTransport {
		t.Errorf("unexpected event: %+v", out)
	}
	if out.Index == nil || *out.Index != 2 {
		t.Errorf("Index: got %v, want 2", out.Index)
	}
	if out.Frame.Code != 0x0005 || out.Frame.Size != len(frame) {
		t.Errorf("Frame: got %+v", out.Frame)
	}
}

func TestFrameLogTruncation(t *testing.T) {
	frame := encodeFrame(t, 0x0012, 0, make([]byte, MaxLogFrameDataSize+10))
	h, _ := wire.DecodeHeader(frame)

	tp := tap{connID: "c"}
	e := tp.event(h, frame, log.DirectionIn)
	if !e.Frame.Truncated || len(e.Frame.Data) != MaxLogFrameDataSize {
		t.Errorf("expected truncated data, got %d bytes truncated=%v", len(e.Frame.Data), e.Frame.Truncated)
	}
	if e.Frame.Size != len(frame) {
		t.Errorf("Size: got %d, want %d", e.Frame.Size, len(frame))
	}
}
