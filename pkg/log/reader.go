package log

import (
	"errors"
	"io"
	"iter"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Filter selects capture events. A zero field places no constraint.
type Filter struct {
	ConnectionID string
	Direction    *Direction
	Layer        *Layer
	Category     *Category

	// Index matches events tagged with this controller index. Events
	// without an index never match.
	Index *wire.ControllerIndex

	// Opcode and EventCode match decoded message events only.
	Opcode    *wire.Opcode
	EventCode *wire.EventCode

	// Window is [TimeStart, TimeEnd).
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Matches reports whether event passes every set criterion.
func (f *Filter) Matches(event Event) bool {
	switch {
	case f.ConnectionID != "" && f.ConnectionID != event.ConnectionID:
		return false
	case f.Direction != nil && *f.Direction != event.Direction:
		return false
	case f.Layer != nil && *f.Layer != event.Layer:
		return false
	case f.Category != nil && *f.Category != event.Category:
		return false
	case f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart):
		return false
	case f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}

	if f.Index != nil && !equalPtr(event.Index, f.Index) {
		return false
	}
	if f.Opcode == nil && f.EventCode == nil {
		return true
	}
	msg := event.Message
	if msg == nil {
		return false
	}
	if f.Opcode != nil && !equalPtr(msg.Opcode, f.Opcode) {
		return false
	}
	return f.EventCode == nil || equalPtr(msg.EventCode, f.EventCode)
}

func equalPtr[T comparable](got, want *T) bool {
	return got != nil && *got == *want
}

// Reader streams capture events from a .bmlog file, skipping those the
// filter rejects.
type Reader struct {
	src    io.Closer
	dec    *cbor.Decoder
	filter Filter
}

// NewReader opens path and reads every event in it.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens path and reads only events matching filter.
// A path of "-" reads standard input.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	if path == "-" {
		return NewStreamReader(io.NopCloser(os.Stdin), filter), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamReader(f, filter), nil
}

// NewStreamReader reads events from rc. Close closes rc.
func NewStreamReader(rc io.ReadCloser, filter Filter) *Reader {
	return &Reader{src: rc, dec: NewDecoder(rc), filter: filter}
}

// Next returns the next matching event, or io.EOF at the end of the stream.
func (r *Reader) Next() (Event, error) {
	var event Event
	for {
		event = Event{}
		if err := r.dec.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// All iterates over the remaining matching events. A decode error is
// yielded once with a zero Event and ends the iteration.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the underlying stream.
func (r *Reader) Close() error {
	return r.src.Close()
}
