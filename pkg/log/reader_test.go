package log

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func writeEvents(t *testing.T, events ...Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture"+FileExtension)
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func ptr[T any](v T) *T { return &v }

func sampleEvents(base time.Time) []Event {
	setPowered := wire.OpSetPowered
	newSettings := wire.EvNewSettings
	return []Event{
		{
			Timestamp: base, ConnectionID: "a", Direction: DirectionOut,
			Layer: LayerCodec, Category: CategoryMessage, Index: ptr(wire.ControllerIndex(0)),
			Message: &MessageEvent{Type: MessageTypeCommand, Opcode: &setPowered},
		},
		{
			Timestamp: base.Add(time.Millisecond), ConnectionID: "a", Direction: DirectionIn,
			Layer: LayerCodec, Category: CategoryMessage, Index: ptr(wire.ControllerIndex(0)),
			Message: &MessageEvent{Type: MessageTypeReply, Opcode: &setPowered,
				Status: ptr(wire.StatusSuccess), Latency: ptr(time.Millisecond)},
		},
		{
			Timestamp: base.Add(2 * time.Millisecond), ConnectionID: "a", Direction: DirectionIn,
			Layer: LayerCodec, Category: CategoryMessage, Index: ptr(wire.ControllerIndex(1)),
			Message: &MessageEvent{Type: MessageTypeEvent, EventCode: &newSettings},
		},
		{
			Timestamp: base.Add(3 * time.Millisecond), ConnectionID: "b", Direction: DirectionIn,
			Layer: LayerDispatch, Category: CategoryError,
			Error: &ErrorEventData{Layer: LayerDispatch, Message: "unknown event", Code: ptr(0x7FFF)},
		},
	}
}

func TestReaderReadsAll(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path := writeEvents(t, sampleEvents(base)...)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	var got []Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 4 {
		t.Fatalf("got %d events, want 4", len(got))
	}
	if !got[0].Timestamp.Equal(base) {
		t.Errorf("Timestamp: got %v, want %v", got[0].Timestamp, base)
	}
	if got[1].Message == nil || got[1].Message.Latency == nil || *got[1].Message.Latency != time.Millisecond {
		t.Errorf("Latency not preserved: %+v", got[1].Message)
	}
	if got[2].Message.Name() != wire.EvNewSettings.String() {
		t.Errorf("Name: got %q", got[2].Message.Name())
	}
	if got[3].Error == nil || got[3].Error.Code == nil || *got[3].Error.Code != 0x7FFF {
		t.Errorf("Error not preserved: %+v", got[3].Error)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path := writeEvents(t, sampleEvents(base)...)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 4},
		{"connection", Filter{ConnectionID: "b"}, 1},
		{"direction out", Filter{Direction: ptr(DirectionOut)}, 1},
		{"layer dispatch", Filter{Layer: ptr(LayerDispatch)}, 1},
		{"category error", Filter{Category: ptr(CategoryError)}, 1},
		{"index 0", Filter{Index: ptr(wire.ControllerIndex(0))}, 2},
		{"index global", Filter{Index: ptr(wire.NonController)}, 0},
		{"opcode", Filter{Opcode: ptr(wire.OpSetPowered)}, 2},
		{"event code", Filter{EventCode: ptr(wire.EvNewSettings)}, 1},
		{"time start", Filter{TimeStart: ptr(base.Add(2 * time.Millisecond))}, 2},
		{"time end", Filter{TimeEnd: ptr(base.Add(time.Millisecond))}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer r.Close()

			count := 0
			for _, err := range r.All() {
				if err != nil {
					t.Fatalf("read failed: %v", err)
				}
				count++
			}
			if count != tt.want {
				t.Errorf("got %d events, want %d", count, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope"+FileExtension))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestReaderAllStopsEarly(t *testing.T) {
	path := writeEvents(t, sampleEvents(time.Now())...)
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	for range r.All() {
		break
	}
	// The remaining events are still readable.
	count := 0
	for range r.All() {
		count++
	}
	if count != 3 {
		t.Errorf("got %d remaining events, want 3", count)
	}
}

func TestStreamReader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, e := range sampleEvents(time.Now()) {
		if err := enc.Encode(e); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	r := NewStreamReader(io.NopCloser(&buf), Filter{Index: ptr(wire.ControllerIndex(1))})
	defer r.Close()

	var got []Event
	for e, err := range r.All() {
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 1 || got[0].Message == nil || *got[0].Message.EventCode != wire.EvNewSettings {
		t.Errorf("got %+v, want the index 1 NewSettings event", got)
	}
}
