package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for event, err := range reader.All() {
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func TestFilterByConnectionID(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, []log.Event{
		{Timestamp: ts, ConnectionID: "conn-1", Category: log.CategoryMessage},
		{Timestamp: ts, ConnectionID: "conn-2", Category: log.CategoryMessage},
		{Timestamp: ts, ConnectionID: "conn-1", Category: log.CategoryMessage},
	})
	outPath := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	var out bytes.Buffer
	if err := RunFilter(path, FilterOptions{Output: outPath, ConnID: "conn-1"}, &out); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	events := readAll(t, outPath)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, e := range events {
		if e.ConnectionID != "conn-1" {
			t.Errorf("expected conn-1, got %s", e.ConnectionID)
		}
	}
	if !strings.Contains(out.String(), "Filtered 2 events") {
		t.Errorf("expected summary, got %q", out.String())
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []log.Event{
		{Timestamp: base, ConnectionID: "conn-1"},
		{Timestamp: base.Add(time.Hour), ConnectionID: "conn-1"},
		{Timestamp: base.Add(2 * time.Hour), ConnectionID: "conn-1"},
	})
	outPath := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		TimeStart: base.Add(30 * time.Minute).Format(time.RFC3339),
		TimeEnd:   base.Add(90 * time.Minute).Format(time.RFC3339),
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	events := readAll(t, outPath)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("unexpected event time %s", events[0].Timestamp)
	}
}

func TestFilterByIndexAndOpcode(t *testing.T) {
	powered := wire.OpSetPowered
	name := wire.OpSetLocalName
	path := createTestLogFile(t, []log.Event{
		{Index: idx(0), Message: &log.MessageEvent{Type: log.MessageTypeCommand, Opcode: &powered}},
		{Index: idx(1), Message: &log.MessageEvent{Type: log.MessageTypeCommand, Opcode: &powered}},
		{Index: idx(1), Message: &log.MessageEvent{Type: log.MessageTypeCommand, Opcode: &name}},
		{Index: idx(1), Frame: &log.FrameEvent{Size: 7}},
	})
	outPath := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	err := RunFilter(path, FilterOptions{Output: outPath, Index: "hci1", Opcode: "0x0005"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	events := readAll(t, outPath)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if *events[0].Index != 1 || *events[0].Message.Opcode != powered {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestFilterCommandByLayer(t *testing.T) {
	path := createTestLogFile(t, []log.Event{
		{Layer: log.LayerTransport},
		{Layer: log.LayerCodec},
		{Layer: log.LayerDispatch},
		{Layer: log.LayerCodec},
	})
	outPath := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	if err := RunFilter(path, FilterOptions{Output: outPath, Layer: "codec"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n := len(readAll(t, outPath)); n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestFilterRejectsBadOptions(t *testing.T) {
	path := createTestLogFile(t, nil)
	outPath := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	for _, opts := range []FilterOptions{
		{Output: outPath, Layer: "wire"},
		{Output: outPath, Direction: "up"},
		{Output: outPath, Category: "control"},
		{Output: outPath, Index: "hciX"},
		{Output: outPath, Opcode: "Make Coffee"},
		{Output: outPath, TimeStart: "yesterday"},
		{Output: outPath, TimeEnd: "tomorrow"},
	} {
		if err := RunFilter(path, opts, &bytes.Buffer{}); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}
