package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func exportEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	op := wire.OpSetPowered
	st := wire.StatusSuccess
	return []log.Event{
		{
			Timestamp:    ts,
			ConnectionID: "abc12345",
			Direction:    log.DirectionOut,
			Layer:        log.LayerCodec,
			Category:     log.CategoryMessage,
			Index:        idx(0),
			Message: &log.MessageEvent{
				Type:    log.MessageTypeCommand,
				Opcode:  &op,
				Payload: map[string]any{"Enable": true},
			},
		},
		{
			Timestamp:    ts.Add(time.Millisecond),
			ConnectionID: "abc12345",
			Direction:    log.DirectionIn,
			Layer:        log.LayerDispatch,
			Category:     log.CategoryMessage,
			Index:        idx(0),
			Message:      &log.MessageEvent{Type: log.MessageTypeReply, Opcode: &op, Status: &st},
		},
	}
}

func TestExportToJSONL(t *testing.T) {
	path := createTestLogFile(t, exportEvents())
	outPath := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", outPath, nil); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if first["ConnectionID"] != "abc12345" {
		t.Errorf("expected connection ID, got %v", first["ConnectionID"])
	}
	msg, ok := first["Message"].(map[string]any)
	if !ok {
		t.Fatalf("expected message object, got %T", first["Message"])
	}
	payload, ok := msg["Payload"].(map[string]any)
	if !ok || payload["Enable"] != true {
		t.Errorf("expected decoded payload, got %v", msg["Payload"])
	}
}

func TestExportToCSV(t *testing.T) {
	path := createTestLogFile(t, exportEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "csv", "", &buf); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if records[0][5] != "index" {
		t.Errorf("expected index column, got %v", records[0])
	}

	row := records[1]
	if row[1] != "abc12345" || row[2] != "OUT" || row[3] != "CODEC" || row[5] != "0" {
		t.Errorf("unexpected row: %v", row)
	}
	if row[6] != "COMMAND" || row[7] != wire.OpSetPowered.String() {
		t.Errorf("unexpected type or name: %v", row)
	}
	if records[2][8] != wire.StatusSuccess.String() {
		t.Errorf("expected reply status, got %v", records[2])
	}
}

func TestExportWritesToStdout(t *testing.T) {
	path := createTestLogFile(t, []log.Event{
		{ConnectionID: "abc12345", Layer: log.LayerTransport, Frame: &log.FrameEvent{Size: 6}},
	})

	var buf bytes.Buffer
	if err := RunExport(path, "jsonl", "", &buf); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected output to stdout")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, exportEvents())

	err := RunExport(path, "xml", "", &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}
