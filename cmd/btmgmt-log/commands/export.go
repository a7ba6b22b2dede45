package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/btmgmt/btmgmt-go/pkg/log"
)

type exporter func(r *log.Reader, w io.Writer) error

var exporters = map[string]exporter{
	"jsonl": exportJSONL,
	"csv":   exportCSV,
}

var csvHeader = []string{
	"timestamp", "connection_id", "direction", "layer", "category",
	"index", "type", "name", "status",
}

// RunExport converts the capture at path to format, writing to output or,
// when output is empty, to stdout.
func RunExport(path, format, output string, stdout io.Writer) error {
	export, ok := exporters[format]
	if !ok {
		return fmt.Errorf("unknown format %q (supported: %s)", format,
			strings.Join(slices.Sorted(maps.Keys(exporters)), ", "))
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer reader.Close()

	if output == "" {
		return export(reader, stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := export(reader, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportJSONL(r *log.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	for event, err := range r.All() {
		if err != nil {
			return fmt.Errorf("read capture: %w", err)
		}
		// CBOR decodes nested payloads as map[any]any, which json rejects.
		if m := event.Message; m != nil && m.Payload != nil {
			normalized := *m
			normalized.Payload = jsonValue(m.Payload)
			event.Message = &normalized
		}
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(r *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for event, err := range r.All() {
		if err != nil {
			return fmt.Errorf("read capture: %w", err)
		}
		if err := cw.Write(csvRecord(event)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(event log.Event) []string {
	var kind, name, status string
	switch {
	case event.Frame != nil:
		kind, name = "frame", codeName(event.Frame.Code, event.Direction)
	case event.Message != nil:
		kind, name = event.Message.Type.String(), event.Message.Name()
		if event.Message.Status != nil {
			status = event.Message.Status.String()
		}
	case event.StateChange != nil:
		kind = "state"
		name = event.StateChange.Entity.String() + " " + event.StateChange.NewState
	case event.Error != nil:
		kind, name = "error", event.Error.Message
	default:
		kind = "unknown"
	}

	var index string
	if event.Index != nil {
		index = strconv.Itoa(int(*event.Index))
	}

	return []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.ConnectionID,
		event.Direction.String(),
		event.Layer.String(),
		event.Category.String(),
		index,
		kind,
		name,
		status,
	}
}
