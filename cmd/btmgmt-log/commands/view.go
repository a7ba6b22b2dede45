// Package commands implements the btmgmt-log CLI commands.
package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
	Index     *wire.ControllerIndex
	Opcode    *wire.Opcode
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Layer:     f.Layer,
		Direction: f.Direction,
		Category:  f.Category,
		Index:     f.Index,
		Opcode:    f.Opcode,
	}
}

func eventLabel(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "Frame"
	case event.Message != nil:
		return event.Message.Type.String()
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	}
	return "Unknown"
}

// formatEvent prints one event as a header line
// (time [conn:id] DIR LAYER index label), its details and a blank line.
func formatEvent(w io.Writer, event log.Event) {
	index := "-"
	if event.Index != nil {
		index = event.Index.String()
	}
	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s %s\n",
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		shortenConnID(event.ConnectionID), event.Direction, event.Layer, index, eventLabel(event))

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame, event.Direction)
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}
	fmt.Fprintln(w)
}

func shortenConnID(id string) string {
	return id[:min(len(id), 8)]
}

// codeName names the header code of a frame: an opcode when sent, an
// event code when received.
func codeName(code uint16, dir log.Direction) string {
	if dir == log.DirectionOut {
		return wire.Opcode(code).String()
	}
	return wire.EventCode(code).String()
}

func formatFrameDetails(w io.Writer, frame *log.FrameEvent, dir log.Direction) {
	fmt.Fprintf(w, "  Size: %d bytes\n", frame.Size)
	fmt.Fprintf(w, "  Code: 0x%04x %s\n", frame.Code, codeName(frame.Code, dir))
	if len(frame.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(frame.Data))
		if frame.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	if msg.Opcode != nil && msg.Type != log.MessageTypeEvent {
		fmt.Fprintf(w, "  Command: %s (0x%04x)\n", msg.Opcode, uint16(*msg.Opcode))
	}
	if msg.EventCode != nil {
		fmt.Fprintf(w, "  Event: %s (0x%04x)\n", msg.EventCode, uint16(*msg.EventCode))
	}
	if msg.Status != nil {
		fmt.Fprintf(w, "  Status: %s (0x%02x)\n", msg.Status, uint8(*msg.Status))
	}
	if msg.Latency != nil {
		fmt.Fprintf(w, "  Latency: %s\n", formatDuration(*msg.Latency))
	}
	if msg.Payload == nil {
		return
	}
	if b, err := json.Marshal(jsonValue(msg.Payload)); err == nil {
		fmt.Fprintf(w, "  Payload: %s\n", b)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: 0x%04x\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// jsonValue converts generically decoded CBOR into values encoding/json
// accepts. CBOR maps decode with interface keys, JSON needs strings.
func jsonValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonValue(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = jsonValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = jsonValue(val)
		}
		return s
	default:
		return v
	}
}

var (
	layerNames = map[string]log.Layer{
		"transport": log.LayerTransport,
		"codec":     log.LayerCodec,
		"dispatch":  log.LayerDispatch,
	}
	directionNames = map[string]log.Direction{
		"in":  log.DirectionIn,
		"out": log.DirectionOut,
	}
	categoryNames = map[string]log.Category{
		"message": log.CategoryMessage,
		"state":   log.CategoryState,
		"error":   log.CategoryError,
	}
)

func lookupFlag[T any](what, s string, names map[string]T) (T, error) {
	if v, ok := names[strings.ToLower(s)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (one of: %s)", what, s,
		strings.Join(slices.Sorted(maps.Keys(names)), ", "))
}

// ParseLayerFlag accepts transport, codec or dispatch in any case.
func ParseLayerFlag(s string) (log.Layer, error) {
	return lookupFlag("layer", s, layerNames)
}

// ParseDirectionFlag accepts in or out in any case.
func ParseDirectionFlag(s string) (log.Direction, error) {
	return lookupFlag("direction", s, directionNames)
}

// ParseCategoryFlag accepts message, state or error in any case.
func ParseCategoryFlag(s string) (log.Category, error) {
	return lookupFlag("category", s, categoryNames)
}

// ParseIndexFlag parses a controller index given as "hciN", "N" or "global".
func ParseIndexFlag(s string) (wire.ControllerIndex, error) {
	if strings.EqualFold(s, "global") {
		return wire.NonController, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "hci"), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid index: %s", s)
	}
	return wire.ControllerIndex(n), nil
}

// ParseOpcodeFlag parses a command opcode given as a number or a command
// name such as "Set Powered".
func ParseOpcodeFlag(s string) (wire.Opcode, error) {
	if n, err := strconv.ParseUint(s, 0, 16); err == nil {
		return wire.Opcode(n), nil
	}
	for op := wire.Opcode(1); op < 0x0200; op++ {
		if op.Known() && strings.EqualFold(op.String(), s) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("invalid opcode: %s", s)
}

// RunView prints the events of path that pass filter.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer reader.Close()

	for event, err := range reader.All() {
		if err != nil {
			return fmt.Errorf("read capture: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
