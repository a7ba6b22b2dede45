package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Connections       map[string]*ConnectionStats
	Commands          map[wire.Opcode]*CommandStats
	Events            map[wire.EventCode]int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ConnectionStats holds statistics for a single management socket.
type ConnectionStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Controllers map[wire.ControllerIndex]int
}

// CommandStats holds reply statistics for one opcode.
type CommandStats struct {
	Sent     int
	Replies  int
	Rejected int
	Latency  time.Duration
}

// MeanLatency returns the average reply latency.
func (c *CommandStats) MeanLatency() time.Duration {
	if c.Replies == 0 {
		return 0
	}
	return c.Latency / time.Duration(c.Replies)
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Connections:       make(map[string]*ConnectionStats),
		Commands:          make(map[wire.Opcode]*CommandStats),
		Events:            make(map[wire.EventCode]int),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{
			FirstSeen:   event.Timestamp,
			LastSeen:    event.Timestamp,
			Controllers: make(map[wire.ControllerIndex]int),
		}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if event.Index != nil && !event.Index.IsGlobal() {
		conn.Controllers[*event.Index]++
	}

	if msg := event.Message; msg != nil {
		switch msg.Type {
		case log.MessageTypeCommand:
			if msg.Opcode != nil {
				s.command(*msg.Opcode).Sent++
			}
		case log.MessageTypeReply:
			if msg.Opcode != nil {
				cs := s.command(*msg.Opcode)
				cs.Replies++
				if msg.Status != nil && !msg.Status.IsSuccess() {
					cs.Rejected++
				}
				if msg.Latency != nil {
					cs.Latency += *msg.Latency
				}
			}
		case log.MessageTypeEvent:
			if msg.EventCode != nil {
				s.Events[*msg.EventCode]++
			}
		}
	}

	if event.Error != nil {
		s.Errors++
	}
}

func (s *Stats) command(op wire.Opcode) *CommandStats {
	cs, ok := s.Commands[op]
	if !ok {
		cs = &CommandStats{}
		s.Commands[op] = cs
	}
	return cs
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for event, err := range reader.All() {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Bluetooth Management Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerCodec, log.LayerDispatch} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Commands) > 0 {
		fmt.Fprintln(w, "Commands:")
		for _, op := range slices.Sorted(maps.Keys(stats.Commands)) {
			cs := stats.Commands[op]
			fmt.Fprintf(w, "  %-40s sent %d, replies %d, rejected %d, mean latency %s\n",
				op.String(), cs.Sent, cs.Replies, cs.Rejected, formatDuration(cs.MeanLatency()))
		}
		fmt.Fprintln(w)
	}

	if len(stats.Events) > 0 {
		fmt.Fprintln(w, "Events:")
		for _, code := range slices.Sorted(maps.Keys(stats.Events)) {
			fmt.Fprintf(w, "  %-40s %d\n", code.String(), stats.Events[code])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		slices.SortFunc(conns, func(a, b connInfo) int {
			return a.stats.FirstSeen.Compare(b.stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			for _, idx := range slices.Sorted(maps.Keys(c.stats.Controllers)) {
				fmt.Fprintf(w, "           %s: %d events\n", idx, c.stats.Controllers[idx])
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
