package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/log"
)

// FilterOptions holds the raw flag values of the filter command. Empty
// values place no constraint.
type FilterOptions struct {
	Output    string
	ConnID    string
	Index     string
	Opcode    string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
}

// optional parses raw into *dst when raw is set.
func optional[T any](raw string, dst **T, parse func(string) (T, error)) error {
	if raw == "" {
		return nil
	}
	v, err := parse(raw)
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

func parseTimeFlag(name string) func(string) (time.Time, error) {
	return func(s string) (time.Time, error) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return t, fmt.Errorf("invalid --%s %q: want RFC 3339", name, s)
		}
		return t, nil
	}
}

func (opts FilterOptions) filter() (log.Filter, error) {
	f := log.Filter{ConnectionID: opts.ConnID}
	err := errors.Join(
		optional(opts.TimeStart, &f.TimeStart, parseTimeFlag("time-start")),
		optional(opts.TimeEnd, &f.TimeEnd, parseTimeFlag("time-end")),
		optional(opts.Layer, &f.Layer, ParseLayerFlag),
		optional(opts.Direction, &f.Direction, ParseDirectionFlag),
		optional(opts.Category, &f.Category, ParseCategoryFlag),
		optional(opts.Index, &f.Index, ParseIndexFlag),
		optional(opts.Opcode, &f.Opcode, ParseOpcodeFlag),
	)
	return f, err
}

// RunFilter copies the events of path that match opts into a new capture
// file at opts.Output.
func RunFilter(path string, opts FilterOptions, stdout io.Writer) error {
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return err
	}

	var n int
	for event, err := range reader.All() {
		if err != nil {
			out.Close()
			return fmt.Errorf("read capture: %w", err)
		}
		out.Log(event)
		n++
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}

	fmt.Fprintf(stdout, "Filtered %d events to %s\n", n, opts.Output)
	return nil
}
