// Command btmgmt-log views and analyzes protocol capture files.
//
// Capture files are written by btmgmt --protocol-log or by any client
// configured with a protocol_log path.
//
// Usage:
//
//	btmgmt-log <command> [flags] <file.bmlog>
//
// Examples:
//
//	# View all events
//	btmgmt-log view session.bmlog
//
//	# View only raw frames sent to the kernel
//	btmgmt-log view --layer transport --direction out session.bmlog
//
//	# View everything that happened on hci1
//	btmgmt-log view --index hci1 session.bmlog
//
//	# Export to JSONL
//	btmgmt-log export --format jsonl session.bmlog
//
//	# Keep only Set Powered traffic
//	btmgmt-log filter --opcode "Set Powered" -o powered.bmlog session.bmlog
//
//	# Show statistics
//	btmgmt-log stats session.bmlog
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/cmd/btmgmt-log/commands"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "btmgmt-log",
		Short:         "Bluetooth management protocol log analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(viewCmd(), exportCmd(), filterCmd(), statsCmd())
	return root
}

func viewCmd() *cobra.Command {
	var layer, direction, category, index, opcode string

	cmd := &cobra.Command{
		Use:   "view [flags] <file>",
		Short: "View log file in human-readable format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter commands.ViewFilter

			if layer != "" {
				l, err := commands.ParseLayerFlag(layer)
				if err != nil {
					return err
				}
				filter.Layer = &l
			}
			if direction != "" {
				d, err := commands.ParseDirectionFlag(direction)
				if err != nil {
					return err
				}
				filter.Direction = &d
			}
			if category != "" {
				c, err := commands.ParseCategoryFlag(category)
				if err != nil {
					return err
				}
				filter.Category = &c
			}
			if index != "" {
				i, err := commands.ParseIndexFlag(index)
				if err != nil {
					return err
				}
				filter.Index = &i
			}
			if opcode != "" {
				op, err := commands.ParseOpcodeFlag(opcode)
				if err != nil {
					return err
				}
				filter.Opcode = &op
			}

			return commands.RunView(args[0], filter, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "Filter by layer (transport, codec, dispatch)")
	cmd.Flags().StringVar(&direction, "direction", "", "Filter by direction (in, out)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category (message, state, error)")
	cmd.Flags().StringVar(&index, "index", "", "Filter by controller index (hciN, N or global)")
	cmd.Flags().StringVar(&opcode, "opcode", "", "Filter by command opcode (number or name)")

	return cmd
}

func exportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [flags] <file>",
		Short: "Export log file to JSONL or CSV format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunExport(args[0], format, output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&format, "format", "jsonl", "Output format (jsonl, csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func filterCmd() *cobra.Command {
	var opts commands.FilterOptions

	cmd := &cobra.Command{
		Use:   "filter [flags] <file>",
		Short: "Filter log file and write to new file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFilter(args[0], opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "", "Output file (required)")
	flags.StringVar(&opts.ConnID, "conn-id", "", "Filter by connection ID")
	flags.StringVar(&opts.Index, "index", "", "Filter by controller index (hciN, N or global)")
	flags.StringVar(&opts.Opcode, "opcode", "", "Filter by command opcode (number or name)")
	flags.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	flags.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	flags.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, codec, dispatch)")
	flags.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	flags.StringVar(&opts.Category, "category", "", "Filter by category (message, state, error)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show statistics about the log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunStats(args[0], cmd.OutOrStdout())
		},
	}
}
