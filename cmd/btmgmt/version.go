package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/pkg/version"
)

func versionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the library version and the management API version of the running kernel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version.Library)
				return nil
			}

			fmt.Fprintf(out, "btmgmt %s\n", version.Library)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)

			c, err := a.open(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "  kernel: unavailable (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "  kernel: management API %s\n", c.Version())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
