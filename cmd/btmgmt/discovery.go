package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/pkg/btmgmt"
	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/connection"
	"github.com/btmgmt/btmgmt-go/pkg/subscription"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// resubscribeInterval is how often monitor retries after losing the socket.
const resubscribeInterval = 500 * time.Millisecond

func findCmd(a *app) *cobra.Command {
	var le, bredr, limited bool
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Discover nearby devices",
		Long: `Start discovery and print every device found until the kernel ends
discovery, --duration elapses or the command is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			idx := a.controllerIndex()
			types := discoveryTypes(le, bredr)

			sub, err := c.Subscribe(idx, subscription.WithEventCodes(wire.EvDeviceFound, wire.EvDiscovering))
			if err != nil {
				return err
			}
			defer sub.Close()

			var start catalog.Command = catalog.NewStartDiscovery(types)
			if limited {
				start = catalog.NewStartLimitedDiscovery(types)
			}
			if _, err := c.Exec(cmd.Context(), idx, start); err != nil {
				return fmt.Errorf("start discovery: %w", err)
			}

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Discovery started on %s (%s)\n", idx, types)
			found := 0
			for n := range sub.Events(ctx) {
				switch e := n.Event.(type) {
				case *catalog.DeviceFound:
					found++
					fmt.Fprintln(out, formatDeviceFound(e))
				case *catalog.Discovering:
					if !e.Discovering {
						fmt.Fprintf(out, "Discovery stopped, %d devices found\n", found)
						return nil
					}
				}
			}
			if err := sub.Err(); err != nil && !errors.Is(err, subscription.ErrSubscriptionClosed) {
				return err
			}

			stopCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 2*time.Second)
			defer cancel()
			if _, err := c.Exec(stopCtx, idx, catalog.NewStopDiscovery(types)); err != nil {
				a.logger.Debug("stop discovery failed", "index", idx, "error", err)
			}
			fmt.Fprintf(out, "Discovery stopped, %d devices found\n", found)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&le, "le", "l", false, "Scan LE only")
	cmd.Flags().BoolVarP(&bredr, "bredr", "b", false, "Scan BR/EDR only")
	cmd.Flags().BoolVar(&limited, "limited", false, "Find only devices in limited discoverable mode")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Stop after this long")

	return cmd
}

func stopFindCmd(a *app) *cobra.Command {
	var le, bredr bool

	cmd := &cobra.Command{
		Use:   "stop-find",
		Short: "Stop discovery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := c.Exec(cmd.Context(), a.controllerIndex(), catalog.NewStopDiscovery(discoveryTypes(le, bredr))); err != nil {
				return fmt.Errorf("stop discovery: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Discovery stopped")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&le, "le", "l", false, "LE discovery")
	cmd.Flags().BoolVarP(&bredr, "bredr", "b", false, "BR/EDR discovery")

	return cmd
}

func monitorCmd(a *app) *cobra.Command {
	var queue int

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print management events",
		Long: `Print every management event until interrupted.

Monitoring resumes after the socket is reopened; events sent while it
was closed are lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return monitor(cmd.Context(), c, cmd, queue)
		},
	}

	cmd.Flags().IntVar(&queue, "queue", subscription.DefaultQueueSize, "Event queue size")

	return cmd
}

func monitor(ctx context.Context, c *btmgmt.Client, cmd *cobra.Command, queue int) error {
	out := cmd.OutOrStdout()
	for {
		sub, err := c.SubscribeAll(subscription.WithQueueSize(queue))
		if err == nil {
			for n := range sub.Events(ctx) {
				fmt.Fprintln(out, formatNotification(n))
			}
			if d := sub.Dropped(); d > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d events dropped\n", d)
			}
			sub.Close()
		}

		if ctx.Err() != nil {
			return nil
		}
		if c.State() == connection.StateClosed {
			return errors.New("connection closed")
		}
		if err == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Connection lost, waiting for the socket to reopen")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(resubscribeInterval):
		}
	}
}
