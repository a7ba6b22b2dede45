package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func addressTypeFlag(cmd *cobra.Command, typ *string) {
	cmd.Flags().StringVarP(typ, "type", "t", "bredr", "Address type: bredr, le-public, le-random")
}

func pairCmd(a *app) *cobra.Command {
	var typ, capability string

	cmd := &cobra.Command{
		Use:   "pair <address>",
		Short: "Pair with a remote device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := parseDevice(args[0], typ)
			if err != nil {
				return err
			}
			capab, err := parseCapability(capability)
			if err != nil {
				return err
			}

			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pairing with %s\n", dev)
			rep, err := c.Exec(cmd.Context(), a.controllerIndex(), &catalog.PairDevice{Device: dev, Capability: capab})
			if err != nil {
				return fmt.Errorf("pair %s: %w", dev, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paired with %s\n", rep.(*catalog.AddressReply).Device)
			return nil
		},
	}

	addressTypeFlag(cmd, &typ)
	cmd.Flags().StringVarP(&capability, "capability", "c", "none",
		"IO capability: display, displayyesno, keyboard, none, keyboarddisplay")

	return cmd
}

func unpairCmd(a *app) *cobra.Command {
	var typ string
	var disconnect bool

	cmd := &cobra.Command{
		Use:   "unpair <address>",
		Short: "Remove the keys of a paired device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := parseDevice(args[0], typ)
			if err != nil {
				return err
			}
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := c.Exec(cmd.Context(), a.controllerIndex(), &catalog.UnpairDevice{Device: dev, Disconnect: disconnect}); err != nil {
				return fmt.Errorf("unpair %s: %w", dev, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s unpaired\n", dev)
			return nil
		},
	}

	addressTypeFlag(cmd, &typ)
	cmd.Flags().BoolVarP(&disconnect, "disconnect", "d", false, "Also terminate the connection")

	return cmd
}

// deviceCommands maps the single-address commands to their constructors.
var deviceCommands = map[string]func(wire.DeviceAddress) catalog.Command{
	"disconnect": func(d wire.DeviceAddress) catalog.Command { return catalog.NewDisconnect(d) },
	"block":      func(d wire.DeviceAddress) catalog.Command { return catalog.NewBlockDevice(d) },
	"unblock":    func(d wire.DeviceAddress) catalog.Command { return catalog.NewUnblockDevice(d) },
}

func deviceCmd(a *app, use, short string) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   use + " <address>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := parseDevice(args[0], typ)
			if err != nil {
				return err
			}
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := c.Exec(cmd.Context(), a.controllerIndex(), deviceCommands[use](dev)); err != nil {
				return fmt.Errorf("%s %s: %w", use, dev, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s succeeded\n", use, dev)
			return nil
		},
	}

	addressTypeFlag(cmd, &typ)

	return cmd
}

func conCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "con",
		Short: "List connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := c.Exec(cmd.Context(), a.controllerIndex(), &catalog.GetConnections{})
			if err != nil {
				return fmt.Errorf("get connections: %w", err)
			}
			out := cmd.OutOrStdout()
			devices := rep.(*catalog.ConnectionsReply).Devices
			if len(devices) == 0 {
				fmt.Fprintln(out, "No connections")
			}
			for _, d := range devices {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}
