package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/registry"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func commandsCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List supported commands and events",
		Long: `List the commands and events the kernel supports.

With --local the commands and events this client can encode are listed
instead and no socket is opened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			ops, codes := catalog.Opcodes(), catalog.EventCodes()
			if !local {
				c, err := a.open(cmd.Context())
				if err != nil {
					return err
				}
				rep, err := c.Exec(cmd.Context(), wire.NonController, &catalog.ReadSupportedCommands{})
				if err != nil {
					return err
				}
				supported := rep.(*catalog.SupportedCommandsReply)
				ops, codes = supported.Commands, supported.Events
			}

			fmt.Fprintf(out, "%d commands:\n", len(ops))
			for _, op := range ops {
				fmt.Fprintf(out, "\t%s (0x%04x)\n", op, uint16(op))
			}
			fmt.Fprintf(out, "%d events:\n", len(codes))
			for _, code := range codes {
				fmt.Fprintf(out, "\t%s (0x%04x)\n", code, uint16(code))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "List what this client implements")

	return cmd
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List controllers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			printControllers(cmd.OutOrStdout(), c.Controllers())
			return nil
		},
	}
}

func infoCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show controller information",
		Long: `Show the cached information of the controller selected with --index.

Use --all to show every controller. Pass --refresh to read the
information from the kernel again first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
				if err := c.Refresh(cmd.Context()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if all {
				for _, s := range c.Controllers() {
					printControllerInfo(out, s)
				}
				return nil
			}
			s, err := c.Controller(a.controllerIndex())
			if errors.Is(err, registry.ErrNotFound) {
				return fmt.Errorf("no controller %s", a.controllerIndex())
			}
			if err != nil {
				return err
			}
			printControllerInfo(out, s)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every controller")
	cmd.Flags().Bool("refresh", false, "Reload information from the kernel")

	return cmd
}

// settingCmd builds an on/off/toggle command for one settings bit.
func settingCmd(a *app, use, short string, setting wire.Settings) *cobra.Command {
	return &cobra.Command{
		Use:       use + " <on|off|toggle>",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			idx := a.controllerIndex()
			var current wire.Settings
			if sw == switchToggle {
				current, err = c.ToggleSetting(cmd.Context(), idx, setting)
			} else {
				current, err = c.SetSetting(cmd.Context(), idx, setting, sw == switchOn)
			}
			if err != nil {
				return fmt.Errorf("%s %s: %w", use, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s settings: %s\n", idx, current)
			return nil
		},
	}
}

func discoverableCmd(a *app) *cobra.Command {
	var timeout uint16

	cmd := &cobra.Command{
		Use:   "discoverable <on|off|limited|toggle>",
		Short: "Toggle discoverable mode",
		Long: `Set the discoverable mode of a controller.

"limited" needs --timeout. A timeout with "on" makes the controller
leave discoverable mode after that many seconds.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "limited", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != "limited" && timeout == 0 {
				return settingCmd(a, "discoverable", "", wire.SettingDiscoverable).RunE(cmd, args)
			}

			mode := catalog.DiscoverableGeneral
			switch args[0] {
			case "limited":
				mode = catalog.DiscoverableLimited
			case "on":
			default:
				return fmt.Errorf("--timeout only applies to on and limited")
			}

			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := c.Exec(cmd.Context(), a.controllerIndex(), &catalog.SetDiscoverable{Mode: mode, Timeout: timeout})
			if err != nil {
				return fmt.Errorf("discoverable %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s settings: %s\n", a.controllerIndex(), rep.(*catalog.SettingsReply).Settings)
			return nil
		},
	}

	cmd.Flags().Uint16Var(&timeout, "timeout", 0, "Discoverable timeout in seconds")

	return cmd
}

func nameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <name> [short name]",
		Short: "Set the local name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := &catalog.SetLocalName{Name: args[0]}
			if len(args) > 1 {
				set.ShortName = args[1]
			}

			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := c.Exec(cmd.Context(), a.controllerIndex(), set)
			if err != nil {
				return fmt.Errorf("set name: %w", err)
			}
			names := rep.(*catalog.LocalNameReply)
			fmt.Fprintf(cmd.OutOrStdout(), "%s name %q short name %q\n", a.controllerIndex(), names.Name, names.ShortName)
			return nil
		},
	}
}

func classCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "class <major> <minor>",
		Short: "Set the class of device",
		Long: `Set the major and minor device class.

The major class is a number or a name such as computer or phone.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			major, err := parseMajor(args[0])
			if err != nil {
				return err
			}
			minor, err := parseMinor(args[1])
			if err != nil {
				return err
			}

			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := c.Exec(cmd.Context(), a.controllerIndex(), &catalog.SetDeviceClass{Major: major, Minor: minor})
			if err != nil {
				return fmt.Errorf("set class: %w", err)
			}
			class := rep.(*catalog.ClassReply).Class
			fmt.Fprintf(cmd.OutOrStdout(), "%s class %s (%s, minor %s)\n",
				a.controllerIndex(), formatClass(class), class.Major(), strconv.Quote(class.MinorName()))
			return nil
		},
	}
}
