package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/registry"
	"github.com/btmgmt/btmgmt-go/pkg/subscription"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func printControllers(w io.Writer, states []registry.ControllerState) {
	if len(states) == 0 {
		fmt.Fprintln(w, "No controllers")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tADDRESS\tTYPE\tPOWERED\tNAME")
	for _, s := range states {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.Index, s.Address, s.TypeName(), yesNo(s.Has(wire.SettingPowered)), s.Name)
	}
	tw.Flush()
}

func printControllerInfo(w io.Writer, s registry.ControllerState) {
	fmt.Fprintf(w, "%s:\t%s controller\n", s.Index, s.TypeName())
	fmt.Fprintf(w, "\taddr %s version %d manufacturer %d class %s\n",
		s.Address, s.Version, s.Manufacturer, formatClass(s.Class))
	fmt.Fprintf(w, "\tsupported settings: %s\n", s.SupportedSettings)
	fmt.Fprintf(w, "\tcurrent settings: %s\n", s.CurrentSettings)
	fmt.Fprintf(w, "\tname %s\n", s.Name)
	fmt.Fprintf(w, "\tshort name %s\n", s.ShortName)
	if s.Appearance != 0 {
		fmt.Fprintf(w, "\tappearance 0x%04x\n", s.Appearance)
	}
	if s.Discovering {
		fmt.Fprintf(w, "\tdiscovering %s\n", s.DiscoveryTypes)
	}
}

func formatClass(c wire.ClassOfDevice) string {
	return fmt.Sprintf("0x%06x", uint32(c))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatDeviceFound renders one discovery result on a single line.
func formatDeviceFound(e *catalog.DeviceFound) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s rssi %d flags 0x%04x", e.Device, e.RSSI, e.Flags)
	eir, err := e.ParseEIR()
	if err != nil {
		fmt.Fprintf(&b, " (bad eir: %v)", err)
		return b.String()
	}
	if eir.Name != "" {
		fmt.Fprintf(&b, " name %q", eir.Name)
	}
	if eir.Class != nil {
		fmt.Fprintf(&b, " class %s (%s)", formatClass(*eir.Class), eir.Class.Major())
	}
	if eir.TxPower != nil {
		fmt.Fprintf(&b, " tx %d", *eir.TxPower)
	}
	if len(eir.UUIDs) > 0 {
		fmt.Fprintf(&b, " uuids %d", len(eir.UUIDs))
	}
	return b.String()
}

// formatNotification renders an event the way monitor prints it.
func formatNotification(n subscription.Notification) string {
	prefix := fmt.Sprintf("%s %s %s", n.Timestamp.Format("15:04:05.000"), n.Index, n.Event.Code())
	switch e := n.Event.(type) {
	case *catalog.DeviceFound:
		return prefix + " " + formatDeviceFound(e)
	case *catalog.NewSettings:
		return fmt.Sprintf("%s %s", prefix, e.Settings)
	case *catalog.Discovering:
		return fmt.Sprintf("%s %s %s", prefix, e.Types, onOff(e.Discovering))
	case *catalog.DeviceConnected:
		return fmt.Sprintf("%s %s", prefix, e.Device)
	case *catalog.DeviceDisconnected:
		return fmt.Sprintf("%s %s reason %d", prefix, e.Device, e.Reason)
	case *catalog.IndexAdded, *catalog.IndexRemoved,
		*catalog.UnconfiguredIndexAdded, *catalog.UnconfiguredIndexRemoved:
		return prefix
	default:
		return fmt.Sprintf("%s %+v", prefix, n.Event)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
