package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// switchArg is the argument of on/off commands.
type switchArg uint8

const (
	switchOff switchArg = iota
	switchOn
	switchToggle
)

func parseSwitch(s string) (switchArg, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1":
		return switchOn, nil
	case "off", "no", "false", "0":
		return switchOff, nil
	case "toggle":
		return switchToggle, nil
	default:
		return 0, fmt.Errorf("invalid argument %q (want on, off or toggle)", s)
	}
}

func parseAddressType(s string) (wire.AddressType, error) {
	switch strings.ToLower(s) {
	case "bredr", "br/edr", "classic":
		return wire.AddressBREDR, nil
	case "le", "le-public", "public":
		return wire.AddressLEPublic, nil
	case "le-random", "random":
		return wire.AddressLERandom, nil
	default:
		return 0, fmt.Errorf("invalid address type %q (want bredr, le-public or le-random)", s)
	}
}

func parseDevice(addr, typ string) (wire.DeviceAddress, error) {
	a, err := wire.ParseAddress(addr)
	if err != nil {
		return wire.DeviceAddress{}, err
	}
	t, err := parseAddressType(typ)
	if err != nil {
		return wire.DeviceAddress{}, err
	}
	return wire.DeviceAddress{Address: a, Type: t}, nil
}

var ioCapabilities = map[string]catalog.IOCapability{
	"display":         catalog.IOCapDisplayOnly,
	"displayyesno":    catalog.IOCapDisplayYesNo,
	"keyboard":        catalog.IOCapKeyboardOnly,
	"none":            catalog.IOCapNoInputNoOutput,
	"keyboarddisplay": catalog.IOCapKeyboardDisplay,
}

func parseCapability(s string) (catalog.IOCapability, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	if c, ok := ioCapabilities[key]; ok {
		return c, nil
	}
	for c := catalog.IOCapDisplayOnly; c.Valid(); c++ {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid io capability %q", s)
}

// parseMajor accepts a major class name or number.
func parseMajor(s string) (wire.MajorClass, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		if n > 0x1F {
			return 0, fmt.Errorf("major class %d out of range", n)
		}
		return wire.MajorClass(n), nil
	}
	for m := wire.MajorClass(0); m <= 0x1F; m++ {
		if name := m.String(); name != "Reserved" && strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown major class %q", s)
}

func parseMinor(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || n > 0x3F {
		return 0, fmt.Errorf("invalid minor class %q", s)
	}
	return uint8(n), nil
}

func discoveryTypes(le, bredr bool) wire.AddressTypes {
	switch {
	case le && !bredr:
		return wire.DiscoverLE
	case bredr && !le:
		return wire.DiscoverBREDR
	default:
		return wire.DiscoverAll
	}
}
