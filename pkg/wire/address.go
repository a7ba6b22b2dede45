package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a Bluetooth device address in wire order (least
// significant byte first).
type Address [6]byte

// ParseAddress parses the conventional "XX:XX:XX:XX:XX:XX" form, most
// significant byte first.
func ParseAddress(s string) (Address, error) {
	var a Address
	parts := strings.Split(s, ":")
	if len(parts) != len(a) {
		return a, fmt.Errorf("invalid address %q: want 6 octets", s)
	}
	for i, p := range parts {
		if len(p) != 2 {
			return a, fmt.Errorf("invalid address %q: octet %q", s, p)
		}
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return a, fmt.Errorf("invalid address %q: %w", s, err)
		}
		a[len(a)-1-i] = byte(v)
	}
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the address most significant byte first.
func (a Address) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[5], a[4], a[3], a[2], a[1], a[0])
}

// IsZero reports whether the address is 00:00:00:00:00:00.
func (a Address) IsZero() bool {
	return a == Address{}
}

// AddressType is the type of a device address.
type AddressType uint8

const (
	// AddressBREDR is a BR/EDR (classic) address.
	AddressBREDR AddressType = 0
	// AddressLEPublic is an LE public address.
	AddressLEPublic AddressType = 1
	// AddressLERandom is an LE random address.
	AddressLERandom AddressType = 2
)

// String returns the address type name.
func (t AddressType) String() string {
	switch t {
	case AddressBREDR:
		return "BR/EDR"
	case AddressLEPublic:
		return "LE Public"
	case AddressLERandom:
		return "LE Random"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is one of the defined address types.
func (t AddressType) Valid() bool {
	return t <= AddressLERandom
}

// AddressTypes is the bitmask used by discovery commands to select
// which transports to scan.
type AddressTypes uint8

// Discovery address type bits.
const (
	DiscoverBREDR    AddressTypes = 1 << 0
	DiscoverLEPublic AddressTypes = 1 << 1
	DiscoverLERandom AddressTypes = 1 << 2

	// DiscoverLE selects both LE address types.
	DiscoverLE = DiscoverLEPublic | DiscoverLERandom

	// DiscoverAll selects every transport.
	DiscoverAll = DiscoverBREDR | DiscoverLE
)

// Valid reports whether the mask selects at least one known transport and
// no unknown bits.
func (t AddressTypes) Valid() bool {
	return t != 0 && t&^DiscoverAll == 0
}

// String returns the selected transports separated by spaces.
func (t AddressTypes) String() string {
	var parts []string
	if t&DiscoverBREDR != 0 {
		parts = append(parts, "BR/EDR")
	}
	if t&DiscoverLEPublic != 0 {
		parts = append(parts, "LE-Public")
	}
	if t&DiscoverLERandom != 0 {
		parts = append(parts, "LE-Random")
	}
	return strings.Join(parts, " ")
}

// DeviceAddress is an address together with its type, the unit most
// commands and events use to refer to a remote device.
type DeviceAddress struct {
	Address Address
	Type    AddressType
}

// String returns "ADDR (type)".
func (d DeviceAddress) String() string {
	return fmt.Sprintf("%s (%s)", d.Address, d.Type)
}

// DeviceAddressSize is the encoded size of a DeviceAddress.
const DeviceAddressSize = 7

// DeviceAddress reads an address followed by its type.
func (r *Reader) DeviceAddress() DeviceAddress {
	a := r.Address()
	return DeviceAddress{Address: a, Type: AddressType(r.U8())}
}

// DeviceAddress writes an address followed by its type.
func (w *Writer) DeviceAddress(d DeviceAddress) {
	w.Address(d.Address)
	w.U8(uint8(d.Type))
}
