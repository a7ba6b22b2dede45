package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// DiscoverableMode is the mode argument of SetDiscoverable.
type DiscoverableMode uint8

const (
	// DiscoverableOff disables discoverability.
	DiscoverableOff DiscoverableMode = 0x00
	// DiscoverableGeneral enables general discoverability.
	DiscoverableGeneral DiscoverableMode = 0x01
	// DiscoverableLimited enables limited discoverability; it needs a timeout.
	DiscoverableLimited DiscoverableMode = 0x02
)

// String returns the mode name.
func (m DiscoverableMode) String() string {
	switch m {
	case DiscoverableOff:
		return "OFF"
	case DiscoverableGeneral:
		return "GENERAL"
	case DiscoverableLimited:
		return "LIMITED"
	default:
		return "UNKNOWN"
	}
}

// IOCapability is the local input/output capability used for pairing.
type IOCapability uint8

// IO capabilities.
const (
	IOCapDisplayOnly     IOCapability = 0x00
	IOCapDisplayYesNo    IOCapability = 0x01
	IOCapKeyboardOnly    IOCapability = 0x02
	IOCapNoInputNoOutput IOCapability = 0x03
	IOCapKeyboardDisplay IOCapability = 0x04
)

// String returns the capability name.
func (c IOCapability) String() string {
	switch c {
	case IOCapDisplayOnly:
		return "DisplayOnly"
	case IOCapDisplayYesNo:
		return "DisplayYesNo"
	case IOCapKeyboardOnly:
		return "KeyboardOnly"
	case IOCapNoInputNoOutput:
		return "NoInputNoOutput"
	case IOCapKeyboardDisplay:
		return "KeyboardDisplay"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether c is a defined capability.
func (c IOCapability) Valid() bool {
	return c <= IOCapKeyboardDisplay
}

// DeviceAction is the auto-connect policy of AddDevice.
type DeviceAction uint8

const (
	// ActionBackgroundScan reports the device when it is seen.
	ActionBackgroundScan DeviceAction = 0x00
	// ActionAllowIncoming allows the device to connect.
	ActionAllowIncoming DeviceAction = 0x01
	// ActionAutoConnect connects to the device whenever it is seen.
	ActionAutoConnect DeviceAction = 0x02
)

// String returns the action name.
func (a DeviceAction) String() string {
	switch a {
	case ActionBackgroundScan:
		return "BACKGROUND_SCAN"
	case ActionAllowIncoming:
		return "ALLOW_INCOMING"
	case ActionAutoConnect:
		return "AUTO_CONNECT"
	default:
		return "UNKNOWN"
	}
}

// DisconnectReason is the reason carried by DeviceDisconnected.
type DisconnectReason uint8

// Disconnect reasons.
const (
	ReasonUnspecified       DisconnectReason = 0x00
	ReasonConnectionTimeout DisconnectReason = 0x01
	ReasonLocalHost         DisconnectReason = 0x02
	ReasonRemote            DisconnectReason = 0x03
	ReasonAuthFailure       DisconnectReason = 0x04
	ReasonLocalHostSuspend  DisconnectReason = 0x05
)

// String returns the reason name.
func (r DisconnectReason) String() string {
	switch r {
	case ReasonUnspecified:
		return "UNSPECIFIED"
	case ReasonConnectionTimeout:
		return "CONNECTION_TIMEOUT"
	case ReasonLocalHost:
		return "LOCAL_HOST"
	case ReasonRemote:
		return "REMOTE"
	case ReasonAuthFailure:
		return "AUTH_FAILURE"
	case ReasonLocalHostSuspend:
		return "LOCAL_HOST_SUSPEND"
	default:
		return "UNKNOWN"
	}
}

// Device found flags.
const (
	FoundConfirmName    uint32 = 1 << 0
	FoundLegacyPairing  uint32 = 1 << 1
	FoundNotConnectable uint32 = 1 << 2
)

// Key sizes.
const (
	KeySize       = 16
	MaxPINSize    = 16
	MaxPasskey    = 999999
	NameSize      = 249
	ShortNameSize = 11
)

// Key is a 128-bit key value.
type Key [KeySize]byte

// LinkKey is a BR/EDR link key as loaded by LoadLinkKeys and reported by
// NewLinkKey.
type LinkKey struct {
	Device    wire.DeviceAddress
	Type      uint8
	Value     Key
	PINLength uint8
}

// linkKeySize is the encoded size of a LinkKey.
const linkKeySize = wire.DeviceAddressSize + 1 + KeySize + 1

func (k *LinkKey) marshal(w *wire.Writer) {
	w.DeviceAddress(k.Device)
	w.U8(k.Type)
	w.Raw(k.Value[:])
	w.U8(k.PINLength)
}

func (k *LinkKey) unmarshal(r *wire.Reader) {
	k.Device = r.DeviceAddress()
	k.Type = r.U8()
	r.Fill(k.Value[:])
	k.PINLength = r.U8()
}

// LongTermKey is an LE long term key.
type LongTermKey struct {
	Device         wire.DeviceAddress
	Type           uint8
	Central        bool
	EncryptionSize uint8
	EDiv           uint16
	Rand           uint64
	Value          Key
}

// longTermKeySize is the encoded size of a LongTermKey.
const longTermKeySize = wire.DeviceAddressSize + 1 + 1 + 1 + 2 + 8 + KeySize

func (k *LongTermKey) marshal(w *wire.Writer) {
	w.DeviceAddress(k.Device)
	w.U8(k.Type)
	w.Bool(k.Central)
	w.U8(k.EncryptionSize)
	w.U16(k.EDiv)
	w.U64(k.Rand)
	w.Raw(k.Value[:])
}

func (k *LongTermKey) unmarshal(r *wire.Reader) {
	k.Device = r.DeviceAddress()
	k.Type = r.U8()
	k.Central = r.Bool()
	k.EncryptionSize = r.U8()
	k.EDiv = r.U16()
	k.Rand = r.U64()
	r.Fill(k.Value[:])
}

// IdentityResolvingKey is an LE identity resolving key.
type IdentityResolvingKey struct {
	Device wire.DeviceAddress
	Value  Key
}

// identityResolvingKeySize is the encoded size of an IdentityResolvingKey.
const identityResolvingKeySize = wire.DeviceAddressSize + KeySize

func (k *IdentityResolvingKey) marshal(w *wire.Writer) {
	w.DeviceAddress(k.Device)
	w.Raw(k.Value[:])
}

func (k *IdentityResolvingKey) unmarshal(r *wire.Reader) {
	k.Device = r.DeviceAddress()
	r.Fill(k.Value[:])
}

// SignatureResolvingKey is an LE connection signature resolving key.
type SignatureResolvingKey struct {
	Device wire.DeviceAddress
	Type   uint8
	Value  Key
}

func (k *SignatureResolvingKey) marshal(w *wire.Writer) {
	w.DeviceAddress(k.Device)
	w.U8(k.Type)
	w.Raw(k.Value[:])
}

func (k *SignatureResolvingKey) unmarshal(r *wire.Reader) {
	k.Device = r.DeviceAddress()
	k.Type = r.U8()
	r.Fill(k.Value[:])
}

// ConnectionParameter is a set of preferred LE connection parameters.
type ConnectionParameter struct {
	Device      wire.DeviceAddress
	MinInterval uint16
	MaxInterval uint16
	Latency     uint16
	Timeout     uint16
}

// connectionParameterSize is the encoded size of a ConnectionParameter.
const connectionParameterSize = wire.DeviceAddressSize + 8

func (p *ConnectionParameter) marshal(w *wire.Writer) {
	w.DeviceAddress(p.Device)
	w.U16(p.MinInterval)
	w.U16(p.MaxInterval)
	w.U16(p.Latency)
	w.U16(p.Timeout)
}

func (p *ConnectionParameter) unmarshal(r *wire.Reader) {
	p.Device = r.DeviceAddress()
	p.MinInterval = r.U16()
	p.MaxInterval = r.U16()
	p.Latency = r.U16()
	p.Timeout = r.U16()
}

// BlockedKey identifies a key value the kernel must refuse.
type BlockedKey struct {
	Type  uint8
	Value Key
}

// blockedKeySize is the encoded size of a BlockedKey.
const blockedKeySize = 1 + KeySize

// ExtendedIndex is one entry of the extended controller index list.
type ExtendedIndex struct {
	Index wire.ControllerIndex
	Type  uint8
	Bus   uint8
}

// Controller types of ExtendedIndex.
const (
	ControllerPrimary      uint8 = 0x00
	ControllerUnconfigured uint8 = 0x01
	ControllerAMP          uint8 = 0x02
)

// OOBData is the out-of-band pairing data for P-192 and optionally P-256.
type OOBData struct {
	Hash192 Key
	Rand192 Key

	// HasP256 reports whether the P-256 values are present.
	HasP256 bool
	Hash256 Key
	Rand256 Key
}

func (d *OOBData) marshal(w *wire.Writer) {
	w.Raw(d.Hash192[:])
	w.Raw(d.Rand192[:])
	if d.HasP256 {
		w.Raw(d.Hash256[:])
		w.Raw(d.Rand256[:])
	}
}

func (d *OOBData) unmarshal(r *wire.Reader) {
	r.Fill(d.Hash192[:])
	r.Fill(d.Rand192[:])
	d.HasP256 = r.Len() > 0
	if d.HasP256 {
		r.Fill(d.Hash256[:])
		r.Fill(d.Rand256[:])
	}
}
