package catalog

import (
	"github.com/google/uuid"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// SetPowered powers a controller on or off.
type SetPowered struct {
	controllerScope
	Enable bool
}

func (*SetPowered) Opcode() wire.Opcode              { return wire.OpSetPowered }
func (*SetPowered) NewReply() Reply                  { return &SettingsReply{} }
func (*SetPowered) Validate() error                  { return nil }
func (c *SetPowered) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetPowered) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetConnectable toggles page scan.
type SetConnectable struct {
	controllerScope
	Enable bool
}

func (*SetConnectable) Opcode() wire.Opcode              { return wire.OpSetConnectable }
func (*SetConnectable) NewReply() Reply                  { return &SettingsReply{} }
func (*SetConnectable) Validate() error                  { return nil }
func (c *SetConnectable) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetConnectable) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetFastConnectable toggles interlaced page scan.
type SetFastConnectable struct {
	controllerScope
	Enable bool
}

func (*SetFastConnectable) Opcode() wire.Opcode              { return wire.OpSetFastConnectable }
func (*SetFastConnectable) NewReply() Reply                  { return &SettingsReply{} }
func (*SetFastConnectable) Validate() error                  { return nil }
func (c *SetFastConnectable) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetFastConnectable) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetBondable toggles whether pairing creates a bond.
type SetBondable struct {
	controllerScope
	Enable bool
}

func (*SetBondable) Opcode() wire.Opcode              { return wire.OpSetBondable }
func (*SetBondable) NewReply() Reply                  { return &SettingsReply{} }
func (*SetBondable) Validate() error                  { return nil }
func (c *SetBondable) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetBondable) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetLinkSecurity toggles BR/EDR link level security (security mode 3).
type SetLinkSecurity struct {
	controllerScope
	Enable bool
}

func (*SetLinkSecurity) Opcode() wire.Opcode              { return wire.OpSetLinkSecurity }
func (*SetLinkSecurity) NewReply() Reply                  { return &SettingsReply{} }
func (*SetLinkSecurity) Validate() error                  { return nil }
func (c *SetLinkSecurity) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetLinkSecurity) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetSSP toggles Secure Simple Pairing.
type SetSSP struct {
	controllerScope
	Enable bool
}

func (*SetSSP) Opcode() wire.Opcode              { return wire.OpSetSSP }
func (*SetSSP) NewReply() Reply                  { return &SettingsReply{} }
func (*SetSSP) Validate() error                  { return nil }
func (c *SetSSP) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetSSP) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetHighSpeed toggles High Speed (AMP) support.
type SetHighSpeed struct {
	controllerScope
	Enable bool
}

func (*SetHighSpeed) Opcode() wire.Opcode              { return wire.OpSetHighSpeed }
func (*SetHighSpeed) NewReply() Reply                  { return &SettingsReply{} }
func (*SetHighSpeed) Validate() error                  { return nil }
func (c *SetHighSpeed) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetHighSpeed) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetLE toggles Low Energy support.
type SetLE struct {
	controllerScope
	Enable bool
}

func (*SetLE) Opcode() wire.Opcode              { return wire.OpSetLE }
func (*SetLE) NewReply() Reply                  { return &SettingsReply{} }
func (*SetLE) Validate() error                  { return nil }
func (c *SetLE) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetLE) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetBREDR toggles BR/EDR support on a dual-mode controller.
type SetBREDR struct {
	controllerScope
	Enable bool
}

func (*SetBREDR) Opcode() wire.Opcode              { return wire.OpSetBREDR }
func (*SetBREDR) NewReply() Reply                  { return &SettingsReply{} }
func (*SetBREDR) Validate() error                  { return nil }
func (c *SetBREDR) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetBREDR) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// SetWidebandSpeech toggles wideband speech support.
type SetWidebandSpeech struct {
	controllerScope
	Enable bool
}

func (*SetWidebandSpeech) Opcode() wire.Opcode              { return wire.OpSetWidebandSpeech }
func (*SetWidebandSpeech) NewReply() Reply                  { return &SettingsReply{} }
func (*SetWidebandSpeech) Validate() error                  { return nil }
func (c *SetWidebandSpeech) MarshalParams(w *wire.Writer)   { w.Bool(c.Enable) }
func (c *SetWidebandSpeech) UnmarshalParams(r *wire.Reader) { c.Enable = r.Bool() }

// Modes of SetAdvertising.
const (
	AdvertisingOff         uint8 = 0x00
	AdvertisingOn          uint8 = 0x01
	AdvertisingConnectable uint8 = 0x02
)

// Modes of SetSecureConnections.
const (
	SecureConnOff  uint8 = 0x00
	SecureConnOn   uint8 = 0x01
	SecureConnOnly uint8 = 0x02
)

// Modes of SetDebugKeys.
const (
	DebugKeysDiscard uint8 = 0x00
	DebugKeysKeep    uint8 = 0x01
	DebugKeysUse     uint8 = 0x02
)

// Modes of SetPrivacy.
const (
	PrivacyOff     uint8 = 0x00
	PrivacyOn      uint8 = 0x01
	PrivacyLimited uint8 = 0x02
)

func validMode(name string, mode uint8) error {
	if mode > 2 {
		return invalidf("%s mode %d", name, mode)
	}
	return nil
}

// SetAdvertising toggles LE advertising.
type SetAdvertising struct {
	controllerScope
	Mode uint8
}

func (*SetAdvertising) Opcode() wire.Opcode              { return wire.OpSetAdvertising }
func (*SetAdvertising) NewReply() Reply                  { return &SettingsReply{} }
func (c *SetAdvertising) Validate() error                { return validMode("advertising", c.Mode) }
func (c *SetAdvertising) MarshalParams(w *wire.Writer)   { w.U8(c.Mode) }
func (c *SetAdvertising) UnmarshalParams(r *wire.Reader) { c.Mode = r.U8() }

// SetSecureConnections selects Secure Connections support.
type SetSecureConnections struct {
	controllerScope
	Mode uint8
}

func (*SetSecureConnections) Opcode() wire.Opcode              { return wire.OpSetSecureConnections }
func (*SetSecureConnections) NewReply() Reply                  { return &SettingsReply{} }
func (c *SetSecureConnections) Validate() error                { return validMode("secure connections", c.Mode) }
func (c *SetSecureConnections) MarshalParams(w *wire.Writer)   { w.U8(c.Mode) }
func (c *SetSecureConnections) UnmarshalParams(r *wire.Reader) { c.Mode = r.U8() }

// SetDebugKeys selects how debug keys are handled.
type SetDebugKeys struct {
	controllerScope
	Mode uint8
}

func (*SetDebugKeys) Opcode() wire.Opcode              { return wire.OpSetDebugKeys }
func (*SetDebugKeys) NewReply() Reply                  { return &SettingsReply{} }
func (c *SetDebugKeys) Validate() error                { return validMode("debug keys", c.Mode) }
func (c *SetDebugKeys) MarshalParams(w *wire.Writer)   { w.U8(c.Mode) }
func (c *SetDebugKeys) UnmarshalParams(r *wire.Reader) { c.Mode = r.U8() }

// SetDiscoverable sets the discoverable mode. Timeout is in seconds; it
// must be zero when turning discoverability off and non-zero for limited
// mode.
type SetDiscoverable struct {
	controllerScope
	Mode    DiscoverableMode
	Timeout uint16
}

func (*SetDiscoverable) Opcode() wire.Opcode { return wire.OpSetDiscoverable }
func (*SetDiscoverable) NewReply() Reply     { return &SettingsReply{} }

func (c *SetDiscoverable) Validate() error {
	switch c.Mode {
	case DiscoverableOff:
		if c.Timeout != 0 {
			return invalidf("timeout %d with discoverable off", c.Timeout)
		}
	case DiscoverableGeneral:
	case DiscoverableLimited:
		if c.Timeout == 0 {
			return invalidf("limited discoverable needs a timeout")
		}
	default:
		return invalidf("discoverable mode %d", c.Mode)
	}
	return nil
}

func (c *SetDiscoverable) MarshalParams(w *wire.Writer) {
	w.U8(uint8(c.Mode))
	w.U16(c.Timeout)
}

func (c *SetDiscoverable) UnmarshalParams(r *wire.Reader) {
	c.Mode = DiscoverableMode(r.U8())
	c.Timeout = r.U16()
}

// SetDeviceClass sets the major and minor device class. The service
// class bits are derived by the kernel from registered UUIDs.
type SetDeviceClass struct {
	controllerScope
	Major wire.MajorClass
	Minor uint8
}

func (*SetDeviceClass) Opcode() wire.Opcode { return wire.OpSetDeviceClass }
func (*SetDeviceClass) NewReply() Reply     { return &ClassReply{} }

func (c *SetDeviceClass) Validate() error {
	if c.Major > 0x1F {
		return invalidf("major class 0x%02x", uint8(c.Major))
	}
	if c.Minor&0x03 != 0 {
		return invalidf("minor class 0x%02x has format bits set", c.Minor)
	}
	return nil
}

func (c *SetDeviceClass) MarshalParams(w *wire.Writer) {
	w.U8(uint8(c.Major))
	w.U8(c.Minor)
}

func (c *SetDeviceClass) UnmarshalParams(r *wire.Reader) {
	c.Major = wire.MajorClass(r.U8())
	c.Minor = r.U8()
}

// SetLocalName sets the complete and short local names.
type SetLocalName struct {
	controllerScope
	Name      string
	ShortName string
}

func (*SetLocalName) Opcode() wire.Opcode { return wire.OpSetLocalName }
func (*SetLocalName) NewReply() Reply     { return &LocalNameReply{} }

func (c *SetLocalName) Validate() error {
	if len(c.Name) > NameSize-1 {
		return invalidf("name is %d bytes, max %d", len(c.Name), NameSize-1)
	}
	if len(c.ShortName) > ShortNameSize-1 {
		return invalidf("short name is %d bytes, max %d", len(c.ShortName), ShortNameSize-1)
	}
	return nil
}

func (c *SetLocalName) MarshalParams(w *wire.Writer) {
	w.FixedString(c.Name, NameSize)
	w.FixedString(c.ShortName, ShortNameSize)
}

func (c *SetLocalName) UnmarshalParams(r *wire.Reader) {
	c.Name = r.FixedString(NameSize)
	c.ShortName = r.FixedString(ShortNameSize)
}

// AddUUID registers a service UUID for the EIR data. ServiceHint holds
// the class of device service bits (bits 13..23 shifted down by 16).
type AddUUID struct {
	controllerScope
	UUID        uuid.UUID
	ServiceHint uint8
}

func (*AddUUID) Opcode() wire.Opcode { return wire.OpAddUUID }
func (*AddUUID) NewReply() Reply     { return &ClassReply{} }

func (c *AddUUID) Validate() error {
	if c.UUID == uuid.Nil {
		return invalidf("nil uuid")
	}
	return nil
}

func (c *AddUUID) MarshalParams(w *wire.Writer) {
	w.UUID(c.UUID)
	w.U8(c.ServiceHint)
}

func (c *AddUUID) UnmarshalParams(r *wire.Reader) {
	c.UUID = r.UUID()
	c.ServiceHint = r.U8()
}

// RemoveUUID unregisters a service UUID. The nil UUID removes all.
type RemoveUUID struct {
	controllerScope
	UUID uuid.UUID
}

func (*RemoveUUID) Opcode() wire.Opcode              { return wire.OpRemoveUUID }
func (*RemoveUUID) NewReply() Reply                  { return &ClassReply{} }
func (*RemoveUUID) Validate() error                  { return nil }
func (c *RemoveUUID) MarshalParams(w *wire.Writer)   { w.UUID(c.UUID) }
func (c *RemoveUUID) UnmarshalParams(r *wire.Reader) { c.UUID = r.UUID() }

// SetIOCapability sets the IO capability used for pairing.
type SetIOCapability struct {
	controllerScope
	Capability IOCapability
}

func (*SetIOCapability) Opcode() wire.Opcode { return wire.OpSetIOCapability }
func (*SetIOCapability) NewReply() Reply     { return &EmptyReply{} }

func (c *SetIOCapability) Validate() error {
	if !c.Capability.Valid() {
		return invalidf("io capability %d", c.Capability)
	}
	return nil
}

func (c *SetIOCapability) MarshalParams(w *wire.Writer) { w.U8(uint8(c.Capability)) }

func (c *SetIOCapability) UnmarshalParams(r *wire.Reader) {
	c.Capability = IOCapability(r.U8())
}

// Sources of SetDeviceID.
const (
	DeviceIDDisabled  uint16 = 0x0000
	DeviceIDBluetooth uint16 = 0x0001
	DeviceIDUSB       uint16 = 0x0002
)

// SetDeviceID sets the Device ID record of the EIR data.
type SetDeviceID struct {
	controllerScope
	Source  uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

func (*SetDeviceID) Opcode() wire.Opcode { return wire.OpSetDeviceID }
func (*SetDeviceID) NewReply() Reply     { return &EmptyReply{} }

func (c *SetDeviceID) Validate() error {
	if c.Source > DeviceIDUSB {
		return invalidf("device id source %d", c.Source)
	}
	return nil
}

func (c *SetDeviceID) MarshalParams(w *wire.Writer) {
	w.U16(c.Source)
	w.U16(c.Vendor)
	w.U16(c.Product)
	w.U16(c.Version)
}

func (c *SetDeviceID) UnmarshalParams(r *wire.Reader) {
	c.Source = r.U16()
	c.Vendor = r.U16()
	c.Product = r.U16()
	c.Version = r.U16()
}

// SetStaticAddress sets the LE static random address. The zero address
// clears it.
type SetStaticAddress struct {
	controllerScope
	Address wire.Address
}

func (*SetStaticAddress) Opcode() wire.Opcode { return wire.OpSetStaticAddress }
func (*SetStaticAddress) NewReply() Reply     { return &SettingsReply{} }

func (c *SetStaticAddress) Validate() error {
	if c.Address.IsZero() {
		return nil
	}
	// Static random addresses have the two most significant bits set.
	if c.Address[5]&0xC0 != 0xC0 {
		return invalidf("%s is not a static random address", c.Address)
	}
	return nil
}

func (c *SetStaticAddress) MarshalParams(w *wire.Writer)   { w.Address(c.Address) }
func (c *SetStaticAddress) UnmarshalParams(r *wire.Reader) { c.Address = r.Address() }

// SetScanParameters sets the LE background scan interval and window in
// units of 0.625 ms.
type SetScanParameters struct {
	controllerScope
	Interval uint16
	Window   uint16
}

func (*SetScanParameters) Opcode() wire.Opcode { return wire.OpSetScanParameters }
func (*SetScanParameters) NewReply() Reply     { return &EmptyReply{} }

func (c *SetScanParameters) Validate() error {
	if c.Interval < 0x0004 || c.Interval > 0x4000 {
		return invalidf("scan interval 0x%04x", c.Interval)
	}
	if c.Window < 0x0004 || c.Window > 0x4000 {
		return invalidf("scan window 0x%04x", c.Window)
	}
	if c.Window > c.Interval {
		return invalidf("scan window 0x%04x exceeds interval 0x%04x", c.Window, c.Interval)
	}
	return nil
}

func (c *SetScanParameters) MarshalParams(w *wire.Writer) {
	w.U16(c.Interval)
	w.U16(c.Window)
}

func (c *SetScanParameters) UnmarshalParams(r *wire.Reader) {
	c.Interval = r.U16()
	c.Window = r.U16()
}

// SetPrivacy toggles LE privacy with the local identity resolving key.
type SetPrivacy struct {
	controllerScope
	Mode uint8
	IRK  Key
}

func (*SetPrivacy) Opcode() wire.Opcode { return wire.OpSetPrivacy }
func (*SetPrivacy) NewReply() Reply     { return &SettingsReply{} }
func (c *SetPrivacy) Validate() error   { return validMode("privacy", c.Mode) }

func (c *SetPrivacy) MarshalParams(w *wire.Writer) {
	w.U8(c.Mode)
	w.Raw(c.IRK[:])
}

func (c *SetPrivacy) UnmarshalParams(r *wire.Reader) {
	c.Mode = r.U8()
	r.Fill(c.IRK[:])
}

// SetAppearance sets the LE appearance value.
type SetAppearance struct {
	controllerScope
	Appearance uint16
}

func (*SetAppearance) Opcode() wire.Opcode              { return wire.OpSetAppearance }
func (*SetAppearance) NewReply() Reply                  { return &EmptyReply{} }
func (*SetAppearance) Validate() error                  { return nil }
func (c *SetAppearance) MarshalParams(w *wire.Writer)   { w.U16(c.Appearance) }
func (c *SetAppearance) UnmarshalParams(r *wire.Reader) { c.Appearance = r.U16() }

// SetPhyConfiguration selects the PHYs the controller may use.
type SetPhyConfiguration struct {
	controllerScope
	Selected uint32
}

func (*SetPhyConfiguration) Opcode() wire.Opcode              { return wire.OpSetPhyConfiguration }
func (*SetPhyConfiguration) NewReply() Reply                  { return &EmptyReply{} }
func (*SetPhyConfiguration) Validate() error                  { return nil }
func (c *SetPhyConfiguration) MarshalParams(w *wire.Writer)   { w.U32(c.Selected) }
func (c *SetPhyConfiguration) UnmarshalParams(r *wire.Reader) { c.Selected = r.U32() }

// SetExternalConfig marks an unconfigured controller as externally
// configured.
type SetExternalConfig struct {
	controllerScope
	Configured bool
}

func (*SetExternalConfig) Opcode() wire.Opcode              { return wire.OpSetExternalConfig }
func (*SetExternalConfig) NewReply() Reply                  { return &MissingOptionsReply{} }
func (*SetExternalConfig) Validate() error                  { return nil }
func (c *SetExternalConfig) MarshalParams(w *wire.Writer)   { w.Bool(c.Configured) }
func (c *SetExternalConfig) UnmarshalParams(r *wire.Reader) { c.Configured = r.Bool() }

// SetPublicAddress programs the public address of an unconfigured
// controller.
type SetPublicAddress struct {
	controllerScope
	Address wire.Address
}

func (*SetPublicAddress) Opcode() wire.Opcode { return wire.OpSetPublicAddress }
func (*SetPublicAddress) NewReply() Reply     { return &MissingOptionsReply{} }

func (c *SetPublicAddress) Validate() error {
	if c.Address.IsZero() {
		return invalidf("public address must not be zero")
	}
	return nil
}

func (c *SetPublicAddress) MarshalParams(w *wire.Writer)   { w.Address(c.Address) }
func (c *SetPublicAddress) UnmarshalParams(r *wire.Reader) { c.Address = r.Address() }
