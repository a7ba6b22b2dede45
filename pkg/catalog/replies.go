package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// EmptyReply is the reply of commands without return parameters.
type EmptyReply struct{}

func (*EmptyReply) MarshalParams(*wire.Writer)   {}
func (*EmptyReply) UnmarshalParams(*wire.Reader) {}

// SettingsReply carries the current settings returned by the Set* family.
type SettingsReply struct {
	Settings wire.Settings
}

func (r *SettingsReply) MarshalParams(w *wire.Writer) { w.U32(uint32(r.Settings)) }

func (r *SettingsReply) UnmarshalParams(rd *wire.Reader) {
	r.Settings = wire.Settings(rd.U32())
}

// AddressReply echoes the device address a command referred to.
type AddressReply struct {
	Device wire.DeviceAddress
}

func (r *AddressReply) MarshalParams(w *wire.Writer)    { w.DeviceAddress(r.Device) }
func (r *AddressReply) UnmarshalParams(rd *wire.Reader) { r.Device = rd.DeviceAddress() }

// ClassReply carries the class of device after a class or UUID change.
type ClassReply struct {
	Class wire.ClassOfDevice
}

func (r *ClassReply) MarshalParams(w *wire.Writer)    { w.Class(r.Class) }
func (r *ClassReply) UnmarshalParams(rd *wire.Reader) { r.Class = rd.Class() }

// LocalNameReply carries the complete and short local names.
type LocalNameReply struct {
	Name      string
	ShortName string
}

func (r *LocalNameReply) MarshalParams(w *wire.Writer) {
	w.FixedString(r.Name, NameSize)
	w.FixedString(r.ShortName, ShortNameSize)
}

func (r *LocalNameReply) UnmarshalParams(rd *wire.Reader) {
	r.Name = rd.FixedString(NameSize)
	r.ShortName = rd.FixedString(ShortNameSize)
}

// DiscoveryTypeReply echoes the address types of a discovery command.
type DiscoveryTypeReply struct {
	Types wire.AddressTypes
}

func (r *DiscoveryTypeReply) MarshalParams(w *wire.Writer) { w.U8(uint8(r.Types)) }

func (r *DiscoveryTypeReply) UnmarshalParams(rd *wire.Reader) {
	r.Types = wire.AddressTypes(rd.U8())
}

// InstanceReply carries an advertising instance number.
type InstanceReply struct {
	Instance uint8
}

func (r *InstanceReply) MarshalParams(w *wire.Writer)    { w.U8(r.Instance) }
func (r *InstanceReply) UnmarshalParams(rd *wire.Reader) { r.Instance = rd.U8() }

// MissingOptionsReply lists configuration options the controller still
// needs before it can be used.
type MissingOptionsReply struct {
	Missing uint32
}

func (r *MissingOptionsReply) MarshalParams(w *wire.Writer)    { w.U32(r.Missing) }
func (r *MissingOptionsReply) UnmarshalParams(rd *wire.Reader) { r.Missing = rd.U32() }

// VersionReply is the reply of ReadVersionInfo.
type VersionReply struct {
	Version  uint8
	Revision uint16
}

func (r *VersionReply) MarshalParams(w *wire.Writer) {
	w.U8(r.Version)
	w.U16(r.Revision)
}

func (r *VersionReply) UnmarshalParams(rd *wire.Reader) {
	r.Version = rd.U8()
	r.Revision = rd.U16()
}

// SupportedCommandsReply is the reply of ReadSupportedCommands.
type SupportedCommandsReply struct {
	Commands []wire.Opcode
	Events   []wire.EventCode
}

func (r *SupportedCommandsReply) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(r.Commands)))
	w.U16(uint16(len(r.Events)))
	for _, op := range r.Commands {
		w.U16(uint16(op))
	}
	for _, ev := range r.Events {
		w.U16(uint16(ev))
	}
}

func (r *SupportedCommandsReply) UnmarshalParams(rd *wire.Reader) {
	nc := int(rd.U16())
	ne := int(rd.U16())
	if (nc+ne)*2 > rd.Len() {
		rd.Fail(wire.ErrTruncatedFrame)
		return
	}
	r.Commands = make([]wire.Opcode, nc)
	for i := range r.Commands {
		r.Commands[i] = wire.Opcode(rd.U16())
	}
	r.Events = make([]wire.EventCode, ne)
	for i := range r.Events {
		r.Events[i] = wire.EventCode(rd.U16())
	}
}

// IndexListReply is the reply of ReadControllerIndexList and
// ReadUnconfiguredIndexList.
type IndexListReply struct {
	Indexes []wire.ControllerIndex
}

func (r *IndexListReply) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(r.Indexes)))
	for _, idx := range r.Indexes {
		w.U16(uint16(idx))
	}
}

func (r *IndexListReply) UnmarshalParams(rd *wire.Reader) {
	n := rd.Count(2)
	r.Indexes = make([]wire.ControllerIndex, n)
	for i := range r.Indexes {
		r.Indexes[i] = wire.ControllerIndex(rd.U16())
	}
}

// ControllerInfoReply is the reply of ReadControllerInfo.
type ControllerInfoReply struct {
	Address           wire.Address
	Version           uint8
	Manufacturer      uint16
	SupportedSettings wire.Settings
	CurrentSettings   wire.Settings
	Class             wire.ClassOfDevice
	Name              string
	ShortName         string
}

func (r *ControllerInfoReply) MarshalParams(w *wire.Writer) {
	w.Address(r.Address)
	w.U8(r.Version)
	w.U16(r.Manufacturer)
	w.U32(uint32(r.SupportedSettings))
	w.U32(uint32(r.CurrentSettings))
	w.Class(r.Class)
	w.FixedString(r.Name, NameSize)
	w.FixedString(r.ShortName, ShortNameSize)
}

func (r *ControllerInfoReply) UnmarshalParams(rd *wire.Reader) {
	r.Address = rd.Address()
	r.Version = rd.U8()
	r.Manufacturer = rd.U16()
	r.SupportedSettings = wire.Settings(rd.U32())
	r.CurrentSettings = wire.Settings(rd.U32())
	r.Class = rd.Class()
	r.Name = rd.FixedString(NameSize)
	r.ShortName = rd.FixedString(ShortNameSize)
}

// ControllerConfigInfoReply is the reply of ReadControllerConfigInfo.
type ControllerConfigInfoReply struct {
	Manufacturer     uint16
	SupportedOptions uint32
	MissingOptions   uint32
}

func (r *ControllerConfigInfoReply) MarshalParams(w *wire.Writer) {
	w.U16(r.Manufacturer)
	w.U32(r.SupportedOptions)
	w.U32(r.MissingOptions)
}

func (r *ControllerConfigInfoReply) UnmarshalParams(rd *wire.Reader) {
	r.Manufacturer = rd.U16()
	r.SupportedOptions = rd.U32()
	r.MissingOptions = rd.U32()
}

// ExtendedIndexListReply is the reply of ReadExtendedIndexList.
type ExtendedIndexListReply struct {
	Entries []ExtendedIndex
}

func (r *ExtendedIndexListReply) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(r.Entries)))
	for _, e := range r.Entries {
		w.U16(uint16(e.Index))
		w.U8(e.Type)
		w.U8(e.Bus)
	}
}

func (r *ExtendedIndexListReply) UnmarshalParams(rd *wire.Reader) {
	n := rd.Count(4)
	r.Entries = make([]ExtendedIndex, n)
	for i := range r.Entries {
		r.Entries[i] = ExtendedIndex{
			Index: wire.ControllerIndex(rd.U16()),
			Type:  rd.U8(),
			Bus:   rd.U8(),
		}
	}
}

// ExtendedControllerInfoReply is the reply of ReadExtendedControllerInfo.
// Name, short name, class and appearance are carried in EIR.
type ExtendedControllerInfoReply struct {
	Address           wire.Address
	Version           uint8
	Manufacturer      uint16
	SupportedSettings wire.Settings
	CurrentSettings   wire.Settings
	EIR               []byte
}

func (r *ExtendedControllerInfoReply) MarshalParams(w *wire.Writer) {
	w.Address(r.Address)
	w.U8(r.Version)
	w.U16(r.Manufacturer)
	w.U32(uint32(r.SupportedSettings))
	w.U32(uint32(r.CurrentSettings))
	w.U16(uint16(len(r.EIR)))
	w.Raw(r.EIR)
}

func (r *ExtendedControllerInfoReply) UnmarshalParams(rd *wire.Reader) {
	r.Address = rd.Address()
	r.Version = rd.U8()
	r.Manufacturer = rd.U16()
	r.SupportedSettings = wire.Settings(rd.U32())
	r.CurrentSettings = wire.Settings(rd.U32())
	r.EIR = rd.Raw(int(rd.U16()))
}

// ConnectionsReply is the reply of GetConnections.
type ConnectionsReply struct {
	Devices []wire.DeviceAddress
}

func (r *ConnectionsReply) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(r.Devices)))
	for _, d := range r.Devices {
		w.DeviceAddress(d)
	}
}

func (r *ConnectionsReply) UnmarshalParams(rd *wire.Reader) {
	n := rd.Count(wire.DeviceAddressSize)
	r.Devices = make([]wire.DeviceAddress, n)
	for i := range r.Devices {
		r.Devices[i] = rd.DeviceAddress()
	}
}

// ConnectionInfoReply is the reply of GetConnectionInfo.
type ConnectionInfoReply struct {
	Device     wire.DeviceAddress
	RSSI       int8
	TxPower    int8
	MaxTxPower int8
}

func (r *ConnectionInfoReply) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(r.Device)
	w.I8(r.RSSI)
	w.I8(r.TxPower)
	w.I8(r.MaxTxPower)
}

func (r *ConnectionInfoReply) UnmarshalParams(rd *wire.Reader) {
	r.Device = rd.DeviceAddress()
	r.RSSI = rd.I8()
	r.TxPower = rd.I8()
	r.MaxTxPower = rd.I8()
}

// ClockInfoReply is the reply of GetClockInfo.
type ClockInfoReply struct {
	Device       wire.DeviceAddress
	LocalClock   uint32
	PiconetClock uint32
	Accuracy     uint16
}

func (r *ClockInfoReply) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(r.Device)
	w.U32(r.LocalClock)
	w.U32(r.PiconetClock)
	w.U16(r.Accuracy)
}

func (r *ClockInfoReply) UnmarshalParams(rd *wire.Reader) {
	r.Device = rd.DeviceAddress()
	r.LocalClock = rd.U32()
	r.PiconetClock = rd.U32()
	r.Accuracy = rd.U16()
}

// PhyConfigurationReply is the reply of GetPhyConfiguration.
type PhyConfigurationReply struct {
	Supported    uint32
	Configurable uint32
	Selected     uint32
}

func (r *PhyConfigurationReply) MarshalParams(w *wire.Writer) {
	w.U32(r.Supported)
	w.U32(r.Configurable)
	w.U32(r.Selected)
}

func (r *PhyConfigurationReply) UnmarshalParams(rd *wire.Reader) {
	r.Supported = rd.U32()
	r.Configurable = rd.U32()
	r.Selected = rd.U32()
}

// LocalOOBDataReply is the reply of ReadLocalOOBData.
type LocalOOBDataReply struct {
	Data OOBData
}

func (r *LocalOOBDataReply) MarshalParams(w *wire.Writer)    { r.Data.marshal(w) }
func (r *LocalOOBDataReply) UnmarshalParams(rd *wire.Reader) { r.Data.unmarshal(rd) }

// LocalOOBExtendedDataReply is the reply of ReadLocalOOBExtendedData.
type LocalOOBExtendedDataReply struct {
	Types wire.AddressTypes
	EIR   []byte
}

func (r *LocalOOBExtendedDataReply) MarshalParams(w *wire.Writer) {
	w.U8(uint8(r.Types))
	w.U16(uint16(len(r.EIR)))
	w.Raw(r.EIR)
}

func (r *LocalOOBExtendedDataReply) UnmarshalParams(rd *wire.Reader) {
	r.Types = wire.AddressTypes(rd.U8())
	r.EIR = rd.Raw(int(rd.U16()))
}

// AdvertisingFeaturesReply is the reply of ReadAdvertisingFeatures.
type AdvertisingFeaturesReply struct {
	SupportedFlags  uint32
	MaxAdvDataLen   uint8
	MaxScanRespLen  uint8
	MaxInstances    uint8
	ActiveInstances []uint8
}

func (r *AdvertisingFeaturesReply) MarshalParams(w *wire.Writer) {
	w.U32(r.SupportedFlags)
	w.U8(r.MaxAdvDataLen)
	w.U8(r.MaxScanRespLen)
	w.U8(r.MaxInstances)
	w.U8(uint8(len(r.ActiveInstances)))
	w.Raw(r.ActiveInstances)
}

func (r *AdvertisingFeaturesReply) UnmarshalParams(rd *wire.Reader) {
	r.SupportedFlags = rd.U32()
	r.MaxAdvDataLen = rd.U8()
	r.MaxScanRespLen = rd.U8()
	r.MaxInstances = rd.U8()
	r.ActiveInstances = rd.Raw(int(rd.U8()))
}

// AdvertisingSizeReply is the reply of GetAdvertisingSizeInfo.
type AdvertisingSizeReply struct {
	Instance       uint8
	Flags          uint32
	MaxAdvDataLen  uint8
	MaxScanRespLen uint8
}

func (r *AdvertisingSizeReply) MarshalParams(w *wire.Writer) {
	w.U8(r.Instance)
	w.U32(r.Flags)
	w.U8(r.MaxAdvDataLen)
	w.U8(r.MaxScanRespLen)
}

func (r *AdvertisingSizeReply) UnmarshalParams(rd *wire.Reader) {
	r.Instance = rd.U8()
	r.Flags = rd.U32()
	r.MaxAdvDataLen = rd.U8()
	r.MaxScanRespLen = rd.U8()
}

var (
	_ Reply = (*EmptyReply)(nil)
	_ Reply = (*SettingsReply)(nil)
	_ Reply = (*AddressReply)(nil)
	_ Reply = (*ClassReply)(nil)
	_ Reply = (*LocalNameReply)(nil)
	_ Reply = (*DiscoveryTypeReply)(nil)
	_ Reply = (*InstanceReply)(nil)
	_ Reply = (*MissingOptionsReply)(nil)
	_ Reply = (*VersionReply)(nil)
	_ Reply = (*SupportedCommandsReply)(nil)
	_ Reply = (*IndexListReply)(nil)
	_ Reply = (*ControllerInfoReply)(nil)
	_ Reply = (*ControllerConfigInfoReply)(nil)
	_ Reply = (*ExtendedIndexListReply)(nil)
	_ Reply = (*ExtendedControllerInfoReply)(nil)
	_ Reply = (*ConnectionsReply)(nil)
	_ Reply = (*ConnectionInfoReply)(nil)
	_ Reply = (*ClockInfoReply)(nil)
	_ Reply = (*PhyConfigurationReply)(nil)
	_ Reply = (*LocalOOBDataReply)(nil)
	_ Reply = (*LocalOOBExtendedDataReply)(nil)
	_ Reply = (*AdvertisingFeaturesReply)(nil)
	_ Reply = (*AdvertisingSizeReply)(nil)
)
