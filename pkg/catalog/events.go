package catalog

import (
	"github.com/google/uuid"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// CommandComplete reports that a command finished. Params holds the raw
// return parameters; they are decoded with the command's reply type.
type CommandComplete struct {
	Opcode wire.Opcode
	Status wire.Status
	Params []byte
}

func (*CommandComplete) Code() wire.EventCode { return wire.EvCommandComplete }

func (e *CommandComplete) MarshalParams(w *wire.Writer) {
	w.U16(uint16(e.Opcode))
	w.U8(uint8(e.Status))
	w.Raw(e.Params)
}

func (e *CommandComplete) UnmarshalParams(r *wire.Reader) {
	e.Opcode = wire.Opcode(r.U16())
	e.Status = wire.Status(r.U8())
	e.Params = r.Rest()
}

// CommandStatus reports a command status without return parameters.
type CommandStatus struct {
	Opcode wire.Opcode
	Status wire.Status
}

func (*CommandStatus) Code() wire.EventCode { return wire.EvCommandStatus }

func (e *CommandStatus) MarshalParams(w *wire.Writer) {
	w.U16(uint16(e.Opcode))
	w.U8(uint8(e.Status))
}

func (e *CommandStatus) UnmarshalParams(r *wire.Reader) {
	e.Opcode = wire.Opcode(r.U16())
	e.Status = wire.Status(r.U8())
}

// ControllerError reports a hardware error of the controller.
type ControllerError struct {
	ErrorCode uint8
}

func (*ControllerError) Code() wire.EventCode             { return wire.EvControllerError }
func (e *ControllerError) MarshalParams(w *wire.Writer)   { w.U8(e.ErrorCode) }
func (e *ControllerError) UnmarshalParams(r *wire.Reader) { e.ErrorCode = r.U8() }

// IndexAdded reports a new configured controller at the frame index.
type IndexAdded struct{ noParams }

func (*IndexAdded) Code() wire.EventCode { return wire.EvIndexAdded }

// IndexRemoved reports that the controller at the frame index is gone.
type IndexRemoved struct{ noParams }

func (*IndexRemoved) Code() wire.EventCode { return wire.EvIndexRemoved }

// NewSettings reports changed controller settings.
type NewSettings struct {
	Settings wire.Settings
}

func (*NewSettings) Code() wire.EventCode             { return wire.EvNewSettings }
func (e *NewSettings) MarshalParams(w *wire.Writer)   { w.U32(uint32(e.Settings)) }
func (e *NewSettings) UnmarshalParams(r *wire.Reader) { e.Settings = wire.Settings(r.U32()) }

// ClassOfDeviceChanged reports a new class of device.
type ClassOfDeviceChanged struct {
	Class wire.ClassOfDevice
}

func (*ClassOfDeviceChanged) Code() wire.EventCode             { return wire.EvClassOfDeviceChanged }
func (e *ClassOfDeviceChanged) MarshalParams(w *wire.Writer)   { w.Class(e.Class) }
func (e *ClassOfDeviceChanged) UnmarshalParams(r *wire.Reader) { e.Class = r.Class() }

// LocalNameChanged reports new local names.
type LocalNameChanged struct {
	Name      string
	ShortName string
}

func (*LocalNameChanged) Code() wire.EventCode { return wire.EvLocalNameChanged }

func (e *LocalNameChanged) MarshalParams(w *wire.Writer) {
	w.FixedString(e.Name, NameSize)
	w.FixedString(e.ShortName, ShortNameSize)
}

func (e *LocalNameChanged) UnmarshalParams(r *wire.Reader) {
	e.Name = r.FixedString(NameSize)
	e.ShortName = r.FixedString(ShortNameSize)
}

// NewLinkKey reports a link key created by pairing. StoreHint tells
// whether the key should be persisted.
type NewLinkKey struct {
	StoreHint bool
	Key       LinkKey
}

func (*NewLinkKey) Code() wire.EventCode { return wire.EvNewLinkKey }

func (e *NewLinkKey) MarshalParams(w *wire.Writer) {
	w.Bool(e.StoreHint)
	e.Key.marshal(w)
}

func (e *NewLinkKey) UnmarshalParams(r *wire.Reader) {
	e.StoreHint = r.Bool()
	e.Key.unmarshal(r)
}

// NewLongTermKey reports an LE long term key created by pairing.
type NewLongTermKey struct {
	StoreHint bool
	Key       LongTermKey
}

func (*NewLongTermKey) Code() wire.EventCode { return wire.EvNewLongTermKey }

func (e *NewLongTermKey) MarshalParams(w *wire.Writer) {
	w.Bool(e.StoreHint)
	e.Key.marshal(w)
}

func (e *NewLongTermKey) UnmarshalParams(r *wire.Reader) {
	e.StoreHint = r.Bool()
	e.Key.unmarshal(r)
}

// DeviceConnected reports a new connection. EIR carries name and class
// when known.
type DeviceConnected struct {
	Device wire.DeviceAddress
	Flags  uint32
	EIR    []byte
}

func (*DeviceConnected) Code() wire.EventCode { return wire.EvDeviceConnected }

func (e *DeviceConnected) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.U32(e.Flags)
	w.U16(uint16(len(e.EIR)))
	w.Raw(e.EIR)
}

func (e *DeviceConnected) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Flags = r.U32()
	e.EIR = r.Raw(int(r.U16()))
}

// DeviceDisconnected reports a closed connection.
type DeviceDisconnected struct {
	Device wire.DeviceAddress
	Reason DisconnectReason
}

func (*DeviceDisconnected) Code() wire.EventCode { return wire.EvDeviceDisconnected }

func (e *DeviceDisconnected) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.U8(uint8(e.Reason))
}

func (e *DeviceDisconnected) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Reason = DisconnectReason(r.U8())
}

// ConnectFailed reports a failed connection attempt.
type ConnectFailed struct {
	Device wire.DeviceAddress
	Status wire.Status
}

func (*ConnectFailed) Code() wire.EventCode { return wire.EvConnectFailed }

func (e *ConnectFailed) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.U8(uint8(e.Status))
}

func (e *ConnectFailed) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Status = wire.Status(r.U8())
}

// PinCodeRequest asks for a legacy PIN. Secure requests a 16-digit PIN.
type PinCodeRequest struct {
	Device wire.DeviceAddress
	Secure bool
}

func (*PinCodeRequest) Code() wire.EventCode { return wire.EvPinCodeRequest }

func (e *PinCodeRequest) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.Bool(e.Secure)
}

func (e *PinCodeRequest) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Secure = r.Bool()
}

// UserConfirmationRequest asks to confirm a numeric comparison value.
// ConfirmHint set means a simple yes/no is enough.
type UserConfirmationRequest struct {
	Device      wire.DeviceAddress
	ConfirmHint bool
	Value       uint32
}

func (*UserConfirmationRequest) Code() wire.EventCode { return wire.EvUserConfirmationRequest }

func (e *UserConfirmationRequest) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.Bool(e.ConfirmHint)
	w.U32(e.Value)
}

func (e *UserConfirmationRequest) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.ConfirmHint = r.Bool()
	e.Value = r.U32()
}

// UserPasskeyRequest asks for the passkey displayed on the remote device.
type UserPasskeyRequest struct {
	Device wire.DeviceAddress
}

func (*UserPasskeyRequest) Code() wire.EventCode             { return wire.EvUserPasskeyRequest }
func (e *UserPasskeyRequest) MarshalParams(w *wire.Writer)   { w.DeviceAddress(e.Device) }
func (e *UserPasskeyRequest) UnmarshalParams(r *wire.Reader) { e.Device = r.DeviceAddress() }

// AuthenticationFailed reports a failed pairing.
type AuthenticationFailed struct {
	Device wire.DeviceAddress
	Status wire.Status
}

func (*AuthenticationFailed) Code() wire.EventCode { return wire.EvAuthenticationFailed }

func (e *AuthenticationFailed) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.U8(uint8(e.Status))
}

func (e *AuthenticationFailed) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Status = wire.Status(r.U8())
}

// DeviceFound reports a device seen during discovery. Flags holds the
// Found* bits.
type DeviceFound struct {
	Device wire.DeviceAddress
	RSSI   int8
	Flags  uint32
	EIR    []byte
}

func (*DeviceFound) Code() wire.EventCode { return wire.EvDeviceFound }

func (e *DeviceFound) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.I8(e.RSSI)
	w.U32(e.Flags)
	w.U16(uint16(len(e.EIR)))
	w.Raw(e.EIR)
}

func (e *DeviceFound) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.RSSI = r.I8()
	e.Flags = r.U32()
	e.EIR = r.Raw(int(r.U16()))
}

// ParseEIR decodes the EIR data of the found device.
func (e *DeviceFound) ParseEIR() (*wire.EIR, error) {
	return wire.ParseEIR(e.EIR)
}

// Discovering reports that discovery started or stopped.
type Discovering struct {
	Types       wire.AddressTypes
	Discovering bool
}

func (*Discovering) Code() wire.EventCode { return wire.EvDiscovering }

func (e *Discovering) MarshalParams(w *wire.Writer) {
	w.U8(uint8(e.Types))
	w.Bool(e.Discovering)
}

func (e *Discovering) UnmarshalParams(r *wire.Reader) {
	e.Types = wire.AddressTypes(r.U8())
	e.Discovering = r.Bool()
}

// DeviceBlocked reports a device added to the block list.
type DeviceBlocked struct {
	Device wire.DeviceAddress
}

func (*DeviceBlocked) Code() wire.EventCode             { return wire.EvDeviceBlocked }
func (e *DeviceBlocked) MarshalParams(w *wire.Writer)   { w.DeviceAddress(e.Device) }
func (e *DeviceBlocked) UnmarshalParams(r *wire.Reader) { e.Device = r.DeviceAddress() }

// DeviceUnblocked reports a device removed from the block list.
type DeviceUnblocked struct {
	Device wire.DeviceAddress
}

func (*DeviceUnblocked) Code() wire.EventCode             { return wire.EvDeviceUnblocked }
func (e *DeviceUnblocked) MarshalParams(w *wire.Writer)   { w.DeviceAddress(e.Device) }
func (e *DeviceUnblocked) UnmarshalParams(r *wire.Reader) { e.Device = r.DeviceAddress() }

// DeviceUnpaired reports that the keys of a device were removed.
type DeviceUnpaired struct {
	Device wire.DeviceAddress
}

func (*DeviceUnpaired) Code() wire.EventCode             { return wire.EvDeviceUnpaired }
func (e *DeviceUnpaired) MarshalParams(w *wire.Writer)   { w.DeviceAddress(e.Device) }
func (e *DeviceUnpaired) UnmarshalParams(r *wire.Reader) { e.Device = r.DeviceAddress() }

// PasskeyNotify asks to display a passkey. Entered counts the digits the
// remote user typed so far.
type PasskeyNotify struct {
	Device  wire.DeviceAddress
	Passkey uint32
	Entered uint8
}

func (*PasskeyNotify) Code() wire.EventCode { return wire.EvPasskeyNotify }

func (e *PasskeyNotify) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.U32(e.Passkey)
	w.U8(e.Entered)
}

func (e *PasskeyNotify) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Passkey = r.U32()
	e.Entered = r.U8()
}

// NewIdentityResolvingKey reports an IRK learned during pairing together
// with the resolvable random address it resolved.
type NewIdentityResolvingKey struct {
	StoreHint     bool
	RandomAddress wire.Address
	Key           IdentityResolvingKey
}

func (*NewIdentityResolvingKey) Code() wire.EventCode { return wire.EvNewIdentityResolvingKey }

func (e *NewIdentityResolvingKey) MarshalParams(w *wire.Writer) {
	w.Bool(e.StoreHint)
	w.Address(e.RandomAddress)
	e.Key.marshal(w)
}

func (e *NewIdentityResolvingKey) UnmarshalParams(r *wire.Reader) {
	e.StoreHint = r.Bool()
	e.RandomAddress = r.Address()
	e.Key.unmarshal(r)
}

// NewSignatureResolvingKey reports a CSRK learned during pairing.
type NewSignatureResolvingKey struct {
	StoreHint bool
	Key       SignatureResolvingKey
}

func (*NewSignatureResolvingKey) Code() wire.EventCode { return wire.EvNewSignatureResolvingKey }

func (e *NewSignatureResolvingKey) MarshalParams(w *wire.Writer) {
	w.Bool(e.StoreHint)
	e.Key.marshal(w)
}

func (e *NewSignatureResolvingKey) UnmarshalParams(r *wire.Reader) {
	e.StoreHint = r.Bool()
	e.Key.unmarshal(r)
}

// DeviceAdded reports a device added to the auto-connect list.
type DeviceAdded struct {
	Device wire.DeviceAddress
	Action DeviceAction
}

func (*DeviceAdded) Code() wire.EventCode { return wire.EvDeviceAdded }

func (e *DeviceAdded) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(e.Device)
	w.U8(uint8(e.Action))
}

func (e *DeviceAdded) UnmarshalParams(r *wire.Reader) {
	e.Device = r.DeviceAddress()
	e.Action = DeviceAction(r.U8())
}

// DeviceRemoved reports a device removed from the auto-connect list.
type DeviceRemoved struct {
	Device wire.DeviceAddress
}

func (*DeviceRemoved) Code() wire.EventCode             { return wire.EvDeviceRemoved }
func (e *DeviceRemoved) MarshalParams(w *wire.Writer)   { w.DeviceAddress(e.Device) }
func (e *DeviceRemoved) UnmarshalParams(r *wire.Reader) { e.Device = r.DeviceAddress() }

// NewConnectionParameter reports preferred connection parameters of a
// peripheral.
type NewConnectionParameter struct {
	StoreHint bool
	Param     ConnectionParameter
}

func (*NewConnectionParameter) Code() wire.EventCode { return wire.EvNewConnectionParameter }

func (e *NewConnectionParameter) MarshalParams(w *wire.Writer) {
	w.Bool(e.StoreHint)
	e.Param.marshal(w)
}

func (e *NewConnectionParameter) UnmarshalParams(r *wire.Reader) {
	e.StoreHint = r.Bool()
	e.Param.unmarshal(r)
}

// UnconfiguredIndexAdded reports a new unconfigured controller.
type UnconfiguredIndexAdded struct{ noParams }

func (*UnconfiguredIndexAdded) Code() wire.EventCode { return wire.EvUnconfiguredIndexAdded }

// UnconfiguredIndexRemoved reports that an unconfigured controller is gone.
type UnconfiguredIndexRemoved struct{ noParams }

func (*UnconfiguredIndexRemoved) Code() wire.EventCode { return wire.EvUnconfiguredIndexRemoved }

// NewConfigOptions reports the options an unconfigured controller still
// misses.
type NewConfigOptions struct {
	Missing uint32
}

func (*NewConfigOptions) Code() wire.EventCode             { return wire.EvNewConfigOptions }
func (e *NewConfigOptions) MarshalParams(w *wire.Writer)   { w.U32(e.Missing) }
func (e *NewConfigOptions) UnmarshalParams(r *wire.Reader) { e.Missing = r.U32() }

// ExtendedIndexAdded reports a new controller of any type.
type ExtendedIndexAdded struct {
	Type uint8
	Bus  uint8
}

func (*ExtendedIndexAdded) Code() wire.EventCode { return wire.EvExtendedIndexAdded }

func (e *ExtendedIndexAdded) MarshalParams(w *wire.Writer) {
	w.U8(e.Type)
	w.U8(e.Bus)
}

func (e *ExtendedIndexAdded) UnmarshalParams(r *wire.Reader) {
	e.Type = r.U8()
	e.Bus = r.U8()
}

// ExtendedIndexRemoved reports a removed controller of any type.
type ExtendedIndexRemoved struct {
	Type uint8
	Bus  uint8
}

func (*ExtendedIndexRemoved) Code() wire.EventCode { return wire.EvExtendedIndexRemoved }

func (e *ExtendedIndexRemoved) MarshalParams(w *wire.Writer) {
	w.U8(e.Type)
	w.U8(e.Bus)
}

func (e *ExtendedIndexRemoved) UnmarshalParams(r *wire.Reader) {
	e.Type = r.U8()
	e.Bus = r.U8()
}

// LocalOOBExtendedDataUpdated reports new local out-of-band data.
type LocalOOBExtendedDataUpdated struct {
	Types wire.AddressTypes
	EIR   []byte
}

func (*LocalOOBExtendedDataUpdated) Code() wire.EventCode {
	return wire.EvLocalOOBExtendedDataUpdated
}

func (e *LocalOOBExtendedDataUpdated) MarshalParams(w *wire.Writer) {
	w.U8(uint8(e.Types))
	w.U16(uint16(len(e.EIR)))
	w.Raw(e.EIR)
}

func (e *LocalOOBExtendedDataUpdated) UnmarshalParams(r *wire.Reader) {
	e.Types = wire.AddressTypes(r.U8())
	e.EIR = r.Raw(int(r.U16()))
}

// AdvertisingAdded reports a new advertising instance.
type AdvertisingAdded struct {
	Instance uint8
}

func (*AdvertisingAdded) Code() wire.EventCode             { return wire.EvAdvertisingAdded }
func (e *AdvertisingAdded) MarshalParams(w *wire.Writer)   { w.U8(e.Instance) }
func (e *AdvertisingAdded) UnmarshalParams(r *wire.Reader) { e.Instance = r.U8() }

// AdvertisingRemoved reports a removed advertising instance.
type AdvertisingRemoved struct {
	Instance uint8
}

func (*AdvertisingRemoved) Code() wire.EventCode             { return wire.EvAdvertisingRemoved }
func (e *AdvertisingRemoved) MarshalParams(w *wire.Writer)   { w.U8(e.Instance) }
func (e *AdvertisingRemoved) UnmarshalParams(r *wire.Reader) { e.Instance = r.U8() }

// ExtendedControllerInfoChanged reports changed EIR encoded controller
// information such as names and appearance.
type ExtendedControllerInfoChanged struct {
	EIR []byte
}

func (*ExtendedControllerInfoChanged) Code() wire.EventCode {
	return wire.EvExtendedControllerInfoChanged
}

func (e *ExtendedControllerInfoChanged) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(e.EIR)))
	w.Raw(e.EIR)
}

func (e *ExtendedControllerInfoChanged) UnmarshalParams(r *wire.Reader) {
	e.EIR = r.Raw(int(r.U16()))
}

// PhyConfigurationChanged reports the selected PHYs.
type PhyConfigurationChanged struct {
	Selected uint32
}

func (*PhyConfigurationChanged) Code() wire.EventCode             { return wire.EvPhyConfigurationChanged }
func (e *PhyConfigurationChanged) MarshalParams(w *wire.Writer)   { w.U32(e.Selected) }
func (e *PhyConfigurationChanged) UnmarshalParams(r *wire.Reader) { e.Selected = r.U32() }

// ExperimentalFeatureChanged reports the state of an experimental feature.
type ExperimentalFeatureChanged struct {
	Feature uuid.UUID
	Flags   uint32
}

func (*ExperimentalFeatureChanged) Code() wire.EventCode { return wire.EvExperimentalFeatureChanged }

func (e *ExperimentalFeatureChanged) MarshalParams(w *wire.Writer) {
	w.UUID(e.Feature)
	w.U32(e.Flags)
}

func (e *ExperimentalFeatureChanged) UnmarshalParams(r *wire.Reader) {
	e.Feature = r.UUID()
	e.Flags = r.U32()
}

// DefaultSystemConfigChanged reports changed system parameters as raw
// type/length/value entries.
type DefaultSystemConfigChanged struct {
	TLV []byte
}

func (*DefaultSystemConfigChanged) Code() wire.EventCode             { return wire.EvDefaultSystemConfigChanged }
func (e *DefaultSystemConfigChanged) MarshalParams(w *wire.Writer)   { w.Raw(e.TLV) }
func (e *DefaultSystemConfigChanged) UnmarshalParams(r *wire.Reader) { e.TLV = r.Rest() }

// DefaultRuntimeConfigChanged reports changed runtime parameters as raw
// type/length/value entries.
type DefaultRuntimeConfigChanged struct {
	TLV []byte
}

func (*DefaultRuntimeConfigChanged) Code() wire.EventCode             { return wire.EvDefaultRuntimeConfigChanged }
func (e *DefaultRuntimeConfigChanged) MarshalParams(w *wire.Writer)   { w.Raw(e.TLV) }
func (e *DefaultRuntimeConfigChanged) UnmarshalParams(r *wire.Reader) { e.TLV = r.Rest() }
