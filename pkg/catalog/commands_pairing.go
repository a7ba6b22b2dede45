package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// deviceCommand is embedded by commands whose only parameter is a device
// address and whose reply echoes it.
type deviceCommand struct {
	controllerScope
	Device wire.DeviceAddress
}

func (c *deviceCommand) NewReply() Reply                { return &AddressReply{} }
func (c *deviceCommand) Validate() error                { return validDevice(c.Device) }
func (c *deviceCommand) MarshalParams(w *wire.Writer)   { w.DeviceAddress(c.Device) }
func (c *deviceCommand) UnmarshalParams(r *wire.Reader) { c.Device = r.DeviceAddress() }

// Disconnect terminates a connection.
type Disconnect struct{ deviceCommand }

func (*Disconnect) Opcode() wire.Opcode { return wire.OpDisconnect }

// NewDisconnect returns a Disconnect for d.
func NewDisconnect(d wire.DeviceAddress) *Disconnect {
	return &Disconnect{deviceCommand{Device: d}}
}

// PinCodeNegativeReply rejects a PIN code request.
type PinCodeNegativeReply struct{ deviceCommand }

func (*PinCodeNegativeReply) Opcode() wire.Opcode { return wire.OpPinCodeNegativeReply }

// NewPinCodeNegativeReply returns a PinCodeNegativeReply for d.
func NewPinCodeNegativeReply(d wire.DeviceAddress) *PinCodeNegativeReply {
	return &PinCodeNegativeReply{deviceCommand{Device: d}}
}

// CancelPairDevice aborts an ongoing PairDevice.
type CancelPairDevice struct{ deviceCommand }

func (*CancelPairDevice) Opcode() wire.Opcode { return wire.OpCancelPairDevice }

// NewCancelPairDevice returns a CancelPairDevice for d.
func NewCancelPairDevice(d wire.DeviceAddress) *CancelPairDevice {
	return &CancelPairDevice{deviceCommand{Device: d}}
}

// UserConfirmationReply accepts a numeric comparison.
type UserConfirmationReply struct{ deviceCommand }

func (*UserConfirmationReply) Opcode() wire.Opcode { return wire.OpUserConfirmationReply }

// NewUserConfirmationReply returns a UserConfirmationReply for d.
func NewUserConfirmationReply(d wire.DeviceAddress) *UserConfirmationReply {
	return &UserConfirmationReply{deviceCommand{Device: d}}
}

// UserConfirmationNegativeReply rejects a numeric comparison.
type UserConfirmationNegativeReply struct{ deviceCommand }

func (*UserConfirmationNegativeReply) Opcode() wire.Opcode {
	return wire.OpUserConfirmationNegativeReply
}

// NewUserConfirmationNegativeReply returns a UserConfirmationNegativeReply for d.
func NewUserConfirmationNegativeReply(d wire.DeviceAddress) *UserConfirmationNegativeReply {
	return &UserConfirmationNegativeReply{deviceCommand{Device: d}}
}

// UserPasskeyNegativeReply rejects a passkey request.
type UserPasskeyNegativeReply struct{ deviceCommand }

func (*UserPasskeyNegativeReply) Opcode() wire.Opcode { return wire.OpUserPasskeyNegativeReply }

// NewUserPasskeyNegativeReply returns a UserPasskeyNegativeReply for d.
func NewUserPasskeyNegativeReply(d wire.DeviceAddress) *UserPasskeyNegativeReply {
	return &UserPasskeyNegativeReply{deviceCommand{Device: d}}
}

// BlockDevice adds a device to the block list.
type BlockDevice struct{ deviceCommand }

func (*BlockDevice) Opcode() wire.Opcode { return wire.OpBlockDevice }

// NewBlockDevice returns a BlockDevice for d.
func NewBlockDevice(d wire.DeviceAddress) *BlockDevice {
	return &BlockDevice{deviceCommand{Device: d}}
}

// UnblockDevice removes a device from the block list.
type UnblockDevice struct{ deviceCommand }

func (*UnblockDevice) Opcode() wire.Opcode { return wire.OpUnblockDevice }

// NewUnblockDevice returns an UnblockDevice for d.
func NewUnblockDevice(d wire.DeviceAddress) *UnblockDevice {
	return &UnblockDevice{deviceCommand{Device: d}}
}

// RemoveRemoteOOBData forgets out-of-band data for a device.
type RemoveRemoteOOBData struct{ deviceCommand }

func (*RemoveRemoteOOBData) Opcode() wire.Opcode { return wire.OpRemoveRemoteOOBData }

// NewRemoveRemoteOOBData returns a RemoveRemoteOOBData for d.
func NewRemoveRemoteOOBData(d wire.DeviceAddress) *RemoveRemoteOOBData {
	return &RemoveRemoteOOBData{deviceCommand{Device: d}}
}

// RemoveDevice removes a device from the auto-connect list. The zero
// BR/EDR address removes all.
type RemoveDevice struct{ deviceCommand }

func (*RemoveDevice) Opcode() wire.Opcode { return wire.OpRemoveDevice }

// NewRemoveDevice returns a RemoveDevice for d.
func NewRemoveDevice(d wire.DeviceAddress) *RemoveDevice {
	return &RemoveDevice{deviceCommand{Device: d}}
}

// PinCodeReply answers a PIN code request.
type PinCodeReply struct {
	controllerScope
	Device wire.DeviceAddress
	PIN    []byte
}

func (*PinCodeReply) Opcode() wire.Opcode { return wire.OpPinCodeReply }
func (*PinCodeReply) NewReply() Reply     { return &AddressReply{} }

func (c *PinCodeReply) Validate() error {
	if err := validDevice(c.Device); err != nil {
		return err
	}
	if len(c.PIN) == 0 || len(c.PIN) > MaxPINSize {
		return invalidf("pin length %d, want 1..%d", len(c.PIN), MaxPINSize)
	}
	return nil
}

func (c *PinCodeReply) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	w.U8(uint8(len(c.PIN)))
	var pin [MaxPINSize]byte
	copy(pin[:], c.PIN)
	w.Raw(pin[:])
}

func (c *PinCodeReply) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	n := int(r.U8())
	pin := r.Raw(MaxPINSize)
	if n > MaxPINSize {
		r.Fail(invalidf("pin length %d", n))
		return
	}
	if len(pin) == MaxPINSize {
		c.PIN = pin[:n]
	}
}

// PairDevice starts pairing with a device.
type PairDevice struct {
	controllerScope
	Device     wire.DeviceAddress
	Capability IOCapability
}

func (*PairDevice) Opcode() wire.Opcode { return wire.OpPairDevice }
func (*PairDevice) NewReply() Reply     { return &AddressReply{} }

func (c *PairDevice) Validate() error {
	if err := validDevice(c.Device); err != nil {
		return err
	}
	if !c.Capability.Valid() {
		return invalidf("io capability %d", c.Capability)
	}
	return nil
}

func (c *PairDevice) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	w.U8(uint8(c.Capability))
}

func (c *PairDevice) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	c.Capability = IOCapability(r.U8())
}

// UnpairDevice removes the keys of a device, optionally disconnecting it.
type UnpairDevice struct {
	controllerScope
	Device     wire.DeviceAddress
	Disconnect bool
}

func (*UnpairDevice) Opcode() wire.Opcode { return wire.OpUnpairDevice }
func (*UnpairDevice) NewReply() Reply     { return &AddressReply{} }
func (c *UnpairDevice) Validate() error   { return validDevice(c.Device) }

func (c *UnpairDevice) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	w.Bool(c.Disconnect)
}

func (c *UnpairDevice) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	c.Disconnect = r.Bool()
}

// UserPasskeyReply answers a passkey request.
type UserPasskeyReply struct {
	controllerScope
	Device  wire.DeviceAddress
	Passkey uint32
}

func (*UserPasskeyReply) Opcode() wire.Opcode { return wire.OpUserPasskeyReply }
func (*UserPasskeyReply) NewReply() Reply     { return &AddressReply{} }

func (c *UserPasskeyReply) Validate() error {
	if err := validDevice(c.Device); err != nil {
		return err
	}
	if c.Passkey > MaxPasskey {
		return invalidf("passkey %d exceeds %d", c.Passkey, MaxPasskey)
	}
	return nil
}

func (c *UserPasskeyReply) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	w.U32(c.Passkey)
}

func (c *UserPasskeyReply) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	c.Passkey = r.U32()
}

// ConfirmName answers a DeviceFound event that asked for name resolution.
type ConfirmName struct {
	controllerScope
	Device    wire.DeviceAddress
	NameKnown bool
}

func (*ConfirmName) Opcode() wire.Opcode { return wire.OpConfirmName }
func (*ConfirmName) NewReply() Reply     { return &AddressReply{} }
func (c *ConfirmName) Validate() error   { return validDevice(c.Device) }

func (c *ConfirmName) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	w.Bool(c.NameKnown)
}

func (c *ConfirmName) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	c.NameKnown = r.Bool()
}

// AddDevice adds a device to the auto-connect list.
type AddDevice struct {
	controllerScope
	Device wire.DeviceAddress
	Action DeviceAction
}

func (*AddDevice) Opcode() wire.Opcode { return wire.OpAddDevice }
func (*AddDevice) NewReply() Reply     { return &AddressReply{} }

func (c *AddDevice) Validate() error {
	if err := validDevice(c.Device); err != nil {
		return err
	}
	if c.Action > ActionAutoConnect {
		return invalidf("device action %d", c.Action)
	}
	return nil
}

func (c *AddDevice) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	w.U8(uint8(c.Action))
}

func (c *AddDevice) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	c.Action = DeviceAction(r.U8())
}
