package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// ReadLocalOOBData generates local out-of-band pairing data.
type ReadLocalOOBData struct {
	noParams
	controllerScope
}

func (*ReadLocalOOBData) Opcode() wire.Opcode { return wire.OpReadLocalOOBData }
func (*ReadLocalOOBData) NewReply() Reply     { return &LocalOOBDataReply{} }

// AddRemoteOOBData provides out-of-band pairing data of a remote device.
type AddRemoteOOBData struct {
	controllerScope
	Device wire.DeviceAddress
	Data   OOBData
}

func (*AddRemoteOOBData) Opcode() wire.Opcode { return wire.OpAddRemoteOOBData }
func (*AddRemoteOOBData) NewReply() Reply     { return &AddressReply{} }
func (c *AddRemoteOOBData) Validate() error   { return validDevice(c.Device) }

func (c *AddRemoteOOBData) MarshalParams(w *wire.Writer) {
	w.DeviceAddress(c.Device)
	c.Data.marshal(w)
}

func (c *AddRemoteOOBData) UnmarshalParams(r *wire.Reader) {
	c.Device = r.DeviceAddress()
	c.Data.unmarshal(r)
}

// ReadLocalOOBExtendedData generates local out-of-band data as EIR for
// the selected transports.
type ReadLocalOOBExtendedData struct {
	controllerScope
	Types wire.AddressTypes
}

func (*ReadLocalOOBExtendedData) Opcode() wire.Opcode { return wire.OpReadLocalOOBExtendedData }
func (*ReadLocalOOBExtendedData) NewReply() Reply     { return &LocalOOBExtendedDataReply{} }

func (c *ReadLocalOOBExtendedData) Validate() error {
	if !c.Types.Valid() {
		return invalidf("address types 0x%02x", uint8(c.Types))
	}
	return nil
}

func (c *ReadLocalOOBExtendedData) MarshalParams(w *wire.Writer) { w.U8(uint8(c.Types)) }

func (c *ReadLocalOOBExtendedData) UnmarshalParams(r *wire.Reader) {
	c.Types = wire.AddressTypes(r.U8())
}
