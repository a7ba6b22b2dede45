package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// noParams is embedded by commands without parameters.
type noParams struct{}

func (noParams) MarshalParams(*wire.Writer)   {}
func (noParams) UnmarshalParams(*wire.Reader) {}
func (noParams) Validate() error              { return nil }

// controllerScope is embedded by commands addressed to one controller.
type controllerScope struct{}

func (controllerScope) Scope() Scope { return ScopeController }

// globalScope is embedded by commands sent to the non-controller index.
type globalScope struct{}

func (globalScope) Scope() Scope { return ScopeGlobal }

// validDevice checks the address type of a device address.
func validDevice(d wire.DeviceAddress) error {
	if !d.Type.Valid() {
		return invalidf("address type %d", d.Type)
	}
	return nil
}

// validList checks that n elements of size bytes plus a header fit in one
// frame.
func validList(n, size, header int) error {
	if n > 0xFFFF {
		return invalidf("%d entries exceed count field", n)
	}
	if header+n*size > wire.MaxParamSize {
		return invalidf("%d entries exceed %d parameter bytes", n, wire.MaxParamSize)
	}
	return nil
}

// ReadVersionInfo returns the management interface version.
type ReadVersionInfo struct {
	noParams
	globalScope
}

func (*ReadVersionInfo) Opcode() wire.Opcode { return wire.OpReadVersionInfo }
func (*ReadVersionInfo) NewReply() Reply     { return &VersionReply{} }

// ReadSupportedCommands returns the supported commands and events.
type ReadSupportedCommands struct {
	noParams
	globalScope
}

func (*ReadSupportedCommands) Opcode() wire.Opcode { return wire.OpReadSupportedCommands }
func (*ReadSupportedCommands) NewReply() Reply     { return &SupportedCommandsReply{} }

// ReadControllerIndexList returns the indexes of configured controllers.
type ReadControllerIndexList struct {
	noParams
	globalScope
}

func (*ReadControllerIndexList) Opcode() wire.Opcode { return wire.OpReadControllerIndexList }
func (*ReadControllerIndexList) NewReply() Reply     { return &IndexListReply{} }

// ReadControllerInfo returns address, settings, class and names.
type ReadControllerInfo struct {
	noParams
	controllerScope
}

func (*ReadControllerInfo) Opcode() wire.Opcode { return wire.OpReadControllerInfo }
func (*ReadControllerInfo) NewReply() Reply     { return &ControllerInfoReply{} }

// ReadUnconfiguredIndexList returns the indexes of unconfigured controllers.
type ReadUnconfiguredIndexList struct {
	noParams
	globalScope
}

func (*ReadUnconfiguredIndexList) Opcode() wire.Opcode { return wire.OpReadUnconfiguredIndexList }
func (*ReadUnconfiguredIndexList) NewReply() Reply     { return &IndexListReply{} }

// ReadControllerConfigInfo returns the configuration options of a controller.
type ReadControllerConfigInfo struct {
	noParams
	controllerScope
}

func (*ReadControllerConfigInfo) Opcode() wire.Opcode { return wire.OpReadControllerConfigInfo }
func (*ReadControllerConfigInfo) NewReply() Reply     { return &ControllerConfigInfoReply{} }

// ReadExtendedIndexList returns every controller with its type and bus.
type ReadExtendedIndexList struct {
	noParams
	globalScope
}

func (*ReadExtendedIndexList) Opcode() wire.Opcode { return wire.OpReadExtendedIndexList }
func (*ReadExtendedIndexList) NewReply() Reply     { return &ExtendedIndexListReply{} }

// ReadExtendedControllerInfo returns controller information with EIR
// encoded names.
type ReadExtendedControllerInfo struct {
	noParams
	controllerScope
}

func (*ReadExtendedControllerInfo) Opcode() wire.Opcode { return wire.OpReadExtendedControllerInfo }
func (*ReadExtendedControllerInfo) NewReply() Reply     { return &ExtendedControllerInfoReply{} }

// GetConnections lists connected devices.
type GetConnections struct {
	noParams
	controllerScope
}

func (*GetConnections) Opcode() wire.Opcode { return wire.OpGetConnections }
func (*GetConnections) NewReply() Reply     { return &ConnectionsReply{} }

// GetConnectionInfo reads RSSI and TX power of a connection.
type GetConnectionInfo struct {
	controllerScope
	Device wire.DeviceAddress
}

func (*GetConnectionInfo) Opcode() wire.Opcode              { return wire.OpGetConnectionInfo }
func (*GetConnectionInfo) NewReply() Reply                  { return &ConnectionInfoReply{} }
func (c *GetConnectionInfo) Validate() error                { return validDevice(c.Device) }
func (c *GetConnectionInfo) MarshalParams(w *wire.Writer)   { w.DeviceAddress(c.Device) }
func (c *GetConnectionInfo) UnmarshalParams(r *wire.Reader) { c.Device = r.DeviceAddress() }

// GetClockInfo reads the local and piconet clocks. A zero address reads
// only the local clock.
type GetClockInfo struct {
	controllerScope
	Device wire.DeviceAddress
}

func (*GetClockInfo) Opcode() wire.Opcode { return wire.OpGetClockInfo }
func (*GetClockInfo) NewReply() Reply     { return &ClockInfoReply{} }

func (c *GetClockInfo) Validate() error {
	if c.Device.Type != wire.AddressBREDR {
		return invalidf("clock info needs a BR/EDR address")
	}
	return nil
}

func (c *GetClockInfo) MarshalParams(w *wire.Writer)   { w.DeviceAddress(c.Device) }
func (c *GetClockInfo) UnmarshalParams(r *wire.Reader) { c.Device = r.DeviceAddress() }

// GetPhyConfiguration reads supported, configurable and selected PHYs.
type GetPhyConfiguration struct {
	noParams
	controllerScope
}

func (*GetPhyConfiguration) Opcode() wire.Opcode { return wire.OpGetPhyConfiguration }
func (*GetPhyConfiguration) NewReply() Reply     { return &PhyConfigurationReply{} }
