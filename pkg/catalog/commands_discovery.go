package catalog

import (
	"github.com/google/uuid"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// discoveryCommand is embedded by commands whose only parameter is the
// discovery address type mask.
type discoveryCommand struct {
	controllerScope
	Types wire.AddressTypes
}

func (c *discoveryCommand) NewReply() Reply                { return &DiscoveryTypeReply{} }
func (c *discoveryCommand) MarshalParams(w *wire.Writer)   { w.U8(uint8(c.Types)) }
func (c *discoveryCommand) UnmarshalParams(r *wire.Reader) { c.Types = wire.AddressTypes(r.U8()) }

func (c *discoveryCommand) Validate() error {
	if !c.Types.Valid() {
		return invalidf("discovery type 0x%02x", uint8(c.Types))
	}
	return nil
}

// StartDiscovery starts device discovery on the selected transports.
type StartDiscovery struct{ discoveryCommand }

func (*StartDiscovery) Opcode() wire.Opcode { return wire.OpStartDiscovery }

// NewStartDiscovery returns a StartDiscovery for types.
func NewStartDiscovery(types wire.AddressTypes) *StartDiscovery {
	return &StartDiscovery{discoveryCommand{Types: types}}
}

// StopDiscovery stops a discovery started with the same types.
type StopDiscovery struct{ discoveryCommand }

func (*StopDiscovery) Opcode() wire.Opcode { return wire.OpStopDiscovery }

// NewStopDiscovery returns a StopDiscovery for types.
func NewStopDiscovery(types wire.AddressTypes) *StopDiscovery {
	return &StopDiscovery{discoveryCommand{Types: types}}
}

// StartLimitedDiscovery discovers only devices in limited discoverable
// mode.
type StartLimitedDiscovery struct{ discoveryCommand }

func (*StartLimitedDiscovery) Opcode() wire.Opcode { return wire.OpStartLimitedDiscovery }

// NewStartLimitedDiscovery returns a StartLimitedDiscovery for types.
func NewStartLimitedDiscovery(types wire.AddressTypes) *StartLimitedDiscovery {
	return &StartLimitedDiscovery{discoveryCommand{Types: types}}
}

// StartServiceDiscovery discovers devices advertising any of UUIDs with
// an RSSI at or above RSSIThreshold. An empty UUID list matches every
// device. An RSSIThreshold of 127 disables RSSI filtering.
type StartServiceDiscovery struct {
	controllerScope
	Types         wire.AddressTypes
	RSSIThreshold int8
	UUIDs         []uuid.UUID
}

func (*StartServiceDiscovery) Opcode() wire.Opcode { return wire.OpStartServiceDiscovery }
func (*StartServiceDiscovery) NewReply() Reply     { return &DiscoveryTypeReply{} }

func (c *StartServiceDiscovery) Validate() error {
	if !c.Types.Valid() {
		return invalidf("discovery type 0x%02x", uint8(c.Types))
	}
	return validList(len(c.UUIDs), 16, 4)
}

func (c *StartServiceDiscovery) MarshalParams(w *wire.Writer) {
	w.U8(uint8(c.Types))
	w.I8(c.RSSIThreshold)
	w.U16(uint16(len(c.UUIDs)))
	for _, u := range c.UUIDs {
		w.UUID(u)
	}
}

func (c *StartServiceDiscovery) UnmarshalParams(r *wire.Reader) {
	c.Types = wire.AddressTypes(r.U8())
	c.RSSIThreshold = r.I8()
	n := r.Count(16)
	if n == 0 {
		c.UUIDs = nil
		return
	}
	c.UUIDs = make([]uuid.UUID, n)
	for i := range c.UUIDs {
		c.UUIDs[i] = r.UUID()
	}
}
