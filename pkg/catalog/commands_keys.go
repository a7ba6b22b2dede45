package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// LoadLinkKeys replaces the BR/EDR link keys known to the kernel.
type LoadLinkKeys struct {
	controllerScope
	DebugKeys bool
	Keys      []LinkKey
}

func (*LoadLinkKeys) Opcode() wire.Opcode { return wire.OpLoadLinkKeys }
func (*LoadLinkKeys) NewReply() Reply     { return &EmptyReply{} }

func (c *LoadLinkKeys) Validate() error {
	if err := validList(len(c.Keys), linkKeySize, 3); err != nil {
		return err
	}
	for i := range c.Keys {
		if c.Keys[i].Device.Type != wire.AddressBREDR {
			return invalidf("link key %d: %s is not a BR/EDR address", i, c.Keys[i].Device)
		}
	}
	return nil
}

func (c *LoadLinkKeys) MarshalParams(w *wire.Writer) {
	w.Bool(c.DebugKeys)
	w.U16(uint16(len(c.Keys)))
	for i := range c.Keys {
		c.Keys[i].marshal(w)
	}
}

func (c *LoadLinkKeys) UnmarshalParams(r *wire.Reader) {
	c.DebugKeys = r.Bool()
	c.Keys = make([]LinkKey, r.Count(linkKeySize))
	for i := range c.Keys {
		c.Keys[i].unmarshal(r)
	}
}

// LoadLongTermKeys replaces the LE long term keys known to the kernel.
type LoadLongTermKeys struct {
	controllerScope
	Keys []LongTermKey
}

func (*LoadLongTermKeys) Opcode() wire.Opcode { return wire.OpLoadLongTermKeys }
func (*LoadLongTermKeys) NewReply() Reply     { return &EmptyReply{} }

func (c *LoadLongTermKeys) Validate() error {
	if err := validList(len(c.Keys), longTermKeySize, 2); err != nil {
		return err
	}
	for i := range c.Keys {
		k := &c.Keys[i]
		if k.Device.Type == wire.AddressBREDR || !k.Device.Type.Valid() {
			return invalidf("long term key %d: %s is not an LE address", i, k.Device)
		}
		if k.EncryptionSize < 7 || k.EncryptionSize > KeySize {
			return invalidf("long term key %d: encryption size %d", i, k.EncryptionSize)
		}
	}
	return nil
}

func (c *LoadLongTermKeys) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(c.Keys)))
	for i := range c.Keys {
		c.Keys[i].marshal(w)
	}
}

func (c *LoadLongTermKeys) UnmarshalParams(r *wire.Reader) {
	c.Keys = make([]LongTermKey, r.Count(longTermKeySize))
	for i := range c.Keys {
		c.Keys[i].unmarshal(r)
	}
}

// LoadIdentityResolvingKeys replaces the LE identity resolving keys.
type LoadIdentityResolvingKeys struct {
	controllerScope
	Keys []IdentityResolvingKey
}

func (*LoadIdentityResolvingKeys) Opcode() wire.Opcode { return wire.OpLoadIdentityResolvingKeys }
func (*LoadIdentityResolvingKeys) NewReply() Reply     { return &EmptyReply{} }

func (c *LoadIdentityResolvingKeys) Validate() error {
	if err := validList(len(c.Keys), identityResolvingKeySize, 2); err != nil {
		return err
	}
	for i := range c.Keys {
		if t := c.Keys[i].Device.Type; t == wire.AddressBREDR || !t.Valid() {
			return invalidf("identity resolving key %d: %s is not an LE address", i, c.Keys[i].Device)
		}
	}
	return nil
}

func (c *LoadIdentityResolvingKeys) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(c.Keys)))
	for i := range c.Keys {
		c.Keys[i].marshal(w)
	}
}

func (c *LoadIdentityResolvingKeys) UnmarshalParams(r *wire.Reader) {
	c.Keys = make([]IdentityResolvingKey, r.Count(identityResolvingKeySize))
	for i := range c.Keys {
		c.Keys[i].unmarshal(r)
	}
}

// LoadConnectionParameters replaces the preferred LE connection
// parameters.
type LoadConnectionParameters struct {
	controllerScope
	Params []ConnectionParameter
}

func (*LoadConnectionParameters) Opcode() wire.Opcode { return wire.OpLoadConnectionParameters }
func (*LoadConnectionParameters) NewReply() Reply     { return &EmptyReply{} }

func (c *LoadConnectionParameters) Validate() error {
	if err := validList(len(c.Params), connectionParameterSize, 2); err != nil {
		return err
	}
	for i := range c.Params {
		p := &c.Params[i]
		if err := validDevice(p.Device); err != nil {
			return err
		}
		if p.MinInterval > p.MaxInterval {
			return invalidf("connection parameter %d: min interval exceeds max", i)
		}
	}
	return nil
}

func (c *LoadConnectionParameters) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(c.Params)))
	for i := range c.Params {
		c.Params[i].marshal(w)
	}
}

func (c *LoadConnectionParameters) UnmarshalParams(r *wire.Reader) {
	c.Params = make([]ConnectionParameter, r.Count(connectionParameterSize))
	for i := range c.Params {
		c.Params[i].unmarshal(r)
	}
}

// Types of BlockedKey.
const (
	BlockedLinkKey     uint8 = 0x00
	BlockedLongTermKey uint8 = 0x01
	BlockedIRK         uint8 = 0x02
)

// LoadBlockedKeys replaces the list of key values the kernel refuses.
type LoadBlockedKeys struct {
	controllerScope
	Keys []BlockedKey
}

func (*LoadBlockedKeys) Opcode() wire.Opcode { return wire.OpLoadBlockedKeys }
func (*LoadBlockedKeys) NewReply() Reply     { return &EmptyReply{} }

func (c *LoadBlockedKeys) Validate() error {
	if err := validList(len(c.Keys), blockedKeySize, 2); err != nil {
		return err
	}
	for i := range c.Keys {
		if c.Keys[i].Type > BlockedIRK {
			return invalidf("blocked key %d: type %d", i, c.Keys[i].Type)
		}
	}
	return nil
}

func (c *LoadBlockedKeys) MarshalParams(w *wire.Writer) {
	w.U16(uint16(len(c.Keys)))
	for _, k := range c.Keys {
		w.U8(k.Type)
		w.Raw(k.Value[:])
	}
}

func (c *LoadBlockedKeys) UnmarshalParams(r *wire.Reader) {
	c.Keys = make([]BlockedKey, r.Count(blockedKeySize))
	for i := range c.Keys {
		c.Keys[i].Type = r.U8()
		r.Fill(c.Keys[i].Value[:])
	}
}
