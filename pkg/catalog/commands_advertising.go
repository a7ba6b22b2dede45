package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// MaxAdvertisingDataSize is the largest advertising or scan response
// payload that fits the one-byte length field.
const MaxAdvertisingDataSize = 0xFF

// ReadAdvertisingFeatures reads the advertising capabilities and active
// instances.
type ReadAdvertisingFeatures struct {
	noParams
	controllerScope
}

func (*ReadAdvertisingFeatures) Opcode() wire.Opcode { return wire.OpReadAdvertisingFeatures }
func (*ReadAdvertisingFeatures) NewReply() Reply     { return &AdvertisingFeaturesReply{} }

// AddAdvertising registers or replaces an advertising instance.
// Instances are numbered from 1.
type AddAdvertising struct {
	controllerScope
	Instance     uint8
	Flags        uint32
	Duration     uint16
	Timeout      uint16
	AdvData      []byte
	ScanResponse []byte
}

func (*AddAdvertising) Opcode() wire.Opcode { return wire.OpAddAdvertising }
func (*AddAdvertising) NewReply() Reply     { return &InstanceReply{} }

func (c *AddAdvertising) Validate() error {
	if c.Instance == 0 {
		return invalidf("advertising instance 0")
	}
	if len(c.AdvData) > MaxAdvertisingDataSize {
		return invalidf("advertising data is %d bytes", len(c.AdvData))
	}
	if len(c.ScanResponse) > MaxAdvertisingDataSize {
		return invalidf("scan response is %d bytes", len(c.ScanResponse))
	}
	return nil
}

func (c *AddAdvertising) MarshalParams(w *wire.Writer) {
	w.U8(c.Instance)
	w.U32(c.Flags)
	w.U16(c.Duration)
	w.U16(c.Timeout)
	w.U8(uint8(len(c.AdvData)))
	w.U8(uint8(len(c.ScanResponse)))
	w.Raw(c.AdvData)
	w.Raw(c.ScanResponse)
}

func (c *AddAdvertising) UnmarshalParams(r *wire.Reader) {
	c.Instance = r.U8()
	c.Flags = r.U32()
	c.Duration = r.U16()
	c.Timeout = r.U16()
	advLen := int(r.U8())
	scanLen := int(r.U8())
	c.AdvData = r.Raw(advLen)
	c.ScanResponse = r.Raw(scanLen)
}

// RemoveAdvertising removes an advertising instance; instance 0 removes
// all.
type RemoveAdvertising struct {
	controllerScope
	Instance uint8
}

func (*RemoveAdvertising) Opcode() wire.Opcode              { return wire.OpRemoveAdvertising }
func (*RemoveAdvertising) NewReply() Reply                  { return &InstanceReply{} }
func (*RemoveAdvertising) Validate() error                  { return nil }
func (c *RemoveAdvertising) MarshalParams(w *wire.Writer)   { w.U8(c.Instance) }
func (c *RemoveAdvertising) UnmarshalParams(r *wire.Reader) { c.Instance = r.U8() }

// GetAdvertisingSizeInfo reports the space left for data with the given
// flags.
type GetAdvertisingSizeInfo struct {
	controllerScope
	Instance uint8
	Flags    uint32
}

func (*GetAdvertisingSizeInfo) Opcode() wire.Opcode { return wire.OpGetAdvertisingSizeInfo }
func (*GetAdvertisingSizeInfo) NewReply() Reply     { return &AdvertisingSizeReply{} }

func (c *GetAdvertisingSizeInfo) Validate() error {
	if c.Instance == 0 {
		return invalidf("advertising instance 0")
	}
	return nil
}

func (c *GetAdvertisingSizeInfo) MarshalParams(w *wire.Writer) {
	w.U8(c.Instance)
	w.U32(c.Flags)
}

func (c *GetAdvertisingSizeInfo) UnmarshalParams(r *wire.Reader) {
	c.Instance = r.U8()
	c.Flags = r.U32()
}
