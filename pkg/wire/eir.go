package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidEIR indicates extended inquiry response data that does not
// follow the length/type/value structure.
var ErrInvalidEIR = errors.New("invalid EIR data")

// EIRType is the data type octet of an EIR or advertising data structure.
type EIRType uint8

// EIR data types.
const (
	EIRFlags             EIRType = 0x01
	EIRUUID16Incomplete  EIRType = 0x02
	EIRUUID16Complete    EIRType = 0x03
	EIRUUID32Incomplete  EIRType = 0x04
	EIRUUID32Complete    EIRType = 0x05
	EIRUUID128Incomplete EIRType = 0x06
	EIRUUID128Complete   EIRType = 0x07
	EIRNameShort         EIRType = 0x08
	EIRNameComplete      EIRType = 0x09
	EIRTxPower           EIRType = 0x0A
	EIRClassOfDevice     EIRType = 0x0D
	EIRAppearance        EIRType = 0x19
	EIRURI               EIRType = 0x24
	EIRManufacturerData  EIRType = 0xFF
)

// EIR flag bits carried in the Flags structure.
const (
	EIRFlagLELimitedDiscoverable uint8 = 1 << 0
	EIRFlagLEGeneralDiscoverable uint8 = 1 << 1
	EIRFlagBREDRNotSupported     uint8 = 1 << 2
	EIRFlagSimultaneousLEBREDRC  uint8 = 1 << 3
	EIRFlagSimultaneousLEBREDRH  uint8 = 1 << 4
)

// bluetoothBase is the Bluetooth base UUID 00000000-0000-1000-8000-00805F9B34FB.
var bluetoothBase = uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")

// UUIDFrom16 expands a 16-bit service UUID onto the Bluetooth base UUID.
func UUIDFrom16(v uint16) uuid.UUID {
	return UUIDFrom32(uint32(v))
}

// UUIDFrom32 expands a 32-bit service UUID onto the Bluetooth base UUID.
func UUIDFrom32(v uint32) uuid.UUID {
	u := bluetoothBase
	binary.BigEndian.PutUint32(u[0:4], v)
	return u
}

// UUID reads a 128-bit UUID stored in wire (little-endian) order.
func (r *Reader) UUID() uuid.UUID {
	var le [16]byte
	r.Fill(le[:])
	var u uuid.UUID
	for i := range le {
		u[i] = le[15-i]
	}
	return u
}

// UUID writes a 128-bit UUID in wire (little-endian) order.
func (w *Writer) UUID(u uuid.UUID) {
	for i := 15; i >= 0; i-- {
		w.U8(u[i])
	}
}

// ManufacturerData is a manufacturer specific data structure.
type ManufacturerData struct {
	CompanyID uint16
	Data      []byte
}

// EIRField is one raw length/type/value structure.
type EIRField struct {
	Type EIRType
	Data []byte
}

// EIR is parsed extended inquiry response or advertising data.
type EIR struct {
	// Flags is set when a Flags structure is present.
	Flags *uint8

	// UUIDs lists every advertised service UUID, 16 and 32-bit values
	// expanded onto the Bluetooth base UUID.
	UUIDs []uuid.UUID

	// Name is the local name; NameComplete reports whether it was the
	// complete or shortened form. When both forms are present the complete
	// one wins and ShortName holds the other.
	Name         string
	NameComplete bool
	ShortName    string

	// TxPower is set when a TX power level structure is present.
	TxPower *int8

	// Class is set when a class of device structure is present.
	Class *ClassOfDevice

	// Appearance is set when an appearance structure is present.
	Appearance *uint16

	URIs             []string
	ManufacturerData []ManufacturerData

	// Fields holds every structure in order, including unknown types.
	Fields []EIRField
}

// ParseEIR parses EIR data. Parsing stops at the first zero-length
// structure, which marks the start of padding.
func ParseEIR(data []byte) (*EIR, error) {
	eir := &EIR{}

	for off := 0; off < len(data); {
		length := int(data[off])
		off++
		if length == 0 {
			break
		}
		if off+length > len(data) {
			return nil, fmt.Errorf("%w: structure at %d declares %d bytes, have %d", ErrInvalidEIR, off-1, length, len(data)-off)
		}
		typ := EIRType(data[off])
		value := data[off+1 : off+length]
		off += length

		eir.Fields = append(eir.Fields, EIRField{Type: typ, Data: append([]byte(nil), value...)})

		switch typ {
		case EIRFlags:
			if eir.Flags != nil {
				return nil, fmt.Errorf("%w: repeated flags", ErrInvalidEIR)
			}
			if len(value) < 1 {
				return nil, fmt.Errorf("%w: empty flags", ErrInvalidEIR)
			}
			f := value[0]
			eir.Flags = &f
		case EIRUUID16Incomplete, EIRUUID16Complete:
			if len(value)%2 != 0 {
				return nil, fmt.Errorf("%w: uuid16 list length %d", ErrInvalidEIR, len(value))
			}
			for i := 0; i < len(value); i += 2 {
				eir.UUIDs = append(eir.UUIDs, UUIDFrom16(binary.LittleEndian.Uint16(value[i:])))
			}
		case EIRUUID32Incomplete, EIRUUID32Complete:
			if len(value)%4 != 0 {
				return nil, fmt.Errorf("%w: uuid32 list length %d", ErrInvalidEIR, len(value))
			}
			for i := 0; i < len(value); i += 4 {
				eir.UUIDs = append(eir.UUIDs, UUIDFrom32(binary.LittleEndian.Uint32(value[i:])))
			}
		case EIRUUID128Incomplete, EIRUUID128Complete:
			if len(value)%16 != 0 {
				return nil, fmt.Errorf("%w: uuid128 list length %d", ErrInvalidEIR, len(value))
			}
			r := NewReader(value)
			for r.Len() > 0 {
				eir.UUIDs = append(eir.UUIDs, r.UUID())
			}
		case EIRNameComplete:
			eir.Name = string(value)
			eir.NameComplete = true
		case EIRNameShort:
			eir.ShortName = string(value)
			if !eir.NameComplete {
				eir.Name = eir.ShortName
			}
		case EIRTxPower:
			if len(value) != 1 {
				return nil, fmt.Errorf("%w: tx power length %d", ErrInvalidEIR, len(value))
			}
			p := int8(value[0])
			eir.TxPower = &p
		case EIRClassOfDevice:
			if len(value) != ClassOfDeviceSize {
				return nil, fmt.Errorf("%w: class length %d", ErrInvalidEIR, len(value))
			}
			c := NewReader(value).Class()
			eir.Class = &c
		case EIRAppearance:
			if len(value) != 2 {
				return nil, fmt.Errorf("%w: appearance length %d", ErrInvalidEIR, len(value))
			}
			a := binary.LittleEndian.Uint16(value)
			eir.Appearance = &a
		case EIRURI:
			eir.URIs = append(eir.URIs, string(value))
		case EIRManufacturerData:
			if len(value) < 2 {
				return nil, fmt.Errorf("%w: manufacturer data length %d", ErrInvalidEIR, len(value))
			}
			eir.ManufacturerData = append(eir.ManufacturerData, ManufacturerData{
				CompanyID: binary.LittleEndian.Uint16(value),
				Data:      append([]byte(nil), value[2:]...),
			})
		}
	}

	return eir, nil
}

// AppendEIR appends one structure to buf. Values longer than 254 bytes
// do not fit a structure and are rejected.
func AppendEIR(buf []byte, typ EIRType, value []byte) ([]byte, error) {
	if len(value) > 254 {
		return buf, fmt.Errorf("%w: value of %d bytes", ErrInvalidEIR, len(value))
	}
	buf = append(buf, byte(len(value)+1), byte(typ))
	return append(buf, value...), nil
}
