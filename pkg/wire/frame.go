package wire

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Frame layout constants.
const (
	// HeaderSize is the size of the frame header in bytes.
	HeaderSize = 6

	// MaxParamSize is the largest parameter length the header can declare.
	MaxParamSize = 0xFFFF

	// MaxFrameSize is the largest possible frame including the header.
	MaxFrameSize = HeaderSize + MaxParamSize
)

// ControllerIndex identifies a local Bluetooth controller.
type ControllerIndex uint16

// NonController is the reserved index for global commands and events.
const NonController ControllerIndex = 0xFFFF

// IsGlobal reports whether the index is the non-controller index.
func (i ControllerIndex) IsGlobal() bool {
	return i == NonController
}

// String returns "hciN" for controllers and "global" for NonController.
func (i ControllerIndex) String() string {
	if i == NonController {
		return "global"
	}
	return "hci" + strconv.Itoa(int(i))
}

// Header is the fixed-size frame header.
type Header struct {
	// Code is the command opcode or event code.
	Code uint16

	// Index is the controller the frame refers to.
	Index ControllerIndex

	// Length is the declared parameter length.
	Length uint16
}

// Frame is a decoded frame with its parameter bytes.
type Frame struct {
	Code   uint16
	Index  ControllerIndex
	Params []byte
}

// Header returns the header that describes the frame.
func (f Frame) Header() Header {
	return Header{Code: f.Code, Index: f.Index, Length: uint16(len(f.Params))}
}

// Size returns the encoded size of the frame.
func (f Frame) Size() int {
	return HeaderSize + len(f.Params)
}

// DecodeHeader decodes the frame header from the first HeaderSize bytes.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, &ProtocolError{
			Err:    ErrTruncatedFrame,
			Detail: fmt.Sprintf("header needs %d bytes, have %d", HeaderSize, len(data)),
		}
	}
	return Header{
		Code:   binary.LittleEndian.Uint16(data[0:2]),
		Index:  ControllerIndex(binary.LittleEndian.Uint16(data[2:4])),
		Length: binary.LittleEndian.Uint16(data[4:6]),
	}, nil
}

// PutHeader writes h into the first HeaderSize bytes of dst.
func PutHeader(dst []byte, h Header) {
	binary.LittleEndian.PutUint16(dst[0:2], h.Code)
	binary.LittleEndian.PutUint16(dst[2:4], uint16(h.Index))
	binary.LittleEndian.PutUint16(dst[4:6], h.Length)
}

// EncodeFrame encodes a frame to bytes.
func EncodeFrame(f Frame) ([]byte, error) {
	if len(f.Params) > MaxParamSize {
		return nil, &ProtocolError{
			Err:    ErrMalformedFrame,
			Code:   f.Code,
			Index:  f.Index,
			Detail: fmt.Sprintf("parameters too large: %d > %d", len(f.Params), MaxParamSize),
		}
	}
	buf := make([]byte, HeaderSize+len(f.Params))
	PutHeader(buf, f.Header())
	copy(buf[HeaderSize:], f.Params)
	return buf, nil
}

// DecodeFrame decodes exactly one frame from data.
// The declared length must match the number of bytes after the header.
// The returned Params alias data.
func DecodeFrame(data []byte) (Frame, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return Frame{}, err
	}

	avail := len(data) - HeaderSize
	switch {
	case int(h.Length) > avail:
		return Frame{}, &ProtocolError{
			Err:    ErrTruncatedFrame,
			Code:   h.Code,
			Index:  h.Index,
			Detail: fmt.Sprintf("declared %d parameter bytes, have %d", h.Length, avail),
		}
	case int(h.Length) < avail:
		return Frame{}, &ProtocolError{
			Err:    ErrMalformedFrame,
			Code:   h.Code,
			Index:  h.Index,
			Detail: fmt.Sprintf("declared %d parameter bytes, have %d", h.Length, avail),
		}
	}

	return Frame{
		Code:   h.Code,
		Index:  h.Index,
		Params: data[HeaderSize:],
	}, nil
}
