package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"empty params", Frame{Code: uint16(OpReadVersionInfo), Index: NonController, Params: []byte{}}},
		{"single byte", Frame{Code: uint16(OpSetPowered), Index: 0, Params: []byte{0x01}}},
		{"max params", Frame{Code: uint16(EvDeviceFound), Index: 3, Params: bytes.Repeat([]byte{0xAB}, MaxParamSize)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeFrame(tt.frame)
			if err != nil {
				t.Fatalf("EncodeFrame failed: %v", err)
			}
			if len(data) != tt.frame.Size() {
				t.Errorf("encoded size = %d, want %d", len(data), tt.frame.Size())
			}

			got, err := DecodeFrame(data)
			if err != nil {
				t.Fatalf("DecodeFrame failed: %v", err)
			}
			if got.Code != tt.frame.Code || got.Index != tt.frame.Index {
				t.Errorf("header = (0x%04x, %s), want (0x%04x, %s)", got.Code, got.Index, tt.frame.Code, tt.frame.Index)
			}
			if !bytes.Equal(got.Params, tt.frame.Params) {
				t.Errorf("params differ: got %d bytes, want %d", len(got.Params), len(tt.frame.Params))
			}
		})
	}
}

func TestEncodeFrameLayout(t *testing.T) {
	data, err := EncodeFrame(Frame{Code: 0x0005, Index: 0x0001, Params: []byte{0x01}})
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	want := []byte{0x05, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01}
	if !bytes.Equal(data, want) {
		t.Errorf("EncodeFrame = % x, want % x", data, want)
	}
}

func TestEncodeFrameTooLarge(t *testing.T) {
	_, err := EncodeFrame(Frame{Params: make([]byte, MaxParamSize+1)})
	if !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("err = %v, want ErrMalformedFrame", err)
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"nil", nil, ErrTruncatedFrame},
		{"short header", []byte{0x01, 0x00, 0xFF}, ErrTruncatedFrame},
		{"declared more than present", []byte{0x06, 0x00, 0x00, 0x00, 0x04, 0x00, 0x01, 0x02}, ErrTruncatedFrame},
		{"declared maximum with nothing", []byte{0x06, 0x00, 0x00, 0x00, 0xFF, 0xFF}, ErrTruncatedFrame},
		{"declared less than present", []byte{0x06, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x02}, ErrMalformedFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var pe *ProtocolError
			if !errors.As(err, &pe) {
				t.Errorf("err %T is not a *ProtocolError", err)
			}
		})
	}
}

func TestDecodeHeader(t *testing.T) {
	h, err := DecodeHeader([]byte{0x12, 0x00, 0x02, 0x00, 0x0E, 0x00})
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if EventCode(h.Code) != EvDeviceFound {
		t.Errorf("code = %s, want %s", EventCode(h.Code), EvDeviceFound)
	}
	if h.Index != 2 {
		t.Errorf("index = %d, want 2", h.Index)
	}
	if h.Length != 14 {
		t.Errorf("length = %d, want 14", h.Length)
	}
}

func TestControllerIndexString(t *testing.T) {
	if got := ControllerIndex(0).String(); got != "hci0" {
		t.Errorf("String() = %q, want hci0", got)
	}
	if got := NonController.String(); got != "global" {
		t.Errorf("String() = %q, want global", got)
	}
	if !NonController.IsGlobal() || ControllerIndex(1).IsGlobal() {
		t.Error("IsGlobal mismatch")
	}
}

func TestOpcodeNames(t *testing.T) {
	if OpSetPowered.String() != "Set Powered" {
		t.Errorf("OpSetPowered = %q", OpSetPowered.String())
	}
	if EvNewSettings.String() != "New Settings" {
		t.Errorf("EvNewSettings = %q", EvNewSettings.String())
	}
	if Opcode(0x7FFF).Known() {
		t.Error("0x7FFF should be unknown")
	}
	if got := Opcode(0x7FFF).String(); got != "Opcode(0x7fff)" {
		t.Errorf("unknown opcode String() = %q", got)
	}
	if got := EventCode(0x00FF).String(); got != "EventCode(0x00ff)" {
		t.Errorf("unknown event String() = %q", got)
	}
}
