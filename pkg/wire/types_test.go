package wire

import (
	"slices"
	"testing"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("00:1A:7D:DA:71:13")
	if err != nil {
		t.Fatalf("ParseAddress failed: %v", err)
	}
	want := Address{0x13, 0x71, 0xDA, 0x7D, 0x1A, 0x00}
	if a != want {
		t.Errorf("ParseAddress = % x, want % x", a[:], want[:])
	}
	if a.String() != "00:1A:7D:DA:71:13" {
		t.Errorf("String() = %q", a.String())
	}

	for _, bad := range []string{"", "00:11:22:33:44", "00:11:22:33:44:GG", "001:1:22:33:44:55"} {
		if _, err := ParseAddress(bad); err == nil {
			t.Errorf("ParseAddress(%q) succeeded", bad)
		}
	}
}

func TestAddressTypes(t *testing.T) {
	if !DiscoverAll.Valid() {
		t.Error("DiscoverAll should be valid")
	}
	if AddressTypes(0).Valid() || AddressTypes(0x08).Valid() {
		t.Error("zero and unknown bits should be invalid")
	}
	if got := DiscoverLE.String(); got != "LE-Public LE-Random" {
		t.Errorf("String() = %q", got)
	}
	if AddressType(3).Valid() {
		t.Error("address type 3 should be invalid")
	}
}

func TestSettings(t *testing.T) {
	s := SettingPowered | SettingLE
	if !s.Has(SettingPowered) || s.Has(SettingDiscoverable) {
		t.Error("Has mismatch")
	}
	s = s.With(SettingDiscoverable).Without(SettingPowered)
	if got := s.Names(); !slices.Equal(got, []string{"discoverable", "le"}) {
		t.Errorf("Names() = %v", got)
	}
	if got := Settings(1 << 30).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}

	bit, ok := ParseSetting("Secure-Conn")
	if !ok || bit != SettingSecureConn {
		t.Errorf("ParseSetting = %v, %v", bit, ok)
	}
	if _, ok := ParseSetting("warp-drive"); ok {
		t.Error("ParseSetting accepted unknown name")
	}
}

func TestClassOfDevice(t *testing.T) {
	tests := []struct {
		name     string
		class    ClassOfDevice
		major    MajorClass
		minor    string
		services []string
	}{
		{"smartphone", 0x5A020C, MajorPhone, "Smartphone", []string{"Networking", "Capturing", "Object Transfer", "Telephony"}},
		{"laptop", 0x00010C, MajorComputer, "Laptop", nil},
		{"headset", 0x240404, MajorAudioVideo, "Headset", []string{"Rendering", "Audio"}},
		{"keyboard", 0x000540, MajorPeripheral, "Keyboard", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.class.Major() != tt.major {
				t.Errorf("Major() = %s, want %s", tt.class.Major(), tt.major)
			}
			if got := tt.class.MinorName(); got != tt.minor {
				t.Errorf("MinorName() = %q, want %q", got, tt.minor)
			}
			if got := tt.class.ServiceNames(); !slices.Equal(got, tt.services) {
				t.Errorf("ServiceNames() = %v, want %v", got, tt.services)
			}
		})
	}

	c := NewClassOfDevice(MajorPhone, 3, ServiceNetworking|ServiceTelephony)
	if c.Major() != MajorPhone || c.Minor() != 3 || !c.HasService(ServiceTelephony) {
		t.Errorf("NewClassOfDevice = %s", c)
	}
}

func TestStatus(t *testing.T) {
	if !StatusSuccess.IsSuccess() || StatusSuccess.IsError() {
		t.Error("success mismatch")
	}
	if StatusBusy.String() != "BUSY" {
		t.Errorf("String() = %q", StatusBusy.String())
	}
	if Status(0x99).String() != "UNKNOWN" {
		t.Errorf("String() = %q", Status(0x99).String())
	}
}
