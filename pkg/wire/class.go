package wire

import (
	"fmt"
	"strings"
)

// ClassOfDevice is the 24-bit BR/EDR class of device value.
//
//	bits 23..13  service classes
//	bits 12..8   major device class
//	bits  7..2   minor device class
//	bits  1..0   format type (always 0)
type ClassOfDevice uint32

// MajorClass is the major device class field.
type MajorClass uint8

// Major device classes.
const (
	MajorMiscellaneous MajorClass = 0x00
	MajorComputer      MajorClass = 0x01
	MajorPhone         MajorClass = 0x02
	MajorNetwork       MajorClass = 0x03
	MajorAudioVideo    MajorClass = 0x04
	MajorPeripheral    MajorClass = 0x05
	MajorImaging       MajorClass = 0x06
	MajorWearable      MajorClass = 0x07
	MajorToy           MajorClass = 0x08
	MajorHealth        MajorClass = 0x09
	MajorUncategorized MajorClass = 0x1F
)

// String returns the major class name.
func (m MajorClass) String() string {
	switch m {
	case MajorMiscellaneous:
		return "Miscellaneous"
	case MajorComputer:
		return "Computer"
	case MajorPhone:
		return "Phone"
	case MajorNetwork:
		return "Network Access Point"
	case MajorAudioVideo:
		return "Audio/Video"
	case MajorPeripheral:
		return "Peripheral"
	case MajorImaging:
		return "Imaging"
	case MajorWearable:
		return "Wearable"
	case MajorToy:
		return "Toy"
	case MajorHealth:
		return "Health"
	case MajorUncategorized:
		return "Uncategorized"
	default:
		return "Reserved"
	}
}

// ServiceClass is a service class bit of the class of device.
type ServiceClass uint32

// Service class bits.
const (
	ServiceLimitedDiscoverable ServiceClass = 1 << 13
	ServiceLEAudio             ServiceClass = 1 << 14
	ServicePositioning         ServiceClass = 1 << 16
	ServiceNetworking          ServiceClass = 1 << 17
	ServiceRendering           ServiceClass = 1 << 18
	ServiceCapturing           ServiceClass = 1 << 19
	ServiceObjectTransfer      ServiceClass = 1 << 20
	ServiceAudio               ServiceClass = 1 << 21
	ServiceTelephony           ServiceClass = 1 << 22
	ServiceInformation         ServiceClass = 1 << 23
)

var serviceClassNames = []struct {
	bit  ServiceClass
	name string
}{
	{ServiceLimitedDiscoverable, "Limited Discoverable"},
	{ServiceLEAudio, "LE Audio"},
	{ServicePositioning, "Positioning"},
	{ServiceNetworking, "Networking"},
	{ServiceRendering, "Rendering"},
	{ServiceCapturing, "Capturing"},
	{ServiceObjectTransfer, "Object Transfer"},
	{ServiceAudio, "Audio"},
	{ServiceTelephony, "Telephony"},
	{ServiceInformation, "Information"},
}

// NewClassOfDevice builds a class from its fields.
func NewClassOfDevice(major MajorClass, minor uint8, services ServiceClass) ClassOfDevice {
	return ClassOfDevice(uint32(services)&0xFFE000 | uint32(major&0x1F)<<8 | uint32(minor&0x3F)<<2)
}

// Major returns the major device class.
func (c ClassOfDevice) Major() MajorClass {
	return MajorClass((c >> 8) & 0x1F)
}

// Minor returns the raw minor device class.
func (c ClassOfDevice) Minor() uint8 {
	return uint8((c >> 2) & 0x3F)
}

// Services returns the service class bits.
func (c ClassOfDevice) Services() ServiceClass {
	return ServiceClass(c & 0xFFE000)
}

// HasService reports whether the service class bit is set.
func (c ClassOfDevice) HasService(s ServiceClass) bool {
	return c.Services()&s != 0
}

// ServiceNames returns the names of the set service class bits.
func (c ClassOfDevice) ServiceNames() []string {
	var names []string
	for _, sc := range serviceClassNames {
		if c.HasService(sc.bit) {
			names = append(names, sc.name)
		}
	}
	return names
}

// MinorName returns a descriptive name for the minor class where one is
// defined for the major class.
func (c ClassOfDevice) MinorName() string {
	minor := c.Minor()
	switch c.Major() {
	case MajorComputer:
		return lookupMinor(minor, computerMinors)
	case MajorPhone:
		return lookupMinor(minor, phoneMinors)
	case MajorAudioVideo:
		return lookupMinor(minor, audioVideoMinors)
	case MajorWearable:
		return lookupMinor(minor, wearableMinors)
	case MajorToy:
		return lookupMinor(minor, toyMinors)
	case MajorPeripheral:
		var parts []string
		if minor&0x10 != 0 {
			parts = append(parts, "Keyboard")
		}
		if minor&0x20 != 0 {
			parts = append(parts, "Pointing Device")
		}
		if sub := minor & 0x0F; sub > 0 && sub < uint8(len(peripheralMinors)) {
			parts = append(parts, peripheralMinors[sub])
		}
		return strings.Join(parts, ", ")
	case MajorImaging:
		var parts []string
		for i, name := range []string{"Display", "Camera", "Scanner", "Printer"} {
			if minor&(1<<(i+2)) != 0 {
				parts = append(parts, name)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// String returns a compact description such as
// "0x5a020c Phone/Smartphone [Networking Capturing ...]".
func (c ClassOfDevice) String() string {
	desc := fmt.Sprintf("0x%06x %s", uint32(c), c.Major())
	if m := c.MinorName(); m != "" {
		desc += "/" + m
	}
	if s := c.ServiceNames(); len(s) > 0 {
		desc += " [" + strings.Join(s, ", ") + "]"
	}
	return desc
}

func lookupMinor(minor uint8, names []string) string {
	if int(minor) < len(names) && names[minor] != "" {
		return names[minor]
	}
	return "Unknown"
}

var computerMinors = []string{
	"Uncategorized", "Desktop", "Server", "Laptop", "Handheld PDA", "Palm PDA", "Wearable", "Tablet",
}

var phoneMinors = []string{
	"Uncategorized", "Cellular", "Cordless", "Smartphone", "Modem", "ISDN",
}

var audioVideoMinors = []string{
	"Uncategorized", "Headset", "Hands-free", "", "Microphone", "Loudspeaker", "Headphones",
	"Portable Audio", "Car Audio", "Set-top Box", "HiFi Audio", "VCR", "Video Camera",
	"Camcorder", "Video Monitor", "Video Display and Loudspeaker", "Video Conferencing", "",
	"Gaming/Toy",
}

var wearableMinors = []string{
	"", "Wristwatch", "Pager", "Jacket", "Helmet", "Glasses",
}

var toyMinors = []string{
	"", "Robot", "Vehicle", "Doll", "Controller", "Game",
}

var peripheralMinors = []string{
	"", "Joystick", "Gamepad", "Remote Control", "Sensing Device", "Digitizer Tablet",
	"Card Reader", "Digital Pen", "Handheld Scanner", "Handheld Gestural Input",
}

// ClassOfDeviceSize is the encoded size of a class of device.
const ClassOfDeviceSize = 3

// Class reads a 3-byte class of device.
func (r *Reader) Class() ClassOfDevice {
	return ClassOfDevice(r.U24())
}

// Class writes a 3-byte class of device.
func (w *Writer) Class(c ClassOfDevice) {
	w.U24(uint32(c))
}
