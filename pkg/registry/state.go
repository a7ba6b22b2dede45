package registry

import (
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// ControllerState is the cached view of one controller.
type ControllerState struct {
	Index wire.ControllerIndex

	// Configured is false for controllers reported through the
	// unconfigured index list or events.
	Configured bool

	// Type and Bus come from the extended index list. Type is one of
	// catalog.ControllerPrimary, ControllerUnconfigured or ControllerAMP.
	Type uint8
	Bus  uint8

	Address           wire.Address
	Version           uint8
	Manufacturer      uint16
	SupportedSettings wire.Settings
	CurrentSettings   wire.Settings
	Class             wire.ClassOfDevice
	Name              string
	ShortName         string
	Appearance        uint16

	Discovering    bool
	DiscoveryTypes wire.AddressTypes

	// InfoLoaded is set once controller information has been read.
	InfoLoaded bool

	// UpdatedAt is the time of the last change.
	UpdatedAt time.Time
}

// Has reports whether setting is currently enabled.
func (s ControllerState) Has(setting wire.Settings) bool {
	return s.CurrentSettings.Has(setting)
}

// Supports reports whether the controller supports setting.
func (s ControllerState) Supports(setting wire.Settings) bool {
	return s.SupportedSettings.Has(setting)
}

// TypeName returns the controller type as printed by the CLI.
func (s ControllerState) TypeName() string {
	switch s.Type {
	case catalog.ControllerPrimary:
		return "primary"
	case catalog.ControllerUnconfigured:
		return "unconfigured"
	case catalog.ControllerAMP:
		return "amp"
	default:
		return "unknown"
	}
}

func (s *ControllerState) applyInfo(r *catalog.ControllerInfoReply) {
	s.Address = r.Address
	s.Version = r.Version
	s.Manufacturer = r.Manufacturer
	s.SupportedSettings = r.SupportedSettings
	s.CurrentSettings = r.CurrentSettings
	s.Class = r.Class
	s.Name = r.Name
	s.ShortName = r.ShortName
	s.InfoLoaded = true
}

func (s *ControllerState) applyExtendedInfo(r *catalog.ExtendedControllerInfoReply) {
	s.Address = r.Address
	s.Version = r.Version
	s.Manufacturer = r.Manufacturer
	s.SupportedSettings = r.SupportedSettings
	s.CurrentSettings = r.CurrentSettings
	s.InfoLoaded = true
	s.applyEIR(r.EIR)
}

// applyEIR copies name, class and appearance out of EIR data. Malformed
// data leaves the state unchanged.
func (s *ControllerState) applyEIR(data []byte) {
	eir, _ := wire.ParseEIR(data)
	if eir == nil {
		return
	}
	if eir.NameComplete {
		s.Name = eir.Name
	}
	if eir.ShortName != "" {
		s.ShortName = eir.ShortName
	}
	if eir.Class != nil {
		s.Class = *eir.Class
	}
	if eir.Appearance != nil {
		s.Appearance = *eir.Appearance
	}
}
